// Package model defines the strongly typed questionnaire representation the
// rest of the pipeline produces and consumes: rich content, the Question
// tagged union, pages, the assembled FormModel, answer maps, and the flat
// rows emitted by the answer exporter.
package model
