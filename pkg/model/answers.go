package model

// OtherSentinel is the reserved option value signalling that the respondent's
// real answer lives in the companion free-text field.
const OtherSentinel = "__other_option__"

// OtherResponseSuffix is appended to a question's submission key to form the
// companion key carrying the free-text "other" answer.
const OtherResponseSuffix = ".other_option_response"

// Answers is the raw multi-valued submission map, keyed by submission key.
// It mirrors the shape of a decoded form post body.
type Answers map[string][]string

// Get returns the first value submitted for key, or "" when absent.
func (a Answers) Get(key string) string {
	values := a[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// All returns every value submitted for key in submission order.
func (a Answers) All(key string) []string {
	return a[key]
}

// OtherResponse returns the companion free-text value for a question with an
// other-escape option.
func (a Answers) OtherResponse(key string) string {
	return a.Get(key + OtherResponseSuffix)
}
