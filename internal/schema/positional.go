package schema

import "strconv"

// seq is a decoded positional record. The embedded format identifies fields
// by index, not name, and arity varies across form revisions, so every access
// goes through these fallible helpers. No other package touches raw indices.
type seq []any

func asSeq(v any) (seq, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	return seq(list), true
}

func (s seq) at(i int) (any, bool) {
	if i < 0 || i >= len(s) {
		return nil, false
	}
	return s[i], true
}

func (s seq) seqAt(i int) (seq, bool) {
	v, ok := s.at(i)
	if !ok {
		return nil, false
	}
	return asSeq(v)
}

func (s seq) strAt(i int) (string, bool) {
	v, ok := s.at(i)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// intAt reads an integer field. JSON numbers decode as float64.
func (s seq) intAt(i int) (int64, bool) {
	v, ok := s.at(i)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

// truthyAt mirrors the source format's habit of encoding flags as 0/1,
// null, or presence of a non-empty value.
func (s seq) truthyAt(i int) bool {
	v, ok := s.at(i)
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	default:
		return true
	}
}

// scalarAt renders a positional value as a display string: strings pass
// through, numbers drop their float64 decoration.
func (s seq) scalarAt(i int) (string, bool) {
	v, ok := s.at(i)
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	default:
		return "", false
	}
}
