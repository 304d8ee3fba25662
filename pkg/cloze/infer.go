package cloze

import "strconv"

// FieldFor picks the field that asks for v: numbers become Numerical and
// strings become ShortAnswer. A Field is returned unchanged. Any other type
// yields an *UnsupportedFieldError.
func FieldFor(v any, opts ...Option) (Field, error) {
	switch x := v.(type) {
	case Field:
		return x, nil
	case string:
		return NewShortAnswer(x, opts...), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return NewIntegerNumerical(Text(x), opts...)
	case float32:
		return NewNumerical(float64(x), opts...), nil
	case float64:
		return NewNumerical(x, opts...), nil
	}
	return nil, &UnsupportedFieldError{Value: v}
}

// NewIntegerNumerical builds a Numerical whose answer is the decimal integer
// text. The text is rendered as given, so integers beyond float64 precision
// are not rounded.
func NewIntegerNumerical(text string, opts ...Option) (*Numerical, error) {
	if _, err := strconv.ParseInt(text, 10, 64); err != nil {
		if _, uerr := strconv.ParseUint(text, 10, 64); uerr != nil {
			return nil, &ValidationError{Field: "answer", Message: "not an integer: " + strconv.Quote(text)}
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, &ValidationError{Field: "answer", Message: err.Error()}
	}
	n := NewNumerical(f, opts...)
	n.AnswerText = text
	return n, nil
}
