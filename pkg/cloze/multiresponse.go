package cloze

import "strings"

// Multiresponse shows checkboxes; the student must check every correct
// answer and none of the incorrect ones.
type Multiresponse struct {
	Correct   []any
	Incorrect []any
	// Horizontal lays the options out in a row instead of a column.
	Horizontal bool
	// Shuffle lets the importer shuffle the options. When false they are
	// listed in lexicographic order of their text.
	Shuffle bool
	Weight  int
}

// NewMultiresponse defaults to horizontal, shuffled options.
func NewMultiresponse(correct, incorrect []any, opts ...Option) *Multiresponse {
	o := buildOptions(opts)
	return &Multiresponse{
		Correct:    correct,
		Incorrect:  incorrect,
		Horizontal: o.horizontal,
		Shuffle:    o.shuffleOr(true),
		Weight:     o.weight,
	}
}

func (*Multiresponse) Kind() Kind { return KindMultiresponse }
func (*Multiresponse) sealed()    {}

func (m *Multiresponse) Render() (string, error) {
	if len(m.Correct) == 0 {
		return "", invalid("correct_answers", ErrNoCorrectAnswer)
	}
	cs := choices(m.Correct, m.Incorrect)
	if !m.Shuffle {
		sortByText(cs)
	}
	return token(m.Weight, KindMultiresponse, m.suffix(), joinChoices(cs)), nil
}

// suffix emits the "_" connector whenever either flag is set, followed by
// the letters of the flags that are set.
func (m *Multiresponse) suffix() string {
	var b strings.Builder
	if m.Horizontal || m.Shuffle {
		b.WriteByte('_')
	}
	if m.Horizontal {
		b.WriteByte('H')
	}
	if m.Shuffle {
		b.WriteByte('S')
	}
	return b.String()
}
