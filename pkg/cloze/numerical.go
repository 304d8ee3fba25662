package cloze

import "fmt"

// Numerical accepts a number within Tolerance of Answer.
type Numerical struct {
	Answer float64
	// AnswerText, when set, is written instead of Answer.
	AnswerText string
	// Absolute error tolerance: with Answer 10 and Tolerance 0.05 any value
	// in [9.95, 10.05] is accepted.
	Tolerance float64
	// ShowTolerance appends the tolerance after the input box when it is non-zero.
	ShowTolerance bool
	Weight        int
}

func NewNumerical(answer float64, opts ...Option) *Numerical {
	o := buildOptions(opts)
	return &Numerical{
		Answer:        answer,
		Tolerance:     o.tolerance,
		ShowTolerance: o.showTolerance,
		Weight:        o.weight,
	}
}

func (*Numerical) Kind() Kind { return KindNumerical }
func (*Numerical) sealed()    {}

func (n *Numerical) Render() (string, error) {
	if n.Tolerance < 0 {
		return "", &ValidationError{Field: "tolerance", Message: fmt.Sprintf("must not be negative, got %s", formatNumber(n.Tolerance))}
	}
	answer := n.AnswerText
	if answer == "" {
		answer = formatNumber(n.Answer)
	}
	tol := formatNumber(n.Tolerance)
	s := token(n.Weight, KindNumerical, "", "="+answer+":"+tol)
	if n.ShowTolerance && n.Tolerance > 0 {
		s += ` (\(\pm ` + tol + `\))`
	}
	return s, nil
}
