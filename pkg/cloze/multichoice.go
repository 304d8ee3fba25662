package cloze

import (
	"fmt"
	"strings"
)

// DisplayMode selects how a Multichoice field is presented.
type DisplayMode int

const (
	Dropdown DisplayMode = iota
	HorizontalButtons
	VerticalButtons
)

func (m DisplayMode) String() string {
	switch m {
	case Dropdown:
		return "dropdown"
	case HorizontalButtons:
		return "horizontal_buttons"
	case VerticalButtons:
		return "vertical_buttons"
	default:
		return fmt.Sprintf("DisplayMode(%d)", int(m))
	}
}

// ParseDisplayMode accepts the names returned by String, case-insensitively.
// An empty string is Dropdown.
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dropdown":
		return Dropdown, nil
	case "horizontal_buttons", "horizontal":
		return HorizontalButtons, nil
	case "vertical_buttons", "vertical":
		return VerticalButtons, nil
	}
	return Dropdown, fmt.Errorf("unknown display mode %q", s)
}

// Multichoice asks for exactly one correct option among several.
type Multichoice struct {
	Correct     any
	Incorrect   []any
	DisplayMode DisplayMode
	// Shuffle randomizes the option order at render time. When false the
	// options are listed in lexicographic order of their text.
	Shuffle bool
	Weight  int
	// Rand is used when Shuffle is set; nil means the global source.
	Rand Shuffler
}

// NewMultichoice defaults to a dropdown with options in lexicographic order.
func NewMultichoice(correct any, incorrect []any, opts ...Option) *Multichoice {
	o := buildOptions(opts)
	return &Multichoice{
		Correct:     correct,
		Incorrect:   incorrect,
		DisplayMode: o.displayMode,
		Shuffle:     o.shuffleOr(false),
		Weight:      o.weight,
		Rand:        o.rng,
	}
}

func (*Multichoice) Kind() Kind { return KindMultichoice }
func (*Multichoice) sealed()    {}

func (m *Multichoice) Render() (string, error) {
	if m.Correct == nil {
		return "", invalid("correct_answer", ErrNoCorrectAnswer)
	}
	if len(m.Incorrect) == 0 {
		return "", invalid("incorrect_answers", ErrNoIncorrectAnswer)
	}
	cs := choices([]any{m.Correct}, m.Incorrect)
	if m.Shuffle {
		rng := m.Rand
		if rng == nil {
			rng = globalShuffler{}
		}
		rng.Shuffle(len(cs), func(i, j int) { cs[i], cs[j] = cs[j], cs[i] })
	} else {
		sortByText(cs)
	}
	return token(m.Weight, KindMultichoice, m.suffix(), joinChoices(cs)), nil
}

func (m *Multichoice) suffix() string {
	s := ""
	switch m.DisplayMode {
	case HorizontalButtons:
		s += "H"
	case VerticalButtons:
		s += "V"
	}
	if m.Shuffle {
		s += "S"
	}
	if s != "" {
		s = "_" + s
	}
	return s
}
