package definition

// Definition is the on-disk description of a quiz, loaded from YAML or JSON.
type Definition struct {
	Version   int        `json:"version" yaml:"version"`
	Title     string     `json:"title,omitempty" yaml:"title,omitempty"`
	Seed      *uint64    `json:"seed,omitempty" yaml:"seed,omitempty"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Question holds the body template and the fields it references. Contents is
// a text/template; {{field "id"}} expands to the rendered token of Fields[id].
type Question struct {
	Name            string           `json:"name" yaml:"name"`
	Contents        string           `json:"contents" yaml:"contents"`
	GeneralFeedback string           `json:"general_feedback,omitempty" yaml:"general_feedback,omitempty"`
	Fields          map[string]Field `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Field describes one embedded answer. Which keys apply depends on Type.
type Field struct {
	Type   string `json:"type" yaml:"type"`
	Weight int    `json:"weight,omitempty" yaml:"weight,omitempty"`

	// numerical, shortanswer
	Answer        any      `json:"answer,omitempty" yaml:"answer,omitempty"`
	Tolerance     *float64 `json:"tolerance,omitempty" yaml:"tolerance,omitempty"`
	ShowTolerance *bool    `json:"show_tolerance,omitempty" yaml:"show_tolerance,omitempty"`

	// multiresponse, multichoice
	Correct          any    `json:"correct,omitempty" yaml:"correct,omitempty"`
	CorrectAnswers   []any  `json:"correct_answers,omitempty" yaml:"correct_answers,omitempty"`
	IncorrectAnswers []any  `json:"incorrect_answers,omitempty" yaml:"incorrect_answers,omitempty"`
	Horizontal       *bool  `json:"horizontal,omitempty" yaml:"horizontal,omitempty"`
	Shuffle          *bool  `json:"shuffle,omitempty" yaml:"shuffle,omitempty"`
	DisplayMode      string `json:"display_mode,omitempty" yaml:"display_mode,omitempty"`
}

const (
	TypeNumerical     = "numerical"
	TypeMultiresponse = "multiresponse"
	TypeMultichoice   = "multichoice"
	TypeShortAnswer   = "shortanswer"
)
