package definition

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"text/template"

	"github.com/mind-engage/moocloze/pkg/cloze"
)

// Shuffler returns the randomness source for shuffled fields: a seeded
// generator when Seed is set, nil (the global source) otherwise.
func (d Definition) Shuffler() cloze.Shuffler {
	if d.Seed == nil {
		return nil
	}
	return rand.New(rand.NewPCG(*d.Seed, *d.Seed))
}

// Build turns a normalized definition into a quiz. rng may be nil.
func Build(def Definition, rng cloze.Shuffler) (cloze.Quiz, error) {
	if rng == nil {
		rng = def.Shuffler()
	}
	quiz := cloze.Quiz{Questions: make([]cloze.Question, 0, len(def.Questions))}
	for i, q := range def.Questions {
		question, err := BuildQuestion(q, rng)
		if err != nil {
			return cloze.Quiz{}, fmt.Errorf("questions[%d]: %w", i, err)
		}
		quiz.Add(question)
	}
	return quiz, nil
}

// BuildQuestion renders the fields of q and expands its contents.
func BuildQuestion(q Question, rng cloze.Shuffler) (cloze.Question, error) {
	contents, err := expand(q, func(id string) (string, error) {
		fd, ok := q.Fields[id]
		if !ok {
			return "", fmt.Errorf("unknown field %q", id)
		}
		f, err := NewField(fd, rng)
		if err != nil {
			return "", fmt.Errorf("field %q: %w", id, err)
		}
		return f.Render()
	})
	if err != nil {
		return cloze.Question{}, err
	}
	return cloze.Question{
		Name:            q.Name,
		Contents:        contents,
		GeneralFeedback: q.GeneralFeedback,
	}, nil
}

// NewField builds the library field described by f.
func NewField(f Field, rng cloze.Shuffler) (cloze.Field, error) {
	opts := []cloze.Option{}
	if f.Weight > 0 {
		opts = append(opts, cloze.WithWeight(f.Weight))
	}
	if f.Shuffle != nil {
		opts = append(opts, cloze.WithShuffle(*f.Shuffle))
	}
	if f.Horizontal != nil {
		opts = append(opts, cloze.WithHorizontal(*f.Horizontal))
	}
	if rng != nil {
		opts = append(opts, cloze.WithRand(rng))
	}

	switch strings.ToLower(f.Type) {
	case TypeNumerical:
		answer, ok := toFloat(f.Answer)
		if !ok {
			return nil, &cloze.UnsupportedFieldError{Value: f.Answer}
		}
		if f.Tolerance != nil {
			opts = append(opts, cloze.WithTolerance(*f.Tolerance))
		}
		if f.ShowTolerance != nil {
			opts = append(opts, cloze.WithShowTolerance(*f.ShowTolerance))
		}
		switch f.Answer.(type) {
		case int, int64, uint64:
			return cloze.NewIntegerNumerical(cloze.Text(f.Answer), opts...)
		}
		return cloze.NewNumerical(answer, opts...), nil
	case TypeShortAnswer:
		return cloze.NewShortAnswer(cloze.Text(f.Answer), opts...), nil
	case TypeMultiresponse:
		return cloze.NewMultiresponse(f.CorrectAnswers, f.IncorrectAnswers, opts...), nil
	case TypeMultichoice:
		mode, err := cloze.ParseDisplayMode(f.DisplayMode)
		if err != nil {
			return nil, err
		}
		opts = append(opts, cloze.WithDisplayMode(mode))
		return cloze.NewMultichoice(f.Correct, f.IncorrectAnswers, opts...), nil
	}
	return nil, fmt.Errorf("unsupported field type %q", f.Type)
}

func expand(q Question, field func(id string) (string, error)) (string, error) {
	tmpl, err := template.New(q.Name).
		Option("missingkey=error").
		Funcs(template.FuncMap{"field": field}).
		Parse(q.Contents)
	if err != nil {
		return "", fmt.Errorf("parse contents: %w", err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, nil); err != nil {
		return "", fmt.Errorf("expand contents: %w", err)
	}
	return b.String(), nil
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float64:
		return x, true
	case float32:
		return float64(x), true
	}
	return 0, false
}
