package definition

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mind-engage/moocloze/pkg/cloze"
)

// Issue is one problem found in a definition.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports every issue found in a definition.
type ValidationError struct {
	Issues []Issue
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("quiz definition validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Normalize trims names and type keys and validates the definition.
func Normalize(def Definition) (Definition, error) {
	c := &issueCollector{}
	if def.Version == 0 {
		c.add("version", "is required")
	} else if def.Version != 1 {
		c.add("version", fmt.Sprintf("unsupported version %d", def.Version))
	}
	def.Title = strings.TrimSpace(def.Title)
	if len(def.Questions) == 0 {
		c.add("questions", "must include at least one entry")
	}

	def.Questions = append([]Question(nil), def.Questions...)
	for i, q := range def.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		q.Name = strings.TrimSpace(q.Name)
		if q.Name == "" {
			c.add(prefix+".name", "is required")
		}
		if strings.TrimSpace(q.Contents) == "" {
			c.add(prefix+".contents", "is required")
		}

		fields := make(map[string]Field, len(q.Fields))
		for _, id := range sortedIDs(q.Fields) {
			f := q.Fields[id]
			fp := fmt.Sprintf("%s.fields.%s", prefix, id)
			if strings.TrimSpace(id) == "" {
				c.add(prefix+".fields", "field id must not be empty")
				continue
			}
			f.Type = strings.ToLower(strings.TrimSpace(f.Type))
			validateField(c, fp, f)
			fields[id] = f
		}
		q.Fields = fields

		if q.Contents != "" {
			if _, err := expand(q, func(id string) (string, error) {
				if _, ok := q.Fields[id]; !ok {
					return "", fmt.Errorf("unknown field %q", id)
				}
				return "", nil
			}); err != nil {
				c.add(prefix+".contents", err.Error())
			}
		}
		def.Questions[i] = q
	}

	if err := c.result(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

func validateField(c *issueCollector, prefix string, f Field) {
	if f.Weight < 0 {
		c.add(prefix+".weight", "must not be negative")
	}
	switch f.Type {
	case "":
		c.add(prefix+".type", "is required")
	case TypeNumerical:
		if _, ok := toFloat(f.Answer); !ok {
			c.add(prefix+".answer", "must be a number")
		}
		if f.Tolerance != nil && *f.Tolerance < 0 {
			c.add(prefix+".tolerance", "must not be negative")
		}
	case TypeShortAnswer:
		if f.Answer == nil || cloze.Text(f.Answer) == "" {
			c.add(prefix+".answer", "is required")
		}
	case TypeMultiresponse:
		if len(f.CorrectAnswers) == 0 {
			c.add(prefix+".correct_answers", "must include at least one entry")
		}
	case TypeMultichoice:
		if f.Correct == nil {
			c.add(prefix+".correct", "is required")
		}
		if len(f.IncorrectAnswers) == 0 {
			c.add(prefix+".incorrect_answers", "must include at least one entry")
		}
		if _, err := cloze.ParseDisplayMode(f.DisplayMode); err != nil {
			c.add(prefix+".display_mode", err.Error())
		}
	default:
		c.add(prefix+".type", fmt.Sprintf("unsupported field type %q", f.Type))
	}
}

func sortedIDs(fields map[string]Field) []string {
	ids := make([]string, 0, len(fields))
	for id := range fields {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsInputError reports whether err was caused by the definition contents
// rather than by I/O.
func IsInputError(err error) bool {
	var de *ValidationError
	var ce *cloze.ValidationError
	var uf *cloze.UnsupportedFieldError
	return errors.As(err, &de) || errors.As(err, &ce) || errors.As(err, &uf)
}

// ValidateField checks a single field definition on its own.
func ValidateField(f Field) error {
	c := &issueCollector{}
	f.Type = strings.ToLower(strings.TrimSpace(f.Type))
	validateField(c, "field", f)
	return c.result()
}
