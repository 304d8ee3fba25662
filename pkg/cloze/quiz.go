package cloze

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>`

// Quiz is an ordered set of questions serialized as one Moodle XML document.
type Quiz struct {
	Questions []Question
}

func NewQuiz(questions ...Question) Quiz {
	return Quiz{Questions: questions}
}

func (q *Quiz) Add(questions ...Question) {
	q.Questions = append(q.Questions, questions...)
}

// Validate reports whether the quiz can be written out.
func (q Quiz) Validate() error {
	if len(q.Questions) == 0 {
		return invalid("questions", ErrEmptyQuiz)
	}
	return nil
}

// String returns the XML document. It does not validate; an empty quiz
// yields an empty <quiz> element.
func (q Quiz) String() string {
	parts := make([]string, len(q.Questions))
	for i, question := range q.Questions {
		parts[i] = question.String()
	}
	return xmlHeader + "<quiz>\n" + strings.Join(parts, "\n\n") + "\n\n</quiz>"
}

// WriteTo writes the document followed by a newline. An empty quiz is
// rejected before anything is written.
func (q Quiz) WriteTo(w io.Writer) (int64, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}
	n, err := io.WriteString(w, q.String()+"\n")
	return int64(n), err
}

// WriteFile writes the quiz to path. Validation happens before the file
// system is touched and the content is staged in a temporary file that is
// renamed into place, so a failed write never leaves a partial file.
func (q Quiz) WriteFile(path string) (err error) {
	if err := q.Validate(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".moocloze-*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if _, err = q.WriteTo(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// WriteQuestionsFile writes questions as a single quiz to path.
func WriteQuestionsFile(path string, questions ...Question) error {
	return NewQuiz(questions...).WriteFile(path)
}
