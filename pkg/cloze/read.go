package cloze

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

type xmlQuiz struct {
	Questions []xmlQuestion `xml:"question"`
}

type xmlQuestion struct {
	Type     string `xml:"type,attr"`
	Name     string `xml:"name>text"`
	Text     string `xml:"questiontext>text"`
	Feedback string `xml:"generalfeedback>text"`
}

// ReadQuiz parses a Moodle XML document and returns its cloze questions.
// Questions of other types are skipped.
func ReadQuiz(r io.Reader) (Quiz, error) {
	var doc xmlQuiz
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return Quiz{}, fmt.Errorf("decode quiz: %w", err)
	}
	var quiz Quiz
	for _, q := range doc.Questions {
		if q.Type != "cloze" {
			continue
		}
		quiz.Add(Question{Name: q.Name, Contents: q.Text, GeneralFeedback: q.Feedback})
	}
	return quiz, nil
}

func ReadQuizFile(path string) (Quiz, error) {
	f, err := os.Open(path)
	if err != nil {
		return Quiz{}, err
	}
	defer f.Close()
	return ReadQuiz(f)
}
