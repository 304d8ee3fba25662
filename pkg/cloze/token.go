package cloze

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	tokenPattern         = regexp.MustCompile(`\{(\d+):(NUMERICAL|MULTIRESPONSE|MULTICHOICE|SHORTANSWER)(_[A-Z]*)?:([^{}]*)\}`)
	toleranceNotePattern = regexp.MustCompile(`^ \(\\\(\\pm [^()]*\\\)\)$`)
)

// Token is the parsed form of one embedded answer.
type Token struct {
	Weight int
	Kind   Kind
	Suffix string // e.g. "_HS"; empty when absent
	Body   string
	Raw    string
}

// Answer is one entry of a token body.
type Answer struct {
	Text    string
	Correct bool
}

// ParseToken parses a single rendered field. A Numerical tolerance note
// following the token is accepted and ignored.
func ParseToken(s string) (Token, error) {
	loc := tokenPattern.FindStringSubmatchIndex(s)
	if loc == nil || loc[0] != 0 {
		return Token{}, fmt.Errorf("not a cloze token: %q", s)
	}
	if rest := s[loc[1]:]; rest != "" && !toleranceNotePattern.MatchString(rest) {
		return Token{}, fmt.Errorf("unexpected text after token: %q", rest)
	}
	return tokenAt(s, loc)
}

// FindTokens returns every token embedded in text, in order.
func FindTokens(text string) []Token {
	var out []Token
	for _, loc := range tokenPattern.FindAllStringSubmatchIndex(text, -1) {
		t, err := tokenAt(text, loc)
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	return out
}

func tokenAt(s string, loc []int) (Token, error) {
	w, err := strconv.Atoi(s[loc[2]:loc[3]])
	if err != nil {
		return Token{}, fmt.Errorf("bad weight: %w", err)
	}
	t := Token{
		Weight: w,
		Kind:   Kind(s[loc[4]:loc[5]]),
		Body:   s[loc[8]:loc[9]],
		Raw:    s[loc[0]:loc[1]],
	}
	if loc[6] >= 0 {
		t.Suffix = s[loc[6]:loc[7]]
	}
	return t, nil
}

// Answers splits the body on "~"; entries starting with "=" are correct.
func (t Token) Answers() []Answer {
	if t.Body == "" {
		return nil
	}
	parts := strings.Split(t.Body, "~")
	out := make([]Answer, 0, len(parts))
	for _, p := range parts {
		if strings.HasPrefix(p, "=") {
			out = append(out, Answer{Text: p[1:], Correct: true})
			continue
		}
		out = append(out, Answer{Text: p})
	}
	return out
}

// Numerical returns the answer and tolerance of a NUMERICAL token.
func (t Token) Numerical() (answer, tolerance float64, err error) {
	if t.Kind != KindNumerical {
		return 0, 0, fmt.Errorf("token kind is %s, not %s", t.Kind, KindNumerical)
	}
	body := strings.TrimPrefix(t.Body, "=")
	a, tol, ok := strings.Cut(body, ":")
	if answer, err = strconv.ParseFloat(a, 64); err != nil {
		return 0, 0, fmt.Errorf("bad answer: %w", err)
	}
	if ok {
		if tolerance, err = strconv.ParseFloat(tol, 64); err != nil {
			return 0, 0, fmt.Errorf("bad tolerance: %w", err)
		}
	}
	return answer, tolerance, nil
}
