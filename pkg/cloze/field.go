package cloze

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
)

// Kind is the answer type name used inside an embedded-answer token.
type Kind string

const (
	KindNumerical     Kind = "NUMERICAL"
	KindMultiresponse Kind = "MULTIRESPONSE"
	KindMultichoice   Kind = "MULTICHOICE"
	KindShortAnswer   Kind = "SHORTANSWER"
)

func (k Kind) Valid() bool {
	switch k {
	case KindNumerical, KindMultiresponse, KindMultichoice, KindShortAnswer:
		return true
	}
	return false
}

// Field is one embedded answer inside a question body. The set of
// implementations is closed: Numerical, Multiresponse, Multichoice and
// ShortAnswer.
type Field interface {
	Kind() Kind
	// Render returns the single-line token, e.g. {1:SHORTANSWER:=book}.
	Render() (string, error)
	sealed()
}

// MustRender is like Render but panics on error. Use it for content that is
// built from constants in Go code.
func MustRender(f Field) string {
	s, err := f.Render()
	if err != nil {
		panic(err)
	}
	return s
}

// Shuffler is the randomness source used for shuffled option lists.
// *rand.Rand from math/rand/v2 satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// Option configures a field constructor. Options that do not apply to a
// given field type are ignored.
type Option func(*options)

type options struct {
	weight        int
	tolerance     float64
	showTolerance bool
	horizontal    bool
	shuffle       *bool
	displayMode   DisplayMode
	rng           Shuffler
}

func WithWeight(w int) Option              { return func(o *options) { o.weight = w } }
func WithTolerance(t float64) Option       { return func(o *options) { o.tolerance = t } }
func WithShowTolerance(b bool) Option      { return func(o *options) { o.showTolerance = b } }
func WithHorizontal(b bool) Option         { return func(o *options) { o.horizontal = b } }
func WithShuffle(b bool) Option            { return func(o *options) { o.shuffle = &b } }
func WithDisplayMode(m DisplayMode) Option { return func(o *options) { o.displayMode = m } }
func WithRand(r Shuffler) Option           { return func(o *options) { o.rng = r } }

func buildOptions(opts []Option) options {
	o := options{weight: 1, showTolerance: true, horizontal: true}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func (o options) shuffleOr(def bool) bool {
	if o.shuffle == nil {
		return def
	}
	return *o.shuffle
}

// weightOf maps the zero value to the default weight of 1.
func weightOf(w int) int {
	if w < 1 {
		return 1
	}
	return w
}

func token(weight int, kind Kind, suffix, body string) string {
	return fmt.Sprintf("{%d:%s%s:%s}", weightOf(weight), kind, suffix, body)
}

// Text converts an answer value to the text used in a token. Floats use the
// shortest decimal form without an exponent.
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return formatNumber(x)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

type choice struct {
	text    string
	correct bool
}

func choices(correct, incorrect []any) []choice {
	out := make([]choice, 0, len(correct)+len(incorrect))
	for _, v := range correct {
		out = append(out, choice{text: Text(v), correct: true})
	}
	for _, v := range incorrect {
		out = append(out, choice{text: Text(v)})
	}
	return out
}

// sortByText orders by text only; the correctness flag is not a key.
func sortByText(cs []choice) {
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].text < cs[j].text })
}

func joinChoices(cs []choice) string {
	var b strings.Builder
	for i, c := range cs {
		if i > 0 {
			b.WriteByte('~')
		}
		if c.correct {
			b.WriteByte('=')
		}
		b.WriteString(c.text)
	}
	return b.String()
}
