package cloze

// ShortAnswer expects exactly Answer to be typed in.
type ShortAnswer struct {
	Answer string
	Weight int
}

func NewShortAnswer(answer string, opts ...Option) *ShortAnswer {
	o := buildOptions(opts)
	return &ShortAnswer{Answer: answer, Weight: o.weight}
}

func (*ShortAnswer) Kind() Kind { return KindShortAnswer }
func (*ShortAnswer) sealed()    {}

func (s *ShortAnswer) Render() (string, error) {
	return token(s.Weight, KindShortAnswer, "", "="+s.Answer), nil
}
