package cloze

import (
	"encoding/xml"
	"strings"
)

// Question is one cloze question. Contents usually embeds rendered field
// tokens and may contain HTML; it is written verbatim.
type Question struct {
	Name            string `json:"name" yaml:"name"`
	Contents        string `json:"contents" yaml:"contents"`
	GeneralFeedback string `json:"general_feedback,omitempty" yaml:"general_feedback,omitempty"`
}

const questionTemplate = `<question type="cloze">
    <name><text>%NAME%</text></name>
    <questiontext>
    <text>%CONTENTS%</text>
    </questiontext>
    <generalfeedback>
    <text>%FEEDBACK%</text>
    </generalfeedback>
    <shuffleanswers>1</shuffleanswers>
</question>`

// String returns the <question> XML fragment.
func (q Question) String() string {
	feedback := ""
	if q.GeneralFeedback != "" {
		feedback = cdata(q.GeneralFeedback)
	}
	r := strings.NewReplacer(
		"%NAME%", escapeText(q.Name),
		"%CONTENTS%", cdata(q.Contents),
		"%FEEDBACK%", feedback,
	)
	return r.Replace(questionTemplate)
}

// WriteFile writes a quiz holding only q to path.
func (q Question) WriteFile(path string) error {
	return Quiz{Questions: []Question{q}}.WriteFile(path)
}

// cdata wraps s in a CDATA section, splitting any "]]>" it contains.
func cdata(s string) string {
	return "<![CDATA[" + strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>") + "]]>"
}

func escapeText(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
