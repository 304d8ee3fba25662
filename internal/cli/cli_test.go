package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mind-engage/moocloze/pkg/cloze"
)

const definitionYAML = `version: 1
title: Sums
questions:
  - name: Sum
    contents: 'What is 1+1? {{field "sum"}} Pick: {{field "pick"}}'
    fields:
      sum: {type: numerical, answer: 2, tolerance: 0.5}
      pick: {type: multichoice, correct: two, incorrect_answers: [one, three]}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := Run(nil, &stdout, &stderr); code != ExitUsage {
		t.Fatalf("no args: code = %d", code)
	}
	if !strings.Contains(stdout.String(), "moocloze <command>") {
		t.Errorf("usage not printed: %q", stdout.String())
	}

	stdout.Reset()
	if code := Run([]string{"--help"}, &stdout, &stderr); code != ExitOK {
		t.Fatalf("help: code = %d", code)
	}
	for _, name := range []string{"build", "field", "inspect", "example", "validate"} {
		if !strings.Contains(stdout.String(), name) {
			t.Errorf("usage missing %s", name)
		}
	}

	stderr.Reset()
	if code := Run([]string{"bogus"}, &stdout, &stderr); code != ExitUsage {
		t.Fatalf("unknown: code = %d", code)
	}
	if !strings.Contains(stderr.String(), "Unknown command: bogus") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestValidateCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	path := writeFile(t, "quiz.yaml", definitionYAML)
	if code := Run([]string{"validate", "--in", path}, &stdout, &stderr); code != ExitOK {
		t.Fatalf("code = %d stderr=%s", code, stderr.String())
	}
	if strings.TrimSpace(stdout.String()) != "Definition OK" {
		t.Errorf("stdout = %q", stdout.String())
	}

	stdout.Reset()
	stderr.Reset()
	bad := writeFile(t, "bad.yaml", "version: 2\nquestions: []\n")
	if code := Run([]string{"validate", "--in", bad}, &stdout, &stderr); code != ExitError {
		t.Fatalf("bad: code = %d", code)
	}
	if !strings.Contains(stderr.String(), "unsupported version 2") {
		t.Errorf("stderr = %q", stderr.String())
	}

	if code := Run([]string{"validate"}, &stdout, &stderr); code != ExitUsage {
		t.Fatalf("missing --in: code = %d", code)
	}
	if code := Run([]string{"validate", "--in", path, "extra"}, &stdout, &stderr); code != ExitUsage {
		t.Fatalf("extra args: code = %d", code)
	}
}

func TestBuildAndInspect(t *testing.T) {
	var stdout, stderr bytes.Buffer
	in := writeFile(t, "quiz.yaml", definitionYAML)
	out := filepath.Join(t.TempDir(), "quiz.xml")

	if code := Run([]string{"build", "--in", in, "--out", out}, &stdout, &stderr); code != ExitOK {
		t.Fatalf("build: code = %d stderr=%s", code, stderr.String())
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := `What is 1+1? {1:NUMERICAL:=2:0.5} (\(\pm 0.5\)) Pick: {1:MULTICHOICE:one~three~=two}`
	if !strings.Contains(string(data), want) {
		t.Fatalf("output missing %q:\n%s", want, data)
	}

	stdout.Reset()
	if code := Run([]string{"inspect", "--in", out}, &stdout, &stderr); code != ExitOK {
		t.Fatalf("inspect: code = %d stderr=%s", code, stderr.String())
	}
	got := stdout.String()
	for _, s := range []string{"1. Sum (2 field(s))", "NUMERICAL", "answer=2 tolerance=0.5", "correct=[two] incorrect=[one, three]"} {
		if !strings.Contains(got, s) {
			t.Errorf("inspect output missing %q:\n%s", s, got)
		}
	}
}

func TestBuildRejectsInvalidDefinition(t *testing.T) {
	var stdout, stderr bytes.Buffer
	in := writeFile(t, "quiz.yaml", "version: 1\nquestions:\n  - name: q\n    contents: '{{field \"x\"}}'\n")
	out := filepath.Join(t.TempDir(), "quiz.xml")
	if code := Run([]string{"build", "--in", in, "--out", out}, &stdout, &stderr); code != ExitError {
		t.Fatalf("code = %d", code)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("output file written for an invalid definition: %v", err)
	}
}

func TestFieldCommand(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"--type", "numerical", "--answer", "3.14", "--tolerance", "0.01"}, `{1:NUMERICAL:=3.14:0.01} (\(\pm 0.01\))`},
		{[]string{"--type", "numerical", "--answer", "3", "--tolerance", "1", "--hide-tolerance"}, `{1:NUMERICAL:=3:1}`},
		{[]string{"--type", "shortanswer", "--answer", "book", "--weight", "3"}, `{3:SHORTANSWER:=book}`},
		{[]string{"--type", "multiresponse", "--correct", "b,a", "--incorrect", "c"}, `{1:MULTIRESPONSE_HS:=b~=a~c}`},
		{[]string{"--type", "multiresponse", "--correct", "b,a", "--incorrect", "c", "--vertical", "--shuffle=false"}, `{1:MULTIRESPONSE:=a~=b~c}`},
		{[]string{"--type", "multichoice", "--correct", "x", "--incorrect", "z,y", "--display-mode", "vertical_buttons"}, `{1:MULTICHOICE_V:=x~y~z}`},
	}
	for _, tc := range cases {
		var stdout, stderr bytes.Buffer
		args := append([]string{"field"}, tc.args...)
		if code := Run(args, &stdout, &stderr); code != ExitOK {
			t.Errorf("%v: code = %d stderr=%s", tc.args, code, stderr.String())
			continue
		}
		if got := strings.TrimSpace(stdout.String()); got != tc.want {
			t.Errorf("%v: got %q, want %q", tc.args, got, tc.want)
		}
	}

	var stdout, stderr bytes.Buffer
	if code := Run([]string{"field", "--type", "multichoice", "--correct", "x"}, &stdout, &stderr); code != ExitError {
		t.Fatalf("missing incorrect: code = %d", code)
	}
	if code := Run([]string{"field", "--type", "numerical", "--answer", "abc"}, &stdout, &stderr); code != ExitUsage {
		t.Fatalf("bad number: code = %d", code)
	}
}

func TestExampleCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	out := filepath.Join(t.TempDir(), "all.xml")
	if code := Run([]string{"example", "--out", out}, &stdout, &stderr); code != ExitOK {
		t.Fatalf("code = %d stderr=%s", code, stderr.String())
	}
	quiz, err := cloze.ReadQuizFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(quiz.Questions) != 1 {
		t.Fatalf("questions = %d", len(quiz.Questions))
	}
	kinds := map[cloze.Kind]int{}
	for _, tok := range cloze.FindTokens(quiz.Questions[0].Contents) {
		kinds[tok.Kind]++
	}
	want := map[cloze.Kind]int{
		cloze.KindNumerical:     2,
		cloze.KindMultiresponse: 2,
		cloze.KindMultichoice:   4,
		cloze.KindShortAnswer:   1,
	}
	for k, n := range want {
		if kinds[k] != n {
			t.Errorf("%s fields = %d, want %d", k, kinds[k], n)
		}
	}
	if !strings.Contains(quiz.Questions[0].Contents, "{10:MULTICHOICE:=choose me~do not choose me}") {
		t.Error("weighted field missing")
	}
}
