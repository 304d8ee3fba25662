package cloze_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/mind-engage/moocloze/pkg/cloze"
)

func TestFieldFor(t *testing.T) {
	cases := []struct {
		v    any
		kind cloze.Kind
	}{
		{1, cloze.KindNumerical},
		{uint32(4294967289), cloze.KindNumerical},
		{0.5, cloze.KindNumerical},
		{"192.168.1.3", cloze.KindShortAnswer},
		{cloze.NewMultichoice("a", []any{"b"}), cloze.KindMultichoice},
	}
	for _, tc := range cases {
		f, err := cloze.FieldFor(tc.v)
		if err != nil {
			t.Fatalf("FieldFor(%v): %v", tc.v, err)
		}
		if f.Kind() != tc.kind {
			t.Errorf("FieldFor(%v) kind %s, want %s", tc.v, f.Kind(), tc.kind)
		}
	}

	_, err := cloze.FieldFor([]int{1})
	var uf *cloze.UnsupportedFieldError
	if !errors.As(err, &uf) {
		t.Fatalf("expected UnsupportedFieldError, got %v", err)
	}
}

func TestFieldForKeepsIntegersExact(t *testing.T) {
	cases := []struct {
		v    any
		want string
	}{
		{int64(9007199254740993), "{1:NUMERICAL:=9007199254740993:0}"},
		{uint64(18446744073709551615), "{1:NUMERICAL:=18446744073709551615:0}"},
		{int64(-9007199254740993), "{1:NUMERICAL:=-9007199254740993:0}"},
		{uint(7), "{1:NUMERICAL:=7:0}"},
	}
	for _, tc := range cases {
		f, err := cloze.FieldFor(tc.v)
		if err != nil {
			t.Fatalf("FieldFor(%v): %v", tc.v, err)
		}
		if got := cloze.MustRender(f); got != tc.want {
			t.Errorf("FieldFor(%v) = %q, want %q", tc.v, got, tc.want)
		}
	}

	if _, err := cloze.NewIntegerNumerical("1.5"); err == nil {
		t.Fatal("NewIntegerNumerical accepted a decimal")
	}
}

func TestTableEscapesVisibleCells(t *testing.T) {
	tbl := cloze.Table{
		Columns: []string{"a<b", "answer"},
		Rows:    []cloze.Row{{Cells: []any{"x & <y>", 3}, Hidden: []string{"answer"}}},
	}
	s, err := tbl.Render()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<th>a&lt;b</th>", "	<td>x &amp; &lt;y&gt;</td>\n", "	<td>{1:NUMERICAL:=3:0}</td>\n"} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %q in\n%s", want, s)
		}
	}
}

func TestTableRender(t *testing.T) {
	tbl := cloze.Table{
		Columns: []string{"SYN", "ACK", "seq_number", "ack_number", "source_ip"},
		Rows: []cloze.Row{
			{Cells: []any{1, 0, 555, nil, "192.168.1.3"}, Hidden: []string{"SYN", "source_ip"}},
			{Cells: []any{1, 1, 13, 556, "192.168.1.6"}, Hidden: []string{"ack_number"}},
		},
	}
	s, err := tbl.Render()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"<table><tr><th>SYN</th><th>ACK</th><th>seq_number</th><th>ack_number</th><th>source_ip</th></tr>",
		"\t<td>{1:NUMERICAL:=1:0}</td>\n\t<td>0</td>\n\t<td>555</td>\n\t<td>-</td>\n\t<td>{1:SHORTANSWER:=192.168.1.3}</td>\n",
		"\t<td>{1:NUMERICAL:=556:0}</td>\n",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %q in\n%s", want, s)
		}
	}
	if n := len(cloze.FindTokens(s)); n != 3 {
		t.Fatalf("got %d tokens, want 3", n)
	}
}

func TestTableErrors(t *testing.T) {
	unknown := cloze.Table{Columns: []string{"a"}, Rows: []cloze.Row{{Cells: []any{1}, Hidden: []string{"b"}}}}
	var ve *cloze.ValidationError
	if _, err := unknown.Render(); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	short := cloze.Table{Columns: []string{"a", "b"}, Rows: []cloze.Row{{Cells: []any{1}}}}
	if _, err := short.Render(); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	unsupported := cloze.Table{Columns: []string{"flags"}, Rows: []cloze.Row{{Cells: []any{[]string{"x"}}, Hidden: []string{"flags"}}}}
	_, err := unsupported.Render()
	var uf *cloze.UnsupportedFieldError
	if !errors.As(err, &uf) || uf.Column != "flags" {
		t.Fatalf("expected UnsupportedFieldError for column flags, got %v", err)
	}
}
