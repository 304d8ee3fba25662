package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/mind-engage/moocloze/pkg/cloze"
)

func runInspect(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		in := flags.String("in", "", "Path to a Moodle XML file")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if *in == "" {
			fmt.Fprintln(stderr, "--in is required")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		quiz, err := cloze.ReadQuizFile(*in)
		if err != nil {
			fmt.Fprintf(stderr, "Inspect failed:\n%v\n", err)
			return ExitError
		}
		for i, q := range quiz.Questions {
			tokens := cloze.FindTokens(q.Contents)
			fmt.Fprintf(stdout, "%d. %s (%d field(s))\n", i+1, q.Name, len(tokens))
			for _, tok := range tokens {
				fmt.Fprintf(stdout, "   %-13s weight=%d %s\n", string(tok.Kind)+tok.Suffix, tok.Weight, describe(tok))
			}
		}
		return ExitOK
	}
}

func describe(tok cloze.Token) string {
	if tok.Kind == cloze.KindNumerical {
		answer, tol, err := tok.Numerical()
		if err != nil {
			return tok.Body
		}
		return fmt.Sprintf("answer=%v tolerance=%v", answer, tol)
	}
	var correct, incorrect []string
	for _, a := range tok.Answers() {
		if a.Correct {
			correct = append(correct, a.Text)
		} else {
			incorrect = append(incorrect, a.Text)
		}
	}
	s := "correct=[" + strings.Join(correct, ", ") + "]"
	if len(incorrect) > 0 {
		s += " incorrect=[" + strings.Join(incorrect, ", ") + "]"
	}
	return s
}
