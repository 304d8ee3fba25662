package cli

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mind-engage/moocloze/internal/definition"
)

func runField(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		typ := flags.String("type", "", "numerical, shortanswer, multiresponse or multichoice")
		weight := flags.Int("weight", 0, "Relative weight inside the question (default 1)")
		answer := flags.String("answer", "", "Expected answer (numerical, shortanswer)")
		tolerance := flags.Float64("tolerance", 0, "Absolute tolerance (numerical)")
		hideTolerance := flags.Bool("hide-tolerance", false, "Do not print the tolerance note (numerical)")
		correct := flags.String("correct", "", "Correct option; comma-separated for multiresponse")
		incorrect := flags.String("incorrect", "", "Comma-separated incorrect options")
		vertical := flags.Bool("vertical", false, "Stack options vertically (multiresponse)")
		shuffle := flags.String("shuffle", "", "true or false; default depends on the type")
		displayMode := flags.String("display-mode", "", "dropdown, horizontal_buttons or vertical_buttons (multichoice)")
		seed := flags.Uint64("seed", 0, "Seed for shuffled options")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if *typ == "" {
			fmt.Fprintln(stderr, "--type is required")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		f := definition.Field{
			Type:             *typ,
			Weight:           *weight,
			IncorrectAnswers: splitList(*incorrect),
			DisplayMode:      *displayMode,
		}
		switch strings.ToLower(*typ) {
		case definition.TypeNumerical:
			v, err := strconv.ParseFloat(*answer, 64)
			if err != nil {
				fmt.Fprintf(stderr, "--answer must be a number: %v\n", err)
				return ExitUsage
			}
			f.Answer = v
			f.Tolerance = tolerance
			show := !*hideTolerance
			f.ShowTolerance = &show
		case definition.TypeShortAnswer:
			f.Answer = *answer
		case definition.TypeMultiresponse:
			f.CorrectAnswers = splitList(*correct)
			horizontal := !*vertical
			f.Horizontal = &horizontal
		case definition.TypeMultichoice:
			if *correct != "" {
				f.Correct = *correct
			}
		}
		if *shuffle != "" {
			b, err := strconv.ParseBool(*shuffle)
			if err != nil {
				fmt.Fprintf(stderr, "--shuffle: %v\n", err)
				return ExitUsage
			}
			f.Shuffle = &b
		}

		if err := definition.ValidateField(f); err != nil {
			fmt.Fprintf(stderr, "Invalid field:\n%s\n", err.Error())
			return ExitError
		}
		var def definition.Definition
		if flagSet(flags, "seed") {
			def.Seed = seed
		}
		field, err := definition.NewField(f, def.Shuffler())
		if err != nil {
			fmt.Fprintf(stderr, "Invalid field:\n%s\n", err.Error())
			return ExitError
		}
		tok, err := field.Render()
		if err != nil {
			fmt.Fprintf(stderr, "Invalid field:\n%s\n", err.Error())
			return ExitError
		}
		fmt.Fprintln(stdout, tok)
		return ExitOK
	}
}

func splitList(s string) []any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]any, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
