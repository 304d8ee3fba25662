package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/mind-engage/moocloze/internal/definition"
)

func runBuild(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		in := flags.String("in", "", "Path to the quiz definition")
		out := flags.String("out", "", "Path of the XML file to write")
		seed := flags.Uint64("seed", 0, "Seed for shuffled fields (overrides the definition)")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if *in == "" || *out == "" {
			fmt.Fprintln(stderr, "--in and --out are required")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		def, err := definition.Load(*in)
		if err != nil {
			fmt.Fprintf(stderr, "Build failed:\n%s\n", err.Error())
			return ExitError
		}
		if flagSet(flags, "seed") {
			def.Seed = seed
		}
		quiz, err := definition.Build(def, nil)
		if err != nil {
			fmt.Fprintf(stderr, "Build failed:\n%s\n", err.Error())
			return ExitError
		}
		if err := quiz.WriteFile(*out); err != nil {
			fmt.Fprintf(stderr, "Build failed:\n%s\n", err.Error())
			return ExitError
		}

		fmt.Fprintf(stdout, "Wrote %d question(s) to %s\n", len(quiz.Questions), *out)
		return ExitOK
	}
}

func flagSet(flags *flag.FlagSet, name string) bool {
	found := false
	flags.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
