package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/mind-engage/moocloze/internal/definition"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		in := flags.String("in", "", "Path to the quiz definition")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if *in == "" {
			fmt.Fprintln(stderr, "--in is required")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		if _, err := definition.Load(*in); err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}

		fmt.Fprintln(stdout, "Definition OK")
		return ExitOK
	}
}
