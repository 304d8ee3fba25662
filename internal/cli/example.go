package cli

import (
	"flag"
	"fmt"
	"io"
	"math"

	"github.com/mind-engage/moocloze/pkg/cloze"
)

// ExampleQuestion builds a question that uses every supported field type.
func ExampleQuestion() cloze.Question {
	numbers := []any{0, 1, 123}
	letters := []any{"a", "b"}
	negative := []any{0, 5, 10}

	contents := "This is a question testing all supported Cloze fields.<br/>" +
		"<ul>" +
		"<li><strong>Numerical</strong>: expect integer or decimal values.<br/>" +
		"Here, exactly 10 is expected, and any other value will be considered wrong: " +
		cloze.MustRender(cloze.NewNumerical(10)) + ".<br/>" +
		`In the next box, the value of \(\pi\) is expected, with a tolerance of 0.0001: ` +
		cloze.MustRender(cloze.NewNumerical(math.Pi, cloze.WithTolerance(0.0001))) +
		". The message displaying error tolerance can be disabled at will</li>" +
		"<li><strong>Multiresponse</strong>: provide 1 or more options, " +
		"of which at least 1 must be correct. The user must check only those that are correct.<br/>" +
		"Here, the user is expected to check out numbers and not letters: " +
		cloze.MustRender(cloze.NewMultiresponse(numbers, letters)) +
		"<br/>The same question can be shown vertically and/or without shuffling the options: " +
		cloze.MustRender(cloze.NewMultiresponse(numbers, letters,
			cloze.WithHorizontal(false), cloze.WithShuffle(false))) +
		"<br/>You can use the `shuffle` parameter to provide a random or lexicographic order of options." +
		"</li>" +
		"<li><strong>Multichoice</strong>: provide 1 correct option and any number of incorrect options. " +
		"The user must select the correct one. Different display modes are possible. " +
		"In all the following, the negative value must be selected:<br/>As a dropdown menu (default): " +
		cloze.MustRender(cloze.NewMultichoice(-1, negative)) +
		"<br/>As a vertical set of radio buttons: " +
		cloze.MustRender(cloze.NewMultichoice(-1, negative, cloze.WithDisplayMode(cloze.VerticalButtons))) +
		"<br/>As a horizontal set of radio buttons: " +
		cloze.MustRender(cloze.NewMultichoice(-1, negative, cloze.WithDisplayMode(cloze.HorizontalButtons))) +
		"<br/>You can also use the `shuffle` parameter to provide a random or lexicographic order of options." +
		"</li>" +
		"<li><strong>ShortAnswer</strong>: expect a specific string from the user. " +
		"For instance, the human's best friend is expected as the input: " +
		cloze.MustRender(cloze.NewShortAnswer("book")) + "." +
		"</li>" +
		"</ul>" +
		"Note that all fields admit a `weight` parameter that determines its relative value " +
		"within the question they are displayed. For instance the following one is 10 times " +
		"as important as any of the others: " +
		cloze.MustRender(cloze.NewMultichoice("choose me", []any{"do not choose me"}, cloze.WithWeight(10)))

	return cloze.Question{
		Name:     "Question testing all supported Cloze fields",
		Contents: contents,
	}
}

func runExample(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		out := flags.String("out", "question_with_all_fields.xml", "Path of the XML file to write")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		if err := cloze.WriteQuestionsFile(*out, ExampleQuestion()); err != nil {
			fmt.Fprintf(stderr, "Example failed:\n%v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", *out)
		return ExitOK
	}
}
