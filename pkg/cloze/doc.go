// Package cloze renders Moodle "Embedded Answers (Cloze)" questions as
// Moodle XML.
//
// Build fields, interpolate their rendered tokens into a Question's
// contents, collect the questions in a Quiz and write it with WriteFile.
// The resulting file can be imported into a question bank category.
package cloze
