// Package prompt asks interactive questions with bounded re-prompting.
//
// A Prompter sits on top of a LineReader. On a real terminal the reader is a
// raw-mode line editor (golang.org/x/term) whose Tab key completes file
// paths; on pipes and in tests it is a plain buffered reader. Every question
// is a retry loop: an invalid answer prints a hint and asks again, up to
// Options.MaxAttempts times. End of input or the CancelWord end the loop with
// ErrCanceled.
package prompt
