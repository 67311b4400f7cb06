package catalog

import "fmt"

// InputError reports a malformed or misnamed input file. It always carries
// the offending path; Err holds the underlying read or parse failure when
// one exists.
type InputError struct {
	Path string
	Msg  string
	Err  error
}

// Error renders as "<path>: <message>".
func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *InputError) Unwrap() error {
	return e.Err
}

func newInputError(path, msg string) *InputError {
	return &InputError{Path: path, Msg: msg}
}

func wrapInputError(path string, err error) *InputError {
	return &InputError{Path: path, Msg: err.Error(), Err: err}
}
