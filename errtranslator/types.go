package errtranslator

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// ErrTranslator reduces a native client error to a NativeError when it recognises it,
// and returns err unchanged otherwise.
type ErrTranslator interface {
	Translate(err error) error
}

// NativeError is a native client failure reduced to its code and message.
type NativeError struct {
	Code    int
	Message string
	Err     error
}

func (e NativeError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%d: %s", e.Code, e.Message)
	}
	return e.Message
}

func (e NativeError) Unwrap() error {
	return e.Err
}

// Native runs err through t and always returns a NativeError; errors that t does not
// recognise keep code 0 and the text of their innermost cause.
func Native(t ErrTranslator, err error) NativeError {
	if err == nil {
		return NativeError{}
	}

	if t != nil {
		var ne NativeError
		if errors.As(t.Translate(err), &ne) {
			return ne
		}
	}

	return NativeError{Message: pkgerrors.Cause(err).Error(), Err: err}
}
