package errtranslator

import "errors"

type sqliteCoder interface {
	error
	Code() int
}

// SqliteErrTranslator recognises sqlite driver errors exposing their result code through
// a Code() method.
type SqliteErrTranslator struct{}

func (SqliteErrTranslator) Translate(err error) error {
	var coded sqliteCoder
	if !errors.As(err, &coded) {
		return err
	}

	return NativeError{Code: coded.Code(), Message: coded.Error(), Err: err}
}
