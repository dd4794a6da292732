package errtranslator

import (
	"regexp"
	"strconv"

	pkgerrors "github.com/pkg/errors"
)

var oraCodeRegexp = regexp.MustCompile(`ORA-(\d+)`)

// ParseOracleCode extracts the numeric part of the first ORA-NNNNN token in text.
func ParseOracleCode(text string) (int, bool) {
	m := oraCodeRegexp.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	code, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return code, true
}

// OracleErrTranslator recognises errors whose text carries an ORA-NNNNN code. It is the
// fallback for drivers that only report Oracle errors as strings.
type OracleErrTranslator struct{}

func (OracleErrTranslator) Translate(err error) error {
	if err == nil {
		return nil
	}

	msg := pkgerrors.Cause(err).Error()
	if code, ok := ParseOracleCode(msg); ok {
		return NativeError{Code: code, Message: msg, Err: err}
	}

	return err
}
