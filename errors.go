package pdooci

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStatementClosed statement used after CloseCursor
	ErrStatementClosed = errors.New("statement closed")
	// ErrConnectionClosed connection used after Close
	ErrConnectionClosed = errors.New("connection closed")
	// ErrNoRows FetchColumn on an exhausted cursor
	ErrNoRows = errors.New("no more rows")
	// ErrDialectNotFound data source names an unregistered driver
	ErrDialectNotFound = errors.New("dialect not found")
)

// ConnectionError is returned when the native connect call yields no handle.
type ConnectionError struct {
	Code    int
	Message string
	Err     error
}

func (e *ConnectionError) Error() string {
	return describe("connect", e.Code, e.Message)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError is returned when a native execute fails. LOB is set when the statement ran
// but saving LOB content afterwards did not.
type QueryError struct {
	Code    int
	Message string
	Query   string
	LOB     bool
	Err     error
}

func (e *QueryError) Error() string {
	op := "execute"
	if e.LOB {
		op = "save lob"
	}
	return describe(op, e.Code, e.Message)
}

func (e *QueryError) Unwrap() error { return e.Err }

// describe prefixes msg with code unless the message already carries its ORA- token.
func describe(op string, code int, msg string) string {
	if code == 0 || strings.Contains(msg, "ORA-") {
		return op + ": " + msg
	}
	return fmt.Sprintf("%s: %d: %s", op, code, msg)
}

// UsageError reports a call the adapter refuses before touching the native client.
type UsageError struct {
	Op      string
	Message string
}

func (e *UsageError) Error() string {
	return e.Op + ": " + e.Message
}

func usageErr(op, format string, args ...interface{}) error {
	return &UsageError{Op: op, Message: fmt.Sprintf(format, args...)}
}
