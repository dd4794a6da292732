package pdooci

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/pdooci/pdooci/errtranslator"
	"github.com/pdooci/pdooci/logger"
)

type stmtState int

const (
	statePrepared stmtState = iota
	stateExecuted
	stateExhausted
	stateClosed
)

func (s stmtState) String() string {
	switch s {
	case statePrepared:
		return "prepared"
	case stateExecuted:
		return "executed"
	case stateExhausted:
		return "exhausted"
	}
	return "closed"
}

// Stmt is a parsed statement and, once executed, its cursor. A Stmt is not safe for
// concurrent use.
type Stmt struct {
	conn   *Conn
	ctx    context.Context
	query  string
	native NativeStmt
	mode   FetchMode
	binds  bindRegistry
	state  stmtState
	// pos counts fetched rows; -1 once the cursor is exhausted
	pos int

	columns    []ColumnMeta
	names      []string
	folded     []string
	foldedCase Case
}

// usable fails once the statement or its connection is closed.
func (s *Stmt) usable() error {
	if s.state == stateClosed {
		return ErrStatementClosed
	}
	if s.conn.closed {
		return ErrConnectionClosed
	}
	return nil
}

// QueryString is the statement text after placeholder rewriting.
func (s *Stmt) QueryString() string { return s.query }

// SetFetchMode sets the default mode of Fetch and FetchAll.
func (s *Stmt) SetFetchMode(mode FetchMode) error {
	if err := mode.validate(); err != nil {
		return err
	}
	s.mode = mode
	return nil
}

// FetchMode is the current default fetch mode.
func (s *Stmt) FetchMode() FetchMode { return s.mode }

func (s *Stmt) modeOf(mode []FetchMode) (FetchMode, error) {
	if len(mode) == 0 {
		return s.mode, nil
	}
	return mode[0], mode[0].validate()
}

// BindValue binds a copy of value to param: a 1-based index of a `?` placeholder or a
// marker name with or without its colon. It reports false when the native statement has
// no such marker.
func (s *Stmt) BindValue(param interface{}, value interface{}, kind ...ParamKind) (bool, error) {
	if err := s.usable(); err != nil {
		return false, err
	}
	e, err := resolveParam("bind value", param)
	if err != nil {
		return false, err
	}
	e.value = value
	e.kind, e.coerce = kindOf(kind)
	return s.bind(e)
}

// BindParam binds slot to param. The slot is read at every execute and written by
// Bound-mode fetches from the column param maps to: position index-1, or the upper-cased
// marker name.
func (s *Stmt) BindParam(param interface{}, slot *Slot, kind ...ParamKind) (bool, error) {
	if err := s.usable(); err != nil {
		return false, err
	}
	if slot == nil {
		return false, usageErr("bind param", "nil slot")
	}
	e, err := resolveParam("bind param", param)
	if err != nil {
		return false, err
	}
	e.slot = slot
	e.kind, e.coerce = kindOf(kind)
	return s.bind(e)
}

// BindColumn makes Bound-mode fetches write column (1-based number or name) into slot.
func (s *Stmt) BindColumn(column interface{}, slot *Slot) error {
	if s.state == stateClosed {
		return ErrStatementClosed
	}
	if slot == nil {
		return usageErr("bind column", "nil slot")
	}
	e, err := resolveColumn(column)
	if err != nil {
		return err
	}
	e.slot = slot
	s.binds.putColumn(e)
	return nil
}

func kindOf(kind []ParamKind) (ParamKind, bool) {
	if len(kind) == 0 {
		return ParamStr, false
	}
	return kind[0], true
}

func (s *Stmt) bind(e *bindEntry) (bool, error) {
	v, err := e.current()
	if err != nil {
		return false, usageErr("bind", "%s as %v: %v", e.param, e.kind, err)
	}
	if !s.native.BindByName(e.marker, v, e.kind) {
		return false, nil
	}
	s.binds.put(e)
	return true, nil
}

// Execute runs the statement. values bind positionally to the `?` placeholders;
// sql.NamedArg values and map[string]interface{} entries bind by name.
func (s *Stmt) Execute(values ...interface{}) error {
	return s.ExecuteContext(s.ctx, values...)
}

// ExecuteContext is Execute with a context for the native calls.
func (s *Stmt) ExecuteContext(ctx context.Context, values ...interface{}) error {
	if err := s.usable(); err != nil {
		return err
	}
	if ctx != nil {
		s.ctx = ctx
	}

	if err := s.bindValues(values); err != nil {
		return err
	}

	// slots are read at execute time
	for _, e := range s.binds.params {
		if e.slot == nil {
			continue
		}
		v, err := e.current()
		if err != nil {
			return usageErr("execute", "%s as %v: %v", e.param, e.kind, err)
		}
		s.native.BindByName(e.marker, v, e.kind)
	}

	begin := time.Now()
	err := s.native.Execute(s.ctx, s.conn.commitMode())
	s.conn.trace(s.ctx, begin, s.query, s.binds.vars(), s.native.NumRows, err)
	if err != nil {
		qe, ne := queryErr(s.conn.dialect, s.query, false, err)
		s.conn.setLastErr(&ne)
		return qe
	}

	for _, e := range s.binds.params {
		if !e.kind.IsLOB() {
			continue
		}
		if err := s.native.SaveLOB(s.ctx, e.marker); err != nil {
			qe, ne := queryErr(s.conn.dialect, s.query, true, err)
			s.conn.setLastErr(&ne)
			return qe
		}
	}

	s.state, s.pos = stateExecuted, 0
	s.columns = s.native.Columns()
	s.names = columnNames(s.columns)
	s.folded = nil
	return nil
}

func (s *Stmt) bindValues(values []interface{}) error {
	n := 0
	for _, value := range values {
		var (
			ok  bool
			err error
		)
		switch v := value.(type) {
		case sql.NamedArg:
			ok, err = s.BindValue(v.Name, v.Value)
			if err == nil && !ok {
				err = usageErr("execute", "no marker named %s", v.Name)
			}
		case map[string]interface{}:
			keys := make([]string, 0, len(v))
			for k := range v {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if ok, err = s.BindValue(k, v[k]); err == nil && !ok {
					err = usageErr("execute", "no marker named %s", k)
				}
				if err != nil {
					break
				}
			}
		default:
			n++
			ok, err = s.BindValue(n, v)
			if err == nil && !ok {
				err = usageErr("execute", "no placeholder %d", n)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// next pulls one native row, moving to Exhausted on io.EOF.
func (s *Stmt) next(op string) ([]interface{}, error) {
	if err := s.usable(); err != nil {
		return nil, err
	}
	switch s.state {
	case statePrepared:
		return nil, usageErr(op, "statement not executed")
	case stateExhausted:
		return nil, ErrNoRows
	}

	values, err := s.native.Fetch(s.ctx)
	if errors.Is(err, io.EOF) {
		s.state, s.pos = stateExhausted, -1
		return nil, ErrNoRows
	}
	if err != nil {
		qe, ne := queryErr(s.conn.dialect, s.query, false, err)
		s.conn.setLastErr(&ne)
		return nil, qe
	}
	s.pos++
	return values, nil
}

// Fetch returns the next row in mode, or the statement's fetch mode when none is given.
// It returns ErrNoRows once the cursor is exhausted.
func (s *Stmt) Fetch(mode ...FetchMode) (interface{}, error) {
	m, err := s.modeOf(mode)
	if err != nil {
		return nil, err
	}
	values, err := s.next("fetch")
	if err != nil {
		return nil, err
	}
	return s.shape(m, values)
}

// FetchAll shapes every remaining row. An exhausted cursor yields an empty Result.
func (s *Stmt) FetchAll(mode ...FetchMode) (*Result, error) {
	m, err := s.modeOf(mode)
	if err != nil {
		return nil, err
	}

	var rows [][]interface{}
	for {
		values, err := s.next("fetch all")
		if errors.Is(err, ErrNoRows) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, values)
	}
	return s.shapeAll(m, rows)
}

// FetchColumn returns column idx (default 0) of the next row.
func (s *Stmt) FetchColumn(idx ...int) (interface{}, error) {
	col := 0
	if len(idx) > 0 {
		col = idx[0]
	}
	if col < 0 {
		return nil, usageErr("fetch column", "negative column %d", col)
	}
	values, err := s.next("fetch column")
	if err != nil {
		return nil, err
	}
	return s.shape(Column(col), values)
}

// FetchObject returns the next row as an Object, or as a new instance of class.
func (s *Stmt) FetchObject(class ...interface{}) (interface{}, error) {
	if len(class) == 0 {
		return s.Fetch(Obj)
	}
	return s.Fetch(Class(class[0]))
}

// RowCount is the native row counter: affected rows after DML, rows fetched so far
// for queries.
func (s *Stmt) RowCount() (int64, error) {
	if err := s.usable(); err != nil {
		return 0, err
	}
	return s.native.NumRows(), nil
}

// ColumnCount is the number of result columns, 0 before execute and after CloseCursor.
func (s *Stmt) ColumnCount() int {
	if s.state == stateClosed || s.state == statePrepared {
		return 0
	}
	return len(s.columns)
}

// ColumnMeta describes the 0-based result column idx.
func (s *Stmt) ColumnMeta(idx int) (ColumnMeta, error) {
	if err := s.usable(); err != nil {
		return ColumnMeta{}, err
	}
	if idx < 0 || idx >= len(s.columns) {
		return ColumnMeta{}, usageErr("column meta", "column %d out of range, %d columns", idx, len(s.columns))
	}
	return s.columns[idx], nil
}

// CloseCursor frees the native statement. Later calls are no-ops; every other use of
// the statement then fails with ErrStatementClosed.
func (s *Stmt) CloseCursor() error {
	if s.state == stateClosed {
		return nil
	}
	s.state, s.pos = stateClosed, -1
	return s.native.Free()
}

// ErrorCode is the connection's last native error code.
func (s *Stmt) ErrorCode() int { return s.conn.ErrorCode() }

// ErrorInfo is the connection's last native error.
func (s *Stmt) ErrorInfo() (errtranslator.NativeError, bool) { return s.conn.ErrorInfo() }

// paramNo is the 0-based placeholder of a positional entry, or the ordinal of a named
// marker in the statement text.
func paramNo(e *bindEntry, markers []string) int {
	if e.pos >= 0 {
		return e.pos
	}
	for i, m := range markers {
		if strings.EqualFold(m, e.marker) {
			return i
		}
	}
	return -1
}

// DebugDumpParams writes the statement text and its bound parameters to w.
func (s *Stmt) DebugDumpParams(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "SQL: [%d] %s\nParams:  %d\n", len(s.query), s.query, len(s.binds.params)); err != nil {
		return err
	}
	markers := markerNames(s.query)
	for _, e := range s.binds.params {
		v, _ := e.current()
		_, err := fmt.Fprintf(w, "Key: Name: [%d] :%s\nparamno=%d\nname=[%d] \":%s\"\nis_param=1\nparam_type=%v\nvalue=%s\n",
			len(e.marker)+1, e.marker, paramNo(e, markers), len(e.marker)+1, e.marker, e.kind, logger.FormatVar(v, "'"))
		if err != nil {
			return err
		}
	}
	return nil
}
