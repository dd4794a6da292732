package pdooci

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pdooci/pdooci/errtranslator"
	"github.com/pdooci/pdooci/logger"
	"github.com/spf13/cast"
)

// Conn is one native connection with its autocommit flag, key-case policy and last
// native error. A Conn is not safe for concurrent use.
type Conn struct {
	id         string
	native     NativeConn
	dialect    Dialect
	source     DataSource
	logger     logger.Interface
	autocommit bool
	keyCase    Case
	persistent bool
	lastErr    *errtranslator.NativeError
	closed     bool
}

// OpenContext is Open with a context for the native connect.
func OpenContext(ctx context.Context, dataSource, user, password string, opts ...ConfigOption) (*Conn, error) {
	config := newConfig(opts)

	src, err := ParseDataSource(dataSource)
	if err != nil {
		return nil, err
	}
	dialect, ok := GetDialect(src.Driver)
	if !ok {
		return nil, fmt.Errorf("%w: %q, registered: %s", ErrDialectNotFound, src.Driver, strings.Join(AvailableDrivers(), ", "))
	}

	native, err := config.Connector.Connect(ctx, ConnectParams{
		Dialect:    dialect,
		Source:     src,
		User:       user,
		Password:   password,
		Persistent: config.Persistent,
	})
	if err != nil {
		cerr := connectionErr(dialect, err)
		config.Logger.Error(ctx, "connect %s as %s: %v", src.ConnectString, user, cerr)
		return nil, cerr
	}

	c := &Conn{
		id:         uuid.NewString(),
		native:     native,
		dialect:    dialect,
		source:     src,
		logger:     config.Logger,
		autocommit: config.Autocommit,
		keyCase:    config.Case,
		persistent: config.Persistent,
	}
	c.logger.Info(ctx, "connection %s to %s as %s (%s)", c.id, src.ConnectString, user, dialect.Name())
	return c, nil
}

// ID identifies the connection in log lines.
func (c *Conn) ID() string { return c.id }

// Charset is the charset directive of the data source, empty when it had none.
func (c *Conn) Charset() string { return c.source.Charset }

func (c *Conn) commitMode() CommitMode {
	if c.autocommit {
		return CommitOnSuccess
	}
	return NoAutoCommit
}

func (c *Conn) setLastErr(ne *errtranslator.NativeError) {
	c.lastErr = ne
}

func (c *Conn) trace(ctx context.Context, begin time.Time, query string, vars map[string]interface{}, rows func() int64, err error) {
	c.logger.Trace(ctx, begin, func() (string, int64) {
		sql := query
		params := []interface{}{vars}
		if pf, ok := c.logger.(logger.ParamsFilter); ok {
			_, params = pf.ParamsFilter(ctx, query, params...)
		}
		if len(params) > 0 {
			sql = logger.ExplainSQL(query, "'", vars)
		}
		if err != nil {
			return sql, -1
		}
		return sql, rows()
	}, err)
}

// Prepare parses query after rewriting its `?` placeholders.
func (c *Conn) Prepare(query string) (*Stmt, error) {
	return c.PrepareContext(context.Background(), query)
}

// PrepareContext is Prepare with a context kept for the statement's native calls.
func (c *Conn) PrepareContext(ctx context.Context, query string) (*Stmt, error) {
	if c.closed {
		return nil, ErrConnectionClosed
	}

	rewritten := InsertMarks(query)
	native, err := c.native.Parse(ctx, rewritten)
	if err != nil {
		qe, ne := queryErr(c.dialect, rewritten, false, err)
		c.setLastErr(&ne)
		return nil, qe
	}

	return &Stmt{
		conn:   c,
		ctx:    ctx,
		query:  rewritten,
		native: native,
		mode:   Both,
		state:  statePrepared,
	}, nil
}

// Query prepares and executes query, optionally setting the statement's fetch mode.
func (c *Conn) Query(query string, mode ...FetchMode) (*Stmt, error) {
	return c.QueryContext(context.Background(), query, mode...)
}

// QueryContext is Query with a context.
func (c *Conn) QueryContext(ctx context.Context, query string, mode ...FetchMode) (*Stmt, error) {
	st, err := c.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(mode) > 0 {
		if err := st.SetFetchMode(mode[0]); err != nil {
			st.CloseCursor()
			return nil, err
		}
	}
	if err := st.Execute(); err != nil {
		st.CloseCursor()
		return nil, err
	}
	return st, nil
}

// Exec runs query and returns its row count.
func (c *Conn) Exec(query string) (int64, error) {
	return c.ExecContext(context.Background(), query)
}

// ExecContext is Exec with a context.
func (c *Conn) ExecContext(ctx context.Context, query string) (int64, error) {
	st, err := c.QueryContext(ctx, query)
	if err != nil {
		return 0, err
	}
	n, err := st.RowCount()
	if cerr := st.CloseCursor(); err == nil {
		err = cerr
	}
	return n, err
}

// Commit commits the open transaction and refreshes the last-error snapshot.
func (c *Conn) Commit() error {
	return c.end(context.Background(), "COMMIT", c.native.Commit)
}

// Rollback rolls back the open transaction and refreshes the last-error snapshot.
func (c *Conn) Rollback() error {
	return c.end(context.Background(), "ROLLBACK", c.native.Rollback)
}

func (c *Conn) end(ctx context.Context, op string, fn func(context.Context) error) error {
	if c.closed {
		return ErrConnectionClosed
	}

	begin := time.Now()
	err := fn(ctx)
	c.trace(ctx, begin, op, nil, func() int64 { return -1 }, err)
	if err != nil {
		qe, ne := queryErr(c.dialect, op, false, err)
		c.setLastErr(&ne)
		return qe
	}
	c.setLastErr(nil)
	return nil
}

// BeginTransaction turns autocommit off until Commit or Rollback is followed by
// SetAttribute(AttrAutocommit, true).
func (c *Conn) BeginTransaction() error {
	if c.closed {
		return ErrConnectionClosed
	}
	c.autocommit = false
	return nil
}

// InTransaction reports whether statements run without autocommit.
func (c *Conn) InTransaction() bool { return !c.autocommit }

// SetAttribute sets AttrAutocommit or AttrCase. Autocommit is true for boolean true and
// for "on" or "true" in any case, false for anything else.
func (c *Conn) SetAttribute(attr Attribute, value interface{}) error {
	switch attr {
	case AttrAutocommit:
		c.autocommit = autocommitValue(value)
	case AttrCase:
		kc, err := ParseCase(value)
		if err != nil {
			return err
		}
		c.keyCase = kc
	case AttrDriverName, AttrPersistent:
		return usageErr("set attribute", "%v is read only", attr)
	default:
		return usageErr("set attribute", "unknown attribute %v", attr)
	}
	return nil
}

// GetAttribute reads a connection attribute.
func (c *Conn) GetAttribute(attr Attribute) (interface{}, error) {
	switch attr {
	case AttrAutocommit:
		return c.autocommit, nil
	case AttrCase:
		return c.keyCase, nil
	case AttrDriverName:
		return c.dialect.Name(), nil
	case AttrPersistent:
		return c.persistent, nil
	}
	return nil, usageErr("get attribute", "unknown attribute %v", attr)
}

// ErrorCode is the code of the last native error, 0 when there is none.
func (c *Conn) ErrorCode() int {
	if c.lastErr == nil {
		return 0
	}
	return c.lastErr.Code
}

// ErrorInfo is the last native error snapshot.
func (c *Conn) ErrorInfo() (errtranslator.NativeError, bool) {
	if c.lastErr == nil {
		return errtranslator.NativeError{}, false
	}
	return *c.lastErr, true
}

// Quote renders s as a single-quoted literal.
func (c *Conn) Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// sequenceName is an Oracle identifier, plain or double-quoted, optionally schema-qualified.
var sequenceName = regexp.MustCompile(`^(?:[A-Za-z][A-Za-z0-9_$#]*|"[^"]+")(?:\.(?:[A-Za-z][A-Za-z0-9_$#]*|"[^"]+"))?$`)

// LastInsertID reads <sequence>.currval. Without a valid sequence name it fails with a
// UsageError; when the query fails it returns -1 with the error.
func (c *Conn) LastInsertID(sequence string) (int64, error) {
	sequence = strings.TrimSpace(sequence)
	if sequence == "" {
		return 0, usageErr("last insert id", "a sequence name is required")
	}
	if !sequenceName.MatchString(sequence) {
		return 0, usageErr("last insert id", "%q is not a sequence name", sequence)
	}

	st, err := c.Query("select " + sequence + ".currval from dual")
	if err != nil {
		return -1, err
	}
	defer st.CloseCursor()

	v, err := st.FetchColumn(0)
	if err != nil {
		return -1, err
	}
	id, err := cast.ToInt64E(v)
	if err != nil {
		return -1, usageErr("last insert id", "%s.currval is %T", sequence, v)
	}
	return id, nil
}

// Close releases the native connection; an open transaction is rolled back by the
// native client. Closing twice is a no-op.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	err := c.native.Close()
	c.logger.Info(context.Background(), "connection %s closed", c.id)
	return err
}
