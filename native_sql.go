package pdooci

import (
	"context"
	"database/sql"
	"io"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var defaultConnector = NewSQLConnector()

// ClosePersistent closes the native pools opened by persistent connects.
func ClosePersistent() error {
	return defaultConnector.ClosePersistent()
}

// SQLConnector is the database/sql native client. Every NativeConn pins one *sql.Conn.
type SQLConnector struct {
	mu    sync.Mutex
	pools map[string]*sql.DB
	db    *sql.DB
}

// NewSQLConnector opens a database/sql pool per connect, or per driver and DSN for
// persistent connects.
func NewSQLConnector() *SQLConnector {
	return &SQLConnector{pools: map[string]*sql.DB{}}
}

// DBConnector takes connections from db and never closes it.
func DBConnector(db *sql.DB) *SQLConnector {
	return &SQLConnector{pools: map[string]*sql.DB{}, db: db}
}

func (c *SQLConnector) Connect(ctx context.Context, p ConnectParams) (NativeConn, error) {
	db, owned, err := c.pool(p)
	if err != nil {
		return nil, err
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		if owned {
			db.Close()
		}
		return nil, errors.Wrap(err, "connect")
	}

	sc := &sqlConn{conn: conn, dialect: p.Dialect}
	if owned {
		sc.db = db
	}
	return sc, nil
}

// pool returns the *sql.DB to take the connection from and whether the connection owns it.
func (c *SQLConnector) pool(p ConnectParams) (*sql.DB, bool, error) {
	if c.db != nil {
		return c.db, false, nil
	}

	dsn, err := p.Dialect.DSN(p.Source, p.User, p.Password)
	if err != nil {
		return nil, false, errors.Wrap(err, "dsn")
	}

	if !p.Persistent {
		db, err := sql.Open(p.Dialect.DriverName(), dsn)
		return db, true, errors.Wrap(err, "open")
	}

	key := p.Dialect.DriverName() + "\x00" + dsn
	c.mu.Lock()
	defer c.mu.Unlock()
	if db, ok := c.pools[key]; ok {
		return db, false, nil
	}
	db, err := sql.Open(p.Dialect.DriverName(), dsn)
	if err != nil {
		return nil, false, errors.Wrap(err, "open")
	}
	c.pools[key] = db
	return db, false, nil
}

// ClosePersistent closes every shared pool.
func (c *SQLConnector) ClosePersistent() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var g errgroup.Group
	for key, db := range c.pools {
		g.Go(db.Close)
		delete(c.pools, key)
	}
	return g.Wait()
}

type sqlConn struct {
	conn    *sql.Conn
	db      *sql.DB
	tx      *sql.Tx
	dialect Dialect
	// open statements; their rows must be closed before the *sql.Conn can be
	stmts  map[*sqlStmt]struct{}
	closed bool
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// Parse is local, like OCI parse: errors in the text surface at execute.
func (c *sqlConn) Parse(ctx context.Context, query string) (NativeStmt, error) {
	if c.closed {
		return nil, ErrConnectionClosed
	}
	s := &sqlStmt{
		conn:    c,
		query:   query,
		markers: markerNames(query),
		binds:   map[string]interface{}{},
		lobs:    map[string]bool{},
		isQuery: isQuery(query),
	}
	if c.stmts == nil {
		c.stmts = map[*sqlStmt]struct{}{}
	}
	c.stmts[s] = struct{}{}
	return s, nil
}

func (c *sqlConn) begin(ctx context.Context) error {
	if c.tx != nil {
		return nil
	}
	tx, err := c.conn.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	c.tx = tx
	return nil
}

func (c *sqlConn) Commit(ctx context.Context) error {
	if c.tx == nil {
		return nil
	}
	tx := c.tx
	c.tx = nil
	return errors.Wrap(tx.Commit(), "commit")
}

func (c *sqlConn) Rollback(ctx context.Context) error {
	if c.tx == nil {
		return nil
	}
	tx := c.tx
	c.tx = nil
	return errors.Wrap(tx.Rollback(), "rollback")
}

func (c *sqlConn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	for s := range c.stmts {
		s.Free()
	}
	if c.tx != nil {
		c.tx.Rollback()
		c.tx = nil
	}
	err := c.conn.Close()
	if c.db != nil {
		if derr := c.db.Close(); err == nil {
			err = derr
		}
	}
	return err
}

// isQuery reports whether query returns rows: its first keyword is SELECT or WITH.
func isQuery(query string) bool {
	q := strings.TrimLeft(query, " \t\r\n(")
	for end := commentEnd(q, 0); end > 0; end = commentEnd(q, 0) {
		q = strings.TrimLeft(q[end:], " \t\r\n(")
	}

	end := strings.IndexFunc(q, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	})
	if end >= 0 {
		q = q[:end]
	}
	return strings.EqualFold(q, "select") || strings.EqualFold(q, "with")
}

type sqlStmt struct {
	conn    *sqlConn
	query   string
	markers []string
	binds   map[string]interface{}
	lobs    map[string]bool
	isQuery bool

	rows       *sql.Rows
	buffered   [][]interface{}
	isBuffered bool
	columns    []ColumnMeta
	text       []bool
	numRows    int64
	freed      bool
}

// marker finds the parsed marker matching name, case-insensitively.
func (s *sqlStmt) marker(name string) (string, bool) {
	name = strings.TrimPrefix(name, ":")
	for _, m := range s.markers {
		if strings.EqualFold(m, name) {
			return m, true
		}
	}
	return "", false
}

func (s *sqlStmt) BindByName(name string, value interface{}, kind ParamKind) bool {
	m, ok := s.marker(name)
	if !ok || s.freed {
		return false
	}

	switch {
	case kind == ParamNull:
		value = nil
	case kind.IsLOB():
		if value != nil {
			value = s.conn.dialect.LOB(kind, value)
		}
		s.lobs[strings.ToUpper(m)] = true
	}
	s.binds[m] = value
	return true
}

func (s *sqlStmt) args() []interface{} {
	args := make([]interface{}, 0, len(s.binds))
	for _, m := range s.markers {
		if v, ok := s.binds[m]; ok {
			args = append(args, sql.Named(m, v))
		}
	}
	return args
}

func (s *sqlStmt) Execute(ctx context.Context, mode CommitMode) error {
	if s.freed {
		return ErrStatementClosed
	}
	s.closeRows()
	s.buffered, s.isBuffered = nil, false

	c := s.conn
	if mode == NoAutoCommit {
		if err := c.begin(ctx); err != nil {
			return err
		}
	}
	var q execer = c.conn
	if c.tx != nil {
		q = c.tx
	}

	if s.isQuery {
		rows, err := q.QueryContext(ctx, s.query, s.args()...)
		if err != nil {
			return errors.Wrap(err, "query")
		}
		if err := s.describe(rows); err != nil {
			rows.Close()
			return err
		}
		s.rows = rows
		// a transaction cannot end while its rows are open
		if c.tx != nil {
			if err := s.buffer(); err != nil {
				return err
			}
		}
	} else {
		res, err := q.ExecContext(ctx, s.query, s.args()...)
		if err != nil {
			return errors.Wrap(err, "exec")
		}
		if s.numRows, err = res.RowsAffected(); err != nil {
			s.numRows = 0
		}
	}

	if mode == CommitOnSuccess && c.tx != nil {
		return c.Commit(ctx)
	}
	return nil
}

func (s *sqlStmt) describe(rows *sql.Rows) error {
	types, err := rows.ColumnTypes()
	if err != nil {
		return errors.Wrap(err, "columns")
	}

	s.columns = make([]ColumnMeta, len(types))
	s.text = make([]bool, len(types))
	s.numRows = 0
	for i, ct := range types {
		meta := ColumnMeta{Name: ct.Name(), Type: ct.DatabaseTypeName()}
		if n, ok := ct.Length(); ok {
			meta.Size = n
		}
		if p, sc, ok := ct.DecimalSize(); ok {
			meta.Precision, meta.Scale = p, sc
		}
		if null, ok := ct.Nullable(); ok {
			meta.Nullable = null
		}
		s.columns[i] = meta
		s.text[i] = isTextType(meta.Type)
	}
	return nil
}

func isTextType(t string) bool {
	t = strings.ToUpper(t)
	return strings.Contains(t, "CHAR") || strings.Contains(t, "TEXT") || strings.Contains(t, "CLOB")
}

func (s *sqlStmt) scan() ([]interface{}, error) {
	values := make([]interface{}, len(s.columns))
	ptrs := make([]interface{}, len(values))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := s.rows.Scan(ptrs...); err != nil {
		return nil, errors.Wrap(err, "scan")
	}
	for i, v := range values {
		if b, ok := v.([]byte); ok && s.text[i] {
			values[i] = string(b)
		}
	}
	return values, nil
}

// buffer reads every row of the open result set and closes it.
func (s *sqlStmt) buffer() error {
	defer s.closeRows()

	for s.rows.Next() {
		values, err := s.scan()
		if err != nil {
			return err
		}
		s.buffered = append(s.buffered, values)
	}
	s.isBuffered = true
	return errors.Wrap(s.rows.Err(), "fetch")
}

func (s *sqlStmt) Fetch(ctx context.Context) ([]interface{}, error) {
	if s.freed {
		return nil, ErrStatementClosed
	}
	if s.isBuffered {
		if len(s.buffered) == 0 {
			return nil, io.EOF
		}
		values := s.buffered[0]
		s.buffered = s.buffered[1:]
		s.numRows++
		return values, nil
	}
	if s.rows == nil {
		return nil, io.EOF
	}

	if !s.rows.Next() {
		err := s.rows.Err()
		s.closeRows()
		if err != nil {
			return nil, errors.Wrap(err, "fetch")
		}
		return nil, io.EOF
	}
	values, err := s.scan()
	if err != nil {
		return nil, err
	}
	s.numRows++
	return values, nil
}

func (s *sqlStmt) Columns() []ColumnMeta { return s.columns }

func (s *sqlStmt) NumRows() int64 { return s.numRows }

// SaveLOB has nothing to write: database/sql drivers send LOB content with the execute.
func (s *sqlStmt) SaveLOB(ctx context.Context, name string) error {
	if !s.lobs[strings.ToUpper(strings.TrimPrefix(name, ":"))] {
		return errors.Errorf("no lob bound to %s", name)
	}
	return nil
}

func (s *sqlStmt) closeRows() {
	if s.rows != nil {
		s.rows.Close()
		s.rows = nil
	}
}

func (s *sqlStmt) Free() error {
	if s.freed {
		return nil
	}
	s.freed = true
	s.closeRows()
	s.buffered = nil
	delete(s.conn.stmts, s)
	return nil
}
