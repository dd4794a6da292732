package pdooci

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pdooci/pdooci/errtranslator"
	"github.com/pdooci/pdooci/logger"
	"github.com/stretchr/testify/require"
)

type mockDialect struct{}

func (mockDialect) Name() string       { return "mock" }
func (mockDialect) DriverName() string { return "sqlmock" }

func (mockDialect) DSN(src DataSource, user, password string) (string, error) {
	return src.ConnectString, nil
}

func (mockDialect) LOB(kind ParamKind, data interface{}) interface{} { return data }

func (mockDialect) Translate(err error) error {
	return errtranslator.OracleErrTranslator{}.Translate(err)
}

func init() {
	RegisterDialect("mock", mockDialect{})
}

func newMockConn(t *testing.T, opts ...ConfigOption) (*Conn, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	opts = append([]ConfigOption{WithConnector(DBConnector(db)), WithLogger(logger.Discard)}, opts...)
	conn, err := Open("mock:dbname=//localhost:1521/XEPDB1;charset=AL32UTF8", "scott", "tiger", opts...)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		db.Close()
	})
	return conn, mock
}

// shapeStmt is an executed statement over fixed columns, for shaper tests.
func shapeStmt(kc Case, names ...string) *Stmt {
	return &Stmt{
		conn:  &Conn{keyCase: kc, logger: logger.Discard},
		names: names,
		state: stateExecuted,
	}
}

// textRows defines VARCHAR2 columns so database/sql reports column types.
func textRows(names ...string) *sqlmock.Rows {
	defs := make([]*sqlmock.Column, len(names))
	for i, name := range names {
		defs[i] = sqlmock.NewColumn(name).OfType("VARCHAR2", "").Nullable(true)
	}
	return sqlmock.NewRowsWithColumnDefinition(defs...)
}

type connectorFunc func(ctx context.Context, p ConnectParams) (NativeConn, error)

func (f connectorFunc) Connect(ctx context.Context, p ConnectParams) (NativeConn, error) {
	return f(ctx, p)
}
