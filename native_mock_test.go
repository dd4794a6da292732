package pdooci_test

import (
	"errors"
	"io"
	"testing"

	"github.com/pdooci/pdooci"
	_ "github.com/pdooci/pdooci/dialects/oracle"
	"github.com/pdooci/pdooci/logger"
	"github.com/pdooci/pdooci/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func openMocked(t *testing.T, opts ...pdooci.ConfigOption) (*pdooci.Conn, *mocks.NativeConn) {
	t.Helper()

	nc := &mocks.NativeConn{}
	connector := &mocks.Connector{}
	connector.On("Connect", mock.Anything, mock.MatchedBy(func(p pdooci.ConnectParams) bool {
		return p.Source.Service == "XEPDB1" && p.User == "scott"
	})).Return(nc, nil).Once()

	opts = append([]pdooci.ConfigOption{pdooci.WithConnector(connector), pdooci.WithLogger(logger.Discard)}, opts...)
	conn, err := pdooci.Open("oci:dbname=//localhost:1521/XEPDB1", "scott", "tiger", opts...)
	require.NoError(t, err)
	connector.AssertExpectations(t)
	return conn, nc
}

func TestSaveLOBFailure(t *testing.T) {
	conn, nc := openMocked(t)

	st := &mocks.NativeStmt{}
	nc.On("Parse", mock.Anything, "insert into docs (body) values (:pdooci_m0)").Return(st, nil)
	st.On("BindByName", "pdooci_m0", "chapter one", pdooci.ParamCLOB).Return(true)
	st.On("Execute", mock.Anything, pdooci.CommitOnSuccess).Return(nil)
	st.On("SaveLOB", mock.Anything, "pdooci_m0").Return(errors.New("ORA-22275: invalid LOB locator specified"))
	st.On("NumRows").Return(int64(1)).Maybe()
	nc.On("Close").Return(nil)

	stmt, err := conn.Prepare("insert into docs (body) values (?)")
	require.NoError(t, err)
	ok, err := stmt.BindValue(1, []byte("chapter one"), pdooci.ParamCLOB)
	require.NoError(t, err)
	require.True(t, ok)

	err = stmt.Execute()
	var qe *pdooci.QueryError
	require.ErrorAs(t, err, &qe)
	assert.True(t, qe.LOB)
	assert.Equal(t, 22275, qe.Code)
	assert.Equal(t, 22275, conn.ErrorCode())
	assert.Equal(t, 22275, stmt.ErrorCode())

	require.NoError(t, conn.Close())
	st.AssertExpectations(t)
	nc.AssertExpectations(t)
}

func TestCommitModeFollowsAutocommit(t *testing.T) {
	conn, nc := openMocked(t)

	st := &mocks.NativeStmt{}
	nc.On("Parse", mock.Anything, "delete from people").Return(st, nil)
	st.On("Execute", mock.Anything, pdooci.CommitOnSuccess).Return(nil).Once()
	st.On("Execute", mock.Anything, pdooci.NoAutoCommit).Return(nil).Once()
	st.On("Columns").Return(nil)
	st.On("NumRows").Return(int64(4))
	st.On("Free").Return(nil)
	nc.On("Commit", mock.Anything).Return(errors.New("ORA-02091: transaction rolled back"))

	_, err := conn.Exec("delete from people")
	require.NoError(t, err)

	require.NoError(t, conn.SetAttribute(pdooci.AttrAutocommit, "off"))
	n, err := conn.Exec("delete from people")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	err = conn.Commit()
	var qe *pdooci.QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, 2091, qe.Code)
	info, ok := conn.ErrorInfo()
	require.True(t, ok)
	assert.Equal(t, 2091, info.Code)

	st.AssertExpectations(t)
	nc.AssertExpectations(t)
}

func TestFetchFromNativeCursor(t *testing.T) {
	conn, nc := openMocked(t, pdooci.WithCase(pdooci.CaseLower))

	st := &mocks.NativeStmt{}
	nc.On("Parse", mock.Anything, "select id, name from people").Return(st, nil)
	st.On("Execute", mock.Anything, pdooci.CommitOnSuccess).Return(nil)
	st.On("Columns").Return([]pdooci.ColumnMeta{{Name: "ID", Type: "NUMBER"}, {Name: "NAME", Type: "VARCHAR2"}})
	st.On("Fetch", mock.Anything).Return([]interface{}{int64(1), "ada"}, nil).Once()
	st.On("Fetch", mock.Anything).Return(nil, io.EOF).Once()
	st.On("Free").Return(nil).Once()

	stmt, err := conn.Query("select id, name from people", pdooci.Assoc)
	require.NoError(t, err)

	v, err := stmt.Fetch()
	require.NoError(t, err)
	row := v.(*pdooci.Row)
	name, ok := row.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "ada", name)

	_, err = stmt.Fetch()
	assert.ErrorIs(t, err, pdooci.ErrNoRows)
	// exhausted: the native cursor is not asked again
	_, err = stmt.Fetch()
	assert.ErrorIs(t, err, pdooci.ErrNoRows)

	require.NoError(t, stmt.CloseCursor())
	require.NoError(t, stmt.CloseCursor())
	_, err = stmt.Fetch()
	assert.ErrorIs(t, err, pdooci.ErrStatementClosed)

	st.AssertExpectations(t)
}

func TestConnectFailure(t *testing.T) {
	connector := &mocks.Connector{}
	connector.On("Connect", mock.Anything, mock.Anything).Return(nil, errors.New("ORA-01017: invalid username/password; logon denied"))

	_, err := pdooci.Open("oci:dbname=//localhost:1521/XEPDB1", "scott", "wrong",
		pdooci.WithConnector(connector), pdooci.WithLogger(logger.Discard))

	var ce *pdooci.ConnectionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 1017, ce.Code)
	connector.AssertExpectations(t)
}
