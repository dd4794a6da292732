package pdooci

import (
	"context"
)

// CommitMode is passed to every native execute.
type CommitMode int

const (
	// CommitOnSuccess commits the work of the statement when it succeeds
	CommitOnSuccess CommitMode = iota
	// NoAutoCommit leaves the work in the open transaction
	NoAutoCommit
)

func (m CommitMode) String() string {
	if m == NoAutoCommit {
		return "OCI_NO_AUTO_COMMIT"
	}
	return "OCI_COMMIT_ON_SUCCESS"
}

// ParamKind is the bind type of a parameter.
type ParamKind int

const (
	ParamStr ParamKind = iota
	ParamInt
	ParamBool
	ParamNull
	ParamLOB
	ParamCLOB
)

func (k ParamKind) String() string {
	switch k {
	case ParamInt:
		return "int"
	case ParamBool:
		return "bool"
	case ParamNull:
		return "null"
	case ParamLOB:
		return "lob"
	case ParamCLOB:
		return "clob"
	}
	return "str"
}

// IsLOB reports whether values of this kind go through the bind then save protocol.
func (k ParamKind) IsLOB() bool {
	return k == ParamLOB || k == ParamCLOB
}

// ColumnMeta describes one result column.
type ColumnMeta struct {
	Name      string
	Type      string
	Size      int64
	Precision int64
	Scale     int64
	Nullable  bool
}

// ConnectParams is what a Connector needs to open one native connection.
type ConnectParams struct {
	Dialect    Dialect
	Source     DataSource
	User       string
	Password   string
	Persistent bool
}

// Connector opens native connections.
type Connector interface {
	Connect(ctx context.Context, params ConnectParams) (NativeConn, error)
}

// NativeConn is one native client connection.
type NativeConn interface {
	Parse(ctx context.Context, query string) (NativeStmt, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	Close() error
}

// NativeStmt is one parsed native statement. Fetch returns io.EOF once the cursor is
// exhausted; NULL columns come back as nil.
type NativeStmt interface {
	BindByName(name string, value interface{}, kind ParamKind) bool
	Execute(ctx context.Context, mode CommitMode) error
	Fetch(ctx context.Context) ([]interface{}, error)
	Columns() []ColumnMeta
	NumRows() int64
	SaveLOB(ctx context.Context, name string) error
	Free() error
}
