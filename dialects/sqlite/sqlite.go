// Package sqlite registers the pure Go modernc sqlite driver as "sqlite". It stands in
// for Oracle in local runs and tests: the adapter logic is the same, only the SQL
// dialect differs.
package sqlite

import (
	"errors"
	"net/url"

	"github.com/pdooci/pdooci"
	"github.com/pdooci/pdooci/errtranslator"
	"github.com/spf13/cast"
	msqlite "modernc.org/sqlite"
)

const dialectName = "sqlite"

var _ pdooci.Dialect = Dialect{}

// Dialect is the modernc sqlite dialect.
type Dialect struct{}

func init() {
	pdooci.RegisterDialect(dialectName, Dialect{})
}

func (Dialect) Name() string { return dialectName }

func (Dialect) DriverName() string { return "sqlite" }

// DSN is the database file (or :memory:) with params as a query string, e.g.
// `sqlite:dbname=/tmp/app.db;_pragma=busy_timeout(5000)`.
func (Dialect) DSN(src pdooci.DataSource, user, password string) (string, error) {
	if len(src.Params) == 0 {
		return src.ConnectString, nil
	}

	values := url.Values{}
	for k, v := range src.Params {
		values.Add(k, v)
	}
	return src.ConnectString + "?" + values.Encode(), nil
}

func (Dialect) LOB(kind pdooci.ParamKind, data interface{}) interface{} {
	switch kind {
	case pdooci.ParamLOB:
		if b, ok := data.([]byte); ok {
			return b
		}
		return []byte(cast.ToString(data))
	case pdooci.ParamCLOB:
		return cast.ToString(data)
	}
	return data
}

func (Dialect) Translate(err error) error {
	var se *msqlite.Error
	if errors.As(err, &se) {
		return errtranslator.NativeError{Code: se.Code(), Message: se.Error(), Err: err}
	}
	return errtranslator.SqliteErrTranslator{}.Translate(err)
}
