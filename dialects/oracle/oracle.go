// Package oracle registers the pure Go go-ora client as the "oci" driver, the default of
// pdooci data sources.
package oracle

import (
	"errors"

	"github.com/pdooci/pdooci"
	"github.com/pdooci/pdooci/errtranslator"
	go_ora "github.com/sijms/go-ora/v2"
	"github.com/sijms/go-ora/v2/network"
	"github.com/spf13/cast"
)

const dialectName = "oci"

var _ pdooci.Dialect = Dialect{}

// Dialect is the go-ora dialect.
type Dialect struct{}

func init() {
	pdooci.RegisterDialect(dialectName, Dialect{})
	pdooci.RegisterDialect("oracle", Dialect{})
}

func (Dialect) Name() string { return dialectName }

func (Dialect) DriverName() string { return "oracle" }

// DSN builds an oracle:// URL. Easy connect strings map to server, port and service;
// anything else is passed as a connect descriptor. The charset directive is not sent:
// go-ora negotiates the server charset itself.
func (Dialect) DSN(src pdooci.DataSource, user, password string) (string, error) {
	var options map[string]string
	if len(src.Params) > 0 {
		options = make(map[string]string, len(src.Params))
		for k, v := range src.Params {
			options[k] = v
		}
	}

	if src.EasyConnect() {
		return go_ora.BuildUrl(src.Host, src.Port, src.Service, user, password, options), nil
	}
	return go_ora.BuildJDBC(user, password, src.ConnectString, options), nil
}

func (Dialect) LOB(kind pdooci.ParamKind, data interface{}) interface{} {
	switch kind {
	case pdooci.ParamLOB:
		if b, ok := data.([]byte); ok {
			return go_ora.Blob{Data: b}
		}
		return go_ora.Blob{Data: []byte(cast.ToString(data))}
	case pdooci.ParamCLOB:
		return go_ora.Clob{String: cast.ToString(data), Valid: true}
	}
	return data
}

// Translate reads go-ora's OracleError, falling back to the ORA-NNNNN text.
func (Dialect) Translate(err error) error {
	var oe *network.OracleError
	if errors.As(err, &oe) {
		return errtranslator.NativeError{Code: oe.ErrCode, Message: oe.ErrMsg, Err: err}
	}
	return errtranslator.OracleErrTranslator{}.Translate(err)
}
