//go:build oci8

package oci8

import (
	"net/url"
	"strconv"

	"github.com/mattn/go-oci8"
	"github.com/pdooci/pdooci"
	"github.com/pdooci/pdooci/errtranslator"
	"github.com/spf13/cast"
)

const dialectName = "oci8"

var _ pdooci.Dialect = Dialect{}

// Dialect is the go-oci8 dialect.
type Dialect struct{}

func init() {
	pdooci.RegisterDialect(dialectName, Dialect{})
}

func (Dialect) Name() string { return dialectName }

func (Dialect) DriverName() string { return "oci8" }

// DSN builds user/password@connect?params and checks it with go-oci8's own parser.
func (Dialect) DSN(src pdooci.DataSource, user, password string) (string, error) {
	connect := src.ConnectString
	if src.EasyConnect() {
		connect = src.Host + ":" + strconv.Itoa(src.Port) + "/" + src.Service
	}
	dsn := url.QueryEscape(user) + "/" + url.QueryEscape(password) + "@" + connect

	if len(src.Params) > 0 {
		values := url.Values{}
		for k, v := range src.Params {
			values.Set(k, v)
		}
		dsn += "?" + values.Encode()
	}

	if _, err := oci8.ParseDSN(dsn); err != nil {
		return "", err
	}
	return dsn, nil
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
	return errtranslator.OracleErrTranslator{}.Translate(err)
}
