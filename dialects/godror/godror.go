//go:build cgo

package godror

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/godror/godror"
	"github.com/pdooci/pdooci"
	"github.com/pdooci/pdooci/errtranslator"
	"github.com/spf13/cast"
)

const dialectName = "godror"

var _ pdooci.Dialect = Dialect{}

// Dialect is the godror dialect.
type Dialect struct{}

func init() {
	pdooci.RegisterDialect(dialectName, Dialect{})
}

func (Dialect) Name() string { return dialectName }

func (Dialect) DriverName() string { return "godror" }

// DSN builds godror's logfmt connection string; extra data source params are appended
// as logfmt pairs.
func (Dialect) DSN(src pdooci.DataSource, user, password string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "user=%q password=%q connectString=%q", user, password, src.ConnectString)

	keys := make([]string, 0, len(src.Params))
	for k := range src.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%q", k, src.Params[k])
	}
	return b.String(), nil
}

func (Dialect) LOB(kind pdooci.ParamKind, data interface{}) interface{} {
	switch kind {
	case pdooci.ParamLOB:
		b, ok := data.([]byte)
		if !ok {
			b = []byte(cast.ToString(data))
		}
		return godror.Lob{Reader: bytes.NewReader(b)}
	case pdooci.ParamCLOB:
		return godror.Lob{Reader: strings.NewReader(cast.ToString(data)), IsClob: true}
	}
	return data
}

func (Dialect) Translate(err error) error {
	if oe, ok := godror.AsOraErr(err); ok {
		return errtranslator.NativeError{Code: oe.Code(), Message: oe.Message(), Err: err}
	}
	return errtranslator.OracleErrTranslator{}.Translate(err)
}
