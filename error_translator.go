package pdooci

import "github.com/pdooci/pdooci/errtranslator"

// TranslateErr reduces a native error through the dialect's translator, falling back to
// the ORA-NNNNN text parser when the dialect does not recognise it.
func TranslateErr(d Dialect, err error) errtranslator.NativeError {
	if err == nil {
		return errtranslator.NativeError{}
	}

	if d != nil {
		ne := errtranslator.Native(d, err)
		if ne.Code != 0 {
			return ne
		}
	}

	return errtranslator.Native(errtranslator.OracleErrTranslator{}, err)
}

func connectionErr(d Dialect, err error) *ConnectionError {
	ne := TranslateErr(d, err)
	return &ConnectionError{Code: ne.Code, Message: ne.Message, Err: err}
}

func queryErr(d Dialect, query string, lob bool, err error) (*QueryError, errtranslator.NativeError) {
	ne := TranslateErr(d, err)
	return &QueryError{Code: ne.Code, Message: ne.Message, Query: query, LOB: lob, Err: err}, ne
}
