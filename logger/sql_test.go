package logger_test

import (
	"database/sql/driver"
	"encoding/json"
	"testing"

	"github.com/jinzhu/now"
	"github.com/pdooci/pdooci/logger"
)

type JSON json.RawMessage

func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.RawMessage(j).MarshalJSON()
}

func TestExplainSQL(t *testing.T) {
	type role string
	var (
		tt     = now.MustParse("2020-02-23 11:10:10")
		myrole = role("admin")
		js     = JSON(`{"Name":"test"}`)
	)

	results := []struct {
		SQL    string
		Vars   map[string]interface{}
		Result string
	}{
		{
			SQL:    "insert into people (name, age, height, active, born, email, role) values (:name, :age, :height, :active, :born, :email, :role)",
			Vars:   map[string]interface{}{"name": "Ada", "age": 36, "height": 1.65, "active": true, "born": tt, "email": "a'b@c", "role": myrole},
			Result: "insert into people (name, age, height, active, born, email, role) values ('Ada', 36, 1.650000, true, '2020-02-23 11:10:10', 'a''b@c', 'admin')",
		},
		{
			SQL:    "select * from people where note = ':name' and name = :name",
			Vars:   map[string]interface{}{"name": "Ada"},
			Result: "select * from people where note = ':name' and name = 'Ada'",
		},
		{
			SQL:    "update people set doc = :doc, gone = :gone where id = :id",
			Vars:   map[string]interface{}{"doc": js, "gone": nil},
			Result: `update people set doc = '{"Name":"test"}', gone = NULL where id = :id`,
		},
		{
			SQL:    "select 1 from dual",
			Vars:   nil,
			Result: "select 1 from dual",
		},
	}

	for idx, r := range results {
		if result := logger.ExplainSQL(r.SQL, "'", r.Vars); result != r.Result {
			t.Errorf("Explain SQL #%v expects %v, but got %v", idx, r.Result, result)
		}
	}
}

func TestFormatVarBinary(t *testing.T) {
	if got := logger.FormatVar([]byte{0x00, 0x01}, "'"); got != "'<binary>'" {
		t.Errorf("expects '<binary>', got %v", got)
	}
}
