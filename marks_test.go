package pdooci

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertMarks(t *testing.T) {
	cases := []struct {
		name, in, out string
	}{
		{"positional", "insert into people (name, email) values (?,?)", "insert into people (name, email) values (:pdooci_m0,:pdooci_m1)"},
		{"named untouched", "insert into people (name, email) values (:name,:email)", "insert into people (name, email) values (:name,:email)"},
		{"in literal", "insert into people (name) values ('abc?')", "insert into people (name) values ('abc?')"},
		{"mixed literal", "select * from t where a = '?' and b = ? and c = 'x?y' and d = ?", "select * from t where a = '?' and b = :pdooci_m0 and c = 'x?y' and d = :pdooci_m1"},
		{"escaped quote", "select * from t where a = 'it''s ?' and b = ?", "select * from t where a = 'it''s ?' and b = :pdooci_m0"},
		{"adjacent quotes", "select '' || ? from dual", "select '' || :pdooci_m0 from dual"},
		{"no placeholders", "select 1 from dual", "select 1 from dual"},
		{"block comment", "select name /* don't? */ from people where id = ?", "select name /* don't? */ from people where id = :pdooci_m0"},
		{"line comment", "select name -- who's ?\nfrom people where id = ?", "select name -- who's ?\nfrom people where id = :pdooci_m0"},
		{"comment in literal", "select '/* ? */' from t where a = ?", "select '/* ? */' from t where a = :pdooci_m0"},
		{"many", "values (?,?,?,?,?,?,?,?,?,?,?)", "values (:pdooci_m0,:pdooci_m1,:pdooci_m2,:pdooci_m3,:pdooci_m4,:pdooci_m5,:pdooci_m6,:pdooci_m7,:pdooci_m8,:pdooci_m9,:pdooci_m10)"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := InsertMarks(c.in)
			assert.Equal(t, c.out, got)
			assert.Equal(t, got, InsertMarks(got), "rewriting twice must not change the result")
		})
	}
}

func TestMarkerNames(t *testing.T) {
	assert.Equal(t, []string{"name", "email"}, markerNames("insert into p values (:name, :email, :NAME)"))
	assert.Equal(t, []string{"pdooci_m0", "pdooci_m1"}, markerNames(InsertMarks("select ? , ? from dual")))
	assert.Empty(t, markerNames("select '12:30' from dual"))
	assert.Empty(t, markerNames("begin x := 1; end;"))
	assert.Empty(t, markerNames("select a::text from t"))
	assert.Equal(t, []string{"1"}, markerNames("select * from t where id = :1"))
	assert.Equal(t, []string{"id"}, markerNames("select name /* don't */ from people where id = :id"))
	assert.Equal(t, []string{"id"}, markerNames("select name -- who's :who\nfrom people where id = :id"))
	assert.Empty(t, markerNames("select 1 from dual /* :unterminated"))
	assert.Equal(t, []string{"a"}, markerNames("select '--' || :a from dual"))
}
