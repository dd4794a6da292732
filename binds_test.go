package pdooci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveParam(t *testing.T) {
	cases := []struct {
		param  interface{}
		marker string
		pos    int
	}{
		{1, "pdooci_m0", 0},
		{"3", "pdooci_m2", 2},
		{int64(2), "pdooci_m1", 1},
		{":name", "name", -1},
		{"email", "email", -1},
	}
	for _, c := range cases {
		e, err := resolveParam("bind", c.param)
		require.NoError(t, err, "%v", c.param)
		assert.Equal(t, c.marker, e.marker)
		assert.Equal(t, c.pos, e.pos)
	}

	for _, bad := range []interface{}{0, "0", ":", nil} {
		_, err := resolveParam("bind", bad)
		assert.Error(t, err, "%v", bad)
	}
}

func TestRegistryPutReplaces(t *testing.T) {
	var r bindRegistry
	r.put(&bindEntry{marker: "name", value: "a"})
	r.put(&bindEntry{marker: "pdooci_m0", value: 1})
	r.put(&bindEntry{marker: "NAME", value: "b"})

	require.Len(t, r.params, 2)
	assert.Equal(t, map[string]interface{}{"NAME": "b", "pdooci_m0": 1}, r.vars())
}

func TestPropagate(t *testing.T) {
	var r bindRegistry
	byPos, byName, missing, plain := &Slot{}, &Slot{}, &Slot{}, &Slot{}
	r.put(&bindEntry{marker: "pdooci_m1", pos: 1, slot: byPos})
	r.put(&bindEntry{marker: "email", pos: -1, name: "email", slot: byName})
	r.put(&bindEntry{marker: "pdooci_m5", pos: 5, slot: missing})
	r.put(&bindEntry{marker: "id", pos: -1, name: "id", value: 3})
	r.putColumn(&bindEntry{pos: 0, slot: plain})

	n := r.propagate([]string{"ID", "NAME", "EMAIL"}, []interface{}{int64(3), "ada", nil})
	assert.Equal(t, 3, n)
	assert.Equal(t, "ada", byPos.Value())
	assert.True(t, byName.Filled())
	assert.Nil(t, byName.Value())
	assert.Equal(t, int64(3), plain.Value())
	assert.False(t, missing.Filled())
}

func TestCoerceParam(t *testing.T) {
	cases := []struct {
		kind ParamKind
		in   interface{}
		want interface{}
	}{
		{ParamInt, "42", int64(42)},
		{ParamInt, 3.0, int64(3)},
		{ParamBool, "true", true},
		{ParamBool, 0, false},
		{ParamStr, 12, "12"},
		{ParamNull, "x", nil},
		{ParamLOB, "bytes", []byte("bytes")},
		{ParamLOB, []byte{0, 1}, []byte{0, 1}},
		{ParamCLOB, []byte("text"), "text"},
		{ParamInt, nil, nil},
	}
	for _, c := range cases {
		got, err := coerceParam(c.kind, c.in)
		require.NoError(t, err, "%v %v", c.kind, c.in)
		assert.Equal(t, c.want, got, "%v %v", c.kind, c.in)
	}

	_, err := coerceParam(ParamInt, "forty")
	assert.Error(t, err)
}

func TestSlot(t *testing.T) {
	var s Slot
	assert.False(t, s.Filled())
	assert.Nil(t, s.Value())

	s.Set(nil)
	assert.True(t, s.Filled())
	assert.True(t, NewSlot(1).Filled())
}
