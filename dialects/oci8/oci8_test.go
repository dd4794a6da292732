//go:build oci8

package oci8

import (
	"testing"

	"github.com/pdooci/pdooci"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	src, err := pdooci.ParseDataSource("oci8:dbname=//localhost/XEPDB1;prefetch_rows=100")
	require.NoError(t, err)

	dsn, err := Dialect{}.DSN(src, "scott", "tiger")
	require.NoError(t, err)
	assert.Equal(t, "scott/tiger@localhost:1521/XEPDB1?prefetch_rows=100", dsn)
}
