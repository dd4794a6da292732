package pdooci

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCase(t *testing.T) {
	for in, want := range map[interface{}]Case{
		"natural": CaseNatural,
		" Upper ": CaseUpper,
		"LOWER":   CaseLower,
		CaseUpper: CaseUpper,
		2:         CaseLower,
		int64(0):  CaseNatural,
	} {
		got, err := ParseCase(in)
		assert.NoError(t, err, "%v", in)
		assert.Equal(t, want, got, "%v", in)
	}

	for _, in := range []interface{}{"title", "1", Case(7), 3, -1} {
		_, err := ParseCase(in)
		var ue *UsageError
		assert.ErrorAs(t, err, &ue, "%v", in)
	}
}

func TestAttributeNames(t *testing.T) {
	assert.Equal(t, "AUTOCOMMIT", AttrAutocommit.String())
	assert.Equal(t, "CASE", AttrCase.String())
	assert.Equal(t, "DRIVER_NAME", AttrDriverName.String())
	assert.Equal(t, "Attribute(9)", Attribute(9).String())
	assert.Equal(t, "OCI_NO_AUTO_COMMIT", NoAutoCommit.String())
	assert.Equal(t, "OCI_COMMIT_ON_SUCCESS", CommitOnSuccess.String())
}
