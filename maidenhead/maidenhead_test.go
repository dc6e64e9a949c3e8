package maidenhead

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsEachLength(t *testing.T) {
	assert.NoError(t, Validate("IO91WM"))
	assert.NoError(t, Validate("IO91WM12"))
	assert.NoError(t, Validate("IO91WM12ab"))
}

func TestValidateRejectsBadLength(t *testing.T) {
	assert.Error(t, Validate("IO91"))
}

func TestValidateRejectsOutOfRangeCharacters(t *testing.T) {
	assert.Error(t, Validate("ZZ91WM"))
	assert.Error(t, Validate("IOXXWM"))
}

func TestStationExpandTemplateSubstitutesToken(t *testing.T) {
	st, err := NewStation("IO91WM")
	require.NoError(t, err)

	msg := []byte{'C', 'Q', ' ', LocatorToken}
	out := st.ExpandTemplate(msg)
	assert.Equal(t, "CQ IO91WM", string(out))
}

func TestStationSetValidates(t *testing.T) {
	st, err := NewStation("IO91WM")
	require.NoError(t, err)

	assert.Error(t, st.Set("BAD"))
	assert.Equal(t, "IO91WM", st.String())

	require.NoError(t, st.Set("JO22xa"))
	assert.Equal(t, "JO22xa", st.String())
}
