package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMSGTokenizesControlChars(t *testing.T) {
	assert.Equal(t, "MSG:<CR>\n", FormatMSG('\r'))
	assert.Equal(t, "MSG:<UNK>\n", FormatMSG(0x7E))
	assert.Equal(t, "MSG:Q\n", FormatMSG('Q'))
}

func TestFormatMCHWordSepAndUnknown(t *testing.T) {
	assert.Equal(t, "MCH:<SP>\n", FormatMCH(0, true))
	assert.Equal(t, "MCH:<UNK>\n", FormatMCH('?', false))
	assert.Equal(t, "MCH:E\n", FormatMCH('E', false))
}

func TestFormatMLSLost(t *testing.T) {
	assert.Equal(t, "MLS:LOST\n", FormatMLS(0, true))
	assert.Equal(t, "MLS:18.5\n", FormatMLS(18.5, false))
}

func TestParseRDYVersionExtractsSemver(t *testing.T) {
	v, err := ParseRDYVersion("RDY:fw=1.4.2;morsewpm=20\n")
	require.NoError(t, err)
	assert.Equal(t, "1.4.2", v.String())
}

func TestParseRDYVersionRejectsMalformed(t *testing.T) {
	_, err := ParseRDYVersion("RDY:fw=not-a-version\n")
	assert.Error(t, err)
}

func TestParseRDYVersionMissingToken(t *testing.T) {
	_, err := ParseRDYVersion("RDY:morsewpm=20\n")
	assert.Error(t, err)
}

func TestParseCommandSetRanges(t *testing.T) {
	cmd, err := ParseCommand("SET:loclen:8")
	require.NoError(t, err)
	assert.Equal(t, CmdSetLocLen, cmd.Kind)
	assert.Equal(t, 8, cmd.Int)

	_, err = ParseCommand("SET:loclen:7")
	assert.Error(t, err)

	cmd, err = ParseCommand("SET:confidence:0.25")
	require.NoError(t, err)
	assert.InDelta(t, 0.25, cmd.Float, 1e-9)

	_, err = ParseCommand("SET:confidence:1.5")
	assert.Error(t, err)

	cmd, err = ParseCommand("SET:morsewpm:13")
	require.NoError(t, err)
	assert.InDelta(t, 13, cmd.Float, 1e-9)

	_, err = ParseCommand("SET:morsewpm:4")
	assert.Error(t, err)

	cmd, err = ParseCommand("SET:halfrate:1")
	require.NoError(t, err)
	assert.True(t, cmd.Bool)
}

func TestParseCommandSetMsgSlot(t *testing.T) {
	cmd, err := ParseCommand("SET:msg:3:CQ DX")
	require.NoError(t, err)
	assert.Equal(t, CmdSetMsg, cmd.Kind)
	assert.Equal(t, 3, cmd.Slot)
	assert.Equal(t, "CQ DX", cmd.Text)

	_, err = ParseCommand("SET:msg:10:CQ DX")
	assert.Error(t, err)
}

func TestParseCommandVerbs(t *testing.T) {
	cmd, err := ParseCommand("CMD:tx")
	require.NoError(t, err)
	assert.Equal(t, CmdTX, cmd.Kind)

	cmd, err = ParseCommand("CMD:txmsg:5")
	require.NoError(t, err)
	assert.Equal(t, CmdTXMsg, cmd.Kind)
	assert.Equal(t, 5, cmd.Slot)

	cmd, err = ParseCommand("CMD:morsetx:HELLO")
	require.NoError(t, err)
	assert.Equal(t, "HELLO", cmd.Text)

	_, err = ParseCommand("CMD:bogus")
	assert.Error(t, err)
}

func TestParseCommandRejectsUnrecognisedLine(t *testing.T) {
	_, err := ParseCommand("GARBAGE")
	assert.Error(t, err)
}
