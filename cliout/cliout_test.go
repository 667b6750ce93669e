package cliout

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"table", FormatTable, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid output format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorEnabled(t *testing.T) {
	t.Cleanup(AutoColor)
	var buf bytes.Buffer

	AutoColor()
	assert.False(t, ColorEnabled(&buf), "buffers are never terminals")

	ForceColor()
	assert.True(t, ColorEnabled(&buf))

	NoColor()
	assert.False(t, ColorEnabled(&buf))
}

func TestColorEnabled_NoColorEnv(t *testing.T) {
	t.Cleanup(AutoColor)
	t.Setenv("NO_COLOR", "1")
	AutoColor()
	assert.False(t, ColorEnabled(os.Stdout))
}

func TestColorize(t *testing.T) {
	t.Cleanup(AutoColor)
	var buf bytes.Buffer

	NoColor()
	assert.Equal(t, "x", Colorize(&buf, Red, "x"))

	ForceColor()
	assert.Equal(t, Red+"x"+Reset, Colorize(&buf, Red, "x"))
}

func TestStatus(t *testing.T) {
	t.Cleanup(AutoColor)
	var buf bytes.Buffer
	ForceColor()

	assert.Equal(t, BrightRed+"Critical"+Reset, Status(&buf, "Critical"))
	assert.Equal(t, BrightYellow+"Low"+Reset, Status(&buf, "Low"))
	assert.Equal(t, BrightGreen+"success"+Reset, Status(&buf, "success"))
	assert.Equal(t, "7.68.0", Status(&buf, "7.68.0"))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	data := []map[string]string{{"name": "a<b>&c"}}

	require.NoError(t, WriteJSON(&buf, data, "    "))
	assert.Equal(t, "[\n    {\n        \"name\": \"a<b>&c\"\n    }\n]\n", buf.String())
}

func TestLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Line(&buf, "found %d", 3))
	assert.Equal(t, "found 3\n", buf.String())
}

func TestTable(t *testing.T) {
	t.Cleanup(AutoColor)
	NoColor()

	var buf bytes.Buffer
	rows := []TableRow{
		{"Name": "curl/stable", "Severity": "7.68.0"},
		{"Name": "vim", "Severity": ""},
	}
	require.NoError(t, Table(&buf, []string{"Name", "Severity"}, rows))

	want := "" +
		"Name         Severity\n" +
		"-----------  --------\n" +
		"curl/stable  7.68.0\n" +
		"vim\n"
	assert.Equal(t, want, buf.String())
}

func TestTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, []string{"Name"}, nil))
	assert.Empty(t, buf.String())
}
