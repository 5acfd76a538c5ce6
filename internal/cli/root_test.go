package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range RootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"classify", "score", "analyze", "export", "fix-addresses", "version"} {
		assert.True(t, names[want], "missing command %q", want)
	}
}

func TestReadRecordsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.json")
	data := `[{"id": "site-1", "name": "North Pantry"}, {"id": "site-2"}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	records, err := readRecordsFile(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "site-1", records[0].ID())
}

func TestReadRecordsFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := readRecordsFile(path)
	require.Error(t, err)
}

func TestOpenOutput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	w, closeOut, err := openOutput(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("{}"))
	require.NoError(t, err)
	closeOut()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(raw))
}
