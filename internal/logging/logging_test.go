package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFilePath(t *testing.T) {
	sessionStart := time.Date(2026, 2, 12, 21, 38, 36, 0, time.UTC)

	tests := []struct {
		name          string
		logsDir       string
		extensionName string
		want          string
	}{
		{
			name:          "basic path",
			logsDir:       "zoclogs",
			extensionName: "zoc_fow",
			want:          filepath.Join("zoclogs", "zoc_fow.20260212_213836.log"),
		},
		{
			name:          "relative path with dot",
			logsDir:       "./zoclogs",
			extensionName: "zoc_fow",
			want:          filepath.Join(".", "zoclogs", "zoc_fow.20260212_213836.log"),
		},
		{
			name:          "absolute path",
			logsDir:       filepath.Join("/var", "log", "zoc"),
			extensionName: "zoc_fow",
			want:          filepath.Join("/var", "log", "zoc", "zoc_fow.20260212_213836.log"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogFilePath(tt.logsDir, tt.extensionName, sessionStart)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenLogFile_CreatesDirAndRotates(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	start := time.Date(2026, 2, 12, 21, 38, 36, 0, time.UTC)

	f, path, err := OpenLogFile(dir, "zoc_fow", start)
	require.NoError(t, err)
	assert.Equal(t, LogFilePath(dir, "zoc_fow", start), path)
	_, err = f.WriteString("first run\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f, _, err = OpenLogFile(dir, "zoc_fow", start)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	old, err := os.ReadFile(path + ".old")
	require.NoError(t, err)
	assert.Equal(t, "first run\n", string(old))

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, current)
}
