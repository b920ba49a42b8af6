// internal/storage/memory/export_test.go
package memory

import (
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/reverendhomer/zoc/internal/config"
	"github.com/reverendhomer/zoc/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordSample(t *testing.T, b *Backend) {
	t.Helper()
	at := time.Date(2024, 1, 15, 10, 31, 0, 0, time.UTC)
	require.NoError(t, b.RecordVisibility(&core.VisibilityStats{
		SessionID: "6b1f0c52", PlayerID: 1, Turn: 1, Time: at,
		Excellent: 3, Normal: 9, Hidden: 68, SpottedUnits: []core.UnitID{4},
	}))
	require.NoError(t, b.RecordVisibility(&core.VisibilityStats{
		SessionID: "6b1f0c52", PlayerID: 0, Turn: 2, Time: at,
		Excellent: 2, Normal: 7, Hidden: 71,
	}))
}

func TestBuildExport(t *testing.T) {
	b := New(config.MemoryConfig{})
	require.NoError(t, b.StartSession(testSession()))
	recordSample(t, b)

	export := b.buildExport()

	assert.Equal(t, "6b1f0c52", export.SessionID)
	assert.Equal(t, 10, export.MapWidth)
	assert.Equal(t, 8, export.MapHeight)
	assert.Equal(t, "2024-01-15T10:30:00Z", export.StartTime)
	require.Len(t, export.Players, 2)

	// sorted by player id
	assert.Equal(t, core.PlayerID(0), export.Players[0].ID)
	assert.Equal(t, core.PlayerID(1), export.Players[1].ID)

	p0 := export.Players[0].Turns
	require.Len(t, p0, 1)
	assert.Equal(t, 2, p0[0].Turn)
	assert.Equal(t, []core.UnitID{}, p0[0].SpottedUnits)

	p1 := export.Players[1].Turns
	require.Len(t, p1, 1)
	assert.Equal(t, 68, p1[0].Hidden)
	assert.Equal(t, []core.UnitID{4}, p1[0].SpottedUnits)
}

func TestEndSession_WritesPlainJSON(t *testing.T) {
	dir := t.TempDir()
	b := New(config.MemoryConfig{OutputDir: dir, CompressOutput: false})
	require.NoError(t, b.StartSession(testSession()))
	recordSample(t, b)

	require.NoError(t, b.EndSession())

	path := b.GetExportedFilePath()
	assert.Equal(t, filepath.Join(dir, "Ridge__Assault_20240115_103000.json"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var got SessionExport
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Ridge: Assault", got.Name)
	assert.Len(t, got.Players, 2)
}

func TestEndSession_WritesGzipJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	b := New(config.MemoryConfig{OutputDir: dir, CompressOutput: true})
	require.NoError(t, b.StartSession(testSession()))
	recordSample(t, b)

	require.NoError(t, b.EndSession())

	path := b.GetExportedFilePath()
	assert.Equal(t, ".gz", filepath.Ext(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer gz.Close()

	var got SessionExport
	require.NoError(t, json.NewDecoder(gz).Decode(&got))
	assert.Equal(t, "6b1f0c52", got.SessionID)
	require.Len(t, got.Players, 2)
	assert.Equal(t, 3, got.Players[1].Turns[0].Excellent)
}
