package database

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/reverendhomer/zoc/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probe struct {
	ID   uint
	Name string
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(config.PostgresConfig{
		Host: "db", Port: "5433", Username: "u", Password: "p", Database: "zoc",
	})
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=zoc sslmode=disable", dsn)
}

func TestGetSqliteDB_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fow.db")

	db, err := GetSqliteDB(path, discardLogger())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&probe{}))
	require.NoError(t, db.Create(&probe{Name: "a"}).Error)

	var count int64
	require.NoError(t, db.Model(&probe{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestDumpMemoryDBToDisk(t *testing.T) {
	src, err := GetSqliteDB(filepath.Join(t.TempDir(), "src.db"), discardLogger())
	require.NoError(t, err)
	require.NoError(t, src.AutoMigrate(&probe{}))
	require.NoError(t, src.Create(&probe{Name: "x"}).Error)

	out := filepath.Join(t.TempDir(), "dump.db")
	require.NoError(t, os.WriteFile(out, []byte("stale"), 0644))

	require.NoError(t, DumpMemoryDBToDisk(src, out))

	dumped, err := GetSqliteDB(out, discardLogger())
	require.NoError(t, err)
	var rows []probe
	require.NoError(t, dumped.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "x", rows[0].Name)
}

func TestDumpMemoryDBToDisk_NoPath(t *testing.T) {
	db, err := GetSqliteDB(filepath.Join(t.TempDir(), "x.db"), discardLogger())
	require.NoError(t, err)

	err = DumpMemoryDBToDisk(db, "")
	assert.Error(t, err)
}

func TestDumper_StopWritesFinalCopy(t *testing.T) {
	db, err := GetSqliteDB(filepath.Join(t.TempDir(), "live.db"), discardLogger())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&probe{}))

	out := filepath.Join(t.TempDir(), "final.db")
	d := StartDumper(db, out, 0, discardLogger())
	d.Stop()

	_, err = os.Stat(out)
	assert.NoError(t, err)
}
