// internal/storage/memory/export.go
package memory

import (
	"cmp"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/reverendhomer/zoc/pkg/core"
)

// SessionExport is the root JSON structure
type SessionExport struct {
	SessionID string       `json:"sessionId"`
	Name      string       `json:"name"`
	MapWidth  int          `json:"mapWidth"`
	MapHeight int          `json:"mapHeight"`
	StartTime string       `json:"startTime"`
	Players   []PlayerJSON `json:"players"`
}

// PlayerJSON holds one player's per-turn rows
type PlayerJSON struct {
	ID    core.PlayerID `json:"id"`
	Turns []TurnJSON    `json:"turns"`
}

// TurnJSON is one recorded fog summary
type TurnJSON struct {
	Turn         int           `json:"turn"`
	Time         string        `json:"time"`
	Excellent    int           `json:"excellent"`
	Normal       int           `json:"normal"`
	Hidden       int           `json:"hidden"`
	SpottedUnits []core.UnitID `json:"spottedUnits"`
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

// exportJSON writes the session data to a (optionally gzipped) JSON file
func (b *Backend) exportJSON() error {
	export := b.buildExport()

	name := strings.ReplaceAll(b.session.Name, " ", "_")
	name = strings.ReplaceAll(name, ":", "_")
	if name == "" {
		name = "session"
	}
	timestamp := b.session.StartTime.Format("20060102_150405")

	var filename string
	if b.cfg.CompressOutput {
		filename = fmt.Sprintf("%s_%s.json.gz", name, timestamp)
	} else {
		filename = fmt.Sprintf("%s_%s.json", name, timestamp)
	}

	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if b.cfg.CompressOutput {
		if err := writeGzipJSON(outputPath, export); err != nil {
			return err
		}
	} else {
		if err := writeJSON(outputPath, export); err != nil {
			return err
		}
	}

	b.lastExportPath = outputPath
	return nil
}

func (b *Backend) buildExport() SessionExport {
	export := SessionExport{
		SessionID: b.session.ID,
		Name:      b.session.Name,
		MapWidth:  b.session.MapSize.W,
		MapHeight: b.session.MapSize.H,
		StartTime: b.session.StartTime.UTC().Format(timeLayout),
		Players:   make([]PlayerJSON, 0, len(b.players)),
	}

	for _, rec := range b.players {
		p := PlayerJSON{ID: rec.PlayerID, Turns: make([]TurnJSON, 0, len(rec.Turns))}
		for _, s := range rec.Turns {
			spotted := s.SpottedUnits
			if spotted == nil {
				spotted = []core.UnitID{}
			}
			p.Turns = append(p.Turns, TurnJSON{
				Turn:         s.Turn,
				Time:         s.Time.UTC().Format(timeLayout),
				Excellent:    s.Excellent,
				Normal:       s.Normal,
				Hidden:       s.Hidden,
				SpottedUnits: spotted,
			})
		}
		export.Players = append(export.Players, p)
	}

	// map iteration order is random
	slices.SortFunc(export.Players, func(a, b PlayerJSON) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return export
}

func writeJSON(path string, data SessionExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	return encoder.Encode(data)
}

func writeGzipJSON(path string, data SessionExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	gzWriter := gzip.NewWriter(f)
	defer gzWriter.Close()

	encoder := json.NewEncoder(gzWriter)
	return encoder.Encode(data)
}
