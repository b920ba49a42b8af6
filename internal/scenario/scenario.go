// Package scenario loads game setups and scripted event logs from YAML files.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reverendhomer/zoc/internal/cache"
	"github.com/reverendhomer/zoc/internal/grid"
	"github.com/reverendhomer/zoc/internal/session"
	"github.com/reverendhomer/zoc/pkg/core"
)

// Tile glyphs used in map rows.
const (
	GlyphPlain = '.'
	GlyphTrees = 'T'
)

type fileType struct {
	ID       core.UnitTypeID `yaml:"id"`
	Name     string          `yaml:"name"`
	Los      int             `yaml:"los"`
	CoverLos int             `yaml:"cover_los"`
	Class    string          `yaml:"class"`
	Count    int             `yaml:"count"`
}

type fileUnit struct {
	ID     core.UnitID     `yaml:"id"`
	Player core.PlayerID   `yaml:"player"`
	Type   core.UnitTypeID `yaml:"type"`
	Pos    core.MapPos     `yaml:"pos"`
	Count  int             `yaml:"count"`
}

type file struct {
	Name    string             `yaml:"name"`
	Map     []string           `yaml:"map"`
	Types   []fileType         `yaml:"types"`
	Players []core.PlayerID    `yaml:"players"`
	Units   []fileUnit         `yaml:"units"`
	Events  []core.EventRecord `yaml:"events"`
}

// Scenario is a decoded scenario file.
type Scenario struct {
	Name    string
	Terrain *grid.Map[core.Terrain]
	Types   []core.UnitType
	Players []core.PlayerID
	Units   []core.Unit
	Events  []core.Event
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes a scenario from YAML.
func Parse(data []byte) (*Scenario, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("error unmarshalling scenario: %w", err)
	}

	terrain, err := parseMap(f.Map)
	if err != nil {
		return nil, err
	}

	sc := &Scenario{
		Name:    f.Name,
		Terrain: terrain,
		Players: f.Players,
	}
	if len(sc.Players) == 0 {
		return nil, fmt.Errorf("scenario has no players")
	}

	seen := make(map[core.UnitTypeID]struct{}, len(f.Types))
	for _, t := range f.Types {
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("unit type %d: duplicate id", t.ID)
		}
		seen[t.ID] = struct{}{}
		class, err := core.ParseUnitClass(t.Class)
		if err != nil {
			return nil, fmt.Errorf("unit type %d: %w", t.ID, err)
		}
		if t.Los < 0 || t.CoverLos < 0 {
			return nil, fmt.Errorf("unit type %d: negative los %d or cover_los %d", t.ID, t.Los, t.CoverLos)
		}
		if t.CoverLos > t.Los {
			return nil, fmt.Errorf("unit type %d: cover_los %d exceeds los %d", t.ID, t.CoverLos, t.Los)
		}
		sc.Types = append(sc.Types, core.UnitType{
			ID:            t.ID,
			Name:          t.Name,
			LosRange:      t.Los,
			CoverLosRange: t.CoverLos,
			Class:         class,
			Count:         t.Count,
		})
	}

	for _, u := range f.Units {
		sc.Units = append(sc.Units, core.Unit{
			ID:       u.ID,
			PlayerID: u.Player,
			TypeID:   u.Type,
			Pos:      u.Pos,
			Count:    u.Count,
		})
	}

	for i, rec := range f.Events {
		ev, err := rec.ToEvent()
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		sc.Events = append(sc.Events, ev)
	}
	return sc, nil
}

func parseMap(rows []string) (*grid.Map[core.Terrain], error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("scenario map is empty")
	}
	width := len(rows[0])
	terrain := grid.New(core.Size2{W: width, H: len(rows)}, core.TerrainPlain)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("map row %d has width %d, want %d", y, len(row), width)
		}
		for x, c := range []byte(row) {
			switch c {
			case GlyphPlain:
			case GlyphTrees:
				terrain.Set(core.MapPos{X: x, Y: y}, core.TerrainTrees)
			default:
				return nil, fmt.Errorf("map row %d col %d: unknown tile %q", y, x, c)
			}
		}
	}
	return terrain, nil
}

// NewSession builds a session context holding the scenario's initial state.
func (sc *Scenario) NewSession() (*session.Context, error) {
	types := cache.NewTypeTable()
	for _, t := range sc.Types {
		types.Set(t)
	}
	st, err := session.New(sc.Name, sc.Terrain, types, sc.Players)
	if err != nil {
		return nil, err
	}
	for _, u := range sc.Units {
		if err := st.AddUnit(u); err != nil {
			return nil, fmt.Errorf("initial unit %d: %w", u.ID, err)
		}
	}
	return st, nil
}
