package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/reverendhomer/zoc/internal/fow"
	"github.com/reverendhomer/zoc/internal/session"
	"github.com/reverendhomer/zoc/internal/storage"
	"github.com/reverendhomer/zoc/pkg/core"
)

// ErrHalted is returned by Process after an earlier event failed fatally.
var ErrHalted = errors.New("event processing halted")

// ErrNotRegistered is returned by Process before RegisterHandlers was called.
var ErrNotRegistered = errors.New("handlers not registered")

// Dependencies holds all dependencies for the worker manager
type Dependencies struct {
	Session *session.Context
	// Backend receives a visibility summary each time a player's turn starts. Optional.
	Backend storage.Backend
	Logger  *slog.Logger
	// Parallel applies each event to the players' fog maps concurrently.
	Parallel bool
}

// Manager owns one fog map per player and keeps them in step with the session.
type Manager struct {
	deps Dependencies
	log  *slog.Logger
	fogs map[core.PlayerID]*fow.Fow

	dispatch func(core.Event) error
	halted   error

	resets   metric.Int64Counter
	recorded metric.Int64Counter
}

// NewManager creates a manager with an all-hidden fog map for every session player.
func NewManager(deps Dependencies) (*Manager, error) {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	m := &Manager{
		deps: deps,
		log:  log,
		fogs: make(map[core.PlayerID]*fow.Fow),
	}
	size := deps.Session.Terrain().Size()
	for _, p := range deps.Session.Players() {
		m.fogs[p] = fow.New(size, p)
	}

	meter := otel.Meter("github.com/reverendhomer/zoc/internal/worker")
	var err error
	m.resets, err = meter.Int64Counter(
		"worker.fog.resets",
		metric.WithDescription("Fog maps rebuilt at the start of a player's turn"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resets counter: %w", err)
	}
	m.recorded, err = meter.Int64Counter(
		"worker.visibility.recorded",
		metric.WithDescription("Visibility summaries handed to the storage backend"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating recorded counter: %w", err)
	}
	return m, nil
}

// Start rebuilds every fog map from the initial units and opens the session
// in the backend.
func (m *Manager) Start() error {
	st := m.deps.Session
	for _, p := range st.Players() {
		if err := m.fogs[p].Reset(st.Terrain(), st, st.Units()); err != nil {
			return fmt.Errorf("initial fog of player %d: %w", p, err)
		}
	}
	if m.deps.Backend == nil {
		return nil
	}
	info := st.Info()
	if err := m.deps.Backend.StartSession(&info); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	return nil
}

// Stop closes the session in the backend.
func (m *Manager) Stop() error {
	if m.deps.Backend == nil {
		return nil
	}
	if err := m.deps.Backend.EndSession(); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

// Process mirrors ev into the session and then dispatches it to the fog
// handlers. An event rejected with core.ErrInvalidPosition leaves all state
// untouched and processing continues. Any other error is fatal: later calls
// return ErrHalted.
func (m *Manager) Process(ev core.Event) error {
	if m.halted != nil {
		return fmt.Errorf("%w: %w", ErrHalted, m.halted)
	}
	if m.dispatch == nil {
		return ErrNotRegistered
	}
	if err := m.deps.Session.Apply(ev); err != nil {
		if !errors.Is(err, core.ErrInvalidPosition) {
			m.halted = err
		}
		return fmt.Errorf("apply %s to session: %w", ev.Kind(), err)
	}
	if err := m.dispatch(ev); err != nil {
		m.halted = err
		return err
	}
	return nil
}

// FogMap returns the fog map of player.
func (m *Manager) FogMap(player core.PlayerID) (*fow.Fow, bool) {
	f, ok := m.fogs[player]
	return f, ok
}

// Players returns the players in turn order.
func (m *Manager) Players() []core.PlayerID {
	return m.deps.Session.Players()
}

// SpottedUnits returns the enemy units player can currently see, ordered by id.
func (m *Manager) SpottedUnits(player core.PlayerID) ([]core.UnitID, error) {
	f, ok := m.fogs[player]
	if !ok {
		return nil, fmt.Errorf("no fog map for player %d", player)
	}
	var spotted []core.UnitID
	for u := range m.deps.Session.Units() {
		if u.PlayerID == player {
			continue
		}
		ut, ok := m.deps.Session.UnitType(u.TypeID)
		if !ok {
			return nil, fmt.Errorf("%w: unit %d has type %d", core.ErrUnknownUnitType, u.ID, u.TypeID)
		}
		visible, err := f.IsVisible(ut, u.Pos)
		if err != nil {
			return nil, fmt.Errorf("unit %d: %w", u.ID, err)
		}
		if visible {
			spotted = append(spotted, u.ID)
		}
	}
	return spotted, nil
}

// Stats summarizes the fog map of player for the current turn.
func (m *Manager) Stats(player core.PlayerID) (core.VisibilityStats, error) {
	f, ok := m.fogs[player]
	if !ok {
		return core.VisibilityStats{}, fmt.Errorf("no fog map for player %d", player)
	}
	spotted, err := m.SpottedUnits(player)
	if err != nil {
		return core.VisibilityStats{}, err
	}
	excellent, normal, hidden := f.Stats()
	return core.VisibilityStats{
		SessionID:    m.deps.Session.Info().ID,
		PlayerID:     player,
		Turn:         m.deps.Session.Turn(),
		Time:         time.Now(),
		Excellent:    excellent,
		Normal:       normal,
		Hidden:       hidden,
		SpottedUnits: slices.Clip(spotted),
	}, nil
}
