package worker

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/reverendhomer/zoc/internal/dispatcher"
	"github.com/reverendhomer/zoc/internal/fow"
	"github.com/reverendhomer/zoc/pkg/core"
)

// RegisterHandlers registers a handler for every event kind with the
// dispatcher. Events are handled synchronously so each fog map sees them in
// stream order.
func (m *Manager) RegisterHandlers(d *dispatcher.Dispatcher) {
	// Kinds that move or add sight
	d.Register(core.KindMove, m.handleFogEvent, dispatcher.Logged())
	d.Register(core.KindCreateUnit, m.handleFogEvent, dispatcher.Logged())

	// Turn boundary - rebuilds the new player's map and records it
	d.Register(core.KindEndTurn, m.handleEndTurn, dispatcher.Logged())

	// Inert for visibility, still routed through the reducer
	d.Register(core.KindAttackUnit, m.handleFogEvent)
	d.Register(core.KindShowUnit, m.handleFogEvent)
	d.Register(core.KindHideUnit, m.handleFogEvent)

	m.dispatch = d.Dispatch
}

func (m *Manager) handleFogEvent(e core.Event) error {
	return m.applyAll(e)
}

func (m *Manager) handleEndTurn(e core.Event) error {
	ev, ok := e.(core.EndTurnEvent)
	if !ok {
		return fmt.Errorf("end turn handler got %T", e)
	}
	if err := m.applyAll(ev); err != nil {
		return err
	}
	m.resets.Add(context.Background(), 1,
		metric.WithAttributes(attribute.Int("player", int(ev.NewID))))

	return m.recordVisibility(ev.NewID)
}

// applyAll runs the reducer for every player's fog map. With Parallel set
// the maps are updated concurrently; the event still completes on every map
// before the next one starts.
func (m *Manager) applyAll(e core.Event) error {
	players := m.deps.Session.Players()

	if !m.deps.Parallel {
		for _, p := range players {
			if err := fow.ApplyEvent(m.fogs[p], m.deps.Session, e); err != nil {
				return fmt.Errorf("fog of player %d: %w", p, err)
			}
		}
		return nil
	}

	var g errgroup.Group
	for _, p := range players {
		f := m.fogs[p]
		g.Go(func() error {
			if err := fow.ApplyEvent(f, m.deps.Session, e); err != nil {
				return fmt.Errorf("fog of player %d: %w", p, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (m *Manager) recordVisibility(player core.PlayerID) error {
	if m.deps.Backend == nil {
		return nil
	}
	stats, err := m.Stats(player)
	if err != nil {
		return fmt.Errorf("visibility of player %d: %w", player, err)
	}
	if err := m.deps.Backend.RecordVisibility(&stats); err != nil {
		// storage problems do not invalidate the fog maps
		m.log.Error("Failed to record visibility", "player", player, "turn", stats.Turn, "error", err)
		return nil
	}
	m.recorded.Add(context.Background(), 1)
	return nil
}
