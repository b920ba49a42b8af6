package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/reverendhomer/zoc/internal/fow"
	"github.com/reverendhomer/zoc/internal/worker"
	"github.com/reverendhomer/zoc/pkg/core"
)

var visibilityGlyph = map[core.TileVisibility]byte{
	core.VisibilityNone:      '#',
	core.VisibilityNormal:    '.',
	core.VisibilityExcellent: 'o',
}

// renderFog draws f as text, one line per row. Odd rows are indented by one
// column to show the hex offset.
func renderFog(f *fow.Fow) string {
	snap := f.Snapshot()
	size := snap.Size()

	var b strings.Builder
	for y := 0; y < size.H; y++ {
		if y%2 == 1 {
			b.WriteByte(' ')
		}
		for x := 0; x < size.W; x++ {
			if x > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte(visibilityGlyph[snap.Get(core.MapPos{X: x, Y: y})])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func printFogMaps(w io.Writer, mgr *worker.Manager) {
	for _, p := range mgr.Players() {
		f, ok := mgr.FogMap(p)
		if !ok {
			continue
		}
		excellent, normal, hidden := f.Stats()
		fmt.Fprintf(w, "player %d: %d excellent, %d normal, %d hidden\n", p, excellent, normal, hidden)
		if spotted, err := mgr.SpottedUnits(p); err == nil && len(spotted) > 0 {
			fmt.Fprintf(w, "spotted: %v\n", spotted)
		}
		fmt.Fprint(w, renderFog(f))
		fmt.Fprintln(w)
	}
}
