package tabletop

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var overlayBackground = color.RGBA{0, 0, 0, 128}

// DrawDebugOverlay prints FPS, TPS, the active tool modes, and the gesture
// recognizer phase in the top-left corner of screen. router may be nil.
func DrawDebugOverlay(screen *ebiten.Image, router *EventRouter) {
	vector.DrawFilledRect(screen, 0, 0, 180, 64, overlayBackground, false)
	ebitenutil.DebugPrint(screen, overlayText(router))
}

func overlayText(router *EventRouter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f\nTPS: %.1f\n", ebiten.ActualFPS(), ebiten.ActualTPS())
	if router == nil {
		return b.String()
	}
	fmt.Fprintf(&b, "modes: %s\n", modeNames(router.Modes()))
	if router.Gestures().State().Phase == GesturePendingTap {
		b.WriteString("tap: pending")
	} else {
		b.WriteString("tap: idle")
	}
	return b.String()
}

// modeNames lists the active modes, or "none".
func modeNames(m ToolModes) string {
	var names []string
	if m.Alignment {
		names = append(names, "align")
	}
	if m.Select {
		names = append(names, "select")
	}
	if m.Pointer {
		names = append(names, "pointer")
	}
	if m.Measure {
		names = append(names, "measure")
	}
	if m.Draw {
		names = append(names, "draw")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}
