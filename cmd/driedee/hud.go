package main

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/taigrr/driedee/pkg/engine"
)

const helpLine = "wasd move · ←→↑↓ look · r/f rise/fall · x render mode · space reset · esc quit"

// hudFields returns the overlay entries: frame rate, mesh name, drawn
// triangles, and render mode.
func hudFields(e *engine.Engine) [4]string {
	stats := e.Renderer.Stats
	return [4]string{
		fmt.Sprintf("%.0f FPS", e.FPS()),
		e.Mesh().Name,
		fmt.Sprintf("%d/%d tris", stats.Rasterized, stats.Triangles),
		e.Renderer.Options.Mode.String(),
	}
}

// hudStyles styles the terminal overlay.
type hudStyles struct {
	fps, title, polys, mode, help lipgloss.Style
}

func newHUDStyles() hudStyles {
	bar := lipgloss.NewStyle().Background(lipgloss.Color("#1e1e28")).Padding(0, 1)
	return hudStyles{
		fps:   bar.Foreground(lipgloss.Color("#5fd787")),
		title: bar.Foreground(lipgloss.Color("#ffffff")).Bold(true),
		polys: bar.Foreground(lipgloss.Color("#5fd7ff")).Bold(true),
		mode:  bar.Foreground(lipgloss.Color("#ffd75f")),
		help:  bar.Foreground(lipgloss.Color("#8a8a8a")).Faint(true),
	}
}

// render builds the styled overlay: a status bar and a help line.
func (s hudStyles) render(e *engine.Engine) string {
	f := hudFields(e)
	status := lipgloss.JoinHorizontal(lipgloss.Top,
		s.fps.Render(f[0]),
		s.title.Render(f[1]),
		s.polys.Render(f[2]),
		s.mode.Render(f[3]),
	)
	return lipgloss.JoinVertical(lipgloss.Left, status, s.help.Render(helpLine))
}

// plainHUD is the overlay text for surfaces without ANSI styling.
func plainHUD(e *engine.Engine) string {
	f := hudFields(e)
	return strings.Join(f[:], "  ") + "\n" + helpLine
}
