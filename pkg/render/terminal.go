package render

import (
	"fmt"
	"image"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. Each terminal row shows two framebuffer rows, using ▀ with the
// top pixel as foreground and the bottom pixel as background.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: fb.GetPixel(col, topY),
					Bg: fb.GetPixel(col, botY),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// TerminalPresenter blits framebuffers to a terminal with half-block cells.
type TerminalPresenter struct {
	// Overlay, when set, is drawn over the frame before it is displayed.
	Overlay uv.Drawable

	term *uv.Terminal
	cols int
	rows int
}

// NewTerminalPresenter creates a presenter for a cols×rows terminal.
func NewTerminalPresenter(term *uv.Terminal, cols, rows int) *TerminalPresenter {
	return &TerminalPresenter{term: term, cols: cols, rows: rows}
}

// FramebufferSize returns the pixel size matching the terminal: one pixel
// column per cell and two pixel rows per cell.
func (p *TerminalPresenter) FramebufferSize() (width, height int) {
	return p.cols, p.rows * 2
}

// Resize records the new terminal size and resizes the screen buffer.
func (p *TerminalPresenter) Resize(cols, rows int) {
	p.cols, p.rows = cols, rows
	p.term.Erase()
	p.term.Resize(cols, rows)
}

// Present draws fb and flushes the changes to the terminal.
func (p *TerminalPresenter) Present(fb *Framebuffer) error {
	area := uv.Rectangle(image.Rect(0, 0, p.cols, p.rows))
	fb.Draw(p.term, area)
	if p.Overlay != nil {
		p.Overlay.Draw(p.term, area)
	}
	if err := p.term.Display(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}
