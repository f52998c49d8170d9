package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/driedee/pkg/engine"
	"github.com/taigrr/driedee/pkg/render"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Render in the terminal with half-block pixels",
	Args:  cobra.NoArgs,
	RunE:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

// termSize holds a terminal size reported by the event goroutine until the
// frame loop applies it.
type termSize struct {
	mu         sync.Mutex
	cols, rows int
	pending    bool
}

func (s *termSize) set(cols, rows int) {
	s.mu.Lock()
	s.cols, s.rows, s.pending = cols, rows, true
	s.mu.Unlock()
}

// take returns the pending size once the framebuffer has been resized to
// match it.
func (s *termSize) take(fb *render.Framebuffer) (cols, rows int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pending || fb.Width != s.cols || fb.Height != s.rows*2 {
		return 0, 0, false
	}
	s.pending = false
	return s.cols, s.rows, true
}

func runView(cmd *cobra.Command, _ []string) error {
	// stdout is the display, so logs go to --log or nowhere.
	logger, closeLog, err := openLog(io.Discard)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	term := uv.DefaultTerminal()
	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	presenter := render.NewTerminalPresenter(term, cols, rows)
	viewCfg := cfg
	viewCfg.Width, viewCfg.Height = presenter.FramebufferSize()

	e, err := engine.New(viewCfg, logger)
	if err != nil {
		return err
	}
	defer e.Close()
	if viewCfg.Watch {
		if err := e.Watch(); err != nil {
			return err
		}
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	var size termSize
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				size.set(ev.Width, ev.Height)
				e.Resize(ev.Width, ev.Height*2)
			case uv.KeyPressEvent:
				if a := terminalAction(ev.MatchString); a != engine.ActionNone {
					e.Press(a)
				}
			case uv.KeyReleaseEvent:
				if a := terminalAction(ev.MatchString); a.Continuous() {
					e.Set(a, false)
				}
			}
		}
	}()

	styles := newHUDStyles()
	present := engine.PresenterFunc(func(fb *render.Framebuffer) error {
		if c, r, ok := size.take(fb); ok {
			presenter.Resize(c, r)
		}
		presenter.Overlay = nil
		if e.ShowHUD {
			presenter.Overlay = uv.NewStyledString(styles.render(e))
		}
		return presenter.Present(fb)
	})

	logger.Info("viewing", "mesh", e.Mesh().Name, "cols", cols, "rows", rows)
	return e.Run(cmd.Context(), present)
}
