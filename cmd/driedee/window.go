package main

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"
	"github.com/taigrr/driedee/pkg/engine"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Render in a desktop window",
	Args:  cobra.NoArgs,
	RunE:  runWindow,
}

func init() {
	rootCmd.AddCommand(windowCmd)
}

// titleEvery is how many frames pass between window title updates.
const titleEvery = 30

// windowGame drives the engine from ebiten's update loop and blits the
// framebuffer on draw.
type windowGame struct {
	ctx    context.Context
	e      *engine.Engine
	img    *ebiten.Image
	pix    []byte
	width  int
	height int
}

func (g *windowGame) Update() error {
	if g.ctx.Err() != nil || !g.e.Running() {
		return ebiten.Termination
	}

	for _, b := range keyBindings {
		switch {
		case inpututil.IsKeyJustPressed(b.key):
			g.e.Set(b.action, true)
		case inpututil.IsKeyJustReleased(b.key):
			g.e.Set(b.action, false)
		}
	}

	g.e.Step(float32(1 / float64(ebiten.TPS())))
	if g.e.Frames()%titleEvery == 0 {
		ebiten.SetWindowTitle(fmt.Sprintf("driedee - %s - %.0f FPS", g.e.Mesh().Name, ebiten.ActualFPS()))
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	fb := g.e.Renderer.Framebuffer()
	if g.img == nil || g.img.Bounds().Dx() != fb.Width || g.img.Bounds().Dy() != fb.Height {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(fb.Width, fb.Height)
		g.pix = make([]byte, fb.Width*fb.Height*4)
	}

	fb.CopyRGBA(g.pix)
	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)

	if g.e.ShowHUD {
		ebitenutil.DebugPrint(screen, plainHUD(g.e))
	}
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.e.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func runWindow(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := openLog(os.Stderr)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	e, err := engine.New(cfg, logger)
	if err != nil {
		return err
	}
	defer e.Close()
	if cfg.Watch {
		if err := e.Watch(); err != nil {
			return err
		}
	}

	ebiten.SetWindowTitle("driedee - " + e.Mesh().Name)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ticksPerSecond(cfg.MaxFPS))

	g := &windowGame{ctx: cmd.Context(), e: e, width: cfg.Width, height: cfg.Height}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

// ticksPerSecond rounds a frame rate cap to ebiten's whole-tick rate.
// Caps below one frame per second still tick once a second.
func ticksPerSecond(fps float64) int {
	return max(int(math.Round(fps)), 1)
}
