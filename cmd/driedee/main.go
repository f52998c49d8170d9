// driedee - software 3D renderer
// Renders a mesh through a CPU pipeline and shows it in the terminal, in a
// window, or as a PNG.
//
// Controls:
//
//	W/S         - Move forward/back
//	A/D         - Strafe left/right
//	Left/Right  - Yaw
//	Up/Down     - Pitch
//	R/F         - Rise/fall
//	X           - Cycle filled, wireframe, filled+wireframe
//	Space       - Reset camera
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/taigrr/driedee/pkg/engine"
)

var (
	cfg     = engine.DefaultConfig()
	logPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "driedee",
	Short: "A software 3D renderer for the terminal",
	Long: `driedee renders a mesh through a CPU pipeline: transform, back-face
culling, flat lighting, near and screen clipping, painter's sorting and
scanline fill. Without a subcommand it runs the interactive terminal viewer.`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.Float64Var(&cfg.MaxFPS, "max-fps", cfg.MaxFPS, "frame rate cap")
	f.StringVarP(&cfg.ObjectPath, "object", "o", cfg.ObjectPath, "mesh file (.obj, .gltf, .glb); empty uses --shape")
	f.StringVar(&cfg.Shape, "shape", cfg.Shape, "built-in shape: cube, pyramid, cylinder, icosahedron")
	f.IntVar(&cfg.Segments, "segments", cfg.Segments, "cylinder sides")
	f.Float32Var(&cfg.Distance, "distance", cfg.Distance, "object distance from the camera")
	f.Float32Var(&cfg.Spin, "spin", cfg.Spin, "object spin in radians per second")
	f.BoolVar(&cfg.Fit, "fit", cfg.Fit, "center the mesh and scale it to unit size")
	f.BoolVarP(&cfg.Watch, "watch", "w", cfg.Watch, "reload the object file when it changes")
	f.BoolVar(&cfg.Wireframe, "wireframe", cfg.Wireframe, "start in wireframe mode")
	f.Float32Var(&cfg.FOV, "fov", cfg.FOV, "vertical field of view in degrees")
	f.Float32Var(&cfg.Near, "near", cfg.Near, "near clip distance")
	f.Float32Var(&cfg.Far, "far", cfg.Far, "far distance")
	f.IntVar(&cfg.Width, "width", cfg.Width, "window and snapshot width")
	f.IntVar(&cfg.Height, "height", cfg.Height, "window and snapshot height")
	f.StringVar(&logPath, "log", "", "log file (the terminal viewer discards logs without it)")
	f.BoolVar(&debug, "debug", false, "log at debug level")
}

// newLogger creates a logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "driedee",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// openLog returns a logger for --log, or fallback when it is unset. The
// returned close function is never nil.
func openLog(fallback io.Writer) (*log.Logger, func() error, error) {
	if logPath == "" {
		return newLogger(fallback), func() error { return nil }, nil
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return newLogger(f), f.Close, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := fang.Execute(ctx, rootCmd)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
