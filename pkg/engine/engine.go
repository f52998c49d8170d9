package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/taigrr/driedee/pkg/math3d"
	"github.com/taigrr/driedee/pkg/models"
	"github.com/taigrr/driedee/pkg/render"
)

// maxFrameTime caps dt so a stall does not teleport the camera.
const maxFrameTime = 0.1

// inputQueueSize is how many input events may wait for the next frame.
const inputQueueSize = 64

// Presenter shows a finished frame.
type Presenter interface {
	Present(fb *render.Framebuffer) error
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(fb *render.Framebuffer) error

// Present calls f(fb).
func (f PresenterFunc) Present(fb *render.Framebuffer) error {
	return f(fb)
}

type inputEvent struct {
	action Action
	set    bool // key state report; otherwise a press
	held   bool
}

// Engine owns the camera, renderer, mesh and controls, and steps them in
// lockstep once per frame. Resize, Press, Set, Offer and Stop may be called
// from any goroutine; everything else belongs to the frame loop.
type Engine struct {
	Config   Config
	Camera   *render.Camera
	Renderer *render.Renderer
	Controls *Controls
	ShowHUD  bool

	logger  *log.Logger
	mesh    *models.Mesh
	meshes  chan *models.Mesh
	inputs  chan inputEvent
	watcher *models.Watcher
	running atomic.Bool

	resizeMu      sync.Mutex
	pendingResize *[2]int

	theta  float32
	frames int
	fps    fpsCounter
}

// New validates cfg, loads the configured mesh and builds an engine with a
// cfg.Width×cfg.Height framebuffer. A nil logger uses log.Default().
func New(cfg Config, logger *log.Logger) (*Engine, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mesh, err := LoadMesh(cfg, logger)
	if err != nil {
		return nil, err
	}

	opts := render.DefaultOptions()
	opts.FOV = cfg.FOV
	opts.Near = cfg.Near
	opts.Far = cfg.Far
	if cfg.Wireframe {
		opts.Mode = render.ModeWireframe
	}

	cam := render.NewCamera()
	e := &Engine{
		Config:   cfg,
		Camera:   cam,
		Renderer: render.NewRenderer(cam, cfg.Width, cfg.Height, opts),
		Controls: NewControls(cfg.MaxFPS),
		logger:   logger,
		mesh:     mesh,
		meshes:   make(chan *models.Mesh, 1),
		inputs:   make(chan inputEvent, inputQueueSize),
	}
	e.running.Store(true)
	logger.Debug("engine ready", "mesh", mesh.Name, "triangles", mesh.TriangleCount(),
		"width", cfg.Width, "height", cfg.Height)
	return e, nil
}

// LoadMesh loads cfg.ObjectPath, or builds cfg.Shape when no path is set,
// and fits it when cfg.Fit is set.
func LoadMesh(cfg Config, logger *log.Logger) (*models.Mesh, error) {
	var (
		mesh *models.Mesh
		err  error
	)
	if cfg.ObjectPath != "" {
		mesh, err = models.Load(cfg.ObjectPath, logger)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
	} else {
		mesh, err = models.NewShape(cfg.Shape, cfg.Segments)
		if err != nil {
			return nil, err
		}
	}
	if cfg.Fit {
		mesh.Fit(1)
	}
	return mesh, nil
}

// Watch starts reloading the mesh file when it changes. Reloaded meshes are
// swapped in at the start of the next frame.
func (e *Engine) Watch() error {
	if e.Config.ObjectPath == "" {
		return fmt.Errorf("watch: no object path")
	}
	w, err := models.NewWatcher(e.Config.ObjectPath, models.DefaultDebounce, e.logger, func(m *models.Mesh) {
		if e.Config.Fit {
			m.Fit(1)
		}
		e.Offer(m)
	})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	e.watcher = w
	w.Start()
	e.logger.Info("watching mesh", "path", w.Path())
	return nil
}

// Close stops the file watcher, if any.
func (e *Engine) Close() error {
	if e.watcher == nil {
		return nil
	}
	return e.watcher.Close()
}

// Mesh returns the mesh currently being drawn.
func (e *Engine) Mesh() *models.Mesh {
	return e.mesh
}

// Offer queues m to replace the current mesh. Only the newest offer is kept.
func (e *Engine) Offer(m *models.Mesh) {
	for {
		select {
		case e.meshes <- m:
			return
		default:
		}
		select {
		case <-e.meshes:
		default:
		}
	}
}

// Resize queues a framebuffer resize for the start of the next frame.
func (e *Engine) Resize(width, height int) {
	e.resizeMu.Lock()
	e.pendingResize = &[2]int{width, height}
	e.resizeMu.Unlock()
}

// Press queues a key press. Continuous actions are held for the controls'
// hold time; one-shot actions fire once.
func (e *Engine) Press(a Action) {
	e.queue(inputEvent{action: a})
}

// Set queues a key state change, for inputs that report releases.
func (e *Engine) Set(a Action, held bool) {
	e.queue(inputEvent{action: a, set: true, held: held})
}

func (e *Engine) queue(ev inputEvent) {
	select {
	case e.inputs <- ev:
	default:
		e.logger.Debug("input queue full, dropping", "action", ev.action)
	}
}

// Running reports whether the loop should keep going.
func (e *Engine) Running() bool {
	return e.running.Load()
}

// Stop ends the loop after the current frame.
func (e *Engine) Stop() {
	e.running.Store(false)
}

// Frames returns the number of frames stepped.
func (e *Engine) Frames() int {
	return e.frames
}

// FPS returns the measured frame rate over the last second.
func (e *Engine) FPS() float64 {
	return e.fps.fps
}

// Theta returns the current spin angle.
func (e *Engine) Theta() float32 {
	return e.theta
}

// World returns the object's model-to-world matrix: spin about Z and at
// half rate about X, then push out along +Z.
func (e *Engine) World() math3d.Mat4 {
	return math3d.RotateZ(e.theta).
		Mul(math3d.RotateX(e.theta * 0.5)).
		Mul(math3d.Translate(0, 0, e.Config.Distance))
}

// ResetView puts the camera, spin and controls back to their start state.
func (e *Engine) ResetView() {
	e.Camera.SetPosition(math3d.Zero3())
	e.Camera.SetRotation(0, 0)
	e.Controls.Reset()
	e.theta = 0
}

func (e *Engine) drainInput() {
	for {
		select {
		case ev := <-e.inputs:
			e.handle(ev)
		default:
			return
		}
	}
}

func (e *Engine) handle(ev inputEvent) {
	if ev.action.Continuous() {
		if ev.set {
			e.Controls.Set(ev.action, ev.held)
		} else {
			e.Controls.Press(ev.action)
		}
		return
	}
	if ev.set && !ev.held {
		return
	}
	switch ev.action {
	case ActionToggleWireframe:
		e.Renderer.Options.Mode = e.Renderer.Options.Mode.Next()
	case ActionReset:
		e.ResetView()
	case ActionToggleHUD:
		e.ShowHUD = !e.ShowHUD
	case ActionQuit:
		e.Stop()
	}
}

// Step runs one frame: apply queued resizes and meshes, drain input, update
// the camera and spin, and render into the framebuffer.
func (e *Engine) Step(dt float32) render.FrameStats {
	e.resizeMu.Lock()
	if size := e.pendingResize; size != nil {
		e.pendingResize = nil
		e.resizeMu.Unlock()
		e.Renderer.Resize(size[0], size[1])
		e.logger.Debug("resized", "width", e.Renderer.Width(), "height", e.Renderer.Height())
	} else {
		e.resizeMu.Unlock()
	}

	select {
	case m := <-e.meshes:
		e.mesh = m
		e.logger.Info("swapped mesh", "mesh", m.Name, "triangles", m.TriangleCount())
	default:
	}

	e.drainInput()

	dt = min(max(dt, 0), maxFrameTime)
	e.Controls.Update(dt, e.Camera)
	e.theta += e.Config.Spin * dt

	stats := e.Renderer.RenderFrame(e.mesh, e.World())
	e.frames++
	e.fps.tick(time.Now())
	return stats
}

// Run steps and presents frames until ctx is done, Stop is called or
// present fails, pacing to Config.MaxFPS.
func (e *Engine) Run(ctx context.Context, present Presenter) error {
	frame := time.Duration(float64(time.Second) / e.Config.MaxFPS)
	last := time.Now()

	for e.Running() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		e.Step(dt)
		if err := present.Present(e.Renderer.Framebuffer()); err != nil {
			return fmt.Errorf("present: %w", err)
		}

		if elapsed := time.Since(now); elapsed < frame {
			time.Sleep(frame - elapsed)
		}
	}
	return nil
}

// fpsCounter measures frames per second over one-second windows.
type fpsCounter struct {
	fps    float64
	frames int
	start  time.Time
}

func (c *fpsCounter) tick(now time.Time) {
	if c.start.IsZero() {
		c.start = now
	}
	c.frames++
	if elapsed := now.Sub(c.start); elapsed >= time.Second {
		c.fps = float64(c.frames) / elapsed.Seconds()
		c.frames = 0
		c.start = now
	}
}
