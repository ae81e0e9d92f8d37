package engine

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-shadows/common"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shadows/engine/scene"
	"github.com/Carmen-Shannon/oxy-shadows/engine/window"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrAlreadyRunning is returned by Run when the engine loop is already active.
var ErrAlreadyRunning = errors.New("engine already running")

// engine implements the Engine interface.
// Window events, scene ticks and GPU submission all happen on the goroutine that calls Run.
type engine struct {
	mu *sync.Mutex

	app    scene.Scene
	logger *zap.Logger

	presentMode renderer.PresentMode
	msaa        renderer.MSAASampleCount
	frameLimit  time.Duration

	window   window.Window
	renderer renderer.Renderer

	newWindow   func(cfg window.Config) (window.Window, error)
	newRenderer func(w window.Window, options ...renderer.RendererBuilderOption) renderer.Renderer
	now         func() time.Time

	running   bool
	quitOnce  sync.Once
	quit      chan struct{}
	frame     uint64
	lastFrame time.Time
}

// Engine is the main entry point. It owns the window and the renderer and drives a
// single scene through its lifecycle.
type Engine interface {
	// Run creates the window and renderer, initializes the scene, then runs the message loop
	// until the window closes or Quit is called. The scene is disposed and every GPU resource
	// released before Run returns.
	//
	// Returns:
	//   - error: error if the window, the renderer or the scene cannot be set up
	Run() error

	// Quit asks the loop to stop after the current frame.
	// Safe to call multiple times and from any goroutine.
	Quit()

	// Window returns the window, or nil before Run.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Scene returns the scene driven by the engine.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// FrameCount returns the number of frames ticked so far.
	//
	// Returns:
	//   - uint64: the frame count
	FrameCount() uint64
}

var _ Engine = &engine{}

// NewEngine creates a new Engine for the given scene.
// Nothing is created on the platform or the GPU until Run.
//
// Parameters:
//   - app: the scene to drive
//   - options: functional options for engine configuration (logger, present mode, frame limit)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(app scene.Scene, options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:          &sync.Mutex{},
		app:         app,
		logger:      zap.NewNop(),
		presentMode: renderer.PresentModeVSync,
		msaa:        renderer.MSAA4x,
		quit:        make(chan struct{}),
		now:         time.Now,
		newWindow: func(cfg window.Config) (window.Window, error) {
			return window.NewWindow(window.WithConfig(cfg))
		},
		newRenderer: func(w window.Window, options ...renderer.RendererBuilderOption) renderer.Renderer {
			return renderer.NewRenderer(renderer.BackendTypeWGPU, w, options...)
		},
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

func (e *engine) Window() window.Window {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.app
}

func (e *engine) FrameCount() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frame
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quit)
	})
}

func (e *engine) quitRequested() bool {
	select {
	case <-e.quit:
		return true
	default:
		return false
	}
}

func (e *engine) Run() error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return ErrAlreadyRunning
	}
	e.running = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	cfg := e.app.WindowConfig()
	w, err := e.newWindow(cfg)
	if err != nil {
		return errors.Wrap(err, "create window")
	}

	r := e.newRenderer(w,
		renderer.WithPresentMode(e.presentMode),
		renderer.WithMSAA(e.msaa),
		renderer.WithGraphicsBackend(cfg.Backend),
		renderer.WithLogger(e.logger.Named("renderer")),
	)

	e.mu.Lock()
	e.window = w
	e.renderer = r
	e.mu.Unlock()

	e.app.SetRenderer(r)
	e.app.SetViewport(w.Width(), w.Height())
	if err := e.app.Initialize(); err != nil {
		r.Release()
		_ = w.Close()
		return errors.Wrapf(err, "initialize scene %s", e.app.Name())
	}

	e.bindCallbacks(w)
	e.lastFrame = e.now()
	e.logger.Info("engine running",
		zap.String("scene", e.app.Name()),
		zap.Int("width", w.Width()),
		zap.Int("height", w.Height()),
	)

	w.ProcessMessages()

	e.app.Dispose()
	r.Release()
	if err := w.Close(); err != nil {
		e.logger.Warn("close window", zap.Error(err))
	}
	e.logger.Info("engine stopped", zap.Uint64("frames", e.FrameCount()))
	return nil
}

// bindCallbacks routes window events to the scene. Escape quits instead of reaching the scene.
func (e *engine) bindCallbacks(w window.Window) {
	w.SetKeyCallback(func(keyCode uint32, action common.Action) {
		if keyCode == common.KeyEsc {
			if action == common.ActionPress {
				e.Quit()
			}
			return
		}
		e.app.OnKey(keyCode, action)
	})
	w.SetMouseButtonCallback(func(button int, action common.Action) {
		e.app.OnMouse(button, action)
	})
	w.SetResizeCallback(func(width, height int) {
		e.app.OnResize(width, height)
	})
	w.SetUpdateCallback(func() {
		e.update(w)
	})
}

// update runs one frame: delta time, mouse delta, scene tick, optional frame cap.
func (e *engine) update(w window.Window) {
	if e.quitRequested() {
		w.RequestClose()
		return
	}

	start := e.now()
	dt := float32(start.Sub(e.lastFrame).Seconds() * 1000)
	e.lastFrame = start

	mdx, mdy := w.ConsumeMouseDelta()

	e.mu.Lock()
	frame := e.frame
	e.frame++
	e.mu.Unlock()

	e.app.Tick(scene.FrameContext{
		DeltaMillis: dt,
		MouseDeltaX: mdx,
		MouseDeltaY: mdy,
		FrameIndex:  frame,
	})

	if e.frameLimit > 0 {
		if remaining := e.frameLimit - e.now().Sub(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}
