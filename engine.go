package lumen

import (
	"context"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// DefaultTimeStep is the fixed simulation-clock increment per frame. It
	// is not measured from the wall clock, so motion speed follows the
	// display refresh rate.
	DefaultTimeStep = 0.016
	// DefaultSpinY and DefaultSpinX are the per-frame rigid rotation of the
	// whole field, in radians.
	DefaultSpinY = 0.0015
	DefaultSpinX = 0.0005

	captionBuffer = 4
)

// EngineState is the simulation state owned by the frame loop.
type EngineState struct {
	ChapterIndex int
	// ElapsedTime is the simulation clock, advanced by a fixed step each frame.
	ElapsedTime float64
	// RotationX and RotationY are the accumulated field orientation.
	RotationX, RotationY float64
}

// EngineConfig configures a new Engine. The zero value is usable: every
// field falls back to the defaults documented on it or on the nested config.
type EngineConfig struct {
	Field      FieldConfig
	Controller ControllerConfig
	Camera     CameraConfig

	// Chapters defaults to DefaultChapters.
	Chapters []Chapter
	// Display receives chapter transitions. Optional.
	Display Display
	// Captioner generates captions. Nil shows the unavailable fallback.
	Captioner Captioner
	// PromptTemplate is formatted with the chapter title. Defaults to
	// DefaultPromptTemplate.
	PromptTemplate string

	// TimeStep defaults to DefaultTimeStep.
	TimeStep float64
	// SpinX and SpinY default to DefaultSpinX and DefaultSpinY.
	SpinX, SpinY float64

	// Width and Height are the initial viewport size. Default to 800x600.
	Width, Height float64
	// Blend is the particle compositing mode. Defaults to BlendAdd.
	Blend BlendMode
	// ClearColor fills the screen before particles are drawn.
	ClearColor Color
	// Controls enables the built-in bindings: click, space or right arrow
	// for the next chapter, C for a caption.
	Controls bool
}

// Engine drives the particle narrative: it owns the field, the pointer, the
// camera and the chapter controller, and advances them once per frame.
// Engine implements ebiten.Game.
type Engine struct {
	state      EngineState
	field      *Field
	pointer    Pointer
	source     pointerSource
	touchBuf   []ebiten.TouchID
	camera     *Camera
	controller *Controller
	display    Display
	renderer   renderer
	overlays   []Overlay

	mode  Mode
	color Color

	timeStep     float64
	spinX, spinY float64
	clearColor   Color
	controls     bool

	captioner Captioner
	prompt    string
	captions  chan string
	clock     timeline

	ctx   context.Context
	sink  EventSink
	debug bool

	frames   uint64
	evalTime time.Duration

	injectQueue     []Vec2
	testRunner      *TestRunner
	screenshotQueue []string
	// ScreenshotDir is where Screenshot writes PNG files. Defaults to "screenshots".
	ScreenshotDir string
}

// NewEngine creates an engine with its particle field seeded and chapter 0
// selected but not yet applied. Call Start to schedule the intro.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.TimeStep == 0 {
		cfg.TimeStep = DefaultTimeStep
	}
	if cfg.SpinX == 0 {
		cfg.SpinX = DefaultSpinX
	}
	if cfg.SpinY == 0 {
		cfg.SpinY = DefaultSpinY
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 800, 600
	}

	e := &Engine{
		field:         NewField(cfg.Field),
		camera:        NewCamera(cfg.Camera, cfg.Width, cfg.Height),
		display:       cfg.Display,
		timeStep:      cfg.TimeStep,
		spinX:         cfg.SpinX,
		spinY:         cfg.SpinY,
		clearColor:    cfg.ClearColor,
		controls:      cfg.Controls,
		captioner:     cfg.Captioner,
		prompt:        cfg.PromptTemplate,
		captions:      make(chan string, captionBuffer),
		ctx:           context.Background(),
		color:         ColorWhite,
		ScreenshotDir: "screenshots",
	}
	e.renderer.blend = cfg.Blend
	e.controller = NewController(cfg.Chapters, cfg.Display, cfg.Controller)
	e.controller.OnApply = e.applyChapter

	// Until chapter 0 is applied the field already wears its color.
	if col, err := ParseHexColor(e.controller.Chapter().Color); err == nil {
		e.color = col
	}

	if ov, ok := cfg.Display.(Overlay); ok {
		e.AddOverlay(ov)
	}
	return e
}

// Start schedules the intro sequence on the chapter controller.
func (e *Engine) Start() {
	e.controller.Start()
}

// State returns a snapshot of the simulation state.
func (e *Engine) State() EngineState {
	s := e.state
	s.ChapterIndex = e.controller.Index()
	return s
}

// Field returns the particle field.
func (e *Engine) Field() *Field { return e.field }

// Pointer returns the pointer state. Callers may write Raw between frames.
func (e *Engine) Pointer() *Pointer { return &e.pointer }

// Camera returns the engine camera.
func (e *Engine) Camera() *Camera { return e.camera }

// Controller returns the chapter controller.
func (e *Engine) Controller() *Controller { return e.controller }

// Mode returns the active motion mode.
func (e *Engine) Mode() Mode { return e.mode }

// Color returns the active particle color.
func (e *Engine) Color() Color { return e.color }

// SetContext sets the context that parents caption requests. When it is
// done, Update ends the ebiten game loop.
func (e *Engine) SetContext(ctx context.Context) {
	e.ctx = ctx
}

// SetEventSink sets the optional ECS bridge.
func (e *Engine) SetEventSink(sink EventSink) {
	e.sink = sink
}

// SetDebugMode enables or disables periodic timing stats on stderr.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
}

// AddOverlay registers a 2D layer drawn on top of the particles.
func (e *Engine) AddOverlay(ov Overlay) {
	e.overlays = append(e.overlays, ov)
}

// Advance moves the narrative to chapter idx (modulo the chapter count).
func (e *Engine) Advance(idx int) {
	e.controller.Advance(idx)
}

// Next moves the narrative to the following chapter.
func (e *Engine) Next() {
	e.controller.Next()
}

// applyChapter is the controller's swap callback: it switches the field's
// mode and color in a single step, with no blending.
func (e *Engine) applyChapter(idx int, ch Chapter) {
	prev := e.mode
	mode, ok := ModeFromIndex(ch.Mode)
	if !ok {
		warnf("chapter %q: mode %d out of range, using %s", ch.ID, ch.Mode, mode)
	}
	e.mode = mode
	if col, err := ParseHexColor(ch.Color); err != nil {
		warnf("chapter %q: %v", ch.ID, err)
	} else {
		e.color = col
	}
	if e.sink != nil {
		e.sink.EmitChapter(ChapterEvent{
			Index:       idx,
			ID:          ch.ID,
			Title:       ch.Title,
			Mode:        mode,
			PrevMode:    prev,
			Color:       e.color,
			ElapsedTime: e.state.ElapsedTime,
		})
	}
}

// Frame advances the engine by one display refresh. Timers move by dt of
// wall time; the simulation clock moves by the fixed TimeStep regardless.
//
// Order: pending timers and captions, clock step, pointer smoothing, field
// evaluation, rigid spin, camera follow.
func (e *Engine) Frame(dt time.Duration) {
	e.frames++
	e.controller.Update(dt)
	e.clock.advance(dt)
	e.drainCaptions()

	e.state.ElapsedTime += e.timeStep
	e.pointer.Step()

	t0 := time.Now()
	e.field.Evaluate(e.state.ElapsedTime, e.mode, e.pointer.Smoothed)
	e.evalTime = time.Since(t0)

	e.state.RotationY += e.spinY
	e.state.RotationX += e.spinX
	e.camera.Follow(e.pointer.Raw)
}

// Seek sets the simulation clock and re-evaluates the field. Every mode is a
// closed-form function of time, so any instant can be reproduced exactly.
func (e *Engine) Seek(t float64) {
	e.state.ElapsedTime = t
	e.field.Evaluate(t, e.mode, e.pointer.Smoothed)
}

// Resize recomputes the projection aspect and viewport for a new surface size.
func (e *Engine) Resize(width, height float64) {
	e.camera.Resize(width, height)
}

// Update implements ebiten.Game. It reads input, steps any attached test
// runner and advances one frame.
func (e *Engine) Update() error {
	if err := e.ctx.Err(); err != nil {
		return ebiten.Termination
	}
	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	if !e.processInjectedInput() {
		vp := e.camera.Viewport
		e.source.poll(&e.pointer, vp.Width, vp.Height)
	}
	if e.controls {
		e.pollControls()
	}

	dt := time.Second / time.Duration(ebiten.TPS())
	e.Frame(dt)
	for _, ov := range e.overlays {
		ov.Update(dt.Seconds())
	}
	return nil
}

// Draw implements ebiten.Game. It clears the screen, issues the particle draw
// call and draws overlays on top.
func (e *Engine) Draw(screen *ebiten.Image) {
	if e.clearColor.A > 0 {
		screen.Fill(e.clearColor.toRGBA())
	}

	stats := debugStats{evalTime: e.evalTime, particles: e.field.Len()}
	model := modelMatrix(e.state.RotationX, e.state.RotationY)
	e.renderer.draw(screen, e.field, e.camera, model, e.color, &stats)

	for _, ov := range e.overlays {
		ov.Draw(screen)
	}
	e.flushScreenshots(screen)
	e.debugLog(stats)
}

// Layout implements ebiten.Game.
func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := e.LayoutF(float64(outsideWidth), float64(outsideHeight))
	return int(w), int(h)
}

// maxDeviceScale caps the rendering resolution on high-density displays.
const maxDeviceScale = 2.0

// LayoutF implements ebiten.LayoutFer. The surface is sized in device pixels
// with the scale factor capped at 2, and the camera is resized to match.
func (e *Engine) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	scale := min(ebiten.Monitor().DeviceScaleFactor(), maxDeviceScale)
	if scale <= 0 {
		scale = 1
	}
	w, h := outsideWidth*scale, outsideHeight*scale
	if w != e.camera.Viewport.Width || h != e.camera.Viewport.Height {
		e.Resize(w, h)
	}
	return w, h
}

// RequestCaption asks the captioner for a caption of the current chapter.
// The pending text is shown at once; the final text arrives on a later frame.
// It returns nil when the display cannot show captions or no captioner is
// configured (the unavailable fallback is scheduled instead).
func (e *Engine) RequestCaption() *CaptionTask {
	cd, ok := e.display.(CaptionDisplay)
	if !ok {
		return nil
	}
	cd.ShowCaption(CaptionPending)

	if e.captioner == nil {
		e.clock.after(DefaultUnavailableDelay, func() {
			cd.ShowCaption(CaptionUnavailable)
		})
		return nil
	}

	ch := e.controller.Chapter()
	return startCaption(e.ctx, e.captioner, ch.Title, BuildPrompt(e.prompt, ch.Title), e.captions)
}

// drainCaptions hands finished captions to the display without blocking.
func (e *Engine) drainCaptions() {
	cd, _ := e.display.(CaptionDisplay)
	for {
		select {
		case text := <-e.captions:
			if cd != nil {
				cd.ShowCaption(text)
			}
		default:
			return
		}
	}
}

// RunLoop drives e from ticks until ctx is done or ticks is closed. Each
// iteration has a single suspension point: waiting for the next tick. After
// the frame, draw (if non-nil) is called to submit it.
func RunLoop(ctx context.Context, e *Engine, ticks <-chan time.Time, dt time.Duration, draw func(*Engine)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
		}
		e.Frame(dt)
		if draw != nil {
			draw(e)
		}
	}
}

// RunConfig holds optional parameters for Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Debug enables periodic timing stats on stderr.
	Debug bool
	// ShowFPS adds an FPS/TPS overlay in the top-left corner.
	ShowFPS bool
}

// Run opens a window and runs e until the window is closed or the engine's
// context is done. It calls Start before the first frame.
func Run(e *Engine, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	e.SetDebugMode(cfg.Debug)
	if cfg.ShowFPS {
		e.AddOverlay(NewFPSOverlay())
	}
	e.Start()
	return ebiten.RunGame(e)
}
