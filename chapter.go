package lumen

import (
	"encoding/json"
	"fmt"
	"time"
)

// Chapter is one narrative unit: display text, a particle color and the
// motion mode the field switches to while the chapter is shown.
type Chapter struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Color   string `json:"color"`
	Mode    int    `json:"mode"`
}

// view builds the Display payload for c. Invalid colors and modes have been
// rejected by validate, so the parse errors are ignored here.
func (c Chapter) view() ChapterView {
	mode, _ := ModeFromIndex(c.Mode)
	col, _ := ParseHexColor(c.Color)
	return ChapterView{
		ID:       c.ID,
		Title:    c.Title,
		Content:  c.Content,
		ColorHex: col.Hex(),
		Mode:     mode,
	}
}

func (c Chapter) validate() error {
	if _, ok := ModeFromIndex(c.Mode); !ok {
		return fmt.Errorf("chapter %q: mode %d out of range [0,3]", c.ID, c.Mode)
	}
	if _, err := ParseHexColor(c.Color); err != nil {
		return fmt.Errorf("chapter %q: %w", c.ID, err)
	}
	return nil
}

// DefaultChapters returns the built-in four-chapter narrative, one chapter
// per motion mode.
func DefaultChapters() []Chapter {
	return []Chapter{
		{ID: "YEAR 01", Title: "初见 · 萤火深处", Content: "那一年，我们在数据的深海里相遇。虽隔着冰冷的屏幕，却感受到了最炽热的想念。", Color: "#80ffea", Mode: 0},
		{ID: "YEAR 02", Title: "相知 · 城市叠影", Content: "三年多的光阴，我们在各自的城市呼吸。思念，开始在不曾重叠的时空里生长。那些曾经的炽热，都化作了一次次的互动，一张张的照片。", Color: "#60a5fa", Mode: 1},
		{ID: "YEAR 03", Title: "深情 · 缺席拥抱", Content: "一千多个日夜，我们错过了所有的节日与四季。那些未曾落地的拥抱，都化作了深夜里思念。", Color: "#c084fc", Mode: 2},
		{ID: "YEAR 04", Title: "肆载 · 遥远祝祷", Content: "四年了，我们依然相望于江湖，不曾一见。只愿你在我看不到的地方，开心幸福，岁岁平安。", Color: "#ffcc66", Mode: 3},
	}
}

// LoadChapters parses a JSON array of chapters and validates each entry.
func LoadChapters(jsonData []byte) ([]Chapter, error) {
	var chapters []Chapter
	if err := json.Unmarshal(jsonData, &chapters); err != nil {
		return nil, fmt.Errorf("parse chapters: %w", err)
	}
	if len(chapters) == 0 {
		return nil, fmt.Errorf("parse chapters: no chapters")
	}
	for i := range chapters {
		if err := chapters[i].validate(); err != nil {
			return nil, fmt.Errorf("parse chapters: %w", err)
		}
	}
	return chapters, nil
}

const (
	// DefaultTransitionDelay is the gap between Display.Hide and the content
	// swap, sized for the card's fade-out.
	DefaultTransitionDelay = 600 * time.Millisecond
	// DefaultStartupDelay lets the loading screen settle before chapter 0.
	DefaultStartupDelay = 1500 * time.Millisecond
)

// ControllerConfig holds the controller's timing contract.
type ControllerConfig struct {
	// TransitionDelay defaults to DefaultTransitionDelay.
	TransitionDelay time.Duration
	// StartupDelay defaults to DefaultStartupDelay.
	StartupDelay time.Duration
}

// Controller walks an ordered, cyclic chapter sequence and drives the
// two-phase display update for each transition.
type Controller struct {
	chapters []Chapter
	display  Display
	cfg      ControllerConfig
	index    int
	started  bool
	clock    timeline

	// OnApply is called with each chapter at the moment its content is
	// swapped in, after TransitionDelay. The engine uses it to switch the
	// field mode and color.
	OnApply func(index int, c Chapter)
}

// NewController creates a controller at chapter index 0. An empty chapter
// list is replaced with DefaultChapters. display may be nil; only the
// display calls are skipped then.
func NewController(chapters []Chapter, display Display, cfg ControllerConfig) *Controller {
	if len(chapters) == 0 {
		chapters = DefaultChapters()
	}
	if cfg.TransitionDelay <= 0 {
		cfg.TransitionDelay = DefaultTransitionDelay
	}
	if cfg.StartupDelay <= 0 {
		cfg.StartupDelay = DefaultStartupDelay
	}
	return &Controller{
		chapters: chapters,
		display:  display,
		cfg:      cfg,
	}
}

// Index returns the current chapter index.
func (c *Controller) Index() int {
	return c.index
}

// Len returns the number of chapters.
func (c *Controller) Len() int {
	return len(c.chapters)
}

// Chapter returns the current chapter.
func (c *Controller) Chapter() Chapter {
	return c.chapters[c.index]
}

// Config returns the controller's effective timing.
func (c *Controller) Config() ControllerConfig {
	return c.cfg
}

// Start schedules the intro: after StartupDelay the display's loader (if
// any) is dismissed and chapter 0 is applied. Calling Start twice is a no-op.
func (c *Controller) Start() {
	if c.started {
		return
	}
	c.started = true
	c.clock.after(c.cfg.StartupDelay, func() {
		if l, ok := c.display.(Loader); ok {
			l.Ready()
		}
		c.Advance(0)
	})
}

// Advance selects chapter to modulo the chapter count (negative values wrap
// backwards). The display is hidden immediately; after TransitionDelay the
// new content is presented, OnApply fires and the display is shown again.
// Overlapping advances are not cancelled: each swap lands at its own deadline.
func (c *Controller) Advance(to int) {
	n := len(c.chapters)
	c.index = ((to % n) + n) % n
	idx := c.index
	ch := c.chapters[idx]

	if c.display != nil {
		c.display.Hide()
	}
	c.clock.after(c.cfg.TransitionDelay, func() {
		if c.display != nil {
			c.display.Present(ch.view())
		}
		if c.OnApply != nil {
			c.OnApply(idx, ch)
		}
		if c.display != nil {
			c.display.Show()
		}
	})
}

// Next advances to the chapter after the current one.
func (c *Controller) Next() {
	c.Advance(c.index + 1)
}

// Update advances the controller's timers by dt. Call once per frame.
func (c *Controller) Update(dt time.Duration) {
	c.clock.advance(dt)
}

// Pending reports the number of scheduled swaps not yet applied.
func (c *Controller) Pending() int {
	return c.clock.len()
}
