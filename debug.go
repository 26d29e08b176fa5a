package lumen

import (
	"fmt"
	"io"
	"os"
	"time"
)

// logOutput receives soft warnings and debug stats. Tests swap it out.
var logOutput io.Writer = os.Stderr

// warnf prints a non-fatal warning. Nothing that goes through warnf ever
// stops the frame loop.
func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(logOutput, "[lumen] warning: "+format+"\n", args...)
}

// debugStats holds per-frame timing metrics.
// Only populated when Engine.debug is true.
type debugStats struct {
	evalTime    time.Duration
	projectTime time.Duration
	submitTime  time.Duration
	particles   int
	visible     int
}

// debugLogInterval is the number of frames between debug stat lines.
const debugLogInterval = 120

// debugLog prints timing stats to the log output every debugLogInterval frames.
func (e *Engine) debugLog(stats debugStats) {
	if !e.debug || e.frames%debugLogInterval != 0 {
		return
	}
	_, _ = fmt.Fprintf(logOutput,
		"[lumen] frame %d | t=%.3f | mode=%s | eval: %v | project: %v | submit: %v\n",
		e.frames, e.state.ElapsedTime, e.mode, stats.evalTime, stats.projectTime, stats.submitTime)
	_, _ = fmt.Fprintf(logOutput,
		"[lumen] particles: %d | visible: %d | pending swaps: %d\n",
		stats.particles, stats.visible, e.controller.Pending())
}
