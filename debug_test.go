package lumen

import (
	"bytes"
	"strings"
	"testing"
)

func TestWarnf(t *testing.T) {
	var buf bytes.Buffer
	logOutput = &buf
	defer func() { logOutput = discardLog }()

	warnf("caption request failed: %v", "timeout")
	if got := buf.String(); got != "[lumen] warning: caption request failed: timeout\n" {
		t.Errorf("warnf wrote %q", got)
	}
}

func TestDebugLogInterval(t *testing.T) {
	var buf bytes.Buffer
	logOutput = &buf
	defer func() { logOutput = discardLog }()

	e := newTestEngine(nil)
	e.SetDebugMode(true)
	stats := debugStats{particles: 64, visible: 10}

	e.frames = debugLogInterval - 1
	e.debugLog(stats)
	if buf.Len() != 0 {
		t.Fatalf("logged off-interval: %q", buf.String())
	}

	e.frames = debugLogInterval
	e.debugLog(stats)
	out := buf.String()
	if !strings.Contains(out, "mode=drift") || !strings.Contains(out, "particles: 64 | visible: 10") {
		t.Errorf("debug output = %q", out)
	}
}

func TestDebugLogDisabled(t *testing.T) {
	var buf bytes.Buffer
	logOutput = &buf
	defer func() { logOutput = discardLog }()

	e := newTestEngine(nil)
	e.frames = debugLogInterval
	e.debugLog(debugStats{})
	if buf.Len() != 0 {
		t.Errorf("logged with debug off: %q", buf.String())
	}
}

func TestLogDisplay(t *testing.T) {
	var buf bytes.Buffer
	d := LogDisplay{W: &buf}
	d.Ready()
	d.Hide()
	d.Present(ChapterView{ID: "YEAR 02", Title: "相知", ColorHex: "#60a5fa", Mode: ModeVortex})
	d.Show()
	d.ShowCaption(CaptionFailed)

	want := "[loader] ready\n" +
		"[card] hide\n" +
		"[card] YEAR 02 相知 (vortex, #60a5fa)\n" +
		"[card] show\n" +
		"[caption] " + CaptionFailed + "\n"
	if got := buf.String(); got != want {
		t.Errorf("LogDisplay wrote\n%s\nwant\n%s", got, want)
	}
}
