package lumen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Captioner generates a short caption for a chapter. Implementations may
// block on the network; they are always called off the frame loop.
type Captioner interface {
	Caption(ctx context.Context, title, prompt string) (string, error)
}

// CaptionerFunc adapts a plain function to the Captioner interface.
type CaptionerFunc func(ctx context.Context, title, prompt string) (string, error)

// Caption implements Captioner.
func (f CaptionerFunc) Caption(ctx context.Context, title, prompt string) (string, error) {
	return f(ctx, title, prompt)
}

const (
	// CaptionPending is shown while a caption request is in flight.
	CaptionPending = "正在打捞时空的碎片..."
	// CaptionUnavailable replaces the pending text when no captioner is
	// configured.
	CaptionUnavailable = "“ 所有的错过，都是为了在更高维度重逢。 ”"
	// CaptionFailed is shown when the caption request returns an error.
	CaptionFailed = "“ 万水千山，愿你岁岁平安。 ”"

	// DefaultPromptTemplate receives the chapter title through %s.
	DefaultPromptTemplate = "你是一个深情的观察者。针对《%s》中表达的四年相望，写一句极简、充满宿命感的话，12字内，不要引号。"

	// DefaultUnavailableDelay is how long the pending text stays up before
	// CaptionUnavailable is shown.
	DefaultUnavailableDelay = 1200 * time.Millisecond
)

// ErrEmptyCaption is returned by FormatCaption when the generated text is
// blank after trimming.
var ErrEmptyCaption = errors.New("empty caption")

// FormatCaption trims a generated caption and wraps it in the quotation
// decoration used on the display.
func FormatCaption(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrEmptyCaption
	}
	return "“ " + s + " ”", nil
}

// BuildPrompt fills template with the chapter title. An empty template uses
// DefaultPromptTemplate.
func BuildPrompt(template, title string) string {
	if template == "" {
		template = DefaultPromptTemplate
	}
	return fmt.Sprintf(template, title)
}

// CaptionTask is a fire-and-forget caption request. Its only effect is the
// text it eventually hands to the display.
type CaptionTask struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Cancel abandons the request. The display keeps whatever it showed last.
func (t *CaptionTask) Cancel() {
	t.cancel()
}

// Done is closed once the request has finished, successfully or not.
func (t *CaptionTask) Done() <-chan struct{} {
	return t.done
}

// resolveCaption runs captioner and maps every outcome to display text. It never
// returns an error; failures are logged as soft warnings and replaced with
// CaptionFailed.
func resolveCaption(ctx context.Context, captioner Captioner, title, prompt string) string {
	raw, err := captioner.Caption(ctx, title, prompt)
	if err != nil {
		warnf("caption request failed: %v", err)
		return CaptionFailed
	}
	text, err := FormatCaption(raw)
	if err != nil {
		warnf("caption request failed: %v", err)
		return CaptionFailed
	}
	return text
}

// startCaption launches captioner in the background and sends the resolved text
// on out. A send that would block is dropped: only the newest caption
// matters and out is drained every frame.
func startCaption(parent context.Context, captioner Captioner, title, prompt string, out chan<- string) *CaptionTask {
	ctx, cancel := context.WithCancel(parent)
	task := &CaptionTask{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(task.done)
		defer cancel()
		text := resolveCaption(ctx, captioner, title, prompt)
		if ctx.Err() != nil {
			return
		}
		select {
		case out <- text:
		default:
		}
	}()
	return task
}
