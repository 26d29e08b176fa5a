package lumen

// EventSink is the interface for optional ECS integration.
// When set on an Engine, chapter changes are forwarded to it.
type EventSink interface {
	EmitChapter(event ChapterEvent)
}

// ChapterEvent is emitted when a chapter's content and mode are applied.
type ChapterEvent struct {
	Index    int
	ID       string
	Title    string
	Mode     Mode
	PrevMode Mode
	Color    Color
	// ElapsedTime is the simulation clock at the moment of the switch.
	ElapsedTime float64
}
