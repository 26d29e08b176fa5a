package lumen

// InjectPointer queues a synthetic pointer move to normalized device
// coordinates. One queued move is consumed per Update, in place of real
// mouse and touch input for that frame.
func (e *Engine) InjectPointer(x, y float64) {
	e.injectQueue = append(e.injectQueue, Vec2{X: x, Y: y})
}

// InjectScreenPointer queues a synthetic pointer move given in screen pixels
// of the current viewport.
func (e *Engine) InjectScreenPointer(sx, sy float64) {
	vp := e.camera.Viewport
	e.injectQueue = append(e.injectQueue, ScreenToNDC(sx-vp.X, sy-vp.Y, vp.Width, vp.Height))
}

// InjectSweep queues a straight pointer sweep from (fromX, fromY) to
// (toX, toY) in NDC spread across frames moves, endpoints included.
// Minimum frames is 2.
func (e *Engine) InjectSweep(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		e.InjectPointer(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// processInjectedInput pops one queued move into the raw pointer.
// Returns true if a move was consumed (real input should be skipped).
func (e *Engine) processInjectedInput() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	p := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	e.pointer.SetRaw(p.X, p.Y)
	return true
}
