// Headless drives the engine without a window: a ticker stands in for the
// display refresh, chapter transitions are logged, and the pointer sweeps
// across the field so attract mode has something to follow. Useful for
// profiling field evaluation with different worker counts.
package main

import (
	"context"
	"flag"
	"log"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/phanxgames/lumen"
)

func main() {
	count := flag.Int("particles", lumen.DefaultParticleCount, "particle count")
	workers := flag.Int("workers", 4, "goroutines used to evaluate the field")
	duration := flag.Duration("duration", 10*time.Second, "how long to run")
	every := flag.Duration("next", 2*time.Second, "time between chapter changes")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *duration)
	defer cancel()

	engine := lumen.NewEngine(lumen.EngineConfig{
		Field:   lumen.FieldConfig{Count: *count, Seed: 7, Workers: *workers},
		Display: lumen.LogDisplay{W: os.Stdout},
	})
	engine.SetContext(ctx)
	engine.Start()

	const fps = 60
	dt := time.Second / fps
	ticker := time.NewTicker(dt)
	defer ticker.Stop()

	var frames int
	var sinceNext time.Duration
	start := time.Now()
	err := lumen.RunLoop(ctx, engine, ticker.C, dt, func(e *lumen.Engine) {
		frames++
		t := e.State().ElapsedTime
		e.Pointer().SetRaw(math.Sin(t*0.7), math.Cos(t*0.4))

		sinceNext += dt
		if sinceNext >= *every {
			sinceNext = 0
			e.Next()
		}
	})
	if err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}

	elapsed := time.Since(start)
	s := engine.State()
	log.Printf("frames=%d wall=%v fps=%.1f t=%.3f chapter=%d mode=%s",
		frames, elapsed.Round(time.Millisecond), float64(frames)/elapsed.Seconds(),
		s.ElapsedTime, s.ChapterIndex, engine.Mode())
}
