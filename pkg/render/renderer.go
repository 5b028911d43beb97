package render

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/harmonica"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/prism/pkg/math3d"
)

// PixelWriter receives finished pixels. Calls for different pixels may run
// concurrently.
type PixelWriter interface {
	SetPixel(col, row int, c math3d.Color)
}

// Options tunes a Renderer beyond what the camera describes.
type Options struct {
	// Seed selects the lens samples used for depth of field.
	Seed uint64
	// Logger receives progress lines. Nil means DiscardLogger.
	Logger Logger
}

// Renderer drives a camera and a tracer over every pixel of an image.
// Render must not be called concurrently on the same Renderer.
type Renderer struct {
	camera *Camera
	tracer *Tracer
	width  int
	height int
	opts   Options

	// done counts pixels finished by the current or last Render.
	done atomic.Int64
}

// NewRenderer creates a renderer for a width by height image.
func NewRenderer(camera *Camera, tracer *Tracer, width, height int, opts Options) (*Renderer, error) {
	switch {
	case camera == nil:
		return nil, fmt.Errorf("new renderer: camera: %w", ErrMissingField)
	case tracer == nil:
		return nil, fmt.Errorf("new renderer: tracer: %w", ErrMissingField)
	case width <= 0 || height <= 0:
		return nil, fmt.Errorf("new renderer: image size %dx%d: %w", width, height, ErrInvalidConfig)
	}
	if opts.Logger == nil {
		opts.Logger = DiscardLogger
	}
	return &Renderer{camera: camera, tracer: tracer, width: width, height: height, opts: opts}, nil
}

// Workers returns the number of concurrent row workers, 0 for sequential.
func (r *Renderer) Workers() int {
	if r.camera.cfg.Threads == AutoThreads {
		return max(1, runtime.NumCPU()-2)
	}
	return r.camera.cfg.Threads
}

// Pixel computes the color of pixel (col, row), averaging lens samples when
// depth of field is enabled.
func (r *Renderer) Pixel(col, row int) math3d.Color {
	primary := r.camera.ConstructRay(r.width, r.height, col, row)
	if !r.camera.blurs() {
		return r.tracer.Trace(primary)
	}
	samples := r.camera.Samples()

	idx := uint64(row*r.width + col)
	rng := rand.New(rand.NewPCG(r.opts.Seed, idx))
	var sum math3d.Color
	for range samples {
		sum = sum.Add(r.tracer.Trace(r.camera.ApertureRay(primary, rng)))
	}
	return sum.Scale(1 / float64(samples))
}

// Progress reports how many of the image's pixels are finished. It may be
// called while Render runs.
func (r *Renderer) Progress() (done, total int) {
	return int(r.done.Load()), r.width * r.height
}

func (r *Renderer) renderRow(row int, w PixelWriter) {
	for col := range r.width {
		w.SetPixel(col, row, r.Pixel(col, row))
		r.done.Add(1)
	}
}

// Render traces every pixel into w. A cancelled context stops new rows from
// starting; rows already in flight finish before Render returns ctx.Err().
func (r *Renderer) Render(ctx context.Context, w PixelWriter) error {
	start := time.Now()
	r.done.Store(0)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	if interval := r.camera.cfg.ProgressInterval; interval > 0 {
		wg.Go(func() { r.report(interval, stop) })
	}

	workers := r.Workers()
	if workers == 0 {
		for row := range r.height {
			if ctx.Err() != nil {
				break
			}
			r.renderRow(row, w)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(workers)
		for row := range r.height {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				r.renderRow(row, w)
				return nil
			})
		}
		_ = g.Wait()
	}

	close(stop)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		r.opts.Logger.Printf("render: cancelled after %d of %d pixels", r.done.Load(), r.width*r.height)
		return err
	}
	r.opts.Logger.Printf("render: %dx%d done in %s", r.width, r.height, time.Since(start).Round(time.Millisecond))
	return nil
}

// report logs completion at every interval. The pixel rate is smoothed with a
// critically damped spring so the ETA does not jump between rows.
func (r *Renderer) report(interval time.Duration, stop <-chan struct{}) {
	total := int64(r.width * r.height)
	spring := harmonica.NewSpring(interval.Seconds(), 4.0, 1.0)
	var rate, velocity float64
	var last int64

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			current := r.done.Load()
			instant := float64(current-last) / interval.Seconds()
			last = current
			rate, velocity = spring.Update(rate, velocity, instant)

			eta := "?"
			if rate > 0 {
				eta = time.Duration(float64(total-current) / rate * float64(time.Second)).Round(time.Second).String()
			}
			r.opts.Logger.Printf("render: %5.1f%% %8.0f px/s eta %s",
				100*float64(current)/float64(total), rate, eta)
		}
	}
}
