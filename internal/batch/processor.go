// Package batch turns a simulated wing animation into WebP output: frames
// are rasterized on a worker pool and written as one animated file or as a
// directory of stills with a manifest.
package batch

import (
	"context"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"go.uber.org/zap"

	"featherwing/internal/mesh"
	"featherwing/internal/postprocess"
	"featherwing/internal/raster"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Output   string // animated .webp path, or a directory when PerFrame is set
	PerFrame bool

	Width       int
	Height      int
	Supersample int
	Workers     int
	FrameMs     float64
	LoopCount   int

	Shape          *mesh.Mesh
	Camera         raster.Camera
	Light          raster.LightConfig
	Background     *image.NRGBA // any size; cropped to fill the frame
	FeatherTexture *image.NRGBA
	Transparent    bool
}

// Result holds the outcome of processing one frame.
type Result struct {
	Frame   int
	Success bool
	Error   string
}

// Run rasterizes frames using a worker pool and writes the output.
// When ctx is cancelled workers stop picking up frames and Run returns
// ctx.Err() without writing anything.
func Run(ctx context.Context, cfg Config, frames []Frame, logger *zap.Logger) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := max(cfg.Workers, 1)
	ss := max(cfg.Supersample, 1)

	opts := raster.Options{
		Width:          cfg.Width * ss,
		Height:         cfg.Height * ss,
		Camera:         cfg.Camera,
		Light:          cfg.Light,
		Transparent:    cfg.Transparent,
		FeatherTexture: cfg.FeatherTexture,
	}
	if cfg.Background != nil {
		opts.Background = postprocess.Cover(cfg.Background, opts.Width, opts.Height)
	}

	if cfg.PerFrame {
		if err := os.MkdirAll(cfg.Output, 0755); err != nil {
			return nil, fmt.Errorf("batch: create %s: %w", cfg.Output, err)
		}
	}

	total := len(frames)
	images := make([]*image.NRGBA, total)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	var reporter sync.WaitGroup
	reporter.Add(1)
	go func() {
		defer reporter.Done()
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					logger.Info("progress",
						zap.Int64("done", p),
						zap.Int("total", total),
						zap.Float64("frames_per_sec", float64(p)/elapsed))
				}
			}
		}
	}()

	// Worker pool
	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range frameChan {
				if ctx.Err() != nil {
					continue
				}
				images[idx], results[idx] = processFrame(cfg, &opts, &frames[idx])
				if cfg.PerFrame && results[idx].Success {
					results[idx] = writeFrame(cfg.Output, images[idx], results[idx])
					images[idx] = nil
				}
				if !results[idx].Success {
					logger.Warn("frame failed",
						zap.Int("frame", results[idx].Frame),
						zap.String("error", results[idx].Error))
				}
				processed.Add(1)
			}
		}()
	}

	// Send work
send:
	for i := range frames {
		select {
		case <-ctx.Done():
			break send
		case frameChan <- i:
		}
	}
	close(frameChan)

	wg.Wait()
	close(done)
	reporter.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}

	logger.Debug("rasterized",
		zap.Int("frames", total),
		zap.Duration("elapsed", time.Since(start)))

	if cfg.PerFrame {
		if err := WriteManifest(filepath.Join(cfg.Output, "manifest.json"), frames, results); err != nil {
			return results, fmt.Errorf("batch: write manifest: %w", err)
		}
		return results, nil
	}
	if err := writeAnimation(cfg, images); err != nil {
		return results, err
	}
	return results, nil
}

func processFrame(cfg Config, opts *raster.Options, f *Frame) (img *image.NRGBA, res Result) {
	res.Frame = f.Snapshot.Frame
	defer func() {
		if r := recover(); r != nil {
			img = nil
			res.Success = false
			res.Error = fmt.Sprintf("render: %v", r)
		}
	}()

	img = raster.RenderWing(&f.Snapshot, cfg.Shape, opts)

	// Post-processing: supersample downsample
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.Width, cfg.Height)
	}
	res.Success = true
	return img, res
}

func writeFrame(dir string, img *image.NRGBA, res Result) Result {
	outPath := filepath.Join(dir, frameName(res.Frame))
	f, err := os.Create(outPath)
	if err != nil {
		res.Success = false
		res.Error = err.Error()
		return res
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		res.Success = false
		res.Error = fmt.Sprintf("WebP encode: %v", err)
	}
	return res
}

// writeAnimation encodes every successfully rendered frame into one
// looping WebP.
func writeAnimation(cfg Config, images []*image.NRGBA) error {
	duration := uint(max(math.Round(cfg.FrameMs), 1))
	ani := nativewebp.Animation{
		LoopCount: uint16(min(max(cfg.LoopCount, 0), math.MaxUint16)),
	}
	for _, img := range images {
		if img == nil {
			continue
		}
		ani.Images = append(ani.Images, img)
		ani.Durations = append(ani.Durations, duration)
		ani.Disposals = append(ani.Disposals, 0)
	}
	if len(ani.Images) == 0 {
		return fmt.Errorf("batch: no frames rendered")
	}

	if dir := filepath.Dir(cfg.Output); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("batch: create %s: %w", dir, err)
		}
	}
	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("batch: create %s: %w", cfg.Output, err)
	}
	if err := nativewebp.EncodeAll(f, &ani, nil); err != nil {
		f.Close()
		return fmt.Errorf("batch: encode %s: %w", cfg.Output, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("batch: write %s: %w", cfg.Output, err)
	}
	return nil
}
