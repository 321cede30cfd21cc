package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"featherwing/internal/animate"
	"featherwing/internal/batch"
	"featherwing/internal/config"
	"featherwing/internal/mesh"
	"featherwing/internal/raster"
	"featherwing/internal/texture"
)

var (
	logger *zap.Logger

	verbose    bool
	configFile string
	flags      config.Flags
)

var rootCmd = &cobra.Command{
	Use:   "render",
	Short: "Render an animated feather wing to WebP",
	Long: `Generates a layered wing of feathers from the configured parameters,
animates its flap and wind sway, and writes the frames as an animated
WebP (or one WebP per frame plus manifest.json with --per-frame).`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logCfg := zap.NewProductionConfig()
		if verbose {
			logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = logCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runRender,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&configFile, "config", "c", "", "Path to a JSON, YAML or TOML config file")
	f.StringVar(&flags.FeatherOBJ, "feather", "", "Feather mesh (.obj); default: built-in feather")
	f.StringVar(&flags.Background, "background", "", "Sky background image")
	f.StringVarP(&flags.Output, "output", "o", "", "Output .webp file, or directory with --per-frame")
	f.IntVar(&flags.Width, "width", 0, "Frame width in pixels (default: 480)")
	f.IntVar(&flags.Height, "height", 0, "Frame height in pixels (default: 360)")
	f.IntVarP(&flags.Frames, "frames", "n", 0, "Number of frames (default: 90)")
	f.IntVarP(&flags.Workers, "workers", "w", 0, "Number of worker goroutines (default: NumCPU)")
	f.Uint64Var(&flags.Seed, "seed", 0, "Wind random seed (default: 1)")
	f.Float64Var(&flags.FOV, "fov", 0, "Vertical field of view in degrees (default: 75)")
	f.BoolVar(&flags.PerFrame, "per-frame", false, "Write one WebP per frame plus manifest.json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	var cfg config.Config
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}
	}
	cfg.Resolve(flags)

	params, err := cfg.Params()
	if err != nil {
		return err
	}
	tl, err := cfg.BuildTimeline()
	if err != nil {
		return err
	}

	shape := mesh.Feather()
	if cfg.FeatherOBJ != "" {
		shape, err = mesh.LoadOBJ(cfg.FeatherOBJ)
		if err != nil {
			return err
		}
	}

	var textures texture.Resolver = texture.NewCache()
	batchCfg := batch.Config{
		Output:      cfg.Output,
		PerFrame:    cfg.PerFrame,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
		FrameMs:     cfg.FrameMs,
		LoopCount:   cfg.LoopCount,
		Shape:       shape,
		Camera:      raster.DefaultCamera(),
		Light:       raster.DefaultLightConfig(),
		Transparent: cfg.Transparent,
	}
	batchCfg.Camera.FOV = cfg.FOV
	if cfg.Background != "" {
		if batchCfg.Background, err = textures.Resolve(cfg.Background); err != nil {
			return err
		}
	}
	if cfg.FeatherTexture != "" {
		if batchCfg.FeatherTexture, err = textures.Resolve(cfg.FeatherTexture); err != nil {
			return err
		}
	}

	// Print summary
	fmt.Println("Feather wing renderer → WebP")
	fmt.Printf("Feather: %s (%d tris)\n", shape.Name, len(shape.Tris))
	fmt.Printf("Frames: %d @ %.1fms, %dx%d (x%d), Workers: %d\n",
		cfg.Frames, cfg.FrameMs, cfg.Width, cfg.Height, cfg.Supersample, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.Output)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	frames, err := batch.Simulate(batch.Job{
		Params:   params,
		Shape:    shape,
		Animator: animate.New(cfg.Seed),
		Timeline: tl,
		Frames:   cfg.Frames,
		StartMs:  cfg.StartMs,
		FrameMs:  cfg.FrameMs,
	})
	if err != nil {
		return err
	}
	logger.Debug("simulated",
		zap.Int("frames", len(frames)),
		zap.Int("timeline_edits", tl.Len()),
		zap.Duration("elapsed", time.Since(start)))

	results, err := batch.Run(ctx, batchCfg, frames, logger)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	var failed []batch.Result
	for _, r := range results {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	fmt.Printf("Rendered: %d/%d\n", len(results)-len(failed), len(results))

	if len(failed) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failed))
		for _, e := range failed[:min(len(failed), 20)] {
			fmt.Printf("  frame %d: %s\n", e.Frame, e.Error)
		}
		return fmt.Errorf("%d frames failed", len(failed))
	}
	return nil
}
