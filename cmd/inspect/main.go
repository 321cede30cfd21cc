package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"featherwing/internal/config"
	"featherwing/internal/mesh"
	"featherwing/internal/wing"
)

var (
	logger *zap.Logger

	verbose    bool
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "inspect [feather.obj]",
	Short: "Print feather mesh statistics and the wing layer table",
	Long: `Loads the feather mesh (or the built-in one) and prints its size, then
generates the wing for the configured parameters and lists every layer:
spacing, nominal count, scale, color and emitted feathers.`,
	Args:          cobra.MaximumNArgs(1),
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
	RunE: runInspect,
}

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Config file with a wing section")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	var cfg config.Config
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}
	}
	var flags config.Flags
	if len(args) == 1 {
		flags.FeatherOBJ = args[0]
	}
	cfg.Resolve(flags)

	shape := mesh.Feather()
	if cfg.FeatherOBJ != "" {
		var err error
		shape, err = mesh.LoadOBJ(cfg.FeatherOBJ)
		if err != nil {
			return err
		}
	}
	logger.Debug("shape loaded", zap.String("name", shape.Name), zap.String("path", cfg.FeatherOBJ))

	lo, hi := shape.Bounds()
	size := hi.Sub(lo)
	fmt.Printf("Feather %q: verts=%d, tris=%d, uvs=%v\n", shape.Name, len(shape.Verts), len(shape.Tris), shape.HasUVs())
	fmt.Printf("  BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n", lo.X(), hi.X(), lo.Y(), hi.Y(), lo.Z(), hi.Z())
	fmt.Printf("  Size: %.3f x %.3f x %.3f\n", size.X(), size.Y(), size.Z())

	params, err := cfg.Params()
	if err != nil {
		return err
	}
	model := wing.Generate(params)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Wing: curvature=%.2f distribution=%.2f count=%.0f size=%.2f color=%s orientation=%.2f\n",
		params.Curvature, params.Distribution, params.Count, params.Size, params.Color.Hex(), params.Orientation)
	fmt.Printf("Layers: %d, Feathers: %d\n", len(model.Layers), model.Len())
	fmt.Printf("  %5s %8s %8s %8s %8s %8s %8s\n", "layer", "spacing", "count", "length", "scale", "color", "emitted")
	for _, l := range model.Layers {
		fmt.Printf("  %5d %8.3f %8.2f %8.3f %8.3f %8s %8d\n",
			l.Index, l.Distribution, l.Count, l.Length, l.Scale, l.Color.Clamped().Hex(), l.Feathers)
	}
	return nil
}
