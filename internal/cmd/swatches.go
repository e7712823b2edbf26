package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/colorblend/assets"
	"github.com/MeKo-Tech/colorblend/internal/archive"
	"github.com/MeKo-Tech/colorblend/internal/blend"
	"github.com/MeKo-Tech/colorblend/internal/gamma"
	"github.com/MeKo-Tech/colorblend/internal/imageio"
	"github.com/MeKo-Tech/colorblend/internal/sheet"
	"github.com/MeKo-Tech/colorblend/internal/worker"
)

var swatchesCmd = &cobra.Command{
	Use:   "swatches",
	Short: "Render one preview swatch per mode",
	Long: `Render a swatch image for every compositing operator and blend mode.

Operators are drawn as a source disc over a destination square; blend modes
mix a gradient into striped backdrop colors. Output goes to a folder of
<mode>.png files or into a single swatch archive.`,
	RunE: runSwatches,
}

func init() {
	rootCmd.AddCommand(swatchesCmd)

	swatchesCmd.Flags().String("output-dir", "./swatches", "Output directory for the folder format")
	swatchesCmd.Flags().String("format", "folder", "Output format: folder or archive")
	swatchesCmd.Flags().String("output-file", "", "Archive path for the archive format (e.g., swatches.db)")
	swatchesCmd.Flags().StringSlice("modes", nil, "Only render these modes (default: all)")
	swatchesCmd.Flags().Int("size", sheet.DefaultSize, "Swatch size in pixels (square)")
	swatchesCmd.Flags().String("gamma", "linear", "Blend in linear light: linear, fast, 2.2 or srgb")
	swatchesCmd.Flags().String("palette", "", "Palette JSON file (default: built-in palette)")
	swatchesCmd.Flags().IntP("workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	swatchesCmd.Flags().Bool("progress", true, "Show progress bar")
	swatchesCmd.Flags().Bool("force", false, "Overwrite swatches that already exist")
	swatchesCmd.Flags().Bool("allow-failures", false, "Exit successfully even if some swatches fail")
	swatchesCmd.Flags().String("png-compression", "default", "PNG compression (default, speed, best, none)")

	bindFlags(swatchesCmd, []flagBinding{
		{"swatches.output_dir", "output-dir"},
		{"swatches.format", "format"},
		{"swatches.output_file", "output-file"},
		{"swatches.modes", "modes"},
		{"swatches.size", "size"},
		{"swatches.gamma", "gamma"},
		{"swatches.palette", "palette"},
		{"swatches.workers", "workers"},
		{"swatches.progress", "progress"},
		{"swatches.force", "force"},
		{"swatches.allow_failures", "allow-failures"},
		{"swatches.png_compression", "png-compression"},
	})
}

func runSwatches(cmd *cobra.Command, args []string) error {
	outputDir := viper.GetString("swatches.output_dir")
	format := viper.GetString("swatches.format")
	outputFile := viper.GetString("swatches.output_file")
	size := viper.GetInt("swatches.size")
	workers := viper.GetInt("swatches.workers")
	showProgress := viper.GetBool("swatches.progress")
	force := viper.GetBool("swatches.force")
	allowFailures := viper.GetBool("swatches.allow_failures")

	if logger == nil {
		initLogging()
	}

	if format != "folder" && format != "archive" {
		return fmt.Errorf("invalid format %q: must be 'folder' or 'archive'", format)
	}
	if format == "archive" && outputFile == "" {
		return fmt.Errorf("--output-file is required when using --format=archive")
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	curve, err := gamma.ParseCurve(viper.GetString("swatches.gamma"))
	if err != nil {
		return err
	}
	level, err := imageio.ParseCompression(viper.GetString("swatches.png_compression"))
	if err != nil {
		return err
	}
	modes, err := parseModes(viper.GetStringSlice("swatches.modes"))
	if err != nil {
		return err
	}
	palette, err := loadPalette(viper.GetString("swatches.palette"))
	if err != nil {
		return err
	}

	cfg := sheet.Config{
		Size:        size,
		OutputDir:   outputDir,
		Palette:     palette,
		Gamma:       curve,
		Workers:     1,
		Compression: level,
		Logger:      logger,
	}

	if format == "archive" {
		w, err := archive.New(outputFile, archive.Metadata{
			Name:        "colorblend swatches",
			Description: "Preview swatches for compositing operators and blend modes",
			Version:     "1.0",
			Format:      "png",
			Gamma:       curve.String(),
			Size:        size,
		})
		if err != nil {
			return fmt.Errorf("failed to create archive writer: %w", err)
		}
		defer w.Close()
		cfg.Writer = w
	}

	gen, err := sheet.NewGenerator(cfg)
	if err != nil {
		return fmt.Errorf("failed to init generator: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("Received interrupt signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	logger.Info("Rendering swatches",
		"modes", len(modes),
		"size", size,
		"gamma", curve.String(),
		"workers", workers,
		"format", format,
	)

	progress := worker.NewProgress(len(modes), "swatches", showProgress)
	results := gen.GenerateAll(ctx, modes, workers, force, progress.Callback())
	progress.Done()

	var failedCount int
	for _, r := range results {
		if r.Err != nil {
			failedCount++
			logger.Error("Swatch generation failed", "mode", r.Job.String(), "error", r.Err)
		}
	}
	logger.Info(progress.Summary())

	if failedCount > 0 {
		if !allowFailures {
			return fmt.Errorf("%d swatches failed to render", failedCount)
		}
		logger.Warn("Some swatches failed, but continuing due to --allow-failures flag", "failed_count", failedCount)
	}
	return nil
}

// parseModes resolves mode names; an empty list selects every mode.
func parseModes(names []string) ([]blend.Mode, error) {
	if len(names) == 0 {
		return blend.Modes(), nil
	}

	seen := make(map[blend.Mode]bool, len(names))
	modes := make([]blend.Mode, 0, len(names))
	for _, name := range names {
		m, err := blend.ParseMode(name)
		if err != nil {
			return nil, err
		}
		if !seen[m] {
			seen[m] = true
			modes = append(modes, m)
		}
	}
	return modes, nil
}

func loadPalette(path string) (assets.Palette, error) {
	if path == "" {
		return assets.DefaultPalette(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return assets.Palette{}, fmt.Errorf("failed to read palette: %w", err)
	}
	return assets.ParsePalette(data)
}
