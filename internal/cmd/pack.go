package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/colorblend/internal/archive"
	"github.com/MeKo-Tech/colorblend/internal/blend"
	"github.com/MeKo-Tech/colorblend/internal/imageio"
)

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Pack a swatch folder into an archive",
	Long:  `Convert a folder of <mode>.png swatches into a single swatch archive.`,
	RunE:  runPack,
}

func init() {
	rootCmd.AddCommand(packCmd)

	packCmd.Flags().String("input-dir", "./swatches", "Input directory containing <mode>.png swatches")
	packCmd.Flags().StringP("output", "o", "", "Output archive path (required)")
	packCmd.Flags().String("name", "colorblend swatches", "Archive name")
	packCmd.Flags().String("description", "Preview swatches for compositing operators and blend modes", "Archive description")
	packCmd.Flags().String("gamma", "", "Gamma curve the swatches were rendered with (metadata only)")

	bindFlags(packCmd, []flagBinding{
		{"pack.input_dir", "input-dir"},
		{"pack.output", "output"},
		{"pack.name", "name"},
		{"pack.description", "description"},
		{"pack.gamma", "gamma"},
	})
}

func runPack(cmd *cobra.Command, args []string) error {
	inputDir := viper.GetString("pack.input_dir")
	outputFile := viper.GetString("pack.output")

	if logger == nil {
		initLogging()
	}

	if outputFile == "" {
		return fmt.Errorf("--output is required")
	}
	if _, err := os.Stat(inputDir); os.IsNotExist(err) {
		return fmt.Errorf("input directory does not exist: %s", inputDir)
	}

	swatches, err := scanSwatchDirectory(inputDir)
	if err != nil {
		return fmt.Errorf("failed to scan swatch directory: %w", err)
	}
	if len(swatches) == 0 {
		return fmt.Errorf("no swatches found in %s", inputDir)
	}
	logger.Info("Packing swatches", "input_dir", inputDir, "output", outputFile, "count", len(swatches))

	// the archive records one size; take it from the first swatch
	first, err := imageio.Load(swatches[0].path)
	if err != nil {
		return err
	}
	size := first.Bounds().Dx()

	writer, err := archive.New(outputFile, archive.Metadata{
		Name:        viper.GetString("pack.name"),
		Description: viper.GetString("pack.description"),
		Version:     "1.0",
		Format:      "png",
		Gamma:       viper.GetString("pack.gamma"),
		Size:        size,
	})
	if err != nil {
		return fmt.Errorf("failed to create archive writer: %w", err)
	}
	defer writer.Close()

	var packed int
	for _, sw := range swatches {
		data, err := os.ReadFile(sw.path)
		if err != nil {
			logger.Error("Failed to read swatch", "path", sw.path, "error", err)
			continue
		}
		if err := writer.WriteSwatch(sw.mode, size, data); err != nil {
			logger.Error("Failed to write swatch", "mode", sw.mode.String(), "error", err)
			continue
		}
		packed++
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush swatches: %w", err)
	}

	logger.Info("Packing complete", "output", outputFile, "swatches", packed)
	return nil
}

type swatchFile struct {
	mode blend.Mode
	path string
}

// scanSwatchDirectory lists <mode>.png files directly inside dir in mode
// order. Files whose names are not modes are ignored.
func scanSwatchDirectory(dir string) ([]swatchFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	found := make(map[blend.Mode]string)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".png") {
			continue
		}
		m, err := blend.ParseMode(strings.TrimSuffix(e.Name(), ".png"))
		if err != nil {
			continue
		}
		found[m] = filepath.Join(dir, e.Name())
	}

	var swatches []swatchFile
	for _, m := range blend.Modes() {
		if p, ok := found[m]; ok {
			swatches = append(swatches, swatchFile{mode: m, path: p})
		}
	}
	return swatches, nil
}
