package cmd

import (
	"context"
	"fmt"
	"image"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/colorblend/internal/composite"
	"github.com/MeKo-Tech/colorblend/internal/filter"
	"github.com/MeKo-Tech/colorblend/internal/gamma"
	"github.com/MeKo-Tech/colorblend/internal/imageio"
	"github.com/MeKo-Tech/colorblend/internal/mask"
	"github.com/MeKo-Tech/colorblend/internal/mixer"
)

var blendCmd = &cobra.Command{
	Use:   "blend",
	Short: "Blend a source image onto a backdrop image",
	Long: `Blend every pixel of --src onto --dst and write the result as PNG.

The source is resized to the backdrop when their sizes differ. Masks are
grayscale images that scale the source alpha per pixel; several masks are
merged with --mask-combine.`,
	Example: `  colorblend blend --src paper.png --dst photo.jpg --mode multiply -o out.png
  colorblend blend --src glow.png --dst photo.jpg --mode screen --gamma srgb --mask vignette.png`,
	RunE: runBlend,
}

func init() {
	rootCmd.AddCommand(blendCmd)

	blendCmd.Flags().String("src", "", "Source (layer) image (required)")
	blendCmd.Flags().String("dst", "", "Backdrop image (required)")
	blendCmd.Flags().StringP("output", "o", "blended.png", "Output PNG path")
	blendCmd.Flags().StringP("mode", "m", "normal", "Blend mode or compositing operator")
	blendCmd.Flags().String("op", "", "Compositing operator used after a blend mode (default src-over)")
	blendCmd.Flags().String("gamma", "linear", "Blend in linear light: linear, fast, 2.2 or srgb")
	blendCmd.Flags().Float64("opacity", 1, "Source opacity (0..1)")
	blendCmd.Flags().Float64("blur", 0, "Gaussian blur sigma applied to the source")
	blendCmd.Flags().Bool("grayscale", false, "Desaturate the source before blending")
	blendCmd.Flags().StringSlice("mask", nil, "Mask image(s) scaling the source alpha")
	blendCmd.Flags().String("mask-channel", "luma", "Mask channel: luma, alpha or binary")
	blendCmd.Flags().String("mask-combine", "max", "How several masks merge: max or min")
	blendCmd.Flags().Float64("mask-blur", 0, "Gaussian blur sigma applied to the mask")
	blendCmd.Flags().Int("mask-threshold", 0, "Threshold the mask at this level (1..255, 0 disables)")
	blendCmd.Flags().Float64("mask-noise", 0, "Perlin noise strength applied to the mask (0..1)")
	blendCmd.Flags().Float64("mask-noise-scale", 32, "Perlin noise feature size in pixels")
	blendCmd.Flags().Int64("seed", 1337, "Deterministic seed for mask noise")
	blendCmd.Flags().Bool("invert-mask", false, "Invert the mask")
	blendCmd.Flags().IntP("workers", "w", 0, "Number of parallel bands (default: number of CPUs)")
	blendCmd.Flags().String("png-compression", "default", "PNG compression (default, speed, best, none)")

	bindFlags(blendCmd, []flagBinding{
		{"blend.src", "src"},
		{"blend.dst", "dst"},
		{"blend.output", "output"},
		{"blend.mode", "mode"},
		{"blend.op", "op"},
		{"blend.gamma", "gamma"},
		{"blend.opacity", "opacity"},
		{"blend.blur", "blur"},
		{"blend.grayscale", "grayscale"},
		{"blend.mask", "mask"},
		{"blend.mask_channel", "mask-channel"},
		{"blend.mask_combine", "mask-combine"},
		{"blend.mask_blur", "mask-blur"},
		{"blend.mask_threshold", "mask-threshold"},
		{"blend.mask_noise", "mask-noise"},
		{"blend.mask_noise_scale", "mask-noise-scale"},
		{"blend.seed", "seed"},
		{"blend.invert_mask", "invert-mask"},
		{"blend.workers", "workers"},
		{"blend.png_compression", "png-compression"},
	})
}

// maskOptions describe how mask images become a single coverage mask.
type maskOptions struct {
	Channel    string
	Combine    string
	Blur       float64
	Threshold  int
	Noise      float64
	NoiseScale float64
	Seed       int64
	Invert     bool
}

// layerOptions describe how the source image is prepared and blended.
type layerOptions struct {
	Mode      string
	Op        string
	Gamma     gamma.Curve
	Opacity   float64
	Blur      float64
	Grayscale bool
	Workers   int
}

func runBlend(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	srcPath := viper.GetString("blend.src")
	dstPath := viper.GetString("blend.dst")
	output := viper.GetString("blend.output")
	if srcPath == "" || dstPath == "" {
		return fmt.Errorf("--src and --dst are required")
	}

	curve, err := gamma.ParseCurve(viper.GetString("blend.gamma"))
	if err != nil {
		return err
	}
	level, err := imageio.ParseCompression(viper.GetString("blend.png_compression"))
	if err != nil {
		return err
	}

	src, err := imageio.Load(srcPath)
	if err != nil {
		return err
	}
	dst, err := imageio.Load(dstPath)
	if err != nil {
		return err
	}

	var masks []image.Image
	for _, p := range viper.GetStringSlice("blend.mask") {
		m, err := imageio.Load(p)
		if err != nil {
			return err
		}
		masks = append(masks, m)
	}

	lo := layerOptions{
		Mode:      viper.GetString("blend.mode"),
		Op:        viper.GetString("blend.op"),
		Gamma:     curve,
		Opacity:   viper.GetFloat64("blend.opacity"),
		Blur:      viper.GetFloat64("blend.blur"),
		Grayscale: viper.GetBool("blend.grayscale"),
		Workers:   viper.GetInt("blend.workers"),
	}
	mo := maskOptions{
		Channel:    viper.GetString("blend.mask_channel"),
		Combine:    viper.GetString("blend.mask_combine"),
		Blur:       viper.GetFloat64("blend.mask_blur"),
		Threshold:  viper.GetInt("blend.mask_threshold"),
		Noise:      viper.GetFloat64("blend.mask_noise"),
		NoiseScale: viper.GetFloat64("blend.mask_noise_scale"),
		Seed:       viper.GetInt64("blend.seed"),
		Invert:     viper.GetBool("blend.invert_mask"),
	}

	logger.Info("Blending images",
		"src", srcPath,
		"dst", dstPath,
		"mode", lo.Mode,
		"op", lo.Op,
		"gamma", curve.String(),
		"masks", len(masks),
	)

	out, err := blendImages(cmd.Context(), src, dst, masks, lo, mo)
	if err != nil {
		return err
	}

	if err := imageio.Save(output, out, level); err != nil {
		return err
	}
	logger.Info("Wrote blended image", "path", output)
	return nil
}

// blendImages blends src onto dst. The result has dst's size, anchored at
// the origin.
func blendImages(ctx context.Context, src, dst image.Image, masks []image.Image, lo layerOptions, mo maskOptions) (*image.NRGBA, error) {
	mode, op, err := mixer.Resolve(lo.Mode, lo.Op)
	if err != nil {
		return nil, err
	}
	if lo.Opacity < 0 || lo.Opacity > 1 {
		return nil, fmt.Errorf("opacity must be within [0,1]")
	}

	base := imageio.NRGBA(dst)
	bounds := base.Bounds()

	layerImg := filter.Fit(src, bounds)
	if lo.Grayscale {
		layerImg = filter.Grayscale(layerImg)
	}
	if lo.Blur > 0 {
		layerImg = filter.Blur(layerImg, float32(lo.Blur))
	}

	layer := composite.NewLayer("src", layerImg)
	layer.Mode = mode
	layer.Op = op
	layer.Opacity = float32(lo.Opacity)

	if len(masks) > 0 {
		m, err := buildMask(masks, bounds, mo)
		if err != nil {
			return nil, err
		}
		layer.Mask = m
	}

	return composite.Stack(ctx, base, []composite.Layer{layer}, bounds, composite.Options{
		Workers: lo.Workers,
		Gamma:   lo.Gamma,
		Logger:  logger,
	})
}

// buildMask turns mask images into one mask covering bounds.
func buildMask(imgs []image.Image, bounds image.Rectangle, mo maskOptions) (*image.Gray, error) {
	var merge func(a, b *image.Gray) *image.Gray
	switch mo.Combine {
	case "max", "":
		merge = mask.Max
	case "min":
		merge = mask.Min
	default:
		return nil, fmt.Errorf("invalid mask-combine %q: must be 'max' or 'min'", mo.Combine)
	}
	if mo.Threshold < 0 || mo.Threshold > 255 {
		return nil, fmt.Errorf("mask-threshold must be within [0,255]")
	}

	var out *image.Gray
	for _, img := range imgs {
		fitted := filter.Fit(img, bounds)

		var m *image.Gray
		switch mo.Channel {
		case "luma", "":
			m = mask.FromLuma(fitted)
		case "alpha":
			m = mask.FromAlpha(fitted)
		case "binary":
			m = mask.Binary(fitted)
		default:
			return nil, fmt.Errorf("invalid mask-channel %q: must be luma, alpha or binary", mo.Channel)
		}

		if out == nil {
			out = m
		} else {
			out = merge(out, m)
		}
	}

	if mo.Blur > 0 {
		out = mask.Blur(out, float32(mo.Blur))
	}
	if mo.Noise > 0 {
		noise := mask.Noise(bounds.Dx(), bounds.Dy(), mo.NoiseScale, mo.Seed)
		out = mask.ApplyNoise(out, noise, mo.Noise)
	}
	if mo.Threshold > 0 {
		out = mask.Threshold(out, uint8(mo.Threshold))
	}
	if mo.Invert {
		out = mask.Invert(out)
	}
	return out, nil
}
