package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/colorblend/internal/gamma"
	"github.com/MeKo-Tech/colorblend/internal/mixer"
	"github.com/MeKo-Tech/colorblend/internal/rgba"
)

var mixCmd = &cobra.Command{
	Use:   "mix",
	Short: "Mix two colors",
	Long: `Blend and composite a single source color onto a backdrop color.

Colors are given as #RRGGBB or #RRGGBBAA. --mode takes a blend mode or a
compositing operator; --op picks the operator applied after a blend mode.`,
	Example: `  colorblend mix --src '#ff8040' --dst '#808080' --mode multiply
  colorblend mix --src '#ff000080' --dst '#0000ff' --mode xor --format json`,
	RunE: runMix,
}

func init() {
	rootCmd.AddCommand(mixCmd)

	mixCmd.Flags().String("src", "#ffffff", "Source color")
	mixCmd.Flags().String("dst", "#000000", "Backdrop color")
	mixCmd.Flags().StringP("mode", "m", "normal", "Blend mode or compositing operator")
	mixCmd.Flags().String("op", "", "Compositing operator used after a blend mode (default src-over)")
	mixCmd.Flags().String("gamma", "linear", "Blend in linear light: linear, fast, 2.2 or srgb")
	mixCmd.Flags().String("format", "hex", "Output format: hex or json")

	bindFlags(mixCmd, []flagBinding{
		{"mix.src", "src"},
		{"mix.dst", "dst"},
		{"mix.mode", "mode"},
		{"mix.op", "op"},
		{"mix.gamma", "gamma"},
		{"mix.format", "format"},
	})
}

func runMix(cmd *cobra.Command, args []string) error {
	src, err := rgba.ParseHex(viper.GetString("mix.src"))
	if err != nil {
		return fmt.Errorf("--src: %w", err)
	}
	dst, err := rgba.ParseHex(viper.GetString("mix.dst"))
	if err != nil {
		return fmt.Errorf("--dst: %w", err)
	}
	curve, err := gamma.ParseCurve(viper.GetString("mix.gamma"))
	if err != nil {
		return err
	}

	res, err := mixer.Mix(mixer.Request{
		Src:   rgba.HexColor(src),
		Dst:   rgba.HexColor(dst),
		Mode:  viper.GetString("mix.mode"),
		Op:    viper.GetString("mix.op"),
		Gamma: curve,
	})
	if err != nil {
		return err
	}

	return writeMix(cmd.OutOrStdout(), res, viper.GetString("mix.format"))
}

func writeMix(w io.Writer, res mixer.Result, format string) error {
	switch format {
	case "hex", "":
		_, err := fmt.Fprintln(w, res.Result)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return fmt.Errorf("invalid format %q: must be 'hex' or 'json'", format)
}
