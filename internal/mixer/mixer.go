// Package mixer resolves single-color mix requests, as issued by the CLI,
// the HTTP API and the browser build.
package mixer

import (
	"fmt"
	"strings"

	"github.com/MeKo-Tech/colorblend/internal/blend"
	"github.com/MeKo-Tech/colorblend/internal/gamma"
	"github.com/MeKo-Tech/colorblend/internal/rgba"
)

// Request mixes Src onto Dst.
type Request struct {
	Src rgba.HexColor `json:"src"`
	Dst rgba.HexColor `json:"dst"`
	// Mode is a blend mode or a Porter-Duff operator name.
	Mode string `json:"mode"`
	// Op optionally names the operator used after a blend mode.
	Op    string      `json:"op,omitempty"`
	Gamma gamma.Curve `json:"gamma"`
}

// Result is the outcome of a Request.
type Result struct {
	Mode   blend.Mode    `json:"mode"`
	Op     blend.Mode    `json:"op"`
	Src    rgba.HexColor `json:"src"`
	Dst    rgba.HexColor `json:"dst"`
	Result rgba.HexColor `json:"result"`
	// Premultiplied is the raw compositing output in the working space.
	Premultiplied rgba.RGBAF `json:"premultiplied"`
}

// Resolve turns a mode name and an optional operator name into the blend
// mode and operator pair used by blend.Compose. A lone operator name is
// composited with Normal; a lone blend mode uses SrcOver.
func Resolve(mode, op string) (blend.Mode, blend.Mode, error) {
	if strings.TrimSpace(mode) == "" {
		mode = blend.Normal.String()
	}
	m, err := blend.ParseMode(mode)
	if err != nil {
		return 0, 0, err
	}

	if strings.TrimSpace(op) == "" {
		if m.IsCompositing() {
			return blend.Normal, m, nil
		}
		return m, blend.SrcOver, nil
	}

	o, err := blend.ParseMode(op)
	if err != nil {
		return 0, 0, err
	}
	if !o.IsCompositing() {
		return 0, 0, fmt.Errorf("%s is not a compositing operator", o)
	}
	if m.IsCompositing() {
		return 0, 0, fmt.Errorf("mode %s is an operator; pass a blend mode with --op", m)
	}
	return m, o, nil
}

// Mix evaluates req.
func Mix(req Request) (Result, error) {
	mode, op, err := Resolve(req.Mode, req.Op)
	if err != nil {
		return Result{}, err
	}

	src := req.Gamma.ExpandColor(rgba.Normalize8(req.Src.Color()))
	dst := req.Gamma.ExpandColor(rgba.Normalize8(req.Dst.Color()))
	out := blend.Compose(op, mode, src, dst)
	straight := req.Gamma.EncodeColor(rgba.Unpremultiply(out))

	return Result{
		Mode:          mode,
		Op:            op,
		Src:           req.Src,
		Dst:           req.Dst,
		Result:        rgba.HexColor(rgba.Quantize8(straight)),
		Premultiplied: out,
	}, nil
}
