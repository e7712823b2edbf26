package blend

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeFamilies(t *testing.T) {
	modes := Modes()
	require.Len(t, modes, 38)

	var compositing, blending, hsl int
	for _, m := range modes {
		assert.NotEqual(t, m.IsCompositing(), m.IsBlending(), "%s must be in exactly one family", m)
		if m.IsCompositing() {
			compositing++
		}
		if m.IsBlending() {
			blending++
		}
		if m.IsNonSeparable() {
			hsl++
			assert.False(t, m.IsSeparable())
		}
	}
	assert.Equal(t, 13, compositing)
	assert.Equal(t, 25, blending)
	assert.Equal(t, 4, hsl)

	assert.Equal(t, "compositing", Xor.Family())
	assert.Equal(t, "separable", Multiply.Family())
	assert.Equal(t, "non-separable", Luminosity.Family())

	assert.Equal(t, Mode(0), modes[0])
	assert.Equal(t, Overwrite, modes[len(modes)-1])
}

func TestModeStringRoundTrip(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(m.String())
		require.NoError(t, err, m.String())
		assert.Equal(t, m, got)
	}
	assert.Equal(t, "mode(200)", Mode(200).String())
	assert.False(t, Mode(200).IsValid())
	assert.True(t, Overwrite.IsValid())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "src-over", want: SrcOver},
		{in: "SrcOver", want: SrcOver},
		{in: "source_over", want: SrcOver},
		{in: "destination-atop", want: DstAtop},
		{in: "plus", want: Lighter},
		{in: "add", want: LinearDodge},
		{in: "Color Dodge", want: ColorDodge},
		{in: "COLOR", want: Color},
		{in: "xor", want: Xor},
		{in: "softlight", want: SoftLight},
		{in: "sparkle", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModeText(t *testing.T) {
	doc := struct {
		Mode Mode `json:"mode"`
		Op   Mode `json:"op"`
	}{Mode: HardLight, Op: DstOut}

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"hard-light","op":"dst-out"}`, string(data))

	require.NoError(t, json.Unmarshal([]byte(`{"mode":"pin_light","op":"plus"}`), &doc))
	assert.Equal(t, PinLight, doc.Mode)
	assert.Equal(t, Lighter, doc.Op)

	_, err = Mode(99).MarshalText()
	assert.Error(t, err)
}
