package rgba

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONFields(t *testing.T) {
	c := New[float32](0.25, 0.5, 0.75, 1)

	data, err := json.Marshal(c)
	require.NoError(t, err)
	require.JSONEq(t, `{"r":0.25,"g":0.5,"b":0.75,"a":1}`, string(data))

	var back RGBAF
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, c, back)
}

func TestHexColorText(t *testing.T) {
	doc := struct {
		Tint HexColor `json:"tint"`
	}{Tint: HexColor(New[uint8](0xAA, 0xBB, 0xCC, 0xDD))}

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.JSONEq(t, `{"tint":"#aabbccdd"}`, string(data))

	doc.Tint = HexColor{}
	require.NoError(t, json.Unmarshal([]byte(`{"tint":"#102030"}`), &doc))
	require.Equal(t, New[uint8](0x10, 0x20, 0x30, 0xFF), doc.Tint.Color())

	require.Error(t, json.Unmarshal([]byte(`{"tint":"blue"}`), &doc))
}
