//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/MeKo-Tech/colorblend/assets"
	"github.com/MeKo-Tech/colorblend/internal/blend"
	"github.com/MeKo-Tech/colorblend/internal/mixer"
)

// mix is called from JavaScript with a JSON request such as
// {"src":"#ff8040","dst":"#808080","mode":"multiply","op":"src-over","gamma":"srgb"}
// and returns the JSON encoded result or {"error": "..."}.
func mix(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorJSON(fmt.Errorf("missing arguments"))
	}

	var req mixer.Request
	if err := json.Unmarshal([]byte(args[0].String()), &req); err != nil {
		return errorJSON(fmt.Errorf("failed to parse request: %w", err))
	}

	res, err := mixer.Mix(req)
	if err != nil {
		return errorJSON(err)
	}

	data, err := json.Marshal(res)
	if err != nil {
		return errorJSON(err)
	}
	return string(data)
}

// modes returns the mode names and families as JSON.
func modes(this js.Value, args []js.Value) interface{} {
	type info struct {
		Name   string `json:"name"`
		Family string `json:"family"`
	}
	var out []info
	for _, m := range blend.Modes() {
		out = append(out, info{Name: m.String(), Family: m.Family()})
	}
	data, _ := json.Marshal(out)
	return string(data)
}

// palette returns the built-in swatch palette as JSON.
func palette(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(assets.DefaultPalette())
	if err != nil {
		return errorJSON(err)
	}
	return string(data)
}

func errorJSON(err error) string {
	data, _ := json.Marshal(map[string]string{"error": err.Error()})
	return string(data)
}

func main() {
	c := make(chan struct{})

	js.Global().Set("colorblendMix", js.FuncOf(mix))
	js.Global().Set("colorblendModes", js.FuncOf(modes))
	js.Global().Set("colorblendPalette", js.FuncOf(palette))

	fmt.Println("colorblend WASM module loaded")
	<-c
}
