package main

import "github.com/MeKo-Tech/colorblend/internal/cmd"

func main() {
	cmd.Execute()
}
