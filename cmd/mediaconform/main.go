// filepath: cmd/mediaconform/main.go
package main

import (
	"mediaconform/internal/cli"
)

// @title mediaconform API
// @version 1.0.0
// @description Computes conformant output canvases for photos, videos, and thumbnails and renders them to fit upload-target aspect/width constraints.
// @BasePath /api
// @schemes http
func main() {
	cli.Execute()
}
