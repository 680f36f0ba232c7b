// filepath: internal/resize/video.go
package resize

import (
	"bytes"
	"fmt"
	"os/exec"

	"mediaconform/internal/geometry"
)

// VideoResizer invokes ffmpeg's crop/pad/scale filters to realize a planned
// placement, adapted from conversion.go's RunFFmpegToFile path-discovery and
// exec pattern. H.264 requires even dimensions, so Mod2 is always required.
type VideoResizer struct {
	ffmpegPath  string
	inputPath   string
	input       geometry.Dimensions
	minW, maxW  int
	needsRecode bool
	horFlipped  bool
	verFlipped  bool
	bgColor     [3]uint8
	outputPath  string
}

// NewVideoResizer binds a VideoResizer to an already-probed input. Probing
// (ffprobe invocation, codec/container inspection) happens upstream; this
// type only needs the resolved dimensions and paths.
func NewVideoResizer(ffmpegPath, inputPath string, input geometry.Dimensions, minW, maxW int, bgColor [3]uint8, needsRecode bool, outputPath string) *VideoResizer {
	return &VideoResizer{
		ffmpegPath:  ffmpegPath,
		inputPath:   inputPath,
		input:       input,
		minW:        minW,
		maxW:        maxW,
		needsRecode: needsRecode,
		bgColor:     bgColor,
		outputPath:  outputPath,
	}
}

func (v *VideoResizer) SetFlipped(hor, ver bool) {
	v.horFlipped = hor
	v.verFlipped = ver
}

func (v *VideoResizer) GetInputDimensions() geometry.Dimensions { return v.input }
func (v *VideoResizer) GetMinWidth() int                        { return v.minW }
func (v *VideoResizer) GetMaxWidth() int                        { return v.maxW }
func (v *VideoResizer) IsMod2CanvasRequired() bool               { return true }
func (v *VideoResizer) IsProcessingRequired() bool               { return v.needsRecode }
func (v *VideoResizer) IsHorFlipped() bool                       { return v.horFlipped }
func (v *VideoResizer) IsVerFlipped() bool                       { return v.verFlipped }

// Resize builds a single ffmpeg filter chain from the planned rectangles:
// crop to src, scale into dst's extent, pad the remainder of canvas with
// bgColor. CROP placements have dst == canvas, so the pad is a no-op there.
func (v *VideoResizer) Resize(src, dst geometry.Rectangle, canvas geometry.Dimensions) (string, error) {
	padColor := fmt.Sprintf("0x%02X%02X%02X", v.bgColor[0], v.bgColor[1], v.bgColor[2])
	filter := fmt.Sprintf(
		"crop=%d:%d:%d:%d,scale=%d:%d,pad=%d:%d:%d:%d:color=%s",
		src.Width, src.Height, src.X, src.Y,
		dst.Width, dst.Height,
		canvas.Width, canvas.Height, dst.X, dst.Y, padColor,
	)

	cmd := exec.Command(v.ffmpegPath,
		"-y",
		"-i", v.inputPath,
		"-vf", filter,
		"-c:a", "copy",
		v.outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &Error{Op: "ffmpeg crop/scale/pad", Err: fmt.Errorf("%w: %s", err, stderr.String())}
	}
	return v.outputPath, nil
}
