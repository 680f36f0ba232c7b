// filepath: internal/resize/photo.go
package resize

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"mediaconform/internal/geometry"
)

// subImager is implemented by every concrete image.Image the standard
// decoders produce (RGBA, NRGBA, YCbCr, ...).
type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// PhotoResizer decodes a still image once and renders CROP/EXPAND
// placements against it with pure-Go bilinear scaling, adapted from
// image_preview.go's fixed-bounding-box scale into the general
// src-rect/dst-rect/canvas contract.
type PhotoResizer struct {
	img          image.Image
	input        geometry.Dimensions
	minW, maxW   int
	needsConvert bool
	horFlipped   bool
	verFlipped   bool
	bgColor      [3]uint8
	outputPath   string
}

// NewPhotoResizer decodes r and returns a resizer bound to the given width
// band. needsConvert forces processing even when the image is already
// legal, e.g. because the source format is not the target upload format.
func NewPhotoResizer(r io.Reader, minW, maxW int, bgColor [3]uint8, needsConvert bool, outputPath string) (*PhotoResizer, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &Error{Op: "decode", Err: err}
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, &Error{Op: "decode", Err: fmt.Errorf("zero-dimension image")}
	}
	return &PhotoResizer{
		img:          img,
		input:        geometry.NewDimensions(b.Dx(), b.Dy()),
		minW:         minW,
		maxW:         maxW,
		needsConvert: needsConvert,
		bgColor:      bgColor,
		outputPath:   outputPath,
	}, nil
}

// SetFlipped records the EXIF-derived orientation the caller already
// resolved; the resizer itself never inspects EXIF data.
func (p *PhotoResizer) SetFlipped(hor, ver bool) {
	p.horFlipped = hor
	p.verFlipped = ver
}

func (p *PhotoResizer) GetInputDimensions() geometry.Dimensions { return p.input }
func (p *PhotoResizer) GetMinWidth() int                        { return p.minW }
func (p *PhotoResizer) GetMaxWidth() int                        { return p.maxW }
func (p *PhotoResizer) IsMod2CanvasRequired() bool               { return false }
func (p *PhotoResizer) IsProcessingRequired() bool               { return p.needsConvert }
func (p *PhotoResizer) IsHorFlipped() bool                       { return p.horFlipped }
func (p *PhotoResizer) IsVerFlipped() bool                       { return p.verFlipped }

// Resize samples src from the decoded image, draws it into dst on a fresh
// canvas-sized RGBA image pre-filled with bgColor (visible only in EXPAND
// placements, where dst does not cover the whole canvas), and encodes the
// result as JPEG at p.outputPath.
func (p *PhotoResizer) Resize(src, dst geometry.Rectangle, canvas geometry.Dimensions) (string, error) {
	out := image.NewRGBA(image.Rect(0, 0, canvas.Width, canvas.Height))
	bg := image.NewUniform(color.RGBA{R: p.bgColor[0], G: p.bgColor[1], B: p.bgColor[2], A: 0xff})
	draw.Draw(out, out.Bounds(), bg, image.Point{}, draw.Src)

	srcImg := p.img
	srcRect := image.Rect(src.X, src.Y, src.X2(), src.Y2())
	if sub, ok := p.img.(subImager); ok {
		srcImg = sub.SubImage(srcRect)
	}

	dstRect := image.Rect(dst.X, dst.Y, dst.X2(), dst.Y2())
	draw.ApproxBiLinear.Scale(out, dstRect, srcImg, srcRect, draw.Over, nil)

	f, err := os.Create(p.outputPath)
	if err != nil {
		return "", &Error{Op: "create output", Err: err}
	}
	defer f.Close()

	if err := jpeg.Encode(f, out, &jpeg.Options{Quality: 90}); err != nil {
		os.Remove(p.outputPath)
		return "", &Error{Op: "encode jpeg", Err: err}
	}
	return p.outputPath, nil
}
