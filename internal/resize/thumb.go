// filepath: internal/resize/thumb.go
package resize

import (
	"io"

	"mediaconform/internal/geometry"
)

// ThumbResizer is the small fixed-band strategy used for list/grid
// thumbnails. It always reports processing required, since a thumbnail is
// never "already legal" relative to the source asset. It does not choose the
// operation: CROP or EXPAND comes from the request's profile, as for photos.
type ThumbResizer struct {
	*PhotoResizer
}

// NewThumbResizer decodes r and binds it to the thumbnail width band.
func NewThumbResizer(r io.Reader, minW, maxW int, bgColor [3]uint8, outputPath string) (*ThumbResizer, error) {
	photo, err := NewPhotoResizer(r, minW, maxW, bgColor, true, outputPath)
	if err != nil {
		return nil, err
	}
	return &ThumbResizer{PhotoResizer: photo}, nil
}

var _ Resizer = (*ThumbResizer)(nil)
var _ Resizer = (*PhotoResizer)(nil)
var _ Resizer = (*VideoResizer)(nil)

// GetInputDimensions satisfies Resizer explicitly to document that a thumb
// has no dimension logic of its own beyond the embedded PhotoResizer.
func (t *ThumbResizer) GetInputDimensions() geometry.Dimensions {
	return t.PhotoResizer.GetInputDimensions()
}
