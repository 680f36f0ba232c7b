// Package resize provides the concrete Resizer strategies the conform
// service hands to the placement planner's output: photo, video, and thumb
// renderers, each reporting its own width band and flip/Mod2 requirements
// and each capable of rendering a planned placement to a file.
package resize

import "mediaconform/internal/geometry"

// Resizer is the capability interface the core consumes (spec.md §6). No
// renderer subclasses a shared base; each strategy implements this directly.
type Resizer interface {
	GetInputDimensions() geometry.Dimensions
	GetMinWidth() int
	GetMaxWidth() int
	IsMod2CanvasRequired() bool
	IsProcessingRequired() bool
	IsHorFlipped() bool
	IsVerFlipped() bool
	Resize(src, dst geometry.Rectangle, canvas geometry.Dimensions) (string, error)
}

// Error is a renderer failure, propagated verbatim to the caller (spec.md
// §7: "RendererError ... the core contributes nothing to its content").
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return "resize: " + e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
