package canvas

// ProcessingChecker is the single Resizer capability the guard needs; kept
// minimal here rather than importing the full resize.Resizer interface, the
// same way Tracer avoids importing a logging package.
type ProcessingChecker interface {
	IsProcessingRequired() bool
}

// GuardParams bundles the inputs to ShouldProcess.
type GuardParams struct {
	InputWidth  int
	InputHeight int
	MinWidth    int
	MaxWidth    int
	MinAspect   *float64
	MaxAspect   *float64
	Resizer     ProcessingChecker
}

// ShouldProcess implements spec.md §4.4: returns false (no-op) iff the input
// width is already within band, its aspect is already within band, and the
// resizer reports no independent processing need.
func ShouldProcess(p GuardParams) bool {
	if p.InputWidth < p.MinWidth || p.InputWidth > p.MaxWidth {
		return true
	}
	aspect := float64(p.InputWidth) / float64(p.InputHeight)
	if !legal(aspect, p.MinAspect, p.MaxAspect) {
		return true
	}
	if p.Resizer != nil && p.Resizer.IsProcessingRequired() {
		return true
	}
	return false
}
