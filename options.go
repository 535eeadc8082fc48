package curveview

// ViewOption configures a View during creation.
//
// Example:
//
//	// Start from a fixed window and allow distortion.
//	v := curveview.NewView(
//	    curveview.WithRegion(curveview.Region{XMin: 0, XMax: 10, YMin: 0, YMax: 5, ZMin: -1, ZMax: 1}),
//	    curveview.WithAspectRatioPreservation(false),
//	)
type ViewOption func(*viewOptions)

type viewOptions struct {
	region   Region
	preserve bool
}

func defaultViewOptions() viewOptions {
	return viewOptions{
		region:   DefaultRegion(),
		preserve: true,
	}
}

// WithRegion sets the initial region of interest. Invalid regions are
// ignored and the default region is kept.
func WithRegion(r Region) ViewOption {
	return func(o *viewOptions) {
		if r.Valid() {
			o.region = r
		}
	}
}

// WithAspectRatioPreservation sets whether the fitter grows the region to
// match the viewport aspect ratio. Enabled by default.
func WithAspectRatioPreservation(enabled bool) ViewOption {
	return func(o *viewOptions) {
		o.preserve = enabled
	}
}
