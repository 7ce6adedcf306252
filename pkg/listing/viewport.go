package listing

// Viewport is a scrolling window of Height rows over Total rows.
type Viewport struct {
	Top    int
	Height int
	Total  int
}

func (v *Viewport) clamp() {
	max := v.Total - v.Height
	if max < 0 {
		max = 0
	}
	if v.Top > max {
		v.Top = max
	}
	if v.Top < 0 {
		v.Top = 0
	}
}

// Scroll moves the window by delta rows, staying inside the listing.
func (v *Viewport) Scroll(delta int) {
	v.Top += delta
	v.clamp()
}

func (v *Viewport) Home() {
	v.Top = 0
}

func (v *Viewport) End() {
	v.Top = v.Total
	v.clamp()
}

// Visible returns the half-open row range [from, to) on screen.
func (v Viewport) Visible() (from, to int) {
	v.clamp()
	to = v.Top + v.Height
	if to > v.Total {
		to = v.Total
	}
	return v.Top, to
}
