package wheelview

// Bezier is a CSS-style cubic-bezier timing curve with end points (0,0) and
// (1,1).
type Bezier struct {
	X1, Y1, X2, Y2 float64
}

// SpinEasing gathers speed quickly and settles slowly onto the winner.
var SpinEasing = Bezier{X1: 0.15, Y1: 0, X2: 0.15, Y2: 1}

func bezierAxis(t, p1, p2 float64) float64 {
	u := 1 - t
	return 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t
}

func bezierSlope(t, p1, p2 float64) float64 {
	u := 1 - t
	return 3*u*u*p1 + 6*u*t*(p2-p1) + 3*t*t*(1-p2)
}

// At maps linear progress x in [0,1] to eased progress.
func (b Bezier) At(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}

	// Newton first, bisection when the slope is too flat to trust.
	t := x
	for range 8 {
		dx := bezierAxis(t, b.X1, b.X2) - x
		if dx > -1e-7 && dx < 1e-7 {
			return bezierAxis(t, b.Y1, b.Y2)
		}
		d := bezierSlope(t, b.X1, b.X2)
		if d > -1e-6 && d < 1e-6 {
			break
		}
		t = min(max(t-dx/d, 0), 1)
	}

	lo, hi := 0.0, 1.0
	t = x
	for range 50 {
		v := bezierAxis(t, b.X1, b.X2)
		if v-x > -1e-7 && v-x < 1e-7 {
			break
		}
		if v < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return bezierAxis(t, b.Y1, b.Y2)
}
