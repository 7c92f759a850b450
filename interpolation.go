package dcf

import (
	"math"
	"sort"
)

// Scheme names one member of the interpolation catalogue.
type Scheme int

const (
	Flat Scheme = iota
	NoInterpolation
	Zero
	Left // aka Constant
	Constant
	Right
	Nearest
	Linear
	LogLinear
	NegLogLinear
	LogConstant
	NegLogConstant
	LogLinearRate
	LogConstantRate
	SquaredConstant
	SquaredLinear
	NaturalSpline
	NotAKnotSpline
)

// Interpolator is a function ℝ → ℝ built from a sorted knot grid.
type Interpolator interface {
	At(x float64) (float64, error)
}

// CompositeScheme parameterizes a curve with a distinct scheme applied
// below the first knot, between knots, and above the last knot.
type CompositeScheme struct {
	LeftScheme  Scheme
	MidScheme   Scheme
	RightScheme Scheme
}

// Uniform returns a CompositeScheme that applies s everywhere.
func Uniform(s Scheme) CompositeScheme {
	return CompositeScheme{LeftScheme: s, MidScheme: s, RightScheme: s}
}

type composite struct {
	xs                 []float64
	left, mid, right   Interpolator
}

func (c *composite) At(x float64) (float64, error) {
	switch {
	case len(c.xs) == 0:
		return 0, newErr("Interpolator.At", DomainError, "empty knot grid")
	case x < c.xs[0]:
		return c.left.At(x)
	case x > c.xs[len(c.xs)-1]:
		return c.right.At(x)
	default:
		return c.mid.At(x)
	}
}

// Build constructs an Interpolator from a composite scheme over (xs, ys).
// xs must be strictly increasing once sorted; duplicate x values keep the
// later (xs[i], ys[i]) pair, mirroring the source library's update()
// semantics.
func Build(scheme CompositeScheme, xs, ys []float64) (Interpolator, error) {
	sx, sy, err := sortKnots(xs, ys)
	if err != nil {
		return nil, err
	}
	left, err := buildSingle(scheme.LeftScheme, sx, sy)
	if err != nil {
		return nil, err
	}
	mid, err := buildSingle(scheme.MidScheme, sx, sy)
	if err != nil {
		return nil, err
	}
	right, err := buildSingle(scheme.RightScheme, sx, sy)
	if err != nil {
		return nil, err
	}
	return &composite{xs: sx, left: left, mid: mid, right: right}, nil
}

func sortKnots(xs, ys []float64) ([]float64, []float64, error) {
	if len(xs) != len(ys) {
		return nil, nil, newErr("Build", ShapeError, "len(xs) != len(ys)")
	}
	n := len(xs)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return xs[idx[i]] < xs[idx[j]] })
	dedup := make(map[float64]float64, n)
	order := make([]float64, 0, n)
	for _, i := range idx {
		x := xs[i]
		if _, ok := dedup[x]; !ok {
			order = append(order, x)
		}
		dedup[x] = ys[i]
	}
	sort.Float64s(order)
	sx := make([]float64, len(order))
	sy := make([]float64, len(order))
	for i, x := range order {
		sx[i] = x
		sy[i] = dedup[x]
	}
	return sx, sy, nil
}

func buildSingle(scheme Scheme, xs, ys []float64) (Interpolator, error) {
	switch scheme {
	case Flat:
		y := 0.0
		if len(ys) > 0 {
			y = ys[0]
		}
		return flatInterp{y: y}, nil
	case NoInterpolation:
		return &noInterp{xs: xs, ys: ys}, nil
	case Zero:
		return &zeroInterp{xs: xs, ys: ys}, nil
	case Left, Constant:
		return &leftInterp{xs: xs, ys: ys}, nil
	case Right:
		return &rightInterp{xs: xs, ys: ys}, nil
	case Nearest:
		return &nearestInterp{xs: xs, ys: ys}, nil
	case Linear:
		return &linearInterp{xs: xs, ys: ys}, nil
	case LogLinear:
		return newLogTransform(xs, ys, false, &linearInterp{})
	case NegLogLinear:
		return newLogTransform(xs, ys, true, &linearInterp{})
	case LogConstant:
		return newLogTransform(xs, ys, false, &leftInterp{})
	case NegLogConstant:
		return newLogTransform(xs, ys, true, &leftInterp{})
	case LogLinearRate:
		return newLogRateTransform(xs, ys, &linearInterp{})
	case LogConstantRate:
		return newLogRateTransform(xs, ys, &leftInterp{})
	case SquaredConstant:
		return newSquaredTransform(xs, ys, &leftInterp{})
	case SquaredLinear:
		return newSquaredTransform(xs, ys, &linearInterp{})
	case NaturalSpline:
		return newSpline(xs, ys, true)
	case NotAKnotSpline:
		return newSpline(xs, ys, false)
	default:
		return nil, newErr("Build", ConfigError, "unknown interpolation scheme")
	}
}

// flatInterp returns the same value everywhere.
type flatInterp struct{ y float64 }

func (f flatInterp) At(float64) (float64, error) { return f.y, nil }

// noInterp only answers exactly at a knot.
type noInterp struct{ xs, ys []float64 }

func (n *noInterp) At(x float64) (float64, error) {
	for i, xi := range n.xs {
		if xi == x {
			return n.ys[i], nil
		}
	}
	return 0, newErr("Interpolator.At", DomainError, "no interpolation: x is not a knot")
}

// zeroInterp answers the knot value at a knot, zero otherwise.
type zeroInterp struct{ xs, ys []float64 }

func (z *zeroInterp) At(x float64) (float64, error) {
	for i, xi := range z.xs {
		if xi == x {
			return z.ys[i], nil
		}
	}
	return 0, nil
}

// leftInterp ("constant") returns the value of the greatest knot <= x; below
// the grid returns y1, above returns yn.
type leftInterp struct{ xs, ys []float64 }

func (l *leftInterp) At(x float64) (float64, error) {
	if len(l.ys) == 0 {
		return 0, newErr("Interpolator.At", DomainError, "empty knot grid")
	}
	i := sort.SearchFloat64s(l.xs, x)
	if i < len(l.xs) && l.xs[i] == x {
		return l.ys[i], nil
	}
	// i is the insertion point; the knot to the left is i-1.
	if i == 0 {
		return l.ys[0], nil
	}
	if i-1 >= len(l.ys) {
		return l.ys[len(l.ys)-1], nil
	}
	return l.ys[i-1], nil
}

// rightInterp returns the value of the least knot >= x; below the grid
// returns y1, above returns yn.
type rightInterp struct{ xs, ys []float64 }

func (r *rightInterp) At(x float64) (float64, error) {
	if len(r.ys) == 0 {
		return 0, newErr("Interpolator.At", DomainError, "empty knot grid")
	}
	i := sort.SearchFloat64s(r.xs, x)
	if i >= len(r.xs) {
		return r.ys[len(r.ys)-1], nil
	}
	return r.ys[i], nil
}

// nearestInterp returns the value of the nearest knot, ties broken toward
// the left (lower x).
type nearestInterp struct{ xs, ys []float64 }

func (nn *nearestInterp) At(x float64) (float64, error) {
	n := len(nn.ys)
	if n == 0 {
		return 0, newErr("Interpolator.At", DomainError, "empty knot grid")
	}
	if n == 1 {
		return nn.ys[0], nil
	}
	i := sort.SearchFloat64s(nn.xs, x)
	if i < n && nn.xs[i] == x {
		return nn.ys[i], nil
	}
	if i == 0 {
		return nn.ys[0], nil
	}
	if i >= n {
		return nn.ys[n-1], nil
	}
	// x lies strictly between xs[i-1] and xs[i].
	if (x - nn.xs[i-1]) <= (nn.xs[i] - x) {
		return nn.ys[i-1], nil
	}
	return nn.ys[i], nil
}

// linearInterp interpolates linearly between adjacent knots and extends the
// edge segment's line beyond the grid.
type linearInterp struct{ xs, ys []float64 }

func (l *linearInterp) At(x float64) (float64, error) {
	n := len(l.ys)
	if n == 0 {
		return 0, newErr("Interpolator.At", DomainError, "empty knot grid")
	}
	if n == 1 {
		return l.ys[0], nil
	}
	i := sort.SearchFloat64s(l.xs, x)
	switch {
	case i == 0:
		i = 1
	case i >= n:
		i = n - 1
	case l.xs[i] == x:
		return l.ys[i], nil
	}
	x0, x1 := l.xs[i-1], l.xs[i]
	y0, y1 := l.ys[i-1], l.ys[i]
	return y0 + (y1-y0)*(x-x0)/(x1-x0), nil
}

func logTransform(ys []float64, negate bool) ([]float64, error) {
	out := make([]float64, len(ys))
	for i, y := range ys {
		if y <= 0 {
			return nil, newErr("Build", DomainError, "log interpolation requires positive values")
		}
		if negate {
			out[i] = -math.Log(y)
		} else {
			out[i] = math.Log(y)
		}
	}
	return out, nil
}

type logWrapped struct {
	inner  Interpolator
	negate bool
}

func (lw logWrapped) At(x float64) (float64, error) {
	v, err := lw.inner.At(x)
	if err != nil {
		return 0, err
	}
	if lw.negate {
		return math.Exp(-v), nil
	}
	return math.Exp(v), nil
}

func newLogTransform(xs, ys []float64, negate bool, shape Interpolator) (Interpolator, error) {
	logY, err := logTransform(ys, negate)
	if err != nil {
		return nil, err
	}
	inner, err := rebuildLike(shape, xs, logY)
	if err != nil {
		return nil, err
	}
	return logWrapped{inner: inner, negate: negate}, nil
}

// rebuildLike constructs a fresh interpolator of the same concrete kind as
// shape, over (xs, ys).
func rebuildLike(shape Interpolator, xs, ys []float64) (Interpolator, error) {
	switch shape.(type) {
	case *linearInterp:
		return &linearInterp{xs: xs, ys: ys}, nil
	case *leftInterp:
		return &leftInterp{xs: xs, ys: ys}, nil
	default:
		return nil, newErr("Build", ConfigError, "unsupported transform base scheme")
	}
}

type logRateWrapped struct {
	inner    Interpolator
	yAtZero  float64
	hasZero  bool
}

func (lr logRateWrapped) At(x float64) (float64, error) {
	if x == 0 {
		if lr.hasZero {
			return lr.yAtZero, nil
		}
		return 0, newErr("Interpolator.At", DomainError, "no value stored at x = 0")
	}
	v, err := lr.inner.At(x)
	if err != nil {
		return 0, err
	}
	return math.Exp(-v * x), nil
}

func newLogRateTransform(xs, ys []float64, shape Interpolator) (Interpolator, error) {
	var yAtZero float64
	hasZero := false
	fxs := make([]float64, 0, len(xs))
	fys := make([]float64, 0, len(ys))
	for i, x := range xs {
		y := ys[i]
		if y <= 0 {
			return nil, newErr("Build", DomainError, "log interpolation requires positive values")
		}
		if x == 0 {
			yAtZero = y
			hasZero = true
			continue
		}
		fxs = append(fxs, x)
		fys = append(fys, -math.Log(y)/x)
	}
	inner, err := rebuildLike(shape, fxs, fys)
	if err != nil {
		return nil, err
	}
	return logRateWrapped{inner: inner, yAtZero: yAtZero, hasZero: hasZero}, nil
}

type squaredWrapped struct{ inner Interpolator }

func (sw squaredWrapped) At(x float64) (float64, error) {
	v, err := sw.inner.At(x)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v), nil
}

func newSquaredTransform(xs, ys []float64, shape Interpolator) (Interpolator, error) {
	sq := make([]float64, len(ys))
	for i, y := range ys {
		sq[i] = y * y
	}
	inner, err := rebuildLike(shape, xs, sq)
	if err != nil {
		return nil, err
	}
	return squaredWrapped{inner: inner}, nil
}

// splineInterp is a cubic spline through all knots, either natural (zero
// second derivative at the ends) or not-a-knot (matching third derivatives
// at the two end intervals).
type splineInterp struct {
	xs, ys []float64
	coefA  []float64
	coefB  []float64
}

func (s *splineInterp) At(x float64) (float64, error) {
	n := len(s.xs)
	if n == 0 {
		return 0, newErr("Interpolator.At", DomainError, "empty knot grid")
	}
	if n == 1 {
		return s.ys[0], nil
	}
	i := sort.SearchFloat64s(s.xs, x)
	switch {
	case i == 0:
		i = 1
	case i >= n:
		i = n - 1
	}
	x0, x1 := s.xs[i-1], s.xs[i]
	t := (x - x0) / (x1 - x0)
	y0, y1 := s.ys[i-1], s.ys[i]
	a, b := s.coefA[i-1], s.coefB[i-1]
	return (1-t)*y0 + t*y1 + t*(1-t)*(a*(1-t)+b*t), nil
}

func newSpline(xs, ys []float64, natural bool) (*splineInterp, error) {
	n := len(xs)
	if n < 2 {
		return nil, newErr("Build", ShapeError, "spline requires at least two knots")
	}
	mat := make([][]float64, n)
	b := make([]float64, n)
	for i := range mat {
		mat[i] = make([]float64, n)
	}
	for i := 1; i < n-1; i++ {
		mat[i][i-1] = 1.0 / (xs[i] - xs[i-1])
		mat[i][i+1] = 1.0 / (xs[i+1] - xs[i])
		mat[i][i] = 2 * (mat[i][i-1] + mat[i][i+1])
		b[i] = 3 * ((ys[i]-ys[i-1])/math.Pow(xs[i]-xs[i-1], 2) +
			(ys[i+1]-ys[i])/math.Pow(xs[i+1]-xs[i], 2))
	}

	if natural {
		mat[0][0] = 2.0 / (xs[1] - xs[0])
		mat[0][1] = 1.0 / (xs[1] - xs[0])
		b[0] = 3 * (ys[1]-ys[0])/math.Pow(xs[1]-xs[0], 2)

		mat[n-1][n-2] = 1.0 / (xs[n-1] - xs[n-2])
		mat[n-1][n-1] = 2.0 / (xs[n-1] - xs[n-2])
		b[n-1] = 3 * (ys[n-1]-ys[n-2])/math.Pow(xs[n-1]-xs[n-2], 2)
	} else {
		if n < 3 {
			return nil, newErr("Build", ShapeError, "not-a-knot spline requires at least three knots")
		}
		mat[0][0] = 1.0 / math.Pow(xs[1]-xs[0], 2)
		mat[0][2] = -1.0 / math.Pow(xs[2]-xs[1], 2)
		mat[0][1] = mat[0][0] + mat[0][2]
		b[0] = 2.0 * ((ys[1]-ys[0])/math.Pow(xs[1]-xs[0], 3) -
			(ys[2]-ys[1])/math.Pow(xs[2]-xs[1], 3))

		mat[n-1][n-3] = 1.0 / math.Pow(xs[n-2]-xs[n-3], 2)
		mat[n-1][n-1] = -1.0 / math.Pow(xs[n-1]-xs[n-2], 2)
		mat[n-1][n-2] = mat[n-1][n-3] + mat[n-1][n-1]
		b[n-1] = 2.0 * ((ys[n-2]-ys[n-3])/math.Pow(xs[n-2]-xs[n-3], 3) -
			(ys[n-1]-ys[n-2])/math.Pow(xs[n-1]-xs[n-2], 3))
	}

	k, err := solveLinearSystem(mat, b)
	if err != nil {
		return nil, newErr("Build", DomainError, "spline system is singular")
	}

	a := make([]float64, n-1)
	bb := make([]float64, n-1)
	for i := 1; i < n; i++ {
		a[i-1] = k[i-1]*(xs[i]-xs[i-1]) - (ys[i] - ys[i-1])
		bb[i-1] = -k[i]*(xs[i]-xs[i-1]) + (ys[i] - ys[i-1])
	}
	return &splineInterp{xs: xs, ys: ys, coefA: a, coefB: bb}, nil
}

// solveLinearSystem solves mat·x = b via Gaussian elimination with partial
// pivoting. n is small (one row per knot) so this plain approach is enough;
// there is no scipy/numpy equivalent to delegate to.
func solveLinearSystem(mat [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	a := make([][]float64, n)
	for i := range a {
		a[i] = append([]float64(nil), mat[i]...)
	}
	rhs := append([]float64(nil), b...)

	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-15 {
			return nil, newErr("solveLinearSystem", DomainError, "singular matrix")
		}
		a[col], a[pivot] = a[pivot], a[col]
		rhs[col], rhs[pivot] = rhs[pivot], rhs[col]

		for row := col + 1; row < n; row++ {
			factor := a[row][col] / a[col][col]
			for k := col; k < n; k++ {
				a[row][k] -= factor * a[col][k]
			}
			rhs[row] -= factor * rhs[col]
		}
	}

	x := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := rhs[row]
		for k := row + 1; k < n; k++ {
			sum -= a[row][k] * x[k]
		}
		x[row] = sum / a[row][row]
	}
	return x, nil
}
