package overlay

// Affine matrices are stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, p Vec2) Vec2 {
	return Vec2{m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]}
}

// translateAffine returns m followed by a translation of (x, y) in m's space.
func translateAffine(m [6]float64, x, y float64) [6]float64 {
	return multiplyAffine(m, [6]float64{1, 0, 0, 1, x, y})
}

// transformStack is the push/pop transform stack behind a Canvas.
// The zero value starts at the identity.
type transformStack struct {
	current [6]float64
	saved   [][6]float64
	init    bool
}

func (s *transformStack) top() [6]float64 {
	if !s.init {
		return identityTransform
	}
	return s.current
}

func (s *transformStack) push() {
	s.saved = append(s.saved, s.top())
}

func (s *transformStack) pop() {
	if len(s.saved) == 0 {
		panic("overlay: PopTransform without matching PushTransform")
	}
	s.current = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
	s.init = true
}

func (s *transformStack) translate(x, y float64) {
	s.current = translateAffine(s.top(), x, y)
	s.init = true
}

func (s *transformStack) depth() int {
	return len(s.saved)
}

func (s *transformStack) reset() {
	s.current = identityTransform
	s.saved = s.saved[:0]
	s.init = true
}
