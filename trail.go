package sky

// Trail is a bounded record of past positions. Once full, adding a point drops the
// oldest one.
type Trail struct {
	points []SkyPoint
	start  int
	n      int
}

// NewTrail returns an empty trail holding up to capacity points (at least one).
func NewTrail(capacity int) *Trail {
	if capacity < 1 {
		capacity = 1
	}
	return &Trail{points: make([]SkyPoint, capacity)}
}

// Add appends a point.
func (t *Trail) Add(p SkyPoint) {
	c := len(t.points)
	if t.n < c {
		t.points[(t.start+t.n)%c] = p
		t.n++
		return
	}
	t.points[t.start] = p
	t.start = (t.start + 1) % c
}

// Len returns the number of points held.
func (t *Trail) Len() int { return t.n }

// Cap returns the maximum number of points.
func (t *Trail) Cap() int { return len(t.points) }

// Points returns a copy of the points, oldest first.
func (t *Trail) Points() []SkyPoint {
	out := make([]SkyPoint, t.n)
	for i := range out {
		out[i] = t.points[(t.start+i)%len(t.points)]
	}
	return out
}

// Last returns the most recent point, and false when the trail is empty.
func (t *Trail) Last() (SkyPoint, bool) {
	if t.n == 0 {
		return SkyPoint{}, false
	}
	return t.points[(t.start+t.n-1)%len(t.points)], true
}

// Clear empties the trail.
func (t *Trail) Clear() {
	t.start, t.n = 0, 0
}
