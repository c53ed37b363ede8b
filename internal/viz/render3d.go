package viz

import (
	"math"
	"sort"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// rotateX, rotateY and rotateZ turn v about a single axis by a radians.
func rotateX(v Vec3, a float64) Vec3 {
	c, s := math.Cos(a), math.Sin(a)
	return Vec3{v.X, v.Y*c - v.Z*s, v.Y*s + v.Z*c}
}

func rotateY(v Vec3, a float64) Vec3 {
	c, s := math.Cos(a), math.Sin(a)
	return Vec3{v.X*c + v.Z*s, v.Y, -v.X*s + v.Z*c}
}

func rotateZ(v Vec3, a float64) Vec3 {
	c, s := math.Cos(a), math.Sin(a)
	return Vec3{v.X*c - v.Y*s, v.X*s + v.Y*c, v.Z}
}

// Orient applies an XYZ Euler rotation ([x, y, z] radians) to v. The
// combined matrix is Rx·Ry·Rz, so z is applied first.
func Orient(v Vec3, rot [3]float64) Vec3 {
	return rotateX(rotateY(rotateZ(v, rot[2]), rot[1]), rot[0])
}

// Camera is a fixed perspective viewpoint on the origin.
type Camera struct {
	Distance   float64
	RotX, RotY float64
	Zoom       float64
}

// NewCamera looks at the board slightly from above.
func NewCamera() *Camera {
	return &Camera{Distance: 8, RotX: 0.45, Zoom: 1.0}
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(4, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.25, c.Zoom/1.2) }

// Project converts world coordinates to sub-pixel screen coordinates.
// Returns x, y, depth, and visibility.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	rot := rotateY(rotateX(p, c.RotX), c.RotY).Scale(c.Zoom)
	if math.IsNaN(rot.Length()) || math.IsInf(rot.Length(), 0) || rot.Z >= c.Distance-0.1 {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)
	minDim := math.Min(float64(sw), float64(sh))
	pScale := minDim / 3.0
	sx := int(math.Round(rot.X*scale*pScale)) + sw/2
	sy := int(math.Round(-rot.Y*scale*pScale)) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End Vec3
}

type Wireframe struct{ Edges []Edge }

func (w *Wireframe) AddEdge(s, e Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }

// Rotated returns a copy of w with every vertex passed through Orient.
func (w *Wireframe) Rotated(rot [3]float64) *Wireframe {
	out := &Wireframe{Edges: make([]Edge, len(w.Edges))}
	for i, e := range w.Edges {
		out.Edges[i] = Edge{Orient(e.Start, rot), Orient(e.End, rot)}
	}
	return out
}

// BoardWireframe models the sensor board as a flat disc in the XZ plane
// with a pointer along +X and a stub along the +Y face normal.
func BoardWireframe(radius float64, segments int) *Wireframe {
	w := &Wireframe{}
	prev := Vec3{radius, 0, 0}
	for i := 1; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		next := Vec3{radius * math.Cos(a), 0, radius * math.Sin(a)}
		w.AddEdge(prev, next)
		prev = next
	}
	o := Vec3{}
	w.AddEdge(o, Vec3{radius * 1.3, 0, 0})
	w.AddEdge(o, Vec3{0, radius * 0.5, 0})
	return w
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws the wireframe far-to-near onto the canvas. Edges with an
// endpoint off screen are skipped.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	pw, ph := c.PixelSize()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, pw, ph)
		x2, y2, d2, v2 := cam.Project(e.End, pw, ph)
		if v1 && v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		c.DrawLine(e.x1, e.y1, e.x2, e.y2)
	}
}
