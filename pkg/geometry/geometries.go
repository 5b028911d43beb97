package geometry

import "github.com/taigrr/prism/pkg/math3d"

// Geometries is a flat composite of shapes, intersected one by one.
type Geometries struct {
	items []Geometry
}

// NewGeometries creates a composite holding the given shapes.
func NewGeometries(items ...Geometry) *Geometries {
	g := &Geometries{}
	g.Add(items...)
	return g
}

// Add appends shapes to the composite.
func (g *Geometries) Add(items ...Geometry) {
	g.items = append(g.items, items...)
}

// Items returns the shapes in insertion order.
func (g *Geometries) Items() []Geometry { return g.items }

// Len returns the number of shapes.
func (g *Geometries) Len() int { return len(g.items) }

// Intersect returns the union of every shape's intersections.
func (g *Geometries) Intersect(ray math3d.Ray, maxDistance float64) []Intersection {
	var hits []Intersection
	for _, item := range g.items {
		hits = append(hits, item.Intersect(ray, maxDistance)...)
	}
	return hits
}
