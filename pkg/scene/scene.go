// Package scene assembles geometries, lights and a background into the
// read-only bundle a tracer renders.
package scene

import (
	"github.com/taigrr/prism/pkg/geometry"
	"github.com/taigrr/prism/pkg/lighting"
	"github.com/taigrr/prism/pkg/math3d"
)

// Scene is built once and then only read during rendering.
type Scene struct {
	Name       string
	Background math3d.Color
	Ambient    lighting.AmbientLight
	// Geometries answers intersection queries. It is the flat list of added
	// shapes until Accelerate replaces it with a BVH.
	Geometries geometry.Intersectable
	Lights     []lighting.LightSource

	shapes *geometry.Geometries
}

// New creates an empty scene with a black background and no ambient light.
func New(name string) *Scene {
	shapes := geometry.NewGeometries()
	return &Scene{
		Name:       name,
		Background: math3d.Black,
		Ambient:    lighting.NoAmbient,
		Geometries: shapes,
		shapes:     shapes,
	}
}

// WithBackground sets the color of rays that hit nothing.
func (s *Scene) WithBackground(c math3d.Color) *Scene {
	s.Background = c
	return s
}

// WithAmbient sets the ambient light.
func (s *Scene) WithAmbient(a lighting.AmbientLight) *Scene {
	s.Ambient = a
	return s
}

// Add appends shapes. Shapes added after Accelerate are not part of the BVH
// until Accelerate is called again.
func (s *Scene) Add(g ...geometry.Geometry) *Scene {
	s.shapes.Add(g...)
	return s
}

// AddLight appends light sources.
func (s *Scene) AddLight(l ...lighting.LightSource) *Scene {
	s.Lights = append(s.Lights, l...)
	return s
}

// Shapes returns every shape added so far.
func (s *Scene) Shapes() []geometry.Geometry {
	return s.shapes.Items()
}

// Accelerate builds a BVH over the scene's shapes and routes intersection
// queries through it.
func (s *Scene) Accelerate(strategy geometry.BuildStrategy) *geometry.BVH {
	bvh := geometry.NewBVH(s.shapes.Items(), strategy)
	s.Geometries = bvh
	return bvh
}

// Flatten routes intersection queries back to the flat list of shapes.
func (s *Scene) Flatten() {
	s.Geometries = s.shapes
}
