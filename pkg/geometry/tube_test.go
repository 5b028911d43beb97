package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/prism/pkg/math3d"
)

func TestNewTubeValidation(t *testing.T) {
	axis := mustRay(t, math3d.V3(0, 0, 0), math3d.V3(0, 1, 0))
	if _, err := NewTube(axis, 0, Surface{}); !errors.Is(err, ErrDegenerate) {
		t.Errorf("zero radius: got %v, want ErrDegenerate", err)
	}
	if _, err := NewTube(math3d.Ray{}, 1, Surface{}); !errors.Is(err, math3d.ErrZeroVector) {
		t.Errorf("zero axis: got %v, want ErrZeroVector", err)
	}
	if _, err := NewCylinder(axis, 1, -2, Surface{}); !errors.Is(err, ErrDegenerate) {
		t.Errorf("negative height: got %v, want ErrDegenerate", err)
	}
}

func TestTubeNormal(t *testing.T) {
	axis := mustRay(t, math3d.V3(0, 0, 0), math3d.V3(0, 1, 0))
	tube, err := NewTube(axis, 1, Surface{})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		p    math3d.Vec3
		want math3d.Vec3
	}{
		{math3d.V3(1, 2, 0), math3d.V3(1, 0, 0)},
		{math3d.V3(1, 0, 0), math3d.V3(1, 0, 0)},
		{math3d.V3(0, -3, -1), math3d.V3(0, 0, -1)},
	}
	for _, tc := range tests {
		if got := tube.Normal(tc.p); !got.ApproxEqual(tc.want, tolerance) {
			t.Errorf("Normal(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestTubeIntersect(t *testing.T) {
	axis := mustRay(t, math3d.V3(0, 0, 0), math3d.V3(0, 1, 0))
	tube, err := NewTube(axis, 1, Surface{})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		origin math3d.Vec3
		dir    math3d.Vec3
		want   []math3d.Vec3
	}{
		{"crosses", math3d.V3(-2, 5, 0), math3d.V3(1, 0, 0), []math3d.Vec3{{X: -1, Y: 5, Z: 0}, {X: 1, Y: 5, Z: 0}}},
		{"from inside", math3d.V3(0, -7, 0), math3d.V3(0, 0, 1), []math3d.Vec3{{X: 0, Y: -7, Z: 1}}},
		{"parallel to the axis", math3d.V3(0.5, 0, 0), math3d.V3(0, 1, 0), nil},
		{"tangent", math3d.V3(-2, 0, 1), math3d.V3(1, 0, 0), nil},
		{"pointing away", math3d.V3(3, 0, 0), math3d.V3(1, 0, 0), nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ray := mustRay(t, tc.origin, tc.dir)
			assertPoints(t, ray, tube.Intersect(ray, math.Inf(1)), tc.want...)
		})
	}
}

func TestCylinderNormal(t *testing.T) {
	axis := mustRay(t, math3d.V3(0, 0, 0), math3d.V3(0, 0, 1))
	cyl, err := NewCylinder(axis, 1, 2, Surface{})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		p    math3d.Vec3
		want math3d.Vec3
	}{
		{"side", math3d.V3(1, 0, 1), math3d.V3(1, 0, 0)},
		{"top cap", math3d.V3(0.5, 0.5, 2), math3d.V3(0, 0, 1)},
		{"bottom cap", math3d.V3(-0.5, -0.5, 0), math3d.V3(0, 0, -1)},
		{"top edge", math3d.V3(1, 0, 2), math3d.V3(0, 0, 1)},
		{"bottom edge", math3d.V3(1, 0, 0), math3d.V3(0, 0, -1)},
		{"top center", math3d.V3(0, 0, 2), math3d.V3(0, 0, 1)},
		{"bottom center", math3d.V3(0, 0, 0), math3d.V3(0, 0, -1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := cyl.Normal(tc.p); !got.ApproxEqual(tc.want, tolerance) {
				t.Errorf("Normal(%v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}

func TestCylinderIntersect(t *testing.T) {
	axis := mustRay(t, math3d.V3(0, 0, 0), math3d.V3(0, 0, 1))
	cyl, err := NewCylinder(axis, 1, 2, Surface{})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		origin math3d.Vec3
		dir    math3d.Vec3
		want   []math3d.Vec3
	}{
		{"through the side", math3d.V3(-2, 0, 1), math3d.V3(1, 0, 0), []math3d.Vec3{{X: -1, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}}},
		{"above the top", math3d.V3(-2, 0, 3), math3d.V3(1, 0, 0), nil},
		{"through both caps", math3d.V3(0.5, 0, -1), math3d.V3(0, 0, 1), []math3d.Vec3{{X: 0.5, Y: 0, Z: 0}, {X: 0.5, Y: 0, Z: 2}}},
		{"from inside to the side", math3d.V3(0, 0, 1), math3d.V3(1, 0, 0), []math3d.Vec3{{X: 1, Y: 0, Z: 1}}},
		{"from inside to the top", math3d.V3(0, 0, 1), math3d.V3(0, 0, 1), []math3d.Vec3{{X: 0, Y: 0, Z: 2}}},
		{"side then cap", math3d.V3(-2, 0, 0), math3d.V3(1, 0, 1), []math3d.Vec3{{X: -1, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 2}}},
		{"beside the caps", math3d.V3(2, 0, -1), math3d.V3(0, 0, 1), nil},
		{"pointing away", math3d.V3(3, 0, 1), math3d.V3(1, 0, 0), nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ray := mustRay(t, tc.origin, tc.dir)
			assertPoints(t, ray, cyl.Intersect(ray, math.Inf(1)), tc.want...)
		})
	}
}

func TestCylinderBounds(t *testing.T) {
	axis := mustRay(t, math3d.V3(1, 1, 1), math3d.V3(0, 0, 1))
	cyl, err := NewCylinder(axis, 1, 2, Surface{})
	if err != nil {
		t.Fatal(err)
	}
	box, ok := cyl.Bounds()
	if !ok {
		t.Fatal("cylinder reported as unbounded")
	}
	if !box.Min.ApproxEqual(math3d.V3(0, 0, 1), tolerance) || !box.Max.ApproxEqual(math3d.V3(2, 2, 3), tolerance) {
		t.Errorf("bounds = %+v", box)
	}
}
