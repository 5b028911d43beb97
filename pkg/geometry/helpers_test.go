package geometry

import (
	"cmp"
	"slices"
	"testing"

	"github.com/taigrr/prism/pkg/math3d"
)

const tolerance = 1e-9

func mustRay(t testing.TB, origin, dir math3d.Vec3) math3d.Ray {
	t.Helper()
	r, err := math3d.NewRay(origin, dir)
	if err != nil {
		t.Fatalf("NewRay(%v, %v): %v", origin, dir, err)
	}
	return r
}

// points returns the hit points ordered by distance from the ray origin.
func points(ray math3d.Ray, hits []Intersection) []math3d.Vec3 {
	pts := make([]math3d.Vec3, len(hits))
	for i, h := range hits {
		pts[i] = h.Point
	}
	slices.SortFunc(pts, func(a, b math3d.Vec3) int {
		return cmp.Compare(ray.Origin().DistanceSq(a), ray.Origin().DistanceSq(b))
	})
	return pts
}

func assertPoints(t *testing.T, ray math3d.Ray, hits []Intersection, want ...math3d.Vec3) {
	t.Helper()
	got := points(ray, hits)
	if len(got) != len(want) {
		t.Fatalf("got %d intersections %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if !got[i].ApproxEqual(want[i], 1e-6) {
			t.Errorf("intersection %d = %v, want %v", i, got[i], want[i])
		}
	}
}
