package render

import (
	"errors"
	"fmt"
	"testing"

	"github.com/taigrr/prism/pkg/geometry"
	"github.com/taigrr/prism/pkg/lighting"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/scene"
)

var (
	sphereEmission = math3d.Color{R: 0.2, G: 0.1, B: 0}
	ambient        = math3d.Gray(0.05)
	background     = math3d.Color{R: 0, G: 0, B: 0.3}
)

// shadeScene holds one sphere at (0,0,-5) lit head-on from +z, seen by a ray
// down -z from the origin. The hit point is (0,0,-4) with normal +z.
func shadeScene(t *testing.T, mat geometry.Material, occluders ...geometry.Geometry) *scene.Scene {
	t.Helper()
	s := scene.New("shade").
		WithBackground(background).
		WithAmbient(lighting.NewAmbientLight(math3d.White, ambient))

	sphere, err := geometry.NewSphere(math3d.V3(0, 0, -5), 1, geometry.Surface{Emission: sphereEmission, Material: mat})
	if err != nil {
		t.Fatal(err)
	}
	s.Add(sphere)
	s.Add(occluders...)

	light, err := lighting.NewDirectionalLight(math3d.White, math3d.V3(0, 0, -1))
	if err != nil {
		t.Fatal(err)
	}
	s.AddLight(light)
	return s
}

func occluder(t *testing.T, kt float64) geometry.Geometry {
	t.Helper()
	tr, err := geometry.NewTriangle(
		math3d.V3(-5, -5, 10), math3d.V3(5, -5, 10), math3d.V3(0, 5, 10),
		geometry.Surface{Material: geometry.Material{KT: math3d.Gray(kt)}},
	)
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func traceDown(t *testing.T, s *scene.Scene) math3d.Color {
	t.Helper()
	tracer, err := NewTracer(s, DefaultTracerConfig())
	if err != nil {
		t.Fatal(err)
	}
	ray, err := math3d.NewRay(math3d.Vec3{}, math3d.V3(0, 0, -1))
	if err != nil {
		t.Fatal(err)
	}
	return tracer.Trace(ray)
}

var matte = geometry.Material{KD: math3d.Gray(0.5), KS: math3d.Gray(0.25), Shininess: 10}

func TestTraceLocalOnly(t *testing.T) {
	// Diffuse 0.5·|n·l| = 0.5 and specular 0.25·1^10 under a white light.
	want := sphereEmission.Add(math3d.Gray(0.75)).Add(ambient)
	if got := traceDown(t, shadeScene(t, matte)); !got.ApproxEqual(want, tolerance) {
		t.Errorf("Trace = %v, want %v", got, want)
	}
}

func TestTraceMiss(t *testing.T) {
	tracer, err := NewTracer(shadeScene(t, matte), DefaultTracerConfig())
	if err != nil {
		t.Fatal(err)
	}
	ray, err := math3d.NewRay(math3d.Vec3{}, math3d.V3(0, 1, 0))
	if err != nil {
		t.Fatal(err)
	}
	if got := tracer.Trace(ray); got != background {
		t.Errorf("Trace = %v, want background %v", got, background)
	}
}

func TestTraceShadows(t *testing.T) {
	tests := []struct {
		name string
		kt   float64
		want math3d.Color
	}{
		{"opaque", 0, sphereEmission.Add(ambient)},
		{"half transparent", 0.5, sphereEmission.Add(math3d.Gray(0.375)).Add(ambient)},
		{"clear", 1, sphereEmission.Add(math3d.Gray(0.75)).Add(ambient)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := traceDown(t, shadeScene(t, matte, occluder(t, tt.kt)))
			if !got.ApproxEqual(tt.want, tolerance) {
				t.Errorf("Trace = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTraceReflectionMiss(t *testing.T) {
	// The reflected ray leaves along +z and sees only the background.
	mirror := matte
	mirror.KR = math3d.Gray(0.5)
	want := sphereEmission.Add(math3d.Gray(0.75)).Add(background.Scale(0.5)).Add(ambient)
	if got := traceDown(t, shadeScene(t, mirror)); !got.ApproxEqual(want, tolerance) {
		t.Errorf("Trace = %v, want %v", got, want)
	}
}

func TestTraceMaxLevel(t *testing.T) {
	mirror := matte
	mirror.KR = math3d.White
	s := shadeScene(t, mirror)

	cfg := DefaultTracerConfig()
	cfg.MaxLevel = 1
	tracer, err := NewTracer(s, cfg)
	if err != nil {
		t.Fatal(err)
	}
	ray, err := math3d.NewRay(math3d.Vec3{}, math3d.V3(0, 0, -1))
	if err != nil {
		t.Fatal(err)
	}

	want := sphereEmission.Add(math3d.Gray(0.75)).Add(ambient)
	if got := tracer.Trace(ray); !got.ApproxEqual(want, tolerance) {
		t.Errorf("level 1 Trace = %v, want local only %v", got, want)
	}
}

func TestNewTracerValidation(t *testing.T) {
	s := scene.New("empty")
	tests := []struct {
		name   string
		modify func(*TracerConfig)
	}{
		{"zero level", func(c *TracerConfig) { c.MaxLevel = 0 }},
		{"zero min k", func(c *TracerConfig) { c.MinK = 0 }},
		{"min k one", func(c *TracerConfig) { c.MinK = 1 }},
		{"negative epsilon", func(c *TracerConfig) { c.Epsilon = -1 }},
		{"zero bias", func(c *TracerConfig) { c.Bias = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTracerConfig()
			tt.modify(&cfg)
			if _, err := NewTracer(s, cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("NewTracer error = %v, want ErrInvalidConfig", err)
			}
		})
	}

	if _, err := NewTracer(nil, DefaultTracerConfig()); !errors.Is(err, ErrMissingField) {
		t.Errorf("NewTracer(nil) error = %v, want ErrMissingField", err)
	}
}

func traceWith(t *testing.T, s *scene.Scene, cfg TracerConfig) math3d.Color {
	t.Helper()
	tracer, err := NewTracer(s, cfg)
	if err != nil {
		t.Fatal(err)
	}
	ray, err := math3d.NewRay(math3d.Vec3{}, math3d.V3(0, 0, -1))
	if err != nil {
		t.Fatal(err)
	}
	return tracer.Trace(ray)
}

func mustAdd(t *testing.T, s *scene.Scene, g geometry.Geometry, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
	s.Add(g)
}

func TestTraceRefraction(t *testing.T) {
	s := scene.New("glass")
	red := math3d.Color{R: 1}

	g, err := geometry.NewSphere(math3d.V3(0, 0, -5), 1, geometry.Surface{
		Material: geometry.Material{KT: math3d.Gray(0.5)},
	})
	mustAdd(t, s, g, err)
	g, err = geometry.NewSphere(math3d.V3(0, 0, -10), 1, geometry.Surface{Emission: red})
	mustAdd(t, s, g, err)

	// Both surfaces of the glass sphere pass half the light.
	want := red.Scale(0.25)
	if got := traceWith(t, s, DefaultTracerConfig()); !got.ApproxEqual(want, tolerance) {
		t.Errorf("Trace = %v, want %v", got, want)
	}
}

func TestTraceNegligibleReflection(t *testing.T) {
	mirror := matte
	mirror.KR = math3d.Gray(0.0005)

	// The reflected branch is below MinK, so not even the background leaks in.
	want := sphereEmission.Add(math3d.Gray(0.75)).Add(ambient)
	if got := traceDown(t, shadeScene(t, mirror)); !got.ApproxEqual(want, tolerance) {
		t.Errorf("Trace = %v, want %v", got, want)
	}
}

// dimMirrorScene places a faint, partly transparent mirror at z=-4 that
// reflects the underside of a matte sphere at z=5. The only light shines up
// through the mirror, so the sphere is lit through the mirror's kT of 0.3.
func dimMirrorScene(t *testing.T, kr float64) *scene.Scene {
	t.Helper()
	s := scene.New("dim mirror")

	mirror, err := geometry.NewTriangle(
		math3d.V3(-10, -10, -4), math3d.V3(10, -10, -4), math3d.V3(0, 10, -4),
		geometry.Surface{Material: geometry.Material{KR: math3d.Gray(kr), KT: math3d.Gray(0.3)}},
	)
	mustAdd(t, s, mirror, err)
	ball, err := geometry.NewSphere(math3d.V3(0, 0, 5), 1, geometry.Surface{
		Material: geometry.Material{KD: math3d.White, Shininess: 1},
	})
	mustAdd(t, s, ball, err)

	light, err := lighting.NewDirectionalLight(math3d.White, math3d.V3(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	s.AddLight(light)
	return s
}

func TestTraceNegligibleLight(t *testing.T) {
	tests := []struct {
		name string
		kr   float64
		want math3d.Color
	}{
		// k·ktr = 0.002·0.3 is below MinK, so the light is skipped.
		{"below min k", 0.002, math3d.Black},
		// k·ktr = 0.01·0.3 passes: diffuse 1·0.3, reflected at 0.01.
		{"above min k", 0.01, math3d.Gray(0.003)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := traceWith(t, dimMirrorScene(t, tt.kr), DefaultTracerConfig())
			if !got.ApproxEqual(tt.want, tolerance) {
				t.Errorf("Trace = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTraceFacingMirrors(t *testing.T) {
	s := scene.New("mirrors")
	wall := geometry.Surface{
		Emission: math3d.Gray(0.1),
		Material: geometry.Material{KR: math3d.White},
	}
	g, err := geometry.NewPlane(math3d.V3(0, 0, -5), math3d.V3(0, 0, 1), wall)
	mustAdd(t, s, g, err)
	g, err = geometry.NewPlane(math3d.V3(0, 0, 5), math3d.V3(0, 0, -1), wall)
	mustAdd(t, s, g, err)

	// Every bounce adds one wall's emission until MaxLevel ends the path.
	for _, level := range []int{1, 3, 10} {
		t.Run(fmt.Sprintf("level %d", level), func(t *testing.T) {
			cfg := DefaultTracerConfig()
			cfg.MaxLevel = level
			got := traceWith(t, s, cfg)
			if want := math3d.Gray(0.1 * float64(level)); !got.ApproxEqual(want, 1e-12) {
				t.Errorf("Trace = %v, want %v", got, want)
			}
		})
	}
}
