package scene

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/taigrr/prism/pkg/geometry"
	"github.com/taigrr/prism/pkg/lighting"
	"github.com/taigrr/prism/pkg/math3d"
)

// ErrUnknownScene is returned by Lookup for a name with no preset.
var ErrUnknownScene = errors.New("unknown scene")

// View is the camera placement a preset was composed for.
type View struct {
	Location math3d.Vec3
	Forward  math3d.Vec3
	Up       math3d.Vec3
	Width    float64
	Height   float64
	Distance float64
	// Roll turns the camera about its forward axis, Pitch about its right axis.
	// Both are in degrees.
	Roll  float64
	Pitch float64
	// Focal and Aperture are used when depth of field is enabled.
	Focal    float64
	Aperture float64
}

// Preset is a named scene constructor.
type Preset struct {
	Name        string
	Description string
	Build       func() (*Scene, View, error)
}

var presets = []Preset{
	{Name: "spheres", Description: "pyramid of spheres, two trees and a mirror", Build: Spheres},
	{Name: "forest", Description: "200 randomly placed trees, a BVH stress scene", Build: Forest},
	{Name: "triangles", Description: "two triangles and a glass sphere under a directional light", Build: Triangles},
	{Name: "columns", Description: "capped cylinders around an endless tube", Build: Columns},
}

// Presets returns every preset scene in display order.
func Presets() []Preset {
	return slices.Clone(presets)
}

// Lookup finds a preset by case-insensitive name.
func Lookup(name string) (Preset, error) {
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("lookup %q: %w", name, ErrUnknownScene)
}

// builder adds shapes to a scene and keeps the first construction error,
// so presets can be written as a flat list of calls.
type builder struct {
	scene *Scene
	err   error
}

func (b *builder) add(g geometry.Geometry, err error) {
	if b.err != nil {
		return
	}
	if err != nil {
		b.err = fmt.Errorf("build %s: %w", b.scene.Name, err)
		return
	}
	b.scene.Add(g)
}

func (b *builder) sphere(center math3d.Vec3, radius float64, s geometry.Surface) {
	g, err := geometry.NewSphere(center, radius, s)
	b.add(g, err)
}

func (b *builder) plane(point, normal math3d.Vec3, s geometry.Surface) {
	g, err := geometry.NewPlane(point, normal, s)
	b.add(g, err)
}

func (b *builder) triangle(p1, p2, p3 math3d.Vec3, s geometry.Surface) {
	g, err := geometry.NewTriangle(p1, p2, p3, s)
	b.add(g, err)
}

func (b *builder) light(l lighting.LightSource, err error) {
	if b.err != nil {
		return
	}
	if err != nil {
		b.err = fmt.Errorf("build %s: %w", b.scene.Name, err)
		return
	}
	b.scene.AddLight(l)
}

func surface(emission math3d.Color, kd, ks float64, shininess int, kt, kr float64) geometry.Surface {
	return geometry.Surface{
		Emission: emission,
		Material: geometry.Material{
			KD:        math3d.Gray(kd),
			KS:        math3d.Gray(ks),
			KT:        math3d.Gray(kt),
			KR:        math3d.Gray(kr),
			Shininess: shininess,
		},
	}
}

var (
	red   = math3d.RGB(255, 0, 0)
	green = math3d.RGB(0, 255, 0)
	blue  = math3d.RGB(0, 0, 255)
	bark  = math3d.RGB(83, 49, 24)
)

// ground adds the floor and two back walls shared by the outdoor presets.
// depth and side place the walls along -y and -x.
func (b *builder) ground(depth, side float64) {
	b.plane(math3d.V3(0, 0, -30), math3d.V3(0, 0, 1), surface(math3d.RGB(47, 79, 79), 0.8, 0.2, 30, 0, 0))
	b.plane(math3d.V3(0, -depth, 0), math3d.V3(0, 1, 0), surface(math3d.RGB(128, 128, 128), 0.8, 0.2, 30, 0, 0))
	b.plane(math3d.V3(-side, 0, 0), math3d.V3(1, 0, 0), surface(math3d.RGB(10, 100, 150), 0.8, 0.2, 30, 0, 0))
}

// outdoorLights adds a white spot from above and a dim blue fill light.
func (b *builder) outdoorLights() {
	b.scene.WithAmbient(lighting.NewAmbientLight(math3d.White, math3d.Gray(0.02)))
	b.light(lighting.NewSpotLight(math3d.White, math3d.V3(200, 200, 200), math3d.V3(-1, -1, -1),
		lighting.WithKL(4e-4), lighting.WithKQ(2e-6)))
	b.light(lighting.NewPointLight(math3d.RGB(50, 50, 100), math3d.V3(-100, -100, 200),
		lighting.WithKL(4e-4), lighting.WithKQ(2e-5)))
}

// tree is a trunk of eight stacked spheres under a three-sided green pyramid.
// translucentFace gives one pyramid face a little transparency.
func (b *builder) tree(x, y float64, translucentFace bool) {
	const (
		trunkRadius = 20.0
		baseOffset  = 20.0
		crownHeight = 60.0
	)
	trunk := surface(bark, 0.4, 0.3, 100, 0.1, 0.1)
	for i := range 8 {
		b.sphere(math3d.V3(x, y, -30+trunkRadius+20*float64(i)), trunkRadius, trunk)
	}

	topZ := -32 + trunkRadius + 20*8
	base1 := math3d.V3(x-baseOffset, y-baseOffset, topZ)
	base2 := math3d.V3(x+baseOffset, y-baseOffset, topZ)
	base3 := math3d.V3(x, y+baseOffset, topZ)
	apex := math3d.V3(x, y, topZ+crownHeight)

	leaves := surface(green, 0.5, 0.5, 100, 0, 0)
	middle := leaves
	if translucentFace {
		middle = surface(green, 0.5, 0.5, 100, 0.2, 0)
	}
	b.triangle(base1, base2, apex, leaves)
	b.triangle(base2, base3, apex, middle)
	b.triangle(base3, base1, apex, leaves)
}

// Spheres builds a four-layer pyramid of spheres next to two trees, with a
// mirror triangle on the side wall.
func Spheres() (*Scene, View, error) {
	b := &builder{scene: New("spheres")}
	b.ground(700, 1000)

	const (
		radius     = 15.0
		spacing    = 2 * radius
		heightStep = 25.0
	)
	layers := []struct {
		size  int
		color math3d.Color
	}{
		{4, blue},
		{3, red},
		{2, green},
		{1, blue},
	}
	for level, layer := range layers {
		s := surface(layer.color, 0.4, 0.3, 100, 0.1, 0.1)
		if layer.size == 1 {
			s = surface(layer.color, 0.5, 0.5, 30, 0.1, 0.1)
		}
		offset := float64(layer.size-1) / 2
		z := -30 + radius + heightStep*float64(level)
		for i := range layer.size {
			for j := range layer.size {
				center := math3d.V3((float64(i)-offset)*spacing, (float64(j)-offset)*spacing, z)
				b.sphere(center, radius, s)
			}
		}
	}

	b.tree(-500, 100, false)
	b.tree(-410, -300, true)

	mirror := geometry.Surface{Material: geometry.Material{KR: math3d.White}}
	b.triangle(math3d.V3(-999, -500, 200), math3d.V3(-999, 150, 200), math3d.V3(-999, -200, -500), mirror)

	b.outdoorLights()
	if b.err != nil {
		return nil, View{}, b.err
	}

	return b.scene, View{
		Location: math3d.V3(0, -400, 100),
		Forward:  math3d.V3(0, 1, 0),
		Up:       math3d.V3(0, 0, 1),
		Width:    300,
		Height:   300,
		Distance: 400,
		Roll:     15,
		Focal:    400,
		Aperture: 10,
	}, nil
}

// ForestSeed is the seed Forest places its trees with.
const ForestSeed = 42

// Forest scatters 200 trees over the ground. The layout is fixed by ForestSeed.
func Forest() (*Scene, View, error) {
	b := &builder{scene: New("forest")}
	b.ground(1000, 2000)

	rng := rand.New(rand.NewPCG(ForestSeed, ForestSeed))
	for range 200 {
		x := rng.Float64()*900 - 700
		y := rng.Float64()*900 - 700
		b.tree(x, y, true)
	}

	b.outdoorLights()
	if b.err != nil {
		return nil, View{}, b.err
	}

	return b.scene, View{
		Location: math3d.V3(0, -200, 1500),
		Forward:  math3d.V3(0, 0.8, -0.6),
		Up:       math3d.V3(0, 0.6, 0.8),
		Width:    300,
		Height:   300,
		Distance: 2000,
		Roll:     10,
		Pitch:    -5,
		Focal:    2000,
		Aperture: 20,
	}, nil
}

// Triangles places a transparent sphere in front of two reflective triangles.
func Triangles() (*Scene, View, error) {
	b := &builder{scene: New("triangles")}
	b.scene.WithAmbient(lighting.NewAmbientLight(math3d.RGB(255, 191, 191), math3d.Gray(0.05)))

	wall := surface(math3d.Black, 0.5, 0.5, 60, 0, 0.3)
	b.triangle(math3d.V3(-150, -150, -115), math3d.V3(150, -150, -135), math3d.V3(75, 75, -150), wall)
	b.triangle(math3d.V3(-150, -150, -115), math3d.V3(-70, 70, -140), math3d.V3(75, 75, -150), wall)
	b.sphere(math3d.V3(60, 50, -50), 30, surface(math3d.RGB(0, 0, 100), 0.2, 0.2, 30, 0.6, 0))

	b.light(lighting.NewDirectionalLight(math3d.Color{R: 2.75, G: 1.6, B: 1.6}, math3d.V3(0, 0, -1)))
	if b.err != nil {
		return nil, View{}, b.err
	}

	return b.scene, View{
		Location: math3d.V3(0, 0, 1000),
		Forward:  math3d.V3(0, 0, -1),
		Up:       math3d.V3(0, 1, 0),
		Width:    200,
		Height:   200,
		Distance: 1000,
		Focal:    1050,
		Aperture: 8,
	}, nil
}

// Columns rings an endless glass tube with capped marble cylinders.
func Columns() (*Scene, View, error) {
	b := &builder{scene: New("columns")}
	b.scene.WithBackground(math3d.RGB(20, 20, 35))
	b.scene.WithAmbient(lighting.NewAmbientLight(math3d.White, math3d.Gray(0.05)))

	b.plane(math3d.V3(0, 0, 0), math3d.V3(0, 0, 1), surface(math3d.RGB(40, 40, 40), 0.6, 0.3, 50, 0, 0.4))

	up := math3d.V3(0, 0, 1)
	marble := surface(math3d.RGB(90, 80, 70), 0.6, 0.4, 80, 0, 0)
	const ring = 6
	for i := range ring {
		angle := 2 * math.Pi * float64(i) / ring
		base := math3d.Rotate(up, angle).MulVec3(math3d.V3(120, 0, 0))
		axis, err := math3d.NewRay(base, up)
		if err != nil {
			return nil, View{}, fmt.Errorf("build columns: %w", err)
		}
		c, err := geometry.NewCylinder(axis, 15, 80+20*float64(i%3), marble)
		b.add(c, err)
	}

	core, err := math3d.NewRay(math3d.V3(0, 0, 0), up)
	if err != nil {
		return nil, View{}, fmt.Errorf("build columns: %w", err)
	}
	tube, err := geometry.NewTube(core, 25, surface(math3d.RGB(0, 40, 60), 0.2, 0.6, 120, 0.5, 0.2))
	b.add(tube, err)

	b.light(lighting.NewPointLight(math3d.RGB(255, 230, 200), math3d.V3(150, -200, 300),
		lighting.WithKL(1e-4), lighting.WithKQ(5e-6)))
	b.light(lighting.NewSpotLight(math3d.RGB(120, 160, 255), math3d.V3(-200, 100, 250), math3d.V3(1, -0.5, -1),
		lighting.WithKL(2e-4), lighting.WithNarrowness(4)))
	if b.err != nil {
		return nil, View{}, b.err
	}

	return b.scene, View{
		Location: math3d.V3(0, -500, 150),
		Forward:  math3d.V3(0, 1, 0),
		Up:       math3d.V3(0, 0, 1),
		Width:    300,
		Height:   200,
		Distance: 350,
		Pitch:    -10,
		Focal:    500,
		Aperture: 6,
	}, nil
}
