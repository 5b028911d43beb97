package scene

import (
	"fmt"
	"math"

	"github.com/taigrr/prism/pkg/geometry"
	"github.com/taigrr/prism/pkg/lighting"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/models"
)

// SurfaceFromPBR approximates a metallic-roughness material with the
// emission and coefficients of the Phong model. The base color tints both the
// emission and the diffuse term; smooth metals become mirrors and alpha
// below one becomes transparency.
func SurfaceFromPBR(m models.Material) geometry.Surface {
	base := math3d.Color{R: m.BaseColor[0], G: m.BaseColor[1], B: m.BaseColor[2]}
	emissive := math3d.Color{R: m.Emissive[0], G: m.Emissive[1], B: m.Emissive[2]}
	smooth := 1 - m.Roughness

	return geometry.Surface{
		Emission: base.Scale(0.15).Add(emissive),
		Material: geometry.Material{
			KD:        base.Scale(0.7 * (1 - m.Metallic*0.5)),
			KS:        math3d.Gray(0.1 + 0.5*smooth),
			KR:        math3d.Gray(0.6 * m.Metallic * smooth),
			KT:        math3d.Gray(1 - m.BaseColor[3]),
			Shininess: 4 + int(math.Round(smooth*smooth*196)),
		},
	}
}

// MeshStats reports how many faces of a mesh became triangles.
type MeshStats struct {
	Added   int
	Skipped int
}

// AddMesh converts every face of mesh into a triangle. Faces with a material
// use SurfaceFromPBR; faces without one use fallback. Degenerate faces are
// skipped.
func (s *Scene) AddMesh(mesh *models.Mesh, fallback geometry.Surface) (MeshStats, error) {
	var stats MeshStats
	if mesh == nil {
		return stats, fmt.Errorf("add mesh: nil mesh")
	}

	for i := range mesh.Faces {
		surface := fallback
		if mat := mesh.GetMaterial(mesh.GetFaceMaterial(i)); mat != nil {
			surface = SurfaceFromPBR(*mat)
		}
		v := mesh.Triangle(i)
		tr, err := geometry.NewTriangle(v[0], v[1], v[2], surface)
		if err != nil {
			stats.Skipped++
			continue
		}
		s.Add(tr)
		stats.Added++
	}
	return stats, nil
}

// studioSize is the largest extent a mesh is scaled to in Studio.
const studioSize = 200.0

// Studio places a copy of mesh on a reflective floor under a key and a fill
// light, scaled to fit the returned view.
func Studio(mesh *models.Mesh, fallback geometry.Surface) (*Scene, View, MeshStats, error) {
	if mesh == nil {
		return nil, View{}, MeshStats{}, fmt.Errorf("studio: nil mesh")
	}
	fitted := mesh.Clone()
	fitted.CalculateBounds()
	fitted.Fit(math3d.V3(0, 0, studioSize/2), studioSize)

	b := &builder{scene: New(mesh.Name)}
	b.scene.WithBackground(math3d.RGB(30, 30, 40))
	b.scene.WithAmbient(lighting.NewAmbientLight(math3d.White, math3d.Gray(0.05)))

	floorZ := fitted.BoundsMin.Z - 0.5
	b.plane(math3d.V3(0, 0, floorZ), math3d.V3(0, 0, 1), surface(math3d.RGB(35, 35, 45), 0.6, 0.2, 40, 0, 0.25))
	b.light(lighting.NewSpotLight(math3d.White, math3d.V3(250, -250, 400), math3d.V3(-1, 1, -1.4),
		lighting.WithKL(2e-4), lighting.WithKQ(1e-6)))
	b.light(lighting.NewPointLight(math3d.RGB(80, 90, 120), math3d.V3(-300, -150, 200),
		lighting.WithKL(3e-4)))
	if b.err != nil {
		return nil, View{}, MeshStats{}, b.err
	}

	stats, err := b.scene.AddMesh(fitted, fallback)
	if err != nil {
		return nil, View{}, stats, fmt.Errorf("studio: %w", err)
	}

	return b.scene, View{
		Location: math3d.V3(0, -600, studioSize/2),
		Forward:  math3d.V3(0, 1, 0),
		Up:       math3d.V3(0, 0, 1),
		Width:    300,
		Height:   300,
		Distance: 600,
		Focal:    600,
		Aperture: 8,
	}, stats, nil
}
