package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/taigrr/prism/pkg/geometry"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/models"
	"github.com/taigrr/prism/pkg/render"
	"github.com/taigrr/prism/pkg/scene"
)

type renderFlags struct {
	scene      string
	model      string
	width      int
	height     int
	out        string
	threads    int
	bvh        string
	dof        bool
	focal      float64
	aperture   float64
	samples    int
	seed       uint64
	maxLevel   int
	progress   time.Duration
	background string
	preview    bool
}

func newRenderCmd() *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scene to a PNG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.scene, "scene", "s", "spheres", "built-in scene to render (see 'prism scenes')")
	flags.StringVarP(&f.model, "model", "m", "", "GLB or GLTF model to render instead of a built-in scene")
	flags.IntVar(&f.width, "width", 800, "image width in pixels")
	flags.IntVar(&f.height, "height", 800, "image height in pixels")
	flags.StringVarP(&f.out, "out", "o", "", "output PNG path (default <scene>.png)")
	flags.IntVarP(&f.threads, "threads", "t", render.AutoThreads, "worker count: 0 sequential, -1 automatic")
	flags.StringVar(&f.bvh, "bvh", "sorted", "bounding volume hierarchy: sorted, median or none")
	flags.BoolVar(&f.dof, "dof", false, "enable depth of field")
	flags.Float64Var(&f.focal, "focal", 0, "focal length for depth of field (default from scene)")
	flags.Float64Var(&f.aperture, "aperture", 0, "lens aperture diameter (default from scene)")
	flags.IntVar(&f.samples, "samples", 16, "lens samples per pixel with depth of field")
	flags.Uint64Var(&f.seed, "seed", 1, "seed for lens sampling")
	flags.IntVar(&f.maxLevel, "max-level", render.DefaultTracerConfig().MaxLevel, "maximum recursion level")
	flags.DurationVar(&f.progress, "progress", time.Second, "progress report interval, 0 to disable")
	flags.StringVar(&f.background, "background", "", "background color as #rrggbb (default from scene)")
	flags.BoolVarP(&f.preview, "preview", "p", false, "show the image in the terminal when done")
	cmd.MarkFlagsMutuallyExclusive("scene", "model")

	return cmd
}

func runRender(cmd *cobra.Command, f renderFlags) error {
	logger := render.NewConsoleLogger(cmd.ErrOrStderr())

	s, view, err := loadScene(f, logger)
	if err != nil {
		return err
	}

	if f.background != "" {
		bg, err := math3d.ParseHex(f.background)
		if err != nil {
			return err
		}
		s.WithBackground(bg)
	}

	switch strings.ToLower(f.bvh) {
	case "none":
	case geometry.SortedMerge.String():
		logBVH(logger, s.Accelerate(geometry.SortedMerge))
	case geometry.MedianSplit.String():
		logBVH(logger, s.Accelerate(geometry.MedianSplit))
	default:
		return fmt.Errorf("unknown bvh strategy %q (use sorted, median or none)", f.bvh)
	}

	if f.width <= 0 || f.height <= 0 {
		return fmt.Errorf("image size %dx%d must be positive", f.width, f.height)
	}

	cfg := render.Config{
		Location: view.Location,
		Forward:  view.Forward,
		Up:       view.Up,
		Width:    view.Width,
		// Keep pixels square whatever the image aspect.
		Height:   view.Width * float64(f.height) / float64(f.width),
		Distance: view.Distance,
		Roll:     view.Roll,
		Pitch:    view.Pitch,
		DepthOfField: render.DepthOfField{
			Enabled:     f.dof,
			FocalLength: view.Focal,
			Aperture:    view.Aperture,
			Samples:     f.samples,
		},
		Threads:          f.threads,
		ProgressInterval: f.progress,
	}
	if cmd.Flags().Changed("focal") {
		cfg.DepthOfField.FocalLength = f.focal
	}
	if cmd.Flags().Changed("aperture") {
		cfg.DepthOfField.Aperture = f.aperture
	}

	camera, err := render.NewCamera(cfg)
	if err != nil {
		return err
	}

	tracerCfg := render.DefaultTracerConfig()
	tracerCfg.MaxLevel = f.maxLevel
	tracer, err := render.NewTracer(s, tracerCfg)
	if err != nil {
		return err
	}

	r, err := render.NewRenderer(camera, tracer, f.width, f.height, render.Options{Seed: f.seed, Logger: logger})
	if err != nil {
		return err
	}

	logger.Printf("render: %s at %dx%d, %d workers, %d samples per pixel",
		s.Name, f.width, f.height, r.Workers(), camera.Samples())

	fb := render.NewFramebuffer(f.width, f.height)
	if err := r.Render(cmd.Context(), fb); err != nil {
		return fmt.Errorf("render %s: %w", s.Name, err)
	}

	out := f.out
	if out == "" {
		out = s.Name + ".png"
	}
	if err := fb.SavePNG(out); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)

	if f.preview {
		return showPreview(cmd.Context(), fb)
	}
	return nil
}

func loadScene(f renderFlags, logger render.Logger) (*scene.Scene, scene.View, error) {
	if f.model == "" {
		p, err := scene.Lookup(f.scene)
		if err != nil {
			return nil, scene.View{}, err
		}
		return p.Build()
	}

	mesh, err := models.LoadGLB(f.model)
	if err != nil {
		return nil, scene.View{}, err
	}
	mesh.Name = strings.TrimSuffix(filepath.Base(f.model), filepath.Ext(f.model))

	fallback := scene.SurfaceFromPBR(models.DefaultMaterial)
	s, view, stats, err := scene.Studio(mesh, fallback)
	if err != nil {
		return nil, scene.View{}, err
	}
	logger.Printf("model: %s, %d vertices, %d triangles (%d degenerate skipped)",
		mesh.Name, mesh.VertexCount(), stats.Added, stats.Skipped)
	return s, view, nil
}

func logBVH(logger render.Logger, bvh *geometry.BVH) {
	st := bvh.Stats()
	logger.Printf("bvh: %s, %d nodes, %d leaves, depth %d, %d unbounded",
		bvh.Strategy(), st.Nodes, st.Leaves, st.Depth, st.Unbounded)
}
