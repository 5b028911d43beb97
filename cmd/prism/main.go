// prism - Whitted-style ray tracer
// Render preset scenes or GLB models to PNG, optionally previewing the result
// in the terminal.
//
// Usage:
//
//	prism render --scene spheres --out spheres.png --preview
//	prism render --model teapot.glb --width 400 --height 300 --dof
//	prism scenes
package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "prism",
		Short: "Recursive ray tracer for spheres, planes, triangles and meshes",
		Long: "prism traces scenes made of spheres, planes, triangles, tubes, cylinders and GLB meshes " +
			"with Phong shading, shadows, reflection, transparency and optional depth of field.",
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCmd(), newScenesCmd())
	return root
}

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}
