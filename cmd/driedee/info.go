package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/taigrr/driedee/pkg/engine"
	"github.com/taigrr/driedee/pkg/math3d"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display mesh statistics",
	Long:  "Show vertex and triangle counts, bounds, dimensions, surface area and materials of a mesh file or built-in shape.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func formatVector(v math3d.Vec3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}

func runInfo(cmd *cobra.Command, args []string) error {
	infoCfg := cfg
	infoCfg.Fit = false
	if len(args) == 1 {
		infoCfg.ObjectPath = args[0]
	}

	logger, closeLog, err := openLog(os.Stderr)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	mesh, err := engine.LoadMesh(infoCfg, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Mesh Information")
	fmt.Fprintln(out, "================")
	fmt.Fprintf(out, "Name: %s\n", mesh.Name)
	if infoCfg.ObjectPath != "" {
		fmt.Fprintf(out, "File: %s\n", infoCfg.ObjectPath)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Statistics:")
	fmt.Fprintf(out, "  Vertices: %d\n", mesh.VertexCount())
	fmt.Fprintf(out, "  Triangles: %d\n", mesh.TriangleCount())
	fmt.Fprintf(out, "  Surface Area: %.6f square units\n\n", mesh.SurfaceArea())

	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", formatVector(mesh.BoundsMin))
	fmt.Fprintf(out, "  Max: %s\n", formatVector(mesh.BoundsMax))
	fmt.Fprintf(out, "  Center: %s\n\n", formatVector(mesh.Center()))

	size := mesh.Size()
	fmt.Fprintln(out, "Dimensions:")
	fmt.Fprintf(out, "  Width (X): %.6f units\n", size.X)
	fmt.Fprintf(out, "  Height (Y): %.6f units\n", size.Y)
	fmt.Fprintf(out, "  Depth (Z): %.6f units\n", size.Z)
	fmt.Fprintf(out, "  Diagonal: %.6f units\n", size.Len())

	if mesh.MaterialCount() > 0 {
		fmt.Fprintln(out, "\nMaterials:")
		for _, m := range mesh.Materials {
			c := m.Color()
			fmt.Fprintf(out, "  %s: #%02x%02x%02x\n", m.Name, c.R, c.G, c.B)
		}
	}
	return nil
}
