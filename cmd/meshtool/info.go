package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshview/pkg/analysis"
	"github.com/philipparndt/meshview/pkg/mesh"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about an OBJ file",
	Long:  "Show vertex and face counts, centroid, bounding radius and box, surface area, volume and edge statistics.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	m, err := mesh.Load(filename)
	if err != nil {
		return err
	}

	result := analysis.AnalyzeMesh(m)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "OBJ File Information")
	fmt.Fprintln(out, "====================")
	fmt.Fprintf(out, "File: %s\n\n", filename)

	fmt.Fprintln(out, "Mesh Statistics:")
	fmt.Fprintf(out, "  Vertices: %d\n", result.VertexCount)
	fmt.Fprintf(out, "  Faces: %d\n", result.TriangleCount)
	fmt.Fprintf(out, "  Edges: %d\n", result.EdgeCount)
	fmt.Fprintf(out, "  Boundary Edges: %d\n", result.BoundaryEdges)
	fmt.Fprintf(out, "  Closed: %t\n", result.Closed())
	fmt.Fprintf(out, "  Surface Area: %.6f square units\n", result.SurfaceArea)
	fmt.Fprintf(out, "  Volume: %.6f cubic units\n\n", result.Volume)

	fmt.Fprintln(out, "Framing:")
	fmt.Fprintf(out, "  Centroid: %s\n", analysis.FormatVector(result.Centroid))
	fmt.Fprintf(out, "  Bounding Radius: %.6f units\n\n", result.BoundingRadius)

	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Fprintf(out, "  Size: %s\n", analysis.FormatVector(result.Dimensions))
	fmt.Fprintf(out, "  Diagonal: %.6f units\n\n", result.BoundingBox.Diagonal())

	fmt.Fprintln(out, "Edge Lengths:")
	fmt.Fprintf(out, "  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Fprintf(out, "  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Fprintf(out, "  Average: %.6f units\n", result.AvgEdgeLength)
	return nil
}
