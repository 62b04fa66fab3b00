package obj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/philipparndt/meshview/pkg/geometry"
)

// Save writes positions and triangles to an OBJ file.
// Vertices come first, then faces, both in input order.
func Save(filename string, positions []geometry.Vector3, triangles [][3]int) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := Encode(file, positions, triangles); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", filename, err)
	}
	return nil
}

// Encode writes "v x y z" and 1-based "f i j k" lines.
// Coordinates use the shortest representation that parses back to the same float64.
func Encode(w io.Writer, positions []geometry.Vector3, triangles [][3]int) error {
	bw := bufio.NewWriter(w)

	for _, p := range positions {
		if _, err := fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z)); err != nil {
			return fmt.Errorf("failed to write vertex: %w", err)
		}
	}

	for _, f := range triangles {
		if _, err := fmt.Fprintf(bw, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1); err != nil {
			return fmt.Errorf("failed to write face: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush OBJ output: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
