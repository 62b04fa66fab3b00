package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshview/internal/logger"
	"github.com/philipparndt/meshview/pkg/mesh"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [in] [out]",
	Short: "Validate an OBJ file and write it back in canonical form",
	Long:  "Load a mesh, check its faces and write only vertex and face lines with shortest round-trip floats.",
	Args:  cobra.ExactArgs(2),
	RunE:  runRewrite,
}

func init() {
	rootCmd.AddCommand(rewriteCmd)
}

func runRewrite(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]

	m, err := mesh.Load(in)
	if err != nil {
		return err
	}
	if err := m.Save(out); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	logger.Sugar.Debugf("rewrote %s to %s", in, out)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d vertices and %d faces to %s\n", m.VertexCount(), m.FaceCount(), out)
	return nil
}
