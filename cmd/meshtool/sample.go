package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshview/pkg/primitive"
)

var (
	sampleRadius float64
	sampleCells  int
)

var sampleCmd = &cobra.Command{
	Use:   "sample [out]",
	Short: "Write a tessellated sphere",
	Long:  "Tessellate a sphere centred at the origin with marching cubes and save it as OBJ. This is the mesh the viewer shows without a file.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().Float64VarP(&sampleRadius, "radius", "r", 1, "Sphere radius")
	sampleCmd.Flags().IntVar(&sampleCells, "cells", primitive.DefaultCells, "Grid cells along the diameter")
}

func runSample(cmd *cobra.Command, args []string) error {
	m, err := primitive.Sphere(sampleRadius, sampleCells)
	if err != nil {
		return err
	}
	if err := m.Save(args[0]); err != nil {
		return fmt.Errorf("failed to write %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote sphere with %d vertices and %d faces to %s\n", m.VertexCount(), m.FaceCount(), args[0])
	return nil
}
