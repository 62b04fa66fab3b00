package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshview/internal/logger"
	"github.com/philipparndt/meshview/version"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "meshtool",
	Short: "Inspect, convert and render OBJ triangle meshes",
	Long: `meshtool works on the same Wavefront OBJ meshes the viewer shows. It prints
mesh statistics, rewrites files in canonical form, renders PNG previews
without a window and writes sample meshes.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "warn"
		if debug {
			level = "debug"
		}
		return logger.Init(level, "")
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
