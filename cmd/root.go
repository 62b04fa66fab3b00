// Package cmd holds the meshview command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philipparndt/meshview/internal/app"
	"github.com/philipparndt/meshview/internal/config"
	"github.com/philipparndt/meshview/internal/gui"
	"github.com/philipparndt/meshview/internal/logger"
	"github.com/philipparndt/meshview/pkg/mesh"
	"github.com/philipparndt/meshview/pkg/primitive"
	"github.com/philipparndt/meshview/version"
)

var (
	configPath string
	overrides  config.Overrides
)

// runFrontend opens a viewer window; replaced in tests
var runFrontend = func(cfg *config.Config, m *mesh.Mesh, path string) error {
	switch cfg.Viewer.Frontend {
	case config.FrontendFyne:
		return gui.Run(cfg, m, path)
	default:
		return app.Run(cfg, m, path)
	}
}

var rootCmd = &cobra.Command{
	Use:   "meshview [file]",
	Short: "Interactive viewer for OBJ triangle meshes",
	Long: `meshview shows a triangle mesh from a Wavefront OBJ file. Drag to rotate,
shift+drag or right drag to pan, scroll to zoom. Without a file a built-in
sphere is shown.`,
	Args:          cobra.MaximumNArgs(1),
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runViewer,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "Config file (default ./meshview.yaml or the user config dir)")
	flags.StringVar(&overrides.Frontend, "frontend", "", "Frontend to use: raylib or fyne")
	flags.IntVar(&overrides.Width, "width", 0, "Window width")
	flags.IntVar(&overrides.Height, "height", 0, "Window height")
	flags.BoolVarP(&overrides.Debug, "debug", "d", false, "Enable debug logging")
	flags.StringVar(&overrides.LogFile, "log-file", "", "Also write logs to this file")
	flags.BoolVar(&overrides.NoWatch, "no-watch", false, "Do not reload the file when it changes")
}

func runViewer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath, overrides)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	m, err := openMesh(path, cfg.Viewer.SampleCells)
	if err != nil {
		return err
	}

	logger.Info("Starting viewer",
		zap.String("frontend", cfg.Viewer.Frontend),
		zap.String("path", path),
		zap.String("version", version.GetVersion()))
	return runFrontend(cfg, m, path)
}

// openMesh loads path, or builds the default sphere when path is empty
func openMesh(path string, cells int) (*mesh.Mesh, error) {
	if path == "" {
		m, err := primitive.Sphere(1, cells)
		if err != nil {
			return nil, fmt.Errorf("failed to build default sphere: %w", err)
		}
		return m, nil
	}
	return mesh.Load(path)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
