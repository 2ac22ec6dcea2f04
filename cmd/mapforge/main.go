// Command mapforge ingests schema documents, manages mapping profiles
// between them, suggests field correspondences, and renders mapper code and
// spreadsheet exports.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mapforge/internal/blob"
	"mapforge/internal/service"
	"mapforge/internal/store"
)

func main() {
	app := &cli.Command{
		Name:  "mapforge",
		Usage: "Schema ingestion and field-mapping workbench",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "workspace",
				Aliases: []string{"w"},
				Usage:   "workspace directory holding schemas, profiles, and blobs",
				Sources: cli.EnvVars("MAPFORGE_WORKSPACE"),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			schemaCommands(),
			profileCommands(),
			mappingCommands(),
			generateCommand(),
			exportCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds a stderr development logger so stdout stays clean for
// command output.
func newLogger(debug bool) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.OutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return config.Build()
}

// env is the assembled runtime for one command invocation.
type env struct {
	svc    *service.Service
	logger *zap.Logger
}

// newEnv resolves configuration and wires the service stack. Flag values
// override the discovered .mapforge.yaml; both fall back to defaults.
func newEnv(cmd *cli.Command) (*env, error) {
	logger, err := newLogger(cmd.Bool("verbose"))
	if err != nil {
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting cwd: %w", err)
	}

	cfg, configDir, err := loadConfigWithDir(cwd)
	if err != nil {
		cfg = &Config{}
		configDir = cwd
	}

	workspace := cmd.String("workspace")
	if workspace == "" {
		workspace = cfg.Workspace
	}

	if workspace == "" {
		workspace = filepath.Join(configDir, defaultWorkspaceDir)
	}

	repo, err := store.NewYAMLRepository(workspace)
	if err != nil {
		return nil, err
	}

	blobRoot := cfg.Blobs
	if blobRoot == "" {
		blobRoot = filepath.Join(workspace, "blobs")
	}

	blobs := blob.New(blobRoot)

	svc := service.New(store.New(repo, logger), blobs, logger)
	svc.SetMatchThreshold(cfg.Match.Threshold)

	return &env{
		svc:    svc,
		logger: logger,
	}, nil
}

func (e *env) close() {
	_ = e.logger.Sync()
}
