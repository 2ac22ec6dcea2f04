package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Aliases:   []string{"gen"},
		Usage:     "Render a profile's mappings as Go mapper source",
		ArgsUsage: "<profile-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "package",
				Aliases: []string{"p"},
				Usage:   "Go package name of the emitted file",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output file (stdout when empty)",
			},
		},
		Action: runGenerate,
	}
}

func runGenerate(ctx context.Context, cmd *cli.Command) error {
	profileID, err := argUUID(cmd, 0, "profile-id")
	if err != nil {
		return err
	}

	cwd, _ := os.Getwd()
	cfg, _, cfgErr := loadConfigWithDir(cwd)
	if cfgErr != nil {
		cfg = &Config{}
	}

	packageName := firstNonEmpty(cmd.String("package"), cfg.Generate.Package)
	outPath := firstNonEmpty(cmd.String("out"), cfg.Generate.Out)

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	source, err := e.svc.GenerateCode(ctx, profileID, packageName)
	if err != nil {
		return err
	}

	if outPath == "" {
		fmt.Print(source)

		return nil
	}

	if err := os.WriteFile(outPath, []byte(source), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	fmt.Printf("wrote %s\n", outPath)

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
