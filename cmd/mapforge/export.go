package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export a profile's mappings as an xlsx workbook",
		ArgsUsage: "<profile-id> <file>",
		Action:    runExport,
	}
}

func runExport(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 2 {
		return fmt.Errorf("usage: mapforge export <profile-id> <file>")
	}

	profileID, err := argUUID(cmd, 0, "profile-id")
	if err != nil {
		return err
	}

	outPath := cmd.Args().Get(1)

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer f.Close()

	if err := e.svc.ExportWorkbook(ctx, profileID, f); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", outPath)

	return nil
}
