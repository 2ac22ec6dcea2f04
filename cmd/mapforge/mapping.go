package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
)

func mappingCommands() *cli.Command {
	return &cli.Command{
		Name:    "map",
		Aliases: []string{"m"},
		Usage:   "Manage and suggest field mappings",
		Commands: []*cli.Command{
			{
				Name:      "set",
				Usage:     "Map a target field to zero or more ordered source fields",
				ArgsUsage: "<profile-id> <target-field-id> [source-field-id,...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "logic",
						Aliases: []string{"l"},
						Usage:   "free-form transformation note stored with the mapping",
					},
				},
				Action: runMappingSet,
			},
			{
				Name:      "delete",
				Usage:     "Remove the mapping of a target field",
				ArgsUsage: "<profile-id> <target-field-id>",
				Action:    runMappingDelete,
			},
			{
				Name:      "suggest",
				Usage:     "Suggest mappings for the profile's unmapped target fields",
				ArgsUsage: "<profile-id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "apply",
						Usage: "persist every suggestion instead of printing them",
					},
				},
				Action: runMappingSuggest,
			},
		},
	}
}

func runMappingSet(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 2 {
		return fmt.Errorf("usage: mapforge map set <profile-id> <target-field-id> [source-field-id,...]")
	}

	profileID, err := argUUID(cmd, 0, "profile-id")
	if err != nil {
		return err
	}

	targetID, err := argFieldID(cmd, 1, "target-field-id")
	if err != nil {
		return err
	}

	var sourceIDs []int64

	if raw := cmd.Args().Get(2); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid source-field-id %q: %w", part, err)
			}

			sourceIDs = append(sourceIDs, id)
		}
	}

	var logic *string
	if l := cmd.String("logic"); l != "" {
		logic = &l
	}

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.svc.SaveMapping(profileID, targetID, sourceIDs, logic); err != nil {
		return err
	}

	fmt.Printf("mapped target field %d to %d source(s)\n", targetID, len(sourceIDs))

	return nil
}

func runMappingDelete(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 2 {
		return fmt.Errorf("usage: mapforge map delete <profile-id> <target-field-id>")
	}

	profileID, err := argUUID(cmd, 0, "profile-id")
	if err != nil {
		return err
	}

	targetID, err := argFieldID(cmd, 1, "target-field-id")
	if err != nil {
		return err
	}

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.svc.DeleteMapping(profileID, targetID); err != nil {
		return err
	}

	fmt.Printf("unmapped target field %d\n", targetID)

	return nil
}

func runMappingSuggest(ctx context.Context, cmd *cli.Command) error {
	profileID, err := argUUID(cmd, 0, "profile-id")
	if err != nil {
		return err
	}

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	suggestions, err := e.svc.SuggestMappings(ctx, profileID)
	if err != nil {
		return err
	}

	if len(suggestions) == 0 {
		fmt.Println("no suggestions above threshold")

		return nil
	}

	for _, s := range suggestions {
		fmt.Printf("%6.2f  %d -> %d  %s\n", s.Confidence, s.SourceFieldID, s.TargetFieldID, s.Reasoning)
	}

	if !cmd.Bool("apply") {
		return nil
	}

	for _, s := range suggestions {
		if err := e.svc.SaveMapping(profileID, s.TargetFieldID, []int64{s.SourceFieldID}, nil); err != nil {
			return err
		}
	}

	fmt.Printf("applied %d suggestion(s)\n", len(suggestions))

	return nil
}

// argFieldID parses one positional argument as a field id.
func argFieldID(cmd *cli.Command, index int, name string) (int64, error) {
	raw := cmd.Args().Get(index)
	if raw == "" {
		return 0, fmt.Errorf("missing <%s> argument", name)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}

	return id, nil
}
