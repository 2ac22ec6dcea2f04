package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"mapforge/internal/field"
)

func profileCommands() *cli.Command {
	return &cli.Command{
		Name:    "profile",
		Aliases: []string{"p"},
		Usage:   "Manage mapping profiles",
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create a mapping profile between two schemas",
				ArgsUsage: "<name> <source-schema-id> <target-schema-id>",
				Action:    runProfileCreate,
			},
			{
				Name:   "list",
				Usage:  "List mapping profiles",
				Action: runProfileList,
			},
			{
				Name:      "show",
				Usage:     "Print a profile's mappings with resolved field paths",
				ArgsUsage: "<profile-id>",
				Action:    runProfileShow,
			},
			{
				Name:      "delete",
				Usage:     "Delete a mapping profile",
				ArgsUsage: "<profile-id>",
				Action:    runProfileDelete,
			},
		},
	}
}

func runProfileCreate(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 3 {
		return fmt.Errorf("usage: mapforge profile create <name> <source-schema-id> <target-schema-id>")
	}

	name := cmd.Args().Get(0)

	sourceID, err := argUUID(cmd, 1, "source-schema-id")
	if err != nil {
		return err
	}

	targetID, err := argUUID(cmd, 2, "target-schema-id")
	if err != nil {
		return err
	}

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	profile, err := e.svc.CreateProfile(name, sourceID, targetID)
	if err != nil {
		return err
	}

	fmt.Printf("created profile %s, id %s\n", profile.Name, profile.ID)

	return nil
}

func runProfileList(ctx context.Context, cmd *cli.Command) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	profiles, err := e.svc.ListProfiles()
	if err != nil {
		return err
	}

	for _, p := range profiles {
		fmt.Printf("%s  %3d mappings  %s\n", p.ID, len(p.Mappings), p.Name)
	}

	return nil
}

func runProfileShow(ctx context.Context, cmd *cli.Command) error {
	id, err := argUUID(cmd, 0, "profile-id")
	if err != nil {
		return err
	}

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	mc, err := e.svc.MappingContext(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s -> %s\n", mc.Profile.Name, mc.SourceSchema.Name, mc.TargetSchema.Name)

	sourcePaths := pathIndex(mc.SourceSchema.Nodes)
	targetPaths := pathIndex(mc.TargetSchema.Nodes)

	for i := range mc.Profile.Mappings {
		m := &mc.Profile.Mappings[i]

		var sources []string
		for _, sid := range m.SourceFieldIDs() {
			sources = append(sources, pathOrID(sourcePaths, sid))
		}

		line := fmt.Sprintf("  %s <- %s", pathOrID(targetPaths, m.TargetFieldID), strings.Join(sources, " + "))
		if len(sources) == 0 {
			line = fmt.Sprintf("  %s <- (manual)", pathOrID(targetPaths, m.TargetFieldID))
		}

		if m.TransformationLogic != nil && *m.TransformationLogic != "" {
			line += fmt.Sprintf("  [%s]", *m.TransformationLogic)
		}

		fmt.Println(line)
	}

	return nil
}

// pathIndex maps node ids to field paths for display.
func pathIndex(nodes []field.FieldNode) map[int64]string {
	paths := make(map[int64]string, len(nodes))
	for i := range nodes {
		paths[nodes[i].ID] = nodes[i].Path
	}

	return paths
}

func pathOrID(paths map[int64]string, id int64) string {
	if p, ok := paths[id]; ok {
		return p
	}

	return fmt.Sprintf("#%d", id)
}

func runProfileDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := argUUID(cmd, 0, "profile-id")
	if err != nil {
		return err
	}

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.svc.DeleteProfile(id); err != nil {
		return err
	}

	fmt.Printf("deleted profile %s\n", id)

	return nil
}
