package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"mapforge/internal/field"
)

func schemaCommands() *cli.Command {
	return &cli.Command{
		Name:    "schema",
		Aliases: []string{"s"},
		Usage:   "Ingest and inspect schema documents",
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Parse a schema document and store its field nodes",
				ArgsUsage: "<name> <file>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "schema format (json-schema, xsd); inferred from the file extension when empty",
					},
				},
				Action: runSchemaIngest,
			},
			{
				Name:   "list",
				Usage:  "List ingested schemas",
				Action: runSchemaList,
			},
			{
				Name:      "show",
				Usage:     "Print a schema's field tree with example values",
				ArgsUsage: "<schema-id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "dump",
						Usage: "dump the raw node structures instead of the tree view",
					},
				},
				Action: runSchemaShow,
			},
			{
				Name:      "example",
				Usage:     "Attach example payload files to a schema",
				ArgsUsage: "<schema-id> <file>...",
				Action:    runSchemaExample,
			},
			{
				Name:      "delete",
				Usage:     "Delete a schema and every profile referencing it",
				ArgsUsage: "<schema-id>",
				Action:    runSchemaDelete,
			},
		},
	}
}

func runSchemaIngest(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 2 {
		return fmt.Errorf("usage: mapforge schema ingest <name> <file>")
	}

	name := cmd.Args().Get(0)
	path := cmd.Args().Get(1)

	format := cmd.String("format")
	if format == "" {
		format = formatFromExtension(path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	schema, err := e.svc.IngestSchema(ctx, name, format, raw)
	if err != nil {
		return err
	}

	fmt.Printf("ingested %s (%s): %d fields, id %s\n", schema.Name, schema.Format, len(schema.Nodes), schema.ID)

	return nil
}

func runSchemaList(ctx context.Context, cmd *cli.Command) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	schemas, err := e.svc.ListSchemas()
	if err != nil {
		return err
	}

	for _, s := range schemas {
		fmt.Printf("%s  %-12s %4d fields  %s\n", s.ID, s.Format, len(s.Nodes), s.Name)
	}

	return nil
}

func runSchemaShow(ctx context.Context, cmd *cli.Command) error {
	id, err := argUUID(cmd, 0, "schema-id")
	if err != nil {
		return err
	}

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	tree, err := e.svc.BuildTree(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("dump") {
		spew.Fdump(os.Stdout, tree)

		return nil
	}

	printTree(tree, 0)

	return nil
}

func runSchemaExample(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 2 {
		return fmt.Errorf("usage: mapforge schema example <schema-id> <file>...")
	}

	id, err := argUUID(cmd, 0, "schema-id")
	if err != nil {
		return err
	}

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	for _, path := range cmd.Args().Slice()[1:] {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		if err := e.svc.AttachExample(ctx, id, raw); err != nil {
			return err
		}

		fmt.Printf("attached %s\n", path)
	}

	return nil
}

func runSchemaDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := argUUID(cmd, 0, "schema-id")
	if err != nil {
		return err
	}

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.svc.DeleteSchema(ctx, id); err != nil {
		return err
	}

	fmt.Printf("deleted schema %s\n", id)

	return nil
}

// printTree renders the field tree one node per line.
func printTree(nodes []*field.TreeNode, depth int) {
	indent := strings.Repeat("  ", depth)

	for _, n := range nodes {
		line := fmt.Sprintf("%s%-6d %s", indent, n.ID, n.Name)

		dataType := n.DataType
		if n.IsArray {
			dataType += "[]"
		}

		line += " : " + dataType

		if n.IsMandatory {
			line += " (required)"
		}

		if n.ExampleValue != nil && *n.ExampleValue != "" {
			line += fmt.Sprintf("  e.g. %q", *n.ExampleValue)
		}

		fmt.Println(line)

		printTree(n.Children, depth+1)
	}
}

// formatFromExtension guesses the schema format from the file name.
func formatFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xsd", ".xml":
		return "xsd"
	default:
		return "json-schema"
	}
}

// argUUID parses one positional argument as a uuid.
func argUUID(cmd *cli.Command, index int, name string) (uuid.UUID, error) {
	raw := cmd.Args().Get(index)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("missing <%s> argument", name)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}

	return id, nil
}
