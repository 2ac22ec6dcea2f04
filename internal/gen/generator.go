// Package gen renders a mapping profile into Go mapper source: one
// assignment per mapped target field, in the mapping set's stored order.
// Unmapped target fields are skipped entirely because the generator iterates
// mappings, not target fields; the tabular export behaves the same way.
package gen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"mapforge/internal/common"
	"mapforge/internal/field"
	"mapforge/internal/store"
)

// Request carries everything one generation run needs. The mapping set is
// assumed referentially intact; a dangling field id is a defect surfaced as
// an error, not silently recovered.
type Request struct {
	// PackageName of the emitted file; defaults to "mappers".
	PackageName string

	ProfileName      string
	SourceSchemaName string
	TargetSchemaName string

	Mappings []store.FieldMapping

	Source *field.Arena
	Target *field.Arena
}

// Generate renders the mapper source text.
func Generate(req Request) (string, error) {
	pkg := req.PackageName
	if pkg == "" {
		pkg = "mappers"
	}

	srcType := exportedIdent(req.SourceSchemaName)
	dstType := exportedIdent(req.TargetSchemaName)
	funcName := "Map" + srcType + "To" + dstType

	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by mapforge. DO NOT EDIT.")

	var body []jen.Code

	for i := range req.Mappings {
		stmts, err := assignment(&req.Mappings[i], req.Source, req.Target)
		if err != nil {
			return "", err
		}

		body = append(body, stmts...)
	}

	f.Commentf("%s maps %s fields onto %s for profile %q.",
		funcName, req.SourceSchemaName, req.TargetSchemaName, req.ProfileName)
	f.Func().Id(funcName).Params(
		jen.Id("src").Id(srcType),
		jen.Id("dst").Op("*").Id(dstType),
	).Block(body...)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", fmt.Errorf("rendering mapper source: %w", err)
	}

	return buf.String(), nil
}

// assignment renders the statements for one mapped target field.
func assignment(m *store.FieldMapping, source, target *field.Arena) ([]jen.Code, error) {
	targetNode := target.Get(m.TargetFieldID)
	if targetNode == nil {
		return nil, fmt.Errorf("mapping references unknown target field %d", m.TargetFieldID)
	}

	sourceIDs := m.SourceFieldIDs()

	sourceNodes := make([]*field.FieldNode, len(sourceIDs))

	for i, id := range sourceIDs {
		n := source.Get(id)
		if n == nil {
			return nil, fmt.Errorf("mapping for target %q references unknown source field %d", targetNode.Path, id)
		}

		sourceNodes[i] = n
	}

	dst := memberAccess(jen.Id("dst"), targetNode.Path)

	logic := ""
	if m.TransformationLogic != nil {
		logic = strings.TrimSpace(*m.TransformationLogic)
	}

	switch {
	case common.IsEmpty(sourceNodes):
		// Manual or constant assignment: no source contributes.
		note := logic
		if note == "" {
			note = "manual assignment"
		}

		return []jen.Code{dst.Clone().Op("=").Lit("").Comment(note)}, nil

	case common.IsSingle(sourceNodes):
		stmt := dst.Clone().Op("=").Add(memberAccess(jen.Id("src"), sourceNodes[0].Path))
		if logic != "" {
			stmt = stmt.Comment(logic)
		}

		return []jen.Code{stmt}, nil

	default:
		names := make([]string, len(sourceNodes))
		verbs := make([]string, len(sourceNodes))
		args := make([]jen.Code, 0, len(sourceNodes)+1)

		for i, n := range sourceNodes {
			names[i] = n.Path
			verbs[i] = "%v"
		}

		args = append(args, jen.Lit(strings.Join(verbs, "")))
		for _, n := range sourceNodes {
			args = append(args, memberAccess(jen.Id("src"), n.Path))
		}

		stmts := []jen.Code{
			jen.Commentf("combines %s", strings.Join(names, ", ")),
		}

		if logic != "" {
			stmts = append(stmts, jen.Commentf("logic: %s", logic))
		}

		// Best-effort default for undecided multi-source semantics:
		// concatenate the contributions in order.
		stmts = append(stmts, dst.Clone().Op("=").Qual("fmt", "Sprintf").Call(args...))

		return stmts, nil
	}
}

// memberAccess derives the member expression for a field path: the leading
// schema-root segment is dropped and every remaining segment is sanitized to
// an identifier-safe token.
func memberAccess(receiver *jen.Statement, path string) *jen.Statement {
	segments := field.Segments(field.StripArrayMarkers(path))

	if len(segments) > 1 {
		segments = segments[1:]
	}

	expr := receiver.Clone()
	for _, seg := range segments {
		expr = expr.Dot(sanitizeIdent(seg))
	}

	return expr
}

// sanitizeIdent keeps letters, digits, and underscores only.
func sanitizeIdent(s string) string {
	var b strings.Builder

	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
	}

	out := b.String()
	if out == "" {
		return "_"
	}

	if out[0] >= '0' && out[0] <= '9' {
		return "_" + out
	}

	return out
}

// exportedIdent sanitizes a schema name into an exported type identifier.
func exportedIdent(name string) string {
	ident := sanitizeIdent(name)
	if ident == "_" {
		return "Schema"
	}

	return strings.ToUpper(ident[:1]) + ident[1:]
}
