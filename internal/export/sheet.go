// Package export renders a mapping profile as a spreadsheet. Like the code
// generator, it iterates the mapping set, so target fields without a mapping
// never appear as rows.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"mapforge/internal/field"
	"mapforge/internal/store"
)

const sheetName = "Mappings"

// Row is one exported mapping line.
type Row struct {
	TargetPath  string
	SourcePaths []string
	Logic       string
}

// BuildRows resolves the profile's mappings against both arenas.
// A dangling field id is a defect and fails the export.
func BuildRows(mappings []store.FieldMapping, source, target *field.Arena) ([]Row, error) {
	rows := make([]Row, 0, len(mappings))

	for i := range mappings {
		m := &mappings[i]

		targetNode := target.Get(m.TargetFieldID)
		if targetNode == nil {
			return nil, fmt.Errorf("mapping references unknown target field %d", m.TargetFieldID)
		}

		row := Row{TargetPath: targetNode.Path}

		for _, id := range m.SourceFieldIDs() {
			sourceNode := source.Get(id)
			if sourceNode == nil {
				return nil, fmt.Errorf("mapping for target %q references unknown source field %d", targetNode.Path, id)
			}

			row.SourcePaths = append(row.SourcePaths, sourceNode.Path)
		}

		if m.TransformationLogic != nil {
			row.Logic = *m.TransformationLogic
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// WriteWorkbook writes the rows as an xlsx workbook.
func WriteWorkbook(w io.Writer, profileName string, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := []any{"Target Field", "Source Fields", "Transformation Logic"}
	if err := setRow(f, 1, header); err != nil {
		return err
	}

	for i, row := range rows {
		values := []any{row.TargetPath, strings.Join(row.SourcePaths, ", "), row.Logic}
		if err := setRow(f, i+2, values); err != nil {
			return err
		}
	}

	if err := f.SetDocProps(&excelize.DocProperties{Title: profileName}); err != nil {
		return fmt.Errorf("setting workbook properties: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

// setRow writes one spreadsheet row starting at column A.
func setRow(f *excelize.File, rowIndex int, values []any) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowIndex)
		if err != nil {
			return fmt.Errorf("resolving cell: %w", err)
		}

		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			return fmt.Errorf("writing cell %s: %w", cell, err)
		}
	}

	return nil
}
