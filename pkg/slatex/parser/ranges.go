package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ukaji3/slatex-go/pkg/slatex/models"
	"github.com/xuri/excelize/v2"
)

var (
	columnSpanRe = regexp.MustCompile(`^\$?([A-Za-z]{1,3})\$?\d*\s*[-:]\s*\$?([A-Za-z]{1,3})\$?\d*$`)
	lettersRe    = regexp.MustCompile(`[^A-Za-z]`)
)

// ColumnNumber converts a column label such as "AE" to its 1-based number.
// Non-letters are ignored; an empty label yields 0.
func ColumnNumber(label string) int {
	s := strings.ToUpper(lettersRe.ReplaceAllString(label, ""))
	if s == "" {
		return 0
	}
	n, err := excelize.ColumnNameToNumber(s)
	if err != nil {
		return 0
	}
	return n
}

// ColumnSpan parses "A:F" or "A-F" (cell references like "$A$1:$F$20" are
// accepted too) into an ordered pair of 1-based column numbers.
func ColumnSpan(spec string) (int, int, error) {
	m := columnSpanRe.FindStringSubmatch(strings.ReplaceAll(strings.TrimSpace(spec), " ", ""))
	if m == nil {
		return 0, 0, fmt.Errorf("bad column range %q", spec)
	}
	a, b := ColumnNumber(m[1]), ColumnNumber(m[2])
	if a == 0 || b == 0 {
		return 0, 0, fmt.Errorf("bad column range %q", spec)
	}
	if b < a {
		a, b = b, a
	}
	return a, b, nil
}

// ResolveDefinedName looks up a workbook-scoped or sheet-scoped defined
// name and returns the areas it refers to on sheet.
func ResolveDefinedName(f *excelize.File, sheet, name string) ([]models.Area, error) {
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, name) {
			continue
		}
		if dn.Scope != "" && dn.Scope != "Workbook" && dn.Scope != sheet {
			continue
		}
		refSheet, areas := parseAreaReference(dn.RefersTo)
		if refSheet != "" && refSheet != sheet {
			continue
		}
		if len(areas) > 0 {
			return areas, nil
		}
	}
	return nil, fmt.Errorf("defined name %q not found for sheet %q", name, sheet)
}

// PrintAreas returns the print areas of sheet, if any.
func PrintAreas(f *excelize.File, sheet string) []models.Area {
	areas, err := ResolveDefinedName(f, sheet, "_xlnm.Print_Area")
	if err != nil {
		return nil
	}
	return areas
}

// parseAreaReference parses a reference string.
// Format: 'SheetName'!$A$1:$D$10 or SheetName!$A$1:$D$10
func parseAreaReference(ref string) (string, []models.Area) {
	var areas []models.Area

	// Split by comma for multiple areas
	parts := strings.Split(strings.TrimPrefix(strings.TrimSpace(ref), "="), ",")

	var sheetName string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if idx := strings.LastIndex(part, "!"); idx >= 0 {
			sheet := strings.Trim(part[:idx], "'")
			if sheetName == "" {
				sheetName = sheet
			}
			part = part[idx+1:]
		}
		if area := parseRangeToArea(part); area != nil {
			areas = append(areas, *area)
		}
	}

	return sheetName, areas
}

// parseRangeToArea parses a range string like $A$1:$D$10.
// Whole-column ranges like $A:$D cover every row.
func parseRangeToArea(rangeStr string) *models.Area {
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		c1, c2 := ColumnNumber(parts[0]), ColumnNumber(parts[1])
		if c1 == 0 || c2 == 0 || lettersRe.ReplaceAllString(parts[0], "") != parts[0] {
			return nil
		}
		return &models.Area{R1: 1, C1: c1, R2: excelize.TotalRows, C2: c2}
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil
	}

	return &models.Area{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}
}
