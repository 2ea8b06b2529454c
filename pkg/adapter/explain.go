package adapter

import (
	"database/sql"
	"strings"
)

// nullCellText is how NULL plan cells are rendered; it counts toward the
// column width like any other cell.
const nullCellText = "NULL"

// ExplainResult holds a vendor EXPLAIN result set: a fixed header row and
// ordered data rows whose cells are strings or NULL.
type ExplainResult struct {
	Columns []string
	Rows    [][]sql.NullString
}

// Format renders the plan as an aligned text table. Each column's width is
// its header length widened to the longest cell seen in that column;
// cells are left-justified, columns are separated by " | ", and a rule of
// '-' runs under the header. Width is character count; vendor plan text is
// ASCII.
func (r ExplainResult) Format() string {
	widths := make([]int, len(r.Columns))
	for i, col := range r.Columns {
		widths[i] = len(col)
	}

	cellText := func(cell sql.NullString) string {
		if !cell.Valid {
			return nullCellText
		}
		return cell.String
	}

	for _, row := range r.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if l := len(cellText(cell)); l > widths[i] {
				widths[i] = l
			}
		}
	}

	var b strings.Builder

	writeLine := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(cell)
			if pad := widths[i] - len(cell); pad > 0 {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
	}

	writeLine(r.Columns)

	b.WriteByte('\n')
	for i, w := range widths {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(strings.Repeat("-", w))
	}

	for _, row := range r.Rows {
		b.WriteByte('\n')
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cellText(cell)
		}
		writeLine(cells)
	}

	return b.String()
}
