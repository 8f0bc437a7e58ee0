// Package components holds reusable terminal rendering blocks.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/bnema/zprune/internal/adapters/in/cli/ui/styles"
)

const ellipsis = "..."

// TableColumn defines a table column. Width includes cell padding; zero leaves
// the column unbounded.
type TableColumn struct {
	Title string
	Width int
}

// CellStyleFunc styles one body cell. row is the index into the rows.
type CellStyleFunc func(row, col int, base lipgloss.Style) lipgloss.Style

// Table renders rows with lipgloss/table.
type Table struct {
	columns     []TableColumn
	rows        [][]string
	border      lipgloss.Border
	borderStyle lipgloss.Style
	headerStyle lipgloss.Style
	cellStyle   lipgloss.Style
	cellFunc    CellStyleFunc
}

// TableOption configures a Table.
type TableOption func(*Table)

// NewTable creates a table with the theme styles.
func NewTable(opts ...TableOption) *Table {
	t := &Table{
		border:      lipgloss.RoundedBorder(),
		borderStyle: styles.Theme.TableBorder,
		headerStyle: styles.Theme.TableHeader,
		cellStyle:   styles.Theme.TableCell,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// WithColumns sets the table columns.
func WithColumns(cols []TableColumn) TableOption {
	return func(t *Table) {
		t.columns = cols
	}
}

// WithRows sets the table rows.
func WithRows(rows [][]string) TableOption {
	return func(t *Table) {
		t.rows = rows
	}
}

// WithBorder sets the table border.
func WithBorder(b lipgloss.Border) TableOption {
	return func(t *Table) {
		t.border = b
	}
}

// WithHeaderStyle sets the header style.
func WithHeaderStyle(s lipgloss.Style) TableOption {
	return func(t *Table) {
		t.headerStyle = s
	}
}

// WithCellStyle sets the base style of body cells.
func WithCellStyle(s lipgloss.Style) TableOption {
	return func(t *Table) {
		t.cellStyle = s
	}
}

// WithCellStyleFunc derives body cell styles from the base cell style.
func WithCellStyleFunc(fn CellStyleFunc) TableOption {
	return func(t *Table) {
		t.cellFunc = fn
	}
}

// Render renders the table. It returns an empty string without columns.
func (t *Table) Render() string {
	if len(t.columns) == 0 {
		return ""
	}

	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = truncateCell(col.Title, contentWidth(col.Width, t.headerStyle))
	}

	rows := make([][]string, len(t.rows))
	for r, row := range t.rows {
		cells := make([]string, len(row))
		for c, cell := range row {
			cells[c] = truncateCell(cell, contentWidth(t.columnWidth(c), t.cellStyle))
		}
		rows[r] = cells
	}

	return table.New().
		Border(t.border).
		BorderStyle(t.borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var s lipgloss.Style
			if row == table.HeaderRow {
				s = t.headerStyle
			} else {
				s = t.cellStyle
				if t.cellFunc != nil {
					s = t.cellFunc(row, col, s)
				}
			}
			if w := t.columnWidth(col); w > 0 {
				s = s.Width(w).MaxWidth(w)
			}
			return s
		}).
		String()
}

func (t *Table) columnWidth(col int) int {
	if col < 0 || col >= len(t.columns) {
		return 0
	}
	return t.columns[col].Width
}

// contentWidth is the room left for text once the style padding is applied.
func contentWidth(width int, s lipgloss.Style) int {
	if width <= 0 {
		return 0
	}
	return max(width-s.GetHorizontalPadding(), 1)
}

// truncateCell shortens value to maxWidth display cells, ending with an
// ellipsis. Styled values pass through untouched.
func truncateCell(value string, maxWidth int) string {
	if strings.Contains(value, "\x1b[") {
		return value
	}
	if maxWidth <= 0 || runewidth.StringWidth(value) <= maxWidth {
		return value
	}
	if maxWidth <= len(ellipsis) {
		return strings.Repeat(".", maxWidth)
	}

	budget := maxWidth - len(ellipsis)
	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(value)
	for g.Next() {
		w := runewidth.StringWidth(g.Str())
		if used+w > budget {
			break
		}
		b.WriteString(g.Str())
		used += w
	}
	if b.Len() == 0 {
		return strings.Repeat(".", maxWidth)
	}
	return b.String() + ellipsis
}
