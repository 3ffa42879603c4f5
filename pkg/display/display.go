// Package display renders the substitution grid, the transposition grid and stage traces as
// terminal tables. It only formats values computed by the cipher package.
package display

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pkg/errors"

	"github.com/askiada/go-hybrid-cipher/pkg/cipher"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func styleCells(row, _ int) lipgloss.Style {
	if row == table.HeaderRow {
		return headerStyle
	}

	return cellStyle
}

func render(title string, headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(styleCells).
		Headers(headers...).
		Rows(rows...)

	return titleStyle.Render(title) + "\n" + t.String()
}

// SubstitutionTable renders grid with label naming its rows and columns.
func SubstitutionTable(grid cipher.Grid, label string) (string, error) {
	if len(label) != cipher.LabelLength {
		return "", errors.Wrapf(cipher.ErrInvalidLabel, "got %d characters", len(label))
	}

	headers := []string{""}
	for i := 0; i < len(label); i++ {
		headers = append(headers, string(label[i]))
	}

	rows := make([][]string, 0, cipher.GridSize)
	for r, symbols := range grid {
		row := []string{string(label[r])}
		for _, symbol := range symbols {
			row = append(row, string(symbol))
		}
		rows = append(rows, row)
	}

	return render("Substitution Table", headers, rows), nil
}

// TranspositionTable renders text laid out under keyword, as the transposition reads it.
// The second header row gives the position of every column in the output.
func TranspositionTable(keyword, text string) (string, error) {
	grid, err := cipher.TranspositionGrid(keyword, text)
	if err != nil {
		return "", err
	}

	rank := make([]int, len(keyword))
	for pos, col := range cipher.ColumnOrder(keyword) {
		rank[col] = pos + 1
	}

	headers := make([]string, len(keyword))
	order := make([]string, len(keyword))
	for i := 0; i < len(keyword); i++ {
		headers[i] = string(keyword[i])
		order[i] = strconv.Itoa(rank[i])
	}

	rows := make([][]string, 0, len(grid)+1)
	rows = append(rows, order)
	for _, cells := range grid {
		row := make([]string, len(cells))
		for i, c := range cells {
			row[i] = string(c)
		}
		rows = append(rows, row)
	}

	return render("Transposition Table", headers, rows), nil
}

// Trace renders the output of every stage of a run.
func Trace(title string, trace cipher.Trace) string {
	rows := make([][]string, 0, len(trace))
	for _, out := range trace {
		rows = append(rows, []string{out.Stage, out.Text})
	}

	return render(title, []string{"Stage", "Output"}, rows)
}

