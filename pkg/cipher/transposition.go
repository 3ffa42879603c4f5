package cipher

import (
	"sort"

	"github.com/pkg/errors"
)

// Filler pads the last row of the transposition grid.
const Filler = 'X'

// MinKeywordLength is the shortest keyword the transposition accepts.
const MinKeywordLength = 2

// ColumnOrder returns the column indices of keyword sorted by their character. Equal characters
// keep their original order.
func ColumnOrder(keyword string) []int {
	order := make([]int, len(keyword))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return keyword[order[i]] < keyword[order[j]]
	})

	return order
}

func gridShape(keyword string, length int) (rows, cols int) {
	cols = len(keyword)
	rows = (length + cols - 1) / cols

	return rows, cols
}

func newFilledGrid(rows, cols int) [][]byte {
	grid := make([][]byte, rows)
	for i := range grid {
		grid[i] = make([]byte, cols)
		for j := range grid[i] {
			grid[i][j] = Filler
		}
	}

	return grid
}

// TranspositionGrid lays text out row by row in len(keyword) columns, padding the last row
// with Filler.
func TranspositionGrid(keyword, text string) ([][]byte, error) {
	if len(keyword) < MinKeywordLength {
		return nil, errors.Wrapf(ErrInvalidKeyword, "got %d characters", len(keyword))
	}

	rows, cols := gridShape(keyword, len(text))
	grid := newFilledGrid(rows, cols)
	for i := 0; i < len(text); i++ {
		grid[i/cols][i%cols] = text[i]
	}

	return grid, nil
}

// TranspositionEncode reads the grid built by TranspositionGrid column by column, in the order
// given by ColumnOrder.
func TranspositionEncode(keyword, text string) (string, error) {
	grid, err := TranspositionGrid(keyword, text)
	if err != nil {
		return "", err
	}

	out := make([]byte, 0, len(grid)*len(keyword))
	for _, col := range ColumnOrder(keyword) {
		for row := range grid {
			out = append(out, grid[row][col])
		}
	}

	return string(out), nil
}

// TranspositionDecode refills the grid column by column in ColumnOrder and reads it row by row.
// Filler added by TranspositionEncode is kept in the result.
func TranspositionDecode(keyword, cipherText string) (string, error) {
	if len(keyword) < MinKeywordLength {
		return "", errors.Wrapf(ErrInvalidKeyword, "got %d characters", len(keyword))
	}
	if len(cipherText) == 0 {
		return "", errors.Wrap(ErrMalformedCiphertext, "empty input")
	}

	rows, cols := gridShape(keyword, len(cipherText))
	grid := newFilledGrid(rows, cols)
	next := 0
	for _, col := range ColumnOrder(keyword) {
		for row := 0; row < rows && next < len(cipherText); row++ {
			grid[row][col] = cipherText[next]
			next++
		}
	}

	out := make([]byte, 0, rows*cols)
	for _, row := range grid {
		out = append(out, row...)
	}

	return string(out), nil
}
