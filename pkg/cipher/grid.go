package cipher

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	// Alphabet is the ordered set of symbols the substitution grid can hold.
	Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	// GridSize is the number of rows and columns of the substitution grid.
	GridSize = 6
	// LabelLength is the number of characters a label must have.
	LabelLength = GridSize
)

// Grid is the 6x6 substitution table.
type Grid [GridSize][GridSize]byte

// BuildGrid fills a grid with Alphabet in row-major order.
func BuildGrid() Grid {
	var grid Grid
	for i := 0; i < len(Alphabet); i++ {
		grid[i/GridSize][i%GridSize] = Alphabet[i]
	}

	return grid
}

// Position returns the row and column holding symbol. Upper-case letters are looked up as
// their lower-case form.
func (g Grid) Position(symbol byte) (row, col int, ok bool) {
	if symbol >= 'A' && symbol <= 'Z' {
		symbol += 'a' - 'A'
	}
	for row := range g {
		for col := range g[row] {
			if g[row][col] == symbol {
				return row, col, true
			}
		}
	}

	return 0, 0, false
}

// GridEncode replaces every symbol of text with the label characters naming its row and column.
func GridEncode(text string, grid Grid, label string) (string, error) {
	if len(label) != LabelLength {
		return "", errors.Wrapf(ErrInvalidLabel, "got %d characters", len(label))
	}

	var sb strings.Builder
	sb.Grow(2 * len(text))
	for i := 0; i < len(text); i++ {
		row, col, ok := grid.Position(text[i])
		if !ok {
			return "", errors.Wrapf(ErrUnsupportedCharacter, "%q at position %d", text[i], i)
		}
		sb.WriteByte(label[row])
		sb.WriteByte(label[col])
	}

	return sb.String(), nil
}

// GridDecode reads text as pairs of label characters and returns the symbols they address.
// When label holds a character twice, its first position wins.
func GridDecode(text string, grid Grid, label string) (string, error) {
	if len(label) != LabelLength {
		return "", errors.Wrapf(ErrInvalidLabel, "got %d characters", len(label))
	}
	if len(text)%2 != 0 {
		return "", errors.Wrapf(ErrMalformedCiphertext, "odd length %d", len(text))
	}

	out := make([]byte, 0, len(text)/2)
	for i := 0; i < len(text); i += 2 {
		row := strings.IndexByte(label, text[i])
		if row < 0 {
			return "", errors.Wrapf(ErrMalformedCiphertext, "%q at position %d is not a label character", text[i], i)
		}
		col := strings.IndexByte(label, text[i+1])
		if col < 0 {
			return "", errors.Wrapf(ErrMalformedCiphertext, "%q at position %d is not a label character", text[i+1], i+1)
		}
		out = append(out, grid[row][col])
	}

	return string(out), nil
}
