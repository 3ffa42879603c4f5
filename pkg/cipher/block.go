package cipher

import (
	"github.com/pkg/errors"
)

// ReverseBlocks reverses consecutive runs of blockSize non-space characters. Spaces keep their
// positions and are not counted in a block. The last block may be shorter than blockSize.
//
// Applying ReverseBlocks twice with the same block size returns the original text, so it is used
// for both directions.
func ReverseBlocks(text string, blockSize int) (string, error) {
	if blockSize < 1 {
		return "", errors.Wrapf(ErrInvalidBlockSize, "got %d", blockSize)
	}

	buf := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		if text[i] != ' ' {
			buf = append(buf, text[i])
		}
	}

	for start := 0; start < len(buf); start += blockSize {
		end := min(start+blockSize, len(buf))
		for i, j := start, end-1; i < j; i, j = i+1, j-1 {
			buf[i], buf[j] = buf[j], buf[i]
		}
	}

	out := make([]byte, len(text))
	next := 0
	for i := 0; i < len(text); i++ {
		if text[i] == ' ' {
			out[i] = ' '
			continue
		}
		out[i] = buf[next]
		next++
	}

	return string(out), nil
}
