package cipher

import (
	"github.com/pkg/errors"
)

// Params holds everything needed to run the cipher in either direction. Decrypt must receive
// the same Params that Encrypt used.
type Params struct {
	Shift     int
	BlockSize int
	Label     string
	Keyword   string
}

// Validate checks the parameters in stage order and returns the first problem found.
func (p Params) Validate() error {
	if p.BlockSize < 1 {
		return errors.Wrapf(ErrInvalidBlockSize, "got %d", p.BlockSize)
	}
	if err := ValidateLabel(p.Label); err != nil {
		return err
	}
	if len(p.Keyword) < MinKeywordLength {
		return errors.Wrapf(ErrInvalidKeyword, "got %d characters", len(p.Keyword))
	}

	return nil
}

// ValidateLabel checks that label has exactly LabelLength characters and no duplicates.
func ValidateLabel(label string) error {
	if len(label) != LabelLength {
		return errors.Wrapf(ErrInvalidLabel, "got %d characters", len(label))
	}
	for i := 0; i < len(label); i++ {
		for j := i + 1; j < len(label); j++ {
			if label[i] == label[j] {
				return errors.Wrapf(ErrInvalidLabel, "%q appears more than once", label[i])
			}
		}
	}

	return nil
}
