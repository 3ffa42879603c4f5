package cipher

import (
	"github.com/pkg/errors"
)

var (
	ErrInvalidBlockSize     = errors.New("block size must be at least 1")
	ErrInvalidLabel         = errors.New("label must be 6 distinct characters")
	ErrInvalidKeyword       = errors.New("keyword must be at least 2 characters")
	ErrUnsupportedCharacter = errors.New("unsupported character")
	ErrMalformedCiphertext  = errors.New("malformed ciphertext")
)

// IsValidationError reports whether err comes from invalid parameters.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidBlockSize) ||
		errors.Is(err, ErrInvalidLabel) ||
		errors.Is(err, ErrInvalidKeyword)
}

// IsDataError reports whether err comes from text a stage could not process.
func IsDataError(err error) bool {
	return errors.Is(err, ErrUnsupportedCharacter) ||
		errors.Is(err, ErrMalformedCiphertext)
}
