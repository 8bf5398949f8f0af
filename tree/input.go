package tree

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidInput is returned when input is not a positive decimal integer.
var ErrInvalidInput = errors.New("invalid input")

// ParseInput parses positive decimal integer.
func ParseInput(input string) (*big.Int, error) {
	if input == "" || strings.TrimLeft(input, "0123456789") != "" {
		return nil, errors.Wrapf(ErrInvalidInput, "%q is not a decimal number", input)
	}
	v, ok := new(big.Int).SetString(input, 10)
	if !ok || v.Sign() <= 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "%q is not a positive number", input)
	}
	return v, nil
}
