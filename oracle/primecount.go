package oracle

import (
	"context"
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// NewPrimecount creates statistic running external primecount process.
func NewPrimecount(config ProcessConfig) *Primecount {
	return &Primecount{
		config: config,
	}
}

// Primecount computes prime-counting statistics using primecount binary.
type Primecount struct {
	config ProcessConfig
}

// PrimePi computes the exact number of primes not greater than x.
func (p *Primecount) PrimePi(ctx context.Context, x *big.Int) (*big.Int, error) {
	return p.compute(ctx, x.String())
}

// LogInt computes the logarithmic integral Li(x).
func (p *Primecount) LogInt(ctx context.Context, x *big.Int) (*big.Int, error) {
	return p.compute(ctx, "--Li", x.String())
}

func (p *Primecount) compute(ctx context.Context, args ...string) (*big.Int, error) {
	output, err := run(ctx, p.config, args...)
	if err != nil {
		return nil, err
	}
	return parseInteger(output)
}

func parseInteger(output []byte) (*big.Int, error) {
	s := strings.TrimSpace(string(output))
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Wrapf(ErrMalformedOutput, "integer expected, got %q", s)
	}
	return v, nil
}
