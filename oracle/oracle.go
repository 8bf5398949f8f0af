package oracle

import (
	"context"
	"math/big"

	"github.com/pkg/errors"

	"github.com/dylan-thinnes/solsys/types"
)

var (
	// ErrInterrupted is returned when oracle call was cancelled before it completed.
	ErrInterrupted = errors.New("oracle call interrupted")

	// ErrMalformedOutput is returned when oracle produced output which can't be parsed.
	ErrMalformedOutput = errors.New("malformed oracle output")
)

// DefaultThreshold is the value below which prime-counting function is computed exactly.
var DefaultThreshold = new(big.Int).Exp(big.NewInt(10), big.NewInt(13), nil)

// Record is a single factor returned by the factorization oracle.
type Record struct {
	Value string
	Kind  types.Kind
}

// Factorizer factorizes decimal numbers.
// Equal factors are expected to be adjacent in the returned sequence.
type Factorizer interface {
	Factorize(ctx context.Context, value string) ([]Record, error)
}

// Statistic computes prime-counting statistics.
// Returned integers are owned by the caller.
type Statistic interface {
	PrimePi(ctx context.Context, x *big.Int) (*big.Int, error)
	LogInt(ctx context.Context, x *big.Int) (*big.Int, error)
}

// Pi computes the prime-counting function of x, exactly below threshold and using
// logarithmic integral above it.
func Pi(ctx context.Context, s Statistic, threshold, x *big.Int) (*big.Int, error) {
	if x.Cmp(threshold) < 0 {
		return s.PrimePi(ctx, x)
	}
	return s.LogInt(ctx, x)
}
