package test

import (
	"context"
	"math/big"

	"github.com/pkg/errors"

	"github.com/dylan-thinnes/solsys/oracle"
	"github.com/dylan-thinnes/solsys/types"
)

// Table is the factorizer returning predefined factorizations.
type Table struct {
	Factors map[string][]oracle.Record
	Calls   []string
}

// Factorize returns predefined factors of the value.
func (t *Table) Factorize(_ context.Context, value string) ([]oracle.Record, error) {
	t.Calls = append(t.Calls, value)
	records, exists := t.Factors[value]
	if !exists {
		return nil, errors.Errorf("no factors defined for %s", value)
	}
	return append([]oracle.Record{}, records...), nil
}

// Primes creates records of prime kind.
func Primes(values ...string) []oracle.Record {
	records := make([]oracle.Record, 0, len(values))
	for _, v := range values {
		records = append(records, oracle.Record{Value: v, Kind: types.KindPrime})
	}
	return records
}

// TrialDivision is the factorizer returning prime factors in ascending order.
type TrialDivision struct {
	Calls uint64
}

// Factorize factorizes the value by trial division.
func (td *TrialDivision) Factorize(_ context.Context, value string) ([]oracle.Record, error) {
	td.Calls++

	n, ok := new(big.Int).SetString(value, 10)
	if !ok || !n.IsUint64() {
		return nil, errors.Errorf("invalid value %q", value)
	}

	records := []oracle.Record{}
	v := n.Uint64()
	for d := uint64(2); d*d <= v; d++ {
		for v%d == 0 {
			records = append(records, oracle.Record{Value: big.NewInt(int64(d)).String(), Kind: types.KindPrime})
			v /= d
		}
	}
	if v > 1 {
		records = append(records, oracle.Record{Value: new(big.Int).SetUint64(v).String(), Kind: types.KindPrime})
	}
	return records, nil
}

// Interrupting is the factorizer failing with interruption after given number of successful calls.
type Interrupting struct {
	Factorizer oracle.Factorizer
	After      int
	Calls      int
}

// Factorize factorizes the value or reports interruption.
func (i *Interrupting) Factorize(ctx context.Context, value string) ([]oracle.Record, error) {
	i.Calls++
	if i.Calls > i.After {
		return nil, errors.Wrapf(oracle.ErrInterrupted, "factorization of %s", value)
	}
	return i.Factorizer.Factorize(ctx, value)
}

// Statistic computes exact prime-counting function for small numbers.
// LogInt returns the same exact value so results don't depend on the threshold.
type Statistic struct {
	PiCalls uint64
	LiCalls uint64
}

// PrimePi counts primes not greater than x.
func (s *Statistic) PrimePi(_ context.Context, x *big.Int) (*big.Int, error) {
	s.PiCalls++
	return countPrimes(x)
}

// LogInt returns exact prime count as an estimate.
func (s *Statistic) LogInt(_ context.Context, x *big.Int) (*big.Int, error) {
	s.LiCalls++
	return countPrimes(x)
}

func countPrimes(x *big.Int) (*big.Int, error) {
	if !x.IsUint64() {
		return nil, errors.Errorf("value %s is out of range", x)
	}
	n := x.Uint64()
	if n < 2 {
		return new(big.Int), nil
	}
	if n > 1<<24 {
		return nil, errors.Errorf("value %s is too large", x)
	}

	composite := make([]bool, n+1)
	var count int64
	for i := uint64(2); i <= n; i++ {
		if composite[i] {
			continue
		}
		count++
		for j := i * i; j <= n; j += i {
			composite[j] = true
		}
	}
	return big.NewInt(count), nil
}
