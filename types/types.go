package types

import (
	"math/big"

	"github.com/pkg/errors"
)

// Kind enumerates the classifications reported by the factorization oracle.
type Kind byte

const (
	// KindPrime means factor is proven prime.
	KindPrime Kind = iota

	// KindComposite means factor is known to be composite but the oracle did not split it.
	KindComposite

	// KindProbablePrime means factor passed probabilistic primality test only.
	KindProbablePrime
)

// String returns the short tag used by factorization output.
func (k Kind) String() string {
	switch k {
	case KindPrime:
		return "p"
	case KindComposite:
		return "c"
	case KindProbablePrime:
		return "prp"
	default:
		return "?"
	}
}

// ParseKind converts short tag to kind.
func ParseKind(tag string) (Kind, error) {
	switch tag {
	case "p":
		return KindPrime, nil
	case "c":
		return KindComposite, nil
	case "prp":
		return KindProbablePrime, nil
	default:
		return 0, errors.Errorf("unknown factor kind %q", tag)
	}
}

// State enumerates possible composite states.
type State byte

const (
	// StatePending means composite waits for its task to be processed.
	StatePending State = iota

	// StateDecomposed means factors of composite have been populated.
	StateDecomposed
)

type (
	// CompositeAddress is the address of composite node in the arena. Zero means no node.
	CompositeAddress uint64

	// FactorAddress is the address of factor node in the arena. Zero means no node.
	FactorAddress uint64
)

// Composite represents one number being decomposed.
type Composite struct {
	Value   *big.Int
	Factors []FactorAddress
	State   State
}

// Factor represents one grouped prime-power component of a composite.
type Factor struct {
	Base         *big.Int
	Kind         Kind
	Multiplicity uint64
	Power        CompositeAddress
	Pi           *big.Int
	Spacer       CompositeAddress
}

// Task is the pending decomposition request.
type Task struct {
	Value  string
	Output CompositeAddress
	Next   *Task
}
