package tree

import (
	"math/big"

	"github.com/samber/lo"

	"github.com/dylan-thinnes/solsys/alloc"
	"github.com/dylan-thinnes/solsys/types"
)

// Flatten returns factors of the composite repeated according to their multiplicity.
func Flatten(arena *alloc.Arena, address types.CompositeAddress) []*big.Int {
	return lo.FlatMap(arena.Composite(address).Factors, func(fAddress types.FactorAddress, _ int) []*big.Int {
		f := arena.Factor(fAddress)
		return lo.Times(int(f.Multiplicity), func(_ int) *big.Int {
			return new(big.Int).Set(f.Base)
		})
	})
}
