package alloc

import (
	"math/big"

	"github.com/dylan-thinnes/solsys/types"
)

// NewArena creates arena for tree nodes.
func NewArena() *Arena {
	return &Arena{
		// Address 0 is reserved to represent absent node.
		composites:     make([]types.Composite, 1),
		factors:        make([]types.Factor, 1),
		compositesUsed: make([]bool, 1),
		factorsUsed:    make([]bool, 1),
	}
}

// Arena stores composite and factor nodes under stable addresses.
type Arena struct {
	composites     []types.Composite
	factors        []types.Factor
	compositesUsed []bool
	factorsUsed    []bool

	freeComposites []types.CompositeAddress
	freeFactors    []types.FactorAddress
	ints           []*big.Int

	liveComposites uint64
	liveFactors    uint64
}

// Stats stores arena counters.
type Stats struct {
	Composites uint64
	Factors    uint64
	PooledInts uint64
}

// Stats returns number of live nodes and pooled integers.
func (a *Arena) Stats() Stats {
	return Stats{
		Composites: a.liveComposites,
		Factors:    a.liveFactors,
		PooledInts: uint64(len(a.ints)),
	}
}

// Composite returns composite stored under the address.
func (a *Arena) Composite(address types.CompositeAddress) *types.Composite {
	if address == 0 || uint64(address) >= uint64(len(a.composites)) || !a.compositesUsed[address] {
		panic("composite address is not allocated")
	}
	return &a.composites[address]
}

// Factor returns factor stored under the address.
func (a *Arena) Factor(address types.FactorAddress) *types.Factor {
	if address == 0 || uint64(address) >= uint64(len(a.factors)) || !a.factorsUsed[address] {
		panic("factor address is not allocated")
	}
	return &a.factors[address]
}

// AllocateComposite allocates pending composite representing the value.
func (a *Arena) AllocateComposite(value *big.Int) types.CompositeAddress {
	var address types.CompositeAddress
	if n := len(a.freeComposites); n > 0 {
		address = a.freeComposites[n-1]
		a.freeComposites = a.freeComposites[:n-1]
	} else {
		address = types.CompositeAddress(len(a.composites))
		a.composites = append(a.composites, types.Composite{})
		a.compositesUsed = append(a.compositesUsed, false)
	}

	a.composites[address] = types.Composite{Value: value}
	a.compositesUsed[address] = true
	a.liveComposites++
	return address
}

// AllocateFactor allocates empty factor.
func (a *Arena) AllocateFactor() (types.FactorAddress, *types.Factor) {
	var address types.FactorAddress
	if n := len(a.freeFactors); n > 0 {
		address = a.freeFactors[n-1]
		a.freeFactors = a.freeFactors[:n-1]
	} else {
		address = types.FactorAddress(len(a.factors))
		a.factors = append(a.factors, types.Factor{})
		a.factorsUsed = append(a.factorsUsed, false)
	}

	a.factors[address] = types.Factor{}
	a.factorsUsed[address] = true
	a.liveFactors++
	return address, &a.factors[address]
}

// DeallocateComposite releases composite slot. Factors and value must be released by the caller before.
func (a *Arena) DeallocateComposite(address types.CompositeAddress) {
	if address == 0 || uint64(address) >= uint64(len(a.composites)) || !a.compositesUsed[address] {
		// This is really critical because it means that we deallocated more than allocated.
		panic("composite deallocated twice")
	}

	a.composites[address] = types.Composite{}
	a.compositesUsed[address] = false
	a.freeComposites = append(a.freeComposites, address)
	a.liveComposites--
}

// DeallocateFactor releases factor slot together with its base and pi.
func (a *Arena) DeallocateFactor(address types.FactorAddress) {
	if address == 0 || uint64(address) >= uint64(len(a.factors)) || !a.factorsUsed[address] {
		panic("factor deallocated twice")
	}

	f := &a.factors[address]
	a.FreeInt(f.Base)
	a.FreeInt(f.Pi)

	a.factors[address] = types.Factor{}
	a.factorsUsed[address] = false
	a.freeFactors = append(a.freeFactors, address)
	a.liveFactors--
}

// NewInt returns zeroed integer, reusing released ones if possible.
func (a *Arena) NewInt() *big.Int {
	if n := len(a.ints); n > 0 {
		v := a.ints[n-1]
		a.ints = a.ints[:n-1]
		return v
	}
	return new(big.Int)
}

// FreeInt returns integer to the pool. Caller must not use it afterwards.
func (a *Arena) FreeInt(v *big.Int) {
	if v == nil {
		return
	}
	v.SetInt64(0)
	a.ints = append(a.ints, v)
}
