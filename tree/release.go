package tree

import (
	"github.com/dylan-thinnes/solsys/alloc"
	"github.com/dylan-thinnes/solsys/types"
)

type releaseFrame struct {
	address      types.CompositeAddress
	releaseValue bool
	expanded     bool
}

// Release deallocates the tree in post-order: powers and spacers of each factor before the factor,
// factors before the composite owning them. Values of nested composites are always returned to the arena.
// Value of the root is returned only if releaseValue is true, otherwise it stays with the caller.
func Release(arena *alloc.Arena, root types.CompositeAddress, releaseValue bool) {
	if root == 0 {
		return
	}

	stack := []releaseFrame{{address: root, releaseValue: releaseValue}}
	for len(stack) > 0 {
		frame := &stack[len(stack)-1]
		if !frame.expanded {
			frame.expanded = true
			factors := arena.Composite(frame.address).Factors
			for i := len(factors) - 1; i >= 0; i-- {
				f := arena.Factor(factors[i])
				if f.Spacer != 0 {
					stack = append(stack, releaseFrame{address: f.Spacer, releaseValue: true})
				}
				if f.Power != 0 {
					stack = append(stack, releaseFrame{address: f.Power, releaseValue: true})
				}
			}
			continue
		}

		address, release := frame.address, frame.releaseValue
		stack = stack[:len(stack)-1]

		c := arena.Composite(address)
		for _, fAddress := range c.Factors {
			arena.DeallocateFactor(fAddress)
		}
		if release {
			arena.FreeInt(c.Value)
		}
		arena.DeallocateComposite(address)
	}
}
