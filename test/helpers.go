package test

import (
	"context"
	"testing"

	"github.com/outofforest/logger"

	"github.com/dylan-thinnes/solsys/alloc"
	"github.com/dylan-thinnes/solsys/types"
)

// CollectComposites collects addresses of all composites reachable from the root, in breadth-first order.
func CollectComposites(arena *alloc.Arena, root types.CompositeAddress) []types.CompositeAddress {
	composites := []types.CompositeAddress{}
	stack := []types.CompositeAddress{root}
	for len(stack) > 0 {
		address := stack[0]
		stack = stack[1:]
		composites = append(composites, address)

		for _, fAddress := range arena.Composite(address).Factors {
			f := arena.Factor(fAddress)
			if f.Power != 0 {
				stack = append(stack, f.Power)
			}
			if f.Spacer != 0 {
				stack = append(stack, f.Spacer)
			}
		}
	}
	return composites
}

// Context returns context carrying logger, as required by code logging through it.
func Context(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(logger.WithLogger(context.Background(), logger.New(logger.DefaultConfig)))
	t.Cleanup(cancel)
	return ctx
}
