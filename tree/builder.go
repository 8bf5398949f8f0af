package tree

import (
	"context"
	"math/big"

	"github.com/outofforest/logger"
	"github.com/outofforest/mass"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dylan-thinnes/solsys/alloc"
	"github.com/dylan-thinnes/solsys/oracle"
	"github.com/dylan-thinnes/solsys/queue"
	"github.com/dylan-thinnes/solsys/types"
)

// ErrNoFactors is returned when oracle reports no factors for a value requiring decomposition.
var ErrNoFactors = errors.New("oracle returned no factors")

const taskBatchSize = 256

var one = big.NewInt(1)

// Config stores configuration of the tree builder.
type Config struct {
	Factorizer oracle.Factorizer
	Statistic  oracle.Statistic

	// Threshold is the value below which prime-counting function is computed exactly.
	Threshold *big.Int

	// Arena stores the nodes of built trees. New arena is created if nil.
	Arena *alloc.Arena
}

// Stats stores counters of the last decomposition.
type Stats struct {
	Tasks       uint64
	OracleCalls uint64
}

// New creates new tree builder.
func New(config Config) *Builder {
	if config.Threshold == nil {
		config.Threshold = oracle.DefaultThreshold
	}
	if config.Arena == nil {
		config.Arena = alloc.NewArena()
	}
	return &Builder{
		config: config,
		q:      queue.New(config.Arena, mass.New[types.Task](taskBatchSize)),
	}
}

// Builder builds factorization trees. It is not safe for concurrent use.
type Builder struct {
	config Config
	q      *queue.Queue
	stats  Stats
}

// Arena returns the arena storing built trees.
func (b *Builder) Arena() *alloc.Arena {
	return b.config.Arena
}

// Stats returns counters of the last decomposition.
func (b *Builder) Stats() Stats {
	return b.stats
}

// Decompose builds the full factorization tree of the value and returns its root.
// The root keeps the value passed by the caller. On error nothing is left allocated in the arena.
func (b *Builder) Decompose(ctx context.Context, value *big.Int) (types.CompositeAddress, error) {
	b.stats = Stats{}
	q := b.q
	root := q.ScheduleRoot(value)

	for {
		task, ok := q.Pop()
		if !ok {
			return root, nil
		}
		if err := ctx.Err(); err != nil {
			q.Recycle(task)
			return 0, b.abort(q, root, errors.Wrapf(oracle.ErrInterrupted, "decomposition of %s: %s", value, err))
		}
		b.stats.Tasks++

		err := b.process(ctx, q, task)
		q.Recycle(task)
		if err != nil {
			return 0, b.abort(q, root, err)
		}
	}
}

func (b *Builder) abort(q *queue.Queue, root types.CompositeAddress, err error) error {
	q.Drain()
	Release(b.config.Arena, root, false)
	return err
}

func (b *Builder) process(ctx context.Context, q *queue.Queue, task *types.Task) error {
	arena := b.config.Arena
	c := arena.Composite(task.Output)
	if c.State != types.StatePending {
		panic("composite decomposed twice")
	}
	c.State = types.StateDecomposed

	if c.Value.Cmp(one) <= 0 {
		return nil
	}

	log := logger.Get(ctx)
	log.Debug("Factoring possible composite", zap.String("value", task.Value))

	b.stats.OracleCalls++
	records, err := b.config.Factorizer.Factorize(ctx, task.Value)
	if err != nil {
		return errors.Wrapf(err, "factorization of %s failed", task.Value)
	}
	if len(records) == 0 {
		return errors.Wrapf(ErrNoFactors, "value %s", task.Value)
	}
	if len(records) == 1 {
		v, ok := new(big.Int).SetString(records[0].Value, 10)
		if ok && v.Cmp(c.Value) == 0 {
			// Value is prime or oracle can't split it.
			return nil
		}
	}

	// Equal factors are expected to be adjacent, sequence is not sorted here.
	for i := 0; i < len(records); {
		j := i + 1
		for j < len(records) && records[j].Value == records[i].Value {
			j++
		}
		if err := b.addGroup(ctx, q, task.Output, records[i], uint64(j-i)); err != nil {
			return err
		}
		i = j
	}

	return nil
}

// addGroup appends factor group to the composite and schedules decomposition of its power and spacer.
// Arena pointers are refreshed after each allocation because arena storage might be moved.
func (b *Builder) addGroup(
	ctx context.Context,
	q *queue.Queue,
	output types.CompositeAddress,
	record oracle.Record,
	multiplicity uint64,
) error {
	arena := b.config.Arena

	base := arena.NewInt()
	if _, ok := base.SetString(record.Value, 10); !ok || base.Sign() <= 0 {
		arena.FreeInt(base)
		return errors.Wrapf(oracle.ErrMalformedOutput, "invalid factor %q", record.Value)
	}

	fAddress, f := arena.AllocateFactor()
	f.Base = base
	f.Kind = record.Kind
	f.Multiplicity = multiplicity

	c := arena.Composite(output)
	var prevAddress types.FactorAddress
	if n := len(c.Factors); n > 0 {
		prevAddress = c.Factors[n-1]
	}
	c.Factors = append(c.Factors, fAddress)

	pi, err := oracle.Pi(ctx, b.config.Statistic, b.config.Threshold, base)
	if err != nil {
		return errors.Wrapf(err, "computing pi(%s) failed", base)
	}
	arena.Factor(fAddress).Pi = pi

	log := logger.Get(ctx)
	log.Debug("Found factor group",
		zap.Stringer("base", base),
		zap.Uint64("power", multiplicity),
		zap.Stringer("pi", pi))

	if multiplicity > 1 {
		power := q.Schedule(arena.NewInt().SetUint64(multiplicity))
		arena.Factor(fAddress).Power = power
	}

	if prevAddress == 0 {
		return nil
	}

	gap := arena.NewInt().Sub(pi, arena.Factor(prevAddress).Pi)
	gap.Sub(gap, one)
	if gap.Sign() <= 0 {
		arena.FreeInt(gap)
		return nil
	}

	log.Debug("Scheduling spacer", zap.Stringer("base", base), zap.Stringer("gap", gap))
	spacer := q.Schedule(gap)
	arena.Factor(fAddress).Spacer = spacer

	return nil
}
