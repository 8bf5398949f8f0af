package main

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/outofforest/logger"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/dylan-thinnes/solsys/config"
	"github.com/dylan-thinnes/solsys/oracle"
	"github.com/dylan-thinnes/solsys/tree"
)

type mode int

const (
	modeRecursive mode = iota
	modeFactorization
	modePrimeCount
	modeLogInt
	modeLogIntErr
)

func (m mode) String() string {
	switch m {
	case modeRecursive:
		return "recursive"
	case modeFactorization:
		return "factorization"
	case modePrimeCount:
		return "primecount"
	case modeLogInt:
		return "logint"
	case modeLogIntErr:
		return "logint-err"
	default:
		return "unknown"
	}
}

func newDemo(cfg config.Config, mode mode, format tree.Format, out io.Writer) (*demo, error) {
	threshold, err := cfg.ThresholdValue()
	if err != nil {
		return nil, err
	}
	factorizer, statistic, err := cfg.Oracles()
	if err != nil {
		return nil, err
	}
	return &demo{
		mode:       mode,
		format:     format,
		factorizer: factorizer,
		statistic:  statistic,
		threshold:  threshold,
		builder: tree.New(tree.Config{
			Factorizer: factorizer,
			Statistic:  statistic,
			Threshold:  threshold,
		}),
		out: out,
	}, nil
}

type demo struct {
	mode       mode
	format     tree.Format
	factorizer oracle.Factorizer
	statistic  oracle.Statistic
	threshold  *big.Int
	builder    *tree.Builder
	out        io.Writer
}

// RunAll validates all the inputs first, then processes them in order, stopping on the first error.
func (d *demo) RunAll(ctx context.Context, inputs []string) error {
	values := make([]*big.Int, 0, len(inputs))
	for _, input := range inputs {
		v, err := tree.ParseInput(input)
		if err != nil {
			return err
		}
		values = append(values, v)
	}

	for _, v := range values {
		if err := d.Run(ctx, v); err != nil {
			return errors.WithMessagef(err, "processing %s failed", v)
		}
	}
	return nil
}

// Run processes single input and prints one line of output.
func (d *demo) Run(ctx context.Context, value *big.Int) error {
	switch d.mode {
	case modeRecursive:
		return d.recursive(ctx, value)
	case modeFactorization:
		return d.factorization(ctx, value)
	case modePrimeCount:
		return d.printStatistic(oracle.Pi(ctx, d.statistic, d.threshold, value))
	case modeLogInt:
		return d.printStatistic(d.statistic.LogInt(ctx, value))
	case modeLogIntErr:
		return d.logIntErr(ctx, value)
	default:
		return errors.Errorf("unknown mode %d", d.mode)
	}
}

func (d *demo) recursive(ctx context.Context, value *big.Int) error {
	root, err := d.builder.Decompose(ctx, value)
	if err != nil {
		return err
	}
	defer tree.Release(d.builder.Arena(), root, false)

	stats := d.builder.Stats()
	logger.Get(ctx).Debug("Tree built",
		zap.Stringer("value", value),
		zap.Uint64("tasks", stats.Tasks),
		zap.Uint64("oracleCalls", stats.OracleCalls))

	return tree.Render(d.out, d.builder.Arena(), root, d.format)
}

func (d *demo) factorization(ctx context.Context, value *big.Int) error {
	records, err := d.factorizer.Factorize(ctx, value.String())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(d.out, strings.Join(lo.Map(records, func(r oracle.Record, _ int) string {
		return fmt.Sprintf("%s%d %s", r.Kind, len(r.Value), r.Value)
	}), " "))
	return errors.WithStack(err)
}

func (d *demo) logIntErr(ctx context.Context, value *big.Int) error {
	li, err := d.statistic.LogInt(ctx, value)
	if err != nil {
		return err
	}
	pi, err := d.statistic.PrimePi(ctx, value)
	if err != nil {
		return err
	}
	return d.printStatistic(new(big.Int).Sub(li, pi), nil)
}

func (d *demo) printStatistic(v *big.Int, err error) error {
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(d.out, v)
	return errors.WithStack(err)
}
