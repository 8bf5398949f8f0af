package main

import (
	"bytes"
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/dylan-thinnes/solsys/oracle"
	"github.com/dylan-thinnes/solsys/test"
	"github.com/dylan-thinnes/solsys/tree"
	"github.com/dylan-thinnes/solsys/types"
)

func newTestDemo(mode mode, factorizer oracle.Factorizer) (*demo, *bytes.Buffer) {
	statistic := &test.Statistic{}
	buf := &bytes.Buffer{}
	return &demo{
		mode:       mode,
		format:     tree.FormatJSON,
		factorizer: factorizer,
		statistic:  statistic,
		threshold:  oracle.DefaultThreshold,
		builder: tree.New(tree.Config{
			Factorizer: factorizer,
			Statistic:  statistic,
		}),
		out: buf,
	}, buf
}

func TestRecursiveDemo(t *testing.T) {
	requireT := require.New(t)
	ctx := test.Context(t)

	d, buf := newTestDemo(modeRecursive, &test.TrialDivision{})
	requireT.NoError(d.RunAll(ctx, []string{"12", "7"}))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	requireT.Len(lines, 2)

	var root struct {
		Value   json.Number `json:"value"`
		Factors []any       `json:"factors"`
	}
	requireT.NoError(json.Unmarshal([]byte(lines[0]), &root))
	requireT.Equal("12", root.Value.String())
	requireT.Len(root.Factors, 2)

	requireT.Equal(`{"value":7,"factors":[]}`, lines[1])
	requireT.Zero(d.builder.Arena().Stats().Composites)
	requireT.Zero(d.builder.Arena().Stats().Factors)
}

func TestFactorizationDemo(t *testing.T) {
	requireT := require.New(t)
	ctx := test.Context(t)

	d, buf := newTestDemo(modeFactorization, &test.Table{
		Factors: map[string][]oracle.Record{
			"12": test.Primes("2", "2", "3"),
			"1001": {
				{Value: "7", Kind: types.KindPrime},
				{Value: "143", Kind: types.KindComposite},
			},
		},
	})
	requireT.NoError(d.RunAll(ctx, []string{"12", "1001"}))
	requireT.Equal("p1 2 p1 2 p1 3\np1 7 c3 143\n", buf.String())
}

func TestStatisticDemos(t *testing.T) {
	requireT := require.New(t)
	ctx := test.Context(t)

	d, buf := newTestDemo(modePrimeCount, &test.TrialDivision{})
	requireT.NoError(d.RunAll(ctx, []string{"100", "1"}))
	requireT.Equal("25\n0\n", buf.String())

	d, buf = newTestDemo(modeLogInt, &test.TrialDivision{})
	requireT.NoError(d.Run(ctx, big.NewInt(10)))
	requireT.Equal("4\n", buf.String())

	// Test statistic computes exact count for both, so error is zero.
	d, buf = newTestDemo(modeLogIntErr, &test.TrialDivision{})
	requireT.NoError(d.Run(ctx, big.NewInt(1000)))
	requireT.Equal("0\n", buf.String())
}

func TestInvalidInputStopsBeforeProcessing(t *testing.T) {
	requireT := require.New(t)
	ctx := test.Context(t)

	factorizer := &test.TrialDivision{}
	d, buf := newTestDemo(modeRecursive, factorizer)
	err := d.RunAll(ctx, []string{"12", "abc"})
	requireT.ErrorIs(err, tree.ErrInvalidInput)
	requireT.Zero(factorizer.Calls)
	requireT.Empty(buf.String())
}

func TestFirstErrorStopsProcessing(t *testing.T) {
	requireT := require.New(t)
	ctx := test.Context(t)

	factorizer := &test.Interrupting{
		Factorizer: &test.TrialDivision{},
		After:      0,
	}
	d, buf := newTestDemo(modeRecursive, factorizer)
	err := d.RunAll(ctx, []string{"12", "30"})
	requireT.ErrorIs(err, oracle.ErrInterrupted)
	requireT.Equal(1, factorizer.Calls)
	requireT.Empty(buf.String())
}

func parseMode(args ...string) (mode, error) {
	var m mode
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addModeFlags(flags, &m)
	err := flags.Parse(args)
	return m, err
}

func TestModeSelection(t *testing.T) {
	requireT := require.New(t)

	m, err := parseMode()
	requireT.NoError(err)
	requireT.Equal(modeRecursive, m)

	m, err = parseMode("-e")
	requireT.NoError(err)
	requireT.Equal(modeLogIntErr, m)

	m, err = parseMode("--factorization", "12")
	requireT.NoError(err)
	requireT.Equal(modeFactorization, m)
}

func TestLastModeFlagWins(t *testing.T) {
	requireT := require.New(t)

	m, err := parseMode("-p", "-l")
	requireT.NoError(err)
	requireT.Equal(modeLogInt, m)

	m, err = parseMode("-l", "-f", "-r")
	requireT.NoError(err)
	requireT.Equal(modeRecursive, m)

	m, err = parseMode("-pl")
	requireT.NoError(err)
	requireT.Equal(modeLogInt, m)

	m, err = parseMode("--primecount", "--primecount=false")
	requireT.NoError(err)
	requireT.Equal(modeRecursive, m)
}
