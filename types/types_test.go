package types

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindTags(t *testing.T) {
	requireT := require.New(t)

	for kind, tag := range map[Kind]string{
		KindPrime:         "p",
		KindComposite:     "c",
		KindProbablePrime: "prp",
	} {
		requireT.Equal(tag, kind.String())

		parsed, err := ParseKind(tag)
		requireT.NoError(err)
		requireT.Equal(kind, parsed)
	}

	_, err := ParseKind("x")
	requireT.Error(err)
	requireT.Equal("?", Kind(10).String())
}

func TestCompositeNodeAndCompositeKindCoexist(t *testing.T) {
	requireT := require.New(t)

	c := Composite{Value: big.NewInt(143)}
	f := Factor{Base: big.NewInt(143), Kind: KindComposite, Multiplicity: 1}

	requireT.Equal(StatePending, c.State)
	requireT.Equal("c", f.Kind.String())
}
