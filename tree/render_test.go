package tree_test

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dylan-thinnes/solsys/oracle"
	"github.com/dylan-thinnes/solsys/test"
	"github.com/dylan-thinnes/solsys/tree"
)

const twelveJSON = `{"value":12,"factors":[` +
	`{"base":2,"kind":"p","power":{"value":2,"factors":[]},"pi":1,"spacer":null},` +
	`{"base":3,"kind":"p","power":null,"pi":2,"spacer":null}]}` + "\n"

func TestRenderJSON(t *testing.T) {
	requireT := require.New(t)
	e := newEnv(map[string][]oracle.Record{
		"12": test.Primes("2", "2", "3"),
		"2":  test.Primes("2"),
	})

	root, err := e.Builder.Decompose(test.Context(t), big.NewInt(12))
	requireT.NoError(err)

	buf := &bytes.Buffer{}
	requireT.NoError(tree.Render(buf, e.Arena, root, tree.FormatJSON))
	requireT.Equal(twelveJSON, buf.String())

	// Rendering is idempotent.
	buf2 := &bytes.Buffer{}
	requireT.NoError(tree.Render(buf2, e.Arena, root, tree.FormatJSON))
	requireT.Equal(buf.String(), buf2.String())
}

func TestRenderLeaf(t *testing.T) {
	requireT := require.New(t)
	e := newEnv(nil)

	root, err := e.Builder.Decompose(test.Context(t), big.NewInt(1))
	requireT.NoError(err)

	buf := &bytes.Buffer{}
	requireT.NoError(tree.Render(buf, e.Arena, root, ""))
	requireT.Equal(`{"value":1,"factors":[]}`+"\n", buf.String())
}

func TestRenderYAML(t *testing.T) {
	requireT := require.New(t)
	e := newEnv(map[string][]oracle.Record{
		"26": test.Primes("2", "13"),
		"4":  test.Primes("2", "2"),
		"2":  test.Primes("2"),
	})

	root, err := e.Builder.Decompose(test.Context(t), big.NewInt(26))
	requireT.NoError(err)

	buf := &bytes.Buffer{}
	requireT.NoError(tree.Render(buf, e.Arena, root, tree.FormatYAML))

	var doc map[string]any
	requireT.NoError(yaml.Unmarshal(buf.Bytes(), &doc))
	requireT.Equal(26, doc["value"])

	factors := doc["factors"].([]any)
	requireT.Len(factors, 2)

	first := factors[0].(map[string]any)
	requireT.Equal(2, first["base"])
	requireT.Equal("p", first["kind"])
	requireT.Equal(1, first["pi"])
	requireT.Contains(first, "power")
	requireT.Nil(first["power"])
	requireT.Contains(first, "spacer")
	requireT.Nil(first["spacer"])

	second := factors[1].(map[string]any)
	spacer := second["spacer"].(map[string]any)
	requireT.Equal(4, spacer["value"])
	requireT.Len(spacer["factors"], 1)
}

func TestParseFormat(t *testing.T) {
	requireT := require.New(t)

	f, err := tree.ParseFormat("yaml")
	requireT.NoError(err)
	requireT.Equal(tree.FormatYAML, f)

	_, err = tree.ParseFormat("xml")
	requireT.Error(err)
}
