package tree

import (
	"encoding/json"
	"io"
	"math/big"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/dylan-thinnes/solsys/alloc"
	"github.com/dylan-thinnes/solsys/types"
)

// Format defines the output format of rendered tree.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", errors.Errorf("unknown format %q", name)
	}
}

// Render writes the tree rooted at root to the writer. Output is terminated by a new line.
// Absent powers and spacers are rendered as null and empty factor lists as empty arrays.
func Render(w io.Writer, arena *alloc.Arena, root types.CompositeAddress, format Format) error {
	view := newCompositeView(arena, root)

	switch format {
	case FormatJSON, "":
		return errors.WithStack(json.NewEncoder(w).Encode(view))
	case FormatYAML:
		if _, err := io.WriteString(w, "---\n"); err != nil {
			return errors.WithStack(err)
		}
		e := yaml.NewEncoder(w)
		e.SetIndent(2)
		if err := e.Encode(view); err != nil {
			return errors.WithStack(err)
		}
		return errors.WithStack(e.Close())
	default:
		return errors.Errorf("unknown format %q", format)
	}
}

type compositeView struct {
	Value   number       `json:"value" yaml:"value"`
	Factors []factorView `json:"factors" yaml:"factors"`
}

type factorView struct {
	Base   number         `json:"base" yaml:"base"`
	Kind   string         `json:"kind" yaml:"kind"`
	Power  *compositeView `json:"power" yaml:"power"`
	Pi     number         `json:"pi" yaml:"pi"`
	Spacer *compositeView `json:"spacer" yaml:"spacer"`
}

func newCompositeView(arena *alloc.Arena, address types.CompositeAddress) *compositeView {
	if address == 0 {
		return nil
	}

	c := arena.Composite(address)
	return &compositeView{
		Value: number{v: c.Value},
		Factors: lo.Map(c.Factors, func(fAddress types.FactorAddress, _ int) factorView {
			f := arena.Factor(fAddress)
			return factorView{
				Base:   number{v: f.Base},
				Kind:   f.Kind.String(),
				Power:  newCompositeView(arena, f.Power),
				Pi:     number{v: f.Pi},
				Spacer: newCompositeView(arena, f.Spacer),
			}
		}),
	}
}

// number renders arbitrary-precision integer as bare integer literal.
type number struct {
	v *big.Int
}

func (n number) MarshalJSON() ([]byte, error) {
	if n.v == nil {
		return []byte("null"), nil
	}
	return []byte(n.v.String()), nil
}

func (n number) MarshalYAML() (any, error) {
	if n.v == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	// Tag is left to be resolved, explicit !!int is emitted for values not fitting 64 bits otherwise.
	return &yaml.Node{Kind: yaml.ScalarNode, Value: n.v.String()}, nil
}
