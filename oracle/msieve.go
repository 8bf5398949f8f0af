package oracle

import (
	"bufio"
	"bytes"
	"context"
	"regexp"

	"github.com/pkg/errors"

	"github.com/dylan-thinnes/solsys/types"
)

var msieveFactorRegExp = regexp.MustCompile(`^(prp|p|c)\d+: (\d+)$`)

// NewMsieve creates factorizer running external msieve process.
func NewMsieve(config ProcessConfig) *Msieve {
	return &Msieve{
		config: config,
	}
}

// Msieve factorizes numbers using msieve binary.
type Msieve struct {
	config ProcessConfig
}

// Factorize factorizes the value.
func (m *Msieve) Factorize(ctx context.Context, value string) ([]Record, error) {
	output, err := run(ctx, m.config, value)
	if err != nil {
		return nil, err
	}
	return ParseMsieveOutput(output)
}

// ParseMsieveOutput parses factors printed by msieve in quiet mode.
// Lines other than factor reports are ignored.
func ParseMsieveOutput(output []byte) ([]Record, error) {
	records := []Record{}
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		matches := msieveFactorRegExp.FindSubmatch(bytes.TrimSpace(scanner.Bytes()))
		if matches == nil {
			continue
		}
		kind, err := types.ParseKind(string(matches[1]))
		if err != nil {
			return nil, errors.Wrap(ErrMalformedOutput, err.Error())
		}
		records = append(records, Record{
			Value: string(matches[2]),
			Kind:  kind,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return records, nil
}
