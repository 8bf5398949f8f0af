package main

import (
	"context"
	"strings"
	"sync"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/outofforest/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dylan-thinnes/solsys/config"
	"github.com/dylan-thinnes/solsys/tree"
)

// Request is the lambda event.
type Request struct {
	X      string `json:"x"`
	Format string `json:"format"`
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}
	h, err := newHandler(cfg, logger.New(logger.DefaultConfig))
	if err != nil {
		panic(err)
	}
	lambda.Start(h.Handle)
}

func newHandler(cfg config.Config, log *zap.Logger) (*handler, error) {
	threshold, err := cfg.ThresholdValue()
	if err != nil {
		return nil, err
	}
	factorizer, statistic, err := cfg.Oracles()
	if err != nil {
		return nil, err
	}
	return &handler{
		builder: tree.New(tree.Config{
			Factorizer: factorizer,
			Statistic:  statistic,
			Threshold:  threshold,
		}),
		log: log,
	}, nil
}

type handler struct {
	log *zap.Logger

	mu      sync.Mutex
	builder *tree.Builder
}

// Handle decomposes the requested number and returns rendered tree.
func (h *handler) Handle(ctx context.Context, req Request) (string, error) {
	ctx = logger.WithLogger(ctx, h.log)

	value, err := tree.ParseInput(req.X)
	if err != nil {
		return "", err
	}
	format := tree.FormatJSON
	if req.Format != "" {
		if format, err = tree.ParseFormat(req.Format); err != nil {
			return "", err
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	root, err := h.builder.Decompose(ctx, value)
	if err != nil {
		return "", errors.WithMessagef(err, "decomposing %s failed", value)
	}
	defer tree.Release(h.builder.Arena(), root, false)

	var sb strings.Builder
	if err := tree.Render(&sb, h.builder.Arena(), root, format); err != nil {
		return "", err
	}
	return sb.String(), nil
}
