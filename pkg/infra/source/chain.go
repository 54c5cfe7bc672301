package source

import (
	"context"
	"errors"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/localstamp/pkg/domain/interfaces"
	"github.com/m-mizutani/localstamp/pkg/domain/model"
)

// Chain tries each source in order and returns the first offset found
type Chain struct {
	sources []interfaces.OffsetSource
}

// NewChain creates a Chain. nil sources are skipped.
func NewChain(sources ...interfaces.OffsetSource) *Chain {
	c := &Chain{}
	for _, src := range sources {
		if src != nil {
			c.sources = append(c.sources, src)
		}
	}
	return c
}

// Name implements interfaces.OffsetSource
func (c *Chain) Name() string {
	names := make([]string, len(c.sources))
	for i, src := range c.sources {
		names[i] = src.Name()
	}
	return "chain(" + strings.Join(names, ",") + ")"
}

// Offset implements interfaces.OffsetSource. When every source fails the
// returned error joins all of their errors.
func (c *Chain) Offset(ctx context.Context) (model.Offset, error) {
	if len(c.sources) == 0 {
		return model.UTC, goerr.Wrap(model.ErrNoSource, "empty source chain")
	}

	logger := ctxlog.From(ctx)
	var errs []error
	for _, src := range c.sources {
		o, err := src.Offset(ctx)
		if err == nil {
			return o, nil
		}

		logger.Debug("Offset source failed", "source", src.Name(), "error", err)
		errs = append(errs, goerr.Wrap(err, "offset source failed", goerr.V("source", src.Name())))
	}

	return model.UTC, errors.Join(errs...)
}
