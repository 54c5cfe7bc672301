package source

import (
	"context"

	"github.com/m-mizutani/localstamp/pkg/domain/model"
)

// Fixed returns a configured offset string
type Fixed struct {
	value string
}

// NewFixed creates a Fixed source. value is parsed on every call so a bad
// value surfaces as a detection warning.
func NewFixed(value string) *Fixed {
	return &Fixed{value: value}
}

// Name implements interfaces.OffsetSource
func (f *Fixed) Name() string {
	return "fixed"
}

// Offset implements interfaces.OffsetSource
func (f *Fixed) Offset(ctx context.Context) (model.Offset, error) {
	return model.ParseOffset(f.value)
}
