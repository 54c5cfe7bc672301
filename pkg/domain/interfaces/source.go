package interfaces

import (
	"context"

	"github.com/m-mizutani/localstamp/pkg/domain/model"
)

// OffsetSource detects a UTC offset
type OffsetSource interface {
	// Name identifies the source in logs and warnings
	Name() string

	// Offset returns the detected offset
	Offset(ctx context.Context) (model.Offset, error)
}

// CommandRunner executes an external command and returns its stdout
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
