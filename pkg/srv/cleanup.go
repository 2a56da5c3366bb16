package srv

import (
	"context"
	"fmt"

	"github.com/sandevgo/debugtool/pkg/log"
)

// Resource is a named close function run when the console shuts down, e.g.
// the history database. It has nothing to start.
type Resource struct {
	Name  string
	close func() error
}

func (r *Resource) Start(ctx context.Context) error {
	return nil
}

// Shutdown closes the resource. A nil close function is a no-op.
func (r *Resource) Shutdown(ctx context.Context) error {
	if r.close == nil {
		return nil
	}

	log.FromCtx(ctx).Debug().Str("resource", r.Name).Msg("closing")
	if err := r.close(); err != nil {
		return fmt.Errorf("close %s: %w", r.Name, err)
	}
	return nil
}

func NewResource(name string, close func() error) *Resource {
	return &Resource{Name: name, close: close}
}
