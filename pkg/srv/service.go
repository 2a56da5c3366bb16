package srv

import (
	"context"
	"time"

	"github.com/sandevgo/debugtool/pkg/log"
)

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// StartServices runs each service in its own goroutine. A service that fails
// to start cancels the whole set through cancel.
func StartServices(ctx context.Context, services []Service, cancel context.CancelFunc) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				logger.Error().Err(err).Msgf("%T failed", service)
				if cancel != nil {
					cancel()
				}
			}
		}(service)
	}
}

// ShutdownTimeout bounds each service's Shutdown.
var ShutdownTimeout = 10 * time.Second

// ShutdownServices waits for ctx to end, then shuts services down in reverse
// start order.
func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()
	logger := log.FromCtx(ctx)
	for i := len(services) - 1; i >= 0; i-- {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
		err := services[i].Shutdown(sctx)
		cancel()
		if err != nil {
			logger.Error().Err(err).Msgf("%T failed to shutdown", services[i])
		}
	}
}
