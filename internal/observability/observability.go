// Package observability starts the tracing, log export and profiling
// pipelines configured for the process.
package observability

import (
	"context"
	"errors"

	"github.com/riskibarqy/matchday/internal/config"
	"github.com/riskibarqy/matchday/internal/platform/logging"
)

type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup starts every enabled pipeline. The returned func stops them in
// reverse order and joins their errors. On error the pipelines already
// started are stopped before returning.
func Setup(ctx context.Context, cfg config.Config, logger *logging.Logger) (ShutdownFunc, error) {
	if logger == nil {
		logger = logging.Default()
	}

	starters := []func(config.Config, *logging.Logger) (ShutdownFunc, error){
		initUptrace,
		startPyroscope,
		startPprof,
	}

	var stops []ShutdownFunc
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(stops) - 1; i >= 0; i-- {
			errs = append(errs, stops[i](ctx))
		}
		return errors.Join(errs...)
	}

	for _, start := range starters {
		stop, err := start(cfg, logger)
		if err != nil {
			return nil, errors.Join(err, shutdown(ctx))
		}
		stops = append(stops, stop)
	}
	return shutdown, nil
}
