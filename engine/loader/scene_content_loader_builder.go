package loader

import (
	"time"

	"github.com/rs/zerolog"
)

// SceneContentLoaderBuilderOption is a functional option for configuring a SceneContentLoader.
type SceneContentLoaderBuilderOption func(*sceneContentLoader)

// WithWorkers sets the number of concurrent mesh decoders.
func WithWorkers(n int) SceneContentLoaderBuilderOption {
	return func(s *sceneContentLoader) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithRetryInterval sets how long a deferred request waits before it is retried.
func WithRetryInterval(d time.Duration) SceneContentLoaderBuilderOption {
	return func(s *sceneContentLoader) {
		s.retryInterval = d
	}
}

// WithClock replaces the time source used to schedule deferred requests.
func WithClock(now func() time.Time) SceneContentLoaderBuilderOption {
	return func(s *sceneContentLoader) {
		s.now = now
	}
}

// WithListeners registers load listeners up front.
func WithListeners(listeners ...LoadListener) SceneContentLoaderBuilderOption {
	return func(s *sceneContentLoader) {
		for _, l := range listeners {
			s.listeners.Add(l)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) SceneContentLoaderBuilderOption {
	return func(s *sceneContentLoader) {
		s.logger = logger
	}
}
