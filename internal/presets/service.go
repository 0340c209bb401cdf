package presets

import (
	"context"
	"sync"

	"revenue_leak_backend/internal/events"
	"revenue_leak_backend/platform/apperr"
	"revenue_leak_backend/platform/logger"
	"revenue_leak_backend/platform/metrics"

	"github.com/fsnotify/fsnotify"
)

// Service holds the currently loaded schema and swaps it atomically on
// reload. Readers always see a complete schema; a failed reload keeps the
// previous one active.
type Service struct {
	path string
	bus  events.Bus
	met  *metrics.Metrics
	log  *logger.Logger

	mu      sync.RWMutex
	schema  *Schema
	version int64
}

// NewService creates a presets service for the given file path. Call Load
// before serving. Bus and metrics may be nil in tests.
func NewService(path string, bus events.Bus, met *metrics.Metrics, log *logger.Logger) *Service {
	return &Service{path: path, bus: bus, met: met, log: log}
}

// Load reads the schema file and makes it current. Each successful load
// bumps the version and announces a SchemaUpdated event.
func (s *Service) Load(ctx context.Context) error {
	schema, err := Load(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.schema = schema
	s.version++
	version := s.version
	s.mu.Unlock()

	if s.met != nil {
		s.met.SchemaReloaded()
	}
	if s.bus != nil {
		s.bus.Publish(ctx, events.SchemaUpdated{
			BaseEvent: events.NewBaseEvent(),
			Path:      s.path,
			Version:   version,
		})
	}
	s.log.Info("input schema loaded", "path", s.path, "version", version)
	return nil
}

// Snapshot returns the current schema and its version.
func (s *Service) Snapshot() (Schema, int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.schema == nil {
		return Schema{}, 0
	}
	return *s.schema, s.version
}

// Ping reports whether a schema is loaded. Used by the readiness endpoint.
func (s *Service) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.schema == nil {
		return apperr.Unavailable("input schema not loaded")
	}
	return nil
}

// Watch monitors the schema file and reloads it on every write. A reload
// failure is logged and the previous schema remains active. Watch blocks
// until ctx is cancelled.
func (s *Service) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(s.path); err != nil {
		return err
	}
	s.log.Info("watching input schema for changes", "path", s.path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Editors often save via rename, so catch Create as well as Write.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if err := s.Load(ctx); err != nil {
				s.log.Warn("schema reload failed, keeping previous schema", "path", s.path, "error", err)
			}

			// Re-add the file in case an atomic save replaced the inode.
			_ = watcher.Add(s.path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Error("schema watcher error", "error", err)
		}
	}
}
