package task

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Runnable represents a component that can be started and shut down.
type Runnable interface {
	Start(ctx context.Context) error
	Shutdown() error
}

// Group manages multiple background tasks with unified lifecycle.
type Group struct {
	tasks  []Runnable
	logger *zap.Logger
}

// NewGroup creates an empty task group.
func NewGroup(logger *zap.Logger) *Group {
	return &Group{logger: logger}
}

// Add registers a task with the group.
func (g *Group) Add(t Runnable) {
	g.tasks = append(g.tasks, t)
}

// Start starts all tasks. On failure, already-started tasks are shut
// down before returning.
func (g *Group) Start(ctx context.Context) error {
	for i, t := range g.tasks {
		if err := t.Start(ctx); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = g.tasks[j].Shutdown()
			}

			return fmt.Errorf("failed to start task %d: %w", i, err)
		}
	}

	g.logger.Debug("task group started", zap.Int("count", len(g.tasks)))

	return nil
}

// Shutdown stops all tasks, returning the first error encountered.
func (g *Group) Shutdown() error {
	var firstErr error

	for _, t := range g.tasks {
		if err := t.Shutdown(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
