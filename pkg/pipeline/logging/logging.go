// Package logging provides a pipeline option logging the lifecycle of every step with zap.
package logging

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/askiada/go-hybrid-cipher/pkg/pipeline/model"
)

type pipelineLogger struct {
	logger *zap.Logger

	mu      sync.Mutex
	records map[string]int
}

// PipelineLogger returns a pipeline option logging to logger. Per-record events are logged at
// debug level.
func PipelineLogger(logger *zap.Logger) model.PipelineOption {
	return &pipelineLogger{
		logger:  logger,
		records: make(map[string]int),
	}
}

func (pl *pipelineLogger) New() error {
	pl.logger.Debug("pipeline created")

	return nil
}

func (pl *pipelineLogger) PrepareSource(step *model.StepInfo) error {
	pl.logger.Debug("source added", zap.String("step", step.Name))

	return nil
}

func (pl *pipelineLogger) PrepareStep(parentStep, step *model.StepInfo) error {
	pl.logger.Debug("stage added",
		zap.String("step", step.Name),
		zap.String("parent", parentStep.Name),
		zap.Int("concurrent", step.Concurrent),
	)

	return nil
}

func (pl *pipelineLogger) OnStepOutput(_, step *model.StepInfo, iterationDuration, computationDuration time.Duration) error {
	pl.count(step.Name)
	pl.logger.Debug("record transformed",
		zap.String("step", step.Name),
		zap.Duration("iteration", iterationDuration),
		zap.Duration("computation", computationDuration),
	)

	return nil
}

func (pl *pipelineLogger) PrepareSink(parentStep, step *model.StepInfo) error {
	pl.logger.Debug("sink added", zap.String("step", step.Name), zap.String("parent", parentStep.Name))

	return nil
}

func (pl *pipelineLogger) OnSinkOutput(_, step *model.StepInfo, _, _ time.Duration) error {
	pl.count(step.Name)

	return nil
}

func (pl *pipelineLogger) AfterSink(step *model.StepInfo, totalDuration time.Duration) error {
	pl.mu.Lock()
	written := pl.records[step.Name]
	pl.mu.Unlock()

	pl.logger.Info("sink finished",
		zap.String("step", step.Name),
		zap.Int("records", written),
		zap.Duration("elapsed", totalDuration),
	)

	return nil
}

func (pl *pipelineLogger) Finish() error {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	fields := make([]zap.Field, 0, len(pl.records))
	for name, total := range pl.records {
		fields = append(fields, zap.Int(name, total))
	}
	pl.logger.Info("pipeline finished", zap.Dict("records", fields...))

	return nil
}

func (pl *pipelineLogger) count(name string) {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	pl.records[name]++
}
