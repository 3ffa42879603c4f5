package model

import "time"

// PipelineOption defines the interface for pipeline options.
type PipelineOption interface {
	// New initialises the pipeline option.
	New() error

	pipelineSourceOption
	pipelineStepOption
	pipelineSinkOption

	// Finish runs after the pipeline is finished.
	Finish() error
}

// pipelineSourceOption defines the interface for source options at the pipeline level.
type pipelineSourceOption interface {
	// PrepareSource runs before the source step is executed.
	PrepareSource(step *StepInfo) error
}

// pipelineStepOption defines the interface for stage options at the pipeline level.
type pipelineStepOption interface {
	// PrepareStep runs before the stage is executed.
	PrepareStep(parentStep, step *StepInfo) error
	// OnStepOutput runs everytime a record is pushed to the output of the stage.
	OnStepOutput(parentStep, step *StepInfo, iterationDuration, computationDuration time.Duration) error
}

// pipelineSinkOption defines the interface for sink options at the pipeline level.
type pipelineSinkOption interface {
	// PrepareSink runs before the sink step is executed.
	PrepareSink(parentStep, step *StepInfo) error
	// OnSinkOutput runs everytime the sink consumes a record.
	OnSinkOutput(parentStep, step *StepInfo, iterationDuration, computationDuration time.Duration) error
	// AfterSink runs after the sink step is executed.
	AfterSink(step *StepInfo, totalDuration time.Duration) error
}
