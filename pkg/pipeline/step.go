package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-hybrid-cipher/pkg/cipher"
	"github.com/askiada/go-hybrid-cipher/pkg/pipeline/model"
)

func runStage(ctx context.Context, goIdx int, pipe *Pipeline, input, output *model.Step, stage cipher.Stage) error {
	for {
		start := time.Now()
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "go routine %d", goIdx)
		case in, ok := <-input.Output:
			if !ok {
				return nil
			}
			startFn := time.Now()
			text, err := stage.Apply(in.Text)
			if err != nil {
				return errors.Wrapf(err, "line %d", in.Line+1)
			}
			endFn := time.Since(startFn)

			// check the context again so that no goroutine keeps feeding a cancelled pipeline
			select {
			case <-ctx.Done():
				return errors.Wrapf(ctx.Err(), "go routine %d", goIdx)
			case output.Output <- model.Record{Line: in.Line, Text: text}:
				for _, opt := range pipe.opts {
					err := opt.OnStepOutput(input.Details, output.Details, time.Since(start), endFn)
					if err != nil {
						return errors.Wrap(err, "unable to run on step output function")
					}
				}
			}
		}
	}
}

func runConcurrentStage(ctx context.Context, pipe *Pipeline, input, output *model.Step, stage cipher.Stage) error {
	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(output.Details.Concurrent)
	// each consumer stops as soon as an error happens
	for goIdx := 0; goIdx < output.Details.Concurrent; goIdx++ {
		errGrp.Go(func() error {
			return runStage(dCtx, goIdx, pipe, input, output, stage)
		})
	}

	return errGrp.Wait()
}

// AddStage adds a cipher stage reading from input. Records keep their line number, so a
// concurrent stage may reorder them.
func AddStage(pipe *Pipeline, stage cipher.Stage, input *model.Step, opts ...StepOption) (*model.Step, error) {
	if pipe == nil {
		return nil, ErrPipelineMustBeSet
	}
	if input == nil {
		return nil, ErrInputMustBeSet
	}
	if stage.Apply == nil {
		return nil, ErrStageMustBeSet
	}

	cfg := &stepConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.concurrent < 1 {
		cfg.concurrent = 1
	}

	output := &model.Step{
		Details: &model.StepInfo{
			Type:       model.StageStepType,
			Name:       stage.Name,
			Concurrent: cfg.concurrent,
		},
		Output: make(chan model.Record),
	}
	for _, opt := range pipe.opts {
		err := opt.PrepareStep(input.Details, output.Details)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run before step function")
		}
	}

	errC := make(chan error, 1)
	pipe.errcList.add(newErrorChan(stage.Name, errC))
	pipe.goFn = append(pipe.goFn, func(ctx context.Context) {
		defer func() {
			close(output.Output)
			close(errC)
		}()

		var err error
		if output.Details.Concurrent == 1 {
			err = runStage(ctx, 0, pipe, input, output, stage)
		} else {
			err = runConcurrentStage(ctx, pipe, input, output, stage)
		}
		if err != nil {
			errC <- err
		}
	})

	return output, nil
}

// AddStages chains stages after input and returns the last step.
func AddStages(pipe *Pipeline, stages []cipher.Stage, input *model.Step, opts ...StepOption) (*model.Step, error) {
	step := input
	for _, stage := range stages {
		var err error
		step, err = AddStage(pipe, stage, step, opts...)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to add %s stage", stage.Name)
		}
	}

	return step, nil
}
