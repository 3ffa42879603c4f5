package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-hybrid-cipher/pkg/pipeline/model"
)

// AddSink adds the final step consuming records. sinkFn is called from a single goroutine.
func AddSink(pipe *Pipeline, name string, input *model.Step, sinkFn func(ctx context.Context, input model.Record) error) error {
	if pipe == nil {
		return ErrPipelineMustBeSet
	}
	if input == nil {
		return ErrInputMustBeSet
	}
	if sinkFn == nil {
		return ErrStageMustBeSet
	}

	step := &model.Step{
		Details: &model.StepInfo{
			Type:       model.SinkStepType,
			Name:       name,
			Concurrent: 1,
		},
	}
	for _, opt := range pipe.opts {
		err := opt.PrepareSink(input.Details, step.Details)
		if err != nil {
			return errors.Wrap(err, "unable to run before sink function")
		}
	}

	errC := make(chan error, 1)
	pipe.errcList.add(newErrorChan(name, errC))
	pipe.hasSink = true
	pipe.goFn = append(pipe.goFn, func(ctx context.Context) {
		defer close(errC)

		err := consume(ctx, pipe, input, step, sinkFn)
		if err != nil {
			errC <- err

			return
		}
		for _, opt := range pipe.opts {
			err := opt.AfterSink(step.Details, time.Since(pipe.startTime))
			if err != nil {
				errC <- errors.Wrap(err, "unable to run after sink function")

				return
			}
		}
	})

	return nil
}

func consume(ctx context.Context, pipe *Pipeline, input, step *model.Step, sinkFn func(ctx context.Context, input model.Record) error) error {
	for {
		startInputChan := time.Now()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in, ok := <-input.Output:
			if !ok {
				return nil
			}
			endInputChan := time.Since(startInputChan)

			startFn := time.Now()
			err := sinkFn(ctx, in)
			if err != nil {
				return err
			}
			endFn := time.Since(startFn)
			for _, opt := range pipe.opts {
				err := opt.OnSinkOutput(input.Details, step.Details, endInputChan+endFn, endFn)
				if err != nil {
					return errors.Wrap(err, "unable to run on sink output function")
				}
			}
		}
	}
}
