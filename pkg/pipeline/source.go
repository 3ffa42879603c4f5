package pipeline

import (
	"context"

	"github.com/pkg/errors"

	"github.com/askiada/go-hybrid-cipher/pkg/pipeline/model"
)

// AddSource adds the step producing records. sourceFn must stop sending once ctx is done;
// the output channel is closed when it returns.
func AddSource(pipe *Pipeline, name string, sourceFn func(ctx context.Context, out chan<- model.Record) error) (*model.Step, error) {
	if pipe == nil {
		return nil, ErrPipelineMustBeSet
	}
	if sourceFn == nil {
		return nil, ErrStageMustBeSet
	}

	step := &model.Step{
		Details: &model.StepInfo{
			Type:       model.SourceStepType,
			Name:       name,
			Concurrent: 1,
		},
		Output: make(chan model.Record),
	}
	for _, opt := range pipe.opts {
		err := opt.PrepareSource(step.Details)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run before source function")
		}
	}

	errC := make(chan error, 1)
	pipe.errcList.add(newErrorChan(name, errC))
	pipe.goFn = append(pipe.goFn, func(ctx context.Context) {
		defer func() {
			close(step.Output)
			close(errC)
		}()
		err := sourceFn(ctx, step.Output)
		if err != nil {
			errC <- err
		}
	})

	return step, nil
}
