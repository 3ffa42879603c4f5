package pipeline

import (
	"bufio"
	"context"
	"io"
	"sync"

	"github.com/pkg/errors"

	"github.com/askiada/go-hybrid-cipher/pkg/cipher"
	"github.com/askiada/go-hybrid-cipher/pkg/pipeline/model"
)

const (
	sourceName = "read lines"
	sinkName   = "write lines"
)

// LinesConfig configures TransformLines.
type LinesConfig struct {
	// Concurrency is the number of goroutines per stage.
	Concurrency int
	// Options are passed to New.
	Options []model.PipelineOption
}

// TransformLines runs every line of r through stages and writes the results to w, one per
// line and in input order. Empty lines are written back unchanged without entering the stages.
// The first line a stage rejects stops the run.
func TransformLines(ctx context.Context, r io.Reader, w io.Writer, stages []cipher.Stage, cfg LinesConfig) error {
	pipe, err := New(ctx, cfg.Options...)
	if err != nil {
		return err
	}

	blank := newLineSet()
	source, err := AddSource(pipe, sourceName, func(ctx context.Context, out chan<- model.Record) error {
		return scanLines(ctx, r, out, blank)
	})
	if err != nil {
		return errors.Wrap(err, "unable to add source")
	}

	last, err := AddStages(pipe, stages, source, StepConcurrency(cfg.Concurrency))
	if err != nil {
		return err
	}

	ordered := newOrderedWriter(w)
	err = AddSink(pipe, sinkName, last, func(_ context.Context, rec model.Record) error {
		return ordered.write(rec, blank)
	})
	if err != nil {
		return errors.Wrap(err, "unable to add sink")
	}

	err = pipe.Run()
	if err != nil {
		return err
	}

	return ordered.flush(blank)
}

// scanLines sends every non-empty line of r. Empty lines are recorded in blank before any
// later line is sent.
func scanLines(ctx context.Context, r io.Reader, out chan<- model.Record, blank *lineSet) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		text := scanner.Text()
		if text == "" {
			blank.add(line)
			line++

			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- model.Record{Line: line, Text: text}:
		}
		line++
	}

	return errors.Wrap(scanner.Err(), "unable to read input")
}

// lineSet is the set of empty line numbers, shared by the source and the sink.
type lineSet struct {
	mu    sync.Mutex
	lines map[int]struct{}
}

func newLineSet() *lineSet {
	return &lineSet{lines: make(map[int]struct{})}
}

func (s *lineSet) add(line int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[line] = struct{}{}
}

func (s *lineSet) has(line int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.lines[line]

	return ok
}
