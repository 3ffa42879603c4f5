package pipeline_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-hybrid-cipher/pkg/cipher"
	"github.com/askiada/go-hybrid-cipher/pkg/pipeline"
	"github.com/askiada/go-hybrid-cipher/pkg/pipeline/model"
)

var params = cipher.Params{Shift: 3, BlockSize: 4, Label: "ADFGVX", Keyword: "KEY"}

func sendTexts(texts ...string) func(ctx context.Context, out chan<- model.Record) error {
	return func(ctx context.Context, out chan<- model.Record) error {
		for i, text := range texts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case out <- model.Record{Line: i, Text: text}:
			}
		}

		return nil
	}
}

type collector struct {
	mu      sync.Mutex
	records map[int]string
}

func (c *collector) sink(_ context.Context, rec model.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.records == nil {
		c.records = make(map[int]string)
	}
	c.records[rec.Line] = rec.Text

	return nil
}

func TestAddSourceNilPipe(t *testing.T) {
	t.Parallel()

	_, err := pipeline.AddSource(nil, "source", sendTexts())
	assert.ErrorIs(t, err, pipeline.ErrPipelineMustBeSet)
}

func TestAddStageNilInput(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(t.Context())
	require.NoError(t, err)

	_, err = pipeline.AddStage(pipe, cipher.EncryptStages(params)[0], nil)
	assert.ErrorIs(t, err, pipeline.ErrInputMustBeSet)
}

func TestAddStageNilFunction(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(t.Context())
	require.NoError(t, err)
	source, err := pipeline.AddSource(pipe, "source", sendTexts())
	require.NoError(t, err)

	_, err = pipeline.AddStage(pipe, cipher.Stage{Name: "empty"}, source)
	assert.ErrorIs(t, err, pipeline.ErrStageMustBeSet)
}

func TestAddSinkNilInput(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(t.Context())
	require.NoError(t, err)

	err = pipeline.AddSink(pipe, "sink", nil, (&collector{}).sink)
	assert.ErrorIs(t, err, pipeline.ErrInputMustBeSet)
}

func TestRunWithoutSink(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(t.Context())
	require.NoError(t, err)

	assert.ErrorIs(t, pipe.Run(), pipeline.ErrSinkMustBeSet)
}

func TestEncryptStages(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		concurrent int
	}{
		"sequential":    {concurrent: 1},
		"concurrent 4":  {concurrent: 4},
		"concurrent 16": {concurrent: 16},
	}

	texts := []string{"HELLOWORLD", "attackatdawn", "abc123", "z9"}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pipe, err := pipeline.New(t.Context())
			require.NoError(t, err)
			source, err := pipeline.AddSource(pipe, "source", sendTexts(texts...))
			require.NoError(t, err)
			last, err := pipeline.AddStages(pipe, cipher.EncryptStages(params), source, pipeline.StepConcurrency(tc.concurrent))
			require.NoError(t, err)
			got := &collector{}
			require.NoError(t, pipeline.AddSink(pipe, "sink", last, got.sink))

			require.NoError(t, pipe.Run())

			require.Len(t, got.records, len(texts))
			for i, text := range texts {
				expected, err := cipher.Encrypt(text, params)
				require.NoError(t, err)
				assert.Equal(t, expected, got.records[i], text)
			}
		})
	}
}

func TestStageErrorStopsPipeline(t *testing.T) {
	t.Parallel()

	texts := make([]string, 50)
	for i := range texts {
		texts[i] = "hello"
	}
	texts[20] = "hello world"

	pipe, err := pipeline.New(t.Context())
	require.NoError(t, err)
	source, err := pipeline.AddSource(pipe, "source", sendTexts(texts...))
	require.NoError(t, err)
	last, err := pipeline.AddStages(pipe, cipher.EncryptStages(params), source, pipeline.StepConcurrency(3))
	require.NoError(t, err)
	require.NoError(t, pipeline.AddSink(pipe, "sink", last, (&collector{}).sink))

	err = pipe.Run()
	require.ErrorIs(t, err, cipher.ErrUnsupportedCharacter)
	assert.True(t, strings.HasPrefix(err.Error(), cipher.StageSubstitution+": "), err.Error())
	assert.Contains(t, err.Error(), "line 21")
}

func TestSinkError(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(t.Context())
	require.NoError(t, err)
	source, err := pipeline.AddSource(pipe, "source", sendTexts("a", "b", "c"))
	require.NoError(t, err)
	require.NoError(t, pipeline.AddSink(pipe, "sink", source, func(context.Context, model.Record) error {
		return assert.AnError
	}))

	err = pipe.Run()
	assert.ErrorIs(t, err, assert.AnError)
}

func TestCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	pipe, err := pipeline.New(ctx)
	require.NoError(t, err)
	source, err := pipeline.AddSource(pipe, "source", sendTexts("a", "b"))
	require.NoError(t, err)
	last, err := pipeline.AddStages(pipe, cipher.EncryptStages(params), source)
	require.NoError(t, err)
	require.NoError(t, pipeline.AddSink(pipe, "sink", last, (&collector{}).sink))

	assert.ErrorIs(t, pipe.Run(), context.Canceled)
}
