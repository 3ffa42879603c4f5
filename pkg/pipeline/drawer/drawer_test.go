package drawer_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-hybrid-cipher/pkg/cipher"
	"github.com/askiada/go-hybrid-cipher/pkg/pipeline"
	"github.com/askiada/go-hybrid-cipher/pkg/pipeline/drawer"
	"github.com/askiada/go-hybrid-cipher/pkg/pipeline/measure"
	"github.com/askiada/go-hybrid-cipher/pkg/pipeline/model"
)

var params = cipher.Params{Shift: 1, BlockSize: 2, Label: "ADFGVX", Keyword: "KEY"}

func TestDrawerStageOrder(t *testing.T) {
	t.Parallel()

	d := drawer.NewWriterDrawer(&bytes.Buffer{})
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, d.AddStep(name))
	}
	require.NoError(t, d.AddLink("c", "a"))
	require.NoError(t, d.AddLink("a", "b"))

	order, err := d.StageOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, order)

	assert.Error(t, d.AddStep("a"))
	assert.Error(t, d.AddLink("a", "missing"))
}

func TestPipelineDrawer(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	dot := drawer.NewWriterDrawer(&buf)
	msr := measure.NewDefaultMeasure()

	err := pipeline.TransformLines(t.Context(), strings.NewReader("hello\nworld\n"), &bytes.Buffer{}, cipher.EncryptStages(params), pipeline.LinesConfig{
		Options: []model.PipelineOption{
			measure.PipelineMeasure(msr),
			drawer.PipelineDrawer(dot, msr),
		},
	})
	require.NoError(t, err)

	order, err := dot.StageOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"start", "read lines", "shift", "block-reverse", "substitution", "transposition", "write lines", "end"}, order)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "strict digraph {"), out)
	assert.Contains(t, out, `"shift" -> "block-reverse"`)
	assert.Contains(t, out, `"write lines" -> "end"`)
}

func TestDrawToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stages.dot")
	d := drawer.NewDOTDrawer(path)
	require.NoError(t, d.AddStep("start"))
	require.NoError(t, d.AddStep("end"))
	require.NoError(t, d.AddLink("start", "end"))
	require.NoError(t, d.SetTotalTime("end", time.Now().Add(-time.Second)))
	require.NoError(t, d.Draw())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"start" -> "end"`)
	assert.Contains(t, string(content), "<end <BR />")
}

func TestDrawToMissingDirectory(t *testing.T) {
	t.Parallel()

	d := drawer.NewDOTDrawer(filepath.Join(t.TempDir(), "missing", "stages.dot"))
	assert.Error(t, d.Draw())
}
