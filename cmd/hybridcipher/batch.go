package main

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/askiada/go-hybrid-cipher/pkg/pipeline"
	"github.com/askiada/go-hybrid-cipher/pkg/pipeline/drawer"
	"github.com/askiada/go-hybrid-cipher/pkg/pipeline/logging"
	"github.com/askiada/go-hybrid-cipher/pkg/pipeline/measure"
	"github.com/askiada/go-hybrid-cipher/pkg/pipeline/model"
)

const stdStream = "-"

type batchFlags struct {
	in          string
	out         string
	concurrency int
	graph       string
	measure     bool
}

func (a *app) batchCmd() *cobra.Command {
	var flags batchFlags

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Encrypt or decrypt every line of a file through the concurrent pipeline",
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.in, "in", stdStream, "Input file, - for stdin")
	pf.StringVar(&flags.out, "out", stdStream, "Output file, - for stdout")
	pf.IntVar(&flags.concurrency, "concurrency", 0, "Goroutines per stage (default from config)")
	pf.StringVar(&flags.graph, "graph", "", "Write the pipeline graph with timings to this DOT file")
	pf.BoolVar(&flags.measure, "measure", false, "Log the time spent in every stage")

	for _, dir := range []direction{encryptDirection, decryptDirection} {
		cmd.AddCommand(&cobra.Command{
			Use:   dir.name,
			Short: "Run " + dir.name + " on every line",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.runBatch(cmd, dir, flags)
			},
		})
	}

	return cmd
}

func (a *app) runBatch(cmd *cobra.Command, dir direction, flags batchFlags) (err error) {
	params, err := a.params()
	if err != nil {
		return err
	}

	concurrency := a.cfg.Concurrency
	if cmd.Flags().Changed("concurrency") {
		concurrency = flags.concurrency
	}
	if concurrency < 1 {
		return errors.Errorf("concurrency must be at least 1, got %d", concurrency)
	}

	in, err := openInput(cmd, flags.in)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := createOutput(cmd, flags.out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "unable to close output")
		}
	}()

	logger := a.logger.With(zap.String("run_id", uuid.NewString()), zap.String("mode", dir.name))
	msr := measure.NewDefaultMeasure()
	opts := []model.PipelineOption{
		logging.PipelineLogger(logger),
		measure.PipelineMeasure(msr),
	}
	if flags.graph != "" {
		opts = append(opts, drawer.PipelineDrawer(drawer.NewDOTDrawer(flags.graph), msr))
	}

	err = pipeline.TransformLines(cmd.Context(), in, out, dir.stages(params), pipeline.LinesConfig{
		Concurrency: concurrency,
		Options:     opts,
	})
	if err != nil {
		return errors.Wrapf(err, "batch %s failed", dir.name)
	}

	if flags.measure {
		for _, report := range measure.Report(msr) {
			logger.Info("step measure",
				zap.String("step", report.Name),
				zap.Int64("records", report.Records),
				zap.Duration("average", report.Average),
				zap.Duration("total", report.Total))
		}
	}

	return nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == stdStream {
		return io.NopCloser(cmd.InOrStdin()), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open input")
	}

	return f, nil
}

func createOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == stdStream {
		return nopWriteCloser{cmd.OutOrStdout()}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create output")
	}

	return f, nil
}
