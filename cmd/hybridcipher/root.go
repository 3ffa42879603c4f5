package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/askiada/go-hybrid-cipher/internal/config"
	"github.com/askiada/go-hybrid-cipher/pkg/cipher"
)

const envFile = ".env"

// app carries the state shared by every command.
type app struct {
	configPath string
	verbose    bool
	flags      cipherFlags

	cfg    *config.Config
	logger *zap.Logger
}

// cipherFlags are the cipher parameters given on the command line. They win over the config.
type cipherFlags struct {
	shift     int
	blockSize int
	label     string
	keyword   string
}

func newApp() *app {
	return &app{}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hybridcipher",
		Short: "Layered classical cipher: shift, block reversal, 6x6 substitution, transposition",
		Long: `hybridcipher chains four classical ciphers.

Encryption applies a Caesar shift, reverses fixed size blocks, replaces every symbol with the
pair of labels locating it in a 6x6 grid and finally reorders the result with a keyword
columnar transposition. Decryption runs the inverse stages in reverse order.

Run without arguments to start the interactive mode.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runInteractive(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "hybridcipher.yaml", "YAML configuration file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	pf.IntVar(&a.flags.shift, "shift", 0, "Caesar shift")
	pf.IntVar(&a.flags.blockSize, "block-size", 0, "Block reversal size")
	pf.StringVar(&a.flags.label, "label", "", "6 distinct characters naming the grid rows and columns")
	pf.StringVar(&a.flags.keyword, "keyword", "", "Transposition keyword")

	root.AddCommand(
		a.cipherCmd(encryptDirection),
		a.cipherCmd(decryptDirection),
		a.batchCmd(),
		a.interactiveCmd(),
	)

	return root
}

// setup resolves the configuration and builds the logger before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath, envFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("shift") {
		cfg.Shift = a.flags.shift
	}
	if flags.Changed("block-size") {
		cfg.BlockSize = a.flags.blockSize
	}
	if flags.Changed("label") {
		cfg.Label = a.flags.label
	}
	if flags.Changed("keyword") {
		cfg.Keyword = a.flags.keyword
	}
	a.cfg = cfg

	if a.logger != nil {
		return nil
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	if a.verbose {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	a.logger, err = zapConfig.Build()
	if err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	return nil
}

// params validates the resolved configuration and returns its cipher parameters.
func (a *app) params() (cipher.Params, error) {
	if err := a.cfg.Validate(); err != nil {
		return cipher.Params{}, errors.Wrap(err, "invalid configuration")
	}

	return a.cfg.Params(), nil
}
