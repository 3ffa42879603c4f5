package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/askiada/go-hybrid-cipher/pkg/cipher"
	"github.com/askiada/go-hybrid-cipher/pkg/display"
)

// direction groups what differs between encryption and decryption.
type direction struct {
	name   string
	title  string
	result string
	trace  func(string, cipher.Params) (cipher.Trace, error)
	stages func(cipher.Params) []cipher.Stage
	// gridStage is the stage whose output is the row-wise transposition grid content.
	gridStage string
}

var (
	encryptDirection = direction{
		name:      "encrypt",
		title:     "Encryption",
		result:    "Final Encrypted Ciphertext",
		trace:     cipher.EncryptTrace,
		stages:    cipher.EncryptStages,
		gridStage: cipher.StageSubstitution,
	}
	decryptDirection = direction{
		name:      "decrypt",
		title:     "Decryption",
		result:    "Final Decrypted Text",
		trace:     cipher.DecryptTrace,
		stages:    cipher.DecryptStages,
		gridStage: cipher.StageTransposition,
	}
)

func (a *app) cipherCmd(dir direction) *cobra.Command {
	var tables bool

	cmd := &cobra.Command{
		Use:   dir.name + " [text]",
		Short: strings.ToUpper(dir.name[:1]) + dir.name[1:] + " one value, read from the argument or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := a.params()
			if err != nil {
				return err
			}

			text, err := inputText(cmd, args)
			if err != nil {
				return err
			}

			trace, err := dir.trace(text, params)
			if err != nil {
				return errors.Wrapf(err, "unable to %s", dir.name)
			}
			a.logger.Debug("cipher run",
				zap.String("mode", dir.name),
				zap.Int("input_length", len(text)),
				zap.Int("output_length", len(trace.Result())))

			out := cmd.OutOrStdout()
			if tables {
				if err := printTables(out, dir, trace, params); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintln(out, trace.Result())

			return err
		},
	}
	cmd.Flags().BoolVar(&tables, "tables", false, "Print every stage output and both tables")

	return cmd
}

// inputText returns the argument, or stdin without its trailing newline.
func inputText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", errors.Wrap(err, "unable to read stdin")
	}

	return strings.TrimRight(string(data), "\r\n"), nil
}

func stageText(trace cipher.Trace, name string) string {
	for _, out := range trace {
		if out.Stage == name {
			return out.Text
		}
	}

	return ""
}

func printTables(w io.Writer, dir direction, trace cipher.Trace, params cipher.Params) error {
	substitution, err := display.SubstitutionTable(cipher.BuildGrid(), params.Label)
	if err != nil {
		return err
	}
	transposition, err := display.TranspositionTable(params.Keyword, stageText(trace, dir.gridStage))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s\n\n%s\n\n%s\n\n", display.Trace(dir.title, trace), substitution, transposition)

	return err
}
