package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/askiada/go-hybrid-cipher/pkg/cipher"
)

func (a *app) interactiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Prompt for a mode, a text and the cipher parameters, then show every stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runInteractive(cmd)
		},
	}
}

// errQuit stops the session when the input is exhausted.
var errQuit = errors.New("quit")

// prompter reads one answer per line. Every question is written before reading.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func (p *prompter) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *prompter) ask(question string) (string, error) {
	p.printf("%s", question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", errors.Wrap(err, "unable to read answer")
		}

		return "", errQuit
	}

	return strings.TrimSpace(p.in.Text()), nil
}

// askValid repeats question until check accepts the answer.
func (p *prompter) askValid(question string, check func(string) error) (string, error) {
	for {
		answer, err := p.ask(question)
		if err != nil {
			return "", err
		}
		if err := check(answer); err != nil {
			p.printf("\nInvalid input: %v\n", err)
			continue
		}

		return answer, nil
	}
}

func (p *prompter) askInt(question string, check func(int) error) (int, error) {
	var n int
	_, err := p.askValid(question, func(answer string) error {
		v, err := strconv.Atoi(answer)
		if err != nil {
			return errors.New("enter a numeric value")
		}
		if check != nil {
			if err := check(v); err != nil {
				return err
			}
		}
		n = v

		return nil
	})

	return n, err
}

func (a *app) runInteractive(cmd *cobra.Command) error {
	p := &prompter{in: bufio.NewScanner(cmd.InOrStdin()), out: cmd.OutOrStdout()}

	err := a.interactiveLoop(p)
	if errors.Is(err, errQuit) {
		return nil
	}

	return err
}

func (a *app) interactiveLoop(p *prompter) error {
	for {
		mode, err := p.ask("\nDo you want to (e)ncrypt or (d)ecrypt? ")
		if err != nil {
			return err
		}

		var dir direction
		switch strings.ToLower(mode) {
		case "e", "encrypt":
			dir = encryptDirection
		case "d", "decrypt":
			dir = decryptDirection
		default:
			p.printf("\nInvalid option. Please type 'e' or 'd'.\n")
			continue
		}

		if err := a.interactiveRun(p, dir); err != nil {
			return err
		}

		again, err := p.ask("\nDo you want to continue (y/n)? ")
		if err != nil {
			return err
		}
		if again = strings.ToLower(again); again != "y" && again != "yes" {
			return nil
		}
	}
}

// interactiveRun collects the text and parameters for one run and prints its stages. Cipher
// errors are reported to the user and do not end the session.
func (a *app) interactiveRun(p *prompter, dir direction) error {
	question := "Enter plaintext (A-Z, a-z, 0-9): "
	if dir.name == decryptDirection.name {
		question = "Enter ciphertext: "
	}
	text, err := p.ask(question)
	if err != nil {
		return err
	}

	params, err := askParams(p)
	if err != nil {
		return err
	}

	trace, err := dir.trace(text, params)
	if err != nil {
		a.logger.Debug("interactive run failed", zap.String("mode", dir.name), zap.Error(err))
		p.printf("\nUnable to %s: %v\n", dir.name, err)

		return nil
	}

	p.printf("\n")
	if err := printTables(p.out, dir, trace, params); err != nil {
		return err
	}
	p.printf("%s: %s\n", dir.result, trace.Result())

	return nil
}

func askParams(p *prompter) (cipher.Params, error) {
	var (
		params cipher.Params
		err    error
	)

	params.Shift, err = p.askInt("Enter Caesar shift: ", nil)
	if err != nil {
		return params, err
	}

	params.BlockSize, err = p.askInt("Enter block size for reversal: ", func(n int) error {
		if n < 1 {
			return cipher.ErrInvalidBlockSize
		}

		return nil
	})
	if err != nil {
		return params, err
	}

	params.Label, err = p.askValid("Enter 6-character substitution label (e.g. ADFGVX): ", cipher.ValidateLabel)
	if err != nil {
		return params, err
	}

	params.Keyword, err = p.askValid("Enter transposition keyword: ", func(keyword string) error {
		if len(keyword) < cipher.MinKeywordLength {
			return cipher.ErrInvalidKeyword
		}

		return nil
	})

	return params, err
}
