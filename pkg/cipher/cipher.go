package cipher

import (
	"strings"

	"github.com/pkg/errors"
)

// Stage names, in encryption order.
const (
	StageShift         = "shift"
	StageBlockReverse  = "block-reverse"
	StageSubstitution  = "substitution"
	StageTransposition = "transposition"
	StagePadding       = "padding"
)

// Stage is one named text transform of an Encrypt or Decrypt run.
type Stage struct {
	Name  string
	Apply func(text string) (string, error)
}

// StageOutput is the text a stage produced during a traced run.
type StageOutput struct {
	Stage string
	Text  string
}

// Trace lists the output of every stage of a run, in execution order.
type Trace []StageOutput

// Result returns the output of the last stage.
func (t Trace) Result() string {
	if len(t) == 0 {
		return ""
	}

	return t[len(t)-1].Text
}

// EncryptStages returns the stages Encrypt runs, in order.
func EncryptStages(params Params) []Stage {
	grid := BuildGrid()

	return []Stage{
		{Name: StageShift, Apply: func(text string) (string, error) {
			return ShiftEncode(text, params.Shift), nil
		}},
		{Name: StageBlockReverse, Apply: func(text string) (string, error) {
			return ReverseBlocks(text, params.BlockSize)
		}},
		{Name: StageSubstitution, Apply: func(text string) (string, error) {
			return GridEncode(text, grid, params.Label)
		}},
		{Name: StageTransposition, Apply: func(text string) (string, error) {
			return TranspositionEncode(params.Keyword, text)
		}},
	}
}

// DecryptStages returns the stages Decrypt runs, in order.
func DecryptStages(params Params) []Stage {
	grid := BuildGrid()

	return []Stage{
		{Name: StageTransposition, Apply: func(text string) (string, error) {
			return TranspositionDecode(params.Keyword, text)
		}},
		{Name: StagePadding, Apply: func(text string) (string, error) {
			return TrimPadding(text, params.Label), nil
		}},
		{Name: StageSubstitution, Apply: func(text string) (string, error) {
			return GridDecode(text, grid, params.Label)
		}},
		{Name: StageBlockReverse, Apply: func(text string) (string, error) {
			return ReverseBlocks(text, params.BlockSize)
		}},
		{Name: StageShift, Apply: func(text string) (string, error) {
			return ShiftDecode(text, params.Shift), nil
		}},
	}
}

// TrimPadding removes the transposition filler that cannot belong to substitution output.
// Substitution output has an even length, so an odd text ends with one unpaired filler. When
// the filler is not a label character, no trailing filler can be content.
func TrimPadding(text, label string) string {
	if strings.IndexByte(label, Filler) < 0 {
		return strings.TrimRight(text, string(Filler))
	}
	if len(text)%2 != 0 && text[len(text)-1] == Filler {
		return text[:len(text)-1]
	}

	return text
}

// Run applies stages to text in order. The first failing stage stops the run.
func Run(text string, stages []Stage) (string, error) {
	trace, err := RunTrace(text, stages)
	if err != nil {
		return "", err
	}

	return trace.Result(), nil
}

// RunTrace is Run but keeps the output of every stage.
func RunTrace(text string, stages []Stage) (Trace, error) {
	trace := make(Trace, 0, len(stages))
	for _, stage := range stages {
		out, err := stage.Apply(text)
		if err != nil {
			return nil, errors.Wrapf(err, "%s stage", stage.Name)
		}
		trace = append(trace, StageOutput{Stage: stage.Name, Text: out})
		text = out
	}

	return trace, nil
}

// Encrypt runs text through the shift, block reversal, substitution and transposition stages.
func Encrypt(text string, params Params) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	return Run(text, EncryptStages(params))
}

// Decrypt reverses Encrypt. Letters come back in lower case because the substitution grid
// only holds lower-case letters.
func Decrypt(cipherText string, params Params) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	return Run(cipherText, DecryptStages(params))
}

// EncryptTrace is Encrypt but returns the output of every stage.
func EncryptTrace(text string, params Params) (Trace, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return RunTrace(text, EncryptStages(params))
}

// DecryptTrace is Decrypt but returns the output of every stage.
func DecryptTrace(cipherText string, params Params) (Trace, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return RunTrace(cipherText, DecryptStages(params))
}
