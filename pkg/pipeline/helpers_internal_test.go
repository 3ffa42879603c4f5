package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/askiada/go-hybrid-cipher/pkg/cipher"
	"github.com/askiada/go-hybrid-cipher/pkg/pipeline/model"
)

func createInputChan(t *testing.T, ctx context.Context, texts ...string) chan model.Record {
	t.Helper()

	inputChan := make(chan model.Record)

	go func() {
		defer close(inputChan)

		for i, text := range texts {
			select {
			case <-ctx.Done():
				return
			case inputChan <- model.Record{Line: i, Text: text}:
			}
		}
	}()

	return inputChan
}

func processOutputChan(t *testing.T, output <-chan model.Record) []model.Record {
	t.Helper()

	res := []model.Record{}

	for out := range output {
		res = append(res, out)
	}

	return res
}

var upperStage = cipher.Stage{
	Name: "upper",
	Apply: func(text string) (string, error) {
		return strings.ToUpper(text), nil
	},
}

func failingStage(bad string) cipher.Stage {
	return cipher.Stage{
		Name: "failing",
		Apply: func(text string) (string, error) {
			if text == bad {
				return "", cipher.ErrUnsupportedCharacter
			}

			return text, nil
		},
	}
}
