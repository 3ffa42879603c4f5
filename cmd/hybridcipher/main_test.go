package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	helloPlain  = "HELLOWORLD"
	helloCipher = "FDVFDDFFFDFVXFFDGXFAX"
)

var helloFlags = []string{"--shift", "3", "--block-size", "4", "--label", "ADFGVX", "--keyword", "KEY"}

// execute runs the command line with a missing config file, a silent logger and stdin.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	a := newApp()
	a.logger = zap.NewNop()

	root := a.rootCmd()
	var out bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))

	err := root.ExecuteContext(t.Context())

	return out.String(), err
}

func TestEncryptCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", append([]string{"encrypt", helloPlain}, helloFlags...)...)
	require.NoError(t, err)
	assert.Equal(t, helloCipher+"\n", out)
}

func TestDecryptCommandFromStdin(t *testing.T) {
	t.Parallel()

	out, err := execute(t, helloCipher+"\n", append([]string{"decrypt"}, helloFlags...)...)
	require.NoError(t, err)
	assert.Equal(t, "helloworld\n", out)
}

func TestEncryptCommandTables(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", append([]string{"encrypt", helloPlain, "--tables"}, helloFlags...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "Encryption")
	assert.Contains(t, out, "Substitution Table")
	assert.Contains(t, out, "Transposition Table")
	assert.Contains(t, out, "KHOORZRUOG")
	assert.Contains(t, out, "OOHKURZRGO")
	assert.True(t, strings.HasSuffix(out, helloCipher+"\n"))
}

func TestEncryptCommandInvalidParams(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "encrypt", "abc", "--keyword", "K", "--block-size", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestEncryptCommandUnsupportedCharacter(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", append([]string{"encrypt", "hello world"}, helloFlags...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to encrypt")
}

func TestBatchCommandFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	graph := filepath.Join(dir, "pipeline.dot")
	require.NoError(t, os.WriteFile(in, []byte(helloPlain+"\n\n"+helloPlain+"\n"), 0o600))

	args := append([]string{"batch", "encrypt", "--in", in, "--out", out, "--graph", graph, "--concurrency", "3", "--measure"}, helloFlags...)
	_, err := execute(t, "", args...)
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, helloCipher+"\n\n"+helloCipher+"\n", string(got))

	dot, err := os.ReadFile(graph)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(dot), "strict digraph {"))
	assert.Contains(t, string(dot), `"substitution" -> "transposition"`)
}

func TestBatchCommandStdio(t *testing.T) {
	t.Parallel()

	out, err := execute(t, helloCipher+"\n"+helloCipher+"\n", append([]string{"batch", "decrypt"}, helloFlags...)...)
	require.NoError(t, err)
	assert.Equal(t, "helloworld\nhelloworld\n", out)
}

func TestBatchCommandBadLine(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "good\nbad line\n", append([]string{"batch", "encrypt"}, helloFlags...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch encrypt failed")
	assert.Contains(t, err.Error(), "line 2")
}

func TestBatchCommandMissingInput(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", append([]string{"batch", "encrypt", "--in", filepath.Join(t.TempDir(), "missing.txt")}, helloFlags...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to open input")
}

func TestConfigFileAndFlags(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hybrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shift: 3\nblock_size: 4\nlabel: ADFGVX\nkeyword: WRONG\n"), 0o600))

	a := newApp()
	a.logger = zap.NewNop()
	root := a.rootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--config", path, "encrypt", helloPlain, "--keyword", "KEY"})

	require.NoError(t, root.ExecuteContext(t.Context()))
	assert.Equal(t, helloCipher+"\n", out.String())
}
