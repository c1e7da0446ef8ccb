package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/hupe1980/vocabtree/testutil"
)

func writeVocabulary(t *testing.T, dir string) string {
	t.Helper()

	rng := testutil.NewRNG(7)
	text, _ := rng.VocabularyText(testutil.VocabularyConfig{K: 3, L: 2, Bytes: 32})

	path := filepath.Join(dir, "voc.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"vocabtool"}, args...))
	return out.String(), err
}

func TestParseDescriptor(t *testing.T) {
	valid := []string{"orb", "ORB", "surf", "binary:16", "float:128"}
	for _, s := range valid {
		t.Run(s, func(t *testing.T) {
			l, err := parseDescriptor(s)
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}

	invalid := []string{"", "sift", "orb:32", "binary", "binary:0", "float:-1", "float:x"}
	for _, s := range invalid {
		t.Run("invalid/"+s, func(t *testing.T) {
			_, err := parseDescriptor(s)
			assert.Error(t, err)
		})
	}
}

func TestInfo(t *testing.T) {
	path := writeVocabulary(t, t.TempDir())

	out, err := run(t, "info", path)
	require.NoError(t, err)

	assert.Contains(t, out, "branching factor: 3")
	assert.Contains(t, out, "depth:            2")
	assert.Contains(t, out, "nodes:            13")
	assert.Contains(t, out, "words:            9")
	assert.Contains(t, out, "nodes per level:  1 3 9")
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	path := writeVocabulary(t, dir)

	out, err := run(t, "validate", path)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)

	// An internal node without children breaks the leaf/word invariant.
	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("2 1 0 0\n0 0 1 0\n0 1 2 0.5\n"), 0o644))

	out, err = run(t, "validate", "--descriptor", "binary:1", bad)
	require.Error(t, err)
	assert.NotEmpty(t, out)
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	src := writeVocabulary(t, dir)

	for _, suffix := range []string{".gz", ".zst", ".lz4"} {
		t.Run(suffix, func(t *testing.T) {
			dst := filepath.Join(dir, "voc.txt"+suffix)

			_, err := run(t, "convert", "--validate", src, dst)
			require.NoError(t, err)

			out, err := run(t, "info", dst)
			require.NoError(t, err)
			assert.Contains(t, out, "words:            9")
		})
	}
}

func TestConvert_Stdout(t *testing.T) {
	src := writeVocabulary(t, t.TempDir())

	out, err := run(t, "convert", src, "-")
	require.NoError(t, err)

	want, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, strings.SplitN(string(want), "\n", 2)[0], strings.SplitN(out, "\n", 2)[0])
	assert.Equal(t, strings.Count(string(want), "\n"), strings.Count(out, "\n"))
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeVocabulary(t, dir)

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"info", filepath.Join(dir, "missing.txt")}},
		{"no path", []string{"info"}},
		{"bad descriptor", []string{"info", "--descriptor", "sift", path}},
		{"wrong arity", []string{"info", "--descriptor", "surf", path}},
		{"bad log level", []string{"--log-level", "loud", "info", path}},
		{"bad log format", []string{"--log-format", "xml", "info", path}},
		{"negative limit", []string{"--io-limit", "-1", "info", path}},
		{"bad object path", []string{"info", "s3://bucket"}},
		{"convert arity", []string{"convert", path}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
