package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owservable/folders"
)

func createFixture(t *testing.T) string {
	t.Helper()
	base := t.TempDir()

	for _, file := range []string{"a/special/a.txt", "b/unspecial/some.txt", "b/unspecial/deep/more.txt", "c/special/c.txt"} {
		full := filepath.Join(base, filepath.FromSlash(file))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, nil, 0644))
	}

	return base
}

func execute(args ...string) (string, error) {
	cmd := newRootCommand()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func lines(paths ...string) string {
	return strings.Join(paths, "\n") + "\n"
}

func Test_RootCommand_hasSubcommands(t *testing.T) {
	cmd := newRootCommand()

	for _, name := range []string{"files", "find", "collect", "serve"} {
		sub, _, err := cmd.Find([]string{name})
		assert.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func Test_FilesCommand_accumulatesFolders(t *testing.T) {
	base := createFixture(t)

	out, err := execute("files", filepath.Join(base, "c"), filepath.Join(base, "b"))

	require.NoError(t, err)
	assert.Equal(t, lines(
		filepath.Join(base, "c", "special", "c.txt"),
		filepath.Join(base, "b", "unspecial", "some.txt"),
		filepath.Join(base, "b", "unspecial", "deep", "more.txt"),
	), out)
}

func Test_FindCommand(t *testing.T) {
	base := createFixture(t)

	out, err := execute("--workers", "4", "find", base, "special")

	require.NoError(t, err)
	assert.Equal(t, lines(
		filepath.Join(base, "a", "special"),
		filepath.Join(base, "c", "special"),
	), out)
}

func Test_CollectCommand(t *testing.T) {
	base := createFixture(t)

	out, err := execute("collect", base, "special")

	require.NoError(t, err)
	assert.Equal(t, lines(
		filepath.Join(base, "a", "special", "a.txt"),
		filepath.Join(base, "c", "special", "c.txt"),
	), out)
}

func Test_Commands_fail(t *testing.T) {
	base := createFixture(t)
	missing := filepath.Join(base, "missing")

	cases := [][]string{
		{"files", missing},
		{"find", missing, "special"},
		{"collect", missing, "special"},
		{"files"},
		{"find", base},
	}

	for _, args := range cases {
		out, err := execute(args...)

		assert.Error(t, err, args)
		assert.Empty(t, out, args)
	}
}

func Test_Commands_withSource(t *testing.T) {
	base := createFixture(t)
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("workers: 2\nsources:\n  data:\n    path: "+base+"\n"), 0644))

	out, err := execute("--config", configPath, "--source", "data", "collect", "", "special")
	require.NoError(t, err)
	assert.Equal(t, lines(
		filepath.Join(base, "a", "special", "a.txt"),
		filepath.Join(base, "c", "special", "c.txt"),
	), out)

	out, err = execute("--config", configPath, "--source", "data", "files", "b/unspecial/deep")
	require.NoError(t, err)
	assert.Equal(t, lines(filepath.Join(base, "b", "unspecial", "deep", "more.txt")), out)

	_, err = execute("--config", configPath, "--source", "data", "files", "../..")
	assert.Error(t, err)

	_, err = execute("--config", configPath, "--source", "other", "files", "")
	var unknown *folders.UnknownSourceError
	assert.ErrorAs(t, err, &unknown)

	_, err = execute("--config", filepath.Join(base, "missing.yaml"), "--source", "data", "files", "")
	assert.Error(t, err)
}

func Test_ServeCommand_requiresConfiguration(t *testing.T) {
	_, err := execute("--config", filepath.Join(t.TempDir(), "missing.yaml"), "serve")

	assert.Error(t, err)
}
