package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hashline/internal/hashline"
)

func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "alpha\nbeta\n")

	stdout, _, err := runCommand(t, "read", path)
	require.NoError(t, err)
	want := fmt.Sprintf("1:%s|alpha\n2:%s|beta\n",
		hashline.Fingerprint("alpha"), hashline.Fingerprint("beta"))
	assert.Equal(t, want, stdout)
}

func TestReadCommandOffsetLimit(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "one\ntwo\nthree\n")

	stdout, _, err := runCommand(t, "read", path, "--offset", "2", "--limit", "1")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("2:%s|two\n", hashline.Fingerprint("two")), stdout)
}

func TestReadCommandMissingFile(t *testing.T) {
	_, _, err := runCommand(t, "read", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestEditCommandAppliesEdits(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "alpha\nbeta\ngamma\n")

	payload := fmt.Sprintf(`[{"set_line": {"anchor": "2:%s", "new_text": "BETA"}}]`,
		hashline.Fingerprint("beta"))
	_, stderr, err := runCommand(t, "edit", path, "--edits-json", payload)
	require.NoError(t, err)
	assert.Contains(t, stderr, "updated "+path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "alpha\nBETA\ngamma\n", string(b))
}

func TestEditCommandFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "alpha\nbeta\n")
	payloadPath := writeFile(t, dir, "edits.json",
		fmt.Sprintf(`{"edits": [{"insert_after": {"anchor": "2:%s", "text": "gamma"}}]}`,
			hashline.Fingerprint("beta")))

	_, _, err := runCommand(t, "edit", path, "--edits-file", payloadPath)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "alpha\nbeta\ngamma\n", string(b))
}

func TestEditCommandRequiresPayload(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "alpha\n")

	_, _, err := runCommand(t, "edit", path)
	assert.ErrorContains(t, err, "provide --edits-json or --edits-file")
}

func TestEditCommandStaleAnchorFails(t *testing.T) {
	dir := t.TempDir()
	original := "alpha\nbeta\n"
	path := writeFile(t, dir, "a.txt", original)

	_, _, err := runCommand(t, "edit", path,
		"--edits-json", `[{"set_line": {"anchor": "2:ffff", "new_text": "x"}}]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Re-read the file")

	b, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, original, string(b), "file must be untouched after a failed batch")
}

func TestEditCommandPreview(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "alpha\nbeta\n")

	payload := `[{"replace": {"old_text": "beta", "new_text": "BETA"}}]`
	_, stderr, err := runCommand(t, "edit", path, "--edits-json", payload, "--preview")
	require.NoError(t, err)
	assert.Contains(t, stderr, "-beta\n+BETA\n")
}

func TestEditCommandEmptyPayloadIsNoOp(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "alpha\n")

	_, stderr, err := runCommand(t, "edit", path, "--edits-json", "[]")
	require.NoError(t, err)
	assert.Contains(t, stderr, "unchanged")
}
