package service

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hashline/internal/config"
	"hashline/internal/filesystem"
	"hashline/internal/hashline"
	"hashline/internal/lock"
)

func newServiceForTest(t *testing.T) *Service {
	svc, err := New(filesystem.NewDefaultAdapter(), lock.NewFlockManager(), config.Default())
	require.NoError(t, err)
	return svc
}

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readFileContent(t *testing.T, path string) string {
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func anchor(line int, content string) string {
	return fmt.Sprintf("%d:%s", line, hashline.Fingerprint(content))
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(nil, lock.NewFlockManager(), config.Default())
	assert.Error(t, err)
	_, err = New(filesystem.NewDefaultAdapter(), nil, config.Default())
	assert.Error(t, err)
	_, err = New(filesystem.NewDefaultAdapter(), lock.NewFlockManager(), nil)
	assert.Error(t, err)
	_, err = New(filesystem.NewDefaultAdapter(), lock.NewFlockManager(), &config.Config{})
	assert.Error(t, err, "invalid config must be rejected")
}

func TestReadFileAnnotatesLines(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "alpha\nbeta\ngamma\n")
	svc := newServiceForTest(t)

	resp, err := svc.ReadFile(&ReadRequest{Path: path})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalLines)
	want := fmt.Sprintf("1:%s|alpha\n2:%s|beta\n3:%s|gamma",
		hashline.Fingerprint("alpha"), hashline.Fingerprint("beta"), hashline.Fingerprint("gamma"))
	assert.Equal(t, want, resp.Content)
}

func TestReadFileOffsetAndLimit(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "one\ntwo\nthree\nfour\n")
	svc := newServiceForTest(t)

	resp, err := svc.ReadFile(&ReadRequest{Path: path, Offset: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Printed)
	want := fmt.Sprintf("2:%s|two\n3:%s|three",
		hashline.Fingerprint("two"), hashline.Fingerprint("three"))
	assert.Equal(t, want, resp.Content)
}

func TestReadFileOffsetOutOfRange(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "one\n")
	svc := newServiceForTest(t)

	_, err := svc.ReadFile(&ReadRequest{Path: path, Offset: 5})
	assert.ErrorContains(t, err, "out of range")
}

func TestReadFileMissing(t *testing.T) {
	svc := newServiceForTest(t)
	_, err := svc.ReadFile(&ReadRequest{Path: filepath.Join(t.TempDir(), "missing.txt")})
	assert.Error(t, err)
}

func TestEditFileAppliesBatch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "alpha\nbeta\ngamma\n")
	svc := newServiceForTest(t)

	resp, err := svc.EditFile(&EditRequest{
		Path: path,
		Edits: []hashline.Operation{
			hashline.SetLine{Anchor: anchor(2, "beta"), NewText: "B1\nB2"},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Equal(t, 3, resp.OldTotalLines)
	assert.Equal(t, 4, resp.NewTotalLines)
	assert.Equal(t, "alpha\nB1\nB2\ngamma\n", readFileContent(t, path))
}

func TestEditFilePreservesCRLFAndFinalNewline(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "alpha\r\nbeta\r\ngamma")
	svc := newServiceForTest(t)

	_, err := svc.EditFile(&EditRequest{
		Path: path,
		Edits: []hashline.Operation{
			hashline.SetLine{Anchor: anchor(2, "beta"), NewText: "BETA"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "alpha\r\nBETA\r\ngamma", readFileContent(t, path))
}

func TestEditFileStaleAnchorLeavesFileUntouched(t *testing.T) {
	dir := t.TempDir()
	original := "alpha\nbeta\ngamma\n"
	path := writeFile(t, dir, "a.txt", original)
	svc := newServiceForTest(t)

	_, err := svc.EditFile(&EditRequest{
		Path: path,
		Edits: []hashline.Operation{
			hashline.SetLine{Anchor: "2:ffff", NewText: "changed"},
		},
	})
	var stale *hashline.StaleAnchorsError
	require.ErrorAs(t, err, &stale)
	assert.Equal(t, original, readFileContent(t, path))
}

func TestEditFileNoEffectiveChange(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "alpha\n")
	svc := newServiceForTest(t)

	_, err := svc.EditFile(&EditRequest{
		Path: path,
		Edits: []hashline.Operation{
			hashline.SetLine{Anchor: anchor(1, "alpha"), NewText: "alpha"},
		},
	})
	assert.ErrorIs(t, err, hashline.ErrNoEffectiveChange)
}

func TestEditFileEmptyBatchIsNoOp(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "alpha\n")
	svc := newServiceForTest(t)

	resp, err := svc.EditFile(&EditRequest{Path: path})
	require.NoError(t, err)
	assert.False(t, resp.Changed)
	assert.Equal(t, "alpha\n", readFileContent(t, path))
}

func TestEditFilePreview(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "alpha\nbeta\n")
	svc := newServiceForTest(t)

	resp, err := svc.EditFile(&EditRequest{
		Path:    path,
		Preview: true,
		Edits: []hashline.Operation{
			hashline.ReplaceText{OldText: "beta", NewText: "BETA"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "-beta\n+BETA\n", resp.Preview)
}

func TestEditFileInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bin.dat")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x01}, 0644))
	svc := newServiceForTest(t)

	_, err := svc.EditFile(&EditRequest{
		Path:  path,
		Edits: []hashline.Operation{hashline.ReplaceText{OldText: "a", NewText: "b"}},
	})
	assert.ErrorContains(t, err, "UTF-8")
}
