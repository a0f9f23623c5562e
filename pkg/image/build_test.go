package image

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imagebake/imagebake/pkg/arch"
	"github.com/imagebake/imagebake/pkg/docker"
	"github.com/imagebake/imagebake/pkg/docker/dockertest"
	"github.com/imagebake/imagebake/pkg/provenance"
)

func writeGitInfoProgram(t *testing.T, stdout string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "git-info")
	script := fmt.Sprintf("#!/bin/sh\ncat <<'EOF'\n%s\nEOF\n", stdout)
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func testOptions(t *testing.T, gitInfoJSON string) Options {
	t.Helper()
	outDir := t.TempDir()
	return Options{
		GitInfoProgram:  writeGitInfoProgram(t, gitInfoJSON),
		ContextDir:      t.TempDir(),
		ImageName:       "acme/widget",
		BuildArgs:       []string{"FOO=bar"},
		Author:          "Acme <eng@acme.com>",
		SourceURL:       "https://example.com/repo.git",
		License:         "Apache-2.0",
		ArchiveOutFile:  filepath.Join(outDir, "image.tar"),
		MetadataOutFile: filepath.Join(outDir, "metadata.json"),
		TagsOutFile:     filepath.Join(outDir, "tags.json"),
		Architecture:    "x86_64",
	}
}

const cleanGitInfo = `{
	"commit_hash": "deadbeef",
	"abbreviated_commit_hash": "abc1234",
	"cal_ver": "2024.01.01",
	"committer_date_strict_iso8601": "2024-01-01T00:00:00Z",
	"is_dirty": false
}`

const dirtyGitInfo = `{
	"commit_hash": "deadbeef",
	"abbreviated_commit_hash": "abc1234",
	"cal_ver": "2024.01.01",
	"committer_date_strict_iso8601": "2024-01-01T00:00:00Z",
	"is_dirty": true
}`

func TestBuild(t *testing.T) {
	opts := testOptions(t, cleanGitInfo)
	mock := dockertest.NewMockCommand()

	require.NoError(t, Build(context.Background(), mock, opts))

	require.Len(t, mock.BuildCalls, 1)
	build := mock.BuildCalls[0]
	require.Equal(t, opts.ContextDir, build.WorkingDir)
	require.Equal(t, []string{"FOO=bar"}, build.BuildArgs)
	require.Equal(t, []string{
		"acme/widget:2024.01.01-sha.abc1234-amd64",
		"acme/widget:sha-deadbeef-amd64",
	}, build.Tags)
	require.Equal(t, "2024.01.01-sha.abc1234", build.Labels["org.opencontainers.image.version"])
	require.Equal(t, "deadbeef", build.Labels["org.opencontainers.image.revision"])

	require.Len(t, mock.SaveCalls, 1)
	require.Equal(t, opts.ArchiveOutFile, mock.SaveCalls[0].OutputPath)
	require.Equal(t, build.Tags, mock.SaveCalls[0].Tags)

	metadataJSON, err := os.ReadFile(opts.MetadataOutFile)
	require.NoError(t, err)
	require.Contains(t, string(metadataJSON), `"org.opencontainers.image.revision":"deadbeef"`)

	tagsJSON, err := os.ReadFile(opts.TagsOutFile)
	require.NoError(t, err)
	require.JSONEq(t, `["acme/widget:2024.01.01-sha.abc1234-amd64", "acme/widget:sha-deadbeef-amd64"]`, string(tagsJSON))
}

func TestBuildDirty(t *testing.T) {
	opts := testOptions(t, dirtyGitInfo)
	mock := dockertest.NewMockCommand()

	require.NoError(t, Build(context.Background(), mock, opts))

	require.Len(t, mock.BuildCalls, 1)
	build := mock.BuildCalls[0]
	require.Equal(t, []string{
		"acme/widget:2024.01.01-sha.abc1234-dirty-amd64",
		"acme/widget:sha-deadbeef-dirty-amd64",
	}, build.Tags)
	require.Equal(t, "2024.01.01-sha.abc1234-dirty", build.Labels["org.opencontainers.image.version"])
	require.Equal(t, "deadbeef-dirty", build.Labels["org.opencontainers.image.revision"])
}

func TestBuildProvenanceFailure(t *testing.T) {
	opts := testOptions(t, cleanGitInfo)
	opts.GitInfoProgram = filepath.Join(t.TempDir(), "no-such-program")
	mock := dockertest.NewMockCommand()

	err := Build(context.Background(), mock, opts)
	require.ErrorIs(t, err, provenance.ErrProvenanceUnavailable)
	require.Empty(t, mock.BuildCalls)
}

func TestBuildUnsupportedArchitecture(t *testing.T) {
	opts := testOptions(t, cleanGitInfo)
	opts.Architecture = "pdp11"
	mock := dockertest.NewMockCommand()

	err := Build(context.Background(), mock, opts)
	require.ErrorIs(t, err, arch.ErrUnsupported)
	require.Empty(t, mock.BuildCalls)
}

func TestBuildFailureWritesNoArtifacts(t *testing.T) {
	opts := testOptions(t, cleanGitInfo)
	mock := dockertest.NewMockCommand()
	mock.BuildError = docker.ErrBuildFailed

	err := Build(context.Background(), mock, opts)
	require.ErrorIs(t, err, docker.ErrBuildFailed)

	require.NoFileExists(t, opts.MetadataOutFile)
	require.NoFileExists(t, opts.TagsOutFile)
	require.Empty(t, mock.SaveCalls)
}

func TestBuildSaveFailure(t *testing.T) {
	opts := testOptions(t, cleanGitInfo)
	mock := dockertest.NewMockCommand()
	mock.SaveError = docker.ErrSaveFailed

	err := Build(context.Background(), mock, opts)
	require.ErrorIs(t, err, docker.ErrSaveFailed)
}
