package docker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/imagebake/imagebake/pkg/docker/command"
	"github.com/imagebake/imagebake/pkg/util/console"
)

var (
	// ErrBuildFailed means the docker build subprocess exited non-zero.
	ErrBuildFailed = errors.New("image build failed")

	// ErrSaveFailed means the docker save subprocess exited non-zero.
	ErrSaveFailed = errors.New("image save failed")
)

// DockerCommand implements command.Command by shelling out to the docker CLI.
// Shelling out (rather than the engine API) keeps build output streaming to
// the terminal exactly as docker renders it.
type DockerCommand struct{}

func NewDockerCommand() *DockerCommand {
	return &DockerCommand{}
}

func (c *DockerCommand) ImageBuild(ctx context.Context, options command.ImageBuildOptions) error {
	cmd := exec.CommandContext(ctx, DockerCommandFromEnvironment(), buildArgs(options)...)
	cmd.Dir = options.WorkingDir
	cmd.Stdout = os.Stderr // build output is all messaging, keep stdout clean
	cmd.Stderr = os.Stderr

	console.Debug("$ " + strings.Join(cmd.Args, " "))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s", ErrBuildFailed, err)
	}
	return nil
}

func (c *DockerCommand) ImageSave(ctx context.Context, options command.ImageSaveOptions) error {
	args := []string{"save", "--output", options.OutputPath}
	args = append(args, options.Tags...)

	cmd := exec.CommandContext(ctx, DockerCommandFromEnvironment(), args...)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr

	console.Debug("$ " + strings.Join(cmd.Args, " "))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s", ErrSaveFailed, err)
	}
	return nil
}

func buildArgs(options command.ImageBuildOptions) []string {
	args := []string{"image", "build"}

	labelKeys := make([]string, 0, len(options.Labels))
	for key := range options.Labels {
		labelKeys = append(labelKeys, key)
	}
	sort.Strings(labelKeys)
	for _, key := range labelKeys {
		// Unlike in Dockerfiles, the value needs no quoting -- docker splits
		// on the first '=' and the rest is the label value.
		args = append(args, "--label", fmt.Sprintf("%s=%s", key, options.Labels[key]))
	}

	for _, buildArg := range options.BuildArgs {
		args = append(args, "--build-arg", buildArg)
	}

	for _, tag := range options.Tags {
		args = append(args, "--tag", tag)
	}

	if options.NoCache {
		args = append(args, "--no-cache")
	}
	if options.ProgressOutput != "" {
		args = append(args, "--progress", options.ProgressOutput)
	}

	dockerfile := options.Dockerfile
	if dockerfile == "" {
		dockerfile = "Dockerfile"
	}
	args = append(args, "--file", dockerfile, ".")

	return args
}
