// Package dockertest provides a recording mock of the docker command
// contract for pipeline tests.
package dockertest

import (
	"context"

	"github.com/imagebake/imagebake/pkg/docker/command"
)

type MockCommand struct {
	BuildError error
	SaveError  error

	BuildCalls []command.ImageBuildOptions
	SaveCalls  []command.ImageSaveOptions
}

func NewMockCommand() *MockCommand {
	return &MockCommand{}
}

func (c *MockCommand) ImageBuild(ctx context.Context, options command.ImageBuildOptions) error {
	c.BuildCalls = append(c.BuildCalls, options)
	return c.BuildError
}

func (c *MockCommand) ImageSave(ctx context.Context, options command.ImageSaveOptions) error {
	c.SaveCalls = append(c.SaveCalls, options)
	return c.SaveError
}
