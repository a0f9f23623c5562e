// Package command defines the narrow contract the pipeline has with the
// docker CLI, so implementations can be swapped out in tests.
package command

import "context"

type Command interface {
	// ImageBuild builds an image from a context directory. A non-nil error
	// means the build failed and the pipeline must abort; a failed build is
	// never safe to retry blindly.
	ImageBuild(ctx context.Context, options ImageBuildOptions) error

	// ImageSave writes a single archive file containing every image named by
	// options.Tags.
	ImageSave(ctx context.Context, options ImageSaveOptions) error
}

type ImageBuildOptions struct {
	// WorkingDir is the build context directory.
	WorkingDir string

	// Dockerfile is the file name within WorkingDir, "Dockerfile" if empty.
	Dockerfile string

	// Labels are embedded in the image. Emitted in sorted key order so
	// invocation logs are reproducible.
	Labels map[string]string

	// BuildArgs are opaque key=value strings passed through unmodified.
	BuildArgs []string

	// Tags are applied in order.
	Tags []string

	NoCache        bool
	ProgressOutput string
}

type ImageSaveOptions struct {
	// OutputPath is where the archive file is written.
	OutputPath string

	// Tags name the images to include.
	Tags []string
}
