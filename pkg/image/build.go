// Package image orchestrates a single provenance-stamped image build.
package image

import (
	"context"

	"github.com/imagebake/imagebake/pkg/arch"
	"github.com/imagebake/imagebake/pkg/artifact"
	"github.com/imagebake/imagebake/pkg/docker/command"
	"github.com/imagebake/imagebake/pkg/metadata"
	"github.com/imagebake/imagebake/pkg/provenance"
	"github.com/imagebake/imagebake/pkg/util/console"
)

// Options are the inputs to one build invocation.
type Options struct {
	// GitInfoProgram is the path of the external program that emits git
	// provenance JSON on stdout.
	GitInfoProgram string

	// ContextDir is the build context directory.
	ContextDir string

	// Dockerfile is the file name within ContextDir, "Dockerfile" if empty.
	Dockerfile string

	ImageName string
	BuildArgs []string
	Author    string
	SourceURL string
	License   string

	ArchiveOutFile  string
	MetadataOutFile string
	TagsOutFile     string

	// Architecture overrides host detection when non-empty. Accepts the same
	// aliases as detection.
	Architecture string

	NoCache        bool
	ProgressOutput string
}

// Build runs the pipeline strictly in sequence: load provenance, resolve the
// architecture, derive labels and tags, build the image, persist the
// metadata and tags files, and save the image archive. The first failure
// aborts; nothing written before a failure should be treated as valid.
func Build(ctx context.Context, dockerCommand command.Command, opts Options) error {
	info, err := provenance.Load(ctx, opts.GitInfoProgram)
	if err != nil {
		return err
	}

	architecture, err := resolveArchitecture(opts.Architecture)
	if err != nil {
		return err
	}

	meta := metadata.Build(info, architecture, opts.ImageName, opts.Author, opts.SourceURL, opts.License)
	tags, err := metadata.DeriveTags(meta, architecture)
	if err != nil {
		return err
	}

	console.Infof("Building image %s for %s...", opts.ImageName, architecture)
	err = dockerCommand.ImageBuild(ctx, command.ImageBuildOptions{
		WorkingDir:     opts.ContextDir,
		Dockerfile:     opts.Dockerfile,
		Labels:         meta,
		BuildArgs:      opts.BuildArgs,
		Tags:           tags,
		NoCache:        opts.NoCache,
		ProgressOutput: opts.ProgressOutput,
	})
	if err != nil {
		return err
	}

	if err := artifact.WriteMetadata(opts.MetadataOutFile, meta); err != nil {
		return err
	}
	if err := artifact.WriteTags(opts.TagsOutFile, tags); err != nil {
		return err
	}

	console.Infof("Saving image archive to %s...", opts.ArchiveOutFile)
	err = dockerCommand.ImageSave(ctx, command.ImageSaveOptions{
		OutputPath: opts.ArchiveOutFile,
		Tags:       tags,
	})
	if err != nil {
		return err
	}

	console.Infof("Image built as %s", tags[0])
	return nil
}

func resolveArchitecture(override string) (arch.Architecture, error) {
	if override != "" {
		return arch.Parse(override)
	}
	return arch.Detect()
}
