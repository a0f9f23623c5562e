package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/imagebake/imagebake/pkg/docker"
	"github.com/imagebake/imagebake/pkg/image"
	"github.com/imagebake/imagebake/pkg/util/console"
)

var buildOpts image.Options

func newBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build an image and persist its metadata, tags, and archive",
		Args:  cobra.NoArgs,
		RunE:  buildCommand,
	}

	flags := cmd.Flags()
	flags.StringVar(&buildOpts.GitInfoProgram, "git-info-program", "", "Path to the program that emits git provenance JSON")
	flags.StringVar(&buildOpts.ArchiveOutFile, "archive-out-file", "", "Path to write the image archive file")
	flags.StringVar(&buildOpts.MetadataOutFile, "metadata-out-file", "", "Path to write the metadata JSON file")
	flags.StringVar(&buildOpts.TagsOutFile, "tags-out-file", "", "Path to write the tags JSON file")
	flags.StringVar(&buildOpts.ContextDir, "docker-context-dir", "", "Path to the build context directory")
	flags.StringVar(&buildOpts.ImageName, "image-name", "", "Name of the image to build")
	flags.StringArrayVar(&buildOpts.BuildArgs, "build-arg", []string{}, "Build arg passed through to the build, repeatable")
	flags.StringVar(&buildOpts.Author, "author", "", "Image author used in image metadata")
	flags.StringVar(&buildOpts.SourceURL, "source-url", "", "Source code URL used in image metadata")
	flags.StringVar(&buildOpts.License, "license", "", "Image license used in image metadata")
	flags.StringVar(&buildOpts.Dockerfile, "file", "", "Name of the Dockerfile within the context directory (default \"Dockerfile\")")
	flags.StringVar(&buildOpts.Architecture, "arch", "", "Target architecture, bypassing host detection")
	flags.BoolVar(&buildOpts.NoCache, "no-cache", false, "Do not use cache when building the image")
	addProgressFlag(flags)

	for _, required := range []string{
		"git-info-program",
		"archive-out-file",
		"metadata-out-file",
		"tags-out-file",
		"docker-context-dir",
		"image-name",
		"author",
		"source-url",
		"license",
	} {
		_ = cmd.MarkFlagRequired(required)
	}

	return cmd
}

func buildCommand(cmd *cobra.Command, args []string) error {
	return image.Build(cmd.Context(), docker.NewDockerCommand(), buildOpts)
}

func addProgressFlag(flags *pflag.FlagSet) {
	defaultOutput := "auto"
	if os.Getenv("TERM") == "dumb" || !console.IsTerminal() {
		defaultOutput = "plain"
	}
	flags.StringVar(&buildOpts.ProgressOutput, "progress", defaultOutput, "Set type of build progress output, 'auto' (default), 'tty' or 'plain'")
}
