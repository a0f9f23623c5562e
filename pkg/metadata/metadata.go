// Package metadata derives the canonical label set and tag pair for an image
// build from git provenance and the target architecture.
package metadata

import (
	"fmt"
	"strings"

	"github.com/google/go-containerregistry/pkg/name"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/imagebake/imagebake/pkg/arch"
	"github.com/imagebake/imagebake/pkg/global"
	"github.com/imagebake/imagebake/pkg/provenance"
)

// Vendor label keys, under global.LabelNamespace.
var (
	LabelArchitecture = global.LabelNamespace + "architecture"
	LabelImageURL     = global.LabelNamespace + "image_url"
	LabelCommitURL    = global.LabelNamespace + "commit_url"
)

// Metadata is the label set embedded in the built image, keyed by label name.
// It is built once and must not be mutated afterward.
type Metadata map[string]string

// Name returns the image name.
func (m Metadata) Name() string {
	return m["name"]
}

// Version returns the build version, including the -dirty suffix when the
// working tree had uncommitted changes.
func (m Metadata) Version() string {
	return m[ocispec.AnnotationVersion]
}

// Revision returns the commit hash, including the -dirty suffix when the
// working tree had uncommitted changes.
func (m Metadata) Revision() string {
	return m[ocispec.AnnotationRevision]
}

// Build computes the label set for an image build. The build version is
// "{calVer}-sha.{abbreviatedHash}" and the revision is the full commit hash;
// a dirty working tree appends "-dirty" to both, never to only one, so a
// dirty build can never collide with a clean release. The commit URL is
// derived from the clean hash: the suffixed revision names no real commit.
func Build(info *provenance.Info, architecture arch.Architecture, imageName, author, sourceURL, license string) Metadata {
	buildVersion := fmt.Sprintf("%s-sha.%s", info.CalVer, info.AbbreviatedCommitHash)
	revision := info.CommitHash

	commitURL := fmt.Sprintf("%s/commit/%s", strings.TrimSuffix(sourceURL, ".git"), info.CommitHash)

	if info.IsDirty {
		revision += "-dirty"
		buildVersion += "-dirty"
	}

	imageURL := fmt.Sprintf(
		"https://hub.docker.com/r/%s/tags?page=1&ordering=last_updated&name=%s-%s",
		imageName, buildVersion, architecture)

	return Metadata{
		"name":                      imageName,
		"maintainer":                author,
		ocispec.AnnotationVersion:   buildVersion,
		ocispec.AnnotationAuthors:   author,
		ocispec.AnnotationLicenses:  license,
		ocispec.AnnotationSource:    sourceURL,
		ocispec.AnnotationRevision:  revision,
		ocispec.AnnotationCreated:   info.CommitterDate,
		LabelArchitecture:           architecture.String(),
		LabelImageURL:               imageURL,
		LabelCommitURL:              commitURL,
	}
}

// DeriveTags returns the tag pair for a build: the build version tag first,
// then the immutable sha tag. Downstream consumers rely on this order. Each
// tag is validated as an image reference so a malformed image name fails
// here instead of inside the build tool.
func DeriveTags(m Metadata, architecture arch.Architecture) ([]string, error) {
	tags := []string{
		fmt.Sprintf("%s:%s-%s", m.Name(), m.Version(), architecture),
		fmt.Sprintf("%s:sha-%s-%s", m.Name(), m.Revision(), architecture),
	}
	for _, tag := range tags {
		if _, err := name.NewTag(tag); err != nil {
			return nil, fmt.Errorf("invalid image tag %q: %w", tag, err)
		}
	}
	return tags, nil
}
