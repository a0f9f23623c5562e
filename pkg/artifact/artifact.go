// Package artifact persists build metadata for downstream pipeline stages.
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/imagebake/imagebake/pkg/metadata"
)

// ErrWriteFailed means an artifact file could not be written. Fatal: a
// pipeline stage downstream expects every artifact to exist.
var ErrWriteFailed = errors.New("artifact write failed")

// WriteMetadata writes the label set as a JSON object with lexically sorted
// keys, so the file is byte-for-byte deterministic for identical builds.
func WriteMetadata(path string, m metadata.Metadata) error {
	return writeJSON(path, m)
}

// WriteTags writes the tag pair as a JSON array, preserving derivation order:
// the build version tag first, then the immutable sha tag.
func WriteTags(path string, tags []string) error {
	return writeJSON(path, tags)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrWriteFailed, path, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %s", ErrWriteFailed, err)
	}
	return nil
}
