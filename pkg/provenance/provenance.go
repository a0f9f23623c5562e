// Package provenance loads git provenance for the commit being built by
// running an external program that emits a single JSON object on stdout.
package provenance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/imagebake/imagebake/pkg/util/console"
)

var (
	// ErrProvenanceUnavailable means the provenance program failed or its
	// output could not be decoded.
	ErrProvenanceUnavailable = errors.New("provenance unavailable")

	// ErrMissingField means a required provenance field was absent or empty.
	ErrMissingField = errors.New("missing provenance field")
)

// Info is the git provenance of the commit being built. It is constructed
// once per invocation and read-only afterward.
type Info struct {
	CommitHash            string
	AbbreviatedCommitHash string
	CalVer                string
	CommitterDate         string
	IsDirty               bool
}

// rawInfo mirrors the program's JSON contract. is_dirty is a pointer so an
// absent flag is distinguishable from false.
type rawInfo struct {
	CommitHash            string `json:"commit_hash"`
	AbbreviatedCommitHash string `json:"abbreviated_commit_hash"`
	CalVer                string `json:"cal_ver"`
	CommitterDate         string `json:"committer_date_strict_iso8601"`
	IsDirty               *bool  `json:"is_dirty"`
}

// Load runs the provenance program with no arguments and decodes its output.
func Load(ctx context.Context, program string) (*Info, error) {
	cmd := exec.CommandContext(ctx, program)
	cmd.Env = os.Environ()

	console.Debug("$ " + strings.Join(cmd.Args, " "))
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrProvenanceUnavailable, program, err)
	}

	var raw rawInfo
	if err := json.Unmarshal(bytes.TrimSpace(out), &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to decode output of %s: %s", ErrProvenanceUnavailable, program, err)
	}

	return raw.validate()
}

func (r *rawInfo) validate() (*Info, error) {
	for field, value := range map[string]string{
		"commit_hash":                   r.CommitHash,
		"abbreviated_commit_hash":       r.AbbreviatedCommitHash,
		"cal_ver":                       r.CalVer,
		"committer_date_strict_iso8601": r.CommitterDate,
	} {
		if value == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, field)
		}
	}
	if r.IsDirty == nil {
		return nil, fmt.Errorf("%w: is_dirty", ErrMissingField)
	}

	return &Info{
		CommitHash:            r.CommitHash,
		AbbreviatedCommitHash: r.AbbreviatedCommitHash,
		CalVer:                r.CalVer,
		CommitterDate:         r.CommitterDate,
		IsDirty:               *r.IsDirty,
	}, nil
}
