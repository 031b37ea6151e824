package build

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cruciblehq/cmbuild/internal/paths"
)

// Describes the merge of several static libraries into one archive.
type ArchiveMergeSpec struct {
	Destination string   // Archive to create.
	Sources     []string // Libraries to add, in order.
}

// Checks that the merge can be expressed as an archiver script.
//
// Script lines are whitespace-delimited with no quoting, so paths containing
// whitespace cannot be represented.
func (s ArchiveMergeSpec) Validate() error {
	if len(s.Sources) == 0 {
		return errors.New("no source libraries")
	}
	for _, p := range append([]string{s.Destination}, s.Sources...) {
		if p == "" {
			return errors.New("empty archive path")
		}
		if strings.ContainsAny(p, " \t\r\n") {
			return fmt.Errorf("archive path %q contains whitespace", p)
		}
	}
	return nil
}

// Renders the archiver control script.
//
//	CREATE <destination>
//	ADDLIB <source>   (once per source, in order)
//	SAVE
//	END
func (s ArchiveMergeSpec) Script() []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "CREATE %s\n", filepath.ToSlash(s.Destination))
	for _, src := range s.Sources {
		fmt.Fprintf(&b, "ADDLIB %s\n", filepath.ToSlash(src))
	}
	b.WriteString("SAVE\nEND\n")
	return b.Bytes()
}

// Validates the merge, creates the destination's parent directory and writes
// the script to path.
func (s ArchiveMergeSpec) WriteScript(path string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Destination), paths.DefaultDirMode); err != nil {
		return err
	}
	return os.WriteFile(path, s.Script(), paths.DefaultFileMode)
}
