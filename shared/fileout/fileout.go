// Package fileout writes a set of output files so that either all of them
// appear at their final paths or none do.
package fileout

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/automoto/gifsprite/shared/toolerr"
)

// Artifact is one output file and the function producing its content.
type Artifact struct {
	Path  string
	Write func(w io.Writer) error
}

// rename is swapped out in tests to fail part way through a commit.
var rename = os.Rename

// WriteAll stages every artifact in a temp file next to its destination and
// renames them into place only after all of them were written successfully.
// If a rename fails, the artifacts already moved are removed and any files
// they replaced are restored.
func WriteAll(arts ...Artifact) error {
	staged := make([]string, 0, len(arts))
	cleanup := func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}

	for _, a := range arts {
		if info, err := os.Stat(a.Path); err == nil && info.IsDir() {
			cleanup()
			return fmt.Errorf("write %s: %w: destination is a directory", a.Path, toolerr.ErrEncode)
		}
		tmp, err := stage(a)
		if err != nil {
			cleanup()
			return fmt.Errorf("write %s: %w: %w", a.Path, toolerr.ErrEncode, err)
		}
		staged = append(staged, tmp)
	}

	if err := commit(arts, staged); err != nil {
		cleanup()
		return err
	}
	return nil
}

// commit moves every staged file to its destination. Existing destinations
// are first moved aside to a backup, which is dropped on success and put
// back on failure.
func commit(arts []Artifact, staged []string) error {
	backups := make([]string, len(arts))
	moved := 0
	rollback := func() {
		for i := moved - 1; i >= 0; i-- {
			os.Remove(arts[i].Path)
		}
		for i, bak := range backups {
			if bak != "" {
				rename(bak, arts[i].Path)
			}
		}
	}

	for i, a := range arts {
		if _, err := os.Lstat(a.Path); err == nil {
			bak := staged[i] + ".bak"
			if err := rename(a.Path, bak); err != nil {
				rollback()
				return fmt.Errorf("back up %s: %w: %w", a.Path, toolerr.ErrEncode, err)
			}
			backups[i] = bak
		}
		if err := rename(staged[i], a.Path); err != nil {
			rollback()
			return fmt.Errorf("move %s into place: %w: %w", a.Path, toolerr.ErrEncode, err)
		}
		moved++
	}

	for _, bak := range backups {
		if bak != "" {
			os.Remove(bak)
		}
	}
	return nil
}

func stage(a Artifact) (string, error) {
	dir, base := filepath.Split(a.Path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return "", err
	}

	bw := bufio.NewWriter(f)
	if err := a.Write(bw); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
