package record

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/limaJavier/admission/pkg/model"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

const lockName = ".admission.lock"

var ErrOutputLocked = errors.New("output directory is locked by another run")

func FileName(department *model.Department) string {
	return strings.ToLower(department.Name) + ".txt"
}

// Write prints the roster one student per line: first_name last_name score
func Write(writer io.Writer, department *model.Department) error {
	buffered := bufio.NewWriter(writer)
	for _, student := range department.Students {
		if _, err := fmt.Fprintf(buffered, "%v %v %.1f\n", student.FirstName, student.LastName, student.Score); err != nil {
			return err
		}
	}
	return buffered.Flush()
}

// WriteFile replaces the department's roster file in dir. The roster is written to a temporary file first so readers never see a partial roster
func WriteFile(dir string, department *model.Department) error {
	tmpFile, err := os.CreateTemp(dir, FileName(department)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmpFile.Name()) // No-op once the file has been renamed

	if err := Write(tmpFile, department); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write %v roster: %w", department.Name, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	path := filepath.Join(dir, FileName(department))
	if err := os.Rename(tmpFile.Name(), path); err != nil {
		return fmt.Errorf("failed to write %v: %w", path, err)
	}
	klog.V(4).InfoS("Roster written", "department", department.Name, "file", path, "students", len(department.Students))
	return nil
}

// WriteAll writes every roster into dir while holding the directory's lock file
func WriteAll(ctx context.Context, dir string, departments []*model.Department) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, lockName))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("cannot lock output directory: %w", err)
	} else if !locked {
		return fmt.Errorf("%w: %v", ErrOutputLocked, dir)
	}
	defer lock.Unlock()

	group, ctx := errgroup.WithContext(ctx)
	for _, department := range departments {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return WriteFile(dir, department)
		})
	}
	return group.Wait()
}

// Format renders the department as printed on the standard output, its name followed by one line per student
func Format(department *model.Department) string {
	lines := lo.Map(department.Students, func(student model.Candidate, _ int) string { return student.String() })
	return department.Name + "\n" + strings.Join(append(lines, ""), "\n")
}
