package slatex

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/slatex-go/pkg/slatex/parser"
)

// Staged is a workbook opened from a temporary copy, so the source file can
// stay open in Excel while it is read.
type Staged struct {
	*parser.Workbook
	// Source is the original workbook path.
	Source string
	dir    string
}

// Stage copies the workbook at path into a new temp directory, keeping its
// modification time, and opens the copy.
func Stage(path string) (*Staged, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrFileNotFound, path)
	}

	dir, err := os.MkdirTemp("", "slatex_")
	if err != nil {
		return nil, fmt.Errorf("stage workbook: %w", err)
	}
	dst := filepath.Join(dir, filepath.Base(path))
	if err := copyFile(path, dst); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("stage workbook: %w", err)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("stage workbook: %w", err)
	}

	wb, err := parser.OpenWorkbook(dst)
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return &Staged{Workbook: wb, Source: path, dir: dir}, nil
}

// Close closes the workbook and removes the staged copy.
func (s *Staged) Close() error {
	err := s.Workbook.Close()
	if rmErr := os.RemoveAll(s.dir); err == nil {
		err = rmErr
	}
	return err
}

// BookName returns the source file name.
func (s *Staged) BookName() string {
	return filepath.Base(s.Source)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// ProjectRoot returns the first candidate directory that contains public/.
// Empty candidates are skipped.
func ProjectRoot(candidates ...string) (string, error) {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		abs, err := filepath.Abs(c)
		if err != nil {
			continue
		}
		if info, err := os.Stat(filepath.Join(abs, "public")); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", ErrNoProjectRoot
}

// PublicPath resolves rel under root/public. Leading slashes and
// backslashes are ignored, and the extension is replaced by ext when ext is
// not empty.
func PublicPath(root, rel, ext string) string {
	rel = strings.TrimLeft(filepath.FromSlash(strings.ReplaceAll(rel, `\`, "/")), `/\`)
	p := filepath.Join(root, "public", rel)
	if ext != "" {
		p = strings.TrimSuffix(p, filepath.Ext(p)) + ext
	}
	return p
}
