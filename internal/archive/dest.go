package archive

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// destination confines extraction to one directory. Files and directories
// are created through an os.Root; link targets are checked against the real
// paths of links already on disk, so a chain of in-archive symlinks cannot
// redirect a later entry outside.
type destination struct {
	root *os.Root
	dir  string
	real string
}

func openDestination(dir string) (*destination, error) {
	if err := os.MkdirAll(dir, MakeDirMode); err != nil {
		return nil, fmt.Errorf("create destination: %w", err)
	}
	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, err
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, err
	}
	return &destination{root: root, dir: dir, real: real}, nil
}

func (d *destination) Close() error {
	return d.root.Close()
}

// rel cleans an entry name into a destination-relative path, reporting false
// for absolute or lexically escaping names
func (d *destination) rel(name string) (string, bool) {
	if name == "" || filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", false
	}
	rel := filepath.Clean(filepath.FromSlash(name))
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

func (d *destination) mkdirAll(rel string, mode os.FileMode) error {
	if rel == "." || rel == "" {
		return nil
	}
	cur := ""
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		cur = filepath.Join(cur, part)
		if err := d.root.Mkdir(cur, mode); err != nil && !errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("mkdir failed: %w", err)
		}
	}
	return nil
}

func (d *destination) writeFile(rel string, r io.Reader, mode os.FileMode) error {
	if err := d.mkdirAll(filepath.Dir(rel), MakeDirMode); err != nil {
		return err
	}

	file, err := d.root.OpenFile(rel, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm()|0o200)
	if err != nil {
		return fmt.Errorf("create file failed: %w", err)
	}
	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		return fmt.Errorf("copy failed: %w", err)
	}
	return file.Close()
}

// symlink creates rel pointing at target. Links whose resolved target leaves
// the destination are skipped and reported as false.
func (d *destination) symlink(rel, target string) (bool, error) {
	if target == "" || filepath.IsAbs(target) {
		return false, nil
	}
	if err := d.mkdirAll(filepath.Dir(rel), MakeDirMode); err != nil {
		return false, err
	}
	parent, err := d.resolve(filepath.Dir(rel))
	if err != nil {
		return false, err
	}
	resolved, err := walkReal(parent, filepath.FromSlash(target))
	if err != nil {
		return false, err
	}
	if !within(d.real, resolved) {
		return false, nil
	}
	if err := os.Symlink(target, filepath.Join(d.dir, rel)); err != nil {
		return false, fmt.Errorf("symlink failed: %w", err)
	}
	return true, nil
}

// hardlink links rel to the existing entry source. Sources that resolve
// outside the destination are skipped and reported as false.
func (d *destination) hardlink(rel, source string) (bool, error) {
	src, ok := d.rel(source)
	if !ok {
		return false, nil
	}
	srcParent, err := d.resolve(filepath.Dir(src))
	if err != nil || !within(d.real, srcParent) {
		return false, err
	}
	if err := d.mkdirAll(filepath.Dir(rel), MakeDirMode); err != nil {
		return false, err
	}
	parent, err := d.resolve(filepath.Dir(rel))
	if err != nil {
		return false, err
	}
	if !within(d.real, parent) {
		return false, nil
	}
	if err := os.Link(filepath.Join(srcParent, filepath.Base(src)), filepath.Join(parent, filepath.Base(rel))); err != nil {
		return false, fmt.Errorf("hardlink failed: %w", err)
	}
	return true, nil
}

// resolve returns the real path of a destination-relative path
func (d *destination) resolve(rel string) (string, error) {
	return walkReal(d.real, rel)
}

// walkReal joins rel onto the real directory base one component at a time,
// following symlinks that exist on disk. Components past the first missing
// one are joined lexically.
func walkReal(base, rel string) (string, error) {
	cur := base
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		switch part {
		case "", ".":
			continue
		case "..":
			cur = filepath.Dir(cur)
			continue
		}
		next := filepath.Join(cur, part)
		info, err := os.Lstat(next)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			cur = next
		case err != nil:
			return "", err
		case info.Mode()&os.ModeSymlink != 0:
			real, err := filepath.EvalSymlinks(next)
			if errors.Is(err, fs.ErrNotExist) {
				// dangling: resolve the link text itself
				target, rerr := os.Readlink(next)
				if rerr != nil {
					return "", rerr
				}
				if filepath.IsAbs(target) {
					cur = filepath.Clean(target)
				} else {
					cur = filepath.Join(cur, target)
				}
				continue
			}
			if err != nil {
				return "", err
			}
			cur = real
		default:
			cur = next
		}
	}
	return cur, nil
}

func within(root, path string) bool {
	root = filepath.Clean(root)
	path = filepath.Clean(path)
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}

func dirMode(mode os.FileMode) os.FileMode {
	perm := mode.Perm()
	if perm == 0 {
		return MakeDirMode
	}
	return perm | 0o700
}
