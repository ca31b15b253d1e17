package util

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ReadDirRecursive returns the absolute paths of all files below dir, sorted.
// Subdirectories are read concurrently with at most GOMAXPROCS readers.
func ReadDirRecursive(ctx context.Context, dir string) ([]string, error) {
	root, err := absDir(dir)
	if err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	var (
		mu    sync.Mutex
		files []string
	)

	var walk func(path string) error
	walk = func(path string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return errors.Wrapf(err, "read dir %s", path)
		}
		for _, entry := range entries {
			full := filepath.Join(path, entry.Name())
			if entry.IsDir() {
				task := func() error { return walk(full) }
				// Run inline when the group is saturated so a full group never
				// waits on itself.
				if !g.TryGo(task) {
					if err := task(); err != nil {
						return err
					}
				}
				continue
			}
			mu.Lock()
			files = append(files, full)
			mu.Unlock()
		}
		return nil
	}

	g.Go(func() error { return walk(root) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// ReadDirRecursiveSync returns the absolute paths of all files below dir in lexical order.
func ReadDirRecursiveSync(dir string) ([]string, error) {
	root, err := absDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", root)
	}
	return files, nil
}

// CountFiles counts the files below path. Counting stops as soon as the count exceeds
// limit, in which case overage is true. A limit below 0 disables the early stop.
func CountFiles(path string, limit int) (count int, overage bool, err error) {
	var info os.FileInfo
	info, err = os.Stat(path)
	if err != nil {
		return
	}
	if !info.IsDir() {
		err = ErrExpectedDirectory
		return
	}
	var entries []os.DirEntry
	entries, err = os.ReadDir(path)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			count++
			if limit >= 0 && count > limit {
				return count, true, nil
			}
			continue
		}
		remaining := limit
		if limit >= 0 {
			remaining = limit - count
		}
		c, o, e := CountFiles(filepath.Join(path, entry.Name()), remaining)
		count += c
		if o {
			return count, true, nil
		}
		if e != nil {
			return count, false, e
		}
	}
	return
}

func absDir(dir string) (string, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %s", dir)
	}
	info, err := os.Stat(root)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", ErrExpectedDirectory
	}
	return root, nil
}
