// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package shred

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Ext is the file extension used for columns written by a DirStore.
const Ext = ".jsonl"

// A DirStore is a Store that writes each column to a separate file in a
// directory, one JSON value per line.
type DirStore struct {
	dir   string
	files map[string]*column
}

type column struct {
	f *os.File
	w *bufio.Writer
}

// NewDirStore constructs a DirStore that writes into dir, which must be an
// existing directory. Files for existing columns are truncated when first
// written.
func NewDirStore(dir string) (*DirStore, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, err
	} else if !fi.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return &DirStore{dir: dir, files: make(map[string]*column)}, nil
}

// Path returns the file path for the named column.
func (d *DirStore) Path(name string) string {
	return filepath.Join(d.dir, name+Ext)
}

// Put implements part of the Store interface.
func (d *DirStore) Put(name string, value []byte) error {
	c, ok := d.files[name]
	if !ok {
		f, err := os.Create(d.Path(name))
		if err != nil {
			return err
		}
		c = &column{f: f, w: bufio.NewWriter(f)}
		d.files[name] = c
	}
	if _, err := c.w.Write(value); err != nil {
		return err
	}
	return c.w.WriteByte('\n')
}

// Close implements part of the Store interface. It flushes and closes all
// the files opened by d.
func (d *DirStore) Close() error {
	var errs []error
	for name, c := range d.files {
		errs = append(errs, c.w.Flush(), c.f.Close())
		delete(d.files, name)
	}
	return errors.Join(errs...)
}
