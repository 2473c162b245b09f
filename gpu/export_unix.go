// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package gpu

import (
	"os"

	"golang.org/x/sys/unix"
)

// exportFD is the POSIX export backing: an anonymous, unlinked
// temporary file. Unlinking right after creation leaves the inode
// alive only as long as some process holds an fd open on it, the
// standard "anonymous file" trick for handing out a duplicable memory
// region without a visible path.
type exportFD struct {
	f *os.File
}

func newExportFD(size uint64) (exportFD, error) {
	f, err := os.CreateTemp("", "datoviz-export-*")
	if err != nil {
		return exportFD{}, err
	}
	if err := os.Remove(f.Name()); err != nil {
		f.Close()
		return exportFD{}, err
	}
	if err := f.Truncate(int64(size)); err != nil {
		f.Close()
		return exportFD{}, err
	}
	return exportFD{f: f}, nil
}

// dupExportFD duplicates fd's descriptor with unix.Dup so the returned
// handle outlives and is independent of the original (spec.md §3
// "must be duplicated on each call so the caller can close it
// independently").
func dupExportFD(fd exportFD) (any, error) {
	dup, err := unix.Dup(int(fd.f.Fd()))
	if err != nil {
		return nil, err
	}
	return dup, nil
}

func writeExportFD(fd exportFD, offset uint64, data []byte) error {
	_, err := fd.f.WriteAt(data, int64(offset))
	return err
}

func closeExportFD(fd exportFD) {
	fd.f.Close()
}
