// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package gpu

import (
	"os"

	"golang.org/x/sys/windows"
)

// exportFD is the Windows export backing: a temporary file whose
// handle is duplicated with DuplicateHandle on each export call,
// analogous to export_unix.go's unix.Dup path.
type exportFD struct {
	f *os.File
}

func newExportFD(size uint64) (exportFD, error) {
	f, err := os.CreateTemp("", "datoviz-export-*")
	if err != nil {
		return exportFD{}, err
	}
	if err := f.Truncate(int64(size)); err != nil {
		f.Close()
		return exportFD{}, err
	}
	return exportFD{f: f}, nil
}

// dupExportFD duplicates fd's HANDLE within the current process so
// the returned handle is independently owned and closable (spec.md §3
// "must be duplicated on each call so the caller can close it
// independently").
func dupExportFD(fd exportFD) (any, error) {
	proc := windows.CurrentProcess()
	src := windows.Handle(fd.f.Fd())
	var dup windows.Handle
	if err := windows.DuplicateHandle(proc, src, proc, &dup, 0, false, windows.DUPLICATE_SAME_ACCESS); err != nil {
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
