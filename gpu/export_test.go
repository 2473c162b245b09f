// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package gpu

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestExportFDDuplicateIsIndependent exercises the core external-memory
// invariant (spec.md end-to-end scenario 6): calling the export path
// twice yields two distinct, independently-closable handles over the
// same underlying bytes.
func TestExportFDDuplicateIsIndependent(t *testing.T) {
	backing, err := newExportFD(4096)
	require.NoError(t, err)
	defer closeExportFD(backing)

	payload := []byte("hello, datoviz")
	require.NoError(t, writeExportFD(backing, 0, payload))

	h1, err := dupExportFD(backing)
	require.NoError(t, err)
	h2, err := dupExportFD(backing)
	require.NoError(t, err)

	require.NotEqual(t, h1, h2, "each export call must return a freshly duplicated handle")

	fd1, ok := h1.(int)
	require.True(t, ok, "POSIX export handle must be an int fd")
	f1 := os.NewFile(uintptr(fd1), "dup1")

	buf := make([]byte, len(payload))
	n, err := f1.ReadAt(buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)
	require.Equal(t, payload, buf)

	// Closing h1 must not invalidate h2.
	require.NoError(t, f1.Close())
	fd2, ok := h2.(int)
	require.True(t, ok)
	f2 := os.NewFile(uintptr(fd2), "dup2")
	defer f2.Close()

	buf2 := make([]byte, len(payload))
	_, err = f2.ReadAt(buf2, 0)
	require.NoError(t, err)
	require.Equal(t, payload, buf2)
}

func TestWriteExportFDHonorsOffset(t *testing.T) {
	backing, err := newExportFD(64)
	require.NoError(t, err)
	defer closeExportFD(backing)

	require.NoError(t, writeExportFD(backing, 32, []byte("tail")))

	dup, err := dupExportFD(backing)
	require.NoError(t, err)
	fd, ok := dup.(int)
	require.True(t, ok)
	f := os.NewFile(uintptr(fd), "dup")
	defer f.Close()

	buf := make([]byte, 4)
	_, err = f.ReadAt(buf, 32)
	require.NoError(t, err)
	require.Equal(t, "tail", string(buf))
}
