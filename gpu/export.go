// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
)

// ExportHandle is the OS-level memory handle returned by ExternalDat and
// ExternalTex (spec.md §3 "external memory"): a file descriptor on
// POSIX, a Windows HANDLE elsewhere. It is independently owned by the
// caller and must be duplicated again on each export call so closing
// one handle never invalidates another (spec.md end-to-end scenario 6,
// "External export").
type ExportHandle struct {
	// Handle is a platform-specific OS handle: an int fd on POSIX, a
	// windows.Handle on Windows. Callers on the platform they built for
	// know its concrete type; it is boxed here so this file stays
	// build-tag free.
	Handle any
	Offset uint64
}

// exportBacking is the lazily-created OS-visible mirror of a
// bufferPool's contents. WebGPU exposes no portable raw-memory export,
// so each pool that is ever exported keeps an OS file that every later
// Upload is mirrored into: the device buffer remains the copy actually
// rendered from, and the file is the copy handed out as a duplicable
// handle. Uploads made before the pool's first export are not in the
// file, and an export after the pool has grown replaces the file with a
// newly allocated one without carrying the earlier contents over.
type exportBacking struct {
	fd   exportFD
	size uint64
}

// ensureExportFile lazily backs the pool with an OS-visible memory
// region sized to the pool's current capacity, growing it to match a
// later bufferPool.grow. Safe to call repeatedly; only the first
// caller after a (re)size pays the allocation cost.
func (p *bufferPool) ensureExportFile() (*exportBacking, error) {
	p.exportMu.Lock()
	defer p.exportMu.Unlock()
	if p.export == nil {
		p.export = &exportBacking{}
	}
	if p.export.size != p.cap {
		// pool grew since the backing file was created (or it was never
		// created): (re)allocate to the current capacity.
		fd, err := newExportFD(p.cap)
		if err != nil {
			return nil, err
		}
		if p.export.fd != (exportFD{}) {
			closeExportFD(p.export.fd)
		}
		p.export.fd = fd
		p.export.size = p.cap
	}
	return p.export, nil
}

// writeExport mirrors an Upload into the pool's OS-visible backing
// file, if one has ever been requested. A pool nobody has exported
// carries no backing file and pays nothing for this call.
func (p *bufferPool) writeExport(offset uint64, data []byte) error {
	p.exportMu.Lock()
	backing := p.export
	p.exportMu.Unlock()
	if backing == nil {
		return nil
	}
	return writeExportFD(backing.fd, offset, data)
}

// ExternalDat returns a freshly duplicated OS handle to the memory
// region backing d, together with d's byte offset within it
// (spec.md §3 "external_dat", §6 "external_dat(visual, slot_idx)").
func (m *Manager) ExternalDat(d *Dat) (ExportHandle, error) {
	backing, err := d.pool.ensureExportFile()
	if err != nil {
		return ExportHandle{}, fmt.Errorf("gpu: export dat %d: %w", d.ID, err)
	}
	dup, err := dupExportFD(backing.fd)
	if err != nil {
		return ExportHandle{}, fmt.Errorf("gpu: export dat %d: %w", d.ID, err)
	}
	return ExportHandle{Handle: dup, Offset: d.Offset}, nil
}

// ExternalTex returns a freshly duplicated OS handle to t's export file
// (spec.md §3 "external_tex"), which is created on the first call and
// mirrors every later Upload; Uploads made before that first call are
// not in it. stagingOffset is returned unchanged as the handle's Offset.
func (m *Manager) ExternalTex(t *Tex, stagingOffset uint64) (ExportHandle, error) {
	backing, err := t.ensureExportFile()
	if err != nil {
		return ExportHandle{}, fmt.Errorf("gpu: export tex %d: %w", t.ID, err)
	}
	dup, err := dupExportFD(backing.fd)
	if err != nil {
		return ExportHandle{}, fmt.Errorf("gpu: export tex %d: %w", t.ID, err)
	}
	return ExportHandle{Handle: dup, Offset: stagingOffset}, nil
}
