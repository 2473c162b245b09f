// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"sync"

	"github.com/rajveermalviya/go-webgpu/wgpu"

	"datoviz.org/dvz/protocol"
)

// Dat is a byte-addressable GPU buffer region sub-allocated from a
// shared backing buffer of its BuffType (spec.md §3 "Dat"). The
// {buffer, offset, size} triple is the resource's stable identity for
// the lifetime of the Dat.
type Dat struct {
	ID     protocol.DatID
	Type   protocol.BuffType
	Offset uint64
	Size   uint64
	Flags  uint32

	pool *bufferPool
}

// Upload copies data into the Dat's region starting at the given
// relative offset, staging through host-visible memory and queuing a
// device-side copy (spec.md §4.3 "staging upload"). The copy is
// recorded on the device's default queue and is visible to subsequent
// submissions ordered after it.
func (d *Dat) Upload(dev *Device, offset uint64, data []byte) error {
	if offset+uint64(len(data)) > d.Size {
		return fmt.Errorf("gpu: upload out of bounds: offset=%d len=%d size=%d", offset, len(data), d.Size)
	}
	buf := d.pool.deviceBuffer()
	dev.Queue.WriteBuffer(buf, d.Offset+offset, data)
	return d.pool.writeExport(d.Offset+offset, data)
}

// Manager owns the shared backing buffers (one pool per BuffType) that
// every Dat sub-allocates from, plus the free-list bookkeeping needed
// to reclaim space when a Dat's delete request is processed
// (spec.md §4.3 "Lifetimes": a dat lives from create until delete or
// renderer shutdown).
type Manager struct {
	dev *Device

	mu    sync.Mutex
	pools map[protocol.BuffType]*bufferPool
}

// NewManager returns a resource manager bound to dev.
func NewManager(dev *Device) *Manager {
	return &Manager{dev: dev, pools: make(map[protocol.BuffType]*bufferPool)}
}

// CreateDat sub-allocates a new Dat of the requested type and size.
func (m *Manager) CreateDat(id protocol.DatID, c protocol.CreateDat) (*Dat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pool, ok := m.pools[c.Buffer]
	if !ok {
		pool = newBufferPool(m.dev, c.Buffer)
		m.pools[c.Buffer] = pool
	}
	offset, err := pool.alloc(c.Size)
	if err != nil {
		return nil, err
	}
	return &Dat{ID: id, Type: c.Buffer, Offset: offset, Size: c.Size, Flags: c.Flags, pool: pool}, nil
}

// DeleteDat returns a Dat's region to its pool's free list.
func (m *Manager) DeleteDat(d *Dat) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.pool.release(d.Offset, d.Size)
}

// bufferPool is a bump allocator with free-list reuse over one shared
// wgpu.Buffer per BuffType, generalizing vgpu's MemBuff host/device
// staging pair into a sub-allocating arena (spec.md §4.3).
type bufferPool struct {
	dev      *Device
	kind     protocol.BuffType
	buffer   *wgpu.Buffer
	cap      uint64
	cursor   uint64
	freeList []freeSpan

	exportMu sync.Mutex
	export   *exportBacking
}

type freeSpan struct {
	offset, size uint64
}

const initialPoolCapacity = 1 << 20 // 1 MiB, grown by doubling on overflow

func newBufferPool(dev *Device, kind protocol.BuffType) *bufferPool {
	p := &bufferPool{dev: dev, kind: kind, cap: initialPoolCapacity}
	p.buffer = dev.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: kind.String(),
		Usage: bufferUsage(kind),
		Size:  p.cap,
	})
	return p
}

func (p *bufferPool) deviceBuffer() *wgpu.Buffer { return p.buffer }

// Buffer returns the shared wgpu.Buffer this Dat is sub-allocated
// from, for binding as a vertex/index buffer at d.Offset (gpu/record
// consults this when replaying a "draw" record).
func (d *Dat) Buffer() *wgpu.Buffer { return d.pool.deviceBuffer() }

// alloc finds space for size bytes, reusing a free span if one fits
// exactly or with least leftover (best-fit), otherwise bumping the
// cursor; it grows the backing buffer by doubling when the cursor
// would overflow the current capacity.
func (p *bufferPool) alloc(size uint64) (uint64, error) {
	if size == 0 {
		return 0, nil
	}
	best := -1
	var bestLeftover uint64
	for i, f := range p.freeList {
		if f.size >= size {
			leftover := f.size - size
			if best == -1 || leftover < bestLeftover {
				best, bestLeftover = i, leftover
			}
		}
	}
	if best >= 0 {
		f := p.freeList[best]
		p.freeList = append(p.freeList[:best], p.freeList[best+1:]...)
		if bestLeftover > 0 {
			p.freeList = append(p.freeList, freeSpan{offset: f.offset + size, size: bestLeftover})
		}
		return f.offset, nil
	}
	if p.cursor+size > p.cap {
		p.grow(p.cursor + size)
	}
	off := p.cursor
	p.cursor += size
	return off, nil
}

func (p *bufferPool) release(offset, size uint64) {
	if size == 0 {
		return
	}
	p.freeList = append(p.freeList, freeSpan{offset: offset, size: size})
}

// grow reallocates the backing buffer to at least need bytes, doubling
// capacity each time (existing GPU content is not preserved across a
// grow; callers must re-upload after a resize-triggering create).
func (p *bufferPool) grow(need uint64) {
	newCap := p.cap
	for newCap < need {
		newCap *= 2
	}
	newBuf := p.dev.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: p.kind.String(),
		Usage: bufferUsage(p.kind),
		Size:  newCap,
	})
	p.buffer.Release()
	p.buffer = newBuf
	p.cap = newCap
}

func bufferUsage(kind protocol.BuffType) wgpu.BufferUsage {
	usage := wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst
	switch kind {
	case protocol.BuffVertex:
		usage |= wgpu.BufferUsageVertex
	case protocol.BuffIndex:
		usage |= wgpu.BufferUsageIndex
	case protocol.BuffStorage:
		usage |= wgpu.BufferUsageStorage
	case protocol.BuffUniform:
		usage |= wgpu.BufferUsageUniform
	case protocol.BuffIndirect:
		usage |= wgpu.BufferUsageIndirect
	}
	return usage
}

