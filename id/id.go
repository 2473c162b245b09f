// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package id implements the process-unique object registry (spec C1):
// a thread-safe generator of non-zero 64-bit object identifiers and a
// map from identifier to a live object entry.
package id

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// ID is a process-unique, opaque 64-bit object identifier.
// Zero is the "none" sentinel and is never returned by [Registry.NewID].
type ID uint64

// None is the sentinel value meaning "no object".
const None ID = 0

// Status is the lifecycle state of a registered object.
type Status int

const (
	// Init is the state of an entry between ID allocation and Register.
	Init Status = iota
	// Created is the state of a live, usable object.
	Created
	// Destroyed is the state of an object that has been released.
	Destroyed
)

// Kind identifies the concrete flavor of object an entry holds.
// Consumers (package protocol) define the concrete values.
type Kind int32

// Entry is one row of the registry: a type tag, the live object pointer,
// and its lifecycle status.
type Entry struct {
	Kind   Kind
	Object any
	Status Status
}

// Registry maps object IDs to live entries. All operations are guarded
// by a single mutex, since registry operations are rare relative to
// per-frame GPU work (spec.md §4.1).
type Registry struct {
	mu      sync.Mutex
	gen     *rand.ChaCha8
	entries map[ID]*Entry
}

// New returns an initialized, empty registry with a freshly seeded ID
// generator. The generator is seeded from an OS entropy source
// (crypto/rand) as required by spec.md §4.1; no pack dependency
// supplies a non-standard-library OS-entropy reader or splittable PRNG,
// so the standard library is used here (see DESIGN.md).
func New() *Registry {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		// crypto/rand failing is fatal: there is no safe fallback for
		// process-unique identifiers.
		panic("id: failed to read OS entropy: " + err.Error())
	}
	return &Registry{
		gen:     rand.NewChaCha8(seed),
		entries: make(map[ID]*Entry),
	}
}

// NewID returns a fresh, non-zero, unique-per-process ID. Collisions
// against already-registered IDs are astronomically rare but are
// checked for and retried, per spec.md §4.1.
func (r *Registry) NewID() ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	for {
		candidate := ID(r.gen.Uint64())
		if candidate == None {
			continue
		}
		if _, exists := r.entries[candidate]; exists {
			continue
		}
		return candidate
	}
}

// Register associates id with an object of the given kind, in the
// Created status. It is the caller's responsibility to have obtained id
// from NewID (or to be replaying a fixed ID from a loaded batch).
func (r *Registry) Register(objID ID, kind Kind, object any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[objID] = &Entry{Kind: kind, Object: object, Status: Created}
}

// Lookup returns the entry for id and true, or a zero Entry and false if
// id is unknown or has been released. Callers must treat a miss as an
// invariant violation of the request producer (spec.md §4.1).
func (r *Registry) Lookup(objID ID) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[objID]
	if !ok || e.Status == Destroyed {
		return Entry{}, false
	}
	return *e, true
}

// Release marks id as destroyed and removes it from the registry.
// Double-release is logged and ignored by the caller's discretion: this
// method itself simply reports whether id was live, so callers (e.g.
// the renderer's error callback) can log on false.
func (r *Registry) Release(objID ID) (wasLive bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[objID]
	if !ok || e.Status == Destroyed {
		return false
	}
	delete(r.entries, objID)
	return true
}

// Enumerate returns a snapshot slice of all live IDs of the given kind.
// The slice is a copy, so callers may range over it without holding the
// registry lock and without observing concurrent mutation.
func (r *Registry) Enumerate(kind Kind) []ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ID
	for objID, e := range r.entries {
		if e.Kind == kind && e.Status != Destroyed {
			out = append(out, objID)
		}
	}
	return out
}

// Len returns the number of live entries, for diagnostics and tests.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// bytesOf is a small helper used by callers that need a stable byte
// encoding of an ID (e.g. for hashing into a pipeline fingerprint).
func (objID ID) bytesOf() [8]byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(objID))
	return b
}

// Bytes returns the little-endian byte encoding of the ID.
func (objID ID) Bytes() [8]byte { return objID.bytesOf() }
