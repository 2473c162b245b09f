// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protocol

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jinzhu/copier"

	"datoviz.org/dvz/id"
)

// ErrUseAfterDelete is wrapped into any Validate/renderer error caused
// by a request that references an object whose delete request already
// appears earlier in the same batch (spec.md §7 "invariant violation").
var ErrUseAfterDelete = errors.New("protocol: use after delete")

// Batch is an ordered, appendable sequence of Requests (spec.md §3
// "Request Batch"). A Batch is not safe for concurrent use; callers
// build one on a single goroutine and hand it to the renderer as a
// unit (spec.md §4.2).
type Batch struct {
	requests []Request
	ids      *id.Registry
}

// New returns an empty Batch.
func New() *Batch {
	return &Batch{}
}

// Add appends req to the batch. If req.Action is ActionCreate and
// req.TargetID is id.None, Add allocates a fresh ID (from the same
// generator package C1's object registry uses), writes it into the
// queued record, and returns it to the caller (spec.md §4.2 "if
// action == create and target_id == 0, allocate a new ID and write it
// into the record; return the assigned ID to the caller"). Otherwise
// it returns req.TargetID unchanged.
func (b *Batch) Add(req Request) id.ID {
	if req.Version == 0 {
		req.Version = Version
	}
	if req.Action == ActionCreate && req.TargetID == id.None {
		if b.ids == nil {
			b.ids = id.New()
		}
		req.TargetID = b.ids.NewID()
	}
	b.requests = append(b.requests, req)
	return req.TargetID
}

// Len reports the number of requests currently in the batch.
func (b *Batch) Len() int { return len(b.requests) }

// Requests returns the batch's requests. The returned slice aliases
// the batch's storage and must not be mutated by the caller.
func (b *Batch) Requests() []Request { return b.requests }

// Clear empties the batch, retaining its backing array for reuse.
func (b *Batch) Clear() { b.requests = b.requests[:0] }

// Copy returns a deep copy of the batch: every Request's scalar fields
// are duplicated with github.com/jinzhu/copier, and any Content payload
// carrying a []byte (UploadDat, UploadTex, CreateShader, RecordPush) is
// given its own backing array so neither batch observes the other's
// subsequent mutations.
func (b *Batch) Copy() *Batch {
	out := &Batch{requests: make([]Request, len(b.requests))}
	for i, req := range b.requests {
		var dup Request
		if err := copier.Copy(&dup, &req); err != nil {
			// copier only fails on reflect-level incompatibilities
			// between identical struct types, which cannot happen
			// here; fall back to a direct scalar copy.
			dup = req
		}
		dup.Content = copyContent(req.Content)
		out.requests[i] = dup
	}
	return out
}

func copyContent(c Content) Content {
	switch v := c.(type) {
	case UploadDat:
		v.Data = append([]byte(nil), v.Data...)
		return v
	case UploadTex:
		v.Data = append([]byte(nil), v.Data...)
		return v
	case CreateShader:
		v.Code = append([]byte(nil), v.Code...)
		return v
	case RecordPush:
		v.Data = append([]byte(nil), v.Data...)
		return v
	case CreateGraphics:
		v.Bindings = append([]VertexBinding(nil), v.Bindings...)
		v.Attributes = append([]VertexAttribute(nil), v.Attributes...)
		return v
	default:
		return c
	}
}

// Describe renders a one-line-per-request human-readable summary, the
// same shape printed by a "--dry-run" or log-level debug listing
// (spec.md §6 "human-readable dump").
func (b *Batch) Describe() string {
	var sb strings.Builder
	for i, req := range b.requests {
		fmt.Fprintf(&sb, "[%3d] %-8s %-9s id=%-20d flags=0x%04x",
			i, req.Action, req.ObjType, uint64(req.TargetID), req.Flags)
		if req.Description != "" {
			fmt.Fprintf(&sb, " # %s", req.Description)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Validate checks structural invariants that must hold before the
// renderer consumes the batch (spec.md §4.2 edge cases): every request
// names a matching Content.ObjectType, version fields agree, and no
// delete precedes its matching object's create within the same batch.
func (b *Batch) Validate() error {
	created := map[id.ID]bool{}
	deleted := map[id.ID]bool{}
	for i, req := range b.requests {
		if req.Version != Version {
			return fmt.Errorf("protocol: request %d: unsupported version %d", i, req.Version)
		}
		if req.Content != nil && req.Content.ObjectType() != req.ObjType {
			return fmt.Errorf("protocol: request %d: content type %s does not match object type %s",
				i, req.Content.ObjectType(), req.ObjType)
		}
		switch req.Action {
		case ActionCreate:
			if created[req.TargetID] && !deleted[req.TargetID] {
				return fmt.Errorf("protocol: request %d: duplicate create for id %d", i, req.TargetID)
			}
			created[req.TargetID] = true
			delete(deleted, req.TargetID)
		case ActionDelete:
			if !created[req.TargetID] {
				return fmt.Errorf("protocol: request %d: delete of unknown id %d", i, req.TargetID)
			}
			deleted[req.TargetID] = true
		case ActionUpdate, ActionBind, ActionRecord:
			if !created[req.TargetID] {
				return fmt.Errorf("protocol: request %d: %s on unknown id %d", i, req.Action, req.TargetID)
			}
			if deleted[req.TargetID] {
				return fmt.Errorf("protocol: request %d: %s on deleted id %d: %w", i, req.Action, req.TargetID, ErrUseAfterDelete)
			}
		}
	}
	return nil
}
