// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protocol

import (
	"encoding/binary"
	"fmt"
	"io"

	"datoviz.org/dvz/id"
)

// Magic is the 3-byte file signature at the start of a request dump
// (spec.md §6).
var Magic = [3]byte{'D', 'V', 'Z'}

// Dump writes b's requests in the binary request-dump format to w:
// Magic + version:u32le + count:u32le, followed by one record per
// request (spec.md §6). Content bytes are always inlined regardless of
// FlagInlinePayload on individual requests; no code in this package
// reads that flag.
func Dump(w io.Writer, b *Batch) error {
	if _, err := w.Write(Magic[:]); err != nil {
		return err
	}
	if err := writeU32(w, Version); err != nil {
		return err
	}
	if err := writeU32(w, uint32(b.Len())); err != nil {
		return err
	}
	for i, req := range b.requests {
		if err := writeRequest(w, req); err != nil {
			return fmt.Errorf("protocol: dump request %d: %w", i, err)
		}
	}
	return nil
}

func writeRequest(w io.Writer, req Request) error {
	if err := writeU32(w, uint32(req.Action)); err != nil {
		return err
	}
	if err := writeU32(w, uint32(req.ObjType)); err != nil {
		return err
	}
	if err := writeU64(w, uint64(req.TargetID)); err != nil {
		return err
	}
	if err := writeU32(w, req.Flags); err != nil {
		return err
	}
	var content []byte
	if req.Content != nil {
		content = req.Content.Encode(nil)
	}
	if err := writeU32(w, uint32(len(content))); err != nil {
		return err
	}
	if len(content) > 0 {
		if _, err := w.Write(content); err != nil {
			return err
		}
	}
	desc := []byte(req.Description)
	if len(desc) > 0xFFFF {
		desc = desc[:0xFFFF]
	}
	if err := writeU16(w, uint16(len(desc))); err != nil {
		return err
	}
	if len(desc) > 0 {
		if _, err := w.Write(desc); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a binary request dump from r and returns the reconstructed
// batch. Content is decoded into a RawContent placeholder, since the
// wire format alone does not carry enough type information to pick the
// concrete Content struct for every object/action pair; callers that
// need typed content pass RawContent.Bytes to the Decode method of the
// concrete struct that ObjType/Action select.
func Load(r io.Reader) (*Batch, error) {
	var magic [3]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("protocol: read magic: %w", err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("protocol: bad magic %q, want %q", magic, Magic)
	}
	version, err := readU32r(r)
	if err != nil {
		return nil, fmt.Errorf("protocol: read version: %w", err)
	}
	if version != Version {
		return nil, fmt.Errorf("protocol: unsupported dump version %d", version)
	}
	count, err := readU32r(r)
	if err != nil {
		return nil, fmt.Errorf("protocol: read count: %w", err)
	}
	b := &Batch{requests: make([]Request, 0, count)}
	for i := uint32(0); i < count; i++ {
		req, err := readRequest(r)
		if err != nil {
			return nil, fmt.Errorf("protocol: read request %d: %w", i, err)
		}
		b.requests = append(b.requests, req)
	}
	return b, nil
}

func readRequest(r io.Reader) (Request, error) {
	var req Request
	req.Version = Version
	action, err := readU32r(r)
	if err != nil {
		return req, err
	}
	req.Action = Action(action)
	objType, err := readU32r(r)
	if err != nil {
		return req, err
	}
	req.ObjType = ObjectType(objType)
	target, err := readU64r(r)
	if err != nil {
		return req, err
	}
	req.TargetID = id.ID(target)
	flags, err := readU32r(r)
	if err != nil {
		return req, err
	}
	req.Flags = flags
	contentLen, err := readU32r(r)
	if err != nil {
		return req, err
	}
	content := make([]byte, contentLen)
	if contentLen > 0 {
		if _, err := io.ReadFull(r, content); err != nil {
			return req, err
		}
	}
	req.Content = RawContent{Kind: req.ObjType, Bytes: content}
	descLen, err := readU16r(r)
	if err != nil {
		return req, err
	}
	if descLen > 0 {
		desc := make([]byte, descLen)
		if _, err := io.ReadFull(r, desc); err != nil {
			return req, err
		}
		req.Description = string(desc)
	}
	return req, nil
}

// RawContent is the Content implementation used by Load for records
// whose concrete Go type cannot be recovered from the wire bytes alone.
// Bytes holds the still-encoded payload; a caller that knows the
// request's Action can re-decode it into the specific struct (e.g.
// CreateDat, UploadDat) via that struct's Decode method.
type RawContent struct {
	Kind  ObjectType
	Bytes []byte
}

func (r RawContent) ObjectType() ObjectType        { return r.Kind }
func (r RawContent) Encode(dst []byte) []byte      { return append(dst, r.Bytes...) }
func (r *RawContent) Decode(src []byte) (int, error) {
	r.Bytes = append([]byte(nil), src...)
	return len(src), nil
}

func writeU16(w io.Writer, v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func writeU32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func writeU64(w io.Writer, v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func readU16r(r io.Reader) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

func readU32r(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func readU64r(r io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
