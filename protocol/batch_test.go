// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protocol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datoviz.org/dvz/id"
)

func TestBatchAddLen(t *testing.T) {
	b := New()
	b.Add(Request{Action: ActionCreate, ObjType: ObjectDat, TargetID: id.ID(1), Content: CreateDat{Buffer: BuffVertex, Size: 256}})
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, Version, b.Requests()[0].Version)
}

func TestBatchCopyIsIndependent(t *testing.T) {
	b := New()
	b.Add(Request{
		Action: ActionUpdate, ObjType: ObjectDat, TargetID: id.ID(1),
		Content: UploadDat{Offset: 0, Data: []byte{1, 2, 3}},
	})
	dup := b.Copy()
	up := dup.Requests()[0].Content.(UploadDat)
	up.Data[0] = 0xFF
	orig := b.Requests()[0].Content.(UploadDat)
	assert.Equal(t, byte(1), orig.Data[0])
}

func TestBatchValidateCatchesMissingCreate(t *testing.T) {
	b := New()
	b.Add(Request{Action: ActionUpdate, ObjType: ObjectDat, TargetID: id.ID(7)})
	require.Error(t, b.Validate())
}

func TestBatchValidateAcceptsWellFormedSequence(t *testing.T) {
	b := New()
	datID := id.ID(1)
	b.Add(Request{Action: ActionCreate, ObjType: ObjectDat, TargetID: datID, Content: CreateDat{Buffer: BuffVertex, Size: 64}})
	b.Add(Request{Action: ActionUpdate, ObjType: ObjectDat, TargetID: datID, Content: UploadDat{Data: []byte{1, 2}}})
	b.Add(Request{Action: ActionDelete, ObjType: ObjectDat, TargetID: datID, Content: DeleteObject{Kind: ObjectDat}})
	assert.NoError(t, b.Validate())
}

func TestBatchValidateRejectsContentTypeMismatch(t *testing.T) {
	b := New()
	b.Add(Request{Action: ActionCreate, ObjType: ObjectTex, TargetID: id.ID(1), Content: CreateDat{Buffer: BuffVertex, Size: 64}})
	require.Error(t, b.Validate())
}

func TestDumpLoadRoundTrip(t *testing.T) {
	b := New()
	datID := id.ID(42)
	b.Add(Request{
		Action: ActionCreate, ObjType: ObjectDat, TargetID: datID,
		Content: CreateDat{Buffer: BuffVertex, Size: 128}, Description: "vertices",
	})
	b.Add(Request{
		Action: ActionUpdate, ObjType: ObjectDat, TargetID: datID,
		Content: UploadDat{Offset: 0, Data: []byte{10, 20, 30}},
	})

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, b))
	require.True(t, bytes.HasPrefix(buf.Bytes(), Magic[:]))

	loaded, err := Load(&buf)
	require.NoError(t, err)
	require.Equal(t, b.Len(), loaded.Len())
	assert.Equal(t, "vertices", loaded.Requests()[0].Description)
	assert.Equal(t, ActionCreate, loaded.Requests()[0].Action)

	var create CreateDat
	raw := loaded.Requests()[0].Content.(RawContent)
	_, err = create.Decode(raw.Bytes)
	require.NoError(t, err)
	assert.Equal(t, uint64(128), create.Size)
}

func TestAddAllocatesIDForZeroTargetCreate(t *testing.T) {
	b := New()
	got := b.Add(Request{Action: ActionCreate, ObjType: ObjectDat, Content: CreateDat{Buffer: BuffVertex, Size: 64}})
	require.NotEqual(t, id.None, got)
	assert.Equal(t, got, b.Requests()[0].TargetID)
}

func TestAddAllocatesDistinctIDsAcrossCalls(t *testing.T) {
	b := New()
	first := b.Add(Request{Action: ActionCreate, ObjType: ObjectDat, Content: CreateDat{Buffer: BuffVertex, Size: 64}})
	second := b.Add(Request{Action: ActionCreate, ObjType: ObjectTex, Content: CreateTex{}})
	assert.NotEqual(t, first, second)
}

func TestAddLeavesExplicitTargetIDUntouched(t *testing.T) {
	b := New()
	datID := id.ID(99)
	got := b.Add(Request{Action: ActionCreate, ObjType: ObjectDat, TargetID: datID, Content: CreateDat{Buffer: BuffVertex, Size: 64}})
	assert.Equal(t, datID, got)
}

func TestAddDoesNotAllocateForNonCreateActions(t *testing.T) {
	b := New()
	got := b.Add(Request{Action: ActionUpdate, ObjType: ObjectDat, Content: UploadDat{Data: []byte{1}}})
	assert.Equal(t, id.None, got)
}

func TestEmitYAMLContainsMnemonicKeys(t *testing.T) {
	b := New()
	b.Add(Request{Action: ActionCreate, ObjType: ObjectDat, TargetID: id.ID(1), Content: CreateDat{Buffer: BuffVertex, Size: 64}})
	out, err := EmitYAML(b)
	require.NoError(t, err)
	assert.Contains(t, string(out), "action: create")
	assert.Contains(t, string(out), "type: dat")
}
