// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protocol

import (
	"testing"

	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/require"

	"datoviz.org/dvz/id"
)

func TestDumpToFSRoundTrip(t *testing.T) {
	fsys, err := mem.NewFS()
	require.NoError(t, err)

	b := New()
	b.Add(Request{Action: ActionCreate, ObjType: ObjectDat, TargetID: id.ID(1), Content: CreateDat{Buffer: BuffStorage, Size: 512}})

	require.NoError(t, DumpToFS(fsys, "requests.dvz", b))

	loaded, err := LoadFromFS(fsys, "requests.dvz")
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())
}
