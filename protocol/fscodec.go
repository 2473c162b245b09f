// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protocol

import (
	"bytes"
	"fmt"

	"github.com/hack-pad/hackpadfs"
)

// DumpToFS writes b's binary dump to name on fsys (spec.md §6
// "DVZ_DUMP=1 ... dump the committed request stream to requests.dvz").
// Tests exercise this against an in-memory github.com/hack-pad/hackpadfs
// filesystem so dump/load round-trips never touch the real disk.
func DumpToFS(fsys hackpadfs.FS, name string, b *Batch) error {
	var buf bytes.Buffer
	if err := Dump(&buf, b); err != nil {
		return err
	}
	if err := hackpadfs.WriteFullFile(fsys, name, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("protocol: write %s: %w", name, err)
	}
	return nil
}

// LoadFromFS reads and decodes a binary request dump previously written
// with DumpToFS.
func LoadFromFS(fsys hackpadfs.FS, name string) (*Batch, error) {
	data, err := hackpadfs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("protocol: read %s: %w", name, err)
	}
	return Load(bytes.NewReader(data))
}
