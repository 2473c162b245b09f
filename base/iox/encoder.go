// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iox

import (
	"bytes"
	"io"
	"os"
)

// Encoder is an interface for standard encoder types
type Encoder interface {
	// Encode encodes to the io.Writer specified at creation
	Encode(v any) error
}

// EncoderFunc is a function that creates a new Encoder for a given writer
type EncoderFunc func(w io.Writer) Encoder

// Write writes the given object using the given [EncoderFunc]
func Write(v any, writer io.Writer, f EncoderFunc) error {
	return f(writer).Encode(v)
}

// WriteBytes writes the given object, returning the bytes of the
// encoding, using the given [EncoderFunc]
func WriteBytes(v any, f EncoderFunc) ([]byte, error) {
	var b bytes.Buffer
	if err := Write(v, &b, f); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Save writes the given object to the given filename using the given [EncoderFunc]
func Save(v any, filename string, f EncoderFunc) error {
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	return Write(v, fp, f)
}
