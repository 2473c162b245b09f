// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protocol

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlRecord is the human-readable mirror of a Request, keyed the way
// spec.md §6 shows ("action: create", "type: dat", "id: 0xABCD…").
type yamlRecord struct {
	Action      string `yaml:"action"`
	Type        string `yaml:"type"`
	ID          string `yaml:"id"`
	Flags       string `yaml:"flags"`
	Description string `yaml:"description,omitempty"`
	Payload     string `yaml:"payload,omitempty"`
}

// EmitYAML renders b as the human-readable YAML dump described in
// spec.md §6: a single YAML document holding a sequence with one entry
// per request.
func EmitYAML(b *Batch) ([]byte, error) {
	records := make([]yamlRecord, len(b.requests))
	for i, req := range b.requests {
		rec := yamlRecord{
			Action:      req.Action.String(),
			Type:        req.ObjType.String(),
			ID:          fmt.Sprintf("0x%X", uint64(req.TargetID)),
			Flags:       fmt.Sprintf("0x%X", req.Flags),
			Description: req.Description,
		}
		if req.Content != nil {
			payload := req.Content.Encode(nil)
			if len(payload) > 0 {
				rec.Payload = fmt.Sprintf("%d bytes", len(payload))
			}
		}
		records[i] = rec
	}
	return yaml.Marshal(records)
}
