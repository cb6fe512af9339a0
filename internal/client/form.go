// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// formFields flattens a DTO into multipart form fields. The DTO's json
// tags define the field names, so multipart and JSON submissions agree;
// upload fields are tagged json:"-" and handled separately.
func formFields(dto any) (map[string]string, error) {
	raw, err := json.Marshal(dto)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}

	fields := make(map[string]string, len(m))
	for k, v := range m {
		switch t := v.(type) {
		case nil:
			// omitted
		case string:
			fields[k] = t
		case json.Number:
			fields[k] = t.String()
		case bool:
			fields[k] = strconv.FormatBool(t)
		default:
			b, err := json.Marshal(t)
			if err != nil {
				return nil, err
			}
			fields[k] = string(b)
		}
	}
	return fields, nil
}
