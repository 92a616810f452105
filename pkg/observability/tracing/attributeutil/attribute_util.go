/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package attributeutil

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.opentelemetry.io/otel/attribute"
)

const redacted = "[REDACTED]"

type options struct {
	redacted []string
}

type Opt func(*options)

// WithRedacted replaces the value at the gjson path with [REDACTED].
// Syntax: https://github.com/tidwall/gjson/blob/master/SYNTAX.md
func WithRedacted(path string) Opt {
	return func(o *options) {
		o.redacted = append(o.redacted, path)
	}
}

// JSON returns a string attribute holding value marshaled to JSON. An
// unmarshalable value gives an empty attribute.
func JSON(key string, value interface{}, opts ...Opt) attribute.KeyValue {
	op := &options{}

	for _, opt := range opts {
		opt(op)
	}

	b, err := json.Marshal(value)
	if err != nil {
		return attribute.KeyValue{Key: attribute.Key(key)}
	}

	for _, path := range op.redacted {
		if !gjson.GetBytes(b, path).Exists() {
			continue
		}

		if updated, setErr := sjson.SetBytes(b, path, redacted); setErr == nil {
			b = updated
		}
	}

	return attribute.String(key, string(b))
}

// Keys returns the sorted, comma separated keys of m. Values are never recorded.
func Keys[V any](key string, m map[string]V) attribute.KeyValue {
	keys := lo.Keys(m)
	sort.Strings(keys)

	return attribute.String(key, strings.Join(keys, ","))
}
