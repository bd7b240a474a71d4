//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Mutation edits a request body after it has been flattened to JSON fields.
type Mutation func(m map[string]any)

// DtoMap round-trips v through JSON so tests can send bodies the typed
// request structs cannot express.
func DtoMap(t *testing.T, v any, muts ...Mutation) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	m := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, mutate := range muts {
		if mutate != nil {
			mutate(m)
		}
	}
	return m
}

// Field sets key to value. A nil value removes the key.
func Field(key string, value any) Mutation {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
			return
		}
		m[key] = value
	}
}
