//go:build unit || e2e

package testutil

// Field sets key to value in a DtoMap body; a nil value removes the key
// entirely, which is how tables express "field missing".
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
	}
}
