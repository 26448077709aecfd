// Package repository provides typed data access over the remote store
// boundary, one repository per collection.
package repository

// stringField reads a string field from a raw document field map,
// returning "" when the field is missing or not a string.
func stringField(fields map[string]interface{}, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}
