package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RefID extracts a document id from a reference value stored as a plain id
// string, a "collection/id" path string, {"id": ...} or {"path": ...}.
// Returns ("", false) when the reference cannot be resolved. This is the
// single normalization point for reference shapes; callers never branch on
// the raw encoding again.
func RefID(ref any) (string, bool) {
	switch v := ref.(type) {
	case nil:
		return "", false
	case string:
		return nonEmpty(lastSegment(v))
	case map[string]any:
		return refFromFields(v["id"], v["path"])
	case primitive.M:
		return refFromFields(v["id"], v["path"])
	case primitive.D:
		m := v.Map()
		return refFromFields(m["id"], m["path"])
	}
	return "", false
}

func refFromFields(id, path any) (string, bool) {
	if s, ok := id.(string); ok && s != "" {
		return s, true
	}
	if s, ok := path.(string); ok && s != "" {
		return nonEmpty(lastSegment(s))
	}
	return "", false
}

func lastSegment(path string) string {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

func nonEmpty(s string) (string, bool) {
	return s, s != ""
}
