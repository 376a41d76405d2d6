package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRefIDEncodings(t *testing.T) {
	cases := []struct {
		name string
		ref  any
		want string
		ok   bool
	}{
		{"path string", "sessions/abc123", "abc123", true},
		{"bare id string", "abc123", "abc123", true},
		{"id field", map[string]any{"id": "abc123"}, "abc123", true},
		{"path field", map[string]any{"path": "sessions/abc123"}, "abc123", true},
		{"primitive.M id", primitive.M{"id": "abc123"}, "abc123", true},
		{"primitive.D path", primitive.D{{Key: "path", Value: "sessions/abc123"}}, "abc123", true},
		{"nil", nil, "", false},
		{"empty string", "", "", false},
		{"unusable map", map[string]any{"foo": "bar"}, "", false},
		{"int", 42, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := RefID(tc.ref)
			if got != tc.want || ok != tc.ok {
				t.Errorf("RefID(%v) = (%q, %v), want (%q, %v)", tc.ref, got, ok, tc.want, tc.ok)
			}
		})
	}
}
