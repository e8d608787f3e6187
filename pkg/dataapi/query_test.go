package dataapi

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalizeFilter_NilBecomesMatchAll(t *testing.T) {
	normalized := normalizeFilter(nil)
	if normalized == nil {
		t.Fatalf("expected non-nil filter")
	}
	if len(normalized) != 0 {
		t.Fatalf("expected empty filter, got %v", normalized)
	}
}

func TestNormalizeFilter_PlainStringID(t *testing.T) {
	filter := Filter{"_id": "507f1f77bcf86cd799439011", "status": "complete"}
	normalized := normalizeFilter(filter)

	id, ok := normalized["_id"].(ObjectID)
	if !ok {
		t.Fatalf("expected tagged identifier, got %T", normalized["_id"])
	}
	if id.Value != "507f1f77bcf86cd799439011" {
		t.Fatalf("unexpected identifier value: %s", id.Value)
	}
	if normalized["status"] != "complete" {
		t.Fatalf("expected other fields to pass through, got %v", normalized["status"])
	}

	// Original filter untouched.
	if _, ok := filter["_id"].(string); !ok {
		t.Fatalf("caller filter was mutated: %v", filter["_id"])
	}
}

func TestNormalizeFilter_PassThrough(t *testing.T) {
	cases := []struct {
		name   string
		filter Filter
	}{
		{"no id", Filter{"status": Eq("complete")}},
		{"non-string id", Filter{"_id": 42}},
		{"already tagged id", Filter{"_id": ObjectID{Value: "507f1f77bcf86cd799439011"}}},
		{"operator id", Filter{"_id": In("a", "b")}},
		{"nested id untouched", Filter{"$or": []Filter{{"_id": "507f1f77bcf86cd799439011"}}}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			normalized := normalizeFilter(tt.filter)
			if !reflect.DeepEqual(normalized, tt.filter) {
				t.Fatalf("expected pass-through, got %v", normalized)
			}
		})
	}
}

func TestObjectIDMarshal(t *testing.T) {
	raw, err := json.Marshal(ObjectID{Value: "507f1f77bcf86cd799439011"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"objectId":"507f1f77bcf86cd799439011"}` {
		t.Fatalf("unexpected wire form: %s", raw)
	}
}

func TestOperatorHelpers(t *testing.T) {
	cases := []struct {
		name     string
		got      map[string]any
		expected map[string]any
	}{
		{"eq", Eq("complete"), map[string]any{"$eq": "complete"}},
		{"ne", Ne(1), map[string]any{"$ne": 1}},
		{"gt", Gt(10), map[string]any{"$gt": 10}},
		{"gte", Gte(10), map[string]any{"$gte": 10}},
		{"lt", Lt(10), map[string]any{"$lt": 10}},
		{"lte", Lte(10), map[string]any{"$lte": 10}},
		{"in", In("a", "b"), map[string]any{"$in": []any{"a", "b"}}},
		{"nin", Nin("a"), map[string]any{"$nin": []any{"a"}}},
		{"exists", Exists(true), map[string]any{"$exists": true}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}
