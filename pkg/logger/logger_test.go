package logger

import (
	"context"
	"testing"
)

func TestContextWithFieldsMerges(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]interface{}{"request_id": "abc"})
	ctx = ContextWithFields(ctx, map[string]interface{}{"session": "s1"})

	entry := FromContext(ctx)
	if entry.Data["request_id"] != "abc" {
		t.Fatalf("expected request_id to survive merge, got %v", entry.Data["request_id"])
	}
	if entry.Data["session"] != "s1" {
		t.Fatalf("expected session field, got %v", entry.Data["session"])
	}
}

func TestFromContextWithoutFields(t *testing.T) {
	entry := FromContext(context.Background())
	if len(entry.Data) != 0 {
		t.Fatalf("expected no fields, got %v", entry.Data)
	}
}
