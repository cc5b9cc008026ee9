package services

import "testing"

func TestListTasksCacheKeyDeterministic(t *testing.T) {
	params := ListTasksParams{
		UserID:    "u1",
		Skip:      5,
		Limit:     10,
		SortBy:    "priority",
		SortOrder: "desc",
		Search:    "Urgent",
		Status:    "pending",
	}

	first := listTasksCacheKey(normalizeListParams(params, testLimits))
	second := listTasksCacheKey(normalizeListParams(params, testLimits))
	if first != second {
		t.Fatalf("expected identical keys, got %q and %q", first, second)
	}
}

func TestListTasksCacheKeyScopedByUser(t *testing.T) {
	a := listTasksCacheKey(normalizeListParams(ListTasksParams{UserID: "alice"}, testLimits))
	b := listTasksCacheKey(normalizeListParams(ListTasksParams{UserID: "bob"}, testLimits))
	if a == b {
		t.Fatalf("expected per-user keys, got %q for both", a)
	}
}

func TestListTasksCacheKeyVariesByParams(t *testing.T) {
	base := ListTasksParams{UserID: "u1"}
	baseKey := listTasksCacheKey(normalizeListParams(base, testLimits))

	variants := []ListTasksParams{
		{UserID: "u1", Skip: 10},
		{UserID: "u1", Limit: 50},
		{UserID: "u1", SortBy: "priority"},
		{UserID: "u1", SortOrder: "desc"},
		{UserID: "u1", Search: "urgent"},
		{UserID: "u1", Status: "completed"},
	}
	for _, p := range variants {
		key := listTasksCacheKey(normalizeListParams(p, testLimits))
		if key == baseKey {
			t.Fatalf("expected %+v to produce a distinct key", p)
		}
	}
}

func TestListTasksCacheKeyNormalizesEquivalentRequests(t *testing.T) {
	// Requests that normalize identically must share a cache entry.
	a := listTasksCacheKey(normalizeListParams(ListTasksParams{UserID: "u1", Search: "URGENT"}, testLimits))
	b := listTasksCacheKey(normalizeListParams(ListTasksParams{UserID: "u1", Search: " urgent "}, testLimits))
	if a != b {
		t.Fatalf("expected equivalent searches to share a key, got %q and %q", a, b)
	}

	a = listTasksCacheKey(normalizeListParams(ListTasksParams{UserID: "u1", Skip: -3}, testLimits))
	b = listTasksCacheKey(normalizeListParams(ListTasksParams{UserID: "u1", Skip: 0}, testLimits))
	if a != b {
		t.Fatalf("expected clamped skip to share a key, got %q and %q", a, b)
	}
}

func TestTopPriorityCacheKey(t *testing.T) {
	a := topPriorityCacheKey("alice", 5)
	if a != "tasks:top:alice:n=5" {
		t.Fatalf("unexpected key %q", a)
	}
	if topPriorityCacheKey("bob", 5) == a {
		t.Fatal("expected per-user top priority keys")
	}
	if topPriorityCacheKey("alice", 3) == a {
		t.Fatal("expected per-n top priority keys")
	}
}
