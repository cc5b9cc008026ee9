package services

import (
	"strings"
	"testing"
)

var testLimits = queryLimits{defaultLimit: 100, maxLimit: 1000}

func TestNormalizeListParamsDefaults(t *testing.T) {
	n := normalizeListParams(ListTasksParams{UserID: "u1"}, testLimits)

	if n.Skip != 0 {
		t.Fatalf("expected skip 0, got %d", n.Skip)
	}
	if n.Limit != 100 {
		t.Fatalf("expected default limit 100, got %d", n.Limit)
	}
	if n.SortCol != "created_at" {
		t.Fatalf("expected created_at sort column, got %q", n.SortCol)
	}
	if n.SortDir != "ASC" {
		t.Fatalf("expected ASC sort direction, got %q", n.SortDir)
	}
}

func TestNormalizeListParamsClampsSkip(t *testing.T) {
	n := normalizeListParams(ListTasksParams{UserID: "u1", Skip: -10}, testLimits)

	if n.Skip != 0 {
		t.Fatalf("expected negative skip clamped to 0, got %d", n.Skip)
	}
}

func TestNormalizeListParamsClampsLimit(t *testing.T) {
	n := normalizeListParams(ListTasksParams{UserID: "u1", Limit: 100000}, testLimits)

	if n.Limit != 1000 {
		t.Fatalf("expected limit clamped to 1000, got %d", n.Limit)
	}
}

func TestNormalizeListParamsSortAllowList(t *testing.T) {
	cases := []struct {
		sortBy  string
		wantCol string
	}{
		{"priority", "priority"},
		{"title", "title"},
		{"status", "status"},
		{"id", "id"},
		{"created_at", "created_at"},
		{"password", "created_at"},
		{"created_at; DROP TABLE tasks", "created_at"},
		{"", "created_at"},
	}

	for _, tc := range cases {
		n := normalizeListParams(ListTasksParams{UserID: "u1", SortBy: tc.sortBy}, testLimits)
		if n.SortCol != tc.wantCol {
			t.Fatalf("sort_by %q: expected column %q, got %q", tc.sortBy, tc.wantCol, n.SortCol)
		}
	}
}

func TestNormalizeListParamsSortOrder(t *testing.T) {
	n := normalizeListParams(ListTasksParams{UserID: "u1", SortOrder: "desc"}, testLimits)
	if n.SortDir != "DESC" {
		t.Fatalf("expected DESC, got %q", n.SortDir)
	}

	n = normalizeListParams(ListTasksParams{UserID: "u1", SortOrder: "sideways"}, testLimits)
	if n.SortDir != "ASC" {
		t.Fatalf("expected unknown order to fall back to ASC, got %q", n.SortDir)
	}
}

func TestNormalizeListParamsLowercasesSearch(t *testing.T) {
	n := normalizeListParams(ListTasksParams{UserID: "u1", Search: "  UrGent "}, testLimits)

	if n.Search != "urgent" {
		t.Fatalf("expected lowercased trimmed search, got %q", n.Search)
	}
}

func TestListTasksQueryOwnerOnly(t *testing.T) {
	n := normalizeListParams(ListTasksParams{UserID: "u1"}, testLimits)
	query, args := listTasksQuery(n)

	if !strings.Contains(query, "WHERE user_id = $1") {
		t.Fatalf("expected owner predicate first, got:\n%s", query)
	}
	if strings.Contains(query, "ILIKE") || strings.Contains(query, "status =") {
		t.Fatalf("expected no extra predicates, got:\n%s", query)
	}
	if !strings.Contains(query, "ORDER BY created_at ASC LIMIT $2 OFFSET $3") {
		t.Fatalf("unexpected ordering or pagination clause:\n%s", query)
	}

	want := []any{"u1", 100, 0}
	if len(args) != len(want) {
		t.Fatalf("expected %d args, got %d", len(want), len(args))
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("arg %d: expected %v, got %v", i, want[i], args[i])
		}
	}
}

func TestListTasksQuerySearchAndStatus(t *testing.T) {
	n := normalizeListParams(ListTasksParams{
		UserID: "u1",
		Search: "Urgent",
		Status: "pending",
	}, testLimits)
	query, args := listTasksQuery(n)

	if !strings.Contains(query, "(title ILIKE $2 OR description ILIKE $2)") {
		t.Fatalf("expected search over title or description:\n%s", query)
	}
	if !strings.Contains(query, "AND status = $3") {
		t.Fatalf("expected status predicate:\n%s", query)
	}

	ownerIdx := strings.Index(query, "user_id = $1")
	searchIdx := strings.Index(query, "ILIKE")
	statusIdx := strings.Index(query, "status = $3")
	if !(ownerIdx < searchIdx && searchIdx < statusIdx) {
		t.Fatalf("expected owner, search, status predicates in order:\n%s", query)
	}

	if args[1] != "%urgent%" {
		t.Fatalf("expected lowercased substring pattern, got %v", args[1])
	}
	if args[2] != "pending" {
		t.Fatalf("expected status arg, got %v", args[2])
	}
}

func TestListTasksQueryUnknownStatusPassesThrough(t *testing.T) {
	// An unrecognized status selects zero rows instead of erroring.
	n := normalizeListParams(ListTasksParams{UserID: "u1", Status: "bogus"}, testLimits)
	_, args := listTasksQuery(n)

	if args[1] != "bogus" {
		t.Fatalf("expected status passed through verbatim, got %v", args[1])
	}
}

func TestEscapeLikePattern(t *testing.T) {
	got := escapeLikePattern(`50%_done\`)
	want := `50\%\_done\\`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
