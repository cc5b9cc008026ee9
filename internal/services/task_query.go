package services

import (
	"strconv"
	"strings"
)

// sortableColumns is the allow-list for the sort_by parameter. Anything
// outside it falls back to created_at, never to a caller-supplied
// identifier.
var sortableColumns = map[string]string{
	"id":         "id",
	"title":      "title",
	"status":     "status",
	"priority":   "priority",
	"created_at": "created_at",
}

const defaultSortColumn = "created_at"

type queryLimits struct {
	defaultLimit int
	maxLimit     int
}

// normalizedListParams is a list request after clamping and allow-list
// resolution. The SQL statement and the cache key are both derived from
// it, so equal requests always map to the same cache entry.
type normalizedListParams struct {
	UserID  string
	Skip    int
	Limit   int
	SortCol string
	SortDir string
	Search  string
	Status  string
}

func normalizeListParams(p ListTasksParams, limits queryLimits) normalizedListParams {
	n := normalizedListParams{
		UserID: p.UserID,
		Skip:   p.Skip,
		Limit:  p.Limit,
		Search: strings.ToLower(strings.TrimSpace(p.Search)),
		Status: p.Status,
	}

	if n.Skip < 0 {
		n.Skip = 0
	}
	if n.Limit <= 0 {
		n.Limit = limits.defaultLimit
	}
	if n.Limit > limits.maxLimit {
		n.Limit = limits.maxLimit
	}

	col, ok := sortableColumns[p.SortBy]
	if !ok {
		col = defaultSortColumn
	}
	n.SortCol = col

	n.SortDir = "ASC"
	if p.SortOrder == "desc" {
		n.SortDir = "DESC"
	}

	return n
}

// escapeLikePattern quotes the LIKE metacharacters so a search term is
// always matched as a literal substring.
func escapeLikePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// listTasksQuery assembles the statement for a normalized list request.
// Predicates are conjunctive and the owner predicate always comes first.
// An unknown status value simply selects zero rows.
func listTasksQuery(p normalizedListParams) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT id,
       title,
       description,
       status,
       priority,
       created_at
FROM tasks
WHERE user_id = $1`)
	args := []any{p.UserID}

	if p.Search != "" {
		args = append(args, "%"+escapeLikePattern(p.Search)+"%")
		placeholder := "$" + strconv.Itoa(len(args))
		sb.WriteString(" AND (title ILIKE " + placeholder +
			" OR description ILIKE " + placeholder + ")")
	}
	if p.Status != "" {
		args = append(args, p.Status)
		sb.WriteString(" AND status = $" + strconv.Itoa(len(args)))
	}

	sb.WriteString(" ORDER BY " + p.SortCol + " " + p.SortDir)

	args = append(args, p.Limit)
	sb.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	args = append(args, p.Skip)
	sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)))

	return sb.String(), args
}
