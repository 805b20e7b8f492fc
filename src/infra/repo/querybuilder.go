package repo

import (
	"fmt"
	"strings"

	"jokehub/src/core/domain"
)

// whereBuilder accumulates an ordered list of predicate+parameter pairs and
// renders them as an AND-joined, fully parameterized WHERE clause. It exists
// so that optional listing filters never reach string concatenation with
// user input.
type whereBuilder struct {
	conds []string
	args  []any
}

// Eq appends an equality predicate on expr against value.
func (b *whereBuilder) Eq(expr string, value any) {
	b.args = append(b.args, value)
	b.conds = append(b.conds, fmt.Sprintf("%s = $%d", expr, len(b.args)))
}

// Clause renders the WHERE clause with a leading space, or "" when no
// predicates were added.
func (b *whereBuilder) Clause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// Args returns the accumulated parameters in placeholder order.
func (b *whereBuilder) Args() []any {
	return b.args
}

// Limit appends LIMIT/OFFSET parameters and returns the rendered fragment.
func (b *whereBuilder) Limit(limit, offset int) string {
	b.args = append(b.args, limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(b.args)-1, len(b.args))
}

// orderClause maps a sort mode to its ORDER BY fragment. Every fragment is a
// fixed string; sort input never reaches the SQL text directly.
func orderClause(sort domain.JokeSort) string {
	switch sort {
	case domain.SortOldest:
		return " ORDER BY j.created_at ASC"
	case domain.SortPopular:
		return " ORDER BY j.score DESC, j.views DESC"
	case domain.SortRandom:
		return " ORDER BY random()"
	default:
		return " ORDER BY j.created_at DESC"
	}
}
