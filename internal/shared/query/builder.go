package query

import (
	"fmt"

	"bookshelf-api/internal/shared/utils"
)

// Builder accumulates AND-combined predicates with positional ($n) placeholders.
// Column names come from code, values always travel as arguments.
type Builder struct {
	conditions []string
	args       []any
}

func NewBuilder() *Builder {
	return &Builder{}
}

// next registers v and returns its placeholder.
func (b *Builder) next(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// ContainsFold adds a case-insensitive literal substring match. Empty values add nothing.
func (b *Builder) ContainsFold(column, value string) *Builder {
	if value == "" {
		return b
	}
	ph := b.next("%" + utils.EscapeLike(value) + "%")
	b.conditions = append(b.conditions, fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, column, ph))
	return b
}

// Equal adds an exact match. A nil value adds nothing.
func (b *Builder) Equal(column string, value any) *Builder {
	if value == nil {
		return b
	}
	b.conditions = append(b.conditions, fmt.Sprintf("%s = %s", column, b.next(value)))
	return b
}

// Where renders " WHERE ..." or "" when no predicate was added.
func (b *Builder) Where() string {
	if len(b.conditions) == 0 {
		return ""
	}
	return " WHERE " + utils.JoinWithAnd(b.conditions)
}

// Args returns the predicate arguments only.
func (b *Builder) Args() []any {
	return append([]any(nil), b.args...)
}

// Paginate renders " LIMIT $n OFFSET $m" and returns the predicate arguments extended
// with the page bounds. The builder itself is left unchanged so Where/Args can be reused
// for the count query.
func (b *Builder) Paginate(p Pagination) (string, []any) {
	args := b.Args()
	args = append(args, p.Limit, p.Offset())
	clause := fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return clause, args
}
