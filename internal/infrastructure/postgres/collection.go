package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campdir/campdir-api/internal/domain/query"
	"github.com/campdir/campdir-api/pkg/apperr"
)

// ColumnType drives both value conversion and operator compilation for a
// column exposed to the query builder.
type ColumnType int

const (
	ColText ColumnType = iota
	ColInt
	ColFloat
	ColBool
	ColTime
	ColUUID
	ColTextArray
)

// Column is one queryable column of a collection.
type Column struct {
	Name string
	Type ColumnType
}

// Collection compiles store-agnostic query specs into SQL against one table.
// Only listed columns are filterable, sortable, and selectable; anything else
// in the spec is dropped, the way a schemaless store ignores unknown fields.
type Collection struct {
	Table   string
	Columns []Column

	byName map[string]Column
}

func NewCollection(table string, cols []Column) *Collection {
	byName := make(map[string]Column, len(cols))
	for _, c := range cols {
		byName[c.Name] = c
	}
	return &Collection{Table: table, Columns: cols, byName: byName}
}

// selectExpr renders one column for projection; uuid columns come back as
// text so rows marshal cleanly.
func selectExpr(c Column) string {
	if c.Type == ColUUID {
		return c.Name + "::text AS " + c.Name
	}
	return c.Name
}

// BuildSelect compiles the spec into a paged SELECT plus its arguments.
func (cl *Collection) BuildSelect(spec query.Spec) (string, []any, error) {
	cols := cl.projection(spec.Fields)

	where, args, err := cl.compileWhere(spec.Conditions)
	if err != nil {
		return "", nil, err
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(" FROM ")
	b.WriteString(cl.Table)
	b.WriteString(where)
	b.WriteString(cl.orderBy(spec.Sort))
	args = append(args, spec.Limit, spec.Skip())
	fmt.Fprintf(&b, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return b.String(), args, nil
}

// BuildCount compiles the spec's filter into a COUNT query.
func (cl *Collection) BuildCount(spec query.Spec) (string, []any, error) {
	where, args, err := cl.compileWhere(spec.Conditions)
	if err != nil {
		return "", nil, err
	}
	return "SELECT COUNT(*) FROM " + cl.Table + where, args, nil
}

// Find runs the compiled count and select queries and returns one page of
// rows as maps, plus the total match count.
func (cl *Collection) Find(ctx context.Context, pool *pgxpool.Pool, spec query.Spec) ([]map[string]any, int, error) {
	countSQL, countArgs, err := cl.BuildCount(spec)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sql, args, err := cl.BuildSelect(spec)
	if err != nil {
		return nil, 0, err
	}
	rows, err := pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	out := make([]map[string]any, 0, spec.Limit)
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, 0, err
		}
		row := make(map[string]any, len(fields))
		for i, fd := range fields {
			row[fd.Name] = vals[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (cl *Collection) projection(fields []string) []string {
	if len(fields) == 0 {
		cols := make([]string, 0, len(cl.Columns))
		for _, c := range cl.Columns {
			cols = append(cols, selectExpr(c))
		}
		return cols
	}
	cols := make([]string, 0, len(fields))
	for _, f := range fields {
		if c, ok := cl.byName[f]; ok {
			cols = append(cols, selectExpr(c))
		}
	}
	if len(cols) == 0 {
		// Nothing selectable survived; fall back to the id.
		cols = append(cols, selectExpr(cl.Columns[0]))
	}
	return cols
}

func (cl *Collection) orderBy(sorts []query.Sort) string {
	var keys []string
	for _, s := range sorts {
		if _, ok := cl.byName[s.Field]; !ok {
			continue
		}
		dir := " ASC"
		if s.Desc {
			dir = " DESC"
		}
		keys = append(keys, s.Field+dir)
	}
	if len(keys) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(keys, ", ")
}

func (cl *Collection) compileWhere(conds []query.Condition) (string, []any, error) {
	var clauses []string
	var args []any
	for _, cond := range conds {
		col, ok := cl.byName[cond.Field]
		if !ok {
			continue
		}
		clause, arg, err := compileCondition(col, cond)
		if err != nil {
			return "", nil, err
		}
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}
	if len(clauses) == 0 {
		return "", args, nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

// compileCondition returns a clause with a %d placeholder for the argument
// position and the single converted argument.
func compileCondition(col Column, cond query.Condition) (string, any, error) {
	if cond.Op == query.OpIn {
		vals, err := convertAll(col, cond.Values)
		if err != nil {
			return "", nil, err
		}
		switch col.Type {
		case ColTextArray:
			// Array field: match rows whose array overlaps the given set.
			return col.Name + " && $%d", vals, nil
		case ColUUID:
			return col.Name + " = ANY($%d::uuid[])", vals, nil
		default:
			return col.Name + " = ANY($%d)", vals, nil
		}
	}

	val, err := convertValue(col, cond.Values[0])
	if err != nil {
		return "", nil, err
	}
	if col.Type == ColTextArray {
		if cond.Op != query.OpEq {
			return "", nil, fmt.Errorf("%w: operator %s on array field %s", apperr.ErrCast, cond.Op, col.Name)
		}
		return "$%d = ANY(" + col.Name + ")", val, nil
	}

	var op string
	switch cond.Op {
	case query.OpEq:
		op = "="
	case query.OpGt:
		op = ">"
	case query.OpGte:
		op = ">="
	case query.OpLt:
		op = "<"
	case query.OpLte:
		op = "<="
	default:
		return "", nil, fmt.Errorf("%w: unsupported operator %s", apperr.ErrCast, cond.Op)
	}
	if col.Type == ColUUID {
		return col.Name + " " + op + " $%d::uuid", val, nil
	}
	return col.Name + " " + op + " $%d", val, nil
}

func convertAll(col Column, raws []string) (any, error) {
	switch col.Type {
	case ColInt:
		out := make([]int, 0, len(raws))
		for _, r := range raws {
			v, err := convertValue(col, r)
			if err != nil {
				return nil, err
			}
			out = append(out, v.(int))
		}
		return out, nil
	case ColFloat:
		out := make([]float64, 0, len(raws))
		for _, r := range raws {
			v, err := convertValue(col, r)
			if err != nil {
				return nil, err
			}
			out = append(out, v.(float64))
		}
		return out, nil
	default:
		out := make([]string, 0, len(raws))
		for _, r := range raws {
			if _, err := convertValue(col, r); err != nil {
				return nil, err
			}
			out = append(out, r)
		}
		return out, nil
	}
}

func convertValue(col Column, raw string) (any, error) {
	switch col.Type {
	case ColInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", apperr.ErrCast, raw)
		}
		return v, nil
	case ColFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", apperr.ErrCast, raw)
		}
		return v, nil
	case ColBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a boolean", apperr.ErrCast, raw)
		}
		return v, nil
	case ColTime:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if v, err := time.Parse(layout, raw); err == nil {
				return v, nil
			}
		}
		return nil, fmt.Errorf("%w: %q is not a timestamp", apperr.ErrCast, raw)
	case ColUUID:
		if _, err := uuid.Parse(raw); err != nil {
			return nil, fmt.Errorf("%w: %q is not a valid id", apperr.ErrCast, raw)
		}
		return raw, nil
	default:
		return raw, nil
	}
}
