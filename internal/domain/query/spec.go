// Package query turns raw request query parameters into an immutable,
// store-agnostic query specification. The storage layer compiles a Spec into
// its own syntax; nothing in here knows about SQL.
package query

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Operator is a comparison applied to a single field.
type Operator string

const (
	OpEq  Operator = "eq"
	OpGt  Operator = "gt"
	OpGte Operator = "gte"
	OpLt  Operator = "lt"
	OpLte Operator = "lte"
	OpIn  Operator = "in"
)

const (
	DefaultPage  = 1
	DefaultLimit = 25
	maxLimit     = 100
)

// Condition filters one field. Values has a single element except for OpIn.
type Condition struct {
	Field  string
	Op     Operator
	Values []string
}

// Sort orders results by one field.
type Sort struct {
	Field string
	Desc  bool
}

// Spec is the parsed form of a request query string: filter conditions,
// field projection, sort order, and pagination.
type Spec struct {
	Conditions []Condition
	Fields     []string
	Sort       []Sort
	Page       int
	Limit      int
}

// Skip is the number of records preceding the requested page.
func (s Spec) Skip() int { return (s.Page - 1) * s.Limit }

// reserved keys are pulled out of the filter before conditions are built.
var reserved = map[string]bool{"select": true, "sort": true, "page": true, "limit": true}

var opSuffix = regexp.MustCompile(`^(.+)\[(gt|gte|lt|lte|in)\]$`)

// Parse builds a Spec from URL query values. Unknown keys become equality
// conditions; the `field[op]` suffix form selects a comparison operator.
func Parse(values url.Values) Spec {
	spec := Spec{Page: DefaultPage, Limit: DefaultLimit}

	for key, raws := range values {
		if reserved[key] {
			continue
		}
		field, op := key, OpEq
		if m := opSuffix.FindStringSubmatch(key); m != nil {
			field, op = m[1], Operator(m[2])
		}
		for _, raw := range raws {
			if raw == "" {
				continue
			}
			cond := Condition{Field: field, Op: op}
			if op == OpIn {
				for _, v := range strings.Split(raw, ",") {
					if v = strings.TrimSpace(v); v != "" {
						cond.Values = append(cond.Values, v)
					}
				}
				if len(cond.Values) == 0 {
					continue
				}
			} else {
				cond.Values = []string{raw}
			}
			spec.Conditions = append(spec.Conditions, cond)
		}
	}

	if sel := values.Get("select"); sel != "" {
		for _, f := range strings.Split(sel, ",") {
			if f = strings.TrimSpace(f); f != "" {
				spec.Fields = append(spec.Fields, f)
			}
		}
	}

	if srt := values.Get("sort"); srt != "" {
		for _, f := range strings.Split(srt, ",") {
			f = strings.TrimSpace(f)
			if f == "" || f == "-" {
				continue
			}
			if strings.HasPrefix(f, "-") {
				spec.Sort = append(spec.Sort, Sort{Field: f[1:], Desc: true})
			} else {
				spec.Sort = append(spec.Sort, Sort{Field: f})
			}
		}
	}
	if len(spec.Sort) == 0 {
		// Newest first when the client does not ask for an order.
		spec.Sort = []Sort{{Field: "created_at", Desc: true}}
	}

	if p, err := strconv.Atoi(values.Get("page")); err == nil && p > 0 {
		spec.Page = p
	}
	if l, err := strconv.Atoi(values.Get("limit")); err == nil && l > 0 {
		spec.Limit = l
		if spec.Limit > maxLimit {
			spec.Limit = maxLimit
		}
	}
	return spec
}
