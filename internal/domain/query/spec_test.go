package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	spec := Parse(url.Values{})

	assert.Empty(t, spec.Conditions)
	assert.Empty(t, spec.Fields)
	assert.Equal(t, DefaultPage, spec.Page)
	assert.Equal(t, DefaultLimit, spec.Limit)
	require.Len(t, spec.Sort, 1)
	assert.Equal(t, Sort{Field: "created_at", Desc: true}, spec.Sort[0])
}

func TestParseConditions(t *testing.T) {
	t.Run("plain key becomes equality", func(t *testing.T) {
		spec := Parse(url.Values{"housing": {"true"}})
		require.Len(t, spec.Conditions, 1)
		assert.Equal(t, Condition{Field: "housing", Op: OpEq, Values: []string{"true"}}, spec.Conditions[0])
	})

	t.Run("operator suffixes", func(t *testing.T) {
		spec := Parse(url.Values{
			"average_cost[lte]": {"10000"},
			"weeks[gt]":         {"4"},
		})
		require.Len(t, spec.Conditions, 2)
		ops := map[string]Operator{}
		for _, c := range spec.Conditions {
			ops[c.Field] = c.Op
		}
		assert.Equal(t, OpLte, ops["average_cost"])
		assert.Equal(t, OpGt, ops["weeks"])
	})

	t.Run("in splits on commas", func(t *testing.T) {
		spec := Parse(url.Values{"careers[in]": {"Business, UI/UX"}})
		require.Len(t, spec.Conditions, 1)
		assert.Equal(t, OpIn, spec.Conditions[0].Op)
		assert.Equal(t, []string{"Business", "UI/UX"}, spec.Conditions[0].Values)
	})

	t.Run("empty values dropped", func(t *testing.T) {
		spec := Parse(url.Values{"name": {""}, "careers[in]": {" , "}})
		assert.Empty(t, spec.Conditions)
	})

	t.Run("reserved keys are not filters", func(t *testing.T) {
		spec := Parse(url.Values{"select": {"name"}, "sort": {"name"}, "page": {"2"}, "limit": {"5"}})
		assert.Empty(t, spec.Conditions)
	})
}

func TestParseProjectionAndSort(t *testing.T) {
	spec := Parse(url.Values{
		"select": {"name, description ,tuition"},
		"sort":   {"-average_cost,name"},
	})

	assert.Equal(t, []string{"name", "description", "tuition"}, spec.Fields)
	require.Len(t, spec.Sort, 2)
	assert.Equal(t, Sort{Field: "average_cost", Desc: true}, spec.Sort[0])
	assert.Equal(t, Sort{Field: "name"}, spec.Sort[1])
}

func TestParsePagination(t *testing.T) {
	t.Run("explicit values", func(t *testing.T) {
		spec := Parse(url.Values{"page": {"3"}, "limit": {"10"}})
		assert.Equal(t, 3, spec.Page)
		assert.Equal(t, 10, spec.Limit)
		assert.Equal(t, 20, spec.Skip())
	})

	t.Run("garbage falls back to defaults", func(t *testing.T) {
		spec := Parse(url.Values{"page": {"abc"}, "limit": {"-2"}})
		assert.Equal(t, DefaultPage, spec.Page)
		assert.Equal(t, DefaultLimit, spec.Limit)
	})

	t.Run("limit is capped", func(t *testing.T) {
		spec := Parse(url.Values{"limit": {"9999"}})
		assert.Equal(t, maxLimit, spec.Limit)
	})
}
