package postgres

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campdir/campdir-api/internal/domain/query"
	"github.com/campdir/campdir-api/pkg/apperr"
)

var testColumns = []Column{
	{Name: "id", Type: ColUUID},
	{Name: "name", Type: ColText},
	{Name: "average_cost", Type: ColInt},
	{Name: "housing", Type: ColBool},
	{Name: "careers", Type: ColTextArray},
	{Name: "created_at", Type: ColTime},
}

func testCollection() *Collection {
	return NewCollection("bootcamps", testColumns)
}

func specFromQuery(t *testing.T, raw string) query.Spec {
	t.Helper()
	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return query.Parse(values)
}

func TestBuildSelectDefaults(t *testing.T) {
	sql, args, err := testCollection().BuildSelect(specFromQuery(t, ""))
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id::text AS id, name, average_cost, housing, careers, created_at"+
			" FROM bootcamps ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		sql)
	assert.Equal(t, []any{25, 0}, args)
}

func TestBuildSelectFilters(t *testing.T) {
	t.Run("comparison operator", func(t *testing.T) {
		sql, args, err := testCollection().BuildSelect(specFromQuery(t, "average_cost[lte]=10000"))
		require.NoError(t, err)
		assert.Contains(t, sql, "WHERE average_cost <= $1")
		require.Len(t, args, 3)
		assert.Equal(t, 10000, args[0]) // typed, not a raw string
	})

	t.Run("equality on array field", func(t *testing.T) {
		sql, _, err := testCollection().BuildSelect(specFromQuery(t, "careers=Business"))
		require.NoError(t, err)
		assert.Contains(t, sql, "WHERE $1 = ANY(careers)")
	})

	t.Run("in on array field overlaps", func(t *testing.T) {
		sql, args, err := testCollection().BuildSelect(specFromQuery(t, "careers[in]=Business,UI/UX"))
		require.NoError(t, err)
		assert.Contains(t, sql, "WHERE careers && $1")
		assert.Equal(t, []string{"Business", "UI/UX"}, args[0])
	})

	t.Run("in on scalar field", func(t *testing.T) {
		sql, _, err := testCollection().BuildSelect(specFromQuery(t, "name[in]=a,b"))
		require.NoError(t, err)
		assert.Contains(t, sql, "WHERE name = ANY($1)")
	})

	t.Run("unknown fields are dropped", func(t *testing.T) {
		sql, _, err := testCollection().BuildSelect(specFromQuery(t, "evil=1&name)--=x"))
		require.NoError(t, err)
		assert.NotContains(t, sql, "WHERE")
		assert.NotContains(t, sql, "evil")
	})

	t.Run("multiple conditions joined with AND", func(t *testing.T) {
		sql, args, err := testCollection().BuildSelect(specFromQuery(t, "housing=true&average_cost[gt]=100"))
		require.NoError(t, err)
		assert.Contains(t, sql, " AND ")
		assert.Len(t, args, 4)
	})
}

func TestBuildSelectProjectionAndSort(t *testing.T) {
	t.Run("projection keeps only known fields", func(t *testing.T) {
		sql, _, err := testCollection().BuildSelect(specFromQuery(t, "select=name,average_cost,bogus"))
		require.NoError(t, err)
		assert.Contains(t, sql, "SELECT name, average_cost FROM")
	})

	t.Run("empty projection falls back to first column", func(t *testing.T) {
		sql, _, err := testCollection().BuildSelect(specFromQuery(t, "select=bogus"))
		require.NoError(t, err)
		assert.Contains(t, sql, "SELECT id::text AS id FROM")
	})

	t.Run("sort directions", func(t *testing.T) {
		sql, _, err := testCollection().BuildSelect(specFromQuery(t, "sort=-average_cost,name"))
		require.NoError(t, err)
		assert.Contains(t, sql, "ORDER BY average_cost DESC, name ASC")
	})

	t.Run("unknown sort key ignored", func(t *testing.T) {
		sql, _, err := testCollection().BuildSelect(specFromQuery(t, "sort=bogus"))
		require.NoError(t, err)
		assert.NotContains(t, sql, "ORDER BY")
	})
}

func TestBuildSelectPagination(t *testing.T) {
	sql, args, err := testCollection().BuildSelect(specFromQuery(t, "page=3&limit=10"))
	require.NoError(t, err)
	assert.Contains(t, sql, "LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{10, 20}, args)
}

func TestBuildCount(t *testing.T) {
	sql, args, err := testCollection().BuildCount(specFromQuery(t, "housing=true"))
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM bootcamps WHERE housing = $1", sql)
	assert.Equal(t, []any{true}, args)
}

func TestBuildSelectCastFailures(t *testing.T) {
	cases := []string{
		"average_cost[gt]=ten",
		"housing=maybe",
		"created_at[gte]=yesterday",
		"id=not-a-uuid",
		"careers[gt]=Business",
	}
	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			_, _, err := testCollection().BuildSelect(specFromQuery(t, raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrCast)
		})
	}
}
