package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	t.Run("middle page has both neighbours", func(t *testing.T) {
		p := Paginate(2, 2, 5)
		require.NotNil(t, p)
		require.NotNil(t, p.Next)
		require.NotNil(t, p.Prev)
		assert.Equal(t, &Page{Page: 3, Limit: 2}, p.Next)
		assert.Equal(t, &Page{Page: 1, Limit: 2}, p.Prev)
	})

	t.Run("first page has only next", func(t *testing.T) {
		p := Paginate(1, 2, 5)
		require.NotNil(t, p)
		assert.Equal(t, &Page{Page: 2, Limit: 2}, p.Next)
		assert.Nil(t, p.Prev)
	})

	t.Run("last page has only prev", func(t *testing.T) {
		p := Paginate(3, 2, 5)
		require.NotNil(t, p)
		assert.Nil(t, p.Next)
		assert.Equal(t, &Page{Page: 2, Limit: 2}, p.Prev)
	})

	t.Run("single page yields nil", func(t *testing.T) {
		assert.Nil(t, Paginate(1, 25, 5))
	})

	t.Run("no results yields nil", func(t *testing.T) {
		assert.Nil(t, Paginate(1, 25, 0))
	})
}
