package pagination

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitClamps(t *testing.T) {
	assert.Equal(t, DefaultPageSize, Pagination{}.Limit())
	assert.Equal(t, MaxPageSize, Pagination{PageSize: 1000}.Limit())
	assert.Equal(t, 5, Pagination{PageSize: 5}.Limit())
}

func TestCursorRoundTrip(t *testing.T) {
	token, err := EncodeCursor(Cursor{ID: "123"})
	require.NoError(t, err)

	cursor, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.Equal(t, "123", cursor.ID)

	empty, err := DecodeCursor("  ")
	require.NoError(t, err)
	assert.Nil(t, empty)

	_, err = DecodeCursor("%%%")
	assert.ErrorIs(t, err, ErrInvalidPageToken)
}

func TestTrim(t *testing.T) {
	ids := []int{9, 8, 7}
	extract := func(v int) Cursor { return Cursor{ID: strconv.Itoa(v)} }

	page, info, err := Trim(ids, 2, extract)
	require.NoError(t, err)
	assert.Equal(t, []int{9, 8}, page)
	assert.True(t, info.HasMore)

	cursor, err := DecodeCursor(info.NextPageToken)
	require.NoError(t, err)
	assert.Equal(t, "8", cursor.ID)

	page, info, err = Trim(ids, 3, extract)
	require.NoError(t, err)
	assert.Len(t, page, 3)
	assert.False(t, info.HasMore)
	assert.Empty(t, info.NextPageToken)
}
