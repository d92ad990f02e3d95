package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhereBuilder(t *testing.T) {
	var w WhereBuilder
	assert.Equal(t, "", w.SQL())
	assert.Equal(t, 1, w.Next())

	w.Add("p.group_id = ?", int64(3)).Add("p.author_id = ?", int64(9))

	assert.Equal(t, " WHERE p.group_id = $1 AND p.author_id = $2", w.SQL())
	assert.Equal(t, []any{int64(3), int64(9), 10, 0}, w.Args(10, 0))
	assert.Equal(t, 3, w.Next())
}
