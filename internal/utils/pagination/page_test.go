package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage(t *testing.T) {
	assert.Equal(t, Page{Limit: DefaultLimit, Offset: 0}, NewPage(0, -5))
	assert.Equal(t, Page{Limit: MaxLimit, Offset: 10}, NewPage(MaxLimit+1, 10))
	assert.Equal(t, Page{Limit: 20, Offset: 40}, NewPage(20, 40))
}

func TestNextOffset(t *testing.T) {
	p := NewPage(20, 40)
	next := p.NextOffset(100)
	require.NotNil(t, next)
	assert.Equal(t, 60, *next)

	assert.Nil(t, p.NextOffset(60))
	assert.Nil(t, p.NextOffset(10))
}
