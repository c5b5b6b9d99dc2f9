package exchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	rs := []Rate{
		{Name: "Oficial", Average: 36.5},
		{Name: "Paralelo", Average: 0},
		{Name: "paralelo", Average: 40},
	}

	got, err := Find(rs, NameOfficial)
	require.NoError(t, err)
	assert.Equal(t, 36.5, got.Average)

	_, err = Find(rs, NameParallel)
	assert.ErrorIs(t, err, ErrRateNotFound)
}
