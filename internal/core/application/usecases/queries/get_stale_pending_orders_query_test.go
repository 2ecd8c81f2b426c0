package queries_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetStalePendingOrdersQuery_Valid(t *testing.T) {
	query, err := queries.NewGetStalePendingOrdersQuery(15 * time.Minute)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, 15*time.Minute, query.OlderThan())
}

func TestNewGetStalePendingOrdersQuery_NonPositiveThreshold(t *testing.T) {
	for _, olderThan := range []time.Duration{0, -time.Minute} {
		_, err := queries.NewGetStalePendingOrdersQuery(olderThan)
		require.Error(t, err)
		assert.ErrorIs(t, err, queries.ErrThresholdIsInvalid)
	}
}

func TestGetStalePendingOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetStalePendingOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetStalePendingOrdersQueryIsNotConstructed)
}
