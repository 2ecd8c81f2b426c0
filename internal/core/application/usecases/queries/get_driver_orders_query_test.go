package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetDriverOrdersQuery_Valid(t *testing.T) {
	userID := kernel.NewUUID()

	query, err := queries.NewGetDriverOrdersQuery(userID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, userID.IsEqual(query.UserID()))
}

func TestNewGetDriverOrdersQuery_EmptyUserID(t *testing.T) {
	_, err := queries.NewGetDriverOrdersQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetDriverOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetDriverOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetDriverOrdersQueryIsNotConstructed)
}
