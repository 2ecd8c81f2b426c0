package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetMembershipQuery_Valid(t *testing.T) {
	userID := kernel.NewUUID()
	businessID := kernel.NewUUID()

	query, err := queries.NewGetMembershipQuery(userID, businessID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, userID.IsEqual(query.UserID()))
	assert.True(t, businessID.IsEqual(query.BusinessID()))
}

func TestNewGetMembershipQuery_MissingIDs(t *testing.T) {
	_, err := queries.NewGetMembershipQuery(kernel.UUID{}, kernel.NewUUID())
	require.Error(t, err)

	_, err = queries.NewGetMembershipQuery(kernel.NewUUID(), kernel.UUID{})
	require.Error(t, err)
}

func TestGetMembershipQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetMembershipQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetMembershipQueryIsNotConstructed)
}
