package queries_test

import (
	"testing"

	"parcelmate/internal/core/application/usecases/queries"
	"parcelmate/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderTimelineQuery_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()

	q, err := queries.NewGetOrderTimelineQuery(orderID)
	require.NoError(t, err)
	assert.Equal(t, orderID, q.OrderID())
}

func TestNewGetOrderTimelineQuery_InvalidOrderID(t *testing.T) {
	_, err := queries.NewGetOrderTimelineQuery(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetOrderTimelineQuery_NotConstructed(t *testing.T) {
	q := queries.GetOrderTimelineQuery{}
	require.ErrorIs(t, q.Validate(), queries.ErrGetOrderTimelineQueryIsNotConstructed)
}
