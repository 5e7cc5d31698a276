package queries_test

import (
	"testing"
	"time"

	"parcelmate/internal/core/application/usecases/queries"
	"parcelmate/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchFlightsQuery_ValidInput(t *testing.T) {
	date := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	weightKg := 2.5

	q, err := queries.NewSearchFlightsQuery("ber", "lis", &date, &weightKg, services.SortByRating)
	require.NoError(t, err)
	assert.Equal(t, "ber", q.FromCity())
	assert.Equal(t, "lis", q.ToCity())
	require.NotNil(t, q.DepartureDate())
	assert.True(t, date.Equal(*q.DepartureDate()))
	require.NotNil(t, q.RequiredWeight())
	assert.InDelta(t, 2.5, q.RequiredWeight().Kg(), 0.0001)
	assert.Equal(t, services.SortByRating, q.SortKey())
}

func TestNewSearchFlightsQuery_EmptyFiltersAllowed(t *testing.T) {
	q, err := queries.NewSearchFlightsQuery("", "", nil, nil, services.SortByDate)
	require.NoError(t, err)
	assert.Empty(t, q.FromCity())
	assert.Nil(t, q.DepartureDate())
	assert.Nil(t, q.RequiredWeight())
}

func TestNewSearchFlightsQuery_InvalidSortKey(t *testing.T) {
	_, err := queries.NewSearchFlightsQuery("", "", nil, nil, services.SortKey(42))
	require.Error(t, err)
}

func TestNewSearchFlightsQuery_NonPositiveWeight(t *testing.T) {
	weightKg := 0.0
	_, err := queries.NewSearchFlightsQuery("", "", nil, &weightKg, services.SortByDate)
	require.Error(t, err)
}

func TestSearchFlightsQuery_NotConstructed(t *testing.T) {
	q := queries.SearchFlightsQuery{}
	require.ErrorIs(t, q.Validate(), queries.ErrSearchFlightsQueryIsNotConstructed)
}
