package queries

import (
	"context"
	"time"

	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SearchFlightsQueryHandler retrieves matching capacity offers straight
// from the database. Ranking mirrors the FlightMatcher domain service:
// the chosen sort key first, flight id ascending as the tiebreak.
type SearchFlightsQueryHandler struct {
	db *gorm.DB
}

// NewSearchFlightsQueryHandler creates a handler for flight searches.
func NewSearchFlightsQueryHandler(db *gorm.DB) SearchFlightsQueryHandler {
	return SearchFlightsQueryHandler{db: db}
}

// Handle executes the search. Availability is computed inside the query,
// so a reservation committed before the read is always reflected.
func (h SearchFlightsQueryHandler) Handle(
	ctx context.Context,
	query SearchFlightsQuery,
) ([]SearchFlightsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			traveler_id,
			from_city,
			to_city,
			departure,
			arrival,
			total_capacity_g,
			total_capacity_g - reserved_capacity_g AS available_g,
			rating,
			completed_deliveries
		FROM flights
		WHERE 1=1
	`
	args := make([]any, 0, 5)

	if query.FromCity() != "" {
		sql += ` AND from_city ILIKE '%' || ? || '%'`
		args = append(args, query.FromCity())
	}
	if query.ToCity() != "" {
		sql += ` AND to_city ILIKE '%' || ? || '%'`
		args = append(args, query.ToCity())
	}
	if date := query.DepartureDate(); date != nil {
		dayStart := time.Date(
			date.UTC().Year(), date.UTC().Month(), date.UTC().Day(),
			0, 0, 0, 0, time.UTC,
		)
		sql += ` AND departure >= ? AND departure < ?`
		args = append(args, dayStart, dayStart.Add(24*time.Hour))
	}
	if weight := query.RequiredWeight(); weight != nil {
		sql += ` AND total_capacity_g - reserved_capacity_g >= ?`
		args = append(args, weight.Grams())
	}

	sql += orderClause(query.SortKey())

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]SearchFlightsQueryResponse, 0)
	for rows.Next() {
		var (
			resp       SearchFlightsQueryResponse
			id         uuid.UUID
			travelerID uuid.UUID
			totalG     int64
			availableG int64
		)

		err = rows.Scan(
			&id,
			&travelerID,
			&resp.FromCity,
			&resp.ToCity,
			&resp.Departure,
			&resp.Arrival,
			&totalG,
			&availableG,
			&resp.Rating,
			&resp.CompletedDeliveries,
		)
		if err != nil {
			return nil, err
		}

		flightID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = flightID

		tID, idErr := kernel.UUIDFromBytes(travelerID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.TravelerID = tID

		resp.TotalCapacityKg = float64(totalG) / 1000
		resp.AvailableCapacityKg = float64(availableG) / 1000
		flights = append(flights, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return flights, nil
}

// orderClause maps a sort key to its SQL ranking, id ascending as the
// deterministic tiebreak.
func orderClause(key services.SortKey) string {
	switch key {
	case services.SortByRating:
		return ` ORDER BY rating DESC, id`
	case services.SortByCapacity:
		return ` ORDER BY total_capacity_g - reserved_capacity_g DESC, id`
	case services.SortByExperience:
		return ` ORDER BY completed_deliveries DESC, id`
	case services.SortByDate:
		fallthrough
	default:
		return ` ORDER BY departure, id`
	}
}
