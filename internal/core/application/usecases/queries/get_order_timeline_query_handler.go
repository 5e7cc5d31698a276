package queries

import (
	"context"
	"database/sql"
	"errors"

	"parcelmate/internal/core/domain/model/order"
	"parcelmate/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderTimelineQueryHandler retrieves an order's status and append-only
// transition log from the database.
type GetOrderTimelineQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderTimelineQueryHandler creates a handler for timeline queries.
func NewGetOrderTimelineQueryHandler(db *gorm.DB) GetOrderTimelineQueryHandler {
	return GetOrderTimelineQueryHandler{db: db}
}

// Handle executes the query. Transitions come back oldest first, in the
// order they were applied.
func (h GetOrderTimelineQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTimelineQuery,
) (GetOrderTimelineQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTimelineQueryResponse{}, err
	}

	var status int
	err := h.db.WithContext(ctx).Raw(`
		SELECT status
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row().Scan(&status)
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
		return GetOrderTimelineQueryResponse{},
			errs.NewObjectNotFoundError("orderID", query.OrderID())
	}
	if err != nil {
		return GetOrderTimelineQueryResponse{}, err
	}

	resp := GetOrderTimelineQueryResponse{
		OrderID:     query.OrderID(),
		Status:      order.Status(status).String(),
		Transitions: make([]TransitionResponse, 0),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			at,
			from_status,
			to_status,
			actor
		FROM order_transitions
		WHERE order_id = ?
		ORDER BY seq
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderTimelineQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			transition TransitionResponse
			from, to   int
		)

		if err = rows.Scan(&transition.At, &from, &to, &transition.Actor); err != nil {
			return GetOrderTimelineQueryResponse{}, err
		}

		transition.From = order.Status(from).String()
		transition.To = order.Status(to).String()
		resp.Transitions = append(resp.Transitions, transition)
	}

	if err = rows.Err(); err != nil {
		return GetOrderTimelineQueryResponse{}, err
	}

	return resp, nil
}
