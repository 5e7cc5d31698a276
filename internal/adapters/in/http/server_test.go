package http_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	adapterhttp "parcelmate/internal/adapters/in/http"
	"parcelmate/internal/adapters/out/memory"
	"parcelmate/internal/core/application/facade"
	"parcelmate/internal/core/application/usecases/queries"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *echo.Echo {
	engine := facade.NewEngine(
		memory.NewUnitOfWorkFactory(memory.NewStore()),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	server := adapterhttp.NewServer(
		engine,
		queries.SearchFlightsQueryHandler{},
		queries.GetOrderTimelineQueryHandler{},
	)

	e := echo.New()
	server.RegisterRoutes(e)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func createOrderBody(customerID uuid.UUID, weightKg, reward float64) string {
	return fmt.Sprintf(
		`{"customerId":%q,"fromCity":"Berlin","toCity":"Lisbon","weightKg":%v,"reward":%v}`,
		customerID, weightKg, reward,
	)
}

func TestServer_CreateOrder(t *testing.T) {
	e := newTestRouter()
	customerID := uuid.New()

	t.Run("Created", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/orders", createOrderBody(customerID, 3, 3000))
		require.Equal(t, http.StatusCreated, rec.Code)

		var response adapterhttp.OrderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, customerID, response.CustomerID)
		assert.Equal(t, "Searching", response.Status)
		assert.Equal(t, int64(750), response.Commission)
		assert.Equal(t, int64(3750), response.Total)
	})

	t.Run("OverweightRejected", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/orders", createOrderBody(customerID, 10.5, 3000))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("RewardBelowMinimumRejected", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/orders", createOrderBody(customerID, 3, 499))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MalformedBodyRejected", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/orders", `{"customerId":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_OrderLifecycle(t *testing.T) {
	e := newTestRouter()
	customerID := uuid.New()
	travelerID := uuid.New()

	flightBody := fmt.Sprintf(
		`{"travelerId":%q,"fromCity":"Berlin","toCity":"Lisbon",
		  "departure":%q,"arrival":%q,
		  "totalCapacityKg":5,"rating":4.5,"completedDeliveries":12}`,
		travelerID,
		time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC).Format(time.RFC3339),
		time.Date(2026, time.March, 10, 13, 30, 0, 0, time.UTC).Format(time.RFC3339),
	)
	rec := doJSON(e, http.MethodPost, "/api/v1/flights", flightBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	var flight adapterhttp.FlightResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &flight))

	rec = doJSON(e, http.MethodPost, "/api/v1/orders", createOrderBody(customerID, 3, 3000))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created adapterhttp.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	orderPath := "/api/v1/orders/" + created.ID.String()
	acceptBody := fmt.Sprintf(`{"flightId":%q}`, flight.ID)

	rec = doJSON(e, http.MethodPost, orderPath+"/accept", acceptBody)
	require.Equal(t, http.StatusOK, rec.Code)
	var accepted adapterhttp.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accepted))
	assert.Equal(t, "Accepted", accepted.Status)
	require.NotNil(t, accepted.TravelerID)
	assert.Equal(t, travelerID, *accepted.TravelerID)

	// Accepting twice is a state conflict, not a validation error.
	rec = doJSON(e, http.MethodPost, orderPath+"/accept", acceptBody)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(e, http.MethodPost, orderPath+"/fund", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPost, orderPath+"/depart", "")
	require.Equal(t, http.StatusOK, rec.Code)

	// A stranger to the order may not confirm delivery.
	strangerBody := fmt.Sprintf(`{"actorId":%q,"role":"traveler"}`, uuid.New())
	rec = doJSON(e, http.MethodPost, orderPath+"/confirm-delivery", strangerBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	confirmBody := fmt.Sprintf(`{"actorId":%q,"role":"customer"}`, customerID)
	rec = doJSON(e, http.MethodPost, orderPath+"/confirm-delivery", confirmBody)
	require.Equal(t, http.StatusOK, rec.Code)
	var completed adapterhttp.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &completed))
	assert.Equal(t, "Completed", completed.Status)
	assert.NotNil(t, completed.CompletedAt)
}

func TestServer_ErrorMapping(t *testing.T) {
	e := newTestRouter()

	t.Run("UnknownOrderIsNotFound", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/orders/"+uuid.NewString()+"/fund", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("MalformedOrderIDIsBadRequest", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/orders/not-a-uuid/fund", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UnknownRoleIsBadRequest", func(t *testing.T) {
		body := fmt.Sprintf(`{"actorId":%q,"role":"admin"}`, uuid.New())
		rec := doJSON(e, http.MethodPost, "/api/v1/orders/"+uuid.NewString()+"/cancel", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Health", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
