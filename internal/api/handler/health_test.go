package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHealthHandler_Check(t *testing.T) {
	e := NewTestEcho()

	t.Run("データストアなしでもokを返す", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := NewHealthHandler(nil).Check(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
		assert.Contains(t, rec.Body.String(), `"timestamp"`)
	})

	t.Run("データストアが応答すればok", func(t *testing.T) {
		db := new(MockPinger)
		db.On("PingContext", mock.Anything).Return(nil)
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		assert.NoError(t, NewHealthHandler(db).Check(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"database":"ok"`)
	})

	t.Run("データストアが応答しなければ503", func(t *testing.T) {
		db := new(MockPinger)
		db.On("PingContext", mock.Anything).Return(errors.New("connection refused"))
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		assert.NoError(t, NewHealthHandler(db).Check(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"degraded"`)
	})
}

func TestRegisterRoutes(t *testing.T) {
	e := NewTestEcho()
	RegisterRoutes(e, Handlers{
		Health:  NewHealthHandler(nil),
		Booking: NewBookingHandler(new(MockBookingService)),
		Query:   NewQueryHandler(new(MockQueryService)),
		Fleet:   NewFleetHandler(new(MockFleetService)),
	})

	routes := map[string]bool{}
	for _, r := range e.Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /health",
		"POST /api/v1/bookings",
		"GET /api/v1/cruises",
		"GET /api/v1/cruises/:cnum/seats",
		"GET /api/v1/cruises/:cnum/passengers",
		"POST /api/v1/cruises/:cnum/promotions",
		"POST /api/v1/customers",
		"GET /api/v1/ships/repairs",
	} {
		assert.True(t, routes[want], want)
	}
}
