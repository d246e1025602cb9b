package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"comandas_backend/internal/models"
	"comandas_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOrderService returns canned results so the tests exercise only the
// HTTP translation layer.
type stubOrderService struct {
	order  *models.Order
	orders []models.Order
	err    error
}

func (s *stubOrderService) CreateOrder(models.Actor, services.CreateOrderRequest) (*models.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) RequestTransition(models.Actor, int64, models.OrderStatus) (*models.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) GetActiveOrders() ([]models.Order, error) {
	return s.orders, s.err
}

func (s *stubOrderService) GetOrderHistory() ([]models.Order, error) {
	return s.orders, s.err
}

func (s *stubOrderService) GetOrderByID(int64) (*models.Order, error) {
	return s.order, s.err
}

func setupOrderTestRouter(service services.OrderService, actor models.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set("actor", actor)
		c.Next()
	})

	handler := NewOrderHandler(service)
	engine.POST("/orders", handler.CreateOrder)
	engine.GET("/orders", handler.GetActiveOrders)
	engine.PATCH("/orders/:id/status", handler.UpdateOrderStatus)
	engine.GET("/orders/:id", handler.GetOrderByID)
	return engine
}

func adminActor() models.Actor {
	return models.Actor{AccountID: 1, Email: "admin@example.com", Role: models.RoleAdmin}
}

func performJSON(t *testing.T, engine *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestCreateOrderHandler_StatusCodes(t *testing.T) {
	validPayload := services.CreateOrderRequest{
		TableID:   1,
		AccountID: 1,
		Items:     []services.CreateOrderItemRequest{{ProductID: 1, Quantity: 1}},
	}

	testCases := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"created", nil, http.StatusCreated},
		{"table unavailable", services.ErrTableUnavailable, http.StatusConflict},
		{"empty order", services.ErrEmptyOrder, http.StatusBadRequest},
		{"invalid account", services.ErrInvalidAccount, http.StatusBadRequest},
		{"product missing", services.ErrProductNotFound, http.StatusNotFound},
		{"internal failure", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubOrderService{order: &models.Order{ID: 7, Status: models.OrderStatusPending}, err: tc.serviceErr}
			engine := setupOrderTestRouter(stub, adminActor())

			rec := performJSON(t, engine, http.MethodPost, "/orders", validPayload)
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestCreateOrderHandler_RejectsMalformedPayload(t *testing.T) {
	engine := setupOrderTestRouter(&stubOrderService{}, adminActor())

	rec := performJSON(t, engine, http.MethodPost, "/orders", gin.H{"table_id": "not-a-number"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderStatusHandler_StatusCodes(t *testing.T) {
	testCases := []struct {
		name       string
		status     string
		serviceErr error
		wantStatus int
	}{
		{"updated", "IN_PREPARATION", nil, http.StatusOK},
		{"unknown status literal", "BURNED", nil, http.StatusBadRequest},
		{"order missing", "IN_PREPARATION", services.ErrOrderNotFound, http.StatusNotFound},
		{"illegal transition", "IN_PREPARATION", services.ErrInvalidTransition, http.StatusConflict},
		{"role not allowed", "IN_PREPARATION", services.ErrUnauthorizedEdge, http.StatusForbidden},
		{"internal failure", "IN_PREPARATION", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubOrderService{order: &models.Order{ID: 7, Status: models.OrderStatusInPreparation}, err: tc.serviceErr}
			engine := setupOrderTestRouter(stub, adminActor())

			rec := performJSON(t, engine, http.MethodPatch, "/orders/7/status", gin.H{"status": tc.status})
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestUpdateOrderStatusHandler_RejectsBadID(t *testing.T) {
	engine := setupOrderTestRouter(&stubOrderService{}, adminActor())

	rec := performJSON(t, engine, http.MethodPatch, "/orders/abc/status", gin.H{"status": "IN_PREPARATION"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetActiveOrdersHandler_WrapsDataAndDefaultsToEmptyList(t *testing.T) {
	engine := setupOrderTestRouter(&stubOrderService{orders: nil}, adminActor())

	rec := performJSON(t, engine, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotNil(t, body.Data)
	assert.Empty(t, body.Data)
}

func TestGetOrderByIDHandler_NotFound(t *testing.T) {
	engine := setupOrderTestRouter(&stubOrderService{err: services.ErrOrderNotFound}, adminActor())

	rec := performJSON(t, engine, http.MethodGet, "/orders/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
