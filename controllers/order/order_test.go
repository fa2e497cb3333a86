package orderControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/counter"
	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/models"
)

type fakeSequence struct {
	n   int64
	err error
}

func (s *fakeSequence) Next(ctx context.Context) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.n++
	return s.n, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.OrderItem{}))
	return db
}

func offer(v float64) *float64 { return &v }

func sampleCart() []CartItemInput {
	return []CartItemInput{
		{ProductID: 1, Name: "Banana Chips", CategoryID: 1, CategoryName: "Chips", Quantity: 2, StandardPrice: 100, OfferPrice: offer(80)},
		{ProductID: 2, Name: "Tapioca Chips", CategoryID: 1, CategoryName: "Chips", Quantity: 1, StandardPrice: 50},
	}
}

func TestCreateOrderEmptyCart(t *testing.T) {
	db := newTestDB(t)
	_, err := CreateOrder(context.Background(), db, &fakeSequence{}, CreateOrderRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart is empty")
}

func TestCreateOrderRejectsBadQuantity(t *testing.T) {
	db := newTestDB(t)
	req := CreateOrderRequest{CartItems: []CartItemInput{{Name: "Banana Chips", Quantity: 0}}}
	_, err := CreateOrder(context.Background(), db, &fakeSequence{}, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Banana Chips")
}

func TestCreateOrderAllocatesNumberAndTotal(t *testing.T) {
	db := newTestDB(t)
	seq := &fakeSequence{}

	order, err := CreateOrder(context.Background(), db, seq, CreateOrderRequest{CartItems: sampleCart()})
	require.NoError(t, err)

	assert.Equal(t, "0001", order.OrderNumber)
	assert.Equal(t, 210.0, order.TotalAmount) // 2*80 offer + 1*50 standard
	assert.Equal(t, models.OrderStatusNew, order.Status)
	assert.Equal(t, models.CreatedByCustomer, order.CreatedBy)
	assert.NotEmpty(t, order.OrderRef)

	var stored models.Order
	require.NoError(t, db.Preload("Items").First(&stored, order.ID).Error)
	assert.Len(t, stored.Items, 2)
}

func TestCreateOrderFallbackWhenSequenceDown(t *testing.T) {
	db := newTestDB(t)
	seq := &fakeSequence{err: errors.New("redis unreachable")}

	order, err := CreateOrder(context.Background(), db, seq, CreateOrderRequest{CartItems: sampleCart()})
	require.NoError(t, err)
	assert.True(t, counter.IsFallback(order.OrderNumber))
}

func TestCreateOrderKeepsProvidedNumber(t *testing.T) {
	db := newTestDB(t)
	seq := &fakeSequence{err: errors.New("should not be consulted")}

	req := CreateOrderRequest{
		OrderNumber: "0042",
		Status:      "New",
		OrderSource: "mobile",
		CartItems:   sampleCart(),
	}
	order, err := CreateOrder(context.Background(), db, seq, req)
	require.NoError(t, err)
	assert.Equal(t, "0042", order.OrderNumber)
	assert.Equal(t, models.OrderSourceMobile, order.OrderSource)
}

func TestCreateOrderRejectsUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	req := CreateOrderRequest{Status: "shipped", CartItems: sampleCart()}
	_, err := CreateOrder(context.Background(), db, &fakeSequence{}, req)
	require.Error(t, err)
}

func newRouter(db *gorm.DB, seq counter.Sequence) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/orders", CreateOrderHandler(db, seq))
	r.GET("/orders", GetAllOrdersHandler(db))
	r.GET("/orders/summary", OrderSummaryHandler(db))
	r.GET("/orders/:orderID", GetOrderHandler(db))
	r.PUT("/orders/:orderID/status", UpdateOrderStatusHandler(db))
	r.PUT("/orders/:orderID/remarks", UpdateRemarksHandler(db))
	r.DELETE("/orders/:orderID", DeleteOrderHandler(db))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrderHandlerEnvelope(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, &fakeSequence{})

	w := postJSON(t, r, "/orders", CreateOrderRequest{CartItems: sampleCart()})
	require.Equal(t, http.StatusCreated, w.Code)

	var reply struct {
		Success     bool   `json:"success"`
		OrderNumber string `json:"order_number"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.True(t, reply.Success)
	assert.Equal(t, "0001", reply.OrderNumber)
}

func TestCreateOrderHandlerRejectsMissingCart(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db, &fakeSequence{})

	w := postJSON(t, r, "/orders", gin.H{"order_source": "mobile"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var reply struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.False(t, reply.Success)
}

func TestGetOrderByNumberOrID(t *testing.T) {
	db := newTestDB(t)
	seq := &fakeSequence{}
	order, err := CreateOrder(context.Background(), db, seq, CreateOrderRequest{CartItems: sampleCart()})
	require.NoError(t, err)

	r := newRouter(db, seq)
	for _, key := range []string{fmt.Sprint(order.ID), order.OrderNumber} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/"+key, nil))
		require.Equal(t, http.StatusOK, w.Code, "lookup by %q", key)

		var got models.Order
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, order.OrderNumber, got.OrderNumber)
		assert.Len(t, got.Items, 2)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/9999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListOrdersStatusFilter(t *testing.T) {
	db := newTestDB(t)
	seq := &fakeSequence{}
	_, err := CreateOrder(context.Background(), db, seq, CreateOrderRequest{CartItems: sampleCart()})
	require.NoError(t, err)
	_, err = CreateOrder(context.Background(), db, seq, CreateOrderRequest{Status: "Delivered", CartItems: sampleCart()})
	require.NoError(t, err)

	r := newRouter(db, seq)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders?status=delivered", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusDelivered, orders[0].Status)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders?status=shipped", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderSummaryCounts(t *testing.T) {
	db := newTestDB(t)
	seq := &fakeSequence{}
	for i := 0; i < 3; i++ {
		_, err := CreateOrder(context.Background(), db, seq, CreateOrderRequest{CartItems: sampleCart()})
		require.NoError(t, err)
	}
	_, err := CreateOrder(context.Background(), db, seq, CreateOrderRequest{Status: "Delivered", CartItems: sampleCart()})
	require.NoError(t, err)

	r := newRouter(db, seq)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/summary", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var summary map[string]int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, int64(4), summary["total"])
	assert.Equal(t, int64(3), summary["new"])
	assert.Equal(t, int64(1), summary["delivered"])
}

func TestUpdateStatusAndRemarks(t *testing.T) {
	db := newTestDB(t)
	seq := &fakeSequence{}
	order, err := CreateOrder(context.Background(), db, seq, CreateOrderRequest{CartItems: sampleCart()})
	require.NoError(t, err)

	r := newRouter(db, seq)

	put := func(path string, payload any) *httptest.ResponseRecorder {
		body, mErr := json.Marshal(payload)
		require.NoError(t, mErr)
		req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := put("/orders/"+order.OrderNumber+"/status", UpdateOrderStatusRequest{Status: "Delivered"})
	require.Equal(t, http.StatusOK, w.Code)

	w = put("/orders/"+order.OrderNumber+"/remarks", UpdateRemarksRequest{Remarks: "handed over at counter"})
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderStatusDelivered, stored.Status)
	assert.Equal(t, "handed over at counter", stored.Remarks)

	w = put("/orders/nope/status", UpdateOrderStatusRequest{Status: "Delivered"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// Two orders where one's order number reads as the other's numeric ID: admin
// operations addressed by order number must touch only the numbered order.
func TestOrderNumberLookupDoesNotCoerceToID(t *testing.T) {
	db := newTestDB(t)
	seq := &fakeSequence{}

	first, err := CreateOrder(context.Background(), db, seq, CreateOrderRequest{
		OrderNumber: "0002",
		CartItems:   sampleCart(),
	})
	require.NoError(t, err)
	second, err := CreateOrder(context.Background(), db, seq, CreateOrderRequest{
		OrderNumber: "0777",
		CartItems:   sampleCart(),
	})
	require.NoError(t, err)
	require.Equal(t, uint(2), second.ID, "second order must land on id 2 for the collision")

	r := newRouter(db, seq)

	// Lookup by "0002" resolves the numbered order, not id 2
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/0002", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, first.ID, got.ID)

	// Status update by "0002" leaves order "0777" untouched
	body, err := json.Marshal(UpdateOrderStatusRequest{Status: "Delivered"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/orders/0002/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Order
	require.NoError(t, db.First(&stored, first.ID).Error)
	assert.Equal(t, models.OrderStatusDelivered, stored.Status)
	var untouched models.Order
	require.NoError(t, db.First(&untouched, second.ID).Error)
	assert.Equal(t, models.OrderStatusNew, untouched.Status, "order 0777 must stay New")

	// Delete by "0002" removes only the numbered order
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/orders/0002", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.ErrorIs(t, db.First(&models.Order{}, first.ID).Error, gorm.ErrRecordNotFound)
	var remaining models.Order
	require.NoError(t, db.First(&remaining, second.ID).Error)
	assert.Equal(t, "0777", remaining.OrderNumber)
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	db := newTestDB(t)
	seq := &fakeSequence{}
	order, err := CreateOrder(context.Background(), db, seq, CreateOrderRequest{CartItems: sampleCart()})
	require.NoError(t, err)

	r := newRouter(db, seq)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/orders/"+order.OrderNumber, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&count).Error)
	assert.Zero(t, count)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/orders/"+order.OrderNumber, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
