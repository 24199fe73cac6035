package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiwenlan/tablepos/internal/db"
	"github.com/chiwenlan/tablepos/internal/models"
	"github.com/chiwenlan/tablepos/internal/queue"
)

func newTestRouter(t *testing.T) (http.Handler, *queue.OrderQueue, *queue.PrintQueue) {
	t.Helper()

	database, err := db.Open(t.TempDir(), db.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.NewMigrator(database).Up())

	orders := queue.NewOrderQueue(database)
	prints := queue.NewPrintQueue(database)
	return newRouter(orders, prints), orders, prints
}

func TestHealthEndpoint(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","service":"tablepos-posd"}`, rec.Body.String())
}

func TestStatsEndpoint(t *testing.T) {
	router, orders, prints := newTestRouter(t)

	_, err := orders.Enqueue(&models.OfflineOrder{
		ID: "o1", IdempotencyKey: "k1", LocalID: "L1", OrderData: "{}",
	})
	require.NoError(t, err)
	_, err = prints.Enqueue(&models.PrintJob{ID: "p1", JobType: "receipt", PrintData: "{}"})
	require.NoError(t, err)
	require.NoError(t, prints.MarkPrinted("p1"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp statsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Orders.Total)
	assert.Equal(t, 1, resp.Orders.ByStatus[models.OrderStatusPending])
	assert.Equal(t, 1, resp.PrintJobs.Total)
	assert.Equal(t, 1, resp.PrintJobs.ByStatus[models.PrintStatusPrinted])
}
