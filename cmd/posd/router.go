package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/chiwenlan/tablepos/internal/logging"
	"github.com/chiwenlan/tablepos/internal/queue"
)

// statsResponse is the dashboard read path: both queues' per-status
// counts plus the oldest-pending anchors.
type statsResponse struct {
	Orders    *queue.Stats `json:"orders"`
	PrintJobs *queue.Stats `json:"print_jobs"`
}

// newRouter builds the read-only operator surface. Mutation goes only
// through the queue repositories.
func newRouter(orders *queue.OrderQueue, prints *queue.PrintQueue) chi.Router {
	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)

	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","service":"tablepos-posd"}`))
	})

	r.Get("/api/stats", func(w http.ResponseWriter, _ *http.Request) {
		orderStats, err := orders.GetStats()
		if err != nil {
			writeError(w, err)
			return
		}
		printStats, err := prints.GetStats()
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(statsResponse{
			Orders:    orderStats,
			PrintJobs: printStats,
		}); err != nil {
			logging.WithComponent("posd").WithError(err).Warn("failed to write stats response")
		}
	})

	return r
}

func writeError(w http.ResponseWriter, err error) {
	logging.WithComponent("posd").WithError(err).Error("stats read failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}
