package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/unrolled/render"
)

// Status is the body of GET /status.
type Status struct {
	ServiceName string `json:"service_name"`
	Addr        string `json:"addr"`
	KeyCount    int    `json:"key_count"`
}

// StatusHandler serves /status and /metrics for the server bound as name at addr.
func (server *Server) StatusHandler(name, addr string) http.Handler {
	rd := render.New(render.Options{
		IndentJSON: true,
	})

	router := mux.NewRouter()
	router.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		rd.JSON(w, http.StatusOK, &Status{
			ServiceName: name,
			Addr:        addr,
			KeyCount:    server.Len(),
		})
	}).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	return router
}
