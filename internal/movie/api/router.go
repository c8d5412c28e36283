package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func NewRouter(handler *MovieHandler, metricsHandler http.Handler, middleware ...mux.MiddlewareFunc) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware...)

	router.HandleFunc("/v1/movies/{id}", handler.GetMovie).Methods(http.MethodGet)
	router.HandleFunc("/health", handler.Health).Methods(http.MethodGet)
	if metricsHandler != nil {
		router.Handle("/metrics", metricsHandler).Methods(http.MethodGet)
	}
	return router
}
