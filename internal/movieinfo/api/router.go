package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the MovieInfo endpoints. Extra middleware (logging, metrics)
// is applied to every route; /metrics is mounted when metricsHandler is non-nil.
func NewRouter(handler *MovieInfoHandler, metricsHandler http.Handler, middleware ...mux.MiddlewareFunc) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware...)

	movieInfos := router.PathPrefix("/v1/movieinfos").Subrouter()
	movieInfos.HandleFunc("", handler.CreateMovieInfo).Methods(http.MethodPost)
	movieInfos.HandleFunc("", handler.GetMovieInfos).Methods(http.MethodGet)
	movieInfos.HandleFunc("/{id}", handler.GetMovieInfoByID).Methods(http.MethodGet)
	movieInfos.HandleFunc("/{id}", handler.UpdateMovieInfo).Methods(http.MethodPut)
	movieInfos.HandleFunc("/{id}", handler.DeleteMovieInfo).Methods(http.MethodDelete)

	if metricsHandler != nil {
		router.Handle("/metrics", metricsHandler).Methods(http.MethodGet)
	}
	return router
}
