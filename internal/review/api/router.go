package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter creates the router of the Review service.
func NewRouter(handler *ReviewHandler, metricsHandler http.Handler, middleware ...mux.MiddlewareFunc) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware...)

	reviewsRouter := router.PathPrefix("/v1/reviews").Subrouter()
	reviewsRouter.HandleFunc("", handler.CreateReview).Methods(http.MethodPost)
	reviewsRouter.HandleFunc("", handler.GetReviews).Methods(http.MethodGet)
	reviewsRouter.HandleFunc("/{id}", handler.GetReviewByID).Methods(http.MethodGet)
	reviewsRouter.HandleFunc("/{id}", handler.UpdateReview).Methods(http.MethodPut)
	reviewsRouter.HandleFunc("/{id}", handler.DeleteReview).Methods(http.MethodDelete)

	router.HandleFunc("/v1/hello", handler.Hello).Methods(http.MethodGet)
	if metricsHandler != nil {
		router.Handle("/metrics", metricsHandler).Methods(http.MethodGet)
	}
	return router
}
