package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, ParseLevel("INFO"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelDebug, ParseLevel("verbose"))
}

func TestMiddlewareLogsRouteTemplate(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info")

	router := mux.NewRouter()
	router.Use(Middleware(logger))
	router.HandleFunc("/v1/reviews/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/v1/reviews/42", nil))
	require.Equal(t, http.StatusNoContent, rr.Code)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "HTTP request handled", entry["msg"])
	assert.Equal(t, "/v1/reviews/{id}", entry["path"])
	assert.Equal(t, float64(http.StatusNoContent), entry["status"])
}

func TestStatusRecorderDefaultsToOK(t *testing.T) {
	rr := httptest.NewRecorder()
	rec := NewStatusRecorder(rr)
	_, err := rec.Write([]byte("hello"))
	require.NoError(t, err)
	rec.WriteHeader(http.StatusTeapot)

	assert.Equal(t, http.StatusOK, rec.Status)
	assert.Equal(t, http.StatusOK, rr.Code)
}
