package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer() *Server {
	return New(Config{Addr: "127.0.0.1:0", AllowedOrigins: []string{"*"}})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer().Handler(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCell_RoundTrip(t *testing.T) {
	s := newTestServer()
	h := s.Handler()

	rec := do(t, h, http.MethodPost, "/api/v1/cells", `{"label":"C","isc":5.5,"io":7e-11,"rp":8,"rs":0.0015}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created CellResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "C", created.Characteristics.Label)
	assert.Equal(t, 5.1933, created.Characteristics.Impp)
	assert.Nil(t, created.Curve)
	assert.Equal(t, 1, s.cells.Len())

	rec = do(t, h, http.MethodGet, "/api/v1/cells/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got CellResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
	require.NotNil(t, got.Curve)
	assert.Len(t, got.Curve.Vd, 645)

	rec = do(t, h, http.MethodGet, "/api/v1/cells/"+created.ID.String()+"/chart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Cell C")
}

func TestCell_InvalidParameter(t *testing.T) {
	rec := do(t, newTestServer().Handler(), http.MethodPost, "/api/v1/cells", `{"isc":5,"io":7e-11,"rp":-8}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_PARAMETER")
}

func TestCell_Degenerate(t *testing.T) {
	rec := do(t, newTestServer().Handler(), http.MethodPost, "/api/v1/cells", `{"isc":1e-12,"io":1e-9,"rp":10}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "DEGENERATE_CURVE")
}

func TestCell_BadBody(t *testing.T) {
	rec := do(t, newTestServer().Handler(), http.MethodPost, "/api/v1/cells", `{"isc":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "BAD_REQUEST")
}

func TestCell_NotFound(t *testing.T) {
	h := newTestServer().Handler()

	rec := do(t, h, http.MethodGet, "/api/v1/cells/6f1c2a9e-8a51-4a7e-9b57-0f3d7f4c1b22", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/cells/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestModule_RoundTrip(t *testing.T) {
	h := newTestServer().Handler()

	rec := do(t, h, http.MethodPost, "/api/v1/modules", `{"isc":6,"io":5e-11,"rp":12,"rs":0.0025,"num_cells":102}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created ModuleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 102, created.NumCells)
	assert.Equal(t, 574, created.Unshaded.Index)
	assert.Equal(t, 641, created.Shaded.Index)
	assert.Empty(t, created.Vsh)

	rec = do(t, h, http.MethodGet, "/api/v1/modules/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got ModuleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Vsh, 656)
	assert.Equal(t, -72.015, got.Vsh[0])

	rec = do(t, h, http.MethodGet, "/api/v1/modules/"+created.ID.String()+"/chart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nth Cell Shaded")
}

func TestModule_InvalidNumCells(t *testing.T) {
	rec := do(t, newTestServer().Handler(), http.MethodPost, "/api/v1/modules", `{"isc":6,"io":5e-11,"rp":12,"rs":0.0025,"num_cells":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "num_cells")
}

func TestNoRoute(t *testing.T) {
	rec := do(t, newTestServer().Handler(), http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/cells", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRun_Shutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- newTestServer().Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * shutdownTO):
		t.Fatal("server did not shut down")
	}
}
