package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/realworld-persistence/internal/api"
	"github.com/realworld-persistence/internal/mocks"
	"github.com/realworld-persistence/internal/service"
	"github.com/rs/zerolog"
)

func setupTestRouter() (*gin.Engine, *mocks.MockStatsService) {
	gin.SetMode(gin.TestMode)

	mockStats := mocks.NewMockStatsService()
	services := &service.Services{Stats: mockStats}

	router := api.NewRouter(services, zerolog.Nop())
	return router, mockStats
}

func doGet(router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	return w, response
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter()

	w, response := doGet(router, "/health")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != api.ServiceName {
		t.Errorf("Expected service name, got %v", response["service"])
	}

	backend := response["backend"].(map[string]interface{})
	if backend["name"] != "memory" || backend["status"] != "up" {
		t.Errorf("Unexpected backend status: %v", backend)
	}
}

func TestHealthEndpoint_BackendDown(t *testing.T) {
	router, mockStats := setupTestRouter()
	mockStats.HealthError = errors.New("server selection error")

	w, response := doGet(router, "/health")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
	if response["status"] != "unhealthy" {
		t.Errorf("Expected status 'unhealthy', got %v", response["status"])
	}

	backend := response["backend"].(map[string]interface{})
	if backend["error"] != "server selection error" {
		t.Errorf("Expected backend error, got %v", backend["error"])
	}
}

func TestStatsEndpoint(t *testing.T) {
	router, mockStats := setupTestRouter()
	mockStats.BackendName = "mongodb"
	mockStats.Counts = service.Counts{Users: 3, Tags: 5, Articles: 3, ArticleTags: 5, Comments: 4, Favorites: 3, Follows: 3}

	w, response := doGet(router, "/stats")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if response["backend"] != "mongodb" {
		t.Errorf("Expected mongodb backend, got %v", response["backend"])
	}

	collections := response["collections"].(map[string]interface{})
	if collections["users"].(float64) != 3 {
		t.Errorf("Expected 3 users, got %v", collections["users"])
	}
	if collections["comments"].(float64) != 4 {
		t.Errorf("Expected 4 comments, got %v", collections["comments"])
	}
}

func TestStatsEndpoint_Error(t *testing.T) {
	router, mockStats := setupTestRouter()
	mockStats.CountsError = errors.New("connection reset")

	w, _ := doGet(router, "/stats")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
}

func TestCollectionStatsEndpoint(t *testing.T) {
	router, mockStats := setupTestRouter()
	mockStats.Counts.Favorites = 3

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/stats/articleFavorite", http.StatusOK},
		{"/stats/article_favorite", http.StatusOK},
		{"/stats/jobs", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w, response := doGet(router, tt.path)
			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantStatus == http.StatusOK && response["count"].(float64) != 3 {
				t.Errorf("Expected count 3, got %v", response["count"])
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("OPTIONS", "/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS header")
	}
}
