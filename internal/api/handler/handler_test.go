package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"subleasend/backend/internal/api/handler"
	"subleasend/backend/internal/api/middleware"
	"subleasend/backend/internal/auth"
	"subleasend/backend/internal/models"
	"subleasend/backend/internal/storage"
)

const testSecret = "test-secret"

// newTestServer wires a gin router against a fresh in-memory sqlite store,
// mirroring the production route table.
func newTestServer(t *testing.T) (*gin.Engine, *storage.Service, *auth.TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	s := storage.NewStorageService(db, nil)
	require.NoError(t, s.Migrate())

	tokens := auth.NewTokenManager(testSecret)
	h := handler.NewHandler(s, tokens, nil)

	r := gin.New()
	authRequired := middleware.RequireAuth(tokens)

	api := r.Group("/api")
	api.POST("/auth/signup", h.SignUp)
	api.POST("/auth/signin", h.SignIn)
	api.GET("/listings", h.ListListings)
	api.GET("/listings/mine", authRequired, h.MyListings)
	api.GET("/listings/:id", h.GetListing)
	api.POST("/listings", authRequired, h.CreateListing)
	api.PUT("/listings/:id", authRequired, h.UpdateListing)
	api.DELETE("/listings/:id", authRequired, h.DeleteListing)
	api.PATCH("/listings/:id/availability", authRequired, h.SetListingAvailability)
	api.POST("/favorites", authRequired, h.AddFavorite)
	api.DELETE("/favorites/:listingId", authRequired, h.RemoveFavorite)
	api.GET("/favorites", authRequired, h.ListFavorites)
	api.GET("/favorites/:listingId/check", authRequired, h.CheckFavorite)
	api.GET("/conversations", authRequired, h.ListConversations)
	api.POST("/conversations", authRequired, h.CreateConversation)
	api.GET("/conversations/:id/messages", authRequired, h.ListMessages)
	api.POST("/conversations/:id/messages", authRequired, h.PostMessage)
	api.PATCH("/messages/:id/read", authRequired, h.MarkMessageRead)

	return r, s, tokens
}

// signUpUser creates an account through the API and returns the user and a
// usable bearer token.
func signUpUser(t *testing.T, r *gin.Engine, email string) (*models.User, string) {
	t.Helper()

	rec := doJSON(r, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    email,
		"password": "correct-horse",
		"name":     "Test Student",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return &resp.User, resp.Token
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func itoa(id uint) string {
	return fmt.Sprintf("%d", id)
}

// validListingBody returns a payload that passes creation validation.
func validListingBody() map[string]interface{} {
	return map[string]interface{}{
		"title":         "Cozy 2BR Near Campus",
		"description":   "Fully furnished, close to everything.",
		"price":         "1200",
		"bedrooms":      2,
		"bathrooms":     1.5,
		"address":       "123 Notre Dame Avenue",
		"latitude":      41.7021,
		"longitude":     -86.2367,
		"distanceToND":  0.5,
		"furnished":     true,
		"availableFrom": "2025-01-15",
		"availableTo":   "2025-05-15",
		"amenities":     []string{"WiFi", "Parking"},
		"images":        []string{"https://example.com/img.jpg"},
		"contactEmail":  "student1@nd.edu",
	}
}
