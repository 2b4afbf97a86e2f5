package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/monishaRema/zep-shift-server/internal/database"
	"github.com/monishaRema/zep-shift-server/internal/handlers"
	"github.com/monishaRema/zep-shift-server/internal/middleware"
	"github.com/monishaRema/zep-shift-server/internal/models"
	"github.com/monishaRema/zep-shift-server/internal/services"
)

const (
	userToken  = "user-token"
	adminToken = "admin-token"
	riderToken = "rider-token"

	userEmail  = "user@example.com"
	adminEmail = "admin@example.com"
	riderEmail = "rider@example.com"
)

// stubVerifier resolves fixed tokens to fixed identities.
type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, token string) (*services.Identity, error) {
	switch token {
	case userToken:
		return &services.Identity{Email: userEmail}, nil
	case adminToken:
		return &services.Identity{Email: adminEmail}, nil
	case riderToken:
		return &services.Identity{Email: riderEmail}, nil
	}
	return nil, errors.New("invalid token")
}

// stubGateway returns a canned client secret.
type stubGateway struct {
	err error
}

func (g stubGateway) CreateIntent(_ context.Context, amountInCents int64) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return fmt.Sprintf("cs_test_%d", amountInCents), nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	return db
}

func newTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := services.NewHub()
	go hub.Run()

	var cache *services.RiderCache // disabled in tests

	auth := middleware.RequireAuth(stubVerifier{})
	admin := middleware.AdminOnly(db)

	r := gin.New()

	riders := r.Group("/riders")
	{
		riders.POST("", auth, handlers.RegisterRider(db))
		riders.GET("", auth, handlers.GetRiders(db))
		riders.GET("/pending-riders", auth, handlers.GetRidersByStatus(db, models.RiderStatusPending))
		riders.GET("/active-riders", auth, handlers.GetRidersByStatus(db, models.RiderStatusActive))
		riders.GET("/deactivated-riders", auth, handlers.GetRidersByStatus(db, models.RiderStatusDeactivated))
		riders.GET("/rejected-riders", auth, handlers.GetRidersByStatus(db, models.RiderStatusRejected))
		riders.GET("/available", handlers.GetAvailableRiders(db, cache))
		riders.PATCH("/:id", auth, handlers.UpdateRiderStatus(db, cache))
	}

	parcels := r.Group("/parcels")
	{
		parcels.GET("", handlers.GetParcels(db))
		parcels.GET("/all-parcels", handlers.GetAllParcels(db))
		parcels.GET("/:id", handlers.GetParcel(db))
		parcels.POST("", handlers.CreateParcel(db))
		parcels.DELETE("/:id", handlers.DeleteParcel(db))
		parcels.PATCH("/assign/:id", auth, admin, handlers.AssignRider(db, cache))
	}

	tracking := r.Group("/tracking")
	{
		tracking.POST("", handlers.CreateTracking(db, hub))
		tracking.GET("", handlers.GetTracking(db))
	}

	payments := r.Group("/payments")
	{
		payments.POST("/create-payment-intent", handlers.CreatePaymentIntent(stubGateway{}))
		payments.POST("", auth, handlers.CreatePayment(db))
		payments.GET("", auth, handlers.GetPayments(db))
		payments.GET("/parcel/:parcelId", handlers.GetParcelPayments(db))
	}

	users := r.Group("/users")
	{
		users.POST("", handlers.UpsertUser(db))
		users.GET("/search", auth, admin, handlers.SearchUsers(db))
		users.PATCH("/:id/role", auth, admin, handlers.UpdateUserRole(db))
		users.GET("/role", auth, handlers.GetUserRole(db))
	}

	return r
}

func seedAdmin(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&models.User{
		Email:        adminEmail,
		Role:         models.RoleAdmin,
		LastLoggedIn: time.Now(),
	}).Error)
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func validRiderBody(email string) map[string]interface{} {
	return map[string]interface{}{
		"name":              "Kamal Hossain",
		"age":               28,
		"email":             email,
		"region":            "Dhaka",
		"district":          "Dhanmondi",
		"nid":               "1987654321",
		"contact":           "01712345678",
		"bike_registration": "DHK-METRO-LA-11-2233",
		"warehouse":         "Dhanmondi Hub",
	}
}
