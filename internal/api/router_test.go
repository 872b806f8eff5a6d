package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkspot-backend/internal/admin"
	"parkspot-backend/internal/auth"
	"parkspot-backend/internal/booking"
	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/lot"
	"parkspot-backend/internal/store"
	"parkspot-backend/internal/user"
)

const testJWTSecret = "router-test-secret"

type testEnv struct {
	router *gin.Engine
	jwt    *auth.JWTManager
	store  store.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.NewFileStore(filepath.Join(t.TempDir(), "parking.json"))
	require.NoError(t, err)

	userService := user.NewService(st, auth.NewBcryptPasswordHasherWithCost(4))
	lotService := lot.NewService(st)
	bookingService := booking.NewService(st)
	adminService := admin.NewService(st, bookingService)
	jwtManager := auth.NewJWTManager(testJWTSecret, time.Minute)

	router := NewRouter(Config{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		UserService:    userService,
		LotService:     lotService,
		BookingService: bookingService,
		AdminService:   adminService,
		JWTManager:     jwtManager,
	})

	return &testEnv{router: router, jwt: jwtManager, store: st}
}

func (e *testEnv) execute(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// seedAdmin inserts an admin user directly and returns a token for them.
func (e *testEnv) seedAdmin(t *testing.T) string {
	t.Helper()
	err := e.store.Update(context.Background(), func(doc *domain.Document) error {
		doc.Users = append(doc.Users, domain.User{
			ID: "admin-1", Name: "Root", Email: "root@example.com", IsAdmin: true,
		})
		return nil
	})
	require.NoError(t, err)

	token, err := e.jwt.GenerateAccessToken("admin-1", true)
	require.NoError(t, err)
	return token
}

func TestRegisterLoginAndProfile(t *testing.T) {
	env := newTestEnv(t)

	w := env.execute(t, http.MethodPost, "/api/auth/register",
		gin.H{"name": "Alice", "email": "alice@example.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reg AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	assert.NotEmpty(t, reg.Token)
	assert.False(t, reg.User.IsAdmin)

	// Wrong password: same failure as unknown email.
	w = env.execute(t, http.MethodPost, "/api/auth/login",
		gin.H{"email": "alice@example.com", "password": "nope"}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.execute(t, http.MethodPost, "/api/auth/login",
		gin.H{"email": "alice@example.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = env.execute(t, http.MethodGet, "/api/users/profile", nil, reg.Token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")

	// No token: rejected at the boundary.
	w = env.execute(t, http.MethodGet, "/api/users/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookingFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.seedAdmin(t)

	// Admin creates a lot with 2 slots.
	w := env.execute(t, http.MethodPost, "/api/admin/lots",
		gin.H{"name": "Central", "location": "Downtown", "numberOfSlots": 2}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID    string `json:"id"`
		Slots []struct {
			ID string `json:"id"`
		} `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Len(t, created.Slots, 2)

	// Two regular users.
	w = env.execute(t, http.MethodPost, "/api/auth/register",
		gin.H{"name": "Alice", "email": "alice@example.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var alice AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alice))

	w = env.execute(t, http.MethodPost, "/api/auth/register",
		gin.H{"name": "Bob", "email": "bob@example.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var bob AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bob))

	slotID := created.Slots[0].ID

	// Alice reserves; Bob conflicts on the same slot.
	w = env.execute(t, http.MethodPost, "/api/bookings",
		gin.H{"lotId": created.ID, "slotId": slotID, "date": "2024-06-01", "time": "10:00"}, alice.Token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var reserveResp struct {
		Booking struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reserveResp))
	assert.Equal(t, "active", reserveResp.Booking.Status)

	w = env.execute(t, http.MethodPost, "/api/bookings",
		gin.H{"lotId": created.ID, "slotId": slotID, "date": "2024-06-01", "time": "11:00"}, bob.Token)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Bob cannot cancel Alice's booking.
	w = env.execute(t, http.MethodDelete, "/api/bookings/"+reserveResp.Booking.ID, nil, bob.Token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Deleting the lot while the booking is active is rejected.
	w = env.execute(t, http.MethodDelete, "/api/admin/lots/"+created.ID, nil, adminToken)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Alice cancels; Bob retries and succeeds.
	w = env.execute(t, http.MethodDelete, "/api/bookings/"+reserveResp.Booking.ID, nil, alice.Token)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.execute(t, http.MethodDelete, "/api/bookings/"+reserveResp.Booking.ID, nil, alice.Token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.execute(t, http.MethodPost, "/api/bookings",
		gin.H{"lotId": created.ID, "slotId": slotID, "date": "2024-06-01", "time": "11:00"}, bob.Token)
	require.Equal(t, http.StatusCreated, w.Code)

	// Stats reflect one consistent snapshot.
	w = env.execute(t, http.MethodGet, "/api/admin/stats", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	var stats admin.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.TotalUsers)
	assert.Equal(t, 1, stats.TotalLots)
	assert.Equal(t, 2, stats.TotalBookings)
	assert.Equal(t, 1, stats.ActiveBookings)

	// The document never left a consistent state.
	require.NoError(t, env.store.View(context.Background(), func(doc *domain.Document) error {
		return doc.CheckInvariants()
	}))
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	env := newTestEnv(t)

	w := env.execute(t, http.MethodPost, "/api/auth/register",
		gin.H{"name": "Alice", "email": "alice@example.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var alice AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alice))

	w = env.execute(t, http.MethodGet, "/api/admin/stats", nil, alice.Token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// A forged admin claim is not enough: the flag is re-read from the store.
	forged, err := env.jwt.GenerateAccessToken(alice.User.ID, true)
	require.NoError(t, err)
	w = env.execute(t, http.MethodGet, "/api/admin/stats", nil, forged)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.execute(t, http.MethodGet, "/api/admin/stats", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
