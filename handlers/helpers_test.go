package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"pharmacy-api/config"
	"pharmacy-api/middleware"
	"pharmacy-api/models"
	"pharmacy-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRouter builds a router backed by a fresh in-memory database
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := config.MigrateModels(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	config.DB = db

	auth := middleware.NewAuthenticator([]byte("test-secret"))
	r := gin.New()
	routes.SetupRoutes(r, auth, t.TempDir())
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}

// signup registers an account and returns its bearer token
func signup(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	w := doJSON(t, r, "POST", "/api/auth/signup", gin.H{
		"email": email, "password1": password, "password2": password,
	}, "")
	if w.Code != 201 {
		t.Fatalf("signup for %s returned %d: %s", email, w.Code, w.Body.String())
	}
	body := decode(t, w)
	token := body["token"].(map[string]interface{})["access"].(string)
	return token
}

// createProfile creates a profile (and its cart) for the token's account
func createProfile(t *testing.T, r *gin.Engine, token, name string) {
	t.Helper()
	w := doJSON(t, r, "POST", "/api/profile/create_profile", gin.H{
		"name": name, "city": "Baghdad", "province": "Al Mansour", "phone_number": "+14155552671",
	}, token)
	if w.Code != 200 {
		t.Fatalf("create_profile returned %d: %s", w.Code, w.Body.String())
	}
}

func seedPharmacy(t *testing.T, name, location string, shipping float64) models.Pharmacy {
	t.Helper()
	pharmacy := models.Pharmacy{
		Name:        name,
		Description: "A family-owned pharmacy",
		Location:    location,
		Shipping:    shipping,
	}
	if err := config.DB.Create(&pharmacy).Error; err != nil {
		t.Fatalf("failed to seed pharmacy: %v", err)
	}
	return pharmacy
}

func seedDrug(t *testing.T, pharmacyID uint, name string, price float64) models.Drug {
	t.Helper()
	drug := models.Drug{
		PharmacyID:  pharmacyID,
		Name:        name,
		Description: "Pain relief",
		Price:       price,
		IsActive:    true,
	}
	if err := config.DB.Create(&drug).Error; err != nil {
		t.Fatalf("failed to seed drug: %v", err)
	}
	return drug
}

// makeStaff flips the staff flag on an account directly in the store
func makeStaff(t *testing.T, email string) {
	t.Helper()
	if err := config.DB.Model(&models.User{}).Where("email = ?", email).
		Update("is_staff", true).Error; err != nil {
		t.Fatalf("failed to set staff flag: %v", err)
	}
}
