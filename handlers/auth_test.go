package handlers_test

import (
	"testing"

	"pharmacy-api/config"
	"pharmacy-api/models"

	"github.com/gin-gonic/gin"
)

func userCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	config.DB.Model(&models.User{}).Count(&n)
	return n
}

func TestSignupPasswordPolicy(t *testing.T) {
	r := setupRouter(t)

	cases := []struct {
		name     string
		password string
	}{
		{"too short", "Ab1"},
		{"no digit", "Passwords"},
		{"no letter", "12345678"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, "POST", "/api/auth/signup", gin.H{
				"email": "a@x.com", "password1": tc.password, "password2": tc.password,
			}, "")
			if w.Code != 400 {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
	if n := userCount(t); n != 0 {
		t.Fatalf("expected no accounts persisted, found %d", n)
	}
}

func TestSignupPasswordMismatch(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, "POST", "/api/auth/signup", gin.H{
		"email": "a@x.com", "password1": "Passw0rd", "password2": "Passw0rd!",
	}, "")
	if w.Code != 400 {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if detail := decode(t, w)["detail"]; detail != "passwords do not match" {
		t.Fatalf("unexpected detail: %v", detail)
	}
	if n := userCount(t); n != 0 {
		t.Fatalf("expected no accounts persisted, found %d", n)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, "POST", "/api/auth/signup", gin.H{
		"email": "a@x.com", "password1": "Passw0rd", "password2": "Passw0rd",
	}, "")
	if w.Code != 201 {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if _, ok := body["token"].(map[string]interface{})["access"].(string); !ok {
		t.Fatalf("expected a token in response: %v", body)
	}

	// Same address, different case: still a duplicate
	w = doJSON(t, r, "POST", "/api/auth/signup", gin.H{
		"email": "A@X.COM", "password1": "Passw0rd", "password2": "Passw0rd",
	}, "")
	if w.Code != 400 {
		t.Fatalf("expected 400 for duplicate email, got %d", w.Code)
	}
	if detail := decode(t, w)["detail"]; detail != "Email is already in use" {
		t.Fatalf("unexpected detail: %v", detail)
	}
	if n := userCount(t); n != 1 {
		t.Fatalf("expected exactly one account, found %d", n)
	}
}

func TestSigninUnknownEmail(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, "POST", "/api/auth/signin", gin.H{
		"email": "ghost@x.com", "password": "Passw0rd",
	}, "")
	if w.Code != 404 {
		t.Fatalf("expected 404 for unknown email, got %d", w.Code)
	}
}

func TestSigninWrongPassword(t *testing.T) {
	r := setupRouter(t)
	signup(t, r, "a@x.com", "Passw0rd")

	w := doJSON(t, r, "POST", "/api/auth/signin", gin.H{
		"email": "a@x.com", "password": "WrongPassw0rd",
	}, "")
	if w.Code != 400 {
		t.Fatalf("expected 400 for wrong password, got %d", w.Code)
	}
	if detail := decode(t, w)["detail"]; detail != "Wrong password" {
		t.Fatalf("unexpected detail: %v", detail)
	}
}

func TestSigninSuccess(t *testing.T) {
	r := setupRouter(t)
	signup(t, r, "a@x.com", "Passw0rd")

	w := doJSON(t, r, "POST", "/api/auth/signin", gin.H{
		"email": "a@x.com", "password": "Passw0rd",
	}, "")
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	token, ok := body["token"].(map[string]interface{})["access"].(string)
	if !ok || token == "" {
		t.Fatalf("expected a token in response: %v", body)
	}

	// Token works against an authenticated route
	w = doJSON(t, r, "GET", "/api/profile/get_profile", nil, token)
	if w.Code != 404 {
		t.Fatalf("expected 404 (no profile yet), got %d", w.Code)
	}
	if detail := decode(t, w)["detail"]; detail != "Profile not found" {
		t.Fatalf("unexpected detail: %v", detail)
	}
}
