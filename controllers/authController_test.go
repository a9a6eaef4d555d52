package controllers_test

import (
	"testing"
)

// Single flow: the JWT secret loads once per process, so registration, login
// and the bearer guard are exercised together under one env setup.
func TestAuthFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := setupApp(t)

	resp := doJSON(t, app, "POST", "/api/registration",
		`{"first_name":"Ana","last_name":"Diaz","email":"ana@example.com","password":"s3cret","password_confirm":"s3cret"}`)
	if resp.StatusCode != 201 {
		t.Fatalf("register status = %d, want 201", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, app, "POST", "/api/registration",
		`{"first_name":"Ana","last_name":"Diaz","email":"ana@example.com","password":"s3cret","password_confirm":"s3cret"}`)
	if resp.StatusCode != 400 {
		t.Errorf("duplicate email status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, app, "POST", "/api/registration",
		`{"first_name":"Bo","last_name":"Gil","email":"bo@example.com","password":"a","password_confirm":"b"}`)
	if resp.StatusCode != 400 {
		t.Errorf("password mismatch status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, app, "POST", "/api/login",
		`{"email":"ana@example.com","password":"wrong"}`)
	if resp.StatusCode != 400 {
		t.Errorf("bad password status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, app, "POST", "/api/login",
		`{"email":"ana@example.com","password":"s3cret"}`)
	if resp.StatusCode != 200 {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}
	var login struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &login)
	if login.Token == "" {
		t.Fatal("empty token")
	}

	// Guard off (default): billing routes stay open.
	resp = doJSON(t, app, "GET", "/api/clients", "")
	if resp.StatusCode != 200 {
		t.Errorf("unauthenticated status with guard off = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	// Guard on: bearer token required.
	t.Setenv("AUTH_ENABLED", "true")
	resp = doJSON(t, app, "GET", "/api/clients", "")
	if resp.StatusCode != 401 {
		t.Errorf("missing token status = %d, want 401", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, app, "GET", "/api/clients", "", "Authorization", "Bearer "+login.Token)
	if resp.StatusCode != 200 {
		t.Errorf("bearer status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, app, "GET", "/api/clients", "", "Authorization", "Bearer not-a-token")
	if resp.StatusCode != 401 {
		t.Errorf("garbage token status = %d, want 401", resp.StatusCode)
	}
	resp.Body.Close()
}
