//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"
)

type registerResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Profession string `json:"profession"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type protectedResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type recordResponse struct {
	ID        string `json:"id"`
	PatientID string `json:"patient_id"`
	Diagnosis string `json:"diagnosis"`
	Treatment string `json:"treatment"`
}

func TestE2ESmoke(t *testing.T) {
	baseURL := envOrDefault("CLINICORE_BASE_URL", "http://localhost:8080")

	email := fmt.Sprintf("e2e-%d@example.com", time.Now().UnixNano())
	password := "e2e-secret-1"

	user := registerUser(t, baseURL, email, password, "Cardióloga")
	if user.Email != email {
		t.Fatalf("expected registered email %q, got %q", email, user.Email)
	}

	token := login(t, baseURL, email, password)

	greeting := getProtected(t, baseURL, token)
	want := fmt.Sprintf("Hola, %s. Estás autenticado.", user.Name)
	if greeting != want {
		t.Fatalf("expected greeting %q, got %q", want, greeting)
	}

	// The clinician profession must have produced a doctor profile.
	doctors := listJSON(t, baseURL, token, "/doctores")
	if !containsEmail(doctors, email) {
		t.Fatalf("expected a doctor profile for %s", email)
	}

	logout(t, baseURL, token)
}

func TestE2ERecordLifecycle(t *testing.T) {
	baseURL := envOrDefault("CLINICORE_BASE_URL", "http://localhost:8080")

	email := fmt.Sprintf("e2e-rec-%d@example.com", time.Now().UnixNano())
	password := "e2e-secret-1"
	registerUser(t, baseURL, email, password, "Internista")
	token := login(t, baseURL, email, password)

	var patient struct {
		ID string `json:"id"`
	}
	status := doJSON(t, http.MethodPost, baseURL+"/pacientes", token, map[string]any{
		"name":    "Luis",
		"surname": "Pérez",
		"gender":  "M",
	}, &patient)
	if status != http.StatusCreated {
		t.Fatalf("expected 201 from patient create, got %d", status)
	}

	var record recordResponse
	status = doJSON(t, http.MethodPost, baseURL+"/historiales", token, map[string]any{
		"patient_id": patient.ID,
		"diagnosis":  "hipertensión",
		"treatment":  "dieta baja en sodio",
	}, &record)
	if status != http.StatusCreated {
		t.Fatalf("expected 201 from record create, got %d", status)
	}

	var updated recordResponse
	status = doJSON(t, http.MethodPut, baseURL+"/historiales/"+record.ID, token, map[string]any{
		"patient_id": patient.ID,
		"diagnosis":  "hipertensión",
		"treatment":  "losartán 50mg",
	}, &updated)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from record update, got %d", status)
	}
	if updated.Treatment != "losartán 50mg" {
		t.Fatalf("treatment = %q", updated.Treatment)
	}

	status = doJSON(t, http.MethodDelete, baseURL+"/historiales/"+record.ID, token, nil, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from record delete, got %d", status)
	}

	var errResp errorResponse
	status = doJSON(t, http.MethodGet, baseURL+"/historiales/"+record.ID, token, nil, &errResp)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for deleted record, got %d", status)
	}
	if errResp.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND code, got %q", errResp.Code)
	}
}

func TestE2EAuthFailures(t *testing.T) {
	baseURL := envOrDefault("CLINICORE_BASE_URL", "http://localhost:8080")

	var errResp errorResponse
	status := doJSON(t, http.MethodGet, baseURL+"/protected", "", nil, &errResp)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}
	if errResp.Code != "UNAUTHORIZED" {
		t.Fatalf("expected UNAUTHORIZED code, got %q", errResp.Code)
	}

	status = doJSON(t, http.MethodGet, baseURL+"/protected", "not-a-token", nil, &errResp)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 with garbage token, got %d", status)
	}

	// Wrong password must be indistinguishable from an unknown email.
	form := url.Values{"username": {"nobody@example.com"}, "password": {"whatever"}}
	resp, err := http.PostForm(baseURL+"/login", form)
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad credentials, got %d", resp.StatusCode)
	}
}

func TestE2ENoPasswordLeak(t *testing.T) {
	baseURL := envOrDefault("CLINICORE_BASE_URL", "http://localhost:8080")

	email := fmt.Sprintf("e2e-leak-%d@example.com", time.Now().UnixNano())
	password := "super-secret-e2e"

	payload, err := json.Marshal(map[string]string{
		"name":     "Ana",
		"surname":  "García",
		"email":    email,
		"password": password,
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	resp, err := http.Post(baseURL+"/usuarios", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("register request: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from register, got %d: %s", resp.StatusCode, body)
	}
	if strings.Contains(string(body), password) {
		t.Error("register response leaked the plaintext password")
	}
	if strings.Contains(string(body), "argon2") {
		t.Error("register response leaked the password hash")
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func registerUser(t *testing.T, baseURL, email, password, profession string) registerResponse {
	t.Helper()

	var resp registerResponse
	status := doJSON(t, http.MethodPost, baseURL+"/usuarios", "", map[string]string{
		"name":       "Ana",
		"surname":    "García",
		"email":      email,
		"password":   password,
		"profession": profession,
	}, &resp)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from register, got %d", status)
	}
	if resp.ID == "" {
		t.Fatalf("register response missing id")
	}
	return resp
}

func login(t *testing.T, baseURL, email, password string) string {
	t.Helper()

	form := url.Values{"username": {email}, "password": {password}}
	resp, err := http.PostForm(baseURL+"/login", form)
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from login, got %d", resp.StatusCode)
	}

	var body loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if body.AccessToken == "" {
		t.Fatalf("login response missing access_token")
	}
	if body.TokenType != "bearer" {
		t.Fatalf("expected token_type bearer, got %q", body.TokenType)
	}
	return body.AccessToken
}

func getProtected(t *testing.T, baseURL, token string) string {
	t.Helper()

	var resp protectedResponse
	status := doJSON(t, http.MethodGet, baseURL+"/protected", token, nil, &resp)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from protected, got %d", status)
	}
	return resp.Message
}

func logout(t *testing.T, baseURL, token string) {
	t.Helper()

	var resp protectedResponse
	status := doJSON(t, http.MethodPost, baseURL+"/logout", token, nil, &resp)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from logout, got %d", status)
	}
}

func listJSON(t *testing.T, baseURL, token, path string) []map[string]any {
	t.Helper()

	var items []map[string]any
	status := doJSON(t, http.MethodGet, baseURL+path, token, nil, &items)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from GET %s, got %d", path, status)
	}
	return items
}

func containsEmail(items []map[string]any, email string) bool {
	for _, item := range items {
		if v, ok := item["email"].(string); ok && v == email {
			return true
		}
	}
	return false
}

func doJSON(t *testing.T, method, endpoint, token string, body any, out any) int {
	t.Helper()

	var buf io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		buf = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, endpoint, buf)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, endpoint, err)
	}
	defer resp.Body.Close()

	if out != nil {
		decoder := json.NewDecoder(resp.Body)
		if err := decoder.Decode(out); err != nil && err != io.EOF {
			t.Fatalf("decode response: %v", err)
		}
	}

	return resp.StatusCode
}
