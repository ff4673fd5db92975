package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/emart/inventory/internal/alerts"
	"github.com/emart/inventory/internal/auth"
	"github.com/emart/inventory/internal/db"
	"github.com/emart/inventory/internal/model"
	"github.com/emart/inventory/internal/session"
	"github.com/emart/inventory/internal/workflow"
)

const (
	testJWTSecret = "test-secret"
	testPassword  = "demo123"
)

func setupTestServer(t *testing.T) (*httptest.Server, *sql.DB) {
	t.Helper()
	database := db.NewTestDB(t)

	sessions := session.NewContext(database, &session.SettingsStore{DB: database},
		auth.SharedSecretVerifier{Secret: testPassword}, testJWTSecret)
	engine := workflow.NewEngine(database, nil, 10)
	scanner := alerts.NewScanner(database, nil)

	router := NewRouter(database, sessions, engine, scanner)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, database
}

func login(t *testing.T, server *httptest.Server, username, role string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": testPassword,
		"role":     role,
	})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	var loginResp map[string]string
	json.NewDecoder(resp.Body).Decode(&loginResp)
	token := loginResp["token"]
	if token == "" {
		t.Fatal("empty token from login")
	}
	return token
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func TestLoginEndpoint(t *testing.T) {
	server, _ := setupTestServer(t)

	// Wrong password.
	body, _ := json.Marshal(map[string]string{
		"username": "maker1", "password": "wrong", "role": model.RoleMaker,
	})
	resp, _ := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Missing fields.
	body, _ = json.Marshal(map[string]string{"username": "maker1"})
	resp, _ = http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for missing fields, got %d", resp.StatusCode)
	}
	var fieldsResp struct {
		Fields []string `json:"fields"`
	}
	json.NewDecoder(resp.Body).Decode(&fieldsResp)
	resp.Body.Close()
	if len(fieldsResp.Fields) != 2 {
		t.Errorf("expected 2 missing fields, got %v", fieldsResp.Fields)
	}

	// Unknown role.
	body, _ = json.Marshal(map[string]string{
		"username": "maker1", "password": testPassword, "role": "auditor",
	})
	resp, _ = http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown role, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestSubmitReviewFlow(t *testing.T) {
	server, _ := setupTestServer(t)
	makerToken := login(t, server, "maker1", model.RoleMaker)
	checkerToken := login(t, server, "checker1", model.RoleChecker)

	// Maker submits an entry.
	req, _ := authRequest("POST", server.URL+"/api/entries", makerToken, map[string]string{
		"name":     "Basmati Rice",
		"category": "Grains",
		"quantity": "100 kg",
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var entry model.Entry
	json.NewDecoder(resp.Body).Decode(&entry)
	resp.Body.Close()
	if entry.Status != model.EntryStatusPending {
		t.Errorf("expected pending status, got %q", entry.Status)
	}

	// Maker cannot list pending entries.
	req, _ = authRequest("GET", server.URL+"/api/entries/pending", makerToken, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for maker pending list, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Checker sees the entry in the pending list.
	req, _ = authRequest("GET", server.URL+"/api/entries/pending", checkerToken, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var pending []model.Entry
	json.NewDecoder(resp.Body).Decode(&pending)
	resp.Body.Close()
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending entry, got %d", len(pending))
	}

	// Checker approves.
	req, _ = authRequest("POST", server.URL+"/api/entries/"+itoa(pending[0].ID)+"/review", checkerToken,
		map[string]string{"decision": "approve"})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var reviewed model.Entry
	json.NewDecoder(resp.Body).Decode(&reviewed)
	resp.Body.Close()
	if reviewed.Status != model.EntryStatusApproved {
		t.Errorf("expected approved, got %q", reviewed.Status)
	}
	if reviewed.ReviewedBy != "checker1" {
		t.Errorf("expected reviewer checker1, got %q", reviewed.ReviewedBy)
	}

	// A second review conflicts.
	req, _ = authRequest("POST", server.URL+"/api/entries/"+itoa(pending[0].ID)+"/review", checkerToken,
		map[string]string{"decision": "reject"})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for double review, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Approved stock shows up in tracking.
	req, _ = authRequest("GET", server.URL+"/api/stock", checkerToken, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var stock []stockItemResponse
	json.NewDecoder(resp.Body).Decode(&stock)
	resp.Body.Close()
	if len(stock) != 1 || stock[0].Quantity != 100 {
		t.Errorf("expected 1 stock item with quantity 100, got %+v", stock)
	}
}

func TestSubmitValidation(t *testing.T) {
	server, _ := setupTestServer(t)
	token := login(t, server, "maker1", model.RoleMaker)

	req, _ := authRequest("POST", server.URL+"/api/entries", token, map[string]string{
		"name": "  ",
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var fieldsResp struct {
		Fields []string `json:"fields"`
	}
	json.NewDecoder(resp.Body).Decode(&fieldsResp)
	resp.Body.Close()
	if len(fieldsResp.Fields) != 3 {
		t.Errorf("expected 3 missing fields, got %v", fieldsResp.Fields)
	}
}

func TestCheckerCannotSubmit(t *testing.T) {
	server, _ := setupTestServer(t)
	token := login(t, server, "checker1", model.RoleChecker)

	req, _ := authRequest("POST", server.URL+"/api/entries", token, map[string]string{
		"name": "Basmati Rice", "category": "Grains", "quantity": "100 kg",
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for checker submit, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestUsersRequireAdmin(t *testing.T) {
	server, _ := setupTestServer(t)
	makerToken := login(t, server, "maker1", model.RoleMaker)
	adminToken := login(t, server, "admin1", model.RoleAdmin)

	req, _ := authRequest("GET", server.URL+"/api/users", makerToken, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for maker, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ = authRequest("POST", server.URL+"/api/users", adminToken, map[string]string{
		"username": "checker2", "password": "longenough", "role": model.RoleChecker,
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ = authRequest("GET", server.URL+"/api/users", adminToken, nil)
	resp, _ = http.DefaultClient.Do(req)
	var users []model.User
	json.NewDecoder(resp.Body).Decode(&users)
	resp.Body.Close()
	if len(users) != 1 {
		t.Errorf("expected 1 user, got %d", len(users))
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	server, _ := setupTestServer(t)
	token := login(t, server, "admin1", model.RoleAdmin)

	req, _ := authRequest("POST", server.URL+"/api/auth/logout", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ = authRequest("GET", server.URL+"/api/dashboard", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestDashboardMetrics(t *testing.T) {
	server, _ := setupTestServer(t)
	adminToken := login(t, server, "admin1", model.RoleAdmin)

	// Admin submission bypasses review and lands in stock.
	req, _ := authRequest("POST", server.URL+"/api/entries", adminToken, map[string]string{
		"name": "Sunflower Oil", "category": "Oils", "quantity": "20 liters",
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ = authRequest("GET", server.URL+"/api/dashboard", adminToken, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var metrics dashboardResponse
	json.NewDecoder(resp.Body).Decode(&metrics)
	resp.Body.Close()

	if metrics.TotalItems != 1 {
		t.Errorf("expected 1 total item, got %d", metrics.TotalItems)
	}
	if metrics.PendingEntries != 0 {
		t.Errorf("expected 0 pending entries, got %d", metrics.PendingEntries)
	}
	if len(metrics.StockByCategory) != 1 || metrics.StockByCategory[0].Quantity != 20 {
		t.Errorf("unexpected stock by category: %+v", metrics.StockByCategory)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
