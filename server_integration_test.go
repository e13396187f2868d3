package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/itsm-a-dev/BetTrackingBot/models"
	"github.com/itsm-a-dev/BetTrackingBot/pkg/render"
	"github.com/itsm-a-dev/BetTrackingBot/pkg/tracker"
)

type memStore struct {
	bets map[string]*models.TrackedBet
}

func (s *memStore) Load() (map[string]*models.TrackedBet, error) {
	out := make(map[string]*models.TrackedBet)
	for id, b := range s.bets {
		out[id] = b
	}
	return out, nil
}

func (s *memStore) Save(bets map[string]*models.TrackedBet) error {
	s.bets = make(map[string]*models.TrackedBet)
	for id, b := range bets {
		s.bets[id] = b
	}
	return nil
}

func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := defaultConfig()
	cfg.JWTSecret = "test-secret"
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	cfg.Operator.Username = "operator"
	cfg.Operator.PasswordHash = hash
	appCfg = cfg

	surface = render.NewLogSurface()
	engine = tracker.New(tracker.Config{
		Store:   &memStore{},
		Surface: surface,
	})

	r := gin.New()
	setupRoutes(r)
	return r
}

func performRequest(r http.Handler, method, path string, body []byte, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginToken(t *testing.T, r http.Handler) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": "operator", "password": "hunter2"})
	w := performRequest(r, http.MethodPost, "/login", body, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login returned empty token")
	}
	return resp.Token
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r := setupTestServer(t)
	body, _ := json.Marshal(map[string]string{"username": "operator", "password": "wrong"})
	w := performRequest(r, http.MethodPost, "/login", body, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := setupTestServer(t)
	w := performRequest(r, http.MethodGet, "/bets", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
	w = performRequest(r, http.MethodGet, "/bets", nil, "not-a-jwt")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with garbage token, got %d", w.Code)
	}
}

func TestHealthzIsPublic(t *testing.T) {
	r := setupTestServer(t)
	w := performRequest(r, http.MethodGet, "/healthz", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestMetricsIsPublic(t *testing.T) {
	r := setupTestServer(t)
	w := performRequest(r, http.MethodGet, "/metrics", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestManualBetLifecycle(t *testing.T) {
	r := setupTestServer(t)
	token := loginToken(t, r)

	line := 44.5
	betReq := map[string]any{
		"league": "NFL",
		"book":   "draftkings",
		"legs": []map[string]any{
			{
				"kind":   models.MarketTotal,
				"league": "NFL",
				"side":   models.SideOver,
				"line":   line,
				"game_teams": []string{
					"Dallas Cowboys", "Philadelphia Eagles",
				},
			},
		},
	}
	body, _ := json.Marshal(betReq)
	w := performRequest(r, http.MethodPost, "/bets", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", w.Code, w.Body.String())
	}
	var created models.TrackedBet
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created bet: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created bet has no id")
	}
	if created.BetType != models.BetSingle {
		t.Fatalf("expected single, got %s", created.BetType)
	}
	if len(created.Legs) != 1 || created.Legs[0].Result != models.ResultPending {
		t.Fatalf("expected one pending leg, got %+v", created.Legs)
	}

	w = performRequest(r, http.MethodGet, "/bets", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("list returned %d", w.Code)
	}
	var list struct {
		Bets []models.TrackedBet `json:"bets"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Bets) != 1 {
		t.Fatalf("expected 1 tracked bet, got %d", len(list.Bets))
	}

	w = performRequest(r, http.MethodGet, "/bets/"+created.ID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("get returned %d", w.Code)
	}

	w = performRequest(r, http.MethodDelete, "/bets/"+created.ID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("delete returned %d", w.Code)
	}
	w = performRequest(r, http.MethodGet, "/bets/"+created.ID, nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestManualBetRejectsEmptyLegs(t *testing.T) {
	r := setupTestServer(t)
	token := loginToken(t, r)
	body, _ := json.Marshal(map[string]any{"league": "NFL", "legs": []any{}})
	w := performRequest(r, http.MethodPost, "/bets", body, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
