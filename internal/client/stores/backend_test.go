package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/insider/internal/client/client"
	"github.com/dmitrijs2005/insider/internal/client/localdb"
	"github.com/dmitrijs2005/insider/internal/client/services"
	"github.com/dmitrijs2005/insider/internal/client/tokenstore"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

const (
	testUserID     = "6a1f0c3e-1d2b-4c5d-8e9f-0a1b2c3d4e5f"
	testEventID    = "0d6c3f0e-5a7b-4b8e-9f4b-2f1d9f0e7a11"
	testInvestment = "9a4e1c2b-3d5f-4a6b-8c7d-1e2f3a4b5c6d"
	validCode      = "123456"
)

const testUserJSON = `{"id":"` + testUserID + `","email":"a@b.com","email_verified":true,"role":"user","is_active":true,"created_at":"2024-01-01T00:00:00","updated_at":"2024-01-01T00:00:00","last_login":null}`

// fakeBackend is an in-process stand-in for the REST API.
type fakeBackend struct {
	mu       sync.Mutex
	requests []string
	bearers  map[string]string
	emails   []string

	// profile is the JSON of the "profile" member of profile/me.
	profile     string
	failProfile bool
	failLogout  bool
	failEvents  bool
	accessToken string

	// failures of the write endpoints
	failComplete bool
	failJoin     bool
	failInterest bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{profile: "null", bearers: map[string]string{}, accessToken: "access-1"}
}

func (b *fakeBackend) set(fn func(b *fakeBackend)) {
	b.mu.Lock()
	fn(b)
	b.mu.Unlock()
}

func (b *fakeBackend) seen() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

func (b *fakeBackend) bearer(route string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bearers[route]
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (b *fakeBackend) handler() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			route := req.Method + " " + strings.TrimPrefix(req.URL.Path, "/api/v1/")
			b.mu.Lock()
			b.requests = append(b.requests, route)
			b.bearers[route] = strings.TrimPrefix(req.Header.Get("Authorization"), "Bearer ")
			b.mu.Unlock()
			next.ServeHTTP(w, req)
		})
	})

	sendCode := func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Email string `json:"email"`
		}
		_ = json.NewDecoder(req.Body).Decode(&body)
		b.mu.Lock()
		b.emails = append(b.emails, body.Email)
		b.mu.Unlock()
		if !strings.Contains(body.Email, "@") {
			writeJSON(w, http.StatusUnprocessableEntity, `{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address"}]}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"email":"`+body.Email+`","message":"Verification code sent to your email","expires_in_minutes":10}`)
	}
	api.HandleFunc("/auth/register", sendCode).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", sendCode).Methods(http.MethodPost)

	api.HandleFunc("/auth/verify", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Email string `json:"email"`
			Code  string `json:"code"`
		}
		_ = json.NewDecoder(req.Body).Decode(&body)
		if body.Code != validCode {
			writeJSON(w, http.StatusBadRequest, `{"detail":"Invalid or expired verification code"}`)
			return
		}
		b.mu.Lock()
		token := b.accessToken
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, `{"access_token":"`+token+`","refresh_token":"refresh-1","token_type":"bearer","user":`+testUserJSON+`}`)
	}).Methods(http.MethodPost)

	api.HandleFunc("/auth/refresh", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = json.NewDecoder(req.Body).Decode(&body)
		if body.RefreshToken != "refresh-1" {
			writeJSON(w, http.StatusUnauthorized, `{"detail":{"msg":"Invalid refresh token"}}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"access_token":"access-2","refresh_token":"refresh-2","token_type":"bearer","user":`+testUserJSON+`}`)
	}).Methods(http.MethodPost)

	api.HandleFunc("/auth/me", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, strings.Replace(testUserJSON, `"a@b.com"`, `"new@b.com"`, 1))
	}).Methods(http.MethodGet)

	api.HandleFunc("/auth/logout", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		fail := b.failLogout
		b.mu.Unlock()
		if fail {
			writeJSON(w, http.StatusInternalServerError, `{"detail":"boom"}`)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodPost)

	api.HandleFunc("/profile/me", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		fail, profile := b.failProfile, b.profile
		b.mu.Unlock()
		if fail {
			writeJSON(w, http.StatusServiceUnavailable, `{"detail":"maintenance"}`)
			return
		}
		if req.Header.Get("Authorization") == "" {
			writeJSON(w, http.StatusUnauthorized, `{"detail":"Not authenticated"}`)
			return
		}
		user := strings.TrimSuffix(testUserJSON, "}")
		writeJSON(w, http.StatusOK, user+`,"profile":`+profile+`}`)
	}).Methods(http.MethodGet)

	api.HandleFunc("/profile/complete", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		fail := b.failComplete
		b.mu.Unlock()
		if fail {
			writeJSON(w, http.StatusBadRequest, `{"detail":"Invalid interest selection"}`)
			return
		}
		var body struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
		}
		_ = json.NewDecoder(req.Body).Decode(&body)
		b.set(func(b *fakeBackend) {
			b.profile = `{"id":"p1","user_id":"` + testUserID + `","first_name":"` + body.FirstName + `","last_name":"` + body.LastName + `","profile_completed":true,"interests":[],"expertise":[],"professional_background":[]}`
		})
		writeJSON(w, http.StatusOK, `{"message":"Profile completed"}`)
	}).Methods(http.MethodPost)

	api.HandleFunc("/profile/interests/all", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `[{"id":"i1","name":"AI","created_at":"2024-01-01"}]`)
	}).Methods(http.MethodGet)
	api.HandleFunc("/profile/expertise/all", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `[{"id":"e1","name":"Marketing","created_at":"2024-01-01"}]`)
	}).Methods(http.MethodGet)

	api.HandleFunc("/events", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		fail := b.failEvents
		b.mu.Unlock()
		if fail {
			writeJSON(w, http.StatusBadGateway, ``)
			return
		}
		page := req.URL.Query().Get("page")
		writeJSON(w, http.StatusOK, `{"items":[{"id":"`+testEventID+`","title":"Founders dinner","status":"upcoming"}],"total":41,"page":`+page+`,"page_size":20,"has_more":true}`)
	}).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := mux.Vars(req)["id"]
		if id != testEventID {
			writeJSON(w, http.StatusNotFound, `{"detail":"Event not found"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"id":"`+id+`","title":"Founders dinner","user_status":null,"user_joined_group":false,"can_join_group":true}`)
	}).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}/attend", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"message":"ok"}`)
	}).Methods(http.MethodPost)
	api.HandleFunc("/events/{id}/join-group", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		fail := b.failJoin
		b.mu.Unlock()
		if fail {
			writeJSON(w, http.StatusForbidden, `{"detail":"Group is full"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"message":"ok"}`)
	}).Methods(http.MethodPost)

	api.HandleFunc("/investments", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		title := "Listed"
		if q.Get("featured") == "true" {
			title = "Featured"
		}
		writeJSON(w, http.StatusOK, `{"items":[{"id":"`+testInvestment+`","title":"`+title+`","status":"`+q.Get("status_filter")+`"}],"total":1,"page":1,"page_size":`+q.Get("page_size")+`,"has_more":false}`)
	}).Methods(http.MethodGet)
	api.HandleFunc("/investments/categories/list", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `["energy","real_estate"]`)
	}).Methods(http.MethodGet)
	api.HandleFunc("/investments/{id}", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":"`+mux.Vars(req)["id"]+`","title":"Solar","user_interested":false,"details":null}`)
	}).Methods(http.MethodGet)
	api.HandleFunc("/investments/{id}/interested", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		fail := b.failInterest
		b.mu.Unlock()
		if fail {
			writeJSON(w, http.StatusInternalServerError, `{"detail":{"msg":"Could not record interest"}}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"message":"ok"}`)
	}).Methods(http.MethodPost)

	return r
}

// harness wires real stores to the fake backend and an in-memory database.
type harness struct {
	backend *fakeBackend
	db      *sql.DB
	client  *client.HTTPClient
	tokens  *tokenstore.Store
	auth    *AuthStore
	events  *EventStore
	invest  *InvestmentStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	b := newFakeBackend()
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	c, err := client.NewHTTPClient(client.Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	db, err := localdb.Open(context.Background(), localdb.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tokens := tokenstore.New(db)
	return &harness{
		backend: b,
		db:      db,
		client:  c,
		tokens:  tokens,
		auth:    NewAuthStore(c, services.NewAuthService(c), tokens, nil),
		events:  NewEventStore(services.NewEventService(c), 0, nil),
		invest:  NewInvestmentStore(services.NewInvestmentService(c), 0, nil),
	}
}
