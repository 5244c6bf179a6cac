package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/insider/internal/client/client"
	"github.com/dmitrijs2005/insider/internal/client/config"
	"github.com/dmitrijs2005/insider/internal/client/localdb"
	"github.com/dmitrijs2005/insider/internal/client/tokenstore"
	"github.com/dmitrijs2005/insider/internal/logging"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

const (
	eventID      = "0d6c3f0e-5a7b-4b8e-9f4b-2f1d9f0e7a11"
	investmentID = "9a4e1c2b-3d5f-4a6b-8c7d-1e2f3a4b5c6d"
	goodCode     = "123456"
	userJSON     = `{"id":"6a1f0c3e-1d2b-4c5d-8e9f-0a1b2c3d4e5f","email":"a@b.com","email_verified":true,"role":"user","is_active":true,"created_at":"2024-01-01T00:00:00","updated_at":"2024-01-01T00:00:00"}`
)

// backend is a minimal stand-in for the REST API.
type backend struct {
	mu       sync.Mutex
	requests []string
	profile  string
	failList bool
	// interest ids of the last profile/complete request
	completed []string
}

func (b *backend) seen() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

func reply(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (b *backend) routes() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			b.mu.Lock()
			b.requests = append(b.requests, req.Method+" "+strings.TrimPrefix(req.URL.Path, "/api/v1/"))
			b.mu.Unlock()
			next.ServeHTTP(w, req)
		})
	})

	sendCode := func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Email string `json:"email"`
		}
		_ = json.NewDecoder(req.Body).Decode(&body)
		reply(w, http.StatusOK, `{"email":"`+body.Email+`","message":"Verification code sent to your email","expires_in_minutes":10}`)
	}
	api.HandleFunc("/auth/register", sendCode).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", sendCode).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Code string `json:"code"`
		}
		_ = json.NewDecoder(req.Body).Decode(&body)
		if body.Code != goodCode {
			reply(w, http.StatusBadRequest, `{"detail":"Invalid or expired verification code"}`)
			return
		}
		reply(w, http.StatusOK, `{"access_token":"access-1","refresh_token":"refresh-1","token_type":"bearer","user":`+userJSON+`}`)
	}).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, `{"access_token":"access-2","refresh_token":"refresh-2","token_type":"bearer","user":`+userJSON+`}`)
	}).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, userJSON)
	}).Methods(http.MethodGet)
	api.HandleFunc("/auth/logout", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodPost)

	api.HandleFunc("/profile/me", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		profile := b.profile
		b.mu.Unlock()
		if profile == "" {
			profile = "null"
		}
		reply(w, http.StatusOK, strings.TrimSuffix(userJSON, "}")+`,"profile":`+profile+`}`)
	}).Methods(http.MethodGet)
	api.HandleFunc("/profile/complete", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			FirstName   string   `json:"first_name"`
			LastName    string   `json:"last_name"`
			InterestIDs []string `json:"interest_ids"`
		}
		_ = json.NewDecoder(req.Body).Decode(&body)
		b.mu.Lock()
		b.profile = `{"id":"p1","first_name":"` + body.FirstName + `","last_name":"` + body.LastName +
			`","profile_completed":true,"interests":[{"id":"i1","name":"AI"}],"expertise":[],"professional_background":[]}`
		b.completed = body.InterestIDs
		b.mu.Unlock()
		reply(w, http.StatusOK, `{"message":"Profile completed"}`)
	}).Methods(http.MethodPost)
	api.HandleFunc("/profile/interests/all", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, `[{"id":"i1","name":"AI","created_at":"2024-01-01"},{"id":"i2","name":"Climate","created_at":"2024-01-01"}]`)
	}).Methods(http.MethodGet)
	api.HandleFunc("/profile/expertise/all", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, `[{"id":"e1","name":"Marketing","created_at":"2024-01-01"}]`)
	}).Methods(http.MethodGet)

	api.HandleFunc("/events", func(w http.ResponseWriter, req *http.Request) {
		page := req.URL.Query().Get("page")
		reply(w, http.StatusOK, `{"items":[{"id":"`+eventID+`","title":"Founders dinner","status":"upcoming","start_datetime":"2025-03-05T18:30:00Z","attendee_count":12}],"total":41,"page":`+page+`,"page_size":20,"has_more":true}`)
	}).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}", func(w http.ResponseWriter, req *http.Request) {
		if mux.Vars(req)["id"] != eventID {
			reply(w, http.StatusNotFound, `{"detail":"Event not found"}`)
			return
		}
		reply(w, http.StatusOK, `{"id":"`+eventID+`","title":"Founders dinner","status":"upcoming","capacity":40,"attendee_count":12,"user_status":null,"user_joined_group":false,"can_join_group":true}`)
	}).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}/attend", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, `{"message":"ok"}`)
	}).Methods(http.MethodPost)
	api.HandleFunc("/events/{id}/join-group", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, `{"message":"ok"}`)
	}).Methods(http.MethodPost)

	api.HandleFunc("/investments", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		if q.Get("featured") == "true" {
			reply(w, http.StatusOK, `{"items":[{"id":"`+investmentID+`","title":"Solar Farm","minimum_investment":5000,"expected_return":12.5,"risk_level":"low","status":"active"}],"total":1,"page":1,"page_size":10,"has_more":false}`)
			return
		}
		b.mu.Lock()
		fail := b.failList
		b.mu.Unlock()
		if fail {
			reply(w, http.StatusServiceUnavailable, `{"detail":"maintenance"}`)
			return
		}
		reply(w, http.StatusOK, `{"items":[{"id":"`+investmentID+`","title":"Wind Park","minimum_investment":250000,"status":"active"}],"total":1,"page":1,"page_size":20,"has_more":false}`)
	}).Methods(http.MethodGet)
	api.HandleFunc("/investments/categories/list", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, `["energy","real_estate"]`)
	}).Methods(http.MethodGet)
	api.HandleFunc("/investments/{id}", func(w http.ResponseWriter, req *http.Request) {
		reply(w, http.StatusOK, `{"id":"`+mux.Vars(req)["id"]+`","title":"Solar Farm","short_description":"Community solar","expected_return":12.5,"user_interested":false,`+
			`"details":{"detailed_description":"Forty hectares of panels.","team_members":[{"name":"Ada","role":"CEO"}],"faqs":[{"question":"Lockup?","answer":"Five years"}]}}`)
	}).Methods(http.MethodGet)
	api.HandleFunc("/investments/{id}/interested", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, `{"message":"ok"}`)
	}).Methods(http.MethodPost)

	return r
}

// newTestApp builds an App against a fake backend and an in-memory
// database, reading input from the given lines.
func newTestApp(t *testing.T, input ...string) (*App, *backend, *bytes.Buffer) {
	t.Helper()

	oldTerm := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = oldTerm })

	b := &backend{}
	srv := httptest.NewServer(b.routes())
	t.Cleanup(srv.Close)

	c, err := client.NewHTTPClient(client.Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	db, err := localdb.Open(context.Background(), localdb.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()

	a := newApp(cfg, db, c, tokenstore.New(db), logging.Discard())
	out := &bytes.Buffer{}
	a.out = out
	a.reader = bufio.NewReader(strings.NewReader(strings.Join(input, "\n") + "\n"))
	a.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }
	return a, b, out
}

// signIn logs the app in through the store, bypassing the prompts.
func signIn(t *testing.T, a *App) {
	t.Helper()
	ctx := context.Background()
	_, err := a.auth.Login(ctx, "a@b.com")
	require.NoError(t, err)
	_, err = a.auth.VerifyCode(ctx, "a@b.com", goodCode)
	require.NoError(t, err)
}
