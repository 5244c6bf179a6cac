package stores

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/insider/internal/client/client"
	"github.com/dmitrijs2005/insider/internal/client/models"
	"github.com/dmitrijs2005/insider/internal/client/services"
	"github.com/dmitrijs2005/insider/internal/client/tokenstore"
	"github.com/dmitrijs2005/insider/internal/client/validation"
	"github.com/dmitrijs2005/insider/internal/common"
	"github.com/dmitrijs2005/insider/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/errgroup"
)

// TokenStore persists session credentials. *tokenstore.Store implements it.
type TokenStore interface {
	Load(ctx context.Context) (*tokenstore.Credentials, error)
	Save(ctx context.Context, creds tokenstore.Credentials) error
	Clear(ctx context.Context) error
}

// Phase is the coarse position of the session in the sign-in flow.
type Phase int

const (
	PhaseAnonymous Phase = iota
	PhaseNeedsProfile
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseAnonymous:
		return "anonymous"
	case PhaseNeedsProfile:
		return "needs profile"
	case PhaseReady:
		return "ready"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// AuthState is a snapshot of the auth session.
//
// IsAuthenticated is true iff AccessToken is set and User is non-nil.
type AuthState struct {
	User            *models.User
	UserProfile     *models.UserWithProfile
	AccessToken     string
	RefreshToken    string
	IsAuthenticated bool
	IsLoading       bool
	// Error is the message of the last failed action, empty when none.
	Error string

	NeedsProfileCompletion bool
	Interests              []models.Interest
	Expertise              []models.ExpertiseArea
}

func (s AuthState) Phase() Phase {
	switch {
	case !s.IsAuthenticated:
		return PhaseAnonymous
	case s.NeedsProfileCompletion:
		return PhaseNeedsProfile
	default:
		return PhaseReady
	}
}

// AuthStore owns the signed-in session: it talks to the auth endpoints,
// persists credentials and keeps the HTTP client's bearer token in sync.
type AuthStore struct {
	client client.Client
	svc    services.AuthService
	tokens TokenStore
	log    logging.Logger

	mu         sync.Mutex
	state      AuthState
	profileReq tracker
	// epoch changes on every logout; actions started in an older epoch
	// must not write the session back.
	epoch uint64

	// persistMu orders writes of persisted credentials against Logout.
	persistMu sync.Mutex
}

func NewAuthStore(c client.Client, svc services.AuthService, tokens TokenStore, log logging.Logger) *AuthStore {
	if log == nil {
		log = logging.Discard()
	}
	return &AuthStore{client: c, svc: svc, tokens: tokens, log: log.With("store", "auth")}
}

func (s *AuthStore) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Session returns ctx bound to the current access token, for requests made
// on behalf of the signed-in user.
func (s *AuthStore) Session(ctx context.Context) context.Context {
	return client.WithAccessToken(ctx, s.State().AccessToken)
}

func (s *AuthStore) currentEpoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

func (s *AuthStore) update(fn func(st *AuthState)) {
	s.mu.Lock()
	fn(&s.state)
	s.mu.Unlock()
}

func (s *AuthStore) begin() {
	s.update(func(st *AuthState) {
		st.IsLoading = true
		st.Error = ""
	})
}

// fail records err as the current error and ends loading.
func (s *AuthStore) fail(err error, fallback string) *DisplayError {
	de := displayError(err, fallback)
	s.update(func(st *AuthState) {
		st.IsLoading = false
		st.Error = de.Message
	})
	return de
}

func (s *AuthStore) ClearError() {
	s.update(func(st *AuthState) { st.Error = "" })
}

// Initialize restores a persisted session. With nothing stored it makes no
// requests. Unreadable or partial credentials are discarded through Logout.
func (s *AuthStore) Initialize(ctx context.Context) error {
	s.update(func(st *AuthState) { st.IsLoading = true })

	creds, err := s.tokens.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "discarding stored session", "error", err)
		s.update(func(st *AuthState) { st.IsLoading = false })
		return s.Logout(ctx)
	}
	if creds == nil {
		s.update(func(st *AuthState) { st.IsLoading = false })
		return nil
	}

	s.client.SetAuthToken(creds.AccessToken)
	user := creds.User
	s.update(func(st *AuthState) {
		st.User = &user
		st.AccessToken = creds.AccessToken
		st.RefreshToken = creds.RefreshToken
		st.IsAuthenticated = true
		st.IsLoading = false
	})
	s.log.Debug(ctx, "session restored", "user_id", user.ID)

	// non-fatal, logged inside
	_ = s.CheckProfileStatus(ctx)
	return nil
}

// Register asks the backend to email a sign-up code and returns its
// confirmation message.
func (s *AuthStore) Register(ctx context.Context, email string) (string, error) {
	return s.sendCode(ctx, email, s.svc.Register)
}

// Login asks the backend to email a sign-in code.
func (s *AuthStore) Login(ctx context.Context, email string) (string, error) {
	return s.sendCode(ctx, email, s.svc.Login)
}

func (s *AuthStore) sendCode(ctx context.Context, email string, send func(context.Context, string) (*models.EmailVerification, error)) (string, error) {
	email = strings.TrimSpace(email)
	if err := validation.Email(email); err != nil {
		return "", s.fail(err, "")
	}

	s.begin()
	resp, err := send(ctx, email)
	if err != nil {
		return "", s.fail(err, "Failed to send verification code")
	}
	s.update(func(st *AuthState) { st.IsLoading = false })
	return resp.Message, nil
}

// VerifyCode exchanges a one-time code for a session. On success the
// credentials are persisted, the session becomes authenticated and the
// profile status is resolved; the result tells whether onboarding is still
// needed. On failure the session is left unchanged.
func (s *AuthStore) VerifyCode(ctx context.Context, email, code string) (needsProfile bool, err error) {
	if err := validation.Code(code); err != nil {
		return false, s.fail(err, "")
	}

	epoch := s.currentEpoch()
	s.begin()
	tok, err := s.svc.VerifyCode(ctx, email, code)
	if err != nil {
		return false, s.fail(err, "Invalid verification code")
	}
	if err := s.establish(ctx, epoch, tok.AccessToken, tok.RefreshToken, tok.User); err != nil {
		if errors.Is(err, ErrStale) {
			s.update(func(st *AuthState) { st.IsLoading = false })
			return false, err
		}
		return false, s.fail(err, "Failed to save session")
	}
	s.log.Info(ctx, "signed in", "user_id", tok.User.ID)

	_ = s.CheckProfileStatus(ctx)
	return s.State().NeedsProfileCompletion, nil
}

// establish persists the credentials, installs the bearer token and marks the
// session authenticated. Nothing changes if persisting fails, or if a logout
// happened since epoch was taken (ErrStale).
func (s *AuthStore) establish(ctx context.Context, epoch uint64, access, refresh string, user models.User) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if s.currentEpoch() != epoch {
		return ErrStale
	}

	creds := tokenstore.Credentials{AccessToken: access, RefreshToken: refresh, User: user}
	if err := s.tokens.Save(ctx, creds); err != nil {
		return err
	}

	s.client.SetAuthToken(access)
	s.update(func(st *AuthState) {
		st.User = &user
		st.AccessToken = access
		st.RefreshToken = refresh
		st.IsAuthenticated = true
		st.IsLoading = false
	})
	return nil
}

// CheckProfileStatus fetches profile/me and recomputes
// NeedsProfileCompletion. Failures are logged and leave the session
// authenticated.
func (s *AuthStore) CheckProfileStatus(ctx context.Context) error {
	s.mu.Lock()
	token := s.state.AccessToken
	n := s.profileReq.issue()
	s.mu.Unlock()

	if token == "" {
		return common.ErrNotAuthenticated
	}

	profile, err := s.svc.UserProfile(client.WithAccessToken(ctx, token))
	if err != nil {
		s.log.Warn(ctx, "profile status check failed", "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.profileReq.latest(n) || s.state.AccessToken != token {
		return ErrStale
	}
	s.state.UserProfile = profile
	s.state.NeedsProfileCompletion = profile.NeedsCompletion()
	return nil
}

// CompleteProfile validates and submits the onboarding form.
func (s *AuthStore) CompleteProfile(ctx context.Context, form models.ProfileCompletionForm) error {
	if err := validation.ProfileForm(&form); err != nil {
		return s.fail(err, "")
	}

	epoch := s.currentEpoch()
	token := s.State().AccessToken
	if token == "" {
		return s.fail(common.ErrNotAuthenticated, "")
	}

	s.begin()
	if err := s.svc.CompleteProfile(client.WithAccessToken(ctx, token), form); err != nil {
		return s.fail(err, "Failed to complete profile")
	}

	_ = s.CheckProfileStatus(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoading = false
	if s.epoch != epoch {
		return ErrStale
	}
	s.state.NeedsProfileCompletion = false
	return nil
}

// FetchInterestsAndExpertise loads both onboarding catalogues concurrently.
// On failure the previous catalogues are kept.
func (s *AuthStore) FetchInterestsAndExpertise(ctx context.Context) error {
	ctx = s.Session(ctx)

	var (
		interests []models.Interest
		expertise []models.ExpertiseArea
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		interests, err = s.svc.Interests(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		expertise, err = s.svc.Expertise(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Warn(ctx, "failed to fetch interests/expertise", "error", err)
		return displayError(err, "Failed to load interests")
	}

	s.update(func(st *AuthState) {
		st.Interests = interests
		st.Expertise = expertise
	})
	return nil
}

// RefreshSession trades the refresh token for a new token pair.
func (s *AuthStore) RefreshSession(ctx context.Context) error {
	epoch := s.currentEpoch()
	st := s.State()
	if st.RefreshToken == "" {
		return s.fail(common.ErrNotAuthenticated, "")
	}

	s.begin()
	tok, err := s.svc.RefreshToken(ctx, st.RefreshToken)
	if err != nil {
		return s.fail(err, "Failed to refresh session")
	}

	user := tok.User
	if user.ID == "" && st.User != nil {
		user = *st.User
	}
	refresh := tok.RefreshToken
	if refresh == "" {
		refresh = st.RefreshToken
	}
	if err := s.establish(ctx, epoch, tok.AccessToken, refresh, user); err != nil {
		if errors.Is(err, ErrStale) {
			s.update(func(st *AuthState) { st.IsLoading = false })
			return err
		}
		return s.fail(err, "Failed to save session")
	}
	s.log.Debug(ctx, "session refreshed", "user_id", user.ID)
	return nil
}

// FetchCurrentUser reloads auth/me and updates the cached user record. The
// record is dropped (ErrStale) if the session changed while loading.
func (s *AuthStore) FetchCurrentUser(ctx context.Context) (*models.User, error) {
	epoch := s.currentEpoch()
	st := s.State()
	if !st.IsAuthenticated {
		return nil, common.ErrNotAuthenticated
	}

	user, err := s.svc.CurrentUser(client.WithAccessToken(ctx, st.AccessToken))
	if err != nil {
		return nil, displayError(err, "Failed to load account")
	}

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	cur := s.State()
	if s.currentEpoch() != epoch || cur.AccessToken != st.AccessToken {
		return nil, ErrStale
	}

	creds := tokenstore.Credentials{AccessToken: cur.AccessToken, RefreshToken: cur.RefreshToken, User: *user}
	if err := s.tokens.Save(ctx, creds); err != nil {
		return nil, displayError(err, "Failed to save session")
	}

	u := *user
	s.update(func(st *AuthState) { st.User = &u })
	return user, nil
}

// TokenExpiry reads the exp claim of the access token. The token is not
// verified; the result is for display only.
func (s *AuthStore) TokenExpiry() (time.Time, bool) {
	token := s.State().AccessToken
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Logout ends the session. The backend is told on a best-effort basis; the
// local session is always cleared. The returned error only reports a failure
// to wipe persisted credentials.
func (s *AuthStore) Logout(ctx context.Context) error {
	token := s.State().AccessToken
	if token != "" {
		if err := s.svc.Logout(client.WithAccessToken(ctx, token)); err != nil {
			s.log.Warn(ctx, "logout request failed", "error", err)
		}
	}

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	s.epoch++
	s.mu.Unlock()

	clearErr := s.tokens.Clear(ctx)
	if clearErr != nil {
		s.log.Error(ctx, "failed to clear stored session", "error", clearErr)
	}

	s.client.SetAuthToken("")
	s.mu.Lock()
	s.profileReq.issue()
	s.state.User = nil
	s.state.UserProfile = nil
	s.state.AccessToken = ""
	s.state.RefreshToken = ""
	s.state.IsAuthenticated = false
	s.state.NeedsProfileCompletion = false
	s.state.Error = ""
	s.mu.Unlock()

	if clearErr != nil {
		return fmt.Errorf("logout: %w", clearErr)
	}
	return nil
}
