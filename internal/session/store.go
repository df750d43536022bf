package session

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
	"taskboard/internal/logging"
	"taskboard/internal/validation"
)

// Persistence stores a credential across process restarts.
type Persistence interface {
	SaveCredential(ctx context.Context, cred domain.Credential) error
	LoadCredential(ctx context.Context) (*domain.Credential, error)
	ClearCredential(ctx context.Context) error
	Close() error
}

// Store owns the session credential. It is the single place that knows
// whether a usable bearer token exists, in memory or persisted.
type Store struct {
	baseURL       string
	httpClient    *http.Client
	persistence   Persistence
	credValidator *validation.CredentialValidator

	mu            sync.Mutex
	credential    domain.Credential
	authenticated bool
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
	Error string `json:"error"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// New creates a session store. A previously persisted credential is loaded
// into memory best-effort; a broken credential database never blocks startup.
func New(baseURL string, timeout time.Duration, persistence Persistence) *Store {
	s := &Store{
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		httpClient:    &http.Client{Timeout: timeout},
		persistence:   persistence,
		credValidator: validation.NewCredentialValidator(),
	}

	if persistence != nil {
		if cred, err := persistence.LoadCredential(context.Background()); err == nil && cred != nil {
			s.credential = *cred
			s.authenticated = true
		} else if err != nil {
			logging.Debugf("session: could not load persisted credential: %v\n", err)
		}
	}

	return s
}

// Login authenticates against the server and stores the credential on
// success. Stored state is untouched on failure.
func (s *Store) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if err := s.credValidator.ValidateLogin(email, password); err != nil {
		return nil, errors.NewValidationError("invalid login input", err)
	}

	payload, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeAuthentication, "encode login request")
	}

	return s.authenticate(ctx, "/login", payload, "Login failed")
}

// Register creates a new account and stores the credential on success.
func (s *Store) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	if err := s.credValidator.ValidateRegistration(email, password, name); err != nil {
		return nil, errors.NewValidationError("invalid registration input", err)
	}

	payload, err := json.Marshal(registerRequest{Email: email, Password: password, Name: name})
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeAuthentication, "encode register request")
	}

	return s.authenticate(ctx, "/register", payload, "Registration failed")
}

// authenticate posts credentials to an auth endpoint and installs the
// returned token + user. Non-2xx responses surface the server's message.
func (s *Store) authenticate(ctx context.Context, path string, payload []byte, fallbackMessage string) (*domain.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeAuthentication, "build auth request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewRepositoryError("auth call", 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewRepositoryError("read auth response", resp.StatusCode, err)
	}

	var decoded authResponse
	if err := json.Unmarshal(body, &decoded); err != nil && resp.StatusCode < 300 {
		return nil, errors.NewRepositoryError("decode auth response", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := decoded.Error
		if message == "" {
			message = fallbackMessage
		}
		appErr := errors.NewAuthenticationError(message, nil)
		appErr.Status = resp.StatusCode
		return nil, appErr
	}

	cred := domain.Credential{
		Token: decoded.Token,
		User: domain.User{
			ID:    decoded.User.ID,
			Email: decoded.User.Email,
			Name:  decoded.User.Name,
		},
	}

	s.mu.Lock()
	s.credential = cred
	s.authenticated = true
	s.mu.Unlock()

	if s.persistence != nil {
		if err := s.persistence.SaveCredential(ctx, cred); err != nil {
			// The session still works for this process; only restarts lose it.
			logging.Debugf("session: could not persist credential: %v\n", err)
		}
	}

	user := cred.User
	return &user, nil
}

// Logout clears the credential in memory and in persistence. It makes no
// network call and is safe to invoke repeatedly, including from the
// repository client's unauthorized hook.
func (s *Store) Logout() {
	s.mu.Lock()
	s.credential = domain.Credential{}
	s.authenticated = false
	s.mu.Unlock()

	if s.persistence != nil {
		if err := s.persistence.ClearCredential(context.Background()); err != nil {
			logging.Debugf("session: could not clear persisted credential: %v\n", err)
		}
	}
}

// IsAuthenticated reports whether a credential is currently present. The
// in-memory flag and persisted presence are independently authoritative:
// either alone is enough to attempt authenticated calls (lazy validation).
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	authenticated := s.authenticated
	s.mu.Unlock()
	if authenticated {
		return true
	}

	if s.persistence != nil {
		if cred, err := s.persistence.LoadCredential(context.Background()); err == nil && cred != nil && cred.IsPresent() {
			return true
		}
	}
	return false
}

// Token returns the current bearer token, falling back to the persisted one.
func (s *Store) Token() string {
	s.mu.Lock()
	token := s.credential.Token
	s.mu.Unlock()
	if token != "" {
		return token
	}

	if s.persistence != nil {
		if cred, err := s.persistence.LoadCredential(context.Background()); err == nil && cred != nil {
			return cred.Token
		}
	}
	return ""
}

// CurrentUser returns the authenticated user, or nil when logged out.
func (s *Store) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.credential.IsPresent() {
		return nil
	}
	user := s.credential.User
	return &user
}

// Close releases the persistence backend.
func (s *Store) Close() error {
	if s.persistence != nil {
		return s.persistence.Close()
	}
	return nil
}
