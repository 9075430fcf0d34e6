package application

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/bnema/brevio-cli/internal/domain"
	"github.com/bnema/brevio-cli/internal/ports"
	"go.uber.org/zap"
)

// SessionTokenKey is where the access token lives in the secret store.
const SessionTokenKey = "brevio/session/token"

// SessionService owns the access token. None of its operations return an
// error: persistence problems are logged and surfaced as warnings.
type SessionService struct {
	store     ports.SecretStore
	notifier  ports.Notifier
	navigator ports.Navigator
	clock     ports.Clock
	logger    *zap.Logger

	mu    sync.RWMutex
	token string

	subs subscribers[domain.Session]
}

func NewSessionService(store ports.SecretStore, notifier ports.Notifier, navigator ports.Navigator, clock ports.Clock, logger *zap.Logger) *SessionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SessionService{
		store:     store,
		notifier:  notifier,
		navigator: navigator,
		clock:     clock,
		logger:    logger,
	}
}

// Restore reads the persisted token. A missing token is a normal cold start.
func (s *SessionService) Restore(ctx context.Context) {
	token, err := s.store.Get(ctx, SessionTokenKey)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return
		}
		s.warn("restore session token", "Could not restore your session", err)
		return
	}

	s.mu.Lock()
	s.token = strings.TrimSpace(token)
	session := domain.Session{Token: s.token}
	s.mu.Unlock()

	s.subs.publish(session)
}

// SetToken keeps the token in memory even when persisting it fails.
func (s *SessionService) SetToken(ctx context.Context, token string) {
	token = strings.TrimSpace(token)

	s.mu.Lock()
	s.token = token
	session := domain.Session{Token: token}
	s.mu.Unlock()

	if token == "" {
		s.deletePersisted(ctx)
	} else if err := s.store.Put(ctx, SessionTokenKey, token); err != nil {
		s.warn("persist session token", "Your session could not be saved", err)
	}

	s.subs.publish(session)
}

func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *SessionService) Session() domain.Session {
	return domain.Session{Token: s.Token()}
}

func (s *SessionService) IsLoggedIn() bool {
	return s.Session().IsLoggedIn(s.clock.Now())
}

// Logout clears both copies of the token and sends the user home.
func (s *SessionService) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	s.deletePersisted(ctx)
	if s.navigator != nil {
		s.navigator.Home()
	}

	s.subs.publish(domain.Session{})
}

// Subscribe registers fn for every session change and returns a cancel func.
func (s *SessionService) Subscribe(fn func(domain.Session)) func() {
	return s.subs.add(fn)
}

func (s *SessionService) deletePersisted(ctx context.Context) {
	if err := s.store.Delete(ctx, SessionTokenKey); err != nil {
		s.warn("delete session token", "Your saved session could not be removed", err)
	}
}

func (s *SessionService) warn(op, title string, err error) {
	s.logger.Warn(op+" failed", zap.String("key", SessionTokenKey), zap.Error(err))
	if s.notifier != nil {
		s.notifier.Notify(domain.NewNotification(domain.NotificationWarning, title, err.Error()))
	}
}
