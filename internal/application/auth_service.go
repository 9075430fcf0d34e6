package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/brevio-cli/internal/domain"
	"github.com/bnema/brevio-cli/internal/ports"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	loginPath    = "/auth/login"
	registerPath = "/auth/register"
)

var errMissingAccessToken = errors.New("response carries no access token")

type LoginRequest struct {
	Identity string `json:"identity" field:"identity" validate:"required"`
	Password string `json:"password" field:"password" validate:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" field:"username" validate:"required,username"`
	Email    string `json:"email" field:"email" validate:"required,email"`
	Password string `json:"password" field:"password" validate:"required,password"`
}

type tokenWriter interface {
	SetToken(ctx context.Context, token string)
}

// AuthService exchanges credentials for an access token and hands it to the
// session.
type AuthService struct {
	gateway  ports.Gateway
	session  tokenWriter
	notifier ports.Notifier
	validate *validator.Validate
	logger   *zap.Logger
}

func NewAuthService(gateway ports.Gateway, session tokenWriter, notifier ports.Notifier, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &AuthService{
		gateway:  gateway,
		session:  session,
		notifier: notifier,
		validate: newValidator(),
		logger:   logger,
	}
}

func (s *AuthService) Login(ctx context.Context, identity, password string) error {
	request := LoginRequest{Identity: strings.TrimSpace(identity), Password: password}
	if err := validationError(s.validate.Struct(request)); err != nil {
		return err
	}

	return s.authenticate(ctx, loginPath, request, request.Identity)
}

// Register checks the username pattern, email format and password strength
// before anything is sent.
func (s *AuthService) Register(ctx context.Context, username, email, password string) error {
	request := RegisterRequest{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if err := validationError(s.validate.Struct(request)); err != nil {
		return err
	}

	return s.authenticate(ctx, registerPath, request, request.Username)
}

func (s *AuthService) authenticate(ctx context.Context, path string, body any, who string) error {
	raw, err := s.gateway.Post(ctx, path, body, "").Unpack()
	if err != nil {
		return err
	}

	token, err := accessToken(raw)
	if err != nil {
		s.logger.Warn("authentication response rejected", zap.String("path", path), zap.Error(err))
		if s.notifier != nil {
			s.notifier.Notify(domain.NewNotification(domain.NotificationError, "Could not sign in", err.Error()))
		}
		return fmt.Errorf("decode %s response: %w", path, err)
	}

	s.session.SetToken(ctx, token)
	if s.notifier != nil {
		s.notifier.Notify(domain.NewNotification(domain.NotificationSuccess, fmt.Sprintf("Welcome, %s", who), ""))
	}
	return nil
}

func accessToken(raw []byte) (string, error) {
	field, err := dataField(raw, "access_token")
	if err != nil {
		return "", err
	}
	if field == nil {
		return "", errMissingAccessToken
	}

	token, err := scalarText(field)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(token) == "" {
		return "", errMissingAccessToken
	}
	return token, nil
}
