package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/bnema/brevio-cli/internal/domain"
	"github.com/bnema/brevio-cli/internal/ports"
	"github.com/go-playground/validator/v10"
	"github.com/lightningnetwork/lnd/fn/v2"
	"go.uber.org/zap"
)

const summaryDocumentsPath = "/brevio/summary-documents"

type SubmissionResult struct {
	Data json.RawMessage
}

type sessionReader interface {
	Token() string
	IsLoggedIn() bool
}

type variantReader interface {
	ActiveVariant() domain.ToolVariant
}

// SubmissionService sends a complete selection to the summary endpoint. Only
// one submission runs at a time.
type SubmissionService struct {
	gateway  ports.Gateway
	session  sessionReader
	variants variantReader
	notifier ports.Notifier
	validate *validator.Validate
	logger   *zap.Logger

	inFlight atomic.Bool
}

func NewSubmissionService(gateway ports.Gateway, session sessionReader, variants variantReader, notifier ports.Notifier, logger *zap.Logger) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SubmissionService{
		gateway:  gateway,
		session:  session,
		variants: variants,
		notifier: notifier,
		validate: newValidator(),
		logger:   logger,
	}
}

// Submit validates selection locally and posts it. Local rejections come
// back as *domain.ValidationError before any network call; server failures
// come back as the gateway's already-notified error.
func (s *SubmissionService) Submit(ctx context.Context, selection domain.Selection) fn.Result[SubmissionResult] {
	if !s.inFlight.CompareAndSwap(false, true) {
		return fn.Err[SubmissionResult](domain.ErrSubmissionInFlight)
	}
	defer s.inFlight.Store(false)

	request := selection.Request()
	if err := s.check(request); err != nil {
		s.reject(err)
		return fn.Err[SubmissionResult](err)
	}

	token := ""
	if s.session != nil && s.session.IsLoggedIn() {
		token = s.session.Token()
	}

	s.logger.Info("submitting summary request",
		zap.String("category", request.Category),
		zap.String("style", request.Style),
		zap.Int("attachments", len(request.Attachments)),
	)

	raw, err := s.gateway.Post(ctx, summaryDocumentsPath, submissionForm{request: request}, token).Unpack()
	if err != nil {
		return fn.Err[SubmissionResult](err)
	}

	if s.notifier != nil {
		s.notifier.Notify(domain.NewNotification(domain.NotificationSuccess, "Form submitted successfully", ""))
	}
	return fn.Ok(SubmissionResult{Data: responseData(raw)})
}

// Missing lists the required fields selection does not fill yet.
func (s *SubmissionService) Missing(selection domain.Selection) []string {
	var validationErr *domain.ValidationError
	if errors.As(validationError(s.validate.Struct(selection.Request())), &validationErr) {
		return validationErr.Fields
	}
	return nil
}

func (s *SubmissionService) InFlight() bool {
	return s.inFlight.Load()
}

func (s *SubmissionService) check(request domain.SubmissionRequest) error {
	if err := validationError(s.validate.Struct(request)); err != nil {
		return err
	}

	variant := domain.ToolVariantYoutube
	if s.variants != nil {
		variant = s.variants.ActiveVariant()
	}

	for _, attachment := range request.Attachments {
		if err := checkAttachment(attachment, variant); err != nil {
			return &domain.ValidationError{Fields: []string{"attachments"}, Detail: err.Error()}
		}
	}
	return nil
}

func (s *SubmissionService) reject(err error) {
	if s.notifier == nil {
		return
	}

	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		return
	}

	title := "Please fill all required fields"
	if slices.Contains(validationErr.Fields, "attachments") {
		title = "Please upload a file"
	}
	s.notifier.Notify(domain.NewNotification(domain.NotificationError, title, validationErr.Error()))
}

func checkAttachment(attachment domain.Attachment, variant domain.ToolVariant) error {
	info, err := os.Stat(attachment.Path)
	if err != nil {
		return fmt.Errorf("%w: %q cannot be read", domain.ErrUnsupportedResource, attachment.Path)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %q is not a regular file", domain.ErrUnsupportedResource, attachment.Path)
	}

	name := attachment.Name
	if name == "" {
		name = filepath.Base(attachment.Path)
	}
	if !variant.AcceptsFile(name) {
		return fmt.Errorf("%w: the %s tool accepts %s, got %q", domain.ErrUnsupportedResource, variant, strings.Join(variant.AcceptedExtensions(), ", "), name)
	}
	return nil
}

// responseData extracts the `data` member. Bodies without one are returned
// whole.
func responseData(raw json.RawMessage) json.RawMessage {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	doc, err := unwrapDocument(raw)
	if err != nil {
		return raw
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(doc, &envelope); err != nil || envelope.Data == nil {
		return raw
	}
	return envelope.Data
}
