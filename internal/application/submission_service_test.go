package application

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bnema/brevio-cli/internal/domain"
	"github.com/bnema/brevio-cli/internal/ports/mocks"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixedSession struct {
	token    string
	loggedIn bool
}

func (s fixedSession) Token() string    { return s.token }
func (s fixedSession) IsLoggedIn() bool { return s.loggedIn }

func writeAttachment(t *testing.T, name, content string) domain.Attachment {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return domain.Attachment{Path: path, Name: name, Size: int64(len(content))}
}

func completeSelection(attachments ...domain.Attachment) domain.Selection {
	return domain.Selection{
		Language:     "en",
		Model:        "gpt-4o",
		Category:     "general_content",
		Style:        "summary",
		SourceType:   domain.SourceTypeText,
		SummaryLevel: "concise",
		OutputFormat: "markdown",
		Attachments:  attachments,
	}
}

func documentPanels() *PanelService {
	panels := NewPanelService(domain.DefaultPanelState())
	panels.SelectVariant(domain.ToolVariantDocument)
	return panels
}

func TestSubmitWithoutAttachmentsNeverCallsGateway(t *testing.T) {
	gateway := mocks.NewMockGateway(t)
	notifier := mocks.NewMockNotifier(t)
	service := NewSubmissionService(gateway, fixedSession{}, documentPanels(), notifier, nil)

	notifier.EXPECT().Notify(notificationOf(domain.NotificationError, "Please upload a file")).Return().Once()

	_, err := service.Submit(context.Background(), completeSelection()).Unpack()

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"attachments"}, validationErr.Fields)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSubmitReportsEveryMissingField(t *testing.T) {
	gateway := mocks.NewMockGateway(t)
	notifier := mocks.NewMockNotifier(t)
	service := NewSubmissionService(gateway, fixedSession{}, documentPanels(), notifier, nil)

	notifier.EXPECT().Notify(notificationOf(domain.NotificationError, "Please fill all required fields")).Return().Once()

	selection := domain.Selection{Language: "en", Attachments: []domain.Attachment{writeAttachment(t, "a.pdf", "pdf")}}
	_, err := service.Submit(context.Background(), selection).Unpack()

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"model", "category", "style", "outputFormat", "summaryLevel"}, validationErr.Fields)
}

func TestSubmitRejectsAttachmentsTheToolCannotRead(t *testing.T) {
	tests := []struct {
		name       string
		attachment func(t *testing.T) domain.Attachment
	}{
		{
			name:       "missing file",
			attachment: func(t *testing.T) domain.Attachment { return domain.Attachment{Path: filepath.Join(t.TempDir(), "gone.pdf"), Name: "gone.pdf"} },
		},
		{
			name:       "wrong extension",
			attachment: func(t *testing.T) domain.Attachment { return writeAttachment(t, "clip.mp4", "video") },
		},
		{
			name:       "directory",
			attachment: func(t *testing.T) domain.Attachment { return domain.Attachment{Path: t.TempDir(), Name: "folder.pdf"} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := mocks.NewMockGateway(t)
			notifier := mocks.NewMockNotifier(t)
			service := NewSubmissionService(gateway, fixedSession{}, documentPanels(), notifier, nil)
			notifier.EXPECT().Notify(notificationOf(domain.NotificationError, "Please upload a file")).Return().Once()

			_, err := service.Submit(context.Background(), completeSelection(tt.attachment(t))).Unpack()

			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, []string{"attachments"}, validationErr.Fields)
			assert.NotEmpty(t, validationErr.Detail)
		})
	}
}

func TestSubmitPostsMultipartFormWithToken(t *testing.T) {
	gateway := mocks.NewMockGateway(t)
	notifier := mocks.NewMockNotifier(t)
	service := NewSubmissionService(gateway, fixedSession{token: "tok", loggedIn: true}, documentPanels(), notifier, nil)

	attachment := writeAttachment(t, "report.pdf", "%PDF-1.7 body")

	var form submissionForm
	gateway.EXPECT().Post(mockAnyContext(), "/brevio/summary-documents", mock.AnythingOfType("application.submissionForm"), "tok").
		Run(func(_ context.Context, _ string, body interface{}, _ string) { form = body.(submissionForm) }).
		Return(fn.Ok(json.RawMessage(`{"data":{"summary":"short"}}`)))
	notifier.EXPECT().Notify(notificationOf(domain.NotificationSuccess, "Form submitted successfully")).Return().Once()

	result, err := service.Submit(context.Background(), completeSelection(attachment)).Unpack()
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":"short"}`, string(result.Data))

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteMultipart(writer))
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	fields := map[string]string{}
	var files []string
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(part)
		require.NoError(t, err)
		if part.FileName() != "" {
			assert.Equal(t, "files", part.FormName())
			mediaType, _, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
			require.NoError(t, err)
			assert.Equal(t, "application/pdf", mediaType)
			files = append(files, part.FileName()+":"+string(data))
			continue
		}
		fields[part.FormName()] = string(data)
	}

	assert.Equal(t, map[string]string{
		"language":      "en",
		"model":         "gpt-4o",
		"category":      "general_content",
		"style":         "summary",
		"format":        "markdown",
		"summary_level": "concise",
	}, fields)
	assert.Equal(t, []string{"report.pdf:%PDF-1.7 body"}, files)
}

func TestSubmitOmitsTokenWhenSessionExpired(t *testing.T) {
	gateway := mocks.NewMockGateway(t)
	notifier := mocks.NewMockNotifier(t)
	service := NewSubmissionService(gateway, fixedSession{token: "stale", loggedIn: false}, documentPanels(), notifier, nil)

	gateway.EXPECT().Post(mockAnyContext(), "/brevio/summary-documents", mock.Anything, "").
		Return(fn.Ok[json.RawMessage](nil))
	notifier.EXPECT().Notify(mock.Anything).Return().Once()

	result, err := service.Submit(context.Background(), completeSelection(writeAttachment(t, "a.docx", "doc"))).Unpack()
	require.NoError(t, err)
	assert.Nil(t, result.Data)
}

func TestSubmitPassesGatewayFailureThroughSilently(t *testing.T) {
	gateway := mocks.NewMockGateway(t)
	notifier := mocks.NewMockNotifier(t)
	service := NewSubmissionService(gateway, fixedSession{}, documentPanels(), notifier, nil)

	gatewayErr := &domain.GatewayError{Kind: domain.FailureServer, Status: 422, Title: "Bad input"}
	gateway.EXPECT().Post(mockAnyContext(), "/brevio/summary-documents", mock.Anything, "").
		Return(fn.Err[json.RawMessage](gatewayErr))

	_, err := service.Submit(context.Background(), completeSelection(writeAttachment(t, "a.pdf", "pdf"))).Unpack()

	var got *domain.GatewayError
	require.ErrorAs(t, err, &got)
	assert.Same(t, gatewayErr, got)
}

func TestSubmitRejectsConcurrentSubmission(t *testing.T) {
	gateway := mocks.NewMockGateway(t)
	notifier := mocks.NewMockNotifier(t)
	service := NewSubmissionService(gateway, fixedSession{}, documentPanels(), notifier, nil)

	entered := make(chan struct{})
	release := make(chan struct{})
	gateway.EXPECT().Post(mockAnyContext(), "/brevio/summary-documents", mock.Anything, "").
		RunAndReturn(func(context.Context, string, interface{}, string) fn.Result[json.RawMessage] {
			close(entered)
			<-release
			return fn.Ok(json.RawMessage(`{"data":{}}`))
		}).Once()
	notifier.EXPECT().Notify(mock.Anything).Return().Once()

	selection := completeSelection(writeAttachment(t, "a.pdf", "pdf"))

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = service.Submit(context.Background(), selection).Unpack()
	}()

	<-entered
	assert.True(t, service.InFlight())
	_, err := service.Submit(context.Background(), selection).Unpack()
	assert.ErrorIs(t, err, domain.ErrSubmissionInFlight)

	close(release)
	wg.Wait()
	require.NoError(t, firstErr)
	assert.False(t, service.InFlight())
}

func TestSubmissionMissingListsUnsetFields(t *testing.T) {
	service := NewSubmissionService(mocks.NewMockGateway(t), fixedSession{}, documentPanels(), mocks.NewMockNotifier(t), nil)

	assert.Equal(t, []string{"style", "attachments"}, service.Missing(domain.Selection{
		Language: "en", Model: "gpt-4o", Category: "podcast", OutputFormat: "markdown", SummaryLevel: "concise",
	}))
	assert.Empty(t, service.Missing(completeSelection(domain.Attachment{Path: "/x.pdf", Name: "x.pdf"})))
}
