package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bnema/brevio-cli/internal/domain"
	"github.com/bnema/brevio-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClientGetSetsAPIKeyAndReturnsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/brevio/languages", r.URL.Path)
		assert.Equal(t, "key-123", r.Header.Get("X-API-KEY"))
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = fmt.Fprint(w, `{"data":{"languages":{"en":"english"}}}`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL + "/", APIKey: "key-123"}, mocks.NewMockNotifier(t))

	body, err := client.Get(context.Background(), "/brevio/languages")
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"languages":{"en":"english"}}}`, string(body))
}

func TestClientGetNonSuccessReturnsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = fmt.Fprint(w, "upstream down")
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, mocks.NewMockNotifier(t))

	_, err := client.Get(context.Background(), "/brevio/models")
	require.Error(t, err)

	var transportErr *domain.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusBadGateway, transportErr.Status)
	assert.Equal(t, "/brevio/models", transportErr.Path)
	assert.ErrorContains(t, err, "status 502")
}

func TestClientGetNetworkFailureReturnsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := NewClient(Config{BaseURL: baseURL}, mocks.NewMockNotifier(t))

	_, err := client.Get(context.Background(), "/brevio/models")
	var transportErr *domain.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Zero(t, transportErr.Status)
	assert.ErrorContains(t, err, "perform request")
}

func TestClientPostJSONSetsHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
		assert.Equal(t, "key-123", r.Header.Get("X-API-KEY"))

		var payload map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "alice", payload["identity"])

		_, _ = fmt.Fprint(w, `{"data":{"access_token":"t"}}`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "key-123"}, mocks.NewMockNotifier(t))

	result := client.Post(context.Background(), "/auth/login", map[string]string{"identity": "alice"}, "token-abc")
	body, err := result.Unpack()
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"access_token":"t"}}`, string(body))
}

func TestClientPostOmitsBearerForEmptyToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth := r.Header["Authorization"]
		assert.False(t, hasAuth)
		_, _ = fmt.Fprint(w, `{"data":{}}`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, mocks.NewMockNotifier(t))

	result := client.Post(context.Background(), "/auth/login", map[string]string{}, "  ")
	assert.True(t, result.IsOk())
}

func TestClientPostServerFailureNotifiesOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = fmt.Fprint(w, `{"message":"Bad input","errors":[{"message":"field a"},{"message":"field b"}]}`)
	}))
	defer server.Close()

	notifier := mocks.NewMockNotifier(t)
	notifier.EXPECT().Notify(mock.MatchedBy(func(n domain.Notification) bool {
		return n.Kind == domain.NotificationError && n.Title == "Bad input" && n.Description == "field a<br>field b"
	})).Return().Once()

	client := NewClient(Config{BaseURL: server.URL}, notifier)

	result := client.Post(context.Background(), "/brevio/summary-documents", map[string]string{}, "")
	require.True(t, result.IsErr())

	_, err := result.Unpack()
	var gatewayErr *domain.GatewayError
	require.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, domain.FailureServer, gatewayErr.Kind)
	assert.Equal(t, http.StatusUnprocessableEntity, gatewayErr.Status)
	assert.Equal(t, "Bad input", gatewayErr.Title)
}

func TestClientPostSuccessStatusWithErrorBodyIsServerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"message":"Bad input","errors":[{"message":"field a"},{"message":"field b"}]}`)
	}))
	defer server.Close()

	notifier := mocks.NewMockNotifier(t)
	notifier.EXPECT().Notify(mock.MatchedBy(func(n domain.Notification) bool {
		return n.Kind == domain.NotificationError && n.Title == "Bad input" && n.Description == "field a<br>field b"
	})).Return().Once()

	client := NewClient(Config{BaseURL: server.URL}, notifier)

	_, err := client.Post(context.Background(), "/brevio/summary-documents", map[string]string{}, "").Unpack()
	var gatewayErr *domain.GatewayError
	require.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, domain.FailureServer, gatewayErr.Kind)
	assert.Equal(t, http.StatusOK, gatewayErr.Status)
	assert.ErrorIs(t, err, errWrappedFailure)
}

func TestClientPostSuccessBodiesThatAreNotErrorEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "data with message", body: `{"message":"Created","data":{"id":1}}`},
		{name: "empty errors list", body: `{"data":"ok","errors":[]}`},
		{name: "string document", body: `"{\"message\":\"wrapped\"}"`},
		{name: "array", body: `[{"message":"item"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			client := NewClient(Config{BaseURL: server.URL}, mocks.NewMockNotifier(t))

			data, err := client.Post(context.Background(), "/brevio/summary-documents", map[string]string{}, "").Unpack()
			require.NoError(t, err)
			assert.JSONEq(t, tt.body, string(data))
		})
	}
}

func TestClientPostTitleFallbacks(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		wantTitle       string
		wantDescription string
	}{
		{name: "detail error message", body: `{"detail":{"error_message":"Invalid credentials"}}`, wantTitle: "Invalid credentials"},
		{name: "detail string", body: `{"detail":"Not authenticated"}`, wantTitle: "Not authenticated"},
		{name: "message wins over detail", body: `{"message":"Top","detail":"Lower"}`, wantTitle: "Top"},
		{name: "empty object", body: `{}`, wantTitle: "Request failed"},
		{name: "not json", body: `<html>oops</html>`, wantTitle: "Request failed"},
		{name: "errors without title", body: `{"errors":[{"message":"only"}]}`, wantTitle: "Request failed", wantDescription: "only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			notifier := mocks.NewMockNotifier(t)
			notifier.EXPECT().Notify(mock.MatchedBy(func(n domain.Notification) bool {
				return n.Title == tt.wantTitle && n.Description == tt.wantDescription
			})).Return().Once()

			client := NewClient(Config{BaseURL: server.URL}, notifier)
			result := client.Post(context.Background(), "/auth/login", map[string]string{}, "")
			assert.True(t, result.IsErr())
		})
	}
}

func TestClientPostTransportFailureNotifies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	notifier := mocks.NewMockNotifier(t)
	notifier.EXPECT().Notify(mock.MatchedBy(func(n domain.Notification) bool {
		return n.Kind == domain.NotificationError && n.Title == "Request failed"
	})).Return().Once()

	client := NewClient(Config{BaseURL: baseURL}, notifier)

	_, err := client.Post(context.Background(), "/auth/login", map[string]string{}, "").Unpack()
	var gatewayErr *domain.GatewayError
	require.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, domain.FailureTransport, gatewayErr.Kind)
}

func TestClientPostMalformedSuccessBodyIsDecodeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"data":`)
	}))
	defer server.Close()

	notifier := mocks.NewMockNotifier(t)
	notifier.EXPECT().Notify(mock.Anything).Return().Once()

	client := NewClient(Config{BaseURL: server.URL}, notifier)

	_, err := client.Post(context.Background(), "/auth/login", map[string]string{}, "").Unpack()
	var gatewayErr *domain.GatewayError
	require.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, domain.FailureDecode, gatewayErr.Kind)
	assert.True(t, errors.Is(err, errMalformedResponse))
}

type formBody struct {
	fields map[string]string
	file   string
}

func (b formBody) WriteMultipart(w *multipart.Writer) error {
	for name, value := range b.fields {
		if err := w.WriteField(name, value); err != nil {
			return err
		}
	}
	part, err := w.CreateFormFile("files", "notes.pdf")
	if err != nil {
		return err
	}
	_, err = io.WriteString(part, b.file)
	return err
}

func TestClientPostMultipartUsesWriterBoundary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, "en", r.FormValue("language"))

		file, header, err := r.FormFile("files")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		content, _ := io.ReadAll(file)
		assert.Equal(t, "notes.pdf", header.Filename)
		assert.Equal(t, "%PDF-1.7", string(content))

		_, _ = fmt.Fprint(w, `{"data":{"id":"job-1"}}`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, mocks.NewMockNotifier(t))

	body := formBody{fields: map[string]string{"language": "en"}, file: "%PDF-1.7"}
	data, err := client.Post(context.Background(), "/brevio/summary-documents", body, "tok").Unpack()
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"id":"job-1"}}`, string(data))
}

func TestClientPostMultipartWriteFailureIsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		_, _ = fmt.Fprint(w, `{"data":{}}`)
	}))
	defer server.Close()

	notifier := mocks.NewMockNotifier(t)
	notifier.EXPECT().Notify(mock.Anything).Return().Once()

	body := mocks.NewMockMultipartBody(t)
	body.EXPECT().WriteMultipart(mock.Anything).Return(errors.New("open attachment: denied")).Once()

	client := NewClient(Config{BaseURL: server.URL}, notifier)

	_, err := client.Post(context.Background(), "/brevio/summary-documents", body, "").Unpack()
	var gatewayErr *domain.GatewayError
	require.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, domain.FailureTransport, gatewayErr.Kind)
}
