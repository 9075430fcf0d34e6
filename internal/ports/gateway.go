package ports

import (
	"context"
	"encoding/json"
	"mime/multipart"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// Gateway is the single access point to the remote API.
//
// Get propagates failures to the caller. Post never does: failures are
// reported to the notifier and handed back as an already-notified
// *domain.GatewayError inside the result.
type Gateway interface {
	Get(ctx context.Context, path string) (json.RawMessage, error)
	Post(ctx context.Context, path string, body any, token string) fn.Result[json.RawMessage]
}

// MultipartBody is a Post body sent as multipart/form-data instead of JSON.
type MultipartBody interface {
	WriteMultipart(w *multipart.Writer) error
}
