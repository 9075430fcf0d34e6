package application

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/bnema/brevio-cli/internal/domain"
	"github.com/stretchr/testify/mock"
)

func mockAnyContext() interface{} {
	return mock.Anything
}

func tokenExpiringAt(t *testing.T, exp time.Time) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf(`{"sub":"user-1","exp":%d}`, exp.Unix())))
	return header + "." + payload + ".signature"
}

func notificationOf(kind domain.NotificationKind, title string) interface{} {
	return mock.MatchedBy(func(n domain.Notification) bool {
		return n.Kind == kind && n.Title == title
	})
}

// staticCatalog satisfies catalogReader without going through the gateway.
type staticCatalog struct {
	catalog domain.Catalog
	err     error
}

func (c staticCatalog) Catalog() (domain.Catalog, error) {
	return c.catalog, c.err
}

func testCatalog(t *testing.T) domain.Catalog {
	t.Helper()

	graph, err := domain.NewCombinationGraph([]domain.CategoryEntry{
		{Name: "general_content", Styles: []domain.StyleEntry{
			{Style: "summary", SourceTypes: []domain.SourceType{domain.SourceTypeVideo, domain.SourceTypeAudio, domain.SourceTypeText}},
			{Style: "bullet_points", SourceTypes: []domain.SourceType{domain.SourceTypeText}},
		}},
		{Name: "podcast", Styles: []domain.StyleEntry{
			{Style: "highlights", SourceTypes: []domain.SourceType{domain.SourceTypeAudio}},
		}},
	})
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}

	return domain.Catalog{
		Languages:     []domain.Option{{Value: "en", Label: "English"}, {Value: "es", Label: "Spanish"}},
		Models:        []domain.Option{{Value: "gpt-4o", Label: "GPT-4o"}},
		OutputFormats: []domain.Option{{Value: "markdown", Label: "Markdown"}},
		SummaryLevels: []domain.Option{{Value: "concise", Label: "concise (100 words approximately per response)"}},
		Combinations:  graph,
	}
}

func rawJSON(t *testing.T, value any) json.RawMessage {
	t.Helper()

	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}
