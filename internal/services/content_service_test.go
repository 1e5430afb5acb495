package services

import (
	"strings"
	"testing"

	"github.com/hersaheli/saheli/internal/db"
	"github.com/hersaheli/saheli/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubContentRepository struct {
	items      []models.StaticContent
	lastFilter db.ContentFilter
	created    int
}

func (stub *stubContentRepository) List(filter db.ContentFilter) ([]models.StaticContent, error) {
	stub.lastFilter = filter
	items := make([]models.StaticContent, len(stub.items))
	copy(items, stub.items)
	return items, nil
}

func (stub *stubContentRepository) Count() (int64, error) {
	return int64(len(stub.items)), nil
}

func (stub *stubContentRepository) CreateBatch(items []models.StaticContent) error {
	stub.created += len(items)
	stub.items = append(stub.items, items...)
	return nil
}

func TestContentServiceWeekFilterRequiresDigits(t *testing.T) {
	repo := &stubContentRepository{}
	service := NewContentService(repo)

	_, err := service.ListContent(ContentQuery{Mode: " pregnancy ", Week: "12"})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.Week)
	assert.Equal(t, 12, *repo.lastFilter.Week)
	assert.Equal(t, "pregnancy", repo.lastFilter.Mode)

	for _, raw := range []string{"", "twelve", "-3", "1.5", " "} {
		_, err := service.ListContent(ContentQuery{Week: raw})
		require.NoError(t, err)
		assert.Nil(t, repo.lastFilter.Week, "week %q", raw)
	}
}

func TestContentServiceRendersMarkdownOnRequest(t *testing.T) {
	repo := &stubContentRepository{items: []models.StaticContent{{Title: "Tip", Body: "Drink **water**"}}}
	service := NewContentService(repo)

	raw, err := service.ListContent(ContentQuery{})
	require.NoError(t, err)
	assert.Equal(t, "Drink **water**", raw[0].Body)

	rendered, err := service.ListContent(ContentQuery{RenderHTML: true})
	require.NoError(t, err)
	assert.Contains(t, rendered[0].Body, "<strong>water</strong>")
	assert.Equal(t, "Drink **water**", repo.items[0].Body)
}

func TestRenderMarkdownSkipsRawHTML(t *testing.T) {
	rendered := RenderMarkdown("hello <script>alert(1)</script>")
	assert.False(t, strings.Contains(rendered, "<script>"))
}

func TestContentServiceSeedsOnlyEmptyTable(t *testing.T) {
	repo := &stubContentRepository{}
	service := NewContentService(repo)

	inserted, err := service.SeedDefaultContent()
	require.NoError(t, err)
	assert.Equal(t, len(DefaultContent()), inserted)

	inserted, err = service.SeedDefaultContent()
	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.Equal(t, len(DefaultContent()), repo.created)
}

func TestDefaultContentUsesKnownEnums(t *testing.T) {
	for _, item := range DefaultContent() {
		assert.True(t, models.IsValidHealthMode(item.RelevantMode), item.Title)
		assert.Contains(t, []string{models.ContentTip, models.ContentFAQ, models.ContentGuide}, item.ContentType)
		if item.WeekOfPregnancy != nil {
			assert.Equal(t, models.ModePregnancy, item.RelevantMode)
		}
	}
}

func TestChatbotReplyIsFixed(t *testing.T) {
	assert.Equal(t, ChatbotPlaceholderReply, ChatbotReply("Is cramping normal?"))
	assert.Equal(t, ChatbotPlaceholderReply, ChatbotReply(""))
}
