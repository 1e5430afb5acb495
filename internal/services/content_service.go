package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/hersaheli/saheli/internal/db"
	"github.com/hersaheli/saheli/internal/models"
)

var ErrContentListFailed = errors.New("list content failed")

type ContentQuery struct {
	Mode       string
	Type       string
	Week       string
	RenderHTML bool
}

type ContentRepository interface {
	List(filter db.ContentFilter) ([]models.StaticContent, error)
	Count() (int64, error)
	CreateBatch(items []models.StaticContent) error
}

type ContentService struct {
	content ContentRepository
}

func NewContentService(content ContentRepository) *ContentService {
	return &ContentService{content: content}
}

// ListContent applies the non-empty filters. A week that is not a plain number is ignored.
func (service *ContentService) ListContent(query ContentQuery) ([]models.StaticContent, error) {
	filter := db.ContentFilter{
		Mode: strings.TrimSpace(query.Mode),
		Type: strings.TrimSpace(query.Type),
	}
	if week, ok := parseWeekFilter(query.Week); ok {
		filter.Week = &week
	}

	items, err := service.content.List(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentListFailed, err)
	}
	if query.RenderHTML {
		for index := range items {
			items[index].Body = RenderMarkdown(items[index].Body)
		}
	}
	return items, nil
}

// SeedDefaultContent stores the built-in articles when the table is empty.
func (service *ContentService) SeedDefaultContent() (int, error) {
	count, err := service.content.Count()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	items := DefaultContent()
	if err := service.content.CreateBatch(items); err != nil {
		return 0, err
	}
	return len(items), nil
}

func RenderMarkdown(source string) string {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	document := parser.NewWithExtensions(extensions).Parse([]byte(source))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML})
	return string(markdown.Render(document, renderer))
}

func parseWeekFilter(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	for _, char := range raw {
		if char < '0' || char > '9' {
			return 0, false
		}
	}
	week, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return week, true
}

func DefaultContent() []models.StaticContent {
	week := func(value int) *int { return &value }
	return []models.StaticContent{
		{
			Title:        "Stay hydrated during your period",
			Body:         "Drinking enough water can ease **bloating** and headaches.\n\n- Aim for 8 glasses a day\n- Cut back on salty snacks",
			ContentType:  models.ContentTip,
			RelevantMode: models.ModeMenstrual,
		},
		{
			Title:        "Is an irregular cycle normal?",
			Body:         "Cycles between 21 and 35 days are common. Talk to a doctor if your cycle length changes suddenly or periods stop for more than three months.",
			ContentType:  models.ContentFAQ,
			RelevantMode: models.ModeMenstrual,
		},
		{
			Title:        "Tracking your fertile window",
			Body:         "Ovulation usually happens about **14 days before** your next period. The five days before ovulation and the day itself form your fertile window.",
			ContentType:  models.ContentGuide,
			RelevantMode: models.ModeTTC,
		},
		{
			Title:           "Week 8: your baby is growing fast",
			Body:            "## Week 8\n\nYour baby is about the size of a raspberry. Morning sickness often peaks around now, so eat small meals often.",
			ContentType:     models.ContentGuide,
			RelevantMode:    models.ModePregnancy,
			WeekOfPregnancy: week(8),
		},
		{
			Title:           "Week 20: halfway there",
			Body:            "## Week 20\n\nMost people have their anatomy scan this week. You may start to feel the first kicks.",
			ContentType:     models.ContentGuide,
			RelevantMode:    models.ModePregnancy,
			WeekOfPregnancy: week(20),
		},
		{
			Title:        "Rest when the baby rests",
			Body:         "Short naps add up. Accept help from family and friends with meals and chores.",
			ContentType:  models.ContentTip,
			RelevantMode: models.ModePostpartum,
		},
		{
			Title:        "Managing hot flashes",
			Body:         "Dress in layers, keep your bedroom cool and note what triggers your hot flashes.",
			ContentType:  models.ContentTip,
			RelevantMode: models.ModeMenopause,
		},
	}
}
