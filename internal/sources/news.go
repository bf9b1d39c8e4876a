package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mentiontracker/brand-mentions/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	defaultNewsURL      = "https://newsapi.org/v2/everything"
	defaultNewsPageSize = 20
	removedTitle        = "[Removed]"
)

// NewsConfig configures the news search adapter
type NewsConfig struct {
	APIKey   string
	BaseURL  string
	Language string
	PageSize int
}

// NewsSource implements the NewsAPI "everything" search
type NewsSource struct {
	config     NewsConfig
	classifier SentimentClassifier
	client     *resty.Client
}

type newsResponse struct {
	Status       string        `json:"status"`
	Code         string        `json:"code"`
	Message      string        `json:"message"`
	TotalResults int           `json:"totalResults"`
	Articles     []newsArticle `json:"articles"`
}

type newsArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// NewNewsSource creates a new news source
func NewNewsSource(cfg NewsConfig, classifier SentimentClassifier) *NewsSource {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultNewsURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultNewsPageSize
	}
	return &NewsSource{
		config:     cfg,
		classifier: classifier,
		client: resty.New().
			SetTimeout(30*time.Second).
			SetHeader("User-Agent", "Brand-Mentions-Tracker/1.0"),
	}
}

func (n *NewsSource) GetName() string {
	return "news"
}

func (n *NewsSource) Kind() models.SourceKind {
	return models.SourceNews
}

func (n *NewsSource) IsEnabled() bool {
	return n.config.APIKey != ""
}

func (n *NewsSource) FetchMentions(ctx context.Context, query string, limit int) ([]models.Mention, error) {
	if !n.IsEnabled() {
		return nil, ErrDisabled
	}
	if limit <= 0 {
		limit = n.config.PageSize
	}

	params := map[string]string{
		"q":        query,
		"apiKey":   n.config.APIKey,
		"sortBy":   "publishedAt",
		"pageSize": strconv.Itoa(limit),
		"page":     "1",
	}
	if n.config.Language != "" {
		params["language"] = n.config.Language
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(n.config.BaseURL)

	if err != nil {
		// the url carries the api key, keep it out of the logs
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("news request failed: %w", err)
	}

	var searchResp newsResponse
	decodeErr := json.Unmarshal(resp.Body(), &searchResp)

	if resp.StatusCode() != 200 {
		if decodeErr == nil && searchResp.Message != "" {
			return nil, fmt.Errorf("news API returned status %d: %s", resp.StatusCode(), searchResp.Message)
		}
		return nil, fmt.Errorf("news API returned status %d", resp.StatusCode())
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode news response: %w", decodeErr)
	}

	if searchResp.Status == "error" {
		return nil, fmt.Errorf("news API error %s: %s", searchResp.Code, searchResp.Message)
	}

	return n.toMentions(searchResp.Articles), nil
}

func (n *NewsSource) toMentions(articles []newsArticle) []models.Mention {
	mentions := make([]models.Mention, 0, len(articles))

	for _, article := range articles {
		title := strings.TrimSpace(article.Title)
		if title == "" || title == removedTitle {
			logrus.Debugf("Skipping news article without usable title (%s)", article.URL)
			continue
		}
		if article.PublishedAt == "" {
			logrus.Debugf("Skipping news article %q without publishedAt", title)
			continue
		}

		mentions = append(mentions, models.Mention{
			ID:        "news_" + article.PublishedAt,
			Text:      title,
			Source:    models.SourceNews,
			URL:       article.URL,
			Timestamp: article.PublishedAt,
			Sentiment: n.classifier.Classify(title),
		})
	}

	return mentions
}
