package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mentiontracker/brand-mentions/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	defaultRedditAuthURL   = "https://www.reddit.com/api/v1/access_token"
	defaultRedditAPIURL    = "https://oauth.reddit.com"
	defaultRedditSubreddit = "technology"
	defaultRedditLimit     = 10
	defaultRedditUserAgent = "BrandTrackerBot/0.0.1"
)

// RedditConfig configures the discussion adapter
type RedditConfig struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	APIURL       string
	Subreddit    string
	Limit        int
	UserAgent    string
}

// RedditSource implements the discussion source on top of Reddit search
type RedditSource struct {
	config     RedditConfig
	classifier SentimentClassifier
	client     *resty.Client
}

type redditAuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Error       string `json:"error"`
}

type redditSearchResponse struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Selftext  string  `json:"selftext"`
	Author    string  `json:"author"`
	Subreddit string  `json:"subreddit"`
	URL       string  `json:"url"`
	Permalink string  `json:"permalink"`
	Created   float64 `json:"created_utc"`
}

// NewRedditSource creates a new Reddit source
func NewRedditSource(cfg RedditConfig, classifier SentimentClassifier) *RedditSource {
	if cfg.AuthURL == "" {
		cfg.AuthURL = defaultRedditAuthURL
	}
	if cfg.APIURL == "" {
		cfg.APIURL = defaultRedditAPIURL
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if cfg.Subreddit == "" {
		cfg.Subreddit = defaultRedditSubreddit
	}
	if cfg.Limit <= 0 {
		cfg.Limit = defaultRedditLimit
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultRedditUserAgent
	}
	return &RedditSource{
		config:     cfg,
		classifier: classifier,
		client: resty.New().
			SetTimeout(30*time.Second).
			SetHeader("User-Agent", cfg.UserAgent),
	}
}

func (r *RedditSource) GetName() string {
	return "reddit"
}

func (r *RedditSource) Kind() models.SourceKind {
	return models.SourceDiscussion
}

func (r *RedditSource) IsEnabled() bool {
	return r.config.ClientID != "" && r.config.ClientSecret != ""
}

func (r *RedditSource) FetchMentions(ctx context.Context, query string, limit int) ([]models.Mention, error) {
	if !r.IsEnabled() {
		return nil, ErrDisabled
	}
	if limit <= 0 {
		limit = r.config.Limit
	}

	token, err := r.authenticate(ctx)
	if err != nil {
		return nil, fmt.Errorf("reddit authentication failed: %w", err)
	}

	posts, err := r.search(ctx, token, query, limit)
	if err != nil {
		return nil, err
	}

	return r.toMentions(posts), nil
}

func (r *RedditSource) authenticate(ctx context.Context) (string, error) {
	resp, err := r.client.R().
		SetContext(ctx).
		SetBasicAuth(r.config.ClientID, r.config.ClientSecret).
		SetFormData(map[string]string{
			"grant_type": "client_credentials",
		}).
		Post(r.config.AuthURL)

	if err != nil {
		return "", err
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("%w: token endpoint returned status %d", ErrAuth, resp.StatusCode())
	}

	var authResp redditAuthResponse
	if err := json.Unmarshal(resp.Body(), &authResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	if authResp.AccessToken == "" {
		if authResp.Error != "" {
			return "", fmt.Errorf("%w: %s", ErrAuth, authResp.Error)
		}
		return "", fmt.Errorf("%w: empty access token", ErrAuth)
	}

	return authResp.AccessToken, nil
}

func (r *RedditSource) search(ctx context.Context, token, query string, limit int) ([]redditPost, error) {
	searchURL := fmt.Sprintf("%s/r/%s/search", r.config.APIURL, r.config.Subreddit)

	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token).
		SetQueryParams(map[string]string{
			"q":           query,
			"restrict_sr": "1",
			"sort":        "new",
			"limit":       strconv.Itoa(limit),
		}).
		Get(searchURL)

	if err != nil {
		return nil, fmt.Errorf("reddit search request failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("reddit API returned status %d", resp.StatusCode())
	}

	var searchResp redditSearchResponse
	if err := json.Unmarshal(resp.Body(), &searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode reddit response: %w", err)
	}

	posts := make([]redditPost, 0, len(searchResp.Data.Children))
	for _, child := range searchResp.Data.Children {
		posts = append(posts, child.Data)
	}
	return posts, nil
}

func (r *RedditSource) toMentions(posts []redditPost) []models.Mention {
	mentions := make([]models.Mention, 0, len(posts))

	for _, post := range posts {
		title := strings.TrimSpace(post.Title)
		if title == "" || post.Created <= 0 {
			logrus.Debugf("Skipping malformed reddit post %q", post.ID)
			continue
		}

		created := int64(post.Created)
		body := strings.TrimSpace(post.Selftext)

		text := title
		if body != "" {
			text = title + ". " + body
		}

		link := post.URL
		if post.Permalink != "" {
			link = "https://reddit.com" + post.Permalink
		}

		mentions = append(mentions, models.Mention{
			ID:        "discuss_" + strconv.FormatInt(created, 10),
			Text:      text,
			Source:    models.SourceDiscussion,
			URL:       link,
			Timestamp: time.Unix(created, 0).UTC().Format(time.RFC3339),
			Sentiment: r.classifier.Classify(strings.TrimSpace(title + " " + body)),
		})
	}

	return mentions
}
