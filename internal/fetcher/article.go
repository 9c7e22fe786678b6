package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/NunoEsteves18/F1-Insights-App/internal/model"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// ArticleClient fetches news pages and extracts their main text with
// readability, falling back to structural heuristics when readability
// finds nothing.
type ArticleClient struct {
	httpClient *http.Client
	userAgent  string
	maxSizeMB  int
}

// NewArticleClient creates an article fetcher.
func NewArticleClient() *ArticleClient {
	return &ArticleClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
		userAgent: defaultUserAgent,
		maxSizeMB: 5,
	}
}

// Fetch downloads a page and extracts the article text.
func (c *ArticleClient) Fetch(ctx context.Context, rawURL string) (*model.Article, error) {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return nil, fmt.Errorf("URL must start with http:// or https://")
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	html, err := c.fetchHTML(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}

	article, err := c.extract(parsedURL, html)
	if err != nil {
		return nil, err
	}
	article.URL = rawURL
	return article, nil
}

func (c *ArticleClient) fetchHTML(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	// Browser-like headers, some news sites reject bare clients
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-GB,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "text/html") && !strings.Contains(contentType, "application/xhtml") {
		return "", fmt.Errorf("unsupported content type: %s", contentType)
	}

	maxBytes := int64(c.maxSizeMB * 1024 * 1024)
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	if int64(len(body)) >= maxBytes {
		return "", fmt.Errorf("content exceeds size limit of %dMB", c.maxSizeMB)
	}

	return string(body), nil
}

func (c *ArticleClient) extract(pageURL *url.URL, html string) (*model.Article, error) {
	result := &model.Article{}

	parsed, err := readability.FromReader(strings.NewReader(html), pageURL)
	if err == nil {
		result.Title = strings.TrimSpace(parsed.Title)
		result.SiteName = strings.TrimSpace(parsed.SiteName)
		result.Excerpt = strings.TrimSpace(parsed.Excerpt)
		result.Text = normalizeWhitespace(parsed.TextContent)
	}

	// Readability gives up on sparse pages; fall back to structural
	// heuristics before reporting an empty extraction.
	if result.Text == "" {
		title, text, err := extractWithHeuristics(html)
		if err != nil {
			return nil, err
		}
		if result.Title == "" {
			result.Title = title
		}
		result.Text = text
	}

	if result.Text == "" {
		return nil, fmt.Errorf("no article text could be extracted (empty page, paywall or blocked content)")
	}

	result.Length = len(result.Text)
	return result, nil
}

// extractWithHeuristics pulls text out of the article/main/body tags,
// stripping navigation chrome first.
func extractWithHeuristics(html string) (title, text string, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("script, style, nav, aside, footer, header, iframe, noscript").Remove()

	for _, selector := range []string{"article", "main", "body"} {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if t := normalizeWhitespace(sel.Text()); t != "" {
			return title, t, nil
		}
	}
	return title, "", nil
}

var whitespaceRe = regexp.MustCompile(`\s+`)

func normalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
