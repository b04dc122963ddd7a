package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NetShield/internal/domain"
)

const (
	defaultSearchURL = "https://news.google.com/search"
	maxSnippetRunes  = 400
	maxBodyParas     = 3
)

// GoogleNewsScanner scrapes the Google News search page and returns
// result cards as opaque snippets in page order (page order = relevance
// rank). With body fetching enabled it also pulls the first paragraphs
// of each linked article.
type GoogleNewsScanner struct {
	client    *http.Client
	searchURL string
	fetchBody bool
}

// NewGoogleNewsScanner wires an HTTP client; searchURL defaults to the
// public Google News search endpoint.
func NewGoogleNewsScanner(client *http.Client, searchURL string, fetchBody bool) *GoogleNewsScanner {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if searchURL == "" {
		searchURL = defaultSearchURL
	}
	return &GoogleNewsScanner{client: client, searchURL: searchURL, fetchBody: fetchBody}
}

// Name identifies the strategy inside the registry.
func (g *GoogleNewsScanner) Name() string {
	return "google-news"
}

// Search fetches the result page for the query and extracts up to limit
// snippets.
func (g *GoogleNewsScanner) Search(ctx context.Context, query string, limit int) ([]domain.NewsSnippet, error) {
	if limit <= 0 {
		return nil, nil
	}

	pageURL, err := buildSearchURL(g.searchURL, query)
	if err != nil {
		return nil, err
	}

	doc, err := g.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	base, _ := url.Parse(pageURL)
	results := make([]domain.NewsSnippet, 0, limit)

	doc.Find("article").EachWithBreak(func(i int, card *goquery.Selection) bool {
		text := collapseWhitespace(card.Text())
		if text == "" {
			return true
		}
		if g.fetchBody {
			if body := g.articleBody(ctx, base, card); body != "" {
				text = text + " " + body
			}
		}
		results = append(results, domain.NewsSnippet{Text: truncate(text, maxSnippetRunes)})
		return len(results) < limit
	})

	return results, nil
}

// articleBody follows the card's first link and extracts the leading
// paragraphs. Any failure just drops the enrichment.
func (g *GoogleNewsScanner) articleBody(ctx context.Context, base *url.URL, card *goquery.Selection) string {
	href, ok := card.Find("a[href]").First().Attr("href")
	if !ok || href == "" {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}

	doc, err := g.fetchDocument(ctx, ref.String())
	if err != nil {
		return ""
	}

	var paras []string
	doc.Find("p").EachWithBreak(func(i int, p *goquery.Selection) bool {
		text := collapseWhitespace(p.Text())
		if len(text) > 80 {
			paras = append(paras, text)
		}
		return len(paras) < maxBodyParas
	})

	return strings.Join(paras, " ")
}

func (g *GoogleNewsScanner) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "NetShield/1.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news provider returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

func buildSearchURL(base, query string) (string, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid search url %s: %w", base, err)
	}

	q := parsed.Query()
	q.Set("q", query)
	parsed.RawQuery = q.Encode()
	return parsed.String(), nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
