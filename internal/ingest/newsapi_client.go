package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type newsAPIClient struct {
	http *http.Client
}

func NewNewsAPIClient(httpClient *http.Client) FeedClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &newsAPIClient{
		http: httpClient,
	}
}

// FetchPage decodes the body whatever the HTTP status is, since the API
// reports failures in-band with status "error".
func (c *newsAPIClient) FetchPage(ctx context.Context, pageURL string) (APIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return APIResponse{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return APIResponse{}, err
	}
	defer resp.Body.Close()

	var out APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return APIResponse{}, fmt.Errorf("decode response (HTTP %d): %w", resp.StatusCode, err)
	}
	return out, nil
}

// BuildURL returns the first-page URL. The "topic" category means no
// category filter.
func BuildURL(baseURL, apiKey, lang, category string) string {
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}

	var sb strings.Builder
	sb.WriteString(baseURL)
	sb.WriteString(sep)
	sb.WriteString("country=")
	sb.WriteString(url.QueryEscape(lang))
	sb.WriteString("&apiKey=")
	sb.WriteString(url.QueryEscape(apiKey))

	if !strings.EqualFold(category, TopicCategory) {
		sb.WriteString("&category=")
		sb.WriteString(url.QueryEscape(strings.ToLower(category)))
	}
	return sb.String()
}

func PageURL(firstPageURL string, page int) string {
	return firstPageURL + "&page=" + strconv.Itoa(page)
}
