// Package fetcher pulls readable text from an external page, used by the
// admin studio to seed narration text from a video's source link.
package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// maxBody caps the downloaded page size.
const maxBody = 5 * 1024 * 1024

// maxText caps the extracted text returned to the caller.
const maxText = 10 * 1024

// Page is the readable content of a fetched link.
type Page struct {
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
}

// IsURL checks if a string looks like a link rather than pasted narration.
func IsURL(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "www.")
}

// Fetch retrieves rawURL and extracts its title and readable text.
func Fetch(rawURL string) (*Page, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequest("GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "roohdodo/1.0 (narration-studio)")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	page := extractPage(string(body))
	if page.Text == "" {
		return nil, fmt.Errorf("no text content found")
	}
	return page, nil
}

// extractPage parses HTML and collects the document title plus readable body
// text, skipping navigation and script noise.
func extractPage(htmlContent string) *Page {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return &Page{}
	}

	skipTags := map[string]bool{
		"script": true, "style": true, "nav": true,
		"header": true, "footer": true, "aside": true,
		"noscript": true, "iframe": true,
	}

	page := &Page{}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skipTags[n.Data] {
				return
			}
			if n.Data == "title" && page.Title == "" && n.FirstChild != nil {
				page.Title = strings.TrimSpace(n.FirstChild.Data)
				return
			}
		}

		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				sb.WriteString(text)
				sb.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode {
			switch n.Data {
			case "p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "li", "br":
				sb.WriteString("\n")
			}
		}
	}
	walk(doc)

	text := strings.Join(strings.Fields(sb.String()), " ")
	if len(text) > maxText {
		text = text[:maxText] + "..."
	}
	page.Text = strings.TrimSpace(text)
	return page
}
