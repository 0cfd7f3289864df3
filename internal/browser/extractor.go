package browser

import (
	"bytes"
	"fmt"
	"html"
	"net/url"

	readability "github.com/go-shiori/go-readability"
)

// Article is the readable part of a fetched page.
type Article struct {
	Title       string
	Byline      string
	Content     string // cleaned HTML
	TextContent string
	SiteName    string
	FinalURL    string
}

// Link is a numbered hyperlink found while rendering.
type Link struct {
	Index int
	Text  string
	URL   string
}

// Extract pulls the readable article out of an HTML response. Other
// content types are wrapped verbatim in a <pre> block.
func Extract(result *FetchResult) (*Article, error) {
	if !IsHTML(result.ContentType) {
		text := string(result.Body)
		return &Article{
			Title:       result.FinalURL,
			Content:     "<pre>" + html.EscapeString(text) + "</pre>",
			TextContent: text,
			FinalURL:    result.FinalURL,
		}, nil
	}

	base, err := url.Parse(result.FinalURL)
	if err != nil {
		return nil, fmt.Errorf("parsing URL: %w", err)
	}

	parsed, err := readability.FromReader(bytes.NewReader(result.Body), base)
	if err != nil {
		return nil, fmt.Errorf("extracting article: %w", err)
	}

	title := parsed.Title
	if title == "" {
		title = result.FinalURL
	}
	return &Article{
		Title:       title,
		Byline:      parsed.Byline,
		Content:     parsed.Content,
		TextContent: parsed.TextContent,
		SiteName:    parsed.SiteName,
		FinalURL:    result.FinalURL,
	}, nil
}
