package browser

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/glamour"
)

// Page is a rendered article ready for a viewport.
type Page struct {
	Title    string
	Content  string // styled terminal text
	Links    []Link
	FinalURL string
}

// Lines returns the rendered content split into lines.
func (p *Page) Lines() []string {
	return strings.Split(strings.TrimRight(p.Content, "\n"), "\n")
}

// glamour renderers are expensive to build; keep one per wrap width.
var (
	termRenderer      *glamour.TermRenderer
	termRendererWidth int
	termRendererMu    sync.Mutex
)

// Render converts an article to terminal text at the given width. Links are
// numbered in document order and resolved against the article's url.
func Render(article *Article, width int) *Page {
	if width <= 0 {
		width = 80
	}
	wrap := width - 4
	if wrap > 100 {
		wrap = 100
	}

	page := &Page{Title: article.Title, FinalURL: article.FinalURL}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		page.Content = article.TextContent
		return page
	}

	md := &markdown{}
	if base, err := url.Parse(article.FinalURL); err == nil && base.IsAbs() {
		md.base = base
	}
	if article.Title != "" {
		md.sb.WriteString("# " + article.Title + "\n\n")
	}
	if article.Byline != "" {
		md.sb.WriteString("*" + article.Byline + "*\n\n")
	}
	doc.Find("body").Children().Each(func(_ int, s *goquery.Selection) {
		md.block(s, 0)
	})

	out, err := renderMarkdown(md.sb.String(), wrap)
	if err != nil {
		out = md.sb.String()
	}
	page.Content = out
	page.Links = md.links
	return page
}

func renderMarkdown(src string, width int) (string, error) {
	termRendererMu.Lock()
	defer termRendererMu.Unlock()

	if termRenderer == nil || termRendererWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		termRenderer, termRendererWidth = r, width
	}
	return termRenderer.Render(src)
}

// markdown accumulates the markdown form of an HTML tree.
type markdown struct {
	sb    strings.Builder
	base  *url.URL
	links []Link
}

var headingLevels = map[string]int{"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6}

func (m *markdown) block(s *goquery.Selection, depth int) {
	tag := goquery.NodeName(s)
	if level, ok := headingLevels[tag]; ok {
		if text := strings.TrimSpace(s.Text()); text != "" {
			m.sb.WriteString(strings.Repeat("#", level) + " " + text + "\n\n")
		}
		return
	}

	switch tag {
	case "p", "figcaption":
		var sb strings.Builder
		m.inline(s, &sb)
		if text := strings.TrimSpace(sb.String()); text != "" {
			if tag == "figcaption" {
				text = "*" + text + "*"
			}
			m.sb.WriteString(text + "\n\n")
		}
	case "ul", "ol":
		m.list(s, tag == "ol", depth)
		m.sb.WriteString("\n")
	case "blockquote":
		inner := &markdown{base: m.base, links: m.links}
		s.Children().Each(func(_ int, c *goquery.Selection) { inner.block(c, 0) })
		m.links = inner.links
		for _, line := range strings.Split(strings.TrimRight(inner.sb.String(), "\n"), "\n") {
			m.sb.WriteString("> " + line + "\n")
		}
		m.sb.WriteString("\n")
	case "pre":
		m.codeBlock(s)
	case "hr":
		m.sb.WriteString("---\n\n")
	case "table":
		m.table(s)
	case "img":
		alt, _ := s.Attr("alt")
		if alt == "" {
			alt = "image"
		}
		m.sb.WriteString("[" + alt + "]\n\n")
	case "div", "article", "section", "main", "header", "footer", "figure", "span":
		s.Children().Each(func(_ int, c *goquery.Selection) { m.block(c, depth) })
	default:
		var sb strings.Builder
		m.inline(s, &sb)
		if text := strings.TrimSpace(sb.String()); text != "" {
			m.sb.WriteString(text + "\n\n")
		}
	}
}

func (m *markdown) inline(s *goquery.Selection, sb *strings.Builder) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		switch goquery.NodeName(c) {
		case "#text":
			sb.WriteString(c.Text())
		case "a":
			sb.WriteString(m.link(c))
		case "strong", "b":
			sb.WriteString("**")
			m.inline(c, sb)
			sb.WriteString("**")
		case "em", "i":
			sb.WriteString("*")
			m.inline(c, sb)
			sb.WriteString("*")
		case "code":
			sb.WriteString("`" + c.Text() + "`")
		case "br":
			sb.WriteString("  \n")
		case "ul", "ol":
			// nested lists are emitted by list
		default:
			m.inline(c, sb)
		}
	})
}

func (m *markdown) link(s *goquery.Selection) string {
	href, _ := s.Attr("href")
	text := strings.TrimSpace(s.Text())
	if href == "" || strings.HasPrefix(href, "#") {
		return text
	}
	if m.base != nil {
		if ref, err := url.Parse(href); err == nil {
			href = m.base.ResolveReference(ref).String()
		}
	}
	if text == "" {
		text = href
	}
	n := len(m.links) + 1
	m.links = append(m.links, Link{Index: n, Text: text, URL: href})
	return fmt.Sprintf("%s **[%d]**", text, n)
}

func (m *markdown) list(s *goquery.Selection, ordered bool, depth int) {
	indent := strings.Repeat("  ", depth)
	s.ChildrenFiltered("li").Each(func(i int, li *goquery.Selection) {
		bullet := "- "
		if ordered {
			bullet = fmt.Sprintf("%d. ", i+1)
		}
		var sb strings.Builder
		m.inline(li, &sb)
		m.sb.WriteString(indent + bullet + strings.TrimSpace(sb.String()) + "\n")
		li.ChildrenFiltered("ul, ol").Each(func(_ int, sub *goquery.Selection) {
			m.list(sub, goquery.NodeName(sub) == "ol", depth+1)
		})
	})
}

func (m *markdown) codeBlock(s *goquery.Selection) {
	src := s
	lang := ""
	if code := s.Find("code").First(); code.Length() > 0 {
		src = code
		class, _ := code.Attr("class")
		for _, c := range strings.Fields(class) {
			if l, ok := strings.CutPrefix(c, "language-"); ok {
				lang = l
				break
			}
		}
	}
	m.sb.WriteString("```" + lang + "\n" + strings.TrimRight(src.Text(), "\n") + "\n```\n\n")
}

func (m *markdown) table(s *goquery.Selection) {
	var rows [][]string
	s.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, strings.TrimSpace(cell.Text()))
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	if cols == 0 {
		return
	}
	for i, r := range rows {
		for len(r) < cols {
			r = append(r, "")
		}
		m.sb.WriteString("| " + strings.Join(r, " | ") + " |\n")
		if i == 0 {
			m.sb.WriteString("|" + strings.Repeat(" --- |", cols) + "\n")
		}
	}
	m.sb.WriteString("\n")
}
