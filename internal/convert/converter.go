// Package convert turns raw page payloads into provenance-tagged plain text.
package convert

import (
	"fmt"
	"log/slog"
	"strings"

	"codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"answer-orchestrator/internal/domain"
)

// Documents larger than this are truncated before they reach the LLM context.
const maxDocumentBytes = 64 * 1024

// PDFExtractor converts a binary PDF payload to plain text. Extraction is a
// pluggable capability; the pipeline only needs this contract.
type PDFExtractor interface {
	ExtractText(data []byte) (string, error)
}

// Converter flattens fetched payloads into text. Every successful conversion
// is prefixed with a "source: <url>" line so provenance survives once pages
// are flattened into a single prompt.
type Converter struct {
	pdf    PDFExtractor
	logger *slog.Logger
}

// NewConverter builds a converter. pdf may be nil, in which case PDF payloads
// yield no text and the page is treated as not retrievable.
func NewConverter(pdf PDFExtractor, logger *slog.Logger) *Converter {
	return &Converter{pdf: pdf, logger: logger}
}

// ToText converts one payload. An empty return means nothing extractable was
// found; malformed markup never raises, it degrades to best-effort text.
func (c *Converter) ToText(pageURL string, mediaType domain.MediaType, raw []byte) string {
	var text string

	switch mediaType {
	case domain.MediaPDF:
		if c.pdf == nil {
			c.logger.Warn("no pdf extractor configured, skipping document", "url", pageURL)
			return ""
		}
		extracted, err := c.pdf.ExtractText(raw)
		if err != nil {
			c.logger.Warn("pdf extraction failed", "url", pageURL, "error", err)
			return ""
		}
		text = normalizeWhitespace(extracted)
	case domain.MediaPlain:
		text = normalizeWhitespace(string(raw))
	default:
		text = extractReadable(string(raw))
	}

	if text == "" {
		return ""
	}
	if len(text) > maxDocumentBytes {
		text = text[:maxDocumentBytes] + " [truncated]"
	}

	return fmt.Sprintf("source: %s\n%s", pageURL, text)
}

// extractReadable converts article HTML into plain text paragraphs. It
// removes non-content elements, runs readability over the cleaned document,
// and falls back to straight tag stripping when extraction comes up short.
func extractReadable(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	// Payload is already plain text.
	if !strings.Contains(trimmed, "<") {
		return normalizeWhitespace(trimmed)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err == nil {
		// Drop non-content elements before readability sees the document.
		doc.Find("head, script, style, noscript, title, aside, nav, header, footer").Remove()
		doc.Find("iframe, embed, object, video, audio, canvas, img, svg").Remove()
		doc.Find("[class*='social'], [class*='share'], [class*='comment'], [id*='comment']").Remove()
		doc.Find("meta, link").Remove()

		doc.Find("*").Each(func(i int, s *goquery.Selection) {
			s.RemoveAttr("style")
			s.RemoveAttr("onclick")
			s.RemoveAttr("onload")
			s.RemoveAttr("onerror")
		})

		if cleaned, err := doc.Html(); err == nil && cleaned != "" {
			trimmed = cleaned
		}
	}

	article, err := readability.FromReader(strings.NewReader(trimmed), nil)
	if err == nil {
		var textBuf strings.Builder
		if err := article.RenderText(&textBuf); err == nil {
			text := strings.TrimSpace(textBuf.String())
			// Readability sometimes extracts only a title or stray metadata.
			// Anything that short is better served by the fallback path.
			if len(text) >= 200 {
				return normalizeWhitespace(text)
			}
		}
	}

	return extractParagraphs(trimmed)
}

// extractParagraphs pulls text out of block elements, preserving paragraph
// boundaries with double newlines.
func extractParagraphs(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return stripTags(html)
	}

	var paragraphs []string
	collect := func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	doc.Find("h1, h2, h3, h4, h5, h6").Each(collect)
	doc.Find("p").Each(collect)
	doc.Find("pre code, pre").Each(collect)
	doc.Find("li").Each(collect)

	if len(paragraphs) == 0 {
		doc.Find("div, article, section").Each(func(i int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > 10 {
				paragraphs = append(paragraphs, text)
			}
		})
	}

	if len(paragraphs) == 0 {
		return stripTags(html)
	}

	return strings.Join(paragraphs, "\n\n")
}

// stripTags removes all HTML tags using bluemonday's strict policy.
func stripTags(raw string) string {
	p := bluemonday.StrictPolicy()
	return normalizeWhitespace(p.Sanitize(raw))
}

func normalizeWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
