package gmail

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/RichardScottOZ/googlealerts-analysis/internal/models"
	"github.com/RichardScottOZ/googlealerts-analysis/internal/urlutil"
)

// fullBodyLimit caps the body excerpt stored on each alert for context.
const fullBodyLimit = 500

var subjectPrefixes = []string{
	"Google Alert - ",
	"Google Scholar Alert - ",
	"Scholar Alert - ",
}

// plainURLPattern matches bare URLs in text bodies, trimming trailing
// punctuation that email line wrapping attaches.
var plainURLPattern = regexp.MustCompile(`https?://[^\s<>"')]+[^\s<>"'.,;:!?)\]]`)

// ParseAlert extracts the alert query and article links from one alert email.
// HTML bodies are parsed structurally; plain-text bodies fall back to bare
// URL scanning. Redirect wrappers are resolved and Google's own links are
// filtered out, so every returned article URL is canonical.
func ParseAlert(kind models.AlertKind, subject, body string) models.Alert {
	alert := models.Alert{
		Query:    queryFromSubject(subject),
		FullBody: truncate(body, fullBodyLimit),
	}

	if strings.Contains(body, "<a") {
		if kind == models.KindScholar {
			alert.Articles = parseScholarHTML(body)
		} else {
			alert.Articles = parseAlertHTML(body)
		}
	}

	if len(alert.Articles) == 0 {
		alert.Articles = parsePlainText(body)
	}

	return alert
}

func queryFromSubject(subject string) string {
	for _, prefix := range subjectPrefixes {
		if strings.HasPrefix(subject, prefix) {
			return strings.TrimPrefix(subject, prefix)
		}
	}
	return subject
}

// parseAlertHTML handles Google Alert emails: every titled anchor whose
// resolved destination is a real article.
func parseAlertHTML(body string) []models.AlertArticle {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}

	var articles []models.AlertArticle
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		url := urlutil.Resolve(href)
		title := normalizeSpace(a.Text())

		if title == "" || !usableURL(url) || seen[url] {
			return
		}

		seen[url] = true
		articles = append(articles, models.AlertArticle{
			Title: title,
			URL:   url,
		})
	})

	return articles
}

// parseScholarHTML handles Scholar alert emails, whose layout is a title
// anchor inside an h3 followed by an author line and a snippet line.
func parseScholarHTML(body string) []models.AlertArticle {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}

	var articles []models.AlertArticle
	seen := make(map[string]bool)

	doc.Find("h3 a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		url := urlutil.Resolve(href)
		title := normalizeSpace(a.Text())

		if title == "" || !usableURL(url) || seen[url] {
			return
		}

		snippet := ""
		heading := a.Closest("h3")
		if authors := heading.Next(); authors.Length() > 0 {
			if snippetDiv := authors.Next(); snippetDiv.Length() > 0 {
				snippet = normalizeSpace(snippetDiv.Text())
			}
		}

		seen[url] = true
		articles = append(articles, models.AlertArticle{
			Title:   title,
			URL:     url,
			Snippet: snippet,
		})
	})

	// Scholar sometimes wraps titles in other tags; fall back to the
	// generic anchor scan if the h3 layout matched nothing.
	if len(articles) == 0 {
		return parseAlertHTML(body)
	}

	return articles
}

// parsePlainText is the last resort for bodies without usable anchors.
func parsePlainText(body string) []models.AlertArticle {
	var articles []models.AlertArticle
	seen := make(map[string]bool)

	for _, raw := range plainURLPattern.FindAllString(body, -1) {
		url := urlutil.Resolve(raw)
		if !usableURL(url) || seen[url] {
			continue
		}
		seen[url] = true
		articles = append(articles, models.AlertArticle{URL: url})
	}

	return articles
}

func usableURL(url string) bool {
	return strings.HasPrefix(url, "http") && !urlutil.IsExcludedDomain(url)
}

var spacePattern = regexp.MustCompile(`\s+`)

func normalizeSpace(s string) string {
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
