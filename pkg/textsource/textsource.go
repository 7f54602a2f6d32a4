// Package textsource turns user-supplied passages into plain text: HTML
// fragments from flashcard fields, whole web pages saved to disk, or text
// piped on stdin.
package textsource

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
)

// MaxSize caps how much text is read from a file or stdin.
const MaxSize = 10 * 1024 * 1024

var (
	strict = bluemonday.StrictPolicy()

	// {{c1::answer}} and {{c1::answer::hint}} both become "answer".
	reCloze = regexp.MustCompile(`\{\{c[0-9]+::(.*?)(::.*?)?\}\}`)

	reRT = regexp.MustCompile(`(?si)<rt\b[^>]*>.*?</rt>`)
	reRP = regexp.MustCompile(`(?si)<rp\b[^>]*>.*?</rp>`)
)

// Cleanup reduces an HTML fragment to its text: tags are stripped, entities
// decoded, non-breaking spaces turned into spaces and cloze markers replaced
// by their answers.
func Cleanup(s string) string {
	s = strict.Sanitize(s)
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = reCloze.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}

// SanitizeRuby removes ruby text (<rt>...</rt>) and ruby parentheses
// (<rp>...</rp>) so annotated words are not read twice.
func SanitizeRuby(content []byte) []byte {
	cleaned := reRT.ReplaceAll(content, []byte{})
	cleaned = reRP.ReplaceAll(cleaned, []byte{})
	return cleaned
}

// Article is the readable part of a web page.
type Article struct {
	Title string
	Text  string
}

// FromHTML extracts the main article of a page. pageURL may be nil.
func FromHTML(r io.Reader, pageURL *url.URL) (Article, error) {
	body, err := readLimited(r)
	if err != nil {
		return Article{}, err
	}
	if pageURL == nil {
		pageURL = &url.URL{Scheme: "file", Path: "/"}
	}

	article, err := readability.FromReader(bytes.NewReader(SanitizeRuby(body)), pageURL)
	if err != nil {
		return Article{}, fmt.Errorf("extract article: %w", err)
	}
	return Article{
		Title: strings.TrimSpace(article.Title),
		Text:  strings.TrimSpace(article.TextContent),
	}, nil
}

// Load reads the passage at path. "-" reads stdin; files ending in .html or
// .htm go through article extraction; anything else is cleaned up as a
// fragment.
func Load(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		body, err := readLimited(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return Cleanup(string(body)), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		abs, _ := filepath.Abs(path)
		article, err := FromHTML(f, &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)})
		if err != nil {
			return "", fmt.Errorf("%s: %w", path, err)
		}
		return article.Text, nil
	}

	body, err := readLimited(f)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return Cleanup(string(body)), nil
}

func readLimited(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > MaxSize {
		return nil, fmt.Errorf("input exceeds %d bytes", MaxSize)
	}
	return body, nil
}
