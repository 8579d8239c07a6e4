package common

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)

// FilterFields converts obj to a map through its JSON form and keeps only the
// comma-separated fields. An empty list keeps everything.
func FilterFields(obj interface{}, fieldsStr string) map[string]interface{} {
	full := structToMap(obj)
	if strings.TrimSpace(fieldsStr) == "" {
		return full
	}

	filtered := make(map[string]interface{})
	for _, field := range strings.Split(fieldsStr, ",") {
		field = strings.TrimSpace(field)
		if v, ok := full[field]; ok {
			filtered[field] = v
		}
	}
	return filtered
}

// structToMap converts a struct to map[string]interface{} using JSON marshaling.
func structToMap(obj interface{}) map[string]interface{} {
	data, _ := json.Marshal(obj)
	var result map[string]interface{}
	_ = json.Unmarshal(data, &result)
	return result
}

// ContentHash computes SHA256 hash of content and returns hex string.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

// SanitizeURL performs basic cleanup on URLs to handle common copy-paste issues.
// Removes whitespace, trailing punctuation and markdown artifacts.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	// [text](url) -> url
	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	for _, char := range []string{",", ".", ")", "}", "]", "\"", "'", ">", ";"} {
		cleaned = strings.TrimSuffix(cleaned, char)
	}
	for _, char := range []string{"(", "[", "<", "\"", "'"} {
		cleaned = strings.TrimPrefix(cleaned, char)
	}

	return strings.TrimSpace(cleaned)
}

// NormalizeWord trims a headword and collapses inner whitespace.
func NormalizeWord(word string) string {
	return strings.Join(strings.Fields(word), " ")
}

// BuildWordURL returns the page URL of word under baseURL: spaces become
// underscores and the rest is path-escaped ("bad egg" -> ".../bad_egg").
func BuildWordURL(baseURL, word string) string {
	title := strings.ReplaceAll(NormalizeWord(word), " ", "_")
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL + url.PathEscape(title)
}

// ResolveWordURL prefers a sanitized explicit link and falls back to BuildWordURL.
func ResolveWordURL(baseURL, word, link string) string {
	if link = SanitizeURL(link); link != "" {
		if u, err := url.Parse(link); err == nil && u.Scheme != "" && u.Host != "" {
			return link
		}
	}
	return BuildWordURL(baseURL, word)
}

// SiteRoot returns scheme://host/ of rawURL, or "" when it has no host.
func SiteRoot(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host + "/"
}

// Marshal renders v as indented JSON when format is "json" and as YAML otherwise.
func Marshal(v interface{}, format string) ([]byte, error) {
	if strings.EqualFold(format, "json") {
		return json.MarshalIndent(v, "", "  ")
	}
	return yaml.Marshal(v)
}

// PrintOutput writes v to w in format followed by a newline.
func PrintOutput(w io.Writer, v interface{}, format string) error {
	data, err := Marshal(v, format)
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, strings.TrimRight(string(data), "\n"))
	return err
}
