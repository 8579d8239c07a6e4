package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/benjaminestes/robots/v2"
)

const (
	// RobotsAgent is the product token matched against robots.txt groups.
	RobotsAgent = "lxs"

	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	DefaultTimeout   = 15 * time.Second

	maxBodyBytes = 32 << 20
)

// ErrDisallowed is returned for URLs that robots.txt does not allow.
var ErrDisallowed = errors.New("disallowed by robots.txt")

// StatusError reports a non-200 response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch HTML from %s, status code: %d", e.URL, e.StatusCode)
}

type Options struct {
	UserAgent    string
	Timeout      time.Duration
	IgnoreRobots bool
}

type Fetcher struct {
	client       *http.Client
	userAgent    string
	ignoreRobots bool

	mu     sync.Mutex
	robots map[string]func(string) bool
}

func NewFetcher(opts Options) *Fetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Fetcher{
		client:       &http.Client{Timeout: opts.Timeout},
		userAgent:    opts.UserAgent,
		ignoreRobots: opts.IgnoreRobots,
		robots:       make(map[string]func(string) bool),
	}
}

func (f *Fetcher) GetHtml(ctx context.Context, url string) (*goquery.Document, error) {
	bodyBytes, err := f.GetHtmlBytes(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

func (f *Fetcher) GetHtmlBytes(ctx context.Context, url string) ([]byte, error) {
	allowed, err := f.Allowed(ctx, url)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%s: %w", url, ErrDisallowed)
	}

	resp, err := f.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return bodyBytes, nil
}

// Warmup requests url and discards the body, so the first real request does
// not arrive cold. Any response counts as success.
func (f *Fetcher) Warmup(ctx context.Context, url string) error {
	resp, err := f.get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to warm up session: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Allowed consults the robots.txt of url's host, fetching it once per host.
// Only testers built from an HTTP response are kept. A transport failure is
// returned for this url and the next call fetches robots.txt again.
func (f *Fetcher) Allowed(ctx context.Context, url string) (bool, error) {
	if f.ignoreRobots {
		return true, nil
	}

	robotsURL, err := robots.Locate(url)
	if err != nil {
		return false, fmt.Errorf("failed to locate robots.txt for %s: %w", url, err)
	}

	f.mu.Lock()
	test, ok := f.robots[robotsURL]
	f.mu.Unlock()
	if !ok {
		test, err = f.loadRobots(ctx, robotsURL)
		if err != nil {
			return false, err
		}
		f.mu.Lock()
		f.robots[robotsURL] = test
		f.mu.Unlock()
	}
	return test(url), nil
}

func (f *Fetcher) loadRobots(ctx context.Context, robotsURL string) (func(string) bool, error) {
	resp, err := f.get(ctx, robotsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", robotsURL, err)
	}
	defer resp.Body.Close()

	rtxt, err := robots.From(resp.StatusCode, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", robotsURL, err)
	}
	return rtxt.Tester(RobotsAgent), nil
}

func (f *Fetcher) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	return f.client.Do(req)
}
