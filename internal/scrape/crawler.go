// Package scrape turns web pages into candidate words.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// ErrUnreachable marks a URL whose host cannot be resolved or whose first
// page cannot be fetched.
var ErrUnreachable = errors.New("unable to connect to the site")

const (
	DefaultDepth         = 1
	DefaultMaxPages      = 50
	DefaultMinWordLength = 3
	DefaultUserAgent     = "wordsmith/1.0"

	maxBody        = 2 * 1024 * 1024 // 2MB per page
	defaultTimeout = 15 * time.Second
)

// HostResolver checks a host before it is crawled.
type HostResolver interface {
	Resolve(ctx context.Context, host string) error
}

// Crawler fetches a page and the same-host pages it links to, breadth
// first, and extracts the words of their visible text.
type Crawler struct {
	Client        *http.Client
	Resolver      HostResolver // nil skips the DNS preflight
	UserAgent     string
	Depth         int // link hops followed from the start page
	MaxPages      int
	MinWordLength int
}

// NewCrawler returns a crawler with default limits and a DNS preflight.
func NewCrawler(userAgent string) *Crawler {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Crawler{
		Client: &http.Client{
			Timeout: defaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		Resolver:      NewDNSResolver(),
		UserAgent:     userAgent,
		Depth:         DefaultDepth,
		MaxPages:      DefaultMaxPages,
		MinWordLength: DefaultMinWordLength,
	}
}

type pending struct {
	u     *url.URL
	depth int
}

// Scrape crawls rawURL and returns the sorted distinct words found.
func (c *Crawler) Scrape(ctx context.Context, rawURL string) ([]string, error) {
	start, err := normalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	if c.Resolver != nil {
		if err := c.Resolver.Resolve(ctx, start.Hostname()); err != nil {
			return nil, err
		}
	}

	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	seen := map[string]bool{start.String(): true}
	queue := []pending{{u: start}}
	var words []string
	fetched := 0

	for len(queue) > 0 && fetched < maxPages {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		p := queue[0]
		queue = queue[1:]

		pageWords, links, err := c.fetch(ctx, p.u)
		fetched++
		if err != nil {
			if p.depth == 0 {
				return nil, fmt.Errorf("%w: %s: %v", ErrUnreachable, start, err)
			}
			continue
		}
		words = append(words, pageWords...)

		if p.depth >= c.Depth {
			continue
		}
		for _, l := range links {
			if l.Host != start.Host || seen[l.String()] {
				continue
			}
			seen[l.String()] = true
			queue = append(queue, pending{u: l, depth: p.depth + 1})
		}
	}

	slices.Sort(words)
	return slices.Compact(words), nil
}

func normalizeURL(rawURL string) (*url.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, fmt.Errorf("empty URL")
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "http://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing URL %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("URL %q has no host", rawURL)
	}
	u.Fragment = ""
	return u, nil
}

func (c *Crawler) fetch(ctx context.Context, u *url.URL) ([]string, []*url.URL, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	ct := resp.Header.Get("Content-Type")
	if ct != "" && !strings.Contains(ct, "html") && !strings.HasPrefix(ct, "text/") {
		return nil, nil, nil
	}

	words, links := c.extract(io.LimitReader(resp.Body, maxBody), resp.Request.URL)
	return words, links, nil
}

// extract tokenizes an HTML document, returning the words of its text
// nodes and the absolute http(s) links it contains.
func (c *Crawler) extract(r io.Reader, base *url.URL) ([]string, []*url.URL) {
	minLen := c.MinWordLength
	if minLen <= 0 {
		minLen = DefaultMinWordLength
	}

	var (
		words []string
		links []*url.URL
		skip  int
	)

	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return words, links

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			if tag == "script" || tag == "style" || tag == "noscript" {
				if tt == html.StartTagToken {
					skip++
				}
				continue
			}
			if tag != "a" || !hasAttr {
				continue
			}
			for {
				key, val, more := z.TagAttr()
				if string(key) == "href" {
					if l := resolveLink(base, string(val)); l != nil {
						links = append(links, l)
					}
				}
				if !more {
					break
				}
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if (tag == "script" || tag == "style" || tag == "noscript") && skip > 0 {
				skip--
			}

		case html.TextToken:
			if skip > 0 {
				continue
			}
			words = append(words, Words(string(z.Text()), minLen)...)
		}
	}
}

func resolveLink(base *url.URL, href string) *url.URL {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return nil
	}
	ref, err := url.Parse(href)
	if err != nil {
		return nil
	}
	u := base.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil
	}
	u.Fragment = ""
	return u
}

// Words splits text into runs of letters and digits at least minLen runes
// long.
func Words(text string, minLen int) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minLen {
			out = append(out, f)
		}
	}
	return out
}
