package scrape

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/miekg/dns"
)

func TestCrawler_ExtractsVisibleWords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><head><title>Carolina Panthers</title>
<style>body { color: red }</style>
<script>var hiddenToken = "secret";</script></head>
<body><p>Welcome to Raleigh, NC! Go Panthers.</p></body></html>`)
	}))
	defer srv.Close()

	c := &Crawler{Client: srv.Client(), UserAgent: "test-agent"}
	words, err := c.Scrape(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Carolina", "Panthers", "Raleigh", "Welcome"}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("words = %v, want %v", words, want)
	}
}

func TestCrawler_FollowsSameHostLinks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `<p>home</p><a href="/about#team">about</a><a href="https://elsewhere.invalid/x">away</a><a href="mailto:a@b.c">mail</a>`)
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<p>history</p><a href="/deeper">deeper</a>`)
	})
	mux.HandleFunc("/deeper", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<p>unreached</p>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := &Crawler{Client: srv.Client(), Depth: 1}
	words, err := c.Scrape(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"about", "away", "deeper", "history", "home", "mail"}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("words = %v, want %v", words, want)
	}
}

func TestCrawler_MaxPages(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		fmt.Fprintf(w, `<a href="/p%d">page%d</a><a href="/q%d">next</a>`, n, n, n)
	}))
	defer srv.Close()

	c := &Crawler{Client: srv.Client(), Depth: 5, MaxPages: 3}
	if _, err := c.Scrape(context.Background(), srv.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := hits.Load(); n != 3 {
		t.Errorf("fetched %d pages, want 3", n)
	}
}

func TestCrawler_FirstPageFailureIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := &Crawler{Client: srv.Client()}
	_, err := c.Scrape(context.Background(), srv.URL)
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("err = %v, want ErrUnreachable", err)
	}
}

type stubResolver struct{ err error }

func (s stubResolver) Resolve(context.Context, string) error { return s.err }

func TestCrawler_ResolverFailureStopsCrawl(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := &Crawler{Client: srv.Client(), Resolver: stubResolver{err: ErrUnreachable}}
	_, err := c.Scrape(context.Background(), srv.URL)
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("err = %v, want ErrUnreachable", err)
	}
	if n := hits.Load(); n != 0 {
		t.Errorf("server was hit %d times after failed preflight", n)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"www.popped.io", "http://www.popped.io", false},
		{"https://example.com/a#frag", "https://example.com/a", false},
		{"ftp://example.com", "", true},
		{"   ", "", true},
	}
	for _, tt := range tests {
		u, err := normalizeURL(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("normalizeURL(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("normalizeURL(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if u.String() != tt.want {
			t.Errorf("normalizeURL(%q) = %q, want %q", tt.in, u.String(), tt.want)
		}
	}
}

func TestWords(t *testing.T) {
	got := Words("Köln's 2024 Karneval, a-b go!", 3)
	want := []string{"Köln", "2024", "Karneval"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Words = %v, want %v", got, want)
	}
}

func TestParseCewl(t *testing.T) {
	out := "CeWL 5.5.2 (Grouping) Robin Wood (robin@digi.ninja) (https://digi.ninja/)\n\nzeta\nalpha\n\nzeta\nbeta\n"
	got, err := ParseCewl(out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"alpha", "beta", "zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseCewl = %v, want %v", got, want)
	}
}

func TestParseCewl_Unreachable(t *testing.T) {
	out := "CeWL 5.5.2\n\nUnable to connect to the site (http://nope.invalid)\n"
	if _, err := ParseCewl(out); !errors.Is(err, ErrUnreachable) {
		t.Errorf("err = %v, want ErrUnreachable", err)
	}
}

func TestParseCewl_BannerOnly(t *testing.T) {
	got, err := ParseCewl("CeWL 5.5.2\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want nothing", got)
	}
}

func startDNS(t *testing.T) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("cannot listen on udp: %v", err)
	}

	started := make(chan struct{})
	srv := &dns.Server{
		PacketConn:        pc,
		NotifyStartedFunc: func() { close(started) },
		Handler: dns.HandlerFunc(func(w dns.ResponseWriter, r *dns.Msg) {
			m := new(dns.Msg)
			m.SetReply(r)
			q := r.Question[0]
			if strings.EqualFold(q.Name, "known.example.") {
				rr, _ := dns.NewRR("known.example. 60 IN A 192.0.2.10")
				m.Answer = append(m.Answer, rr)
			} else {
				m.Rcode = dns.RcodeNameError
			}
			w.WriteMsg(m)
		}),
	}
	go srv.ActivateAndServe()
	<-started
	t.Cleanup(func() { srv.Shutdown() })

	return pc.LocalAddr().String()
}

func TestDNSResolver(t *testing.T) {
	addr := startDNS(t)
	r := &DNSResolver{Servers: []string{addr}, Client: &dns.Client{}}

	if err := r.Resolve(context.Background(), "known.example"); err != nil {
		t.Errorf("known host: unexpected error: %v", err)
	}
	if err := r.Resolve(context.Background(), "missing.example"); !errors.Is(err, ErrUnreachable) {
		t.Errorf("missing host: err = %v, want ErrUnreachable", err)
	}
}

func TestDNSResolver_SkipsLiterals(t *testing.T) {
	r := &DNSResolver{Servers: []string{"192.0.2.1:53"}}
	for _, h := range []string{"127.0.0.1", "::1", "localhost"} {
		if err := r.Resolve(context.Background(), h); err != nil {
			t.Errorf("Resolve(%q): unexpected error: %v", h, err)
		}
	}
}
