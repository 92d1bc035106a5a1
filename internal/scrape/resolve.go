package scrape

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
)

const (
	resolvConf     = "/etc/resolv.conf"
	dnsTimeout     = 5 * time.Second
	dnsDialTimeout = 3 * time.Second
)

// DNSResolver checks that a host name exists before any page is fetched.
type DNSResolver struct {
	Servers []string // host:port; empty uses the system resolver
	Client  *dns.Client
}

// NewDNSResolver reads the nameservers from the system resolver
// configuration. When it cannot be read the resolver falls back to the
// Go resolver.
func NewDNSResolver() *DNSResolver {
	r := &DNSResolver{
		Client: &dns.Client{Timeout: dnsTimeout, DialTimeout: dnsDialTimeout},
	}
	cfg, err := dns.ClientConfigFromFile(resolvConf)
	if err != nil {
		return r
	}
	for _, s := range cfg.Servers {
		r.Servers = append(r.Servers, net.JoinHostPort(s, cfg.Port))
	}
	return r
}

// Resolve returns an error wrapping ErrUnreachable when host does not exist.
func (r *DNSResolver) Resolve(ctx context.Context, host string) error {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == "" {
		return fmt.Errorf("%w: empty host", ErrUnreachable)
	}
	if net.ParseIP(host) != nil || host == "localhost" {
		return nil
	}
	if len(r.Servers) == 0 {
		return lookupSystem(ctx, host)
	}

	client := r.Client
	if client == nil {
		client = &dns.Client{Timeout: dnsTimeout, DialTimeout: dnsDialTimeout}
	}

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(host), dns.TypeA)
	m.RecursionDesired = true

	answered := false
	for _, server := range r.Servers {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		in, _, err := client.ExchangeContext(ctx, m, server)
		if err != nil {
			continue
		}
		answered = true
		switch in.Rcode {
		case dns.RcodeSuccess:
			return nil
		case dns.RcodeNameError:
			return fmt.Errorf("%w: %s does not exist", ErrUnreachable, host)
		}
	}

	// No nameserver gave a usable answer.
	if !answered {
		return lookupSystem(ctx, host)
	}
	return fmt.Errorf("%w: %s did not resolve", ErrUnreachable, host)
}

func lookupSystem(ctx context.Context, host string) error {
	if _, err := net.DefaultResolver.LookupHost(ctx, host); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnreachable, host, err)
	}
	return nil
}
