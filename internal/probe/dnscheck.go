package probe

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"time"
)

type DNSClass string

const (
	DNSResolves       DNSClass = "RESOLVES"
	DNSNXDomain       DNSClass = "NXDOMAIN"
	DNSNoARecord      DNSClass = "NO_A_RECORD"
	DNSServfailOrTime DNSClass = "SERVFAIL_or_TIMEOUT"
	DNSInvalidName    DNSClass = "INVALID_NAME"
)

// DNSStatus explains why a host could not be reached at the name level.
type DNSStatus struct {
	Host          string
	IPs           []net.IP
	CNAME         string
	Nameservers   []string
	Class         DNSClass
	ResolverError string
}

// Diagnoser looks up a target's host after a connection failure. It never
// changes an outcome; it only feeds the logs.
type Diagnoser struct {
	Resolver *net.Resolver
	Timeout  time.Duration
}

func NewDiagnoser() *Diagnoser {
	return &Diagnoser{Resolver: net.DefaultResolver, Timeout: 3 * time.Second}
}

func (d *Diagnoser) Diagnose(ctx context.Context, rawURL string) DNSStatus {
	s := DNSStatus{Host: hostOf(rawURL)}
	if s.Host == "" || strings.Contains(s.Host, "://") {
		s.Class = DNSInvalidName
		return s
	}
	if ip := net.ParseIP(s.Host); ip != nil {
		s.IPs = []net.IP{ip}
		s.Class = DNSResolves
		return s
	}

	ctx, cancel := context.WithTimeout(ctx, d.Timeout)
	defer cancel()

	ips, err := d.Resolver.LookupIP(ctx, "ip", s.Host)
	switch {
	case err == nil && len(ips) > 0:
		s.IPs = ips
		s.Class = DNSResolves
		return s
	case err != nil:
		s.ResolverError = err.Error()
		var de *net.DNSError
		if errors.As(err, &de) {
			if de.IsNotFound {
				s.Class = DNSNXDomain
			} else if de.IsTemporary || de.Timeout() {
				s.Class = DNSServfailOrTime
			}
		}
	}

	if cname, err := d.Resolver.LookupCNAME(ctx, s.Host); err == nil && !strings.EqualFold(cname, s.Host+".") {
		s.CNAME = strings.TrimSuffix(cname, ".")
	}

	// NS records without an address: the zone exists, the name does not resolve
	if ns, err := d.Resolver.LookupNS(ctx, s.Host); err == nil && len(ns) > 0 {
		for _, n := range ns {
			s.Nameservers = append(s.Nameservers, strings.TrimSuffix(n.Host, "."))
		}
		if s.Class == DNSNXDomain || s.Class == "" {
			s.Class = DNSNoARecord
		}
	}

	if s.Class == "" {
		if s.ResolverError != "" {
			s.Class = DNSServfailOrTime
		} else {
			s.Class = DNSNXDomain
		}
	}
	return s
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return u.Hostname()
}
