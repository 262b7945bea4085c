package providers

import (
	"net"
	"net/url"
	"strings"

	"github.com/avoronin/daybook/internal/common"
)

// RiskVerdict classifies a candidate base URL.
type RiskVerdict int

const (
	// RiskNone: the URL is acceptable as-is.
	RiskNone RiskVerdict = iota
	// RiskWarn: the URL is accepted only after the caller re-submits the
	// same normalized URL a second time.
	RiskWarn
)

// ClassifyBaseURL validates and normalizes a candidate endpoint.
//
// A malformed URL is a hard rejection. Non-HTTPS schemes, private-use
// hostnames (localhost, *.local, *.internal, *.home.arpa), and private or
// loopback IPv4/IPv6 addresses yield RiskWarn: reachable, but likely a typo
// or an unencrypted internal endpoint.
func ClassifyBaseURL(raw string) (string, RiskVerdict, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", RiskNone, common.ErrorInvalidBaseURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", RiskNone, common.ErrorInvalidBaseURL
	}
	if u.Host == "" {
		return "", RiskNone, common.ErrorInvalidBaseURL
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	normalized := strings.TrimSuffix(u.String(), "/")

	if u.Scheme != "https" {
		return normalized, RiskWarn, nil
	}

	host := u.Hostname()
	if privateUseHost(host) {
		return normalized, RiskWarn, nil
	}
	if ip := net.ParseIP(host); ip != nil {
		if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsUnspecified() {
			return normalized, RiskWarn, nil
		}
	}

	return normalized, RiskNone, nil
}

// privateUseHost reports hostnames that cannot resolve publicly: localhost,
// mDNS .local names, and the reserved private-use suffixes.
func privateUseHost(host string) bool {
	if host == "localhost" {
		return true
	}
	for _, suffix := range []string{".local", ".internal", ".home.arpa"} {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}
