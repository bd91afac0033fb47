package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// Headers are checked in order before falling back to RemoteAddr.
var Headers = []string{
	"CF-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the client address of r. X-Forwarded-For contributes its
// first valid entry. An empty string means nothing parsed.
func GetIP(r *http.Request) string {
	for _, h := range Headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		for part := range strings.SplitSeq(v, ",") {
			if ip := parseIP(part); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// parseIP normalizes s, unmapping IPv4-in-IPv6 and dropping zones.
func parseIP(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return addr.Unmap().WithZone("").String()
}
