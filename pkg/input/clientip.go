package input

import (
	"net"
	"net/http"
	"strings"
)

// proxyHeaders are consulted in order before RemoteAddr.
var proxyHeaders = []string{"CF-Connecting-IP", "DO-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// clientIP resolves the originating address of r. Forwarded lists are
// scanned left to right and the first parseable address wins.
func clientIP(r *http.Request) string {
	for _, header := range proxyHeaders {
		for candidate := range strings.SplitSeq(r.Header.Get(header), ",") {
			if ip := normalizeIP(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return normalizeIP(r.RemoteAddr)
	}
	return normalizeIP(host)
}

func normalizeIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
