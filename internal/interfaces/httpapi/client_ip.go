package httpapi

import (
	"net/http"
	"net/netip"
	"strings"
)

// clientIPHeaders are checked in order. CDN headers come first because they
// cannot be forged past the edge.
var clientIPHeaders = []string{"Fly-Client-IP", "CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// resolveClientIP keys rate limiting. Unparseable values are skipped.
func resolveClientIP(r *http.Request) string {
	for _, header := range clientIPHeaders {
		first, _, _ := strings.Cut(r.Header.Get(header), ",")
		if addr, ok := parseAddr(first); ok {
			return addr.String()
		}
	}
	if addr, ok := parseAddr(r.RemoteAddr); ok {
		return addr.String()
	}
	return "unknown"
}

func parseAddr(raw string) (netip.Addr, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return netip.Addr{}, false
	}
	if addrPort, err := netip.ParseAddrPort(raw); err == nil {
		return addrPort.Addr().Unmap(), true
	}
	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}
