package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// IPExtractor is an interface for extracting client IP addresses from HTTP requests.
// It decouples the rate limiter from the deployment topology: direct exposure
// uses RemoteAddr, deployments behind a reverse proxy read forwarding headers
// set by that proxy.
type IPExtractor interface {
	// ExtractIP extracts the client IP address from an HTTP request.
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor extracts the client IP from the RemoteAddr field of the HTTP request.
// The TCP peer address cannot be spoofed by the client, so this is the default.
type RemoteAddrExtractor struct{}

// ExtractIP extracts the IP address from r.RemoteAddr.
//
// Examples:
//   - "192.168.1.1:54321" → "192.168.1.1"
//   - "[2001:db8::1]:8080" → "2001:db8::1"
//   - "127.0.0.1" → "127.0.0.1" (no port)
func (e *RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	return extractIPFromAddr(r.RemoteAddr)
}

// TrustedProxyConfig holds the reverse proxies whose forwarding headers are honoured.
type TrustedProxyConfig struct {
	// Enabled indicates whether proxy trust is enabled.
	// When false, all header-based extraction is disabled.
	Enabled bool

	// AllowedCIDRs is a list of trusted proxy IP ranges.
	AllowedCIDRs []netip.Prefix
}

// ParseTrustedProxies builds a TrustedProxyConfig from IPs or CIDR ranges.
// Single IPs become /32 or /128 prefixes.
//
// Examples:
//   - "192.168.1.1" → 192.168.1.1/32
//   - "10.0.0.0/8"
//   - "2001:db8::/32"
func ParseTrustedProxies(enabled bool, proxies []string) (TrustedProxyConfig, error) {
	config := TrustedProxyConfig{Enabled: enabled}
	if !enabled {
		return config, nil
	}

	for _, proxyStr := range proxies {
		proxyStr = strings.TrimSpace(proxyStr)
		if proxyStr == "" {
			continue
		}

		prefix, err := netip.ParsePrefix(proxyStr)
		if err != nil {
			ip, ipErr := netip.ParseAddr(proxyStr)
			if ipErr != nil {
				return TrustedProxyConfig{}, fmt.Errorf("invalid IP or CIDR format '%s': must be valid IP address or CIDR notation (e.g., '192.168.1.1' or '10.0.0.0/8')", proxyStr)
			}
			prefix = netip.PrefixFrom(ip, ip.BitLen())
		}
		config.AllowedCIDRs = append(config.AllowedCIDRs, prefix.Masked())
	}

	if len(config.AllowedCIDRs) == 0 {
		return TrustedProxyConfig{}, fmt.Errorf("proxy trust is enabled but no trusted proxies are configured")
	}
	return config, nil
}

// IsTrusted checks if the given address ("IP:port" or "IP") belongs to a trusted proxy.
func (c *TrustedProxyConfig) IsTrusted(remoteAddr string) bool {
	ip, err := extractIPFromAddr(remoteAddr)
	if err != nil {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()

	for _, prefix := range c.AllowedCIDRs {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// TrustedProxyExtractor reads the client IP from X-Forwarded-For or X-Real-IP
// when the request comes from a trusted proxy, and from RemoteAddr otherwise.
type TrustedProxyExtractor struct {
	config TrustedProxyConfig
	logger *slog.Logger
}

// NewTrustedProxyExtractor creates a new TrustedProxyExtractor with the given configuration.
func NewTrustedProxyExtractor(config TrustedProxyConfig, logger *slog.Logger) *TrustedProxyExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrustedProxyExtractor{config: config, logger: logger}
}

// ExtractIP returns the client IP.
//
// X-Forwarded-For is walked from the right: every hop appended by a trusted
// proxy is skipped and the first untrusted address is the client. Entries to
// its left were supplied by the client and are ignored. X-Real-IP is used
// when X-Forwarded-For is absent. Requests from untrusted peers always use
// RemoteAddr.
func (e *TrustedProxyExtractor) ExtractIP(r *http.Request) (string, error) {
	if !e.config.Enabled {
		return extractIPFromAddr(r.RemoteAddr)
	}

	if !e.config.IsTrusted(r.RemoteAddr) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			e.logger.Warn("untrusted peer sent X-Forwarded-For",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_forwarded_for", xff),
			)
		}
		return extractIPFromAddr(r.RemoteAddr)
	}

	if xff := r.Header.Values("X-Forwarded-For"); len(xff) > 0 {
		if ip := e.clientFromForwardedFor(strings.Join(xff, ",")); ip != "" {
			return ip, nil
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		if ip := net.ParseIP(xri); ip != nil {
			return ip.String(), nil
		}
	}

	return extractIPFromAddr(r.RemoteAddr)
}

func (e *TrustedProxyExtractor) clientFromForwardedFor(xff string) string {
	hops := strings.Split(xff, ",")
	var last string
	for i := len(hops) - 1; i >= 0; i-- {
		ip := net.ParseIP(strings.TrimSpace(hops[i]))
		if ip == nil {
			// Everything left of a malformed hop is client controlled.
			return last
		}
		last = ip.String()
		if !e.config.IsTrusted(last) {
			return last
		}
	}
	// Every hop is a trusted proxy; the leftmost one is the closest to the client.
	return last
}

// NewIPExtractor returns a TrustedProxyExtractor when proxy trust is enabled
// and a RemoteAddrExtractor otherwise.
func NewIPExtractor(trustProxy bool, trustedProxies []string, logger *slog.Logger) (IPExtractor, error) {
	if !trustProxy {
		return &RemoteAddrExtractor{}, nil
	}
	config, err := ParseTrustedProxies(true, trustedProxies)
	if err != nil {
		return nil, err
	}
	return NewTrustedProxyExtractor(config, logger), nil
}

// extractIPFromAddr extracts the IP address from a "host:port" or "IP" string.
//
// Examples:
//   - "192.168.1.1:8080" → "192.168.1.1", nil
//   - "[2001:db8::1]:8080" → "2001:db8::1", nil
//   - "127.0.0.1" → "127.0.0.1", nil (no port)
func extractIPFromAddr(addr string) (string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		if ip := net.ParseIP(addr); ip != nil {
			return ip.String(), nil
		}
		return "", fmt.Errorf("invalid address format: %s", addr)
	}
	return host, nil
}
