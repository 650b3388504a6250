package domain

import (
	"fmt"
	"net"
	"strings"
)

const (
	minHostnameLen = 3
	maxHostnameLen = 253
	maxLabelLen    = 63
	maxLabels      = 5
)

// reservedNames can never be blocked: redirecting them to localhost is
// either meaningless or breaks local name resolution.
var reservedNames = map[string]bool{
	"localhost": true,
	"127.0.0.1": true,
	"0.0.0.0":   true,
	"::1":       true,
}

var commonTLDs = map[string]bool{
	"com": true, "net": true, "org": true, "edu": true, "gov": true,
	"mil": true, "int": true, "io": true, "co": true, "uk": true,
	"de": true, "fr": true, "jp": true, "ru": true, "info": true,
	"biz": true, "tv": true, "me": true, "app": true, "dev": true,
	"ai": true,
}

// Validate converts a raw address as a user would type it in the browser
// into a canonical hostname, rejecting malformed, reserved and
// private-network inputs. Pure function, no I/O.
func Validate(raw string) Result {
	host := strings.TrimSpace(raw)
	if host == "" {
		return invalid("website address cannot be empty")
	}

	host = strings.ToLower(stripDecorations(host))
	if host == "" {
		return invalid("website address cannot be empty")
	}

	if len(host) < minHostnameLen {
		return invalid(fmt.Sprintf("%q is too short to be a website address", host))
	}
	if len(host) > maxHostnameLen {
		return invalid("website address is too long (253 characters maximum)")
	}

	if reservedNames[host] {
		return invalid(fmt.Sprintf("%q is a reserved address and cannot be blocked", host))
	}

	if looksLikeIPv4(host) {
		return validateIPv4(host)
	}

	if err := checkHostGrammar(host); err != "" {
		return invalid(err)
	}

	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return invalid(fmt.Sprintf("%q is missing a top-level domain (e.g. example.com)", host))
	}

	var warnings []string
	if !commonTLDs[labels[len(labels)-1]] {
		warnings = append(warnings, fmt.Sprintf("uncommon top-level domain %q", labels[len(labels)-1]))
	}
	if len(labels) > maxLabels {
		warnings = append(warnings, "address has an unusually deep subdomain chain")
	}
	for i, label := range labels {
		if len(label) > maxLabelLen {
			warnings = append(warnings, fmt.Sprintf("label %q is longer than 63 characters", label))
		}
		if i < len(labels)-1 && allDigits(label) {
			warnings = append(warnings, fmt.Sprintf("label %q is entirely numeric", label))
		}
	}

	return Result{Valid: true, Hostname: host, Warnings: warnings}
}

// stripDecorations removes the parts of a typed address that are not the
// hostname: scheme, path, leading www. and a trailing numeric port.
func stripDecorations(s string) string {
	for _, scheme := range []string{"http://", "https://"} {
		if len(s) > len(scheme) && strings.EqualFold(s[:len(scheme)], scheme) {
			s = s[len(scheme):]
			break
		}
	}

	if slash := strings.IndexByte(s, '/'); slash != -1 {
		s = s[:slash]
	}

	if len(s) > 4 && strings.EqualFold(s[:4], "www.") {
		s = s[4:]
	}

	// Trailing :port, but only when there is a single colon — an IPv6
	// literal like ::1 must survive to the reserved-name check.
	if strings.Count(s, ":") == 1 {
		if i := strings.IndexByte(s, ':'); i+1 < len(s) && allDigits(s[i+1:]) {
			s = s[:i]
		}
	}

	return s
}

func checkHostGrammar(host string) string {
	if strings.ContainsAny(host, " \t") {
		return "website address must not contain spaces"
	}
	if strings.Contains(host, "..") {
		return "website address must not contain consecutive dots"
	}
	if strings.HasPrefix(host, ".") || strings.HasSuffix(host, ".") {
		return "website address must not start or end with a dot"
	}
	if strings.Contains(host, "--") {
		return "website address must not contain consecutive hyphens"
	}
	for i := 0; i < len(host); i++ {
		c := host[i]
		if c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '.' || c == '-' {
			continue
		}
		return "website address contains invalid characters; only letters, digits, dots and hyphens are allowed"
	}
	for _, label := range strings.Split(host, ".") {
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return "website address labels must not start or end with a hyphen"
		}
	}
	return ""
}

func validateIPv4(host string) Result {
	ip := net.ParseIP(host)
	if ip == nil {
		return invalid(fmt.Sprintf("%q is not a valid IP address", host))
	}
	if ip.IsLoopback() || ip.IsPrivate() {
		return invalid(fmt.Sprintf("%q is a private network address and cannot be blocked", host))
	}
	return Result{
		Valid:    true,
		Hostname: host,
		Warnings: []string{"blocking by IP address may not work as expected; most websites are reached by name"},
	}
}

// looksLikeIPv4 reports whether host is a dotted quad (four all-digit
// octets). Anything else falls through to the domain grammar.
func looksLikeIPv4(host string) bool {
	parts := strings.Split(host, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if p == "" || len(p) > 3 || !allDigits(p) {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
