package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate_CanonicalForms(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain domain", raw: "example.com", want: "example.com"},
		{name: "subdomain", raw: "sub.example.com", want: "sub.example.com"},
		{name: "upper case", raw: "Example.COM", want: "example.com"},
		{name: "scheme and path", raw: "https://example.com/watch?v=123", want: "example.com"},
		{name: "full decoration", raw: "HTTPS://WWW.Example.COM/path", want: "example.com"},
		{name: "http scheme", raw: "http://news.example.org", want: "news.example.org"},
		{name: "www prefix", raw: "www.example.com", want: "example.com"},
		{name: "trailing port", raw: "example.com:8080", want: "example.com"},
		{name: "surrounding whitespace", raw: "  example.com  ", want: "example.com"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Validate(tc.raw)
			require.True(t, res.Valid, "error: %s", res.Err)
			require.Equal(t, tc.want, res.Hostname)
			require.Empty(t, res.Err)
		})
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "whitespace only", raw: "   "},
		{name: "too short", raw: "ab"},
		{name: "no tld", raw: "example"},
		{name: "consecutive dots", raw: "example..com"},
		{name: "leading dot", raw: ".example.com"},
		{name: "trailing dot", raw: "example.com."},
		{name: "leading hyphen", raw: "-example.com"},
		{name: "trailing hyphen in label", raw: "example-.com"},
		{name: "consecutive hyphens", raw: "ex--ample.com"},
		{name: "embedded space", raw: "exam ple.com"},
		{name: "invalid characters", raw: "exam_ple.com"},
		{name: "non-ascii", raw: "пример.рф"},
		{name: "reserved localhost", raw: "localhost"},
		{name: "reserved loopback ip", raw: "127.0.0.1"},
		{name: "reserved wildcard ip", raw: "0.0.0.0"},
		{name: "reserved ipv6 loopback", raw: "::1"},
		{name: "private 192.168", raw: "192.168.1.1"},
		{name: "private 10.x", raw: "10.0.0.1"},
		{name: "private 172.16", raw: "172.16.0.1"},
		{name: "loopback range", raw: "127.5.0.1"},
		{name: "malformed octet", raw: "999.1.1.1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Validate(tc.raw)
			require.False(t, res.Valid)
			require.NotEmpty(t, res.Err)
			require.Empty(t, res.Hostname)
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	t.Run("public ip is valid with warning", func(t *testing.T) {
		res := Validate("8.8.8.8")
		require.True(t, res.Valid)
		require.Equal(t, "8.8.8.8", res.Hostname)
		require.NotEmpty(t, res.Warnings)
	})

	t.Run("deep subdomain chain warns", func(t *testing.T) {
		res := Validate("a.b.c.d.e.f.example.com")
		require.True(t, res.Valid)
		require.Equal(t, "a.b.c.d.e.f.example.com", res.Hostname)
		require.NotEmpty(t, res.Warnings)
	})

	t.Run("uncommon tld warns", func(t *testing.T) {
		res := Validate("example.zzz")
		require.True(t, res.Valid)
		require.NotEmpty(t, res.Warnings)
	})

	t.Run("numeric non-final label warns", func(t *testing.T) {
		res := Validate("123.example.com")
		require.True(t, res.Valid)
		require.NotEmpty(t, res.Warnings)
	})

	t.Run("ordinary domain has no warnings", func(t *testing.T) {
		res := Validate("example.com")
		require.True(t, res.Valid)
		require.Empty(t, res.Warnings)
	})
}
