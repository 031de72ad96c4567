// Package privacy reduces identifiers to forms that are safe to log.
package privacy

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"strings"
)

// AnonymizeIP keeps the network prefix: /24 for IPv4, /48 for IPv6.
func AnonymizeIP(ip string) string {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return ""
	}
	if v4 := parsed.To4(); v4 != nil {
		return v4.Mask(net.CIDRMask(24, 32)).String()
	}
	return parsed.Mask(net.CIDRMask(48, 128)).String()
}

// SubjectHash is a stable, non-reversible handle for a verification subject,
// so log lines for the same person can be correlated without holding PII.
func SubjectHash(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(strings.ToLower(strings.TrimSpace(p))))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
