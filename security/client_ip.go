package security

import (
	"net"

	"github.com/labstack/echo/v5"
)

// ClientIPExtractor decides which address c.RealIP reports, and with it the
// rate limit key. Forwarding headers are honoured only when the direct peer
// is one of the trusted proxies; with none configured the peer address is
// used as is.
func ClientIPExtractor(trustedProxies []*net.IPNet) echo.IPExtractor {
	if len(trustedProxies) == 0 {
		return echo.ExtractIPDirect()
	}

	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, ipNet := range trustedProxies {
		opts = append(opts, echo.TrustIPRange(ipNet))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}
