package server

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/anpep/rzchroma/internal/logging"
)

const (
	// ServiceType is the mDNS service type the control server
	// advertises under.
	ServiceType = "_rzchroma._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// serviceInstance is the advertised instance name.
	serviceInstance = "rzchroma"
)

// announcePort extracts the TCP port from a listen address such as
// "localhost:9753" or ":9753".
func announcePort(addr string) (int, error) {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("invalid port %q in listen address", portStr)
	}
	return port, nil
}

// announceTXT describes the advertised API for browsing clients.
func announceTXT(deviceCount int) []string {
	return []string{
		"api=v1",
		fmt.Sprintf("devices=%d", deviceCount),
	}
}

// announce registers the control server with mDNS and keeps the
// registration alive until ctx is cancelled. Announce failures are
// logged and swallowed: the HTTP API works without discovery.
func (s *Server) announce(ctx context.Context) {
	port, err := announcePort(s.config.Addr)
	if err != nil {
		logging.Warn("mDNS announce skipped", zap.Error(err))
		return
	}

	txt := announceTXT(len(s.registry.List()))
	mdns, err := zeroconf.Register(serviceInstance, ServiceType, ServiceDomain, port, txt, nil)
	if err != nil {
		logging.Warn("mDNS registration failed", zap.Error(err))
		return
	}
	defer mdns.Shutdown()

	logging.Info("Announced control server via mDNS",
		zap.String("service", ServiceType),
		zap.Int("port", port),
	)

	<-ctx.Done()
}
