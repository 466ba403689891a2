package common

import (
	"github.com/futig/outreach-backend/internal/config"
	"github.com/futig/outreach-backend/internal/pkg/metrics"
	pkgHTTP "github.com/futig/outreach-backend/pkg/http"
)

// NewBaseConnector builds the outbound client shared by provider integrations:
// configured timeouts, debug request logging, bearer auth and Prometheus
// instrumentation, applied in that order. Logging goes to the request
// logger carried in the context.
func NewBaseConnector(cfg config.HTTPClientConfig) *pkgHTTP.Connector {
	connCfg := &pkgHTTP.ConnectorConfig{
		BaseURL: cfg.Url,
	}

	return pkgHTTP.NewConnector(
		connCfg,
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithRequestLogging(),
		pkgHTTP.WithAuthToken(cfg.Token),
		pkgHTTP.WithMetrics(metrics.OutboundRequests, metrics.OutboundDuration),
	)
}
