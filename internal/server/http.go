package server

import (
	"shortlink/internal/conf"
	"shortlink/internal/service"
	"shortlink/pkg/problemdetails"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/ratelimit"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
)

// NewHTTPServer new an HTTP server.
func NewHTTPServer(c *conf.Server, svc *service.MappingService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			ratelimit.Server(),
			logging.Server(logger),
		),
		http.ErrorEncoder(problemdetails.ErrorEncoder),
	}
	if c.HTTP != nil {
		if c.HTTP.Network != "" {
			opts = append(opts, http.Network(c.HTTP.Network))
		}
		if c.HTTP.Addr != "" {
			opts = append(opts, http.Address(c.HTTP.Addr))
		}
		if c.HTTP.Timeout > 0 {
			opts = append(opts, http.Timeout(c.HTTP.Timeout.AsDuration()))
		}
	}
	srv := http.NewServer(opts...)
	service.RegisterMappingHTTPServer(srv, svc)
	return srv
}
