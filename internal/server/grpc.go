package server

import (
	"shortlink/internal/conf"
	"shortlink/internal/service"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/grpc"
)

// NewGRPCServer new a gRPC server.
func NewGRPCServer(c *conf.Server, shortener *service.ShortenerGRPC, logger log.Logger) *grpc.Server {
	var opts = []grpc.ServerOption{
		grpc.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
	}
	if c.GRPC != nil {
		if c.GRPC.Network != "" {
			opts = append(opts, grpc.Network(c.GRPC.Network))
		}
		if c.GRPC.Addr != "" {
			opts = append(opts, grpc.Address(c.GRPC.Addr))
		}
		if c.GRPC.Timeout > 0 {
			opts = append(opts, grpc.Timeout(c.GRPC.Timeout.AsDuration()))
		}
	}
	srv := grpc.NewServer(opts...)
	service.RegisterShortenerServer(srv, shortener)
	return srv
}
