package service

import (
	"context"
	nethttp "net/http"

	"github.com/go-kratos/kratos/v2/transport/http"
)

const (
	OperationShortenerCreateMapping = "/shortlink.v1.Shortener/CreateMapping"
	OperationShortenerGetMapping    = "/shortlink.v1.Shortener/GetMapping"
	OperationShortenerDeleteMapping = "/shortlink.v1.Shortener/DeleteMapping"
	OperationShortenerListMappings  = "/shortlink.v1.Shortener/ListMappings"
	OperationShortenerRedirect      = "/shortlink.v1.Shortener/Redirect"
)

// RegisterMappingHTTPServer mounts the mapping routes. Fixed paths are registered
// before the catch-all alias routes so that they take precedence.
func RegisterMappingHTTPServer(s *http.Server, srv *MappingService) {
	r := s.Route("/")
	r.POST("/shorten", _Mapping_Create_HTTP_Handler(srv))
	r.GET("/urls", _Mapping_List_HTTP_Handler(srv))
	r.GET("/urls/{alias}", _Mapping_Get_HTTP_Handler(srv))
	r.GET("/{alias}", _Mapping_Redirect_HTTP_Handler(srv))
	r.DELETE("/{alias}", _Mapping_Delete_HTTP_Handler(srv))
}

func _Mapping_Create_HTTP_Handler(srv *MappingService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in CreateMappingRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationShortenerCreateMapping)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.CreateMapping(ctx, req.(*CreateMappingRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusCreated, out.(*MappingReply))
	}
}

func _Mapping_List_HTTP_Handler(srv *MappingService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		http.SetOperation(ctx, OperationShortenerListMappings)
		h := ctx.Middleware(func(ctx context.Context, _ any) (any, error) {
			return srv.ListMappings(ctx)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, out.([]*MappingReply))
	}
}

func _Mapping_Get_HTTP_Handler(srv *MappingService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		alias := ctx.Vars().Get("alias")
		http.SetOperation(ctx, OperationShortenerGetMapping)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.GetMapping(ctx, req.(string))
		})
		out, err := h(ctx, alias)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, out.(*MappingReply))
	}
}

func _Mapping_Redirect_HTTP_Handler(srv *MappingService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		alias := ctx.Vars().Get("alias")
		http.SetOperation(ctx, OperationShortenerRedirect)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.GetMapping(ctx, req.(string))
		})
		out, err := h(ctx, alias)
		if err != nil {
			return err
		}
		nethttp.Redirect(ctx.Response(), ctx.Request(), out.(*MappingReply).FullURL, nethttp.StatusFound)
		return nil
	}
}

func _Mapping_Delete_HTTP_Handler(srv *MappingService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		alias := ctx.Vars().Get("alias")
		http.SetOperation(ctx, OperationShortenerDeleteMapping)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return nil, srv.DeleteMapping(ctx, req.(string))
		})
		if _, err := h(ctx, alias); err != nil {
			return err
		}
		ctx.Response().WriteHeader(nethttp.StatusNoContent)
		return nil
	}
}
