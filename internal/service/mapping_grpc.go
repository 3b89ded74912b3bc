package service

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/samber/lo"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ShortenerServer is the server API for the shortlink.v1.Shortener service.
// Messages are protobuf well-known types: mappings travel as Structs with the
// same camelCase keys as the HTTP API.
type ShortenerServer interface {
	CreateMapping(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetMapping(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	DeleteMapping(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	ListMappings(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// Compile-time interface check
var _ ShortenerServer = (*ShortenerGRPC)(nil)

// ShortenerGRPC serves MappingService over gRPC.
type ShortenerGRPC struct {
	svc *MappingService
}

// NewShortenerGRPC wraps svc for the gRPC transport.
func NewShortenerGRPC(svc *MappingService) *ShortenerGRPC {
	return &ShortenerGRPC{svc: svc}
}

// RegisterShortenerServer registers the Shortener service with s.
func RegisterShortenerServer(s grpc.ServiceRegistrar, srv ShortenerServer) {
	s.RegisterService(&Shortener_ServiceDesc, srv)
}

func (g *ShortenerGRPC) CreateMapping(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	fields := in.GetFields()
	fullURL, ok := fields["fullUrl"]
	if !ok {
		return nil, errors.BadRequest("MISSING_FIELD", "fullUrl is required")
	}

	reply, err := g.svc.CreateMapping(ctx, &CreateMappingRequest{
		FullURL:     fullURL.GetStringValue(),
		CustomAlias: fields["customAlias"].GetStringValue(),
	})
	if err != nil {
		return nil, err
	}
	return mappingStruct(reply)
}

func (g *ShortenerGRPC) GetMapping(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	reply, err := g.svc.GetMapping(ctx, in.GetValue())
	if err != nil {
		return nil, err
	}
	return mappingStruct(reply)
}

func (g *ShortenerGRPC) DeleteMapping(ctx context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if err := g.svc.DeleteMapping(ctx, in.GetValue()); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

func (g *ShortenerGRPC) ListMappings(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	replies, err := g.svc.ListMappings(ctx)
	if err != nil {
		return nil, err
	}
	return structpb.NewStruct(map[string]any{
		"mappings": lo.Map(replies, func(r *MappingReply, _ int) any {
			return mappingFields(r)
		}),
	})
}

func mappingFields(r *MappingReply) map[string]any {
	return map[string]any{
		"alias":     r.Alias,
		"fullUrl":   r.FullURL,
		"shortUrl":  r.ShortURL,
		"createdAt": r.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func mappingStruct(r *MappingReply) (*structpb.Struct, error) {
	return structpb.NewStruct(mappingFields(r))
}

func _Shortener_CreateMapping_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ShortenerServer).CreateMapping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: OperationShortenerCreateMapping,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ShortenerServer).CreateMapping(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _Shortener_GetMapping_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ShortenerServer).GetMapping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: OperationShortenerGetMapping,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ShortenerServer).GetMapping(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Shortener_DeleteMapping_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ShortenerServer).DeleteMapping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: OperationShortenerDeleteMapping,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ShortenerServer).DeleteMapping(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Shortener_ListMappings_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ShortenerServer).ListMappings(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: OperationShortenerListMappings,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ShortenerServer).ListMappings(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// Shortener_ServiceDesc is the grpc.ServiceDesc for the Shortener service.
var Shortener_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "shortlink.v1.Shortener",
	HandlerType: (*ShortenerServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateMapping",
			Handler:    _Shortener_CreateMapping_Handler,
		},
		{
			MethodName: "GetMapping",
			Handler:    _Shortener_GetMapping_Handler,
		},
		{
			MethodName: "DeleteMapping",
			Handler:    _Shortener_DeleteMapping_Handler,
		},
		{
			MethodName: "ListMappings",
			Handler:    _Shortener_ListMappings_Handler,
		},
	},
	Streams: []grpc.StreamDesc{},
}
