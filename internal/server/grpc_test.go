package server

import (
	"context"
	"testing"
	"time"

	"shortlink/internal/service"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestGRPCServer_RoundTrip(t *testing.T) {
	// Arrange
	bc := newTestConf()
	srv := NewGRPCServer(bc.Server, service.NewShortenerGRPC(newTestMappingService(t, bc)), log.DefaultLogger)
	endpoint, err := srv.Endpoint()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	go func() { _ = srv.Start(ctx) }()
	defer srv.Stop(context.Background())

	conn, err := grpc.NewClient(endpoint.Host, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	in, err := structpb.NewStruct(map[string]any{"fullUrl": "example.com", "customAlias": "rpc-1"})
	require.NoError(t, err)

	// Act
	created := new(structpb.Struct)
	err = conn.Invoke(ctx, service.OperationShortenerCreateMapping, in, created)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", created.GetFields()["fullUrl"].GetStringValue())

	got := new(structpb.Struct)
	require.NoError(t, conn.Invoke(ctx, service.OperationShortenerGetMapping, wrapperspb.String("rpc-1"), got))
	assert.Equal(t, "rpc-1", got.GetFields()["alias"].GetStringValue())

	list := new(structpb.Struct)
	require.NoError(t, conn.Invoke(ctx, service.OperationShortenerListMappings, &emptypb.Empty{}, list))
	assert.Len(t, list.GetFields()["mappings"].GetListValue().GetValues(), 1)

	require.NoError(t, conn.Invoke(ctx, service.OperationShortenerDeleteMapping, wrapperspb.String("rpc-1"), new(emptypb.Empty)))

	err = conn.Invoke(ctx, service.OperationShortenerGetMapping, wrapperspb.String("rpc-1"), new(structpb.Struct))
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Equal(t, "NOT_FOUND", errors.Reason(err))
}
