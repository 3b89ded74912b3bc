package service

import (
	"context"
	"testing"

	"shortlink/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestMappingService_CreateMapping(t *testing.T) {
	tests := []struct {
		name      string
		req       *CreateMappingRequest
		wantAlias string
		wantErr   error
	}{
		{
			name:      "custom alias",
			req:       &CreateMappingRequest{FullURL: "www.example.com", CustomAlias: "my-alias"},
			wantAlias: "my-alias",
		},
		{
			name: "empty custom alias is generated",
			req:  &CreateMappingRequest{FullURL: "https://example.com", CustomAlias: ""},
		},
		{
			name:    "reserved alias",
			req:     &CreateMappingRequest{FullURL: "https://example.com", CustomAlias: "urls"},
			wantErr: domain.ErrReservedAlias,
		},
		{
			name:    "missing host",
			req:     &CreateMappingRequest{FullURL: "https:///path"},
			wantErr: domain.ErrMissingHost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)

			reply, err := svc.CreateMapping(context.Background(), tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.wantAlias != "" {
				assert.Equal(t, tt.wantAlias, reply.Alias)
			} else {
				assert.Len(t, reply.Alias, domain.DefaultAliasLength)
			}
			assert.Equal(t, "http://localhost:8080/"+reply.Alias, reply.ShortURL)
		})
	}
}

func TestMappingService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.CreateMapping(ctx, &CreateMappingRequest{FullURL: "https://example.com", CustomAlias: "life"})
	require.NoError(t, err)

	got, err := svc.GetMapping(ctx, "life")
	require.NoError(t, err)
	assert.Equal(t, created.FullURL, got.FullURL)

	list, err := svc.ListMappings(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteMapping(ctx, "life"))

	_, err = svc.GetMapping(ctx, "life")
	assert.ErrorIs(t, err, domain.ErrAliasNotFound)
	assert.ErrorIs(t, svc.DeleteMapping(ctx, "life"), domain.ErrAliasNotFound)
}

func TestShortenerGRPC(t *testing.T) {
	ctx := context.Background()
	g := NewShortenerGRPC(newTestService(t))

	in, err := structpb.NewStruct(map[string]any{"fullUrl": "example.org/a", "customAlias": "grpc1"})
	require.NoError(t, err)
	created, err := g.CreateMapping(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "grpc1", created.GetFields()["alias"].GetStringValue())
	assert.Equal(t, "https://example.org/a", created.GetFields()["fullUrl"].GetStringValue())
	assert.Equal(t, "http://localhost:8080/grpc1", created.GetFields()["shortUrl"].GetStringValue())
	assert.NotEmpty(t, created.GetFields()["createdAt"].GetStringValue())

	got, err := g.GetMapping(ctx, wrapperspb.String("grpc1"))
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/a", got.GetFields()["fullUrl"].GetStringValue())

	list, err := g.ListMappings(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Len(t, list.GetFields()["mappings"].GetListValue().GetValues(), 1)

	_, err = g.DeleteMapping(ctx, wrapperspb.String("grpc1"))
	require.NoError(t, err)

	_, err = g.GetMapping(ctx, wrapperspb.String("grpc1"))
	assert.ErrorIs(t, err, domain.ErrAliasNotFound)
}

func TestShortenerGRPC_CreateMapping_MissingFullURL(t *testing.T) {
	g := NewShortenerGRPC(newTestService(t))

	_, err := g.CreateMapping(context.Background(), &structpb.Struct{})

	assert.Error(t, err)
}
