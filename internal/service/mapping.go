package service

import (
	"context"
	"time"

	"shortlink/internal/biz"
	"shortlink/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/samber/lo"
)

// CreateMappingRequest is the body of a create call. An empty CustomAlias means no alias.
type CreateMappingRequest struct {
	FullURL     string `json:"fullUrl"`
	CustomAlias string `json:"customAlias,omitempty"`
}

// MappingReply is the public view of a mapping.
type MappingReply struct {
	Alias     string    `json:"alias"`
	FullURL   string    `json:"fullUrl"`
	ShortURL  string    `json:"shortUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// MappingService adapts the mapping usecase to the HTTP and gRPC transports.
type MappingService struct {
	uc  *biz.MappingUsecase
	log *log.Helper
}

// NewMappingService creates a new MappingService.
func NewMappingService(uc *biz.MappingUsecase, logger log.Logger) *MappingService {
	return &MappingService{
		uc:  uc,
		log: log.NewHelper(log.With(logger, "module", "service/mapping")),
	}
}

// CreateMapping shortens req.FullURL.
func (s *MappingService) CreateMapping(ctx context.Context, req *CreateMappingRequest) (*MappingReply, error) {
	alias := domain.NoAlias()
	if req.CustomAlias != "" {
		alias = domain.WithAlias(req.CustomAlias)
	}

	m, err := s.uc.CreateShortURL(ctx, req.FullURL, alias)
	if err != nil {
		return nil, err
	}
	return toMappingReply(m), nil
}

// GetMapping returns the mapping stored under alias.
func (s *MappingService) GetMapping(ctx context.Context, alias string) (*MappingReply, error) {
	m, err := s.uc.GetByAlias(ctx, alias)
	if err != nil {
		return nil, err
	}
	return toMappingReply(m), nil
}

// DeleteMapping removes the mapping stored under alias.
func (s *MappingService) DeleteMapping(ctx context.Context, alias string) error {
	return s.uc.DeleteByAlias(ctx, alias)
}

// ListMappings returns every mapping, newest first.
func (s *MappingService) ListMappings(ctx context.Context) ([]*MappingReply, error) {
	mappings, err := s.uc.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(mappings, func(m *domain.Mapping, _ int) *MappingReply {
		return toMappingReply(m)
	}), nil
}

func toMappingReply(m *domain.Mapping) *MappingReply {
	return &MappingReply{
		Alias:     m.Alias,
		FullURL:   m.FullURL,
		ShortURL:  m.ShortURL,
		CreatedAt: m.CreatedAt,
	}
}
