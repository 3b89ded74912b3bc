package biz

import (
	"context"
	"strings"

	"shortlink/internal/conf"
	"shortlink/internal/domain"
	"shortlink/internal/domain/event"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
)

// MappingUsecase creates, resolves, deletes and lists alias mappings.
// It holds no mutable state and is safe for concurrent use.
type MappingUsecase struct {
	repo        domain.MappingRepository
	uow         domain.UnitOfWork
	policy      *domain.AliasPolicy
	baseURL     string
	maxAttempts int
	log         *log.Helper
}

// NewMappingUsecase creates a new MappingUsecase.
func NewMappingUsecase(
	repo domain.MappingRepository,
	uow domain.UnitOfWork,
	policy *domain.AliasPolicy,
	c *conf.Shortener,
	logger log.Logger,
) *MappingUsecase {
	baseURL := strings.TrimRight(c.BaseURL, "/")
	if baseURL == "" {
		baseURL = conf.DefaultBaseURL
	}
	maxAttempts := c.MaxGenerationAttempts
	if maxAttempts <= 0 {
		maxAttempts = conf.DefaultMaxGenerationAttempts
	}
	return &MappingUsecase{
		repo:        repo,
		uow:         uow,
		policy:      policy,
		baseURL:     baseURL,
		maxAttempts: maxAttempts,
		log:         log.NewHelper(log.With(logger, "module", "biz/mapping")),
	}
}

// CreateShortURL normalizes fullURL, settles on an alias and persists the mapping.
// A present alias is checked for reserved words, then format, then uniqueness.
// An absent alias is generated, retrying collisions up to the configured attempt budget.
func (uc *MappingUsecase) CreateShortURL(ctx context.Context, fullURL string, alias domain.OptionalAlias) (*domain.Mapping, error) {
	normalized, err := domain.NormalizeURL(fullURL)
	if err != nil {
		return nil, err
	}

	custom, hasCustom := alias.Get()
	if hasCustom {
		if uc.policy.IsReserved(custom) {
			return nil, domain.ErrReservedAlias.WithMetadata(map[string]string{"alias": custom})
		}
		if err := uc.policy.ValidateFormat(alias); err != nil {
			return nil, err
		}
	}

	var saved *domain.Mapping
	recorder := &domain.EventRecorder{}
	err = uc.uow.Do(ctx, func(ctx context.Context) error {
		var (
			chosen string
			err    error
		)
		if hasCustom {
			chosen, err = uc.claimCustom(ctx, custom)
		} else {
			chosen, err = uc.claimGenerated(ctx)
		}
		if err != nil {
			return err
		}

		saved, err = uc.repo.Save(ctx, domain.NewMapping(chosen, normalized, domain.ShortURLFor(uc.baseURL, chosen)))
		if err != nil {
			if errors.Is(err, domain.ErrAliasTaken) {
				if hasCustom {
					return domain.ErrDuplicateAlias.WithCause(err)
				}
				return domain.ErrGenerationCollision.WithCause(err)
			}
			return domain.StorageError(err)
		}

		recorder.Record(event.NewMappingCreated(saved.Alias, saved.FullURL, saved.ShortURL))
		return nil
	}, recorder)
	if err != nil {
		return nil, domain.StorageError(err)
	}

	uc.log.WithContext(ctx).Infof("created mapping %s -> %s", saved.Alias, saved.FullURL)
	return saved, nil
}

func (uc *MappingUsecase) claimCustom(ctx context.Context, alias string) (string, error) {
	exists, err := uc.repo.Exists(ctx, alias)
	if err != nil {
		return "", domain.StorageError(err)
	}
	if exists {
		return "", domain.ErrDuplicateAlias.WithMetadata(map[string]string{"alias": alias})
	}
	return alias, nil
}

// claimGenerated draws candidates until one is free. Reserved candidates count as taken.
func (uc *MappingUsecase) claimGenerated(ctx context.Context) (string, error) {
	var chosen string
	for attempt := 1; attempt <= uc.maxAttempts; attempt++ {
		candidate, err := uc.policy.GenerateCandidate()
		if err != nil {
			return "", domain.GenerationExhausted(attempt).WithCause(err)
		}
		if uc.policy.IsReserved(candidate) {
			continue
		}

		exists, err := uc.repo.Exists(ctx, candidate)
		if err != nil {
			return "", domain.StorageError(err)
		}
		if !exists {
			chosen = candidate
			break
		}
		uc.log.WithContext(ctx).Debugf("generated alias %s collided on attempt %d", candidate, attempt)
	}
	if chosen == "" {
		uc.log.WithContext(ctx).Warnf("alias generation exhausted after %d attempts", uc.maxAttempts)
		return "", domain.GenerationExhausted(uc.maxAttempts)
	}

	// The winner may have been claimed between the loop and this check.
	exists, err := uc.repo.Exists(ctx, chosen)
	if err != nil {
		return "", domain.StorageError(err)
	}
	if exists {
		return "", domain.ErrGenerationCollision.WithMetadata(map[string]string{"alias": chosen})
	}
	return chosen, nil
}

// GetByAlias returns the mapping stored under alias. The alias is not validated.
func (uc *MappingUsecase) GetByAlias(ctx context.Context, alias string) (*domain.Mapping, error) {
	m, err := uc.repo.Find(ctx, alias)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if m == nil {
		return nil, domain.ErrAliasNotFound.WithMetadata(map[string]string{"alias": alias})
	}
	return m, nil
}

// DeleteByAlias removes the mapping stored under alias.
func (uc *MappingUsecase) DeleteByAlias(ctx context.Context, alias string) error {
	recorder := &domain.EventRecorder{}
	err := uc.uow.Do(ctx, func(ctx context.Context) error {
		exists, err := uc.repo.Exists(ctx, alias)
		if err != nil {
			return domain.StorageError(err)
		}
		if !exists {
			return domain.ErrAliasNotFound.WithMetadata(map[string]string{"alias": alias})
		}
		if err := uc.repo.Delete(ctx, alias); err != nil {
			return domain.StorageError(err)
		}

		recorder.Record(event.NewMappingDeleted(alias))
		return nil
	}, recorder)
	if err != nil {
		return domain.StorageError(err)
	}

	uc.log.WithContext(ctx).Infof("deleted mapping %s", alias)
	return nil
}

// ListAll returns every stored mapping, newest first.
func (uc *MappingUsecase) ListAll(ctx context.Context) ([]*domain.Mapping, error) {
	mappings, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	return mappings, nil
}
