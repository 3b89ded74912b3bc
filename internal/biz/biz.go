package biz

import (
	"shortlink/internal/conf"
	"shortlink/internal/domain"

	"github.com/google/wire"
)

// ProviderSet is biz providers.
var ProviderSet = wire.NewSet(NewMappingUsecase, ProvideAliasPolicy)

// ProvideAliasPolicy builds the alias policy from the shortener configuration.
func ProvideAliasPolicy(c *conf.Shortener) *domain.AliasPolicy {
	return domain.NewAliasPolicy(c.AliasLength)
}
