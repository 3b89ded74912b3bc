package service

import (
	"testing"

	"shortlink/internal/biz"
	"shortlink/internal/conf"
	"shortlink/internal/data"
	"shortlink/internal/domain"
	"shortlink/internal/infra/eventbus"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// newTestService wires a MappingService over a private in-memory SQLite database.
func newTestService(t *testing.T) *MappingService {
	t.Helper()

	dc := &conf.Data{Database: &conf.Data_Database{
		Driver: "sqlite3",
		Source: "file:" + uuid.NewString() + "?mode=memory&cache=shared&_fk=1",
	}}
	d, cleanup, err := data.NewData(dc, log.DefaultLogger)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	repo := data.NewCachedMappingRepository(data.NewMappingRepo(d, log.DefaultLogger), data.NewMappingCache(d, dc, log.DefaultLogger))
	uow := data.NewUnitOfWork(d, eventbus.NewOutboxPublisher(data.ProvideDriver(d)), log.DefaultLogger)
	sc := &conf.Shortener{}
	sc.SetDefaults()
	uc := biz.NewMappingUsecase(repo, uow, domain.NewAliasPolicy(sc.AliasLength), sc, log.DefaultLogger)

	return NewMappingService(uc, log.DefaultLogger)
}
