package server

import (
	"testing"

	"shortlink/internal/biz"
	"shortlink/internal/conf"
	"shortlink/internal/data"
	"shortlink/internal/infra/eventbus"
	"shortlink/internal/service"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestConf() *conf.Bootstrap {
	bc := &conf.Bootstrap{
		Server: &conf.Server{
			HTTP: &conf.Server_Transport{Addr: "127.0.0.1:0"},
			GRPC: &conf.Server_Transport{Addr: "127.0.0.1:0"},
		},
		Data: &conf.Data{Database: &conf.Data_Database{
			Driver: "sqlite3",
			Source: "file:" + uuid.NewString() + "?mode=memory&cache=shared&_fk=1",
		}},
	}
	bc.SetDefaults()
	return bc
}

func newTestMappingService(t *testing.T, bc *conf.Bootstrap) *service.MappingService {
	t.Helper()

	d, cleanup, err := data.NewData(bc.Data, log.DefaultLogger)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	repo := data.NewCachedMappingRepository(data.NewMappingRepo(d, log.DefaultLogger), data.NewMappingCache(d, bc.Data, log.DefaultLogger))
	uow := data.NewUnitOfWork(d, eventbus.NewOutboxPublisher(data.ProvideDriver(d)), log.DefaultLogger)
	uc := biz.NewMappingUsecase(repo, uow, biz.ProvideAliasPolicy(bc.Shortener), bc.Shortener, log.DefaultLogger)
	return service.NewMappingService(uc, log.DefaultLogger)
}
