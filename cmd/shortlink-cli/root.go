package main

import (
	"encoding/json"
	"io"
	"os"

	"shortlink/internal/biz"
	"shortlink/internal/conf"
	"shortlink/internal/data"
	"shortlink/internal/infra/eventbus"
	"shortlink/internal/service"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/spf13/cobra"
)

// Name is the name of the compiled software.
const Name = "shortlink-cli"

type rootOptions struct {
	conf string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          Name,
		Short:        "Manage short link mappings directly against the configured database",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.conf, "conf", "../../configs", "config path, eg: --conf config.yaml")

	cmd.AddCommand(
		newCreateCmd(opts),
		newGetCmd(opts),
		newDeleteCmd(opts),
		newListCmd(opts),
		newMigrateCmd(opts),
	)
	return cmd
}

// loadConfig reads the bootstrap config and builds a level-filtered logger on stderr.
func (o *rootOptions) loadConfig() (*conf.Bootstrap, log.Logger, error) {
	bc, err := conf.Load(o.conf)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewFilter(
		log.With(log.NewStdLogger(os.Stderr), "ts", log.DefaultTimestamp, "service.name", Name),
		log.FilterLevel(log.ParseLevel(bc.Log.Level)),
	)
	return bc, logger, nil
}

// newMappingService wires the mapping service without transports. Events land in the
// outbox and are forwarded by the server process.
func (o *rootOptions) newMappingService() (*service.MappingService, func(), error) {
	bc, logger, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	d, cleanup, err := data.NewData(bc.Data, logger)
	if err != nil {
		return nil, nil, err
	}
	repo := data.NewCachedMappingRepository(
		data.NewMappingRepo(d, logger),
		data.NewMappingCache(d, bc.Data, logger),
	)
	uow := data.NewUnitOfWork(d, eventbus.NewOutboxPublisher(data.ProvideDriver(d)), logger)
	uc := biz.NewMappingUsecase(repo, uow, biz.ProvideAliasPolicy(bc.Shortener), bc.Shortener, logger)

	return service.NewMappingService(uc, logger), cleanup, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
