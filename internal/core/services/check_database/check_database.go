package checkdatabase

import (
	"context"
	e "regportal/internal/core/domain/errors"
	"regportal/internal/core/domain/health"
	"regportal/internal/core/domain/logging"
	"regportal/internal/core/services"
)

type Input struct{}

type Result struct {
	Database string
}

type service struct {
	log    logging.Logger
	pinger health.Pinger
}

func New(log logging.Logger, pinger health.Pinger) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if pinger == nil {
		panic(e.NewNilArgumentError("pinger"))
	}
	return &service{log: log, pinger: pinger}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	result.Database = s.pinger.Name()
	if err := s.pinger.Ping(ctx); err != nil {
		s.log.Warning(
			ctx,
			"Database ping failed.",
			logging.Entry("database", result.Database),
			logging.Entry("err", err),
		)
		return result, err
	}
	return result, nil
}
