package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/almacen-api/internal/application/analysis"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// Runner es lo que el scheduler sabe disparar.
type Runner interface {
	Run(ctx context.Context, params analysis.Params) error
}

// Scheduler dispara la corrida de análisis según el cron configurado.
// Si una corrida sigue en curso cuando toca la siguiente, la nueva se salta.
type Scheduler struct {
	cron    *cron.Cron
	runner  Runner
	cfg     config.AnalysisConfig
	log     *logger.Logger
	running atomic.Bool
}

// New construye el scheduler sin arrancarlo.
func New(runner Runner, cfg config.AnalysisConfig, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		runner: runner,
		cfg:    cfg,
		log:    log,
	}
}

// Start registra el job y arranca el cron en su propia goroutine.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.CronSpec, s.fire); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Str("cron", s.cfg.CronSpec).Msg("scheduler de análisis iniciado")
	return nil
}

// Stop detiene el cron y espera a que termine el job en curso.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler de análisis detenido")
}

func (s *Scheduler) fire() {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Warn().Msg("corrida de análisis aún en curso, se salta la ejecución")
		return
	}
	defer s.running.Store(false)

	started := time.Now().UTC()
	params := analysis.ParamsFromConfig(s.cfg, started)
	if err := s.runner.Run(context.Background(), params); err != nil {
		s.log.Error().Err(err).Msg("corrida de análisis programada falló")
		return
	}
	s.log.Info().
		Dur("duration", time.Since(started)).
		Msg("corrida de análisis programada completada")
}
