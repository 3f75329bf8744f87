// Package scheduler ejecuta tareas periódicas del almacén.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

const scanTimeout = 2 * time.Minute

// ReplenishmentScanner calcula la lista de reposición.
type ReplenishmentScanner interface {
	GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error)
}

// Scheduler corre el escaneo de reposición según una expresión cron estándar (5 campos).
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	scanner  ReplenishmentScanner
	log      *logger.Logger
}

// New crea el scheduler. Con schedule vacío Start no programa nada.
func New(schedule string, scanner ReplenishmentScanner, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		cron:     cron.New(),
		schedule: schedule,
		scanner:  scanner,
		log:      log.Component("scheduler"),
	}
}

// Start programa el escaneo y arranca el cron. Devuelve error si la expresión es inválida.
func (s *Scheduler) Start() error {
	if s.schedule == "" {
		s.log.Info().Msg("escaneo de reposición deshabilitado")
		return nil
	}
	if _, err := s.cron.AddFunc(s.schedule, s.scan); err != nil {
		return fmt.Errorf("scheduler: expresión cron %q: %w", s.schedule, err)
	}
	s.log.Info().Str("cron", s.schedule).Msg("iniciando scheduler")
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que termine el trabajo en curso.
func (s *Scheduler) Stop() {
	s.log.Info().Msg("deteniendo scheduler")
	<-s.cron.Stop().Done()
}

// RunOnce ejecuta un escaneo inmediato y devuelve cuántos productos requieren reposición.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, scanTimeout)
	defer cancel()

	list, err := s.scanner.GenerateReplenishmentList(ctx)
	if err != nil {
		return 0, err
	}
	for _, item := range list {
		s.log.Info().
			Str("sku", item.SKU).
			Str("current", item.CurrentStock.String()).
			Str("suggested", item.SuggestedOrderQty.String()).
			Int("priority", item.Priority).
			Msg("producto bajo punto de reorden")
	}
	return len(list), nil
}

func (s *Scheduler) scan() {
	n, err := s.RunOnce(context.Background())
	if err != nil {
		s.log.Error().Err(err).Msg("falló el escaneo de reposición")
		return
	}
	s.log.Info().Int("products", n).Msg("escaneo de reposición completado")
}
