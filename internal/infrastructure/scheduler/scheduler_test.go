package scheduler

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

type fakeScanner struct {
	list []dto.ReplenishmentSuggestionDTO
	err  error
}

func (f *fakeScanner) GenerateReplenishmentList(context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	return f.list, f.err
}

func TestRunOnce_RegistraSugerencias(t *testing.T) {
	var buf bytes.Buffer
	scanner := &fakeScanner{list: []dto.ReplenishmentSuggestionDTO{{
		SKU: "SKU-1", CurrentStock: decimal.NewFromInt(2), SuggestedOrderQty: decimal.NewFromInt(8), Priority: 1,
	}}}
	s := New("", scanner, logger.NewWriter(&buf, "info"))

	n, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, buf.String(), `"sku":"SKU-1"`)
	assert.Contains(t, buf.String(), `"component":"scheduler"`)
}

func TestRunOnce_PropagaError(t *testing.T) {
	s := New("", &fakeScanner{err: errors.New("db caída")}, nil)
	_, err := s.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestStart_ExpresionInvalida(t *testing.T) {
	s := New("no es cron", &fakeScanner{}, nil)
	assert.Error(t, s.Start())
}

func TestStart_DeshabilitadoYValido(t *testing.T) {
	assert.NoError(t, New("", &fakeScanner{}, nil).Start())

	s := New("0 7 * * 1", &fakeScanner{}, nil)
	require.NoError(t, s.Start())
	s.Stop()
}
