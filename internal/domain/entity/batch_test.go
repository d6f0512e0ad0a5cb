package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaflor/panaderia-api/internal/domain"
)

func TestNewBatch_Invariantes(t *testing.T) {
	now := time.Now()

	b, err := NewBatch("harina", decimal.NewFromInt(10), decimal.NewFromInt(3), now)
	require.NoError(t, err)
	assert.True(t, b.Remaining.Equal(b.Initial), "remaining arranca igual a initial")

	_, err = NewBatch("harina", decimal.Zero, decimal.Zero, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero no es un lote válido")

	_, err = NewBatch("harina", decimal.NewFromInt(-5), decimal.Zero, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewBatch("", decimal.NewFromInt(5), decimal.Zero, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBatch_Consume(t *testing.T) {
	now := time.Now()
	b, err := NewBatch("harina", decimal.NewFromInt(10), decimal.NewFromInt(3), now)
	require.NoError(t, err)

	require.NoError(t, b.Consume(decimal.NewFromInt(4)))
	assert.True(t, b.Remaining.Equal(decimal.NewFromInt(6)))

	// nunca negativo
	err = b.Consume(decimal.NewFromInt(7))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, b.Remaining.Equal(decimal.NewFromInt(6)), "un consumo rechazado no muta el lote")

	err = b.Consume(decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// agotar exacto es válido
	require.NoError(t, b.Consume(decimal.NewFromInt(6)))
	assert.True(t, b.Remaining.IsZero())
}

func TestBatch_IsExpired(t *testing.T) {
	now := time.Now()
	b, _ := NewBatch("harina", decimal.NewFromInt(1), decimal.Zero, now)
	assert.False(t, b.IsExpired(now), "sin fecha de vencimiento nunca vence")

	ayer := now.AddDate(0, 0, -1)
	b.ExpiresAt = &ayer
	assert.True(t, b.IsExpired(now))
}
