package kernel_test

import (
	"math"
	"testing"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := kernel.NewMoney(1050)
	require.NoError(t, err)
	assert.Equal(t, int64(1050), m.Cents())
	assert.Equal(t, "10.50", m.String())
	require.NoError(t, m.Validate())

	_, err = kernel.NewMoney(-1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	var zero kernel.Money
	assert.Equal(t, kernel.ErrMoneyIsNotConstructed, zero.Validate())
	require.NoError(t, kernel.ZeroMoney().Validate())
}

func TestMoney_Arithmetic(t *testing.T) {
	burger, _ := kernel.NewMoney(1000)
	fries, _ := kernel.NewMoney(500)

	burgers, err := burger.Multiply(2)
	require.NoError(t, err)
	total, err := kernel.ZeroMoney().Add(burgers)
	require.NoError(t, err)
	total, err = total.Add(fries)
	require.NoError(t, err)

	assert.Equal(t, int64(2500), total.Cents())
	assert.Equal(t, "25.00", total.String())
	require.NoError(t, total.Validate())
}

func TestMoney_ArithmeticOverflow(t *testing.T) {
	thousand, _ := kernel.NewMoney(100000)
	largest, _ := kernel.NewMoney(math.MaxInt64)
	one, _ := kernel.NewMoney(1)

	_, err := thousand.Multiply(1 << 47)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = one.Multiply(-1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = largest.Add(one)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	same, err := largest.Multiply(1)
	require.NoError(t, err)
	assert.True(t, same.IsEqual(largest))

	zero, err := largest.Multiply(0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), zero.Cents())
}

func TestMoney_String(t *testing.T) {
	for cents, want := range map[int64]string{0: "0.00", 5: "0.05", 99: "0.99", 100: "1.00", 123456: "1234.56"} {
		m, err := kernel.NewMoney(cents)
		require.NoError(t, err)
		assert.Equal(t, want, m.String())
	}
}
