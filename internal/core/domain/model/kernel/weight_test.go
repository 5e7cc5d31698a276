package kernel_test

import (
	"math"
	"testing"

	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeightFromKg(t *testing.T) {
	t.Run("converts_to_grams", func(t *testing.T) {
		w, err := kernel.NewWeightFromKg(3.5)

		require.NoError(t, err)
		assert.Equal(t, int64(3500), w.Grams())
		assert.InDelta(t, 3.5, w.Kg(), 0.0001)
	})

	t.Run("rounds_to_nearest_gram", func(t *testing.T) {
		w, err := kernel.NewWeightFromKg(0.0055)

		require.NoError(t, err)
		assert.Equal(t, int64(6), w.Grams())
	})

	t.Run("rejects_zero", func(t *testing.T) {
		_, err := kernel.NewWeightFromKg(0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_negative", func(t *testing.T) {
		_, err := kernel.NewWeightFromKg(-1)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_nan_and_inf", func(t *testing.T) {
		_, err := kernel.NewWeightFromKg(math.NaN())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = kernel.NewWeightFromKg(math.Inf(1))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestWeightFromGrams(t *testing.T) {
	t.Run("accepts_zero", func(t *testing.T) {
		w, err := kernel.WeightFromGrams(0)

		require.NoError(t, err)
		assert.True(t, w.IsZero())
	})

	t.Run("rejects_negative", func(t *testing.T) {
		_, err := kernel.WeightFromGrams(-1)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestWeight_Arithmetic(t *testing.T) {
	three, err := kernel.NewWeightFromKg(3)
	require.NoError(t, err)
	five, err := kernel.NewWeightFromKg(5)
	require.NoError(t, err)

	t.Run("add", func(t *testing.T) {
		assert.Equal(t, int64(8000), three.Add(five).Grams())
	})

	t.Run("sub", func(t *testing.T) {
		rest, subErr := five.Sub(three)

		require.NoError(t, subErr)
		assert.Equal(t, int64(2000), rest.Grams())
	})

	t.Run("sub_below_zero_is_an_error", func(t *testing.T) {
		_, subErr := three.Sub(five)

		require.ErrorIs(t, subErr, errs.ErrValueIsInvalid)
	})

	t.Run("less_or_equal", func(t *testing.T) {
		assert.True(t, three.LessOrEqual(five))
		assert.True(t, three.LessOrEqual(three))
		assert.False(t, five.LessOrEqual(three))
	})
}

func TestWeight_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var w kernel.Weight

		require.ErrorIs(t, w.Validate(), kernel.ErrWeightIsNotConstructed)
	})

	t.Run("zero_weight_is_constructed", func(t *testing.T) {
		require.NoError(t, kernel.ZeroWeight().Validate())
	})
}
