package semiring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garvys-org/gofst/semiring"
)

func TestTropicalWeight(t *testing.T) {
	t.Run("zero and one", func(t *testing.T) {
		assert.True(t, semiring.Tropical.Zero().IsZero())
		assert.True(t, semiring.Tropical.One().IsOne())
	})

	t.Run("plus is min", func(t *testing.T) {
		a := semiring.TropicalWeight(2)
		b := semiring.TropicalWeight(5)
		assert.Equal(t, semiring.TropicalWeight(2), a.Plus(b))
		assert.Equal(t, semiring.TropicalWeight(2), b.Plus(a))
	})

	t.Run("times is plus", func(t *testing.T) {
		a := semiring.TropicalWeight(2)
		b := semiring.TropicalWeight(5)
		assert.Equal(t, semiring.TropicalWeight(7), a.Times(b))
	})

	t.Run("zero absorbs times", func(t *testing.T) {
		z := semiring.Tropical.Zero().(semiring.TropicalWeight)
		a := semiring.TropicalWeight(3)
		assert.True(t, a.Times(z).IsZero())
	})

	t.Run("divide", func(t *testing.T) {
		div, ok := semiring.Tropical.(semiring.WeaklyDivisibleSemiring)
		require.True(t, ok)
		q, err := div.Divide(semiring.TropicalWeight(7), semiring.TropicalWeight(2), semiring.DivideAny)
		require.NoError(t, err)
		assert.Equal(t, semiring.TropicalWeight(5), q)
	})

	t.Run("properties", func(t *testing.T) {
		p := semiring.Tropical.Properties()
		assert.True(t, p.Has(semiring.Idempotent))
		assert.True(t, p.Has(semiring.Path))
		assert.True(t, p.Has(semiring.WeaklyDivisible))
	})
}

func TestLogWeight(t *testing.T) {
	t.Run("not idempotent", func(t *testing.T) {
		assert.False(t, semiring.Log.Properties().Has(semiring.Idempotent))
	})

	t.Run("plus approximates log-sum-exp", func(t *testing.T) {
		a := semiring.LogWeight(1.0)
		b := semiring.LogWeight(1.0)
		got := a.Plus(b).(semiring.LogWeight)
		// -log(e^-1 + e^-1) = 1 - log(2)
		want := semiring.LogWeight(1.0 - 0.6931471805599453)
		assert.True(t, got.ApproxEqual(want, 1e-9))
	})

	t.Run("zero identity", func(t *testing.T) {
		z := semiring.Log.Zero()
		a := semiring.LogWeight(4)
		assert.Equal(t, a, a.Plus(z))
	})
}

func TestProbabilityWeight(t *testing.T) {
	t.Run("plus and times", func(t *testing.T) {
		a := semiring.ProbabilityWeight(0.5)
		b := semiring.ProbabilityWeight(0.25)
		assert.Equal(t, semiring.ProbabilityWeight(0.75), a.Plus(b))
		assert.Equal(t, semiring.ProbabilityWeight(0.125), a.Times(b))
	})

	t.Run("divide by zero weight requires zero dividend", func(t *testing.T) {
		div := semiring.Probability.(semiring.WeaklyDivisibleSemiring)
		_, err := div.Divide(semiring.ProbabilityWeight(1), semiring.ProbabilityWeight(0), semiring.DivideAny)
		assert.Error(t, err)

		q, err := div.Divide(semiring.ProbabilityWeight(0), semiring.ProbabilityWeight(0), semiring.DivideAny)
		require.NoError(t, err)
		assert.True(t, q.IsZero())
	})
}

func TestBooleanWeight(t *testing.T) {
	assert.Equal(t, semiring.BooleanWeight(true), semiring.BooleanWeight(false).Plus(semiring.BooleanWeight(true)))
	assert.Equal(t, semiring.BooleanWeight(false), semiring.BooleanWeight(false).Times(semiring.BooleanWeight(true)))
	assert.True(t, semiring.Boolean.Properties().Has(semiring.Idempotent))
}

func TestIntegerWeight(t *testing.T) {
	a := semiring.IntegerWeight(3)
	b := semiring.IntegerWeight(4)
	assert.Equal(t, semiring.IntegerWeight(7), a.Plus(b))
	assert.Equal(t, semiring.IntegerWeight(12), a.Times(b))
	assert.False(t, semiring.Integer.Properties().Has(semiring.Idempotent))
}

func TestStringWeight(t *testing.T) {
	t.Run("times concatenates", func(t *testing.T) {
		a := semiring.StringOf(1, 2)
		b := semiring.StringOf(3, 4)
		got := a.Times(b).(semiring.StringWeight)
		assert.Equal(t, []uint32{1, 2, 3, 4}, got.Labels())
	})

	t.Run("plus is longest common prefix", func(t *testing.T) {
		a := semiring.StringOf(1, 2, 3)
		b := semiring.StringOf(1, 2, 9)
		got := a.Plus(b).(semiring.StringWeight)
		assert.Equal(t, []uint32{1, 2}, got.Labels())
	})

	t.Run("infinity is plus identity", func(t *testing.T) {
		inf := semiring.StringInfinity()
		a := semiring.StringOf(5, 6)
		assert.True(t, a.Plus(inf).ApproxEqual(a, 0))
		assert.True(t, inf.Plus(a).ApproxEqual(a, 0))
	})

	t.Run("infinity absorbs times", func(t *testing.T) {
		inf := semiring.StringInfinity()
		a := semiring.StringOf(5, 6)
		assert.True(t, a.Times(inf).IsZero())
	})

	t.Run("divide removes common prefix", func(t *testing.T) {
		div := semiring.String.(semiring.WeaklyDivisibleSemiring)
		a := semiring.StringOf(1, 2, 3)
		b := semiring.StringOf(1, 2)
		q, err := div.Divide(a, b, semiring.DivideLeft)
		require.NoError(t, err)
		assert.Equal(t, []uint32{3}, q.(semiring.StringWeight).Labels())
	})
}

func TestGallicWeight(t *testing.T) {
	gs := semiring.NewGallicSemiring(semiring.Tropical)

	t.Run("zero and one", func(t *testing.T) {
		assert.True(t, gs.Zero().IsZero())
		assert.True(t, gs.One().IsOne())
	})

	t.Run("times combines both components", func(t *testing.T) {
		a := semiring.GallicWeight{Str: semiring.StringOf(1), W: semiring.TropicalWeight(2)}
		b := semiring.GallicWeight{Str: semiring.StringOf(2), W: semiring.TropicalWeight(3)}
		got := a.Times(b).(semiring.GallicWeight)
		assert.Equal(t, []uint32{1, 2}, got.Str.Labels())
		assert.Equal(t, semiring.TropicalWeight(5), got.W)
	})

	t.Run("plus takes componentwise plus", func(t *testing.T) {
		a := semiring.GallicWeight{Str: semiring.StringOf(1, 2), W: semiring.TropicalWeight(2)}
		b := semiring.GallicWeight{Str: semiring.StringOf(1, 9), W: semiring.TropicalWeight(1)}
		got := a.Plus(b).(semiring.GallicWeight)
		assert.Equal(t, []uint32{1}, got.Str.Labels())
		assert.Equal(t, semiring.TropicalWeight(1), got.W)
	})
}
