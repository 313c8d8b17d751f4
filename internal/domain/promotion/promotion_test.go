package promotion

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/best-buy/internal/domain/domainerr"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func mustPercentOff(t *testing.T, percent string) *PercentOff {
	t.Helper()
	p, err := NewPercentOff("sale", d(percent))
	require.NoError(t, err)
	return p
}

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		promotion Promotion
		price     decimal.Decimal
		quantity  int
		want      decimal.Decimal
	}{
		{
			name:      "percent 20% off 5 units",
			promotion: mustPercentOff(t, "20"),
			price:     d("100"),
			quantity:  5,
			want:      d("400"),
		},
		{
			name:      "percent 0% is full price",
			promotion: mustPercentOff(t, "0"),
			price:     d("19.99"),
			quantity:  3,
			want:      d("59.97"),
		},
		{
			name:      "percent 100% is free",
			promotion: mustPercentOff(t, "100"),
			price:     d("1450"),
			quantity:  2,
			want:      d("0"),
		},
		{
			name:      "percent fractional",
			promotion: mustPercentOff(t, "12.5"),
			price:     d("80"),
			quantity:  1,
			want:      d("70"),
		},
		{
			name:      "second half price even quantity",
			promotion: NewSecondHalfPrice("Second Half price!"),
			price:     d("100"),
			quantity:  4,
			want:      d("300"),
		},
		{
			name:      "second half price odd quantity",
			promotion: NewSecondHalfPrice("Second Half price!"),
			price:     d("100"),
			quantity:  5,
			want:      d("400"),
		},
		{
			name:      "second half price single unit",
			promotion: NewSecondHalfPrice("Second Half price!"),
			price:     d("250"),
			quantity:  1,
			want:      d("250"),
		},
		{
			name:      "third one free exact groups",
			promotion: NewThirdOneFree("Third One Free!"),
			price:     d("100"),
			quantity:  6,
			want:      d("400"),
		},
		{
			name:      "third one free with remainder",
			promotion: NewThirdOneFree("Third One Free!"),
			price:     d("100"),
			quantity:  7,
			want:      d("500"),
		},
		{
			name:      "third one free below a group",
			promotion: NewThirdOneFree("Third One Free!"),
			price:     d("100"),
			quantity:  2,
			want:      d("200"),
		},
		{
			name:      "zero quantity costs nothing",
			promotion: NewThirdOneFree("Third One Free!"),
			price:     d("100"),
			quantity:  0,
			want:      d("0"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.promotion.Apply(tt.price, tt.quantity)
			assert.True(t, tt.want.Equal(got), "expected %s, got %s", tt.want, got)
		})
	}
}

func TestPercentOff_MatchesFormula(t *testing.T) {
	prices := []string{"0", "1", "9.99", "125", "1450"}
	for percent := 0; percent <= 100; percent += 5 {
		p := mustPercentOff(t, decimal.NewFromInt(int64(percent)).String())
		factor := decimal.NewFromInt(1).Sub(decimal.NewFromInt(int64(percent)).Div(hundred))

		for _, price := range prices {
			for q := 0; q <= 10; q++ {
				want := d(price).Mul(decimal.NewFromInt(int64(q))).Mul(factor)
				got := p.Apply(d(price), q)
				require.True(t, want.Equal(got), "percent=%d price=%s q=%d: expected %s, got %s",
					percent, price, q, want, got)
			}
		}
	}
}

func TestNewPercentOff_OutOfRange(t *testing.T) {
	for _, percent := range []string{"-0.01", "-50", "100.01", "150"} {
		t.Run(percent, func(t *testing.T) {
			p, err := NewPercentOff("bad", d(percent))
			require.ErrorIs(t, err, domainerr.ErrInvalidArgument)
			assert.Nil(t, p)

			var argErr *domainerr.ArgumentError
			require.True(t, errors.As(err, &argErr))
			assert.Equal(t, "percent", argErr.Field)
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("builds each kind", func(t *testing.T) {
		for _, kind := range []Kind{KindPercentOff, KindSecondHalfPrice, KindThirdOneFree} {
			p, err := New(Rule{Kind: kind, Name: string(kind), Percent: d("30")})
			require.NoError(t, err)
			assert.Equal(t, kind, p.Kind())
			assert.Equal(t, string(kind), p.Name())
		}
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := New(Rule{Kind: KindThirdOneFree})
		require.ErrorIs(t, err, domainerr.ErrInvalidArgument)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := New(Rule{Kind: "buy_one_get_two", Name: "x"})
		require.ErrorIs(t, err, domainerr.ErrInvalidArgument)
		assert.Contains(t, err.Error(), "buy_one_get_two")
	})

	t.Run("percent out of range", func(t *testing.T) {
		_, err := New(Rule{Kind: KindPercentOff, Name: "x", Percent: d("101")})
		require.ErrorIs(t, err, domainerr.ErrInvalidArgument)
	})
}

func TestRuleOf(t *testing.T) {
	p := mustPercentOff(t, "30")
	r := RuleOf(p)
	assert.Equal(t, KindPercentOff, r.Kind)
	assert.True(t, d("30").Equal(r.Percent))

	r = RuleOf(NewSecondHalfPrice("half"))
	assert.Equal(t, Rule{Kind: KindSecondHalfPrice, Name: "half"}, r)
}

func TestPromotion_SharedAcrossCallsIsStateless(t *testing.T) {
	p := NewSecondHalfPrice("half")
	first := p.Apply(d("10"), 3)
	_ = p.Apply(d("999"), 100)
	assert.True(t, first.Equal(p.Apply(d("10"), 3)))
}
