package quant

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference contract: S=100, K=100, r=5%, vol=20%, T=1y. Textbook values:
// d1=0.35, d2=0.15, C=10.4506, P=5.5735.
const (
	refSpot   = 100.0
	refStrike = 100.0
	refRate   = 0.05
	refVol    = 0.20
	refT      = 1.0
)

func TestBSCallPriceReference(t *testing.T) {
	price := BSCallPrice(refSpot, refStrike, refRate, refVol, refT)
	assert.InDelta(t, 10.4506, price, 1e-4)
}

func TestBSPutPriceReference(t *testing.T) {
	price := BSPutPrice(refSpot, refStrike, refRate, refVol, refT)
	assert.InDelta(t, 5.5735, price, 1e-4)
}

func TestBSPriceCollapsesToIntrinsicAtExpiry(t *testing.T) {
	assert.Equal(t, 10.0, BSCallPrice(110, 100, 0.05, 0.2, 0))
	assert.Equal(t, 0.0, BSCallPrice(90, 100, 0.05, 0.2, 0))
	assert.Equal(t, 10.0, BSPutPrice(90, 100, 0.05, 0.2, 0))
	assert.Equal(t, 0.0, BSPutPrice(110, 100, 0.05, 0.2, 0))
}

func TestBSPriceCollapsesToIntrinsicAtZeroVol(t *testing.T) {
	assert.Equal(t, 15.0, BSCallPrice(115, 100, 0.05, 0, 1))
	assert.Equal(t, 15.0, BSPutPrice(85, 100, 0.05, 0, 1))
}

func TestCallGreeksReference(t *testing.T) {
	g := CallGreeks(refSpot, refStrike, refRate, refVol, refT)

	assert.InDelta(t, 0.6368, g.Delta, 1e-4)
	assert.InDelta(t, 0.018762, g.Gamma, 1e-5)
	assert.InDelta(t, 37.5240, g.Vega, 1e-3)
	assert.InDelta(t, -6.4140, g.Theta, 1e-3)
	assert.InDelta(t, 53.2325, g.Rho, 1e-3)
}

func TestPutGreeksReference(t *testing.T) {
	g := PutGreeks(refSpot, refStrike, refRate, refVol, refT)

	assert.InDelta(t, -0.3632, g.Delta, 1e-4)
	// Gamma and vega are shared between call and put
	assert.InDelta(t, 0.018762, g.Gamma, 1e-5)
	assert.InDelta(t, 37.5240, g.Vega, 1e-3)
	assert.True(t, g.Rho < 0)
}

func TestGreeksDegenerateInputs(t *testing.T) {
	g := CallGreeks(110, 100, 0.05, 0.2, 0)
	assert.Equal(t, Greeks{Delta: 1}, g)

	g = PutGreeks(90, 100, 0.05, 0, 1)
	assert.Equal(t, Greeks{Delta: -1}, g)
}

func TestThetaPerDay(t *testing.T) {
	g := Greeks{Theta: -365}
	assert.InDelta(t, -1.0, g.ThetaPerDay(), 1e-12)
}

func TestPriceDispatch(t *testing.T) {
	call, err := Price(Call, refSpot, refStrike, refRate, refVol, refT)
	require.NoError(t, err)
	put, err := Price(Put, refSpot, refStrike, refRate, refVol, refT)
	require.NoError(t, err)
	assert.Greater(t, call, put)

	_, err = Price(BinaryCall, refSpot, refStrike, refRate, refVol, refT)
	assert.ErrorIs(t, err, ErrUnknownOptionType)
}

func TestValidatePricingInputs(t *testing.T) {
	assert.NoError(t, ValidatePricingInputs(100, 100, 0.05, 0.2, 1))
	assert.NoError(t, ValidatePricingInputs(100, 100, -0.01, 0, 0))

	assert.ErrorIs(t, ValidatePricingInputs(0, 100, 0.05, 0.2, 1), ErrInvalidSpot)
	assert.ErrorIs(t, ValidatePricingInputs(100, 0, 0.05, 0.2, 1), ErrInvalidStrike)
	assert.ErrorIs(t, ValidatePricingInputs(100, 100, 0.05, -0.2, 1), ErrInvalidVolatility)
	assert.ErrorIs(t, ValidatePricingInputs(100, 100, 0.05, 0.2, -1), ErrInvalidMaturity)
}

func TestImpliedVolatilityRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		typ  OptionType
		s, k float64
		vol  float64
		mat  float64
	}{
		{"atm call", Call, 100, 100, 0.25, 0.5},
		{"itm call", Call, 120, 100, 0.35, 1.0},
		{"otm put", Put, 110, 100, 0.18, 0.25},
		{"atm put", Put, 100, 100, 0.40, 2.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var price float64
			if tc.typ == Call {
				price = BSCallPrice(tc.s, tc.k, refRate, tc.vol, tc.mat)
			} else {
				price = BSPutPrice(tc.s, tc.k, refRate, tc.vol, tc.mat)
			}

			recovered, err := ImpliedVolatility(tc.typ, price, tc.s, tc.k, refRate, tc.mat)
			require.NoError(t, err)
			assert.InDelta(t, tc.vol, recovered, 1e-4)
		})
	}
}

func TestImpliedVolatilityRejectsBadInput(t *testing.T) {
	_, err := ImpliedVolatility(Call, 5, 100, 100, 0.05, 0)
	assert.ErrorIs(t, err, ErrInvalidMaturity)

	_, err = ImpliedVolatility(Call, 0, 100, 100, 0.05, 1)
	assert.ErrorIs(t, err, ErrInvalidPremium)

	_, err = ImpliedVolatility(BinaryCall, 5, 100, 100, 0.05, 1)
	assert.ErrorIs(t, err, ErrUnknownOptionType)

	// Price below intrinsic has no solution
	_, err = ImpliedVolatility(Call, 5, 120, 100, 0.05, 1)
	assert.ErrorIs(t, err, ErrNoConvergence)
}

func TestNormCDF(t *testing.T) {
	assert.InDelta(t, 0.5, NormCDF(0), 1e-12)
	assert.InDelta(t, 0.8413, NormCDF(1), 1e-4)
	assert.InDelta(t, 0.0228, NormCDF(-2), 1e-4)
}

func TestNormPDFSymmetry(t *testing.T) {
	assert.InDelta(t, 1/math.Sqrt(2*math.Pi), NormPDF(0), 1e-12)
	assert.InDelta(t, NormPDF(1.3), NormPDF(-1.3), 1e-15)
}
