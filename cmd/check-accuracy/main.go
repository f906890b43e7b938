package main

import (
	"fmt"
	"math"
	"os"

	"github.com/jwaldner/tetra/internal/quant"
)

// referenceCase pins the kernel to independently computed Black-Scholes
// values. The Hull 42/40 case is the classic textbook example.
type referenceCase struct {
	name    string
	s, k    float64
	r, vol  float64
	t       float64
	call    float64
	put     float64
	deltaC  float64
	gamma   float64
	vega    float64
	pvK     float64
}

var referenceCases = []referenceCase{
	{"ATM one-year", 100, 100, 0.05, 0.20, 1.0, 10.450584, 5.573526, 0.636831, 0.018762, 37.524035, 95.122942},
	{"Hull 42/40", 42, 40, 0.10, 0.20, 0.5, 4.759422, 0.808599, 0.779131, 0.049963, 8.813415, 38.049177},
	{"Deep ITM call", 150, 100, 0.03, 0.25, 0.75, 52.460713, 0.235837, 0.981463, 0.001398, 5.896563, 97.775124},
	{"Long-dated put", 100, 110, 0.02, 0.45, 2.0, 22.926670, 28.613508, 0.591454, 0.006103, 54.929938, 105.686838},
}

const tolerance = 1e-4

func main() {
	fmt.Println("🎯 Checking Kernel Accuracy Against Reference Values")
	fmt.Println("====================================================")
	fmt.Println()

	failures := 0
	maxErr := 0.0

	check := func(label string, got, want float64) {
		diff := math.Abs(got - want)
		if diff > maxErr {
			maxErr = diff
		}
		if diff > tolerance {
			failures++
			fmt.Printf("   ❌ %-12s %.6f (expected %.6f, off by %.2e)\n", label, got, want, diff)
			return
		}
		fmt.Printf("   ✅ %-12s %.6f (expected %.6f)\n", label, got, want)
	}

	for _, tc := range referenceCases {
		fmt.Printf("📊 %s: S=%.2f K=%.2f r=%.4f vol=%.4f T=%.4f\n", tc.name, tc.s, tc.k, tc.r, tc.vol, tc.t)

		call := quant.BSCallPrice(tc.s, tc.k, tc.r, tc.vol, tc.t)
		put := quant.BSPutPrice(tc.s, tc.k, tc.r, tc.vol, tc.t)
		greeks := quant.CallGreeks(tc.s, tc.k, tc.r, tc.vol, tc.t)

		check("call", call, tc.call)
		check("put", put, tc.put)
		check("delta", greeks.Delta, tc.deltaC)
		check("gamma", greeks.Gamma, tc.gamma)
		check("vega", greeks.Vega, tc.vega)
		check("PV(K)", quant.DiscountedStrike(tc.k, tc.r, tc.t), tc.pvK)

		// Parity must hold to numerical zero on every case
		report := quant.CheckParity(tc.s, tc.k, tc.r, tc.vol, tc.t)
		if !report.Holds {
			failures++
			fmt.Printf("   ❌ %-12s gap %.2e exceeds %.0e\n", "parity", report.Gap, report.ToleranceAbsolute)
		} else {
			fmt.Printf("   ✅ %-12s gap %.2e\n", "parity", report.Gap)
		}

		// The solver must recover the volatility that priced the call
		iv, err := quant.ImpliedVolatility(quant.Call, call, tc.s, tc.k, tc.r, tc.t)
		if err != nil {
			failures++
			fmt.Printf("   ❌ %-12s solver error: %v\n", "IV", err)
		} else if math.Abs(iv-tc.vol) > 1e-6 {
			failures++
			fmt.Printf("   ❌ %-12s %.6f (expected %.6f)\n", "IV", iv, tc.vol)
		} else {
			fmt.Printf("   ✅ %-12s %.6f (expected %.6f)\n", "IV", iv, tc.vol)
		}

		fmt.Println()
	}

	// Degenerate inputs fall back to intrinsic value
	fmt.Println("📊 Expired and zero-volatility fallbacks")
	expired, _ := quant.Price(quant.Call, 120, 100, 0.05, 0.20, 0)
	check("expired", expired, 20.0)
	zeroVol, _ := quant.Price(quant.Put, 80, 100, 0.05, 0, 1)
	check("zero-vol", zeroVol, 20.0)
	fmt.Println()

	fmt.Println("📈 Accuracy Summary")
	fmt.Printf("   Max error: %.2e  Tolerance: %.0e\n", maxErr, tolerance)
	if failures > 0 {
		fmt.Printf("❌ %d checks out of tolerance\n", failures)
		os.Exit(1)
	}
	fmt.Println("✅ All reference values reproduced within tolerance")
}
