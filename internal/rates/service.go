package rates

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"sync"

	"github.com/jwaldner/tetra/internal/logger"
)

// emergencyRate is used when no curve can be loaded at all.
const emergencyRate = 0.04

// Tenor is one point on the annualized zero curve.
type Tenor struct {
	MaturityYears float64 `json:"maturity_years"`
	Rate          float64 `json:"rate"`
}

// Curve is what the API returns: the tenor points plus provenance.
type Curve struct {
	AsOf   string  `json:"as_of"`
	Source string  `json:"source"`
	Tenors []Tenor `json:"tenors"`
}

// defaultTenors is a gently humped teaching curve, used when no asset
// file is configured or the file cannot be read.
var defaultTenors = []Tenor{
	{MaturityYears: 1.0 / 12.0, Rate: 0.0450},
	{MaturityYears: 0.25, Rate: 0.0455},
	{MaturityYears: 0.5, Rate: 0.0460},
	{MaturityYears: 1, Rate: 0.0470},
	{MaturityYears: 2, Rate: 0.0460},
	{MaturityYears: 5, Rate: 0.0450},
	{MaturityYears: 10, Rate: 0.0455},
	{MaturityYears: 30, Rate: 0.0470},
}

// Service answers "what risk-free rate goes with this maturity" from a
// local term structure. Rates between tenors are linearly interpolated;
// outside the curve the nearest tenor's rate is used flat.
type Service struct {
	assetFile string

	mu     sync.RWMutex
	tenors []Tenor
	asOf   string
	source string
	loaded bool
}

func NewService(assetFile string) *Service {
	return &Service{assetFile: assetFile}
}

// RateFor returns the annualized rate for a maturity in years.
func (s *Service) RateFor(maturityYears float64) float64 {
	s.ensureLoaded()
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenors := s.tenors
	if len(tenors) == 0 {
		return emergencyRate
	}
	if maturityYears <= tenors[0].MaturityYears {
		return tenors[0].Rate
	}
	last := tenors[len(tenors)-1]
	if maturityYears >= last.MaturityYears {
		return last.Rate
	}
	for i := 1; i < len(tenors); i++ {
		if maturityYears <= tenors[i].MaturityYears {
			lo, hi := tenors[i-1], tenors[i]
			frac := (maturityYears - lo.MaturityYears) / (hi.MaturityYears - lo.MaturityYears)
			return lo.Rate + frac*(hi.Rate-lo.Rate)
		}
	}
	return last.Rate
}

// GetCurve returns the loaded term structure.
func (s *Service) GetCurve() Curve {
	s.ensureLoaded()
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Tenor, len(s.tenors))
	copy(out, s.tenors)
	return Curve{AsOf: s.asOf, Source: s.source, Tenors: out}
}

// Reload drops the cached curve so the next call re-reads the asset file.
func (s *Service) Reload() {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
	s.ensureLoaded()
}

func (s *Service) ensureLoaded() {
	s.mu.RLock()
	if s.loaded {
		s.mu.RUnlock()
		return
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return
	}

	s.tenors = defaultTenors
	s.asOf = "builtin"
	s.source = "builtin"
	s.loaded = true

	if s.assetFile == "" {
		logger.Info.Printf("🏛️ Rate curve: builtin defaults (%d tenors)", len(defaultTenors))
		return
	}

	tenors, asOf, err := loadCurveFile(s.assetFile)
	if err != nil {
		logger.Warn.Printf("⚠️ Failed to load rate curve from %s: %v, using builtin defaults", s.assetFile, err)
		return
	}
	s.tenors = tenors
	s.asOf = asOf
	s.source = s.assetFile
	logger.Info.Printf("🏛️ Rate curve: %s as of %s (%d tenors)", s.assetFile, asOf, len(tenors))
}

func loadCurveFile(path string) ([]Tenor, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading rate curve: %w", err)
	}

	var doc struct {
		AsOf   string  `json:"as_of"`
		Tenors []Tenor `json:"tenors"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, "", fmt.Errorf("parsing rate curve: %w", err)
	}

	kept := make([]Tenor, 0, len(doc.Tenors))
	for _, t := range doc.Tenors {
		if t.MaturityYears <= 0 || math.IsNaN(t.Rate) || math.IsInf(t.Rate, 0) {
			logger.Warn.Printf("⚠️ Skipping invalid tenor (maturity=%v rate=%v) in %s", t.MaturityYears, t.Rate, path)
			continue
		}
		kept = append(kept, t)
	}
	if len(kept) == 0 {
		return nil, "", fmt.Errorf("rate curve %s has no usable tenors", path)
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].MaturityYears < kept[j].MaturityYears })
	return kept, doc.AsOf, nil
}
