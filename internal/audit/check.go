package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"

	"github.com/jwaldner/tetra/internal/logger"
)

// Check is a self-contained numerical invariant the pricing kernel must
// satisfy. Checks are deterministic so two runs of the same build produce
// comparable reports.
type Check interface {
	// Name identifies the check in reports (e.g. "put-call-parity")
	Name() string

	// Description explains what the check verifies, for the API and CLI
	Description() string

	// Run executes the check and returns its result
	Run() CheckResult
}

// CheckResult is the outcome of one check.
type CheckResult struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Passed      bool     `json:"passed"`
	Cases       int      `json:"cases"`
	Failures    int      `json:"failures"`
	MaxError    float64  `json:"max_error"`
	Details     []string `json:"details,omitempty"`
	ElapsedMs   float64  `json:"elapsed_ms"`
}

// RunReport aggregates one full audit run.
type RunReport struct {
	RunID         string        `json:"run_id"`
	StartTime     time.Time     `json:"start_time"`
	ElapsedMs     float64       `json:"elapsed_ms"`
	Passed        bool          `json:"passed"`
	TotalCases    int           `json:"total_cases"`
	TotalFailures int           `json:"total_failures"`
	MaxError      float64       `json:"max_error"`
	MeanError     float64       `json:"mean_error"`
	Results       []CheckResult `json:"results"`
}

// Coordinator holds the registered checks and runs them in order.
type Coordinator struct {
	checks []Check
}

// NewCoordinator creates a coordinator preloaded with the standard checks.
func NewCoordinator() *Coordinator {
	c := &Coordinator{}
	c.Register(NewPayoffParityCheck())
	c.Register(NewPriceBoundsCheck())
	c.Register(NewPutCallParityCheck())
	c.Register(NewGreekBoundsCheck())
	c.Register(NewIVRoundTripCheck())
	return c
}

// Register adds a check. Checks run in registration order.
func (c *Coordinator) Register(check Check) {
	c.checks = append(c.checks, check)
}

// Checks returns name and description for every registered check.
func (c *Coordinator) Checks() []CheckResult {
	out := make([]CheckResult, 0, len(c.checks))
	for _, check := range c.checks {
		out = append(out, CheckResult{Name: check.Name(), Description: check.Description()})
	}
	return out
}

// RunAll executes every registered check and assembles the report. When a
// recorder is supplied the report is also persisted through it.
func (c *Coordinator) RunAll(recorder *Recorder) RunReport {
	report := RunReport{
		RunID:     uuid.New().String()[:8],
		StartTime: time.Now(),
		Passed:    true,
	}

	logger.Always.Printf("🔍 AUDIT: Starting run %s with %d checks", report.RunID, len(c.checks))
	if recorder != nil {
		recorder.RecordCheckRunOperation(report.RunID, "create", nil)
	}

	maxErrors := make([]float64, 0, len(c.checks))
	for _, check := range c.checks {
		result := check.Run()
		report.Results = append(report.Results, result)
		report.TotalCases += result.Cases
		report.TotalFailures += result.Failures
		if result.MaxError > report.MaxError {
			report.MaxError = result.MaxError
		}
		maxErrors = append(maxErrors, result.MaxError)
		if !result.Passed {
			report.Passed = false
			logger.Error.Printf("❌ AUDIT: Check %s FAILED (%d/%d cases)", result.Name, result.Failures, result.Cases)
		} else {
			logger.Debug.Printf("✅ AUDIT: Check %s passed (%d cases, max error %.3e)", result.Name, result.Cases, result.MaxError)
		}
		if recorder != nil {
			recorder.RecordCheckRunOperation(report.RunID, "result", result)
		}
	}

	if mean, err := stats.Mean(maxErrors); err == nil {
		report.MeanError = mean
	}
	report.ElapsedMs = float64(time.Since(report.StartTime).Microseconds()) / 1000.0

	if report.Passed {
		logger.Always.Printf("✅ AUDIT: Run %s passed (%d cases, max error %.3e)", report.RunID, report.TotalCases, report.MaxError)
	} else {
		logger.Always.Printf("❌ AUDIT: Run %s FAILED (%d failures in %d cases)", report.RunID, report.TotalFailures, report.TotalCases)
	}
	if recorder != nil {
		recorder.RecordCheckRunOperation(report.RunID, "finish", report)
	}
	return report
}
