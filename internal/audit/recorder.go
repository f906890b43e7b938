package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jwaldner/tetra/internal/config"
	"github.com/jwaldner/tetra/internal/logger"
)

// reportAction represents operations sent to the report channel
type reportAction struct {
	Type  string      `json:"type"`   // "create_report", "append_result", "archive_report"
	RunID string      `json:"run_id"` // audit run identifier
	Data  interface{} `json:"data"`   // result or report payload
}

// reportHeader identifies the run the working report belongs to
type reportHeader struct {
	RunID     string    `json:"run_id"`
	StartTime time.Time `json:"start_time"`
}

// reportFile is the complete working report structure on disk
type reportFile struct {
	Header  reportHeader  `json:"header"`
	Results []CheckResult `json:"results"`
}

// Recorder persists audit runs. All file operations happen in a single
// worker goroutine so the working report never sees concurrent writes.
//
// Lifecycle per run:
//
// CREATE: "create" opens a fresh working report for the run. A stale
// working report left by a crashed run is archived first, using the run
// id from its own header.
//
// APPEND: each check result is appended to the working report as it
// completes, so a partial report survives even if the process dies
// mid-run.
//
// ARCHIVE: "finish" moves the working report into the report directory
// under a config-formatted name and writes a markdown summary next to it.
type Recorder struct {
	workFile  string
	reportDir string
	format    string
	ch        chan reportAction
	done      chan struct{}
}

// NewRecorder builds a recorder using the audit settings from config.
func NewRecorder() *Recorder {
	auditConfig := config.GetAuditConfig()
	return newRecorder("audit.json", auditConfig.ReportDir, auditConfig.FilenameFormat)
}

func newRecorder(workFile, reportDir, format string) *Recorder {
	r := &Recorder{
		workFile:  workFile,
		reportDir: reportDir,
		format:    format,
		ch:        make(chan reportAction, 100),
		done:      make(chan struct{}),
	}
	go r.worker()
	return r
}

// RecordCheckRunOperation is the single entry point for report persistence.
// Operations: "create" opens the working report, "finish" archives it with
// a summary, anything else appends the data as a check result.
func (r *Recorder) RecordCheckRunOperation(runID string, operation string, data interface{}) error {
	var action reportAction

	switch operation {
	case "create":
		action = reportAction{Type: "create_report", RunID: runID}
	case "finish":
		action = reportAction{Type: "archive_report", RunID: runID, Data: data}
	default:
		action = reportAction{Type: "append_result", RunID: runID, Data: data}
	}

	select {
	case r.ch <- action:
		return nil
	default:
		return fmt.Errorf("audit report channel full")
	}
}

// Close drains queued operations and stops the worker.
func (r *Recorder) Close() {
	close(r.ch)
	<-r.done
}

// worker processes all report operations in a single goroutine - OWNS ALL FILE OPERATIONS
func (r *Recorder) worker() {
	defer close(r.done)

	for action := range r.ch {
		switch action.Type {
		case "create_report":
			if action.RunID == "" {
				logger.Warn.Printf("⚠️ AUDIT: Cannot open report without run id")
				continue
			}

			// Archive a stale working report using the run id from its header.
			if data, err := os.ReadFile(r.workFile); err == nil {
				var stale reportFile
				if json.Unmarshal(data, &stale) == nil && stale.Header.RunID != "" {
					if err := os.MkdirAll(r.reportDir, 0755); err == nil {
						timestamp := time.Now().Format("2006-01-02_15-04-05")
						baseName := config.FormatAuditFilename(r.format, stale.Header.RunID, timestamp)
						archiveName := filepath.Join(r.reportDir, baseName+".json")
						if os.Rename(r.workFile, archiveName) == nil {
							logger.Warn.Printf("📁 AUDIT: Moved stale report to %s", archiveName)
						}
					}
				}
			}

			fresh := reportFile{
				Header:  reportHeader{RunID: action.RunID, StartTime: time.Now()},
				Results: []CheckResult{},
			}
			if data, err := json.MarshalIndent(fresh, "", "  "); err == nil {
				if err := os.WriteFile(r.workFile, data, 0644); err == nil {
					logger.Debug.Printf("📝 AUDIT: Opened report for run %s", action.RunID)
				} else {
					logger.Warn.Printf("⚠️ AUDIT: Failed to write report file: %v", err)
				}
			}

		case "append_result":
			data, err := os.ReadFile(r.workFile)
			if err != nil {
				logger.Warn.Printf("⚠️ AUDIT: FAILED - no working report for append: %v", err)
				continue
			}
			var current reportFile
			if err := json.Unmarshal(data, &current); err != nil {
				logger.Warn.Printf("⚠️ AUDIT: FAILED - corrupted working report: %v", err)
				continue
			}
			if action.RunID != "" && current.Header.RunID != action.RunID {
				logger.Warn.Printf("⚠️ AUDIT: FAILED - run mismatch: existing=%s, new=%s", current.Header.RunID, action.RunID)
				continue
			}

			result, ok := action.Data.(CheckResult)
			if !ok {
				logger.Warn.Printf("⚠️ AUDIT: append_result payload is not a check result: %T", action.Data)
				continue
			}
			current.Results = append(current.Results, result)

			if out, err := json.MarshalIndent(current, "", "  "); err == nil {
				if err := os.WriteFile(r.workFile, out, 0644); err == nil {
					logger.Debug.Printf("📝 AUDIT: Recorded %s (total: %d)", result.Name, len(current.Results))
				} else {
					logger.Warn.Printf("⚠️ AUDIT: Failed to write report file: %v", err)
				}
			}

		case "archive_report":
			if _, err := os.ReadFile(r.workFile); err != nil {
				logger.Warn.Printf("⚠️ AUDIT: No working report to archive")
				continue
			}
			if err := os.MkdirAll(r.reportDir, 0755); err != nil {
				logger.Warn.Printf("⚠️ AUDIT: Failed to create report directory: %v", err)
				continue
			}

			timestamp := time.Now().Format("2006-01-02_15-04-05")
			baseName := config.FormatAuditFilename(r.format, action.RunID, timestamp)

			jsonName := filepath.Join(r.reportDir, baseName+".json")
			if err := os.Rename(r.workFile, jsonName); err != nil {
				logger.Warn.Printf("⚠️ AUDIT: Failed to archive report: %v", err)
				continue
			}
			logger.Verbose.Printf("📁 AUDIT: Archived report to %s", jsonName)

			if report, ok := action.Data.(RunReport); ok {
				mdName := filepath.Join(r.reportDir, baseName+".md")
				if err := os.WriteFile(mdName, []byte(summaryMarkdown(report)), 0644); err != nil {
					logger.Warn.Printf("⚠️ AUDIT: Failed to write summary: %v", err)
				} else {
					logger.Verbose.Printf("📋 AUDIT: Wrote summary %s", mdName)
				}
			}

		default:
			logger.Warn.Printf("⚠️ AUDIT: INVALID ACTION TYPE '%s' - ONLY create_report, append_result, archive_report ALLOWED", action.Type)
		}
	}
}

// summaryMarkdown renders a run report as a human-readable summary.
func summaryMarkdown(report RunReport) string {
	var b strings.Builder

	status := "PASSED"
	if !report.Passed {
		status = "FAILED"
	}
	fmt.Fprintf(&b, "# Pricing kernel audit: run %s\n\n", report.RunID)
	fmt.Fprintf(&b, "Started: %s\n", report.StartTime.Format(time.RFC3339))
	fmt.Fprintf(&b, "Elapsed: %.1f ms\n", report.ElapsedMs)
	fmt.Fprintf(&b, "Overall: %s (%d cases, %d failures, max error %.3e)\n\n",
		status, report.TotalCases, report.TotalFailures, report.MaxError)

	b.WriteString("| Check | Cases | Failures | Max error | Status |\n")
	b.WriteString("|-------|-------|----------|-----------|--------|\n")
	for _, res := range report.Results {
		mark := "✅"
		if !res.Passed {
			mark = "❌"
		}
		fmt.Fprintf(&b, "| %s | %d | %d | %.3e | %s |\n", res.Name, res.Cases, res.Failures, res.MaxError, mark)
	}

	var details []string
	for _, res := range report.Results {
		for _, d := range res.Details {
			details = append(details, fmt.Sprintf("%s: %s", res.Name, d))
		}
	}
	if len(details) > 0 {
		b.WriteString("\n## Failure details\n\n")
		for _, d := range details {
			fmt.Fprintf(&b, "- %s\n", d)
		}
	}
	return b.String()
}
