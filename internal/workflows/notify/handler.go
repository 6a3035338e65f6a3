// SPDX-License-Identifier: Apache-2.0

package notify

import (
	"context"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
)

func defaultHandler() *Handler {
	return &Handler{
		StepStart: func(ctx context.Context, stp automa.Step, msg string, args ...interface{}) {
			logx.As().Info().
				Str("step_id", stp.Id()).
				Msgf(msg, args...)
		},
		StepCompletion: func(ctx context.Context, stp automa.Step, report *automa.Report, msg string, args ...interface{}) {
			// skipped steps are expected whenever no update is available
			l := logx.As().Info()
			if report.Status == automa.StatusSkipped {
				l = logx.As().Debug()
			}

			l = l.Str("step_id", stp.Id()).
				Str("status", report.Status.String())
			if state, ok := report.Metadata["state"]; ok {
				l = l.Str("update_state", state)
			}

			l.Msgf(msg, args...)
		},
		StepFailure: func(ctx context.Context, stp automa.Step, report *automa.Report, msg string, args ...interface{}) {
			firstErrReport := FirstErrorReport(report)

			l := logx.As().Error().Err(report.Error).
				Str("step_id", stp.Id()).
				Str("status", report.Status.String())
			if firstErrReport.Id != report.Id && firstErrReport.Error != nil {
				l = l.Str("first_error", firstErrReport.Error.Error()).
					Str("first_error_step_id", firstErrReport.Id)
			}

			l.Msgf(msg, args...)
		},
	}
}

// Default notification handler that logs through logx.
// Caller may override using SetDefault
var handler = defaultHandler()

// Handler defines callbacks for step events
// Caller may pass a custom handler to forward messages to a channel or a webhook.
type Handler struct {
	StepStart      func(ctx context.Context, stp automa.Step, msg string, args ...interface{})
	StepCompletion func(ctx context.Context, stp automa.Step, report *automa.Report, msg string, args ...interface{})
	StepFailure    func(ctx context.Context, stp automa.Step, report *automa.Report, msg string, args ...interface{})
}

// FirstErrorReport returns the first nested step report carrying an error, or report itself.
func FirstErrorReport(report *automa.Report) *automa.Report {
	for _, stepReport := range report.StepReports {
		if stepReport.HasError() {
			return stepReport
		}
	}

	return report
}

// SetDefault sets the default callback handler for step events
// It only updates non-nil handlers to preserve existing defaults
func SetDefault(h *Handler) {
	if h.StepStart != nil {
		handler.StepStart = h.StepStart
	}

	if h.StepCompletion != nil {
		handler.StepCompletion = h.StepCompletion
	}

	if h.StepFailure != nil {
		handler.StepFailure = h.StepFailure
	}
}

// Reset restores the logging handler.
func Reset() {
	handler = defaultHandler()
}

// As returns the current notification handler
func As() *Handler {
	return handler
}
