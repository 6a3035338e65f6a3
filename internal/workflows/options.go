// SPDX-License-Identifier: Apache-2.0

package workflows

import (
	"github.com/automa-saga/automa"
)

// WorkflowExecutionOptions controls how a workflow reacts to failing steps.
type WorkflowExecutionOptions struct {
	ExecutionMode automa.TypeMode `yaml:"executionMode" json:"executionMode"`
}

func DefaultWorkflowExecutionOptions() WorkflowExecutionOptions {
	return WorkflowExecutionOptions{
		ExecutionMode: automa.StopOnError,
	}
}

// WithWorkflowExecutionMode applies opts to wb and returns it.
func WithWorkflowExecutionMode(wb *automa.WorkflowBuilder, opts WorkflowExecutionOptions) *automa.WorkflowBuilder {
	return wb.WithExecutionMode(opts.ExecutionMode)
}
