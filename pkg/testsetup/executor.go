// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"context"

	"github.com/AccelByte/extend-bridge-match/pkg/async"
)

type pendingTask struct {
	name string
	task async.Task
}

// ManualExecutor holds submitted tasks until the test runs them, so background completion order is explicit.
type ManualExecutor struct {
	pending []pendingTask
	results []any
}

func NewManualExecutor() *ManualExecutor {
	return &ManualExecutor{}
}

func (e *ManualExecutor) Submit(name string, task async.Task) {
	e.pending = append(e.pending, pendingTask{name: name, task: task})
}

// RunPending runs every task submitted so far and queues their results for Drain.
func (e *ManualExecutor) RunPending() int {
	tasks := e.pending
	e.pending = nil
	for _, t := range tasks {
		if result := t.task(context.Background()); result != nil {
			e.results = append(e.results, result)
		}
	}

	return len(tasks)
}

// Pending lists the names of the tasks not run yet.
func (e *ManualExecutor) Pending() []string {
	names := make([]string, 0, len(e.pending))
	for _, t := range e.pending {
		names = append(names, t.name)
	}

	return names
}

func (e *ManualExecutor) Drain() []any {
	results := e.results
	e.results = nil

	return results
}
