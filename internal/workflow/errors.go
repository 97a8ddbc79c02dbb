package workflow

import "errors"

var (
	ErrInputNotFound   = errors.New("input not found")
	ErrAnalyzeFailed   = errors.New("analysis stage failed")
	ErrJudgeFailed     = errors.New("judge stage failed")
	ErrReconcileFailed = errors.New("reconciliation failed")
	ErrPersistFailed   = errors.New("episodic persist failed")
)
