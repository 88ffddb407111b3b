package processor

import (
	"alarm-bridge/internal/logging"

	"github.com/Knetic/govaluate"
	"github.com/rotisserie/eris"
)

// expressionEvaluator is the part of govaluate used by AlarmFilter; tests replace it.
type expressionEvaluator interface {
	Evaluate(map[string]interface{}) (interface{}, error)
}

// newExpressionEvaluatorFunc compiles filter expressions. Overridden in tests.
var newExpressionEvaluatorFunc = func(expr string) (expressionEvaluator, error) {
	evalExpr, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return nil, err
	}
	return evalExpr, nil
}

// AlarmFilter evaluates a boolean expression against each alarm. A nil filter keeps everything.
type AlarmFilter struct {
	expr      string
	evaluator expressionEvaluator
}

// NewAlarmFilter compiles expr. An empty expression returns a nil filter.
func NewAlarmFilter(expr string) (*AlarmFilter, error) {
	if expr == "" {
		return nil, nil
	}
	ev, err := newExpressionEvaluatorFunc(expr)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid filter expression '%s'", expr)
	}
	return &AlarmFilter{expr: expr, evaluator: ev}, nil
}

// Keep reports whether the alarm described by params passes. Evaluation errors and
// non-boolean results drop the alarm with a warning.
func (f *AlarmFilter) Keep(params map[string]interface{}) bool {
	if f == nil {
		return true
	}
	result, err := f.evaluator.Evaluate(params)
	if err != nil {
		logging.Logf(logging.Warning, "Filter '%s' failed for tag '%v': %v. Skipping alarm.", f.expr, params["tag"], err)
		return false
	}
	keep, isBool := result.(bool)
	if !isBool {
		logging.Logf(logging.Warning, "Filter '%s' returned non-bool %T (%v) for tag '%v'. Skipping alarm.", f.expr, result, result, params["tag"])
		return false
	}
	return keep
}

// String returns the expression text.
func (f *AlarmFilter) String() string {
	if f == nil {
		return ""
	}
	return f.expr
}
