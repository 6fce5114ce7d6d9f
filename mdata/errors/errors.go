package errors

import (
	"errors"
	"fmt"
	"time"

	"github.com/grafana/splitstore/schema"
)

var ErrInvalidMetricID = errors.New("invalid metric id")

type ErrMetricAlreadyExists struct {
	Metric schema.Metric
}

func (e ErrMetricAlreadyExists) Error() string {
	return fmt.Sprintf("metric %s already exists", e.Metric.ID)
}

type ErrMetricDoesNotExist struct {
	Metric schema.Metric
}

func (e ErrMetricDoesNotExist) Error() string {
	return fmt.Sprintf("metric %s does not exist", e.Metric.ID)
}

// ErrAggregationDoesNotExist means the metric exists, but nothing was stored
// for this aggregation method and granularity.
type ErrAggregationDoesNotExist struct {
	Metric      schema.Metric
	Method      schema.Method
	Granularity time.Duration
}

func (e ErrAggregationDoesNotExist) Error() string {
	return fmt.Sprintf("aggregation %s at granularity %s does not exist for metric %s", e.Method, e.Granularity, e.Metric.ID)
}

// ErrCorruptSplit is a stored split whose name can't be parsed back into a split key.
type ErrCorruptSplit struct {
	Metric schema.Metric
	Method schema.Method
	Name   string
	Err    error
}

func (e ErrCorruptSplit) Error() string {
	return fmt.Sprintf("corrupt split %q for aggregation %s of metric %s: %s", e.Name, e.Method, e.Metric.ID, e.Err)
}

func (e ErrCorruptSplit) Unwrap() error {
	return e.Err
}

func IsMetricAlreadyExists(err error) bool {
	var e ErrMetricAlreadyExists
	return errors.As(err, &e)
}

func IsMetricDoesNotExist(err error) bool {
	var e ErrMetricDoesNotExist
	return errors.As(err, &e)
}

func IsAggregationDoesNotExist(err error) bool {
	var e ErrAggregationDoesNotExist
	return errors.As(err, &e)
}

func IsCorruptSplit(err error) bool {
	var e ErrCorruptSplit
	return errors.As(err, &e)
}
