package file

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var outcomes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "splitstore",
		Subsystem: "file",
		Name:      "outcomes_total",
		Help:      "The total number of filesystem calls by operation and outcome.",
	},
	[]string{"op", "outcome"},
)

// outcome decides what the result of a filesystem call means for the store.
// onNotExist and onExist translate the corresponding OS conditions into the
// value to return (nil to swallow them). A nil handler leaves the condition as is.
// Any other error is returned unchanged.
type outcome struct {
	op         string
	onNotExist func() error
	onExist    func() error
}

func (o outcome) of(err error) error {
	switch {
	case err == nil:
		outcomes.WithLabelValues(o.op, "ok").Inc()
		return nil
	case os.IsNotExist(err) && o.onNotExist != nil:
		outcomes.WithLabelValues(o.op, "not_exist").Inc()
		return o.onNotExist()
	case os.IsExist(err) && o.onExist != nil:
		outcomes.WithLabelValues(o.op, "exist").Inc()
		return o.onExist()
	}
	outcomes.WithLabelValues(o.op, "error").Inc()
	return err
}

func ignore() error {
	return nil
}
