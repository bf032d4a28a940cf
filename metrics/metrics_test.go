package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestObserveAlignIncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := Register(reg)
	m.ObserveAlign("Energy Correlation", "success", 0.01, 0.9, true)

	families, err := reg.Gather()
	require.NoError(t, err)

	var total *dto.MetricFamily
	for _, f := range families {
		if f.GetName() == "syncalign_align_total" {
			total = f
		}
	}
	require.NotNil(t, total)
	require.Len(t, total.Metric, 1)
	require.Equal(t, 1.0, total.Metric[0].GetCounter().GetValue())
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveAlign("Energy Correlation", "success", 0.01, 0.9, true)
	m.ObserveDegradation("out-of-memory", "Minimal")
	m.ObserveError("PROCESSING_FAILED", "error")
}
