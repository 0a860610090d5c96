package metrics

import (
	"testing"

	"github.com/coderconnoisseur/SpatioX"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveIndexStatsUpdatesGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder()
	rec.MustRegister(reg)

	rec.ObserveIndexStats(spatiox.IndexStats{
		TotalRecords:    10,
		SpatialNodes:    10,
		TemporalEntries: 10,
		IsBuilt:         true,
	})

	metricFamilies, err := reg.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range metricFamilies {
		for _, m := range mf.GetMetric() {
			if g := m.GetGauge(); g != nil {
				values[mf.GetName()] = g.GetValue()
			}
		}
	}

	assert.Equal(t, float64(10), values["spatiox_total_records"])
	assert.Equal(t, float64(1), values["spatiox_is_built"])
}

func TestObserveQueryStatsIncrementsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder()
	rec.MustRegister(reg)

	rec.ObserveQueryStats(spatiox.QueryStats{
		SpatialNodesVisited:   5,
		RecordsFilteredByTime: 2,
		RecordsPassedTime:     3,
	})

	metricFamilies, err := reg.Gather()
	require.NoError(t, err)

	var found *dto.MetricFamily
	for _, mf := range metricFamilies {
		if mf.GetName() == "spatiox_records_passed_time_total" {
			found = mf
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, float64(3), found.GetMetric()[0].GetCounter().GetValue())
}
