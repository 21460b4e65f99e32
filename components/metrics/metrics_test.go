package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/codeking/oilfox-hub/components/tank"
)

func TestSyncMetricsObserveCycle(t *testing.T) {
	m := NewSyncMetrics(prometheus.NewRegistry())

	m.ObserveCycle(ResultOK)
	m.ObserveCycle(ResultOK)
	m.ObserveCycle(ResultAuth)

	require.Equal(t, 2.0, testutil.ToFloat64(m.cyclesTotal.WithLabelValues(ResultOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.cyclesTotal.WithLabelValues(ResultAuth)))
	require.Equal(t, 0.0, testutil.ToFloat64(m.cyclesTotal.WithLabelValues(ResultSink)))

	require.NotZero(t, testutil.ToFloat64(m.lastSync))
}

func TestSyncMetricsObserveCycleFailureKeepsLastSync(t *testing.T) {
	m := NewSyncMetrics(prometheus.NewRegistry())

	m.ObserveCycle(ResultConnectivity)
	require.Equal(t, 0.0, testutil.ToFloat64(m.lastSync))
}

func TestSyncMetricsObserveRecords(t *testing.T) {
	m := NewSyncMetrics(prometheus.NewRegistry())

	m.ObserveRecords([]tank.Record{
		{
			DeviceID: "dev-1",
			Label:    "Tank A",
			Fields: []tank.Field{
				tank.TextField(tank.FieldName, "Tank A"),
				tank.FloatField(tank.FieldCurrentLevelLiters, tank.ProfileVolumeLiters, 600),
				tank.IntField(tank.FieldCurrentLevelPercent, tank.ProfileIntensityPercent, 60),
				tank.IntField(tank.FieldBattery, tank.ProfileBatteryPercent, 90),
			},
		},
	})

	require.Equal(t, 600.0,
		testutil.ToFloat64(m.levelLiters.WithLabelValues("dev-1", "Tank A")))
	require.Equal(t, 60.0,
		testutil.ToFloat64(m.levelPercent.WithLabelValues("dev-1", "Tank A")))
	require.Equal(t, 90.0,
		testutil.ToFloat64(m.battery.WithLabelValues("dev-1", "Tank A")))
}
