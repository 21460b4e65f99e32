package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/codeking/oilfox-hub/components/tank"
)

// Synchronization cycle results.
const (
	ResultOK           = "ok"
	ResultAuth         = "auth_error"
	ResultConnectivity = "connectivity_error"
	ResultFormat       = "format_error"
	ResultSink         = "sink_error"
	ResultOther        = "error"
)

// SyncMetrics exposes synchronization metrics.
type SyncMetrics struct {
	cyclesTotal  *prometheus.CounterVec
	lastSync     prometheus.Gauge
	levelLiters  *prometheus.GaugeVec
	levelPercent *prometheus.GaugeVec
	battery      *prometheus.GaugeVec
}

// NewSyncMetrics registers synchronization collectors on the registry.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	m := &SyncMetrics{
		cyclesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oilfox_sync_cycles_total",
				Help: "Total number of synchronization cycles by result",
			},
			[]string{"result"},
		),
		lastSync: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "oilfox_last_sync_timestamp_seconds",
				Help: "Unix timestamp of the last successful synchronization",
			},
		),
		levelLiters: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "oilfox_tank_level_liters",
				Help: "Current tank fill level in liters",
			},
			[]string{"device_id", "name"},
		),
		levelPercent: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "oilfox_tank_level_percent",
				Help: "Current tank fill level in percent",
			},
			[]string{"device_id", "name"},
		),
		battery: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "oilfox_tank_battery_percent",
				Help: "Device battery charge in percent",
			},
			[]string{"device_id", "name"},
		),
	}

	reg.MustRegister(m.cyclesTotal, m.lastSync, m.levelLiters, m.levelPercent, m.battery)

	return m
}

// ObserveCycle records the outcome of one synchronization cycle.
func (m *SyncMetrics) ObserveCycle(result string) {
	m.cyclesTotal.WithLabelValues(result).Inc()

	if result == ResultOK {
		m.lastSync.Set(float64(time.Now().Unix()))
	}
}

// ObserveRecords updates per-device gauges from mapped records.
func (m *SyncMetrics) ObserveRecords(records []tank.Record) {
	for _, record := range records {
		for _, field := range record.Fields {
			switch field.Name {
			case tank.FieldCurrentLevelLiters:
				m.levelLiters.WithLabelValues(record.DeviceID, record.Label).Set(field.Float)
			case tank.FieldCurrentLevelPercent:
				m.levelPercent.WithLabelValues(record.DeviceID, record.Label).Set(float64(field.Int))
			case tank.FieldBattery:
				m.battery.WithLabelValues(record.DeviceID, record.Label).Set(float64(field.Int))
			}
		}
	}
}
