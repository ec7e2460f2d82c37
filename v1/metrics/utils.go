package metrics

import "github.com/prometheus/client_golang/prometheus"

// createCounterVec builds an unregistered CounterVec.
func createCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}

// createHistogramVec builds an unregistered HistogramVec.
func createHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: buckets,
		},
		labels,
	)
}

// createGaugeVec builds an unregistered GaugeVec.
func createGaugeVec(name, help string, labels []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}

// CreateCounter creates a new CounterVec metric and registers it with the
// service-labeled registry.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	c := createCounterVec(name, help, labels)
	m.registerer.MustRegister(c)
	return c
}

// CreateHistogram creates a new HistogramVec metric and registers it with
// the service-labeled registry.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	h := createHistogramVec(name, help, labels, buckets)
	m.registerer.MustRegister(h)
	return h
}

// CreateGauge creates a new GaugeVec metric and registers it with the
// service-labeled registry.
func (m *Metrics) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	g := createGaugeVec(name, help, labels)
	m.registerer.MustRegister(g)
	return g
}
