package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RemoteReads = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "refbase", Name: "remote_reads_total", Help: "Remote mirror reads attempted",
	})
	RemoteReadFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "refbase", Name: "remote_read_failures_total", Help: "Remote mirror reads that failed or missed",
	})
	RemoteWrites = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "refbase", Name: "remote_writes_total", Help: "Remote mirror writes attempted",
	})
	RemoteWriteFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "refbase", Name: "remote_write_failures_total", Help: "Remote mirror writes that failed",
	})
	TableSaves = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "refbase", Name: "table_saves_total", Help: "Tabular files written locally",
	})
)

func init() {
	prometheus.MustRegister(RemoteReads, RemoteReadFailures, RemoteWrites, RemoteWriteFailures, TableSaves)
}

func Handler() http.Handler { return promhttp.Handler() }
