// Package metrics expone los contadores Prometheus del motor de stock.
// Se registran en el registro global y se sirven en GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BatchesSubmitted cuenta lotes persistidos en el libro mayor, por dirección.
	BatchesSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stocks_batches_submitted_total",
		Help: "Lotes de stock persistidos en el libro mayor.",
	}, []string{"direction"})

	// BatchesRejected cuenta lotes rechazados en validación (sin escritura).
	BatchesRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stocks_batches_rejected_total",
		Help: "Lotes rechazados por validación antes de cualquier escritura.",
	})

	// ReconcileUnmatched cuenta productos referenciados que no existían al
	// conciliar (faltante reportado, no error).
	ReconcileUnmatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stocks_reconcile_unmatched_total",
		Help: "Productos no encontrados durante la conciliación de deltas.",
	})

	// ReconcileFaults cuenta conciliaciones con fallas inesperadas de la
	// tienda después de que el lote ya estaba auditado.
	ReconcileFaults = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stocks_reconcile_faults_total",
		Help: "Conciliaciones con fallas de almacenamiento tras persistir el lote.",
	})

	// BatchLineItems observa el tamaño de los lotes enviados.
	BatchLineItems = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stocks_batch_line_items",
		Help:    "Cantidad de líneas por lote enviado.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 8),
	})
)
