package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MovementsCreated counts committed ledger entries by type (IN/OUT).
	MovementsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_movements_created_total",
		Help: "Committed stock movements.",
	}, []string{"type"})

	// MovementsRejected counts refused movement requests by reason.
	MovementsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_movements_rejected_total",
		Help: "Rejected stock movement requests.",
	}, []string{"reason"})
)
