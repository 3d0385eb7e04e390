package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameMutations = "mutations_total"
	NameRecords   = "records"
	LabelEntity   = "entity"
	LabelAction   = "action"
)

var Mutations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameMutations,
		Help:      "Total mutations applied to the collection stores",
		Namespace: Namespace,
	},
	[]string{LabelEntity, LabelAction},
)

var Records = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name:      NameRecords,
		Help:      "Current number of records per collection",
		Namespace: Namespace,
	},
	[]string{LabelEntity},
)
