package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameRealtimeClients  = "realtime_clients"
	NameRealtimeMessages = "realtime_messages_total"

	StatusDelivered = "delivered"
	StatusDropped   = "dropped"
)

var RealtimeClients = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name:      NameRealtimeClients,
		Help:      "Current connected realtime clients",
		Namespace: Namespace,
	},
)

var RealtimeMessages = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameRealtimeMessages,
		Help:      "Total realtime messages by delivery status",
		Namespace: Namespace,
	},
	[]string{LabelStatus},
)
