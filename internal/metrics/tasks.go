package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameTasks          = "tasks"
	NameTaskExecutions = "task_executions_total"
	LabelStatus        = "status"
	LabelTaskType      = "task_type"
)

var Tasks = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name:      NameTasks,
		Help:      "Current tasks",
		Namespace: Namespace,
	},
	[]string{LabelStatus},
)

var TaskExecutions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameTaskExecutions,
		Help:      "Total finished tasks",
		Namespace: Namespace,
	},
	[]string{LabelTaskType, LabelStatus},
)
