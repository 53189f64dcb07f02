package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	UpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopbot_updates_total",
			Help: "Inbound updates by kind.",
		},
		[]string{"kind"},
	)
	DeliveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopbot_product_deliveries_total",
			Help: "Product deliveries by result.",
		},
		[]string{"result"},
	)
	BroadcastsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopbot_operator_broadcasts_total",
			Help: "User messages relayed to operators by result.",
		},
		[]string{"result"},
	)
	AdminCommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopbot_admin_commands_total",
			Help: "Operator commands by command and result.",
		},
		[]string{"command", "result"},
	)
	TransportErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopbot_transport_errors_total",
			Help: "Failed messaging transport calls by operation.",
		},
		[]string{"op"},
	)
	HandlerPanicsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shopbot_handler_panics_total",
			Help: "Update handlers that panicked and were recovered.",
		},
	)
)

func init() {
	prometheus.MustRegister(UpdatesTotal)
	prometheus.MustRegister(DeliveriesTotal)
	prometheus.MustRegister(BroadcastsTotal)
	prometheus.MustRegister(AdminCommandsTotal)
	prometheus.MustRegister(TransportErrorsTotal)
	prometheus.MustRegister(HandlerPanicsTotal)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
