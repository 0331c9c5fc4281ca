package promclient

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/finwatch/go-orderbook-dashboard/config"
)

var PollCyclesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dashboard_poll_cycles_total",
		Help: "completed poll cycles per view",
	},
	[]string{"view"},
)

var PollFailuresTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dashboard_poll_failures_total",
		Help: "failed poll cycles per view",
	},
	[]string{"view"},
)

var OrdersSubmittedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "dashboard_orders_submitted_total",
		Help: "orders accepted by the remote service",
	},
)

var RefreshBumpsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "dashboard_refresh_bumps_total",
		Help: "refresh trigger bumps",
	},
)

// ObservePollCycle is wired into every poller as its cycle hook.
func ObservePollCycle(view string, err error) {
	PollCyclesTotal.WithLabelValues(view).Inc()
	if err != nil {
		PollFailuresTotal.WithLabelValues(view).Inc()
	}
}

func StartPromClientServer() {
	reg := prometheus.NewRegistry()
	promHandler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})

	reg.MustRegister(PollCyclesTotal)
	reg.MustRegister(PollFailuresTotal)
	reg.MustRegister(OrdersSubmittedTotal)
	reg.MustRegister(RefreshBumpsTotal)
	reg.MustRegister(collectors.NewGoCollector())

	http.Handle("/metrics", promHandler)
	log.Printf("prometheus server listening at %s", config.MetricsAddr)

	if err := http.ListenAndServe(config.MetricsAddr, nil); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
