package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	navigationSourceQuery   = "query"
	navigationSourceControl = "control"

	navigationAccepted = "accepted"
	navigationRejected = "rejected"
)

var (
	renderPassesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nutrilife",
		Name:      "render_passes_total",
		Help:      "Render passes dispatched, by page.",
	}, []string{"page"})

	navigationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nutrilife",
		Name:      "navigations_total",
		Help:      "Navigation requests, by source and outcome.",
	}, []string{"source", "result"})

	loginSubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nutrilife",
		Name:      "login_submissions_total",
		Help:      "Login form submissions, by outcome.",
	}, []string{"result"})
)
