package possibletypes

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("github.com/nautilus/possibletypes")

var (
	learnedTypesCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "possibletypes_learned_types_total",
		Help: "The number of cache entries created or extended, by strategy.",
	}, []string{"strategy"})

	introspectedTypesCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "possibletypes_introspected_types_total",
		Help: "The number of synthetic __type fields added to outgoing operations.",
	})

	matchCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "possibletypes_match_total",
		Help: "The number of fragment match decisions, by outcome.",
	}, []string{"result"})
)
