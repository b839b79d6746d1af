package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis errors by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "microblog_redis_errors_total",
	Help: "Total number of Redis errors by command",
}, []string{"command"})

// ReactionsCreated counts stored reactions by kind.
var ReactionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "microblog_reactions_created_total",
	Help: "Total number of reactions stored, by reaction kind",
}, []string{"kind"})

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request-instrumentation handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
