package router

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/scaleapp/backend/config"
	"github.com/scaleapp/backend/internal/api/http/handler"
	"github.com/scaleapp/backend/internal/service/assessment"
	"github.com/scaleapp/backend/internal/service/patient"
	"github.com/scaleapp/backend/internal/service/result"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg           *config.Config
	Redis         *redis.Client
	PatientSvc    patient.Service
	AssessmentSvc assessment.Service
	ResultSvc     result.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Health & Metrics
	r.registerSystemRoutes(app)

	// 2. Initialize Handlers
	patientH := handler.NewPatientHandler(r.p.PatientSvc)
	assessmentH := handler.NewAssessmentHandler(r.p.AssessmentSvc)
	resultH := handler.NewResultHandler(r.p.ResultSvc)

	api := app.Group("/api/v1")

	// 3. Delegate to sub-files
	r.registerPatientRoutes(api, patientH)
	r.registerAssessmentRoutes(api, assessmentH)
	r.registerResultRoutes(api, resultH)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New())
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}
