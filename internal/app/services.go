package app

import (
	"go.uber.org/fx"

	"github.com/scaleapp/backend/internal/repo"
	"github.com/scaleapp/backend/internal/service/assessment"
	"github.com/scaleapp/backend/internal/service/patient"
	"github.com/scaleapp/backend/internal/service/result"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvidePatientService,
		ProvideAssessmentService,
		ProvideResultService,
	),
)

func ProvidePatientService(db *repo.Client) patient.Service {
	return patient.New(db)
}

func ProvideAssessmentService(db *repo.Client) assessment.Service {
	return assessment.New(db)
}

func ProvideResultService(db *repo.Client) result.Service {
	return result.New(db)
}
