// Package app assembles repositories and services from configuration. The
// API server and the admin CLI share it.
package app

import (
	"fmt"
	"log"
	"log/slog"

	"alfredoptarigan/course-evaluator/internal/config"
	"alfredoptarigan/course-evaluator/internal/repositories"
	"alfredoptarigan/course-evaluator/internal/repositories/memstore"
	"alfredoptarigan/course-evaluator/internal/scoring"
	"alfredoptarigan/course-evaluator/internal/services"
)

type Repositories struct {
	Evaluations repositories.EvaluationRepository
	Criteria    repositories.CriteriaRepository
	Periods     repositories.PeriodRepository
	Directory   repositories.DirectoryRepository
	Users       repositories.UserRepository
}

type Services struct {
	Periods     services.PeriodService
	Criteria    services.CriteriaService
	Submissions services.SubmissionService
	Statistics  services.StatisticsService
	Accounts    services.AccountService
	Exports     services.ExportService
}

// OpenRepositories connects the store selected by cfg.Database.Driver.
func OpenRepositories(cfg *config.Config) (*Repositories, error) {
	codec := scoring.NewCodec(slog.Default())

	switch cfg.Database.Driver {
	case config.DriverMemory:
		store := memstore.NewWithCodec(codec)
		log.Println("⚠️  Using in-memory store, data is lost on exit")
		return &Repositories{
			Evaluations: store.Evaluations,
			Criteria:    store.Criteria,
			Periods:     store.Periods,
			Directory:   store.Directory,
			Users:       store.Users,
		}, nil
	case config.DriverPostgres:
		db, err := config.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Evaluations: repositories.NewEvaluationRepository(db, codec),
			Criteria:    repositories.NewCriteriaRepository(db),
			Periods:     repositories.NewPeriodRepository(db),
			Directory:   repositories.NewDirectoryRepository(db),
			Users:       repositories.NewUserRepository(db),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
}

// NewServices wires every service on top of repos.
func NewServices(cfg *config.Config, repos *Repositories, clock services.Clock) *Services {
	periods := services.NewPeriodService(repos.Periods, repos.Evaluations, clock)
	return &Services{
		Periods:     periods,
		Criteria:    services.NewCriteriaService(repos.Criteria),
		Submissions: services.NewSubmissionService(repos.Evaluations, repos.Criteria, repos.Directory, repos.Users, periods),
		Statistics: services.NewStatisticsService(repos.Evaluations, repos.Directory, repos.Users, periods, services.StatisticsConfig{
			MinTeacherSamples: cfg.Evaluation.MinTeacherSamples,
			MinCourseSamples:  cfg.Evaluation.MinCourseSamples,
		}),
		Accounts: services.NewAccountService(repos.Users, services.NewAccountPolicy(cfg.Evaluation.ProtectedAccounts...)),
		Exports:  services.NewExportService(cfg.Export.Path),
	}
}
