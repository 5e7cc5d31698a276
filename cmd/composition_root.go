package cmd

import (
	"log/slog"

	adapterhttp "parcelmate/internal/adapters/in/http"
	"parcelmate/internal/adapters/out/postgres"
	"parcelmate/internal/core/application/facade"
	"parcelmate/internal/core/application/usecases/queries"
	"parcelmate/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires the engine, its persistence and its entry points
// together from one database connection.
type CompositionRoot struct {
	gormDB *gorm.DB
	engine *facade.Engine
	logger *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	return CompositionRoot{
		gormDB: gormDB,
		engine: facade.NewEngine(uowFactory, logger),
		logger: logger,
	}
}

// Engine returns the composed application facade.
func (c *CompositionRoot) Engine() *facade.Engine {
	return c.engine
}

func (c *CompositionRoot) CreateSearchFlightsQueryHandler() queries.SearchFlightsQueryHandler {
	return queries.NewSearchFlightsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderTimelineQueryHandler() queries.GetOrderTimelineQueryHandler {
	return queries.NewGetOrderTimelineQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the REST surface over the engine and the read
// models.
func (c *CompositionRoot) CreateHTTPServer() *adapterhttp.Server {
	return adapterhttp.NewServer(
		c.engine,
		c.CreateSearchFlightsQueryHandler(),
		c.CreateGetOrderTimelineQueryHandler(),
	)
}

// CreateJobManager builds the background jobs over the engine.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.engine, c.logger)
}
