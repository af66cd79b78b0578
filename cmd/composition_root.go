package cmd

import (
	"log/slog"
	"time"

	"github.com/SlinkierSwine/cargo-track/internal/adapters/out/postgres"
	"github.com/SlinkierSwine/cargo-track/internal/adapters/out/postgres/cargorepo"
	"github.com/SlinkierSwine/cargo-track/internal/core/application/eventhandlers"
	"github.com/SlinkierSwine/cargo-track/internal/core/application/usecases/commands"
	"github.com/SlinkierSwine/cargo-track/internal/core/application/usecases/queries"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/services"
	"github.com/SlinkierSwine/cargo-track/internal/core/ports"
	"github.com/SlinkierSwine/cargo-track/internal/jobs"

	"gorm.io/gorm"
)

// reservationTTL bounds how long a vehicle/driver pair stays reserved when
// the confirming event never arrives.
const reservationTTL = time.Minute

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	publisher       ports.EventPublisher
	fleetClient     ports.FleetClient
	warehouseClient ports.WarehouseClient
	reservations    *services.ReservationRegistry
	logger          *slog.Logger
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	fleetClient ports.FleetClient,
	warehouseClient ports.WarehouseClient,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:          gormDB,
		uowFactory:      *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:       publisher,
		fleetClient:     fleetClient,
		warehouseClient: warehouseClient,
		reservations:    services.NewReservationRegistry(reservationTTL),
		logger:          logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateAssignVehicleCommandHandler() commands.AssignVehicleCommandHandler {
	return commands.NewAssignVehicleCommandHandler(c.orderUoWFactory(), c.fleetClient)
}

func (c *CompositionRoot) CreateRegisterCargoCommandHandler() commands.RegisterCargoCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterCargoCommandHandler(f)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.warehouseClient, c.publisher)
}

func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCheckCompatibilityQueryHandler() queries.CheckCompatibilityQueryHandler {
	return queries.NewCheckCompatibilityQueryHandler(
		cargorepo.NewGormCargoRepository(c.gormDB), c.fleetClient)
}

func (c *CompositionRoot) CreateOrderEventService() *eventhandlers.OrderEventService {
	return eventhandlers.NewOrderEventService(
		c.CreateAssignVehicleCommandHandler(),
		c.orderUoWFactory(),
		c.publisher,
		c.logger,
	)
}

func (c *CompositionRoot) CreateFleetEventService() *eventhandlers.FleetEventService {
	return eventhandlers.NewFleetEventService(
		c.fleetClient,
		c.publisher,
		c.reservations,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.orderUoWFactory(), c.publisher, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
