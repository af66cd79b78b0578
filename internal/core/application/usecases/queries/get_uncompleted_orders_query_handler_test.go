package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/SlinkierSwine/cargo-track/internal/adapters/out/postgres/orderrepo"
	"github.com/SlinkierSwine/cargo-track/internal/core/application/usecases/queries"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type noopAggregateTracker struct{}

func (noopAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// GetUncompletedOrdersQueryHandlerTestSuite runs the projection query against
// a real PostgreSQL container seeded through the order repository.
type GetUncompletedOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	handler   queries.GetUncompletedOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))

	suite.handler = queries.NewGetUncompletedOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, noopAggregateTracker{})
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) addOrder(name string) *order.Order {
	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		name, "customer@example.com", "+10000000001",
		"12 Dock Rd", "7 Market Sq",
		"general", 120, 2.5, "",
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), testOrder))
	return testOrder
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase() {
	result, err := suite.handler.Handle(context.Background(), queries.NewGetUncompletedOrdersQuery())
	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) TestHandle_SkipsTerminalStatuses() {
	ctx := context.Background()

	pending := suite.addOrder("Pending Customer")
	assigned := suite.addOrder("Assigned Customer")
	cancelled := suite.addOrder("Cancelled Customer")

	suite.Require().NoError(assigned.Assign(kernel.NewUUID(), kernel.NewUUID()))
	suite.Require().NoError(suite.orderRepo.Update(ctx, assigned))

	suite.Require().NoError(cancelled.ChangeStatus(order.Cancelled))
	suite.Require().NoError(suite.orderRepo.Update(ctx, cancelled))

	result, err := suite.handler.Handle(ctx, queries.NewGetUncompletedOrdersQuery())
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	byID := make(map[string]queries.GetUncompletedOrdersQueryResponse, len(result))
	for _, row := range result {
		byID[row.ID.String()] = row
	}

	pendingRow, ok := byID[pending.ID().String()]
	suite.Require().True(ok)
	suite.Equal("pending", pendingRow.Status)
	suite.Equal("Pending Customer", pendingRow.CustomerName)
	suite.Nil(pendingRow.VehicleID)

	assignedRow, ok := byID[assigned.ID().String()]
	suite.Require().True(ok)
	suite.Equal("assigned", assignedRow.Status)
	suite.Require().NotNil(assignedRow.VehicleID)
	suite.True(assigned.VehicleID().IsEqual(*assignedRow.VehicleID))
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) TestHandle_NotConstructedQuery() {
	var query queries.GetUncompletedOrdersQuery
	_, err := suite.handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, queries.ErrGetUncompletedOrdersQueryIsNotConstructed)
}

func TestGetUncompletedOrdersQueryHandlerTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(GetUncompletedOrdersQueryHandlerTestSuite))
}
