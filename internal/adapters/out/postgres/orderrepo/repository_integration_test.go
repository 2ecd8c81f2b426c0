package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/employeerepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/employee"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers to verify persistence behavior,
// including the compare-and-swap status update.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &employeerepo.EmployeeDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, employees").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.newPendingOrder(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTrips() {
	ctx := context.Background()

	businessID := kernel.NewUUID()
	original := suite.newPendingOrder(businessID)
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.True(original.ID().IsEqual(retrieved.ID()))
	suite.True(businessID.IsEqual(retrieved.BusinessID()))
	suite.Equal(order.Pending, retrieved.Status())
	suite.Equal(original.CustomerName(), retrieved.CustomerName())
	suite.Equal(original.CustomerPhone(), retrieved.CustomerPhone())
	suite.Equal(original.OrderDetails(), retrieved.OrderDetails())
	suite.InDelta(original.TotalAmount(), retrieved.TotalAmount(), 0.001)
	suite.Equal(original.DeliveryAddress().Street(), retrieved.DeliveryAddress().Street())
	suite.Nil(retrieved.AssignedDriverID())
	suite.Nil(retrieved.ConfirmedAt())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ExpectedStatusMatches_Persists() {
	ctx := context.Background()

	testOrder := suite.newPendingOrder(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.Confirm())

	err := suite.repository.Update(ctx, testOrder, order.Pending)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, retrieved.Status())
	suite.NotNil(retrieved.ConfirmedAt())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_RowMovedOn_ReturnsConcurrencyConflict() {
	ctx := context.Background()

	testOrder := suite.newPendingOrder(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// First writer confirms the order.
	suite.Require().NoError(testOrder.Confirm())
	suite.Require().NoError(suite.repository.Update(ctx, testOrder, order.Pending))

	// Second writer still believes the order is pending.
	stale := suite.newPendingOrderWithID(testOrder.ID(), testOrder.BusinessID())
	suite.Require().NoError(stale.Confirm())

	err := suite.repository.Update(ctx, stale, order.Pending)
	suite.Require().Error(err)

	var conflictErr *errs.ConcurrencyConflictError
	suite.Require().ErrorAs(err, &conflictErr)

	// The first writer's state survives.
	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, retrieved.Status())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	testOrder := suite.newPendingOrder(kernel.NewUUID())

	err := suite.repository.Update(ctx, testOrder, order.Pending)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllForDriver_ReturnsOnlyAssignedOrders() {
	ctx := context.Background()

	businessID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	otherDriverID := kernel.NewUUID()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	suite.addAssignedOrder(ctx, businessID, driverID)
	suite.addAssignedOrder(ctx, businessID, otherDriverID)
	suite.Require().NoError(suite.repository.Add(ctx, suite.newPendingOrder(businessID)))

	orders, err := suite.repository.GetAllForDriver(ctx, driverID)
	suite.Require().NoError(err)

	suite.Require().Len(orders, 1)
	suite.Require().NotNil(orders[0].AssignedDriverID())
	suite.True(driverID.IsEqual(*orders[0].AssignedDriverID()))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllForDriverUser_SpansBusinesses() {
	ctx := context.Background()

	userID := kernel.NewUUID()

	// The same platform user drives for two businesses under two memberships.
	firstMembership := suite.addDriverMembership(ctx, userID, kernel.NewUUID())
	secondMembership := suite.addDriverMembership(ctx, userID, kernel.NewUUID())
	strangerMembership := suite.addDriverMembership(ctx, kernel.NewUUID(), kernel.NewUUID())

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	suite.addAssignedOrder(ctx, firstMembership.BusinessID(), firstMembership.ID())
	suite.addAssignedOrder(ctx, secondMembership.BusinessID(), secondMembership.ID())
	suite.addAssignedOrder(ctx, strangerMembership.BusinessID(), strangerMembership.ID())

	orders, err := suite.repository.GetAllForDriverUser(ctx, userID)
	suite.Require().NoError(err)

	suite.Require().Len(orders, 2)
	for _, o := range orders {
		suite.Require().NotNil(o.AssignedDriverID())
		driverID := *o.AssignedDriverID()
		suite.True(driverID.IsEqual(firstMembership.ID()) || driverID.IsEqual(secondMembership.ID()))
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) newPendingOrder(businessID kernel.UUID) *order.Order {
	return suite.newPendingOrderWithID(kernel.NewUUID(), businessID)
}

func (suite *OrderRepositoryIntegrationTestSuite) newPendingOrderWithID(
	id, businessID kernel.UUID,
) *order.Order {
	address, err := kernel.NewAddress("12 Main St", "Springfield", "IL", "62701", "USA")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(order.NewOrderParams{
		ID:              id,
		BusinessID:      businessID,
		CustomerName:    "Ada Lovelace",
		CustomerPhone:   "+15550100",
		CustomerEmail:   "ada@example.com",
		DeliveryAddress: address,
		OrderDetails:    "2x large pizza",
		TotalAmount:     41.50,
	})
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) addAssignedOrder(
	ctx context.Context, businessID, driverID kernel.UUID,
) *order.Order {
	testOrder := suite.newPendingOrder(businessID)
	suite.Require().NoError(testOrder.Confirm())
	suite.Require().NoError(testOrder.AssignDriver(driverID))

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) addDriverMembership(
	ctx context.Context, userID, businessID kernel.UUID,
) *employee.Employee {
	membership, err := employee.NewEmployee(userID, businessID, []employee.Role{employee.RoleDriver})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.db.WithContext(ctx).Exec(
		"INSERT INTO employees (id, user_id, business_id, roles, status, created_at, updated_at) "+
			"VALUES (?, ?, ?, ARRAY['driver'], 'active', now(), now())",
		membership.ID().Bytes(), userID.Bytes(), businessID.Bytes(),
	).Error)
	return membership
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
