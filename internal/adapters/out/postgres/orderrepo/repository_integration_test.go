package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"warehouse/internal/adapters/out/postgres/orderrepo"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/errs"

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

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite exercises OrderRepository against a real
// PostgreSQL container.
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsLinesAndCounters() {
	ctx := context.Background()

	variantID := kernel.NewUUID()
	testOrder := suite.createTestOrder("ORD-1001", order.PartiallyAllocated, &variantID)
	suite.Require().NoError(testOrder.Items()[0].SetAllocatedQty(3))

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(testOrder.ID(), retrieved.ID())
	suite.Equal("ORD-1001", retrieved.OrderNumber())
	suite.Equal(order.PartiallyAllocated, retrieved.Status())
	suite.Equal(kernel.PriorityStandard, retrieved.Priority())
	suite.Require().Len(retrieved.Items(), 2)
	suite.Equal(3, retrieved.Items()[0].AllocatedQty())
	suite.Require().NotNil(retrieved.Items()[0].VariantID())
	suite.True(variantID.IsEqual(*retrieved.Items()[0].VariantID()))
	suite.Nil(retrieved.Items()[1].VariantID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusAndClearedHold() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("ORD-1002", order.Pending, nil)
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.PlaceOnHold("unmatched line", time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	held, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.OnHold, held.Status())
	suite.Equal("unmatched line", held.HoldReason())
	suite.NotNil(held.HeldAt())

	// releasing the hold must clear the reason column back to empty
	suite.Require().NoError(held.ReleaseHold())
	suite.tracker.On("TrackAggregate", held.ID(), held).Once()
	suite.Require().NoError(suite.repository.Update(ctx, held))

	released, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Pending, released.Status())
	suite.Empty(released.HoldReason())
	suite.Nil(released.HeldAt())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()

	missing := suite.createTestOrder("ORD-1003", order.Pending, nil)

	err := suite.repository.Update(ctx, missing)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetBackorderedByVariant_FiltersAndOrdersOldestFirst() {
	ctx := context.Background()
	variantID := kernel.NewUUID()
	otherVariant := kernel.NewUUID()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(4)

	oldest := suite.createTestOrder("ORD-2001", order.Backordered, &variantID)
	newer := suite.createTestOrder("ORD-2002", order.PartiallyAllocated, &variantID)
	wrongVariant := suite.createTestOrder("ORD-2003", order.Backordered, &otherVariant)
	wrongStatus := suite.createTestOrder("ORD-2004", order.Allocated, &variantID)
	suite.Require().NoError(wrongStatus.Items()[0].SetAllocatedQty(5))

	for _, o := range []*order.Order{oldest, newer, wrongVariant, wrongStatus} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
		time.Sleep(10 * time.Millisecond)
	}

	waiting, err := suite.repository.GetBackorderedByVariant(ctx, variantID)
	suite.Require().NoError(err)

	suite.Require().Len(waiting, 2)
	suite.Equal(oldest.ID(), waiting[0].ID())
	suite.Equal(newer.ID(), waiting[1].ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllBackordered_NoWaitingOrders_ReturnsEmptySlice() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("ORD-2005", order.Pending, nil)
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	waiting, err := suite.repository.GetAllBackordered(ctx)
	suite.Require().NoError(err)
	suite.Empty(waiting)

	suite.tracker.AssertExpectations(suite.T())
}

// createTestOrder builds a two-line order: the first line matched to the
// given variant (when provided, requiring 5) and the second unmatched.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(
	orderNumber string,
	status order.Status,
	variantID *kernel.UUID,
) *order.Order {
	orderID := kernel.NewUUID()

	first, err := order.NewOrderItem(kernel.NewUUID(), orderID, "SKU-A", 5)
	suite.Require().NoError(err)
	if variantID != nil {
		suite.Require().NoError(first.MatchVariant(*variantID))
	}

	second, err := order.NewOrderItem(kernel.NewUUID(), orderID, "SKU-B", 2)
	suite.Require().NoError(err)

	testOrder, err := order.RestoreOrder(orderID, orderNumber, status,
		kernel.PriorityStandard, "", nil, []*order.OrderItem{first, second})
	suite.Require().NoError(err)

	return testOrder
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
