package queries_test

import (
	"context"
	"testing"
	"time"

	"agrimarket/internal/adapters/out/postgres/orderrepo"
	"agrimarket/internal/core/application/usecases/queries"
	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/core/domain/model/order"
	"agrimarket/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type nopTracker struct{}

func (nopTracker) TrackAggregate(kernel.UUID, any) {}

// QueryHandlersIntegrationTestSuite exercises the three order read models
// against a real database. They share fixtures, so they share a suite.
type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository

	getOrder     queries.GetOrderQueryHandler
	buyerOrders  queries.GetBuyerOrdersQueryHandler
	sellerOrders queries.GetSellerOrdersQueryHandler
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.LineDTO{}))

	suite.repo = orderrepo.NewGormOrderRepository(db, nopTracker{})
	suite.getOrder = queries.NewGetOrderQueryHandler(db)
	suite.buyerOrders = queries.NewGetBuyerOrdersQueryHandler(db)
	suite.sellerOrders = queries.NewGetSellerOrdersQueryHandler(db)
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_lines").Error)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_BuyerSeesOwnOrder() {
	ctx := context.Background()
	buyerID := kernel.NewUUID()
	o := suite.addOrder(buyerID, kernel.NewUUID(), order.MethodParcel)

	buyer, err := order.NewActor(buyerID, order.RoleBuyer)
	suite.Require().NoError(err)
	query, err := queries.NewGetOrderQuery(o.ID(), buyer)
	suite.Require().NoError(err)

	resp, err := suite.getOrder.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(o.ID(), resp.ID)
	suite.Equal(buyerID, resp.BuyerID)
	suite.Equal("Pending", resp.Status)
	suite.Equal("parcel", resp.DeliveryMethod)
	suite.Equal("pay_on_delivery", resp.PaymentMethod)
	suite.Equal("Ravi Kumar", resp.FullName)
	suite.InDelta(o.TotalPrice(), resp.TotalPrice, 0.001)
	suite.Len(resp.Lines, 2)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_OtherBuyerForbidden() {
	ctx := context.Background()
	o := suite.addOrder(kernel.NewUUID(), kernel.NewUUID(), order.MethodParcel)

	stranger, err := order.NewActor(kernel.NewUUID(), order.RoleBuyer)
	suite.Require().NoError(err)
	query, err := queries.NewGetOrderQuery(o.ID(), stranger)
	suite.Require().NoError(err)

	_, err = suite.getOrder.Handle(ctx, query)
	suite.Require().Error(err)
	suite.ErrorIs(err, order.ErrForbidden)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_MissingOrderNotFound() {
	ctx := context.Background()

	buyer, err := order.NewActor(kernel.NewUUID(), order.RoleBuyer)
	suite.Require().NoError(err)
	query, err := queries.NewGetOrderQuery(kernel.NewUUID(), buyer)
	suite.Require().NoError(err)

	_, err = suite.getOrder.Handle(ctx, query)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetBuyerOrders_NewestFirst() {
	ctx := context.Background()
	buyerID := kernel.NewUUID()

	first := suite.addOrder(buyerID, kernel.NewUUID(), order.MethodParcel)
	suite.backdate(first.ID(), -2*time.Hour)
	second := suite.addOrder(buyerID, kernel.NewUUID(), order.MethodSelfPickup)
	suite.backdate(second.ID(), -1*time.Hour)
	suite.addOrder(kernel.NewUUID(), kernel.NewUUID(), order.MethodParcel) // someone else's

	query, err := queries.NewGetBuyerOrdersQuery(buyerID)
	suite.Require().NoError(err)

	result, err := suite.buyerOrders.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 2)
	suite.Equal(second.ID(), result[0].ID)
	suite.Equal(first.ID(), result[1].ID)
	suite.Len(result[0].Lines, 2)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetBuyerOrders_NoOrders_ReturnsEmptySlice() {
	ctx := context.Background()

	query, err := queries.NewGetBuyerOrdersQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.buyerOrders.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetSellerOrders_OnlyOwnLines() {
	ctx := context.Background()
	sellerID := kernel.NewUUID()
	otherSeller := kernel.NewUUID()

	// One order mixing both sellers' lines, one order entirely foreign.
	mixed := suite.addMixedOrder(kernel.NewUUID(), sellerID, otherSeller)
	suite.addOrder(kernel.NewUUID(), otherSeller, order.MethodParcel)

	query, err := queries.NewGetSellerOrdersQuery(sellerID)
	suite.Require().NoError(err)

	result, err := suite.sellerOrders.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 1)
	suite.Equal(mixed.ID(), result[0].ID)
	suite.Require().Len(result[0].Lines, 1)
	suite.Equal(sellerID, result[0].Lines[0].SellerID)
}

func (suite *QueryHandlersIntegrationTestSuite) addOrder(
	buyerID, sellerID kernel.UUID, method order.DeliveryMethod,
) *order.Order {
	line1, err := order.NewLine(kernel.NewUUID(), sellerID, "Tomatoes", 25, 4)
	suite.Require().NoError(err)
	line2, err := order.NewLine(kernel.NewUUID(), sellerID, "Onions", 18, 2.5)
	suite.Require().NoError(err)

	return suite.persistOrder(buyerID, []order.Line{line1, line2}, method)
}

func (suite *QueryHandlersIntegrationTestSuite) addMixedOrder(
	buyerID, sellerID, otherSeller kernel.UUID,
) *order.Order {
	line1, err := order.NewLine(kernel.NewUUID(), sellerID, "Tomatoes", 25, 4)
	suite.Require().NoError(err)
	line2, err := order.NewLine(kernel.NewUUID(), otherSeller, "Onions", 18, 2.5)
	suite.Require().NoError(err)

	return suite.persistOrder(buyerID, []order.Line{line1, line2}, order.MethodParcel)
}

func (suite *QueryHandlersIntegrationTestSuite) persistOrder(
	buyerID kernel.UUID, lines []order.Line, method order.DeliveryMethod,
) *order.Order {
	profile, err := order.NewDeliveryProfile(
		"Ravi Kumar", "9876543210", "12 Market Road", "Nashik", "Maharashtra", "422001")
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(), buyerID, lines, profile, method, order.PaymentOnDelivery)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), o))
	return o
}

func (suite *QueryHandlersIntegrationTestSuite) backdate(id kernel.UUID, offset time.Duration) {
	suite.Require().NoError(suite.db.Exec(
		"UPDATE orders SET created_at = ? WHERE id = ?",
		time.Now().UTC().Add(offset), id.Bytes()).Error)
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
