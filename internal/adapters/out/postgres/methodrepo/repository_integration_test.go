package methodrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/methodrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipping"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ShippingMethodRepositoryIntegrationTestSuite provides integration tests for
// ShippingMethodRepository using PostgreSQL containers, covering the
// calculator configuration round-trip and store filtering.
type ShippingMethodRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *methodrepo.GormShippingMethodRepository
}

func (suite *ShippingMethodRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&methodrepo.MethodDTO{}))
}

func (suite *ShippingMethodRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shipping_methods").Error)
	suite.repository = methodrepo.NewGormShippingMethodRepository(suite.db)
}

func (suite *ShippingMethodRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ShippingMethodRepositoryIntegrationTestSuite) TestAdd_RoundTripsEachCalculatorType() {
	ctx := context.Background()
	storeID := kernel.NewUUID()

	flatRate, err := shipping.NewFlatRateCalculator(suite.money("5", "USD"))
	suite.Require().NoError(err)
	perItem, err := shipping.NewPerItemCalculator(suite.money("1.50", "USD"))
	suite.Require().NoError(err)
	percent, err := decimal.NewFromString("7.5")
	suite.Require().NoError(err)
	flatPercent, err := shipping.NewFlatPercentCalculator(percent)
	suite.Require().NoError(err)

	calculators := map[string]shipping.Calculator{
		"Flat Post":    flatRate,
		"Per Item":     perItem,
		"Percent Post": flatPercent,
	}

	for name, calculator := range calculators {
		method := suite.createMethod(name, calculator, nil)
		suite.Require().NoError(suite.repository.Add(ctx, method))
	}

	methods, err := suite.repository.GetForStore(ctx, storeID)
	suite.Require().NoError(err)
	suite.Require().Len(methods, 3)

	byName := map[string]*shipping.Method{}
	for _, method := range methods {
		byName[method.Name()] = method
	}

	restoredFlat, ok := byName["Flat Post"].Calculator().(shipping.FlatRateCalculator)
	suite.Require().True(ok)
	suite.True(restoredFlat.Amount().IsEqual(suite.money("5", "USD")))

	restoredPerItem, ok := byName["Per Item"].Calculator().(shipping.PerItemCalculator)
	suite.Require().True(ok)
	suite.True(restoredPerItem.AmountPerUnit().IsEqual(suite.money("1.50", "USD")))

	restoredPercent, ok := byName["Percent Post"].Calculator().(shipping.FlatPercentCalculator)
	suite.Require().True(ok)
	suite.True(restoredPercent.Percent().Equal(percent))
}

func (suite *ShippingMethodRepositoryIntegrationTestSuite) TestGetForStore_FiltersByStoreAssociation() {
	ctx := context.Background()
	ourStore := kernel.NewUUID()
	otherStore := kernel.NewUUID()

	flatRate, err := shipping.NewFlatRateCalculator(suite.money("5", "USD"))
	suite.Require().NoError(err)

	unrestricted := suite.createMethod("Everywhere Post", flatRate, nil)
	ours := suite.createMethod("Our Post", flatRate, []kernel.UUID{ourStore})
	theirs := suite.createMethod("Their Post", flatRate, []kernel.UUID{otherStore})

	for _, method := range []*shipping.Method{unrestricted, ours, theirs} {
		suite.Require().NoError(suite.repository.Add(ctx, method))
	}

	methods, err := suite.repository.GetForStore(ctx, ourStore)
	suite.Require().NoError(err)

	names := map[string]bool{}
	for _, method := range methods {
		names[method.Name()] = true
	}
	suite.Require().Len(methods, 2)
	suite.True(names["Everywhere Post"])
	suite.True(names["Our Post"])
	suite.False(names["Their Post"])
}

func (suite *ShippingMethodRepositoryIntegrationTestSuite) TestGetForStore_InvalidStoreID_ReturnsError() {
	ctx := context.Background()

	methods, err := suite.repository.GetForStore(ctx, kernel.UUID{})
	suite.Require().Error(err)
	suite.Nil(methods)
}

func (suite *ShippingMethodRepositoryIntegrationTestSuite) TestAdd_RoundTripsZones() {
	ctx := context.Background()

	flatRate, err := shipping.NewFlatRateCalculator(suite.money("5", "USD"))
	suite.Require().NoError(err)

	method := suite.createMethod("West Coast Post", flatRate, nil)
	suite.Require().NoError(suite.repository.Add(ctx, method))

	methods, err := suite.repository.GetForStore(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Require().Len(methods, 1)

	zones := methods[0].Zones()
	suite.Require().Len(zones, 1)
	suite.Equal("North America", zones[0].Name())
	suite.Require().Len(zones[0].Members(), 2)
	suite.Equal("US", zones[0].Members()[0].Country)
	suite.Equal("CA", zones[0].Members()[0].Region)
	suite.Equal("CA", zones[0].Members()[1].Country)
}

// createMethod creates a method with one zone (US-CA plus Canada) and one
// category, optionally restricted to the given stores.
func (suite *ShippingMethodRepositoryIntegrationTestSuite) createMethod(
	name string,
	calculator shipping.Calculator,
	storeIDs []kernel.UUID,
) *shipping.Method {
	zone, err := shipping.NewZone("North America", []shipping.ZoneMember{
		{Country: "US", Region: "CA"},
		{Country: "CA"},
	})
	suite.Require().NoError(err)

	method, err := shipping.NewMethod(
		kernel.NewUUID(),
		name,
		[]kernel.UUID{kernel.NewUUID()},
		[]shipping.Zone{zone},
		storeIDs,
		calculator,
	)
	suite.Require().NoError(err)
	return method
}

func (suite *ShippingMethodRepositoryIntegrationTestSuite) money(amount string, currency string) kernel.Money {
	value, err := decimal.NewFromString(amount)
	suite.Require().NoError(err)
	m, err := kernel.NewMoney(value, currency)
	suite.Require().NoError(err)
	return m
}

func TestShippingMethodRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ShippingMethodRepositoryIntegrationTestSuite))
}
