package escrowrepo_test

import (
	"context"
	"testing"
	"time"

	"parcelmate/internal/adapters/out/postgres/escrowrepo"
	"parcelmate/internal/core/domain/model/escrow"
	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/pkg/errs"

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

// EscrowRepositoryIntegrationTestSuite verifies the ledger guarantees the
// storage layer provides: one hold per order, and state changes that only
// move money out of Held once.
type EscrowRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *escrowrepo.GormEscrowRepository
	tracker    *MockAggregateTracker
}

func (suite *EscrowRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&escrowrepo.EscrowEntryDTO{}))
}

func (suite *EscrowRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE escrow_entries").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = escrowrepo.NewGormEscrowRepository(suite.db, suite.tracker)
}

func (suite *EscrowRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *EscrowRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()

	entry := suite.createTestEntry()
	suite.tracker.On("TrackAggregate", entry.OrderID(), entry).Once()
	suite.Require().NoError(suite.repository.Add(ctx, entry))

	retrieved, err := suite.repository.Get(ctx, entry.OrderID())
	suite.Require().NoError(err)
	suite.Equal(entry.OrderID(), retrieved.OrderID())
	suite.Equal(int64(3750), retrieved.HeldAmount().Amount())
	suite.Equal(escrow.Held, retrieved.State())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *EscrowRepositoryIntegrationTestSuite) TestAdd_SecondHoldForSameOrder_ReturnsDuplicateHold() {
	ctx := context.Background()

	entry := suite.createTestEntry()
	suite.tracker.On("TrackAggregate", entry.OrderID(), entry).Once()
	suite.Require().NoError(suite.repository.Add(ctx, entry))

	amount, err := kernel.MoneyFromAmount(1000)
	suite.Require().NoError(err)
	duplicate, err := escrow.NewEntry(entry.OrderID(), amount)
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, duplicate)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrDuplicateHold)

	// The original hold is untouched.
	retrieved, err := suite.repository.Get(ctx, entry.OrderID())
	suite.Require().NoError(err)
	suite.Equal(int64(3750), retrieved.HeldAmount().Amount())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *EscrowRepositoryIntegrationTestSuite) TestGet_NonExistentEntry_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *EscrowRepositoryIntegrationTestSuite) TestUpdate_SettleHeldEntry_Succeeds() {
	ctx := context.Background()

	entry := suite.createTestEntry()
	suite.tracker.On("TrackAggregate", entry.OrderID(), mock.Anything).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, entry))

	suite.Require().NoError(entry.Settle())
	suite.Require().NoError(suite.repository.Update(ctx, entry))

	retrieved, err := suite.repository.Get(ctx, entry.OrderID())
	suite.Require().NoError(err)
	suite.Equal(escrow.Settled, retrieved.State())

	suite.tracker.AssertExpectations(suite.T())
}

// Settlement and refund race for the same hold: whichever lands second
// finds the entry no longer Held and loses.
func (suite *EscrowRepositoryIntegrationTestSuite) TestUpdate_EntryNoLongerHeld_ReturnsConcurrencyConflict() {
	ctx := context.Background()

	entry := suite.createTestEntry()
	suite.tracker.On("TrackAggregate", entry.OrderID(), mock.Anything).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, entry))

	settled, err := suite.repository.Get(ctx, entry.OrderID())
	suite.Require().NoError(err)
	refunded, err := suite.repository.Get(ctx, entry.OrderID())
	suite.Require().NoError(err)

	suite.Require().NoError(settled.Settle())
	suite.Require().NoError(suite.repository.Update(ctx, settled))

	suite.Require().NoError(refunded.Release())
	err = suite.repository.Update(ctx, refunded)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConcurrencyConflict)

	retrieved, err := suite.repository.Get(ctx, entry.OrderID())
	suite.Require().NoError(err)
	suite.Equal(escrow.Settled, retrieved.State())
}

func (suite *EscrowRepositoryIntegrationTestSuite) createTestEntry() *escrow.Entry {
	amount, err := kernel.MoneyFromAmount(3750)
	suite.Require().NoError(err)
	entry, err := escrow.NewEntry(kernel.NewUUID(), amount)
	suite.Require().NoError(err)
	return entry
}

func TestEscrowRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(EscrowRepositoryIntegrationTestSuite))
}
