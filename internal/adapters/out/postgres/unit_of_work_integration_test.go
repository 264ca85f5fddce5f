package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	postgres_adapter "logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/pgtest"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite checks transaction boundaries and the outbox
// flush against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

var changedAt = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCreate_ReturnsIndependentInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotNil(uow1)
	suite.NotSame(uow1, uow2)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBegin_CalledTwice_NoError() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_ReturnsError() {
	err := suite.factory.Create().Commit(context.Background())

	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_WithoutBegin_ReturnsError() {
	err := suite.factory.Create().Rollback(context.Background())

	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_StoresOrderAndOutboxEvents() {
	ctx := context.Background()
	o := suite.addOrder("ORD-100")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	loaded, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.ChangeStatus(order.MustGroupRef(order.Hardware, ""), order.Approved, changedAt))
	suite.Require().NoError(loaded.Reject(order.MustGroupRef(order.LPO, "S1"), "wrong grade", changedAt))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Empty(loaded.DomainEvents(), "events are cleared once stored")

	messages, err := suite.factory.Create().OutboxRepository().FetchUnpublished(ctx, 10, 5)
	suite.Require().NoError(err)
	suite.Require().Len(messages, 2)
	suite.Equal(o.ID(), messages[0].Event.OrderID)
	suite.Equal("ORD-100", messages[0].Event.OrderNumber)

	var hardware, lpo ports.OutboxMessage
	for _, m := range messages {
		if m.Event.Group.Type() == order.Hardware {
			hardware = m
		} else {
			lpo = m
		}
	}
	suite.Equal(order.Pending, hardware.Event.From)
	suite.Equal(order.Approved, hardware.Event.To)
	suite.Equal(order.MustGroupRef(order.LPO, "S1"), lpo.Event.Group)
	suite.Equal(order.Rejected, lpo.Event.To)
	suite.True(changedAt.Equal(lpo.Event.OccurredAt))
	suite.Zero(lpo.Attempts)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsOrderAndEvents() {
	ctx := context.Background()
	o := suite.addOrder("ORD-101")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	loaded, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.ChangeStatus(order.MustGroupRef(order.Custom, ""), order.Cancelled, changedAt))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Rollback(ctx))

	reloaded, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Pending, reloaded.GroupStatus(order.Custom))
	suite.assertOutboxCount(0)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_AfterCommit_IsHarmless() {
	ctx := context.Background()
	o := suite.newOrder("ORD-102")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() {
		suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
	}()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_FailedWrite_LeavesNothingBehind() {
	ctx := context.Background()
	suite.addOrder("ORD-103")
	duplicate := suite.newOrder("ORD-103")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	err := uow.OrderRepository().Add(ctx, duplicate)
	suite.Require().Error(err)
	suite.Require().NoError(uow.Rollback(ctx))

	var count int64
	suite.Require().NoError(suite.db.Table("orders").Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOutbox_MarkPublishedAndFailed() {
	ctx := context.Background()
	o := suite.addOrder("ORD-104")
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	loaded, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.ChangeStatus(order.MustGroupRef(order.Hardware, ""), order.Approved, changedAt))
	suite.Require().NoError(loaded.ChangeStatus(order.MustGroupRef(order.Workshop, ""), order.Approved, changedAt.Add(time.Minute)))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Commit(ctx))

	outbox := suite.factory.Create().OutboxRepository()
	messages, err := outbox.FetchUnpublished(ctx, 10, 2)
	suite.Require().NoError(err)
	suite.Require().Len(messages, 2)
	suite.Equal(order.Hardware, messages[0].Event.Group.Type(), "oldest first")

	suite.Require().NoError(outbox.MarkPublished(ctx, messages[0].ID))
	suite.Require().NoError(outbox.MarkFailed(ctx, messages[1].ID, errors.New("broker unavailable")))

	remaining, err := outbox.FetchUnpublished(ctx, 10, 2)
	suite.Require().NoError(err)
	suite.Require().Len(remaining, 1)
	suite.Equal(1, remaining[0].Attempts)

	suite.Require().NoError(outbox.MarkFailed(ctx, messages[1].ID, errors.New("broker unavailable")))
	exhausted, err := outbox.FetchUnpublished(ctx, 10, 2)
	suite.Require().NoError(err)
	suite.Empty(exhausted, "messages past the attempt limit are not fetched")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOutbox_MarkUnknownMessage_ReturnsNotFound() {
	outbox := suite.factory.Create().OutboxRepository()

	suite.Require().Error(outbox.MarkPublished(context.Background(), kernel.NewUUID()))
	suite.Require().Error(outbox.MarkFailed(context.Background(), kernel.NewUUID(), nil))
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(number string) *order.Order {
	hardware, err := order.NewLineItem(kernel.NewUUID(), "Rebar 12mm", order.Hardware, "", 10, nil)
	suite.Require().NoError(err)
	cement, err := order.NewLineItem(kernel.NewUUID(), "Cement 50kg", order.LPO, "S1", 40, nil)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), number, "Acme Builders", "Tower B",
		[]*order.LineItem{hardware, cement}, changedAt.Add(-time.Hour))
	suite.Require().NoError(err)
	return o
}

// addOrder stores a fresh order in its own committed transaction.
func (suite *UnitOfWorkIntegrationTestSuite) addOrder(number string) *order.Order {
	ctx := context.Background()
	o := suite.newOrder(number)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) assertOutboxCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Table("outbox_messages").Count(&count).Error)
	suite.Equal(expected, count)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
