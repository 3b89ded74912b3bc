package eventbus

import (
	"context"
	"testing"

	"shortlink/internal/domain/event"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/stretchr/testify/suite"
)

type OutboxTestSuite struct {
	suite.Suite
	drv *entsql.Driver
	sut *OutboxPublisher
}

func TestOutboxTestSuite(t *testing.T) {
	suite.Run(t, new(OutboxTestSuite))
}

func (s *OutboxTestSuite) SetupTest() {
	s.drv = openTestDriver(s.T())
	s.sut = NewOutboxPublisher(s.drv)
}

func (s *OutboxTestSuite) TestPublishInTx_SingleEvent() {
	// Arrange
	ctx := context.Background()
	tx, err := s.drv.Tx(ctx)
	s.Require().NoError(err)
	evt := event.NewMappingCreated("abc1234", "https://example.com", "http://localhost:8080/abc1234")

	// Act
	err = s.sut.PublishInTx(ctx, tx, []event.Event{evt})
	s.Require().NoError(err)
	s.Require().NoError(tx.Commit())

	// Assert
	messages := storedMessages(s.T(), s.drv)
	s.Len(messages, 1)
	s.Equal(evt.EventID(), messages[0].uuid)
	s.Equal("mapping.created", messages[0].eventName)
	s.Equal("abc1234", messages[0].aggregateID)
}

func (s *OutboxTestSuite) TestPublishInTx_MultipleEvents() {
	// Arrange
	ctx := context.Background()
	tx, err := s.drv.Tx(ctx)
	s.Require().NoError(err)
	events := []event.Event{
		event.NewMappingCreated("abc1234", "https://example.com", "http://localhost:8080/abc1234"),
		event.NewMappingDeleted("abc1234"),
	}

	// Act
	err = s.sut.PublishInTx(ctx, tx, events)
	s.Require().NoError(err)
	s.Require().NoError(tx.Commit())

	// Assert
	messages := storedMessages(s.T(), s.drv)
	s.Len(messages, 2)
	s.Equal("mapping.deleted", messages[1].eventName)
}

func (s *OutboxTestSuite) TestPublishInTx_RollbackDiscardsEvents() {
	// Arrange
	ctx := context.Background()
	tx, err := s.drv.Tx(ctx)
	s.Require().NoError(err)
	events := []event.Event{event.NewMappingDeleted("abc1234")}

	// Act
	err = s.sut.PublishInTx(ctx, tx, events)
	s.Require().NoError(err)
	s.Require().NoError(tx.Rollback())

	// Assert
	s.Empty(storedMessages(s.T(), s.drv))
}

func (s *OutboxTestSuite) TestPublishInTx_EmptyEvents() {
	// Arrange
	ctx := context.Background()
	tx, err := s.drv.Tx(ctx)
	s.Require().NoError(err)

	// Act
	err = s.sut.PublishInTx(ctx, tx, nil)
	s.Require().NoError(err)
	s.Require().NoError(tx.Commit())

	// Assert
	s.Empty(storedMessages(s.T(), s.drv))
}
