package eventbus

import (
	"context"
	"testing"
	"time"

	"shortlink/internal/domain/event"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/suite"
)

type ForwarderTestSuite struct {
	suite.Suite
	drv      *entsql.Driver
	eventBus *EventBus
	sut      *Forwarder
	outbox   *OutboxPublisher
}

func TestForwarderTestSuite(t *testing.T) {
	suite.Run(t, new(ForwarderTestSuite))
}

func (s *ForwarderTestSuite) SetupTest() {
	logger := watermill.NopLogger{}
	s.drv = openTestDriver(s.T())
	s.eventBus = NewEventBus(logger)
	s.outbox = NewOutboxPublisher(s.drv)
	s.sut = NewForwarder(s.drv, s.eventBus.Publisher(), logger)
}

func (s *ForwarderTestSuite) TearDownTest() {
	if s.sut != nil {
		s.sut.Stop()
	}
	if s.eventBus != nil {
		s.eventBus.Close()
	}
}

func (s *ForwarderTestSuite) stage(events ...event.Event) {
	ctx := context.Background()
	tx, err := s.drv.Tx(ctx)
	s.Require().NoError(err)
	s.Require().NoError(s.outbox.PublishInTx(ctx, tx, events))
	s.Require().NoError(tx.Commit())
}

func (s *ForwarderTestSuite) TestForwarderForwardsMessages() {
	// Arrange
	ctx := context.Background()
	messages, err := s.eventBus.Subscriber().Subscribe(ctx, MappingEventsTopic)
	s.Require().NoError(err)
	s.stage(event.NewMappingCreated("abc1234", "https://example.com", "http://localhost:8080/abc1234"))

	// Act
	s.sut.Start(ctx)

	// Assert
	select {
	case msg := <-messages:
		envelope, err := MessageToEnvelope(msg)
		s.NoError(err)
		s.Equal("mapping.created", envelope.EventName)
		s.Equal("abc1234", envelope.AggregateID)
		s.Equal("mapping.created", msg.Metadata.Get("event_name"))
		msg.Ack()
	case <-time.After(2 * time.Second):
		s.Fail("timeout waiting for forwarded message")
	}
	s.Eventually(func() bool {
		return countMessages(s.drv) == 0
	}, 2*time.Second, 50*time.Millisecond)
}

func (s *ForwarderTestSuite) TestForwarderDeletesAfterForwarding() {
	// Arrange
	s.stage(
		event.NewMappingCreated("test1", "https://example1.com", "http://localhost:8080/test1"),
		event.NewMappingDeleted("test1"),
	)
	s.Len(storedMessages(s.T(), s.drv), 2)

	// Act
	s.sut.Start(context.Background())

	// Assert
	s.Eventually(func() bool {
		return countMessages(s.drv) == 0
	}, 2*time.Second, 50*time.Millisecond)
}

func (s *ForwarderTestSuite) TestForwarderStartStop() {
	s.sut.Start(context.Background())
	time.Sleep(100 * time.Millisecond)
	s.sut.Stop()
}

func (s *ForwarderTestSuite) TestStopWithoutStart() {
	fresh := NewForwarder(s.drv, s.eventBus.Publisher(), watermill.NopLogger{})
	s.NotPanics(fresh.Stop)
}
