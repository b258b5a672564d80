package booking_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"culturepass/internal/booking"
	"culturepass/internal/kafka"
	"culturepass/internal/logger"
	"culturepass/internal/models"
)

type MockBookingDB struct {
	mock.Mock
}

func (m *MockBookingDB) InsertOrder(ctx context.Context, order models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockBookingDB) DeleteOrder(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingDB) IncrementTicketsSold(ctx context.Context, eventID string, qty int, allowOversell bool) error {
	args := m.Called(ctx, eventID, qty, allowOversell)
	return args.Error(0)
}

func (m *MockBookingDB) InsertMembership(ctx context.Context, membership models.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockBookingDB) DeleteMembership(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingDB) MembershipExists(ctx context.Context, userID, orgID string) (bool, error) {
	args := m.Called(ctx, userID, orgID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingDB) IncrementMemberCount(ctx context.Context, orgID string) error {
	args := m.Called(ctx, orgID)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(topic string, key string, value []byte) error {
	args := m.Called(topic, key, value)
	return args.Error(0)
}

func testLogger(t *testing.T) *logger.Logger {
	t.Setenv("LOG_DIR", t.TempDir())
	log := logger.NewLogger()
	t.Cleanup(log.Close)
	return log
}

func TestRecordOrder(t *testing.T) {
	db := new(MockBookingDB)
	pub := new(MockPublisher)
	svc := booking.NewService(db, pub, testLogger(t), false)

	db.On("InsertOrder", mock.Anything, mock.AnythingOfType("models.Order")).Return(nil)
	db.On("IncrementTicketsSold", mock.Anything, "event-1", 2, false).Return(nil)
	pub.On("Publish", kafka.TopicOrderCreated, mock.AnythingOfType("string"), mock.Anything).Return(nil)

	order, err := svc.RecordOrder(context.Background(), "user-1", "event-1", 2, 40)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, 2, order.Quantity)
	db.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestRecordOrderInvalidQuantity(t *testing.T) {
	db := new(MockBookingDB)
	svc := booking.NewService(db, nil, testLogger(t), false)

	_, err := svc.RecordOrder(context.Background(), "user-1", "event-1", 0, 0)
	assert.ErrorIs(t, err, booking.ErrInvalidQuantity)

	_, err = svc.RecordOrder(context.Background(), "user-1", "event-1", -3, 0)
	assert.ErrorIs(t, err, booking.ErrInvalidQuantity)

	db.AssertNotCalled(t, "InsertOrder", mock.Anything, mock.Anything)
}

func TestRecordOrderSoldOutRollsBack(t *testing.T) {
	db := new(MockBookingDB)
	pub := new(MockPublisher)
	svc := booking.NewService(db, pub, testLogger(t), false)

	db.On("InsertOrder", mock.Anything, mock.AnythingOfType("models.Order")).Return(nil)
	db.On("IncrementTicketsSold", mock.Anything, "event-1", 5, false).Return(booking.ErrSoldOut)
	db.On("DeleteOrder", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	_, err := svc.RecordOrder(context.Background(), "user-1", "event-1", 5, 100)
	assert.ErrorIs(t, err, booking.ErrSoldOut)

	// The order row is removed and nothing is published.
	db.AssertCalled(t, "DeleteOrder", mock.Anything, mock.AnythingOfType("string"))
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordOrderPublishFailureDoesNotFail(t *testing.T) {
	db := new(MockBookingDB)
	pub := new(MockPublisher)
	svc := booking.NewService(db, pub, testLogger(t), false)

	db.On("InsertOrder", mock.Anything, mock.AnythingOfType("models.Order")).Return(nil)
	db.On("IncrementTicketsSold", mock.Anything, "event-1", 1, false).Return(nil)
	pub.On("Publish", kafka.TopicOrderCreated, mock.AnythingOfType("string"), mock.Anything).
		Return(assert.AnError)

	order, err := svc.RecordOrder(context.Background(), "user-1", "event-1", 1, 20)
	assert.NoError(t, err)
	assert.NotNil(t, order)
}

func TestRecordMembership(t *testing.T) {
	db := new(MockBookingDB)
	pub := new(MockPublisher)
	svc := booking.NewService(db, pub, testLogger(t), false)

	db.On("MembershipExists", mock.Anything, "user-1", "org-1").Return(false, nil)
	db.On("InsertMembership", mock.Anything, mock.AnythingOfType("models.Membership")).Return(nil)
	db.On("IncrementMemberCount", mock.Anything, "org-1").Return(nil)
	pub.On("Publish", kafka.TopicMembershipCreated, mock.AnythingOfType("string"), mock.Anything).Return(nil)

	membership, err := svc.RecordMembership(context.Background(), "user-1", "org-1")
	assert.NoError(t, err)
	assert.Equal(t, "org-1", membership.OrganisationID)
	db.AssertExpectations(t)

	// The counter moved exactly once.
	db.AssertNumberOfCalls(t, "IncrementMemberCount", 1)
}

func TestRecordMembershipAlreadyMember(t *testing.T) {
	db := new(MockBookingDB)
	svc := booking.NewService(db, nil, testLogger(t), false)

	db.On("MembershipExists", mock.Anything, "user-1", "org-1").Return(true, nil)

	_, err := svc.RecordMembership(context.Background(), "user-1", "org-1")
	assert.ErrorIs(t, err, booking.ErrAlreadyMember)

	// No insert and no counter movement on the duplicate path.
	db.AssertNotCalled(t, "InsertMembership", mock.Anything, mock.Anything)
	db.AssertNotCalled(t, "IncrementMemberCount", mock.Anything, mock.Anything)
}

func TestRecordMembershipDuplicateLosesAtInsert(t *testing.T) {
	db := new(MockBookingDB)
	svc := booking.NewService(db, nil, testLogger(t), false)

	// The pre-insert check raced and missed; the unique index catches it.
	db.On("MembershipExists", mock.Anything, "user-1", "org-1").Return(false, nil)
	db.On("InsertMembership", mock.Anything, mock.AnythingOfType("models.Membership")).
		Return(booking.ErrAlreadyMember)

	_, err := svc.RecordMembership(context.Background(), "user-1", "org-1")
	assert.ErrorIs(t, err, booking.ErrAlreadyMember)
	db.AssertNotCalled(t, "IncrementMemberCount", mock.Anything, mock.Anything)
}

func TestRecordMembershipCounterFailureRollsBack(t *testing.T) {
	db := new(MockBookingDB)
	svc := booking.NewService(db, nil, testLogger(t), false)

	db.On("MembershipExists", mock.Anything, "user-1", "org-1").Return(false, nil)
	db.On("InsertMembership", mock.Anything, mock.AnythingOfType("models.Membership")).Return(nil)
	db.On("IncrementMemberCount", mock.Anything, "org-1").Return(assert.AnError)
	db.On("DeleteMembership", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	_, err := svc.RecordMembership(context.Background(), "user-1", "org-1")
	assert.Error(t, err)
	db.AssertCalled(t, "DeleteMembership", mock.Anything, mock.AnythingOfType("string"))
}
