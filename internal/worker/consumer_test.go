package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/mocks"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func placedBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(models.OrderPlacedPayload{
		OrderNo:     "abc",
		UserID:      7,
		Email:       "ada@example.com",
		Name:        "Ada",
		TotalAmount: 45,
		ItemCount:   3,
		VendorCount: 2,
	})
	require.NoError(t, err)
	return body
}

func TestHandleOrderPlacedSendsConfirmation(t *testing.T) {
	sender := new(mocks.MockEmailSender)
	c := NewConsumer(sender, zap.NewNop())

	sender.On("Send", mock.Anything, "ada@example.com", mock.Anything, mock.Anything).Return(nil)

	err := c.HandleMessage(context.Background(), models.EventOrderPlaced, placedBody(t))
	require.NoError(t, err)

	sender.AssertCalled(t, "Send", mock.Anything, "ada@example.com",
		mock.MatchedBy(func(subject string) bool { return subject != "" }),
		mock.MatchedBy(func(body string) bool { return body != "" }))
}

func TestHandleOrderPlacedMalformedBody(t *testing.T) {
	sender := new(mocks.MockEmailSender)
	c := NewConsumer(sender, zap.NewNop())

	err := c.HandleMessage(context.Background(), models.EventOrderPlaced, []byte("not json"))
	assert.ErrorIs(t, err, ErrMalformed)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleOrderPlacedMissingRecipient(t *testing.T) {
	sender := new(mocks.MockEmailSender)
	c := NewConsumer(sender, zap.NewNop())

	body, _ := json.Marshal(models.OrderPlacedPayload{OrderNo: "abc"})
	err := c.HandleMessage(context.Background(), models.EventOrderPlaced, body)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestHandleOrderPlacedSendFailureIsRetryable(t *testing.T) {
	sender := new(mocks.MockEmailSender)
	c := NewConsumer(sender, zap.NewNop())

	sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	err := c.HandleMessage(context.Background(), models.EventOrderPlaced, placedBody(t))
	require.Error(t, err)
	// A transient send failure must not be classified as malformed, or the
	// message would be dropped instead of requeued.
	assert.NotErrorIs(t, err, ErrMalformed)
}

func TestHandleStatusChanged(t *testing.T) {
	sender := new(mocks.MockEmailSender)
	c := NewConsumer(sender, zap.NewNop())

	body, _ := json.Marshal(models.OrderStatusChangedPayload{
		OrderNo: "abc", SubOrderID: 5, ShopID: 10, From: "pending", To: "processing",
	})
	require.NoError(t, c.HandleMessage(context.Background(), models.EventOrderStatusChanged, body))
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleMessageUnknownRoutingKey(t *testing.T) {
	sender := new(mocks.MockEmailSender)
	c := NewConsumer(sender, zap.NewNop())

	require.NoError(t, c.HandleMessage(context.Background(), "payment.settled", []byte("{}")))
}
