package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"booker/config"
	"booker/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBookingJobUsecase struct {
	mock.Mock
}

func (m *mockBookingJobUsecase) ProcessBookingJob(ctx context.Context, requestID uuid.UUID) error {
	args := m.Called(ctx, requestID)

	return args.Error(0)
}

func newPushHandlerFixture() (*PushHandler, *mockBookingJobUsecase) {
	jobUsecase := new(mockBookingJobUsecase)
	handler := NewPushHandler(PushHandlerParams{
		Config:     &config.Config{},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		JobUsecase: jobUsecase,
	})

	return handler, jobUsecase
}

func pushRequest(t *testing.T, event *service.BookingJobEvent, attributes map[string]string) string {
	t.Helper()

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var msg PubSubMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.Attributes = attributes
	msg.Message.MessageID = "m-1"
	msg.Subscription = "projects/local/subscriptions/booking-job-sub"

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return string(body)
}

func doPush(handler *PushHandler, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	//nolint:errcheck
	handler.HandlePush(e.NewContext(req, rec))

	return rec
}

func TestHandlePush_AcksProcessedJob(t *testing.T) {
	handler, jobUsecase := newPushHandlerFixture()
	requestID := uuid.New()

	jobUsecase.On("ProcessBookingJob", mock.Anything, requestID).Return(nil)

	rec := doPush(handler, pushRequest(t, &service.BookingJobEvent{
		RequestID: requestID.String(),
		Action:    service.BookingJobActionProcess,
	}, map[string]string{"request_id": requestID.String()}))

	assert.Equal(t, http.StatusOK, rec.Code)
	jobUsecase.AssertExpectations(t)
}

func TestHandlePush_RequestsRedeliveryOnProcessingError(t *testing.T) {
	handler, jobUsecase := newPushHandlerFixture()
	requestID := uuid.New()

	jobUsecase.On("ProcessBookingJob", mock.Anything, requestID).
		Return(errors.New("connection refused"))

	rec := doPush(handler, pushRequest(t, &service.BookingJobEvent{
		RequestID: requestID.String(),
		Action:    service.BookingJobActionProcess,
	}, nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandlePush_AcksMalformedRequestID(t *testing.T) {
	handler, jobUsecase := newPushHandlerFixture()

	rec := doPush(handler, pushRequest(t, &service.BookingJobEvent{
		RequestID: "not-a-uuid",
		Action:    service.BookingJobActionProcess,
	}, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	jobUsecase.AssertNotCalled(t, "ProcessBookingJob", mock.Anything, mock.Anything)
}

func TestHandlePush_AcksUnknownAction(t *testing.T) {
	handler, jobUsecase := newPushHandlerFixture()

	rec := doPush(handler, pushRequest(t, &service.BookingJobEvent{
		RequestID: uuid.New().String(),
		Action:    "reindex",
	}, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	jobUsecase.AssertNotCalled(t, "ProcessBookingJob", mock.Anything, mock.Anything)
}

func TestHandlePush_RejectsUndecodableData(t *testing.T) {
	handler, jobUsecase := newPushHandlerFixture()

	body := `{"message":{"data":"%%%not-base64%%%","messageId":"m-1"},"subscription":"s"}`
	rec := doPush(handler, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	jobUsecase.AssertNotCalled(t, "ProcessBookingJob", mock.Anything, mock.Anything)
}
