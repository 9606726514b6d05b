package handler

import (
	"log/slog"
	"net/http"
	"time"

	deliverycontext "booker/internal/delivery/context"
	"booker/internal/delivery/http/response"
	"booker/internal/domain/entity"
	domainerrors "booker/internal/domain/errors"
	"booker/internal/domain/service"
	"booker/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BookingHandler holds dependencies for booking-request handlers.
type BookingHandler struct {
	uc     usecase.BookingUsecase
	logger *slog.Logger
}

// NewBookingHandler is the constructor for BookingHandler, injected by Fx.
func NewBookingHandler(uc usecase.BookingUsecase, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{
		uc:     uc,
		logger: logger,
	}
}

// createBookingRequest is the JSON body for POST /booking-requests.
// Credentials are accepted here once, sealed server-side, and never returned.
type createBookingRequest struct {
	Criteria    entity.BookingCriteria     `json:"criteria" validate:"required"`
	Credentials service.BookingCredentials `json:"credentials" validate:"required"`
}

// updateBookingRequest is the JSON body for PUT /booking-requests/:id.
// Both fields are optional; status is admin-only and enforced downstream.
type updateBookingRequest struct {
	Criteria *entity.BookingCriteria `json:"criteria" validate:"omitempty"`
	Status   *string                 `json:"status" validate:"omitempty,oneof=pending processing completed failed"`
}

// bookingResponse is the public shape of a booking request. The sealed
// credential blob stays server-side.
type bookingResponse struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"userId"`
	Status    string                 `json:"status"`
	Criteria  entity.BookingCriteria `json:"criteria"`
	Result    *string                `json:"result,omitempty"`
	Error     *string                `json:"error,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

func toBookingResponse(req *entity.BookingRequest) bookingResponse {
	return bookingResponse{
		ID:        req.ID.String(),
		UserID:    req.UserID.String(),
		Status:    req.Status.String(),
		Criteria:  req.Criteria,
		Result:    req.Result,
		Error:     req.Error,
		CreatedAt: req.CreatedAt,
		UpdatedAt: req.UpdatedAt,
	}
}

func toBookingListResponse(reqs []*entity.BookingRequest) []bookingResponse {
	out := make([]bookingResponse, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, toBookingResponse(req))
	}

	return out
}

// bookingLogResponse is the public shape of one processing-trail entry.
type bookingLogResponse struct {
	ID            string    `json:"id"`
	Level         string    `json:"level"`
	Message       string    `json:"message"`
	Metadata      *string   `json:"metadata,omitempty"`
	ScreenshotURL *string   `json:"screenshotUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toBookingLogListResponse(logs []*entity.BookingLog) []bookingLogResponse {
	out := make([]bookingLogResponse, 0, len(logs))
	for _, log := range logs {
		out = append(out, bookingLogResponse{
			ID:            log.ID.String(),
			Level:         log.Level.String(),
			Message:       log.Message,
			Metadata:      log.Metadata,
			ScreenshotURL: log.ScreenshotURL,
			CreatedAt:     log.CreatedAt,
		})
	}

	return out
}

// Create handles POST /booking-requests.
func (h *BookingHandler) Create(c echo.Context) error {
	actor, ok := deliverycontext.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing or invalid session token")
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid booking request input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	created, err := h.uc.Create(c.Request().Context(), &usecase.CreateBookingInput{
		Actor:       actor,
		Criteria:    req.Criteria,
		Credentials: req.Credentials,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toBookingResponse(created), "Booking request created")
}

// List handles GET /booking-requests.
func (h *BookingHandler) List(c echo.Context) error {
	actor, ok := deliverycontext.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing or invalid session token")
	}

	reqs, err := h.uc.List(c.Request().Context(), actor)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toBookingListResponse(reqs), "")
}

// Get handles GET /booking-requests/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	actor, ok := deliverycontext.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing or invalid session token")
	}

	id, err := parseRequestID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := h.uc.Get(c.Request().Context(), actor, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toBookingResponse(req), "")
}

// Update handles PUT /booking-requests/:id.
func (h *BookingHandler) Update(c echo.Context) error {
	actor, ok := deliverycontext.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing or invalid session token")
	}

	id, err := parseRequestID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var req updateBookingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid booking update input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	input := &usecase.UpdateBookingInput{
		Actor:    actor,
		ID:       id,
		Criteria: req.Criteria,
	}
	if req.Status != nil {
		status := entity.BookingStatus(*req.Status)
		input.Status = &status
	}

	updated, err := h.uc.Update(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toBookingResponse(updated), "Booking request updated")
}

// Delete handles DELETE /booking-requests/:id.
func (h *BookingHandler) Delete(c echo.Context) error {
	actor, ok := deliverycontext.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing or invalid session token")
	}

	id, err := parseRequestID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Delete(c.Request().Context(), actor, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Booking request deleted")
}

// GetLogs handles GET /booking-requests/:id/logs.
func (h *BookingHandler) GetLogs(c echo.Context) error {
	actor, ok := deliverycontext.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing or invalid session token")
	}

	id, err := parseRequestID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	logs, err := h.uc.GetLogs(c.Request().Context(), actor, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toBookingLogListResponse(logs), "")
}

// parseRequestID reads the :id path parameter as a UUID. A malformed ID is a
// validation failure, not a not-found.
func parseRequestID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("id must be a valid UUID")
	}

	return id, nil
}
