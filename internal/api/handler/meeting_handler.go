package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/crmdesk/portal/internal/core/domain"
	"github.com/crmdesk/portal/internal/core/ports"
)

// MeetingHandler serves /api/meetings. Writes answer with the backend's
// acknowledgement envelope rather than the meeting itself.
type MeetingHandler struct {
	crm ports.CRMService
}

func NewMeetingHandler(crm ports.CRMService) *MeetingHandler {
	return &MeetingHandler{crm: crm}
}

// List returns all meetings.
//
// @Summary      List meetings
// @Tags         meetings
// @Produce      json
// @Success      200  {array}   domain.Meeting
// @Router       /api/meetings [get]
func (h *MeetingHandler) List(c echo.Context) error {
	meetings, err := h.crm.ListMeetings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(meetings))
}

// Get returns one meeting.
//
// @Summary      Get meeting
// @Tags         meetings
// @Produce      json
// @Param        id   path      int  true  "Meeting ID"
// @Success      200  {object}  domain.Meeting
// @Router       /api/meetings/{id} [get]
func (h *MeetingHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	meeting, err := h.crm.GetMeeting(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meeting)
}

// Create schedules a meeting.
//
// @Summary      Create meeting
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string          false  "De-duplication key"
// @Param        body             body      domain.MeetingInput  true   "Meeting"
// @Success      201  {object}  domain.MeetingAck
// @Failure      409  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /api/meetings [post]
func (h *MeetingHandler) Create(c echo.Context) error {
	var in domain.MeetingInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	if missing := in.MissingForCreate(); len(missing) > 0 {
		msgs := make([]string, len(missing))
		for i, name := range missing {
			msgs[i] = name + " is required"
		}
		return echo.NewHTTPError(http.StatusUnprocessableEntity, strings.Join(msgs, "; "))
	}
	in.ApplyCreateDefaults()
	ack, err := h.crm.CreateMeeting(c.Request().Context(), &in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ack)
}

// Update changes the fields present in the body and leaves the rest alone.
//
// @Summary      Update meeting
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Param        id    path      int             true  "Meeting ID"
// @Param        body  body      domain.MeetingInput  true  "Meeting fields to change"
// @Success      200  {object}  domain.MeetingAck
// @Failure      422  {object}  ErrorResponse
// @Router       /api/meetings/{id} [put]
func (h *MeetingHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var in domain.MeetingInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	ack, err := h.crm.UpdateMeeting(c.Request().Context(), id, &in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ack)
}

// Delete removes a meeting and returns the backend acknowledgement.
//
// @Summary      Delete meeting
// @Tags         meetings
// @Produce      json
// @Param        id   path      int  true  "Meeting ID"
// @Success      200  {object}  domain.MeetingAck
// @Router       /api/meetings/{id} [delete]
func (h *MeetingHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ack, err := h.crm.DeleteMeeting(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ack)
}

// TodayCount returns the number of meetings scheduled today.
//
// @Summary      Today's meeting count
// @Tags         meetings
// @Produce      json
// @Success      200  {object}  domain.MeetingCount
// @Router       /api/meetings/today/count [get]
func (h *MeetingHandler) TodayCount(c echo.Context) error {
	count, err := h.crm.GetTodaysMeetingCount(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, count)
}

// Filter lists meetings by deal, company and status.
//
// @Summary      Filter meetings
// @Tags         meetings
// @Produce      json
// @Param        deal     query     int     false  "Deal ID"
// @Param        company  query     int     false  "Company ID"
// @Param        status   query     string  false  "Meeting status"
// @Success      200  {array}   domain.Meeting
// @Failure      422  {object}  ErrorResponse
// @Router       /api/meetings/filter [get]
func (h *MeetingHandler) Filter(c echo.Context) error {
	var f domain.MeetingFilter
	if err := bindAndValidate(c, &f); err != nil {
		return err
	}

	ctx := c.Request().Context()
	var (
		meetings []domain.Meeting
		err      error
	)
	switch {
	case f.Deal > 0 && f.Company == 0 && f.Status == "":
		meetings, err = h.crm.GetMeetingsForDeal(ctx, f.Deal)
	case f.Company > 0 && f.Deal == 0 && f.Status == "":
		meetings, err = h.crm.GetMeetingsForCompany(ctx, f.Company)
	default:
		meetings, err = h.crm.FilterMeetings(ctx, f)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(meetings))
}
