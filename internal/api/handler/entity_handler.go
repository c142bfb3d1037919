package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crmdesk/portal/internal/core/domain"
	"github.com/crmdesk/portal/internal/core/ports"
)

// EntityOps binds the CRUD quintet of one backend resource.
type EntityOps[T any] struct {
	List   func(ctx context.Context) ([]T, error)
	Get    func(ctx context.Context, id int64) (*T, error)
	Create func(ctx context.Context, in *T) (*T, error)
	Update func(ctx context.Context, id int64, in *T) (*T, error)
	Delete func(ctx context.Context, id int64) error
}

// EntityHandler serves /api/<resource> for companies, contacts, deals and
// tasks. Payloads are validated before the backend is called.
type EntityHandler[T any] struct {
	ops EntityOps[T]
}

func NewEntityHandler[T any](ops EntityOps[T]) *EntityHandler[T] {
	return &EntityHandler[T]{ops: ops}
}

func NewCompanyHandler(svc ports.CRMService) *EntityHandler[domain.Company] {
	return NewEntityHandler(EntityOps[domain.Company]{
		List:   svc.ListCompanies,
		Get:    svc.GetCompany,
		Create: svc.CreateCompany,
		Update: svc.UpdateCompany,
		Delete: svc.DeleteCompany,
	})
}

func NewContactHandler(svc ports.CRMService) *EntityHandler[domain.Contact] {
	return NewEntityHandler(EntityOps[domain.Contact]{
		List:   svc.ListContacts,
		Get:    svc.GetContact,
		Create: svc.CreateContact,
		Update: svc.UpdateContact,
		Delete: svc.DeleteContact,
	})
}

func NewDealHandler(svc ports.CRMService) *EntityHandler[domain.Deal] {
	return NewEntityHandler(EntityOps[domain.Deal]{
		List:   svc.ListDeals,
		Get:    svc.GetDeal,
		Create: svc.CreateDeal,
		Update: svc.UpdateDeal,
		Delete: svc.DeleteDeal,
	})
}

func NewTaskHandler(svc ports.CRMService) *EntityHandler[domain.Task] {
	return NewEntityHandler(EntityOps[domain.Task]{
		List:   svc.ListTasks,
		Get:    svc.GetTask,
		Create: svc.CreateTask,
		Update: svc.UpdateTask,
		Delete: svc.DeleteTask,
	})
}

// List returns every record of the resource.
//
// @Summary      List records
// @Tags         crm
// @Produce      json
// @Success      200  {array}   object
// @Failure      401  {object}  ErrorResponse
// @Router       /api/companies [get]
// @Router       /api/contacts [get]
// @Router       /api/deals [get]
// @Router       /api/tasks [get]
func (h *EntityHandler[T]) List(c echo.Context) error {
	items, err := h.ops.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(items))
}

// Get returns one record.
//
// @Summary      Get record
// @Tags         crm
// @Produce      json
// @Param        id   path      int  true  "Record ID"
// @Success      200  {object}  object
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  object
// @Router       /api/companies/{id} [get]
// @Router       /api/contacts/{id} [get]
// @Router       /api/deals/{id} [get]
// @Router       /api/tasks/{id} [get]
func (h *EntityHandler[T]) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	item, err := h.ops.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Create validates and creates a record. A repeated Idempotency-Key answers 409.
//
// @Summary      Create record
// @Tags         crm
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string  false  "De-duplication key"
// @Success      201  {object}  object
// @Failure      409  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /api/companies [post]
// @Router       /api/contacts [post]
// @Router       /api/deals [post]
// @Router       /api/tasks [post]
func (h *EntityHandler[T]) Create(c echo.Context) error {
	in := new(T)
	if err := bindAndValidate(c, in); err != nil {
		return err
	}
	out, err := h.ops.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

// Update validates and replaces a record.
//
// @Summary      Update record
// @Tags         crm
// @Accept       json
// @Produce      json
// @Param        id   path      int  true  "Record ID"
// @Success      200  {object}  object
// @Failure      422  {object}  ErrorResponse
// @Router       /api/companies/{id} [put]
// @Router       /api/contacts/{id} [put]
// @Router       /api/deals/{id} [put]
// @Router       /api/tasks/{id} [put]
func (h *EntityHandler[T]) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	in := new(T)
	if err := bindAndValidate(c, in); err != nil {
		return err
	}
	out, err := h.ops.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Delete removes a record.
//
// @Summary      Delete record
// @Tags         crm
// @Param        id   path  int  true  "Record ID"
// @Success      204
// @Router       /api/companies/{id} [delete]
// @Router       /api/contacts/{id} [delete]
// @Router       /api/deals/{id} [delete]
// @Router       /api/tasks/{id} [delete]
func (h *EntityHandler[T]) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.ops.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
