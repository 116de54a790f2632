package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio-service/internal/entity"
	"portfolio-service/internal/service"
)

type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// CreateContact --> POST /contacts/
func (h *ContactHandler) CreateContact(c echo.Context) error {
	var in entity.ContactInfoInput
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}

	contact, err := h.contactService.CreateContact(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(http.StatusOK, contact)
}

// UpdateContact --> PUT /contacts/:id
func (h *ContactHandler) UpdateContact(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, detail("Invalid ID"))
	}

	var in entity.ContactInfoInput
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}

	contact, err := h.contactService.UpdateContact(c.Request().Context(), id, in)
	if err != nil {
		return respondError(c, err, "Contact Info not found")
	}
	return c.JSON(http.StatusOK, contact)
}

// DeleteContact --> DELETE /contacts/:id
func (h *ContactHandler) DeleteContact(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, detail("Invalid ID"))
	}

	contact, err := h.contactService.DeleteContact(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Contact info not found")
	}
	return c.JSON(http.StatusOK, contact)
}
