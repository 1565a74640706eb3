package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fwedwicc/rebyuwer-app/internal/core/ports"
)

// CardSetHandler handles HTTP requests for card set operations. All routes
// run behind the Auth middleware; the handler passes the verified identity
// to the service, which scopes every query by it.
type CardSetHandler struct {
	service ports.CardSetService
}

func NewCardSetHandler(service ports.CardSetService) *CardSetHandler {
	return &CardSetHandler{service: service}
}

type cardSetRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

// List returns the caller's card sets with their cards attached.
//
// @Summary      List the caller's card sets
// @Tags         cardSet
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.CardSetView
// @Failure      401  {object}  map[string]string
// @Router       /cardSet [get]
func (h *CardSetHandler) List(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	views, err := h.service.ListCardSets(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// Create adds a new, empty card set owned by the caller.
//
// @Summary      Create a card set
// @Tags         cardSet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      cardSetRequest  true  "Card set name"
// @Success      201   {object}  domain.CardSet
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /cardSet [post]
func (h *CardSetHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req cardSetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	set, err := h.service.CreateCardSet(c.Request().Context(), userID, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, set)
}

// Rename changes a set's name. Lookup is scoped to the caller, so another
// user's set id yields 404.
//
// @Summary      Rename a card set
// @Tags         cardSet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Card set id"
// @Param        body  body      cardSetRequest  true  "New name"
// @Success      200   {object}  domain.CardSet
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /cardSet/{id} [put]
func (h *CardSetHandler) Rename(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req cardSetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	set, err := h.service.RenameCardSet(c.Request().Context(), userID, c.Param("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, set)
}

// Delete removes a set and cascades to its cards.
//
// @Summary      Delete a card set and its cards
// @Tags         cardSet
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Card set id"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /cardSet/{id} [delete]
func (h *CardSetHandler) Delete(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteCardSet(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "card set deleted"})
}
