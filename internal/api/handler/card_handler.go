package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fwedwicc/rebyuwer-app/internal/core/ports"
)

// CardHandler handles HTTP requests for cards within a set.
type CardHandler struct {
	service ports.CardSetService
}

func NewCardHandler(service ports.CardSetService) *CardHandler {
	return &CardHandler{service: service}
}

type cardRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer"   validate:"required"`
}

// List returns the cards of a set the caller owns.
//
// @Summary      List cards in a set
// @Tags         card
// @Produce      json
// @Security     BearerAuth
// @Param        cardSetId  path  string  true  "Card set id"
// @Success      200  {array}   domain.Card
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /card/{cardSetId} [get]
func (h *CardHandler) List(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	cards, err := h.service.ListCards(c.Request().Context(), userID, c.Param("cardSetId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cards)
}

// Add creates a card in a set the caller owns.
//
// @Summary      Add a card to a set
// @Tags         card
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        cardSetId  path  string       true  "Card set id"
// @Param        body       body  cardRequest  true  "Question and answer"
// @Success      201  {object}  domain.Card
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /card/{cardSetId} [post]
func (h *CardHandler) Add(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req cardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	card, err := h.service.AddCard(c.Request().Context(), userID, c.Param("cardSetId"), req.Question, req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, card)
}

// Edit updates a card's question and answer.
//
// @Summary      Edit a card
// @Tags         card
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        cardSetId  path  string       true  "Card set id"
// @Param        cardId     path  string       true  "Card id"
// @Param        body       body  cardRequest  true  "Question and answer"
// @Success      200  {object}  domain.Card
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /card/{cardSetId}/{cardId} [put]
func (h *CardHandler) Edit(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req cardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	card, err := h.service.EditCard(c.Request().Context(), userID, c.Param("cardSetId"), c.Param("cardId"), req.Question, req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, card)
}

// Delete removes a card and unlinks it from its set.
//
// @Summary      Delete a card
// @Tags         card
// @Produce      json
// @Security     BearerAuth
// @Param        cardSetId  path  string  true  "Card set id"
// @Param        cardId     path  string  true  "Card id"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /card/{cardSetId}/{cardId} [delete]
func (h *CardHandler) Delete(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteCard(c.Request().Context(), userID, c.Param("cardSetId"), c.Param("cardId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "card deleted"})
}
