package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"boardsync/internal/adapter/http/mapper"
	"boardsync/internal/adapter/http/middleware"
	"boardsync/internal/core/domain"
	"boardsync/internal/core/ports"
	"boardsync/pkg/apierrors"
)

// BoardHandler serves the engine's latest projected board. Strictly
// read-only: all mutation flows through the engine loop, so this surface
// cannot violate the single-writer model.
type BoardHandler struct {
	reader ports.BoardReader
}

func NewBoardHandler(reader ports.BoardReader) *BoardHandler {
	return &BoardHandler{reader: reader}
}

func (h *BoardHandler) GetBoard(c *gin.Context) {
	c.JSON(http.StatusOK, mapper.ToBoardResponse(h.reader.Board()))
}

func (h *BoardHandler) GetTodo(c *gin.Context) {
	lang := middleware.GetLang(c)

	todoID := strings.TrimSpace(c.Param("id"))
	if todoID == "" {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTodoID, lang),
		)
		return
	}

	todo, err := h.reader.FindTodo(todoID)
	if err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgTodoNotFound, lang),
			)
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailLoadBoard, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTodoItem(todo))
}
