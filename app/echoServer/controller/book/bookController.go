package book

import (
	"log/slog"
	"net/http"
	"strconv"

	"librarycirc/liberr"
	"librarycirc/model"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Store is the slice of the catalog the book endpoints need.
type Store interface {
	Register(b model.Book) (int64, error)
	Lookup(id int64) (model.Book, error)
	Search(q string) []model.Book
}

type Controller struct {
	Store Store
	V     *validator.Validate
	Log   *slog.Logger
}

// POST /v1/books
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	id, err := h.Store.Register(model.Book{
		Title:       req.Title,
		Author:      req.Author,
		Publisher:   req.Publisher,
		Category:    req.Category,
		Year:        req.Year,
		ISBN:        req.ISBN,
		CopiesTotal: req.CopiesTotal,
	})
	if err != nil {
		if liberr.Code(err) == liberr.ErrValidation {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
		h.Log.Error("book create error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// GET /v1/books?q=
func (h *Controller) List(c echo.Context) error {
	rows := h.Store.Search(c.QueryParam("q"))
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/books/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	row, err := h.Store.Lookup(id)
	if err != nil {
		if liberr.Code(err) == liberr.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		}
		h.Log.Error("book detail error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, row)
}
