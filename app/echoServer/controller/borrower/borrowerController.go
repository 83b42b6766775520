package borrower

import (
	"log/slog"
	"net/http"
	"strconv"

	"librarycirc/liberr"
	"librarycirc/model"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Registry is the slice of the borrower registry the endpoints need.
type Registry interface {
	Register(b model.Borrower) (int64, error)
	Lookup(id int64) (model.Borrower, error)
	Search(q string) []model.Borrower
}

type Controller struct {
	Registry Registry
	V        *validator.Validate
	Log      *slog.Logger
}

// POST /v1/borrowers
func (h *Controller) Register(c echo.Context) error {
	var req RegisterBorrowerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	id, err := h.Registry.Register(model.Borrower{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Course:  req.Course,
		Year:    req.Year,
	})
	if err != nil {
		if liberr.Code(err) == liberr.ErrValidation {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
		h.Log.Error("borrower register error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// GET /v1/borrowers?q=
func (h *Controller) List(c echo.Context) error {
	rows := h.Registry.Search(c.QueryParam("q"))
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/borrowers/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	row, err := h.Registry.Lookup(id)
	if err != nil {
		if liberr.Code(err) == liberr.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "borrower not found"})
		}
		h.Log.Error("borrower detail error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, row)
}
