package loan

import (
	"log/slog"
	"net/http"
	"strconv"

	"librarycirc/liberr"
	"librarycirc/model"
	"librarycirc/service/circulation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc     circulation.Service
	Sweeper *circulation.Sweeper
	V       *validator.Validate
	Log     *slog.Logger
}

// POST /v1/loans
func (h *Controller) Issue(c echo.Context) error {
	var req IssueLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	out, err := h.Svc.Issue(c.Request().Context(), req.BookID, req.BorrowerID)
	if err != nil {
		switch liberr.Code(err) {
		case liberr.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
		case liberr.ErrNoCopies:
			return c.JSON(http.StatusConflict, echo.Map{"message": "no copies available"})
		default:
			h.Log.Error("loan issue error", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, out)
}

// POST /v1/loans/:id/return
func (h *Controller) Return(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	out, err := h.Svc.Return(c.Request().Context(), id)
	if err != nil {
		switch liberr.Code(err) {
		case liberr.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "loan not found"})
		case liberr.ErrAlreadyReturned:
			return c.JSON(http.StatusConflict, echo.Map{"message": "loan already returned"})
		default:
			h.Log.Error("loan return error", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, out)
}

// GET /v1/loans?status=
func (h *Controller) List(c echo.Context) error {
	status := model.LoanStatus(c.QueryParam("status"))
	if status != "" && !status.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid status"})
	}
	rows := h.Svc.List(c.Request().Context(), status)
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/loans/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	row, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		if liberr.Code(err) == liberr.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "loan not found"})
		}
		h.Log.Error("loan detail error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, row)
}

// GET /v1/borrowers/:id/loans
func (h *Controller) ByBorrower(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	rows := h.Svc.ListByBorrower(c.Request().Context(), id)
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /v1/sweeps
func (h *Controller) Sweep(c echo.Context) error {
	n := h.Sweeper.RunOnce(c.Request().Context())
	return c.JSON(http.StatusOK, echo.Map{"transitioned": n})
}
