package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/aviso-pontos/internal/application/dto"
)

// BalanceService lo implementa *points.BalanceUseCase.
type BalanceService interface {
	GetBalance(ctx context.Context, cpf string, asOf time.Time) (*dto.BalanceSnapshotDTO, error)
}

// BalanceHandler consulta de saldo de un socio.
type BalanceHandler struct {
	svc BalanceService
	now func() time.Time
}

// NewBalanceHandler construye el handler.
func NewBalanceHandler(svc BalanceService) *BalanceHandler {
	return &BalanceHandler{svc: svc, now: time.Now}
}

// Get godoc
// @Summary      Saldo de puntos de un socio
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        cpf    path   string  true   "CPF (con o sin máscara)"
// @Param        as_of  query  string  false  "fecha de referencia YYYY-MM-DD"
// @Success      200  {object}  dto.BalanceSnapshotDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/customers/{cpf}/balance [get]
func (h *BalanceHandler) Get(c *fiber.Ctx) error {
	asOf, err := parseAsOf(c, h.now)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "as_of debe tener formato YYYY-MM-DD"})
	}
	out, err := h.svc.GetBalance(c.UserContext(), c.Params("cpf"), asOf)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
