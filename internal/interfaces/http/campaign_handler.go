package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/aviso-pontos/internal/application/dto"
)

// MessageLog lo implementa *campaign.FollowUpUseCase.
type MessageLog interface {
	ListMessages(ctx context.Context, campaign string) ([]dto.SentMessageDTO, error)
}

// CampaignHandler consulta del log de envíos por campaña.
type CampaignHandler struct {
	log MessageLog
}

// NewCampaignHandler construye el handler.
func NewCampaignHandler(log MessageLog) *CampaignHandler {
	return &CampaignHandler{log: log}
}

// Messages godoc
// @Summary      Log de envíos de una campaña
// @Tags         campaigns
// @Produce      json
// @Security     BearerAuth
// @Param        name  path  string  true  "nombre de la campaña"
// @Success      200  {array}   dto.SentMessageDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/campaigns/{name}/messages [get]
func (h *CampaignHandler) Messages(c *fiber.Ctx) error {
	list, err := h.log.ListMessages(c.UserContext(), c.Params("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
