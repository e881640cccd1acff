package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// ReportCodeHandler contraseña compartida de reportes (solo contador).
type ReportCodeHandler struct {
	uc *usecase.ReportCodeUseCase
}

// NewReportCodeHandler construye el handler.
func NewReportCodeHandler(uc *usecase.ReportCodeUseCase) *ReportCodeHandler {
	return &ReportCodeHandler{uc: uc}
}

// Set godoc
// @Summary      Cambiar la contraseña de reportes
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReportCodeRequest  true  "password"
// @Success      200   {object}  dto.ReportCodeResponse
// @Router       /api/report-code [put]
func (h *ReportCodeHandler) Set(c *fiber.Ctx) error {
	var in dto.ReportCodeRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Set(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Estado de la contraseña de reportes
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReportCodeResponse
// @Router       /api/report-code [get]
func (h *ReportCodeHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Current(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
