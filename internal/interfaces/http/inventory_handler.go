package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// InventoryHandler maneja entradas, salidas e historial de movimientos (protegido).
type InventoryHandler struct {
	uc *inventory.RegisterMovementUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterInput godoc
// @Summary      Registrar entrada de mercancía
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/inputs [post]
func (h *InventoryHandler) RegisterInput(c *fiber.Ctx) error {
	return h.register(c, entity.MovementTypeIN)
}

// RegisterOutput godoc
// @Summary      Registrar salida de mercancía
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/outputs [post]
func (h *InventoryHandler) RegisterOutput(c *fiber.Ctx) error {
	return h.register(c, entity.MovementTypeOUT)
}

func (h *InventoryHandler) register(c *fiber.Ctx, movementType string) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.RegisterFromRequest(c.UserContext(), movementType, userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListInputs godoc
// @Summary      Listar entradas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/inventory/inputs [get]
func (h *InventoryHandler) ListInputs(c *fiber.Ctx) error {
	return h.list(c, entity.MovementTypeIN)
}

// ListOutputs godoc
// @Summary      Listar salidas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/inventory/outputs [get]
func (h *InventoryHandler) ListOutputs(c *fiber.Ctx) error {
	return h.list(c, entity.MovementTypeOUT)
}

// ListMovements godoc
// @Summary      Historial combinado de entradas y salidas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	return h.list(c, "")
}

func (h *InventoryHandler) list(c *fiber.Ctx, movementType string) error {
	productID := c.Query("product_id")
	if productID != "" {
		if err := validate.Var(productID, "uuid"); err != nil {
			return writeError(c, err)
		}
	}
	out, err := h.uc.ListMovements(c.UserContext(), productID, movementType)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// VerifyProduct godoc
// @Summary      Verificar la cadena de saldos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Product ID"
// @Success      200  {object}  dto.LedgerCheckResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/verify/{id} [get]
func (h *InventoryHandler) VerifyProduct(c *fiber.Ctx) error {
	out, err := h.uc.VerifyProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
