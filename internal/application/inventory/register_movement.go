package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// RegisterMovementUseCase registra entradas y salidas en el libro de existencias de forma
// transaccional: bloquea la fila del producto (SELECT FOR UPDATE), calcula el saldo resultante,
// inserta el movimiento y actualiza products.quantity en la misma transacción.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	cache       ReportCache
	log         *logger.Logger
}

// NewRegisterMovementUseCase construye el caso de uso. cache y log son opcionales.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	cache ReportCache,
	log *logger.Logger,
) *RegisterMovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterMovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
		cache:       cache,
		log:         log,
	}
}

// RecordInput registra una entrada: running_balance = quantity actual + qty.
func (uc *RegisterMovementUseCase) RecordInput(ctx context.Context, productID string, qty decimal.Decimal, userID string) (*entity.StockMovement, error) {
	return uc.record(ctx, entity.MovementTypeIN, productID, qty, userID)
}

// RecordOutput registra una salida: falla con ErrInsufficientStock si qty supera la existencia.
func (uc *RegisterMovementUseCase) RecordOutput(ctx context.Context, productID string, qty decimal.Decimal, userID string) (*entity.StockMovement, error) {
	return uc.record(ctx, entity.MovementTypeOUT, productID, qty, userID)
}

// RegisterFromRequest adapta el request HTTP al caso de uso según el tipo de movimiento.
func (uc *RegisterMovementUseCase) RegisterFromRequest(ctx context.Context, movementType, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	var (
		mov *entity.StockMovement
		err error
	)
	switch movementType {
	case entity.MovementTypeIN:
		mov, err = uc.RecordInput(ctx, in.ProductID, in.Quantity, userID)
	case entity.MovementTypeOUT:
		mov, err = uc.RecordOutput(ctx, in.ProductID, in.Quantity, userID)
	default:
		return nil, domain.ErrInvalidInput
	}
	if err != nil {
		return nil, err
	}
	out := ToMovementResponse(mov)
	return &out, nil
}

func (uc *RegisterMovementUseCase) record(ctx context.Context, movementType, productID string, qty decimal.Decimal, userID string) (*entity.StockMovement, error) {
	ctx, span := tracer.Start(ctx, "inventory.record_"+strings.ToLower(movementType))
	defer span.End()
	span.SetAttributes(
		attribute.String("product.id", productID),
		attribute.String("movement.quantity", qty.String()),
	)

	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := inventory.ValidateQuantity(qty); err != nil {
		return nil, err
	}
	if productID == "" {
		return nil, domain.ErrProductNotFound
	}

	var created *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		ctx context.Context,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto: ningún otro movimiento concurrente ve el saldo intermedio
		product, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil || product.IsDeleted {
			return domain.ErrProductNotFound
		}
		balance, err := inventory.NextBalance(product.Quantity, movementType, qty)
		if err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ProductID:      productID,
			Type:           movementType,
			Quantity:       qty,
			RunningBalance: balance,
			CreatedBy:      userID,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		if err := productRepo.UpdateQuantity(ctx, productID, balance); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	uc.log.Info().
		Str("product_id", productID).
		Str("type", movementType).
		Str("quantity", qty.String()).
		Str("running_balance", created.RunningBalance.String()).
		Str("user_id", userID).
		Msg("movimiento registrado")

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo invalidar el caché de reportes")
		}
	}
	return created, nil
}

// ListMovements historial de un producto (o de todos si productID es vacío), ordenado por fecha.
// movementType vacío combina entradas y salidas.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, productID, movementType string) (*dto.MovementListResponse, error) {
	filter := repository.MovementFilter{Type: movementType}
	if productID != "" {
		filter.ProductIDs = []string{productID}
	}
	list, err := uc.movRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, ToMovementResponse(m))
	}
	return &dto.MovementListResponse{Total: len(items), Items: items}, nil
}

// VerifyProduct recorre el libro completo del producto y comprueba la cadena de saldos
// y que products.quantity coincida con el último running_balance.
func (uc *RegisterMovementUseCase) VerifyProduct(ctx context.Context, productID string) (*dto.LedgerCheckResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	movs, err := uc.movRepo.List(ctx, repository.MovementFilter{ProductIDs: []string{productID}})
	if err != nil {
		return nil, err
	}
	out := &dto.LedgerCheckResponse{
		ProductID:   productID,
		Quantity:    product.Quantity,
		LastBalance: decimal.Zero,
		Movements:   len(movs),
		Consistent:  true,
	}
	last, err := uc.movRepo.LastByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if last != nil {
		out.LastBalance = last.RunningBalance
	}
	if err := inventory.CheckChain(movs); err != nil {
		out.Consistent = false
		out.Inconsistencies = append(out.Inconsistencies, err.Error())
	}
	if !out.LastBalance.Equal(product.Quantity) {
		out.Consistent = false
		out.Inconsistencies = append(out.Inconsistencies,
			fmt.Sprintf("quantity %s distinto del último saldo %s", product.Quantity, out.LastBalance))
	}
	return out, nil
}

// ToMovementResponse convierte la entidad al DTO de salida.
func ToMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		Type:           m.Type,
		Quantity:       m.Quantity,
		RunningBalance: m.RunningBalance,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}
