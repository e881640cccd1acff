package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Store almacén en memoria que implementa todos los puertos de persistencia.
// Se usa en tests y en modo demo (sin DATABASE_URL).
type Store struct {
	mu          sync.RWMutex
	txMu        sync.Mutex // serializa transacciones, equivalente al bloqueo de fila
	products    map[string]entity.Product
	categories  map[string]entity.Category
	units       map[string]entity.Unit
	movements   []entity.StockMovement
	seq         int64
	users       map[string]entity.User
	reportCodes []entity.ReportCode
	now         func() time.Time
}

// New crea un Store vacío con reloj del sistema.
func New() *Store {
	return NewWithClock(time.Now)
}

// NewWithClock crea un Store con reloj inyectado (tests con fechas fijas).
func NewWithClock(now func() time.Time) *Store {
	return &Store{
		products:   make(map[string]entity.Product),
		categories: make(map[string]entity.Category),
		units:      make(map[string]entity.Unit),
		users:      make(map[string]entity.User),
		now:        now,
	}
}

// Products repositorio de productos.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s: s} }

// Movements repositorio del libro de existencias.
func (s *Store) Movements() repository.StockMovementRepository { return &movementRepo{s: s} }

// Categories repositorio de categorías.
func (s *Store) Categories() repository.CategoryRepository { return &categoryRepo{s: s} }

// Units repositorio de unidades.
func (s *Store) Units() repository.UnitRepository { return &unitRepo{s: s} }

// Users repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return &userRepo{s: s} }

// ReportCodes repositorio de contraseñas de reporte.
func (s *Store) ReportCodes() repository.ReportCodeRepository { return &reportCodeRepo{s: s} }

// undoLog registra solo lo que escribió la transacción; al revertir no se pisan
// cambios hechos por fuera de ella (nombre, precio, borrado lógico).
// Como una secuencia de Postgres, seq no retrocede.
type undoLog struct {
	createdProducts []string
	quantities      map[string]decimal.Decimal
	movements       map[string]struct{}
}

// Run ejecuta fn de forma exclusiva; si fn devuelve error se descartan sus escrituras
// sobre productos y movimientos.
func (s *Store) Run(ctx context.Context, fn func(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	undo := &undoLog{
		quantities: make(map[string]decimal.Decimal),
		movements:  make(map[string]struct{}),
	}

	movRepo := &txMovementRepo{movementRepo: movementRepo{s: s}, undo: undo}
	productRepo := &txProductRepo{productRepo: productRepo{s: s}, undo: undo}
	if err := fn(ctx, movRepo, productRepo); err != nil {
		s.rollback(undo)
		return err
	}
	return nil
}

func (s *Store) rollback(undo *undoLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range undo.createdProducts {
		delete(s.products, id)
	}
	for id, qty := range undo.quantities {
		if cur, ok := s.products[id]; ok {
			cur.Quantity = qty
			s.products[id] = cur
		}
	}
	if len(undo.movements) > 0 {
		kept := s.movements[:0]
		for _, m := range s.movements {
			if _, ok := undo.movements[m.ID]; !ok {
				kept = append(kept, m)
			}
		}
		s.movements = kept
	}
}

type txProductRepo struct {
	productRepo
	undo *undoLog
}

func (r *txProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if err := r.productRepo.Create(ctx, p); err != nil {
		return err
	}
	r.undo.createdProducts = append(r.undo.createdProducts, p.ID)
	return nil
}

func (r *txProductRepo) UpdateQuantity(ctx context.Context, productID string, quantity decimal.Decimal) error {
	r.s.mu.RLock()
	cur, ok := r.s.products[productID]
	r.s.mu.RUnlock()
	if ok {
		if _, seen := r.undo.quantities[productID]; !seen {
			r.undo.quantities[productID] = cur.Quantity
		}
	}
	return r.productRepo.UpdateQuantity(ctx, productID, quantity)
}

type txMovementRepo struct {
	movementRepo
	undo *undoLog
}

func (r *txMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if err := r.movementRepo.Create(ctx, m); err != nil {
		return err
	}
	r.undo.movements[m.ID] = struct{}{}
	return nil
}
