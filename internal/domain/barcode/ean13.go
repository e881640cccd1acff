// Package barcode genera códigos de producto EAN-13 (12 dígitos aleatorios + dígito de control).
package barcode

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// DefaultMaxAttempts intentos antes de devolver ErrBarcodeExhausted.
const DefaultMaxAttempts = 100

// CodeExistsFunc consulta si un código ya está asignado a un producto.
type CodeExistsFunc func(ctx context.Context, code string) (bool, error)

// CheckDigit calcula el dígito de control EAN-13 de los 12 primeros dígitos.
// Posiciones pares (0,2,4...) suman directo; impares (1,3,5...) suman x3.
// Control = (10 - total mod 10) mod 10.
func CheckDigit(first12 string) (int, error) {
	if len(first12) != 12 {
		return 0, fmt.Errorf("barcode: se esperan 12 dígitos, llegaron %d", len(first12))
	}
	total := 0
	for i, r := range first12 {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("barcode: carácter no numérico %q", r)
		}
		d := int(r - '0')
		if i%2 == 0 {
			total += d
		} else {
			total += d * 3
		}
	}
	return (10 - total%10) % 10, nil
}

// Complete devuelve el código de 13 dígitos (12 dígitos + control).
func Complete(first12 string) (string, error) {
	check, err := CheckDigit(first12)
	if err != nil {
		return "", err
	}
	return first12 + strconv.Itoa(check), nil
}

// IsValid verifica longitud y dígito de control de un EAN-13.
func IsValid(code string) bool {
	if len(code) != 13 {
		return false
	}
	check, err := CheckDigit(code[:12])
	if err != nil {
		return false
	}
	return int(code[12]-'0') == check
}

// Generator produce códigos EAN-13 aleatorios.
type Generator struct {
	digit       func() int // 0..9
	maxAttempts int
}

// NewGenerator construye un generador con math/rand/v2 y DefaultMaxAttempts.
func NewGenerator() *Generator {
	return &Generator{digit: func() int { return rand.IntN(10) }, maxAttempts: DefaultMaxAttempts}
}

// NewGeneratorWithSource permite inyectar la fuente de dígitos (tests).
func NewGeneratorWithSource(digit func() int, maxAttempts int) *Generator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Generator{digit: digit, maxAttempts: maxAttempts}
}

// Generate devuelve un EAN-13 aleatorio (sin verificar unicidad).
func (g *Generator) Generate() string {
	var sb strings.Builder
	sb.Grow(13)
	for i := 0; i < 12; i++ {
		sb.WriteByte(byte('0' + g.digit()))
	}
	code, _ := Complete(sb.String())
	return code
}

// GenerateUnique reintenta hasta encontrar un código que exists no reconozca.
// Debe llamarse dentro de la misma transacción que inserta el producto.
func (g *Generator) GenerateUnique(ctx context.Context, exists CodeExistsFunc) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		code := g.Generate()
		taken, err := exists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", domain.ErrBarcodeExhausted
}
