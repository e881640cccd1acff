package barcode_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/barcode"
)

// Vectores EAN-13 publicados (etiquetas reales).
func TestCheckDigit_VectoresConocidos(t *testing.T) {
	cases := map[string]int{
		"400638133393": 1, // 4006381333931
		"590123412345": 7, // 5901234123457
		"978020137962": 4, // ISBN 978-0-201-37962-4
		"000000000000": 0,
	}
	for first12, want := range cases {
		got, err := barcode.CheckDigit(first12)
		require.NoError(t, err, first12)
		assert.Equal(t, want, got, "dígito de control de %s", first12)
	}
}

func TestComplete_VectorDeReferencia(t *testing.T) {
	code, err := barcode.Complete("400638133393")
	require.NoError(t, err)
	assert.Equal(t, "4006381333931", code)
	assert.True(t, barcode.IsValid(code))
}

func TestCheckDigit_EntradaInvalida(t *testing.T) {
	_, err := barcode.CheckDigit("12345")
	assert.Error(t, err, "longitud distinta de 12")

	_, err = barcode.CheckDigit("40063813339A")
	assert.Error(t, err, "caracter no numérico")
}

func TestIsValid_RechazaControlIncorrecto(t *testing.T) {
	assert.False(t, barcode.IsValid("4006381333932"))
	assert.False(t, barcode.IsValid("400638133393"))
}

func TestGenerate_SiempreValido(t *testing.T) {
	g := barcode.NewGenerator()
	for i := 0; i < 200; i++ {
		code := g.Generate()
		require.Len(t, code, 13)
		require.True(t, barcode.IsValid(code), code)
	}
}

// sequence devuelve los dígitos de los códigos dados en orden, uno por llamada.
func sequence(prefixes ...string) func() int {
	var digits []int
	for _, p := range prefixes {
		for _, r := range p {
			digits = append(digits, int(r-'0'))
		}
	}
	i := 0
	return func() int {
		d := digits[i%len(digits)]
		i++
		return d
	}
}

func TestGenerateUnique_ReintentaSiExiste(t *testing.T) {
	g := barcode.NewGeneratorWithSource(sequence("400638133393", "590123412345"), 5)
	taken := map[string]bool{"4006381333931": true}
	calls := 0

	code, err := g.GenerateUnique(context.Background(), func(_ context.Context, c string) (bool, error) {
		calls++
		return taken[c], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "5901234123457", code)
	assert.Equal(t, 2, calls)
}

func TestGenerateUnique_AgotaIntentos(t *testing.T) {
	g := barcode.NewGeneratorWithSource(sequence("400638133393"), 3)
	calls := 0
	_, err := g.GenerateUnique(context.Background(), func(context.Context, string) (bool, error) {
		calls++
		return true, nil
	})
	assert.ErrorIs(t, err, domain.ErrBarcodeExhausted)
	assert.Equal(t, 3, calls)
}

func TestGenerateUnique_PropagaErrorDeConsulta(t *testing.T) {
	boom := errors.New("db caída")
	g := barcode.NewGenerator()
	_, err := g.GenerateUnique(context.Background(), func(context.Context, string) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
}
