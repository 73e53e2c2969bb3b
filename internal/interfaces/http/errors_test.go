package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/despensa-solidaria/pos-api/internal/application/dto"
	"github.com/despensa-solidaria/pos-api/internal/domain"
)

// Los códigos de estado y de error son contrato con el cliente de caja: este
// test congela el mapeo de cada error de dominio.
func TestRespondError_MapeoDeErroresDeDominio(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrSaleNotFound, fiber.StatusNotFound, "SALE_NOT_FOUND"},
		{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrInvalidInput, fiber.StatusBadRequest, "INVALID_INPUT"},
		{domain.ErrInvalidLine, fiber.StatusBadRequest, "INVALID_LINE"},
		{domain.ErrMissingCustomerForCredit, fiber.StatusBadRequest, "MISSING_CUSTOMER"},
		{domain.ErrInvalidAmount, fiber.StatusBadRequest, "INVALID_AMOUNT"},
		{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
		{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{domain.ErrOverpayment, fiber.StatusConflict, "OVERPAYMENT"},
		{domain.ErrAlreadyVoided, fiber.StatusConflict, "ALREADY_VOIDED"},
		{domain.ErrPartialVoidForbidden, fiber.StatusConflict, "PARTIAL_VOID_FORBIDDEN"},
		{domain.ErrStockInconsistency, fiber.StatusInternalServerError, "STOCK_INCONSISTENCY"},
	}

	for _, tc := range cases {
		t.Run(tc.wantCode, func(t *testing.T) {
			app := fiber.New()
			app.Get("/t", func(c *fiber.Ctx) error {
				return respondError(c, tc.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/t", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var out dto.ErrorResponse
			require.NoError(t, json.Unmarshal(body, &out))
			assert.Equal(t, tc.wantCode, out.Code)
			assert.NotEmpty(t, out.Message)
		})
	}
}

func TestRespondError_ErrorDeValidacion(t *testing.T) {
	app := fiber.New()
	app.Get("/t", func(c *fiber.Ctx) error {
		// Un DTO con campo requerido vacío produce ValidationErrors.
		return respondError(c, dto.Validate(dto.VoidSaleRequest{}))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/t", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "VALIDATION", out.Code)
}

func TestRespondError_ErrorDesconocidoEs500(t *testing.T) {
	app := fiber.New()
	app.Get("/t", func(c *fiber.Ctx) error {
		return respondError(c, assert.AnError)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/t", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
