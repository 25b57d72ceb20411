package assistantService

import (
	"context"
	"testing"

	"github.com/alexleon2021/vocalcart/internal/api/checkout"
	"github.com/alexleon2021/vocalcart/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) say(t *testing.T, sessionID, transcript string) string {
	t.Helper()
	result, err := e.service.ProcessTranscript(context.Background(), sessionID, transcript)
	require.NoError(t, err)
	return result.Response
}

func (e *testEnv) startCheckout(t *testing.T, sessionID string) {
	t.Helper()
	e.say(t, sessionID, "agregar dos manzanas")
	resp := e.say(t, sessionID, "finalizar compra")
	require.Contains(t, resp, "Dime tu nombre completo")
}

func (e *testEnv) fillBilling(t *testing.T, sessionID string) {
	t.Helper()
	e.say(t, sessionID, "mi nombre es maria lopez")
	e.say(t, sessionID, "documento 123456")
	e.say(t, sessionID, "telefono 3001234567")
	e.say(t, sessionID, "correo maria arroba gmail punto com")
	e.say(t, sessionID, "tarjeta 1234 5678 9012 3456")
	e.say(t, sessionID, "vencimiento 12 25")
	e.say(t, sessionID, "cvv 123")
}

func TestCheckoutFullPurchaseWithPickup(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationMonolithic)
	ctx := context.Background()

	env.startCheckout(t, sessionID)

	// The pickup store is drawn when checkout opens and held fixed.
	site := env.session(sessionID).Checkout.PickupSite
	require.Contains(t, checkout.PickupSites, site)

	env.fillBilling(t, sessionID)

	resp := env.say(t, sessionID, "siguiente")
	assert.Contains(t, resp, "Paso 2")

	resp = env.say(t, sessionID, "sin envio")
	assert.Contains(t, resp, site)

	resp = env.say(t, sessionID, "continuar")
	assert.Contains(t, resp, "Paso 3")

	// The first confirmation reads the summary, nothing is submitted yet.
	resp = env.say(t, sessionID, "confirmar compra")
	assert.Contains(t, resp, "Resumen de tu compra")
	assert.Contains(t, resp, "2 Manzanas")
	assert.Contains(t, resp, "total $5.950")
	assert.Contains(t, resp, site)
	require.Empty(t, env.orderRepo.orders)

	result, err := env.service.ProcessTranscript(ctx, sessionID, "confirmar compra")
	require.NoError(t, err)
	assert.Contains(t, result.Response, "Compra confirmada")
	assert.NotEmpty(t, result.OrderID)
	assert.Equal(t, string(entity.ScreenShop), result.Screen)
	assert.Nil(t, result.Checkout)

	require.Len(t, env.orderRepo.orders, 1)
	order := env.orderRepo.orders[result.OrderID]
	assert.Equal(t, "Maria Lopez", order.CustomerName)
	assert.Equal(t, "3456", order.CardLastFour)
	assert.Equal(t, entity.DeliveryMethodPickup, order.DeliveryMethod)
	assert.Equal(t, int64(5950), order.Total)

	shipment := env.orderRepo.shipments[result.OrderID]
	assert.Equal(t, site, shipment.PickupSite)
	assert.Empty(t, shipment.Address)

	// Stock was decremented and the cart cleared.
	product, err := (&memProducts{repo: env.catalogRepo}).GetProductByID(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 8, product.Stock)

	cart, err := env.service.cartService.GetCartEntity(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestDocumentTooShortRejected(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationMonolithic)

	env.startCheckout(t, sessionID)

	resp := env.say(t, sessionID, "documento 1234")
	assert.Contains(t, resp, "al menos 6 dígitos")

	session := env.session(sessionID)
	assert.Empty(t, session.Checkout.DocumentNumber)

	env.say(t, sessionID, "documento 123456")
	session = env.session(sessionID)
	assert.Equal(t, "123456", session.Checkout.DocumentNumber)
}

func TestConfirmWithMissingFieldsRefused(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationMonolithic)

	env.startCheckout(t, sessionID)

	resp := env.say(t, sessionID, "confirmar compra")
	assert.Contains(t, resp, "Aún faltan datos")

	require.Empty(t, env.orderRepo.orders)
}

func TestConfirmRearmsOnOtherCommand(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationMonolithic)

	env.startCheckout(t, sessionID)
	env.fillBilling(t, sessionID)
	env.say(t, sessionID, "siguiente")
	env.say(t, sessionID, "sin envio")
	env.say(t, sessionID, "continuar")

	resp := env.say(t, sessionID, "confirmar compra")
	assert.Contains(t, resp, "Resumen de tu compra")

	// A different utterance in between drops the pending confirmation, so
	// the next confirm reads the summary again instead of submitting.
	env.say(t, sessionID, "telefono 3001234567")

	resp = env.say(t, sessionID, "confirmar compra")
	assert.Contains(t, resp, "Resumen de tu compra")
	require.Empty(t, env.orderRepo.orders)
}

func TestStepValidationBlocksAdvance(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationMonolithic)

	env.startCheckout(t, sessionID)

	resp := env.say(t, sessionID, "siguiente")
	assert.Contains(t, resp, "Falta tu nombre")

	session := env.session(sessionID)
	assert.Equal(t, 1, session.Checkout.Step)
}

func TestStepOneRequiresCardBeforeAdvance(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationMonolithic)

	env.startCheckout(t, sessionID)
	env.say(t, sessionID, "mi nombre es maria lopez")
	env.say(t, sessionID, "documento 123456")
	env.say(t, sessionID, "telefono 3001234567")
	env.say(t, sessionID, "correo maria arroba gmail punto com")

	resp := env.say(t, sessionID, "siguiente")
	assert.Contains(t, resp, "Falta la tarjeta")

	session := env.session(sessionID)
	assert.Equal(t, 1, session.Checkout.Step)
}

func TestShippingRequiresAddressAndCity(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationMonolithic)

	env.startCheckout(t, sessionID)
	env.fillBilling(t, sessionID)
	env.say(t, sessionID, "siguiente")
	env.say(t, sessionID, "con envio")

	resp := env.say(t, sessionID, "continuar")
	assert.Contains(t, resp, "dirección")

	env.say(t, sessionID, "direccion calle 10 numero 5")

	resp = env.say(t, sessionID, "siguiente")
	assert.Contains(t, resp, "Falta la ciudad")

	session := env.session(sessionID)
	assert.Equal(t, 2, session.Checkout.Step)

	env.say(t, sessionID, "ciudad bogota")

	resp = env.say(t, sessionID, "continuar")
	assert.Contains(t, resp, "Paso 3")
}

func TestCheckoutSubmissionRequiresCity(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationMonolithic)
	env.say(t, sessionID, "agregar dos manzanas")

	_, err := env.service.checkoutService.ProcessCheckout(context.Background(), sessionID, checkout.CheckoutRequest{
		CustomerName:     "Maria Lopez",
		DocumentNumber:   "123456",
		Phone:            "3001234567",
		Email:            "maria@gmail.com",
		RequiresShipping: true,
		Address:          "Calle 10 # 5",
		CardNumber:       "1234567890123456",
		CardExpiry:       "12/25",
		CardCVV:          "123",
	})
	assert.ErrorIs(t, err, checkout.ErrMissingCity)
	require.Empty(t, env.orderRepo.orders)
}

func TestPayCommandInsideCheckoutKeepsForm(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationMonolithic)

	env.startCheckout(t, sessionID)
	env.say(t, sessionID, "mi nombre es maria lopez")

	resp := env.say(t, sessionID, "finalizar compra")
	assert.Contains(t, resp, "Ya estás pagando")

	session := env.session(sessionID)
	require.NotNil(t, session.Checkout)
	assert.Equal(t, "Maria Lopez", session.Checkout.CustomerName)
	assert.Equal(t, string(entity.ScreenCheckout), string(session.Screen))
}

func TestStepByStepDictation(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationStepByStep)

	env.startCheckout(t, sessionID)

	// A bare utterance fills the field being asked for.
	resp := env.say(t, sessionID, "maria lopez")
	assert.Contains(t, resp, "Maria Lopez")
	assert.Contains(t, resp, "documento")

	// Digits dictated in chunks accumulate until the field validates.
	resp = env.say(t, sessionID, "tres cero cero")
	assert.Contains(t, resp, "Llevas 3 dígitos")

	resp = env.say(t, sessionID, "uno dos tres")
	assert.Contains(t, resp, "Documento: 300123")

	session := env.session(sessionID)
	assert.Equal(t, "300123", session.Checkout.DocumentNumber)
	assert.Equal(t, "telefono", session.Checkout.ActiveField)
	assert.Empty(t, session.NumericBuffer)
}

func TestNumericBufferCleared(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationStepByStep)

	env.startCheckout(t, sessionID)
	env.say(t, sessionID, "maria lopez")
	env.say(t, sessionID, "tres cero cero")

	resp := env.say(t, sessionID, "borrar")
	assert.Contains(t, resp, "Borrado")

	session := env.session(sessionID)
	assert.Empty(t, session.NumericBuffer)
	assert.Empty(t, session.Checkout.DocumentNumber)
}

func TestCardBufferOverflowResets(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationStepByStep)

	env.startCheckout(t, sessionID)
	env.say(t, sessionID, "maria lopez")
	env.say(t, sessionID, "documento 123456")
	env.say(t, sessionID, "telefono 3001234567")
	env.say(t, sessionID, "correo maria arroba gmail punto com")

	env.say(t, sessionID, "1234 5678 9012")
	resp := env.say(t, sessionID, "3456 789")
	assert.Contains(t, resp, "Se pasaron los 16 dígitos")

	session := env.session(sessionID)
	assert.Empty(t, session.NumericBuffer)
	assert.Empty(t, session.Checkout.CardNumber)
}

func TestCancelCheckoutReturnsToCart(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationMonolithic)
	ctx := context.Background()

	env.startCheckout(t, sessionID)
	env.say(t, sessionID, "mi nombre es maria lopez")

	result, err := env.service.ProcessTranscript(ctx, sessionID, "cancelar")
	require.NoError(t, err)
	assert.Contains(t, result.Response, "Compra cancelada")
	assert.Equal(t, string(entity.ScreenCart), result.Screen)
	assert.Nil(t, result.Checkout)

	// The cart survives an abandoned checkout.
	cart, err := env.service.cartService.GetCartEntity(ctx, sessionID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}
