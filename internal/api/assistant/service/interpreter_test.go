package assistantService

import (
	"context"
	"testing"
	"time"

	"github.com/alexleon2021/vocalcart/internal/entity"
	"github.com/alexleon2021/vocalcart/pkg/nlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddProductByVoice(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationMonolithic)

	result, err := env.service.ProcessTranscript(context.Background(), sessionID, "agregar dos manzanas")
	require.NoError(t, err)

	assert.True(t, result.Handled)
	assert.Equal(t, string(nlp.IntentAddToCart), result.Intent)
	assert.Contains(t, result.Response, "Agregué 2 Manzanas")

	require.NotNil(t, result.Cart)
	assert.Equal(t, 2, result.Cart.TotalUnits)
	assert.Equal(t, int64(5000), result.Cart.Subtotal)
}

func TestAddRefusedInFullWhenStockInsufficient(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationMonolithic)

	result, err := env.service.ProcessTranscript(context.Background(), sessionID, "agregar veinte manzanas")
	require.NoError(t, err)

	assert.True(t, result.Handled)
	assert.Contains(t, result.Response, "Solo quedan 10 unidades de Manzanas")

	// The whole request is refused, nothing is added partially.
	cart, err := env.service.cartService.GetCartEntity(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestSearchProducts(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationMonolithic)

	result, err := env.service.ProcessTranscript(context.Background(), sessionID, "buscar leche")
	require.NoError(t, err)

	assert.True(t, result.Handled)
	assert.Equal(t, string(nlp.IntentSearch), result.Intent)
	assert.Contains(t, result.Response, "Leche Entera")
	assert.Contains(t, result.Response, "$4.200")
}

func TestRemoveProductByVoice(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationMonolithic)
	ctx := context.Background()

	_, err := env.service.ProcessTranscript(ctx, sessionID, "agregar tres manzanas")
	require.NoError(t, err)

	result, err := env.service.ProcessTranscript(ctx, sessionID, "quitar manzanas")
	require.NoError(t, err)

	assert.True(t, result.Handled)
	assert.Contains(t, result.Response, "Quité Manzanas")

	cart, err := env.service.cartService.GetCartEntity(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartSummaryIncludesTax(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationMonolithic)
	ctx := context.Background()

	_, err := env.service.ProcessTranscript(ctx, sessionID, "agregar cuatro manzanas")
	require.NoError(t, err)

	result, err := env.service.ProcessTranscript(ctx, sessionID, "cuanto llevo")
	require.NoError(t, err)

	// 4 x 2500 = 10000, 19% IVA = 1900
	assert.Contains(t, result.Response, "Subtotal $10.000")
	assert.Contains(t, result.Response, "IVA $1.900")
	assert.Contains(t, result.Response, "total $11.900")
}

func TestDuplicateCommandSuppressed(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationMonolithic)
	ctx := context.Background()

	first, err := env.service.ProcessTranscript(ctx, sessionID, "ver carrito")
	require.NoError(t, err)
	assert.NotEmpty(t, first.Response)

	// A recognizer echo within the window produces no reply at all.
	second, err := env.service.ProcessTranscript(ctx, sessionID, "ver carrito")
	require.NoError(t, err)
	assert.True(t, second.Handled)
	assert.Empty(t, second.Response)
}

func TestDuplicateWindowExpires(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationMonolithic)
	ctx := context.Background()

	_, err := env.service.ProcessTranscript(ctx, sessionID, "ver carrito")
	require.NoError(t, err)

	// Age the recorded command past the window.
	session := env.session(sessionID)
	session.LastCommandAt = time.Now().Add(-3 * time.Second)
	require.NoError(t, env.service.saveSession(ctx, &session))

	repeat, err := env.service.ProcessTranscript(ctx, sessionID, "ver carrito")
	require.NoError(t, err)
	assert.NotEmpty(t, repeat.Response)
}

func TestUnrecognizedFallback(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationMonolithic)

	result, err := env.service.ProcessTranscript(context.Background(), sessionID, "abracadabra patas de cabra")
	require.NoError(t, err)

	assert.False(t, result.Handled)
	assert.Equal(t, string(nlp.IntentUnrecognized), result.Intent)
	assert.Contains(t, result.Response, "No entendí")
}

func TestShortFragmentsStaySilent(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationMonolithic)

	result, err := env.service.ProcessTranscript(context.Background(), sessionID, "eh")
	require.NoError(t, err)

	assert.False(t, result.Handled)
	assert.Empty(t, result.Response)
}

func TestCheckoutBlockedWhenCartEmpty(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationMonolithic)

	result, err := env.service.ProcessTranscript(context.Background(), sessionID, "finalizar compra")
	require.NoError(t, err)

	assert.True(t, result.Handled)
	assert.Contains(t, result.Response, "vacío")
	assert.Equal(t, string(entity.ScreenShop), result.Screen)
}

func TestNavigationBetweenScreens(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationMonolithic)
	ctx := context.Background()

	result, err := env.service.ProcessTranscript(ctx, sessionID, "ver carrito")
	require.NoError(t, err)
	assert.Equal(t, string(entity.ScreenCart), result.Screen)

	result, err = env.service.ProcessTranscript(ctx, sessionID, "volver a la tienda")
	require.NoError(t, err)
	assert.Equal(t, string(entity.ScreenShop), result.Screen)
}

func TestCommandsAreRecorded(t *testing.T) {
	env := newTestEnv()
	sessionID := env.newSession(entity.DictationMonolithic)
	ctx := context.Background()

	_, err := env.service.ProcessTranscript(ctx, sessionID, "agregar una manzana")
	require.NoError(t, err)

	history, err := env.service.GetHistory(ctx, sessionID, 1, 20)
	require.NoError(t, err)
	require.Equal(t, 1, history.Total)
	assert.Equal(t, "agregar una manzana", history.Commands[0].Transcript)
	assert.True(t, history.Commands[0].Handled)
}
