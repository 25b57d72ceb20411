package assistantService

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexleon2021/vocalcart/internal/api/assistant"
	"github.com/alexleon2021/vocalcart/internal/api/cart"
	"github.com/alexleon2021/vocalcart/internal/entity"
	"github.com/alexleon2021/vocalcart/pkg/nlp"
)

func (s *assistantService) handleShop(ctx context.Context, session *entity.AssistantSession, normalized string, result *assistant.CommandResponse) bool {
	if term, ok := afterTrigger(normalized, "buscar", "busca"); ok {
		result.Intent = string(nlp.IntentSearch)
		result.Handled = true
		result.Response = s.searchProducts(ctx, term)
		return true
	}

	if containsAny(normalized, "mostrar productos", "que productos hay", "lista de productos") {
		result.Intent = string(nlp.IntentListProducts)
		result.Handled = true
		result.Response = s.searchProducts(ctx, "")
		return true
	}

	if term, ok := afterTrigger(normalized, "filtrar por", "categoria"); ok && term != "" {
		result.Intent = string(nlp.IntentFilter)
		result.Handled = true
		result.Response = s.filterByCategory(ctx, term)
		return true
	}

	if rest, ok := afterTrigger(normalized, "agregar", "anadir", "quiero comprar"); ok && rest != "" {
		result.Intent = string(nlp.IntentAddToCart)
		result.Handled = true
		result.Response = s.addSpokenProduct(ctx, session.ID, rest)
		s.attachCart(ctx, session.ID, result)
		return true
	}

	if rest, ok := afterTrigger(normalized, "quitar", "eliminar", "remover"); ok && rest != "" {
		result.Intent = string(nlp.IntentSetField)
		result.Handled = true
		result.Response = s.removeSpokenProduct(ctx, session.ID, rest)
		s.attachCart(ctx, session.ID, result)
		return true
	}

	if rest, ok := afterTrigger(normalized, "cambiar cantidad de", "cambiar"); ok && rest != "" {
		result.Intent = string(nlp.IntentSetField)
		result.Handled = true
		result.Response = s.changeSpokenQuantity(ctx, session.ID, rest)
		s.attachCart(ctx, session.ID, result)
		return true
	}

	if containsAny(normalized, "cuanto llevo", "cuanto es", "total del carrito") {
		result.Intent = string(nlp.IntentViewCart)
		result.Handled = true
		result.Response = s.cartSummary(ctx, session.ID)
		s.attachCart(ctx, session.ID, result)
		return true
	}

	return false
}

func (s *assistantService) searchProducts(ctx context.Context, term string) string {
	list, err := s.catalogService.GetProducts(ctx, term, "", 1, 5)
	if err != nil {
		return "No pude consultar el catálogo, intenta de nuevo."
	}

	if len(list.Products) == 0 {
		if term == "" {
			return "No hay productos disponibles en este momento."
		}
		return fmt.Sprintf("No encontré productos para '%s'.", term)
	}

	names := make([]string, 0, len(list.Products))
	for _, p := range list.Products {
		names = append(names, fmt.Sprintf("%s a %s", p.Name, s.utils.FormatMoney(p.Price)))
	}

	return fmt.Sprintf("Encontré %d productos: %s.", list.Total, strings.Join(names, ", "))
}

func (s *assistantService) filterByCategory(ctx context.Context, term string) string {
	categories, err := s.catalogService.GetAllCategories(ctx)
	if err != nil {
		return "No pude consultar las categorías, intenta de nuevo."
	}

	names := make([]string, 0, len(categories.Categories))
	bySlug := make(map[string]string, len(categories.Categories))
	for _, c := range categories.Categories {
		names = append(names, c.Name)
		bySlug[c.Name] = c.Slug
	}

	matcher := nlp.NewMatcher()
	match, ok := matcher.BestMatch(term, names)
	if !ok {
		return fmt.Sprintf("No encontré la categoría '%s'.", term)
	}

	list, err := s.catalogService.GetProducts(ctx, "", bySlug[match.Name], 1, 5)
	if err != nil || len(list.Products) == 0 {
		return fmt.Sprintf("La categoría %s no tiene productos disponibles.", match.Name)
	}

	productNames := make([]string, 0, len(list.Products))
	for _, p := range list.Products {
		productNames = append(productNames, p.Name)
	}

	return fmt.Sprintf("En %s hay: %s.", match.Name, strings.Join(productNames, ", "))
}

// addSpokenProduct parses "5 manzanas" or just "manzanas" out of an add
// command. Normalization already turned number words into digits.
func (s *assistantService) addSpokenProduct(ctx context.Context, sessionID, rest string) string {
	quantity, name := splitQuantity(rest)
	if name == "" {
		return "Dime qué producto quieres agregar."
	}

	product, err := s.catalogService.FindProductByName(ctx, name)
	if err != nil {
		return fmt.Sprintf("No encontré el producto '%s'.", name)
	}

	cartResp, err := s.cartService.AddItem(ctx, sessionID, cart.AddItemRequest{
		ProductID: product.ID,
		Quantity:  quantity,
	})
	if err != nil {
		var stockErr *cart.InsufficientStockError
		if errors.As(err, &stockErr) {
			return fmt.Sprintf("Solo quedan %d unidades de %s, no pude agregar %d.",
				stockErr.Available, stockErr.ProductName, stockErr.Requested)
		}
		return "No pude agregar el producto, intenta de nuevo."
	}

	return fmt.Sprintf("Agregué %d %s. Llevas %d productos, total %s.",
		quantity, product.Name, cartResp.TotalUnits, s.utils.FormatMoney(cartResp.Total))
}

func (s *assistantService) removeSpokenProduct(ctx context.Context, sessionID, rest string) string {
	cartEntity, err := s.cartService.GetCartEntity(ctx, sessionID)
	if err != nil || len(cartEntity.Items) == 0 {
		return "Tu carrito está vacío."
	}

	item, ok := s.matchCartItem(cartEntity, rest)
	if !ok {
		return fmt.Sprintf("No tienes '%s' en el carrito.", rest)
	}

	if _, err := s.cartService.RemoveItem(ctx, sessionID, item.ProductID); err != nil {
		return "No pude quitar el producto, intenta de nuevo."
	}

	return fmt.Sprintf("Quité %s del carrito.", item.ProductName)
}

// changeSpokenQuantity handles "cambiar manzanas a 3".
func (s *assistantService) changeSpokenQuantity(ctx context.Context, sessionID, rest string) string {
	parts := strings.SplitN(rest, " a ", 2)
	if len(parts) != 2 {
		return "Dí por ejemplo: cambiar manzanas a 3."
	}

	name := strings.TrimSpace(parts[0])
	quantity, err := strconv.Atoi(nlp.Digits(parts[1]))
	if err != nil || quantity < 0 {
		return "No entendí la cantidad nueva."
	}

	cartEntity, err := s.cartService.GetCartEntity(ctx, sessionID)
	if err != nil || len(cartEntity.Items) == 0 {
		return "Tu carrito está vacío."
	}

	item, ok := s.matchCartItem(cartEntity, name)
	if !ok {
		return fmt.Sprintf("No tienes '%s' en el carrito.", name)
	}

	if _, err := s.cartService.SetQuantity(ctx, sessionID, item.ProductID, quantity); err != nil {
		var stockErr *cart.InsufficientStockError
		if errors.As(err, &stockErr) {
			return fmt.Sprintf("Solo quedan %d unidades de %s.", stockErr.Available, stockErr.ProductName)
		}
		return "No pude cambiar la cantidad, intenta de nuevo."
	}

	if quantity == 0 {
		return fmt.Sprintf("Quité %s del carrito.", item.ProductName)
	}
	return fmt.Sprintf("Ahora llevas %d %s.", quantity, item.ProductName)
}

func (s *assistantService) matchCartItem(cartEntity entity.Cart, spoken string) (entity.CartItem, bool) {
	names := make([]string, 0, len(cartEntity.Items))
	byName := make(map[string]entity.CartItem, len(cartEntity.Items))
	for _, it := range cartEntity.Items {
		names = append(names, it.ProductName)
		byName[it.ProductName] = it
	}

	matcher := nlp.NewMatcher()
	match, ok := matcher.BestMatch(spoken, names)
	if !ok {
		return entity.CartItem{}, false
	}

	return byName[match.Name], true
}

func (s *assistantService) cartSummary(ctx context.Context, sessionID string) string {
	cartEntity, err := s.cartService.GetCartEntity(ctx, sessionID)
	if err != nil {
		return "No pude consultar tu carrito."
	}

	if len(cartEntity.Items) == 0 {
		return "Tu carrito está vacío."
	}

	lines := make([]string, 0, len(cartEntity.Items))
	for _, it := range cartEntity.Items {
		lines = append(lines, fmt.Sprintf("%d %s", it.Quantity, it.ProductName))
	}

	return fmt.Sprintf("Llevas %s. Subtotal %s, IVA %s, total %s.",
		strings.Join(lines, ", "),
		s.utils.FormatMoney(cartEntity.Subtotal()),
		s.utils.FormatMoney(cartEntity.Tax()),
		s.utils.FormatMoney(cartEntity.Total()))
}

// splitQuantity pulls a leading or embedded digit token out of the spoken
// product reference, defaulting to one unit.
func splitQuantity(rest string) (int, string) {
	words := strings.Fields(rest)
	quantity := 1
	nameWords := make([]string, 0, len(words))

	taken := false
	for _, w := range words {
		if !taken {
			if n, err := strconv.Atoi(w); err == nil && n > 0 {
				quantity = n
				taken = true
				continue
			}
		}
		nameWords = append(nameWords, w)
	}

	name := strings.TrimSpace(strings.TrimPrefix(strings.Join(nameWords, " "), "de "))
	return quantity, name
}
