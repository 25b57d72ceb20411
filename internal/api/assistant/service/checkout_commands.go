package assistantService

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexleon2021/vocalcart/internal/api/assistant"
	"github.com/alexleon2021/vocalcart/internal/api/checkout"
	"github.com/alexleon2021/vocalcart/internal/entity"
	"github.com/alexleon2021/vocalcart/pkg/nlp"
)

var numericFields = map[string]bool{
	"documento":   true,
	"telefono":    true,
	"tarjeta":     true,
	"vencimiento": true,
	"cvv":         true,
}

func (s *assistantService) handleCheckout(ctx context.Context, session *entity.AssistantSession, normalized string, result *assistant.CommandResponse) bool {
	if session.Checkout == nil {
		session.Checkout = newCheckoutForm()
	}
	form := session.Checkout

	// Anything other than the confirmation itself re-arms the two-phase
	// confirm, so the submitting "confirmar compra" always follows a
	// freshly spoken summary.
	if !strings.Contains(normalized, "confirmar compra") {
		form.SummaryRead = false
	}

	switch {
	case containsAny(normalized, "siguiente", "continuar"):
		result.Intent = string(nlp.IntentNavigateNext)
		result.Handled = true
		result.Response = s.advanceStep(ctx, session)
		return true

	case containsAny(normalized, "anterior", "atras", "paso anterior"):
		result.Intent = string(nlp.IntentNavigatePrev)
		result.Handled = true
		if form.Step > 1 {
			form.Step--
			form.ActiveField = firstFieldOf(form.Step, form)
			session.NumericBuffer = ""
		}
		result.Response = fmt.Sprintf("Volviste al paso %d. %s", form.Step, promptFor(form.ActiveField))
		return true

	case containsAny(normalized, "leer resumen", "resumen"):
		result.Intent = string(nlp.IntentConfirmPurchase)
		result.Handled = true
		result.Response = s.readSummary(ctx, session)
		return true

	case strings.Contains(normalized, "confirmar compra"):
		result.Intent = string(nlp.IntentConfirmPurchase)
		result.Handled = true
		result.Response = s.confirmPurchase(ctx, session, result)
		return true

	case containsAny(normalized, "con envio", "a domicilio", "enviar a mi casa"):
		form.RequiresShipping = true
		if form.Step == 2 {
			form.ActiveField = firstFieldOf(2, form)
		}
		result.Intent = string(nlp.IntentToggleShipping)
		result.Handled = true
		result.Response = "Perfecto, envío a domicilio. Dime tu dirección."
		return true

	case containsAny(normalized, "sin envio", "recoger en tienda", "recojo en tienda"):
		form.RequiresShipping = false
		form.Address = ""
		form.City = ""
		form.PostalCode = ""
		result.Intent = string(nlp.IntentToggleShipping)
		result.Handled = true
		result.Response = fmt.Sprintf("Listo, recogerás tu pedido en %s.", form.PickupSite)
		return true

	case containsAny(normalized, "borrar", "corregir"):
		result.Intent = string(nlp.IntentSetField)
		result.Handled = true
		session.NumericBuffer = ""
		clearField(form, form.ActiveField)
		result.Response = fmt.Sprintf("Borrado. %s", promptFor(form.ActiveField))
		return true
	}

	if field, value, ok := matchFieldSetter(normalized); ok {
		result.Intent = string(nlp.IntentSetField)
		result.Handled = true
		session.NumericBuffer = ""
		result.Response = s.setField(session, field, value)
		return true
	}

	// Bare digits feed the numeric buffer of the field being dictated.
	if numericFields[form.ActiveField] && nlp.IsNumeric(normalized) {
		result.Intent = string(nlp.IntentSetField)
		result.Handled = true
		result.Response = s.feedNumericBuffer(session, nlp.Digits(normalized))
		return true
	}

	// Step-by-step dictation lets a plain utterance fill the active text
	// field without naming it.
	if session.DictationMode == entity.DictationStepByStep && form.ActiveField != "" && !numericFields[form.ActiveField] {
		result.Intent = string(nlp.IntentSetField)
		result.Handled = true
		result.Response = s.setField(session, form.ActiveField, normalized)
		return true
	}

	return false
}

func matchFieldSetter(normalized string) (string, string, bool) {
	setters := []struct {
		field    string
		triggers []string
	}{
		{"nombre", []string{"mi nombre es", "me llamo", "nombre"}},
		{"documento", []string{"mi documento es", "documento", "cedula"}},
		{"telefono", []string{"mi telefono es", "telefono", "celular"}},
		{"email", []string{"mi correo es", "correo", "email"}},
		{"direccion", []string{"mi direccion es", "direccion"}},
		{"ciudad", []string{"ciudad"}},
		{"codigo_postal", []string{"codigo postal"}},
		{"notas", []string{"notas", "nota"}},
		{"tarjeta", []string{"mi tarjeta es", "tarjeta"}},
		{"vencimiento", []string{"vencimiento", "vence", "fecha de vencimiento"}},
		{"cvv", []string{"cvv", "codigo de seguridad"}},
	}

	for _, setter := range setters {
		if value, ok := afterTrigger(normalized, setter.triggers...); ok && value != "" {
			return setter.field, value, true
		}
	}

	return "", "", false
}

func (s *assistantService) setField(session *entity.AssistantSession, field, value string) string {
	form := session.Checkout

	switch field {
	case "nombre":
		name := nlp.TitleCase(value)
		if err := checkout.ValidateName(name); err != nil {
			return "El nombre no puede estar vacío. Dime tu nombre completo."
		}
		form.CustomerName = name
		return s.fieldAccepted(session, field, name)

	case "documento":
		digits := nlp.Digits(value)
		if err := checkout.ValidateDocument(digits); err != nil {
			return "El documento debe tener al menos 6 dígitos. Repítelo por favor."
		}
		form.DocumentNumber = digits
		return s.fieldAccepted(session, field, digits)

	case "telefono":
		digits := nlp.Digits(value)
		if err := checkout.ValidatePhone(digits); err != nil {
			return "El teléfono debe tener al menos 7 dígitos. Repítelo por favor."
		}
		form.Phone = digits
		return s.fieldAccepted(session, field, digits)

	case "email":
		email := nlp.SpokenEmail(value)
		if err := checkout.ValidateEmail(email); err != nil {
			return "No entendí el correo. Dilo como: maria arroba correo punto com."
		}
		form.Email = email
		return s.fieldAccepted(session, field, email)

	case "direccion":
		form.Address = nlp.TitleCase(value)
		return s.fieldAccepted(session, field, form.Address)

	case "ciudad":
		form.City = nlp.TitleCase(value)
		return s.fieldAccepted(session, field, form.City)

	case "codigo_postal":
		form.PostalCode = nlp.Digits(value)
		return s.fieldAccepted(session, field, form.PostalCode)

	case "notas":
		form.Notes = value
		return s.fieldAccepted(session, field, value)

	case "tarjeta":
		digits := nlp.Digits(value)
		if err := checkout.ValidateCardNumber(digits); err != nil {
			return "La tarjeta debe tener 16 dígitos. Repítela por favor."
		}
		form.CardNumber = digits
		return s.fieldAccepted(session, field, "terminada en "+digits[12:])

	case "vencimiento":
		digits := nlp.Digits(value)
		if err := checkout.ValidateCardExpiry(digits); err != nil {
			return "El vencimiento debe ser mes y año, por ejemplo: doce veinticinco."
		}
		form.CardExpiry = checkout.FormatCardExpiry(digits)
		return s.fieldAccepted(session, field, form.CardExpiry)

	case "cvv":
		digits := nlp.Digits(value)
		if err := checkout.ValidateCardCVV(digits); err != nil {
			return "El código de seguridad debe tener 3 o 4 dígitos."
		}
		form.CardCVV = digits
		return s.fieldAccepted(session, field, "registrado")
	}

	return "No reconozco ese campo."
}

// feedNumericBuffer accumulates dictated digits until the active field has
// enough to validate, so long numbers survive being spoken in chunks.
func (s *assistantService) feedNumericBuffer(session *entity.AssistantSession, digits string) string {
	form := session.Checkout
	session.NumericBuffer += digits
	buffer := session.NumericBuffer

	switch form.ActiveField {
	case "documento":
		if len(buffer) >= 6 {
			session.NumericBuffer = ""
			return s.setField(session, "documento", buffer)
		}
		return fmt.Sprintf("Llevas %d dígitos, el documento necesita al menos 6. Continúa.", len(buffer))

	case "telefono":
		if len(buffer) >= 7 {
			session.NumericBuffer = ""
			return s.setField(session, "telefono", buffer)
		}
		return fmt.Sprintf("Llevas %d dígitos, el teléfono necesita al menos 7. Continúa.", len(buffer))

	case "tarjeta":
		if len(buffer) == 16 {
			session.NumericBuffer = ""
			return s.setField(session, "tarjeta", buffer)
		}
		if len(buffer) > 16 {
			session.NumericBuffer = ""
			return "Se pasaron los 16 dígitos de la tarjeta. Empecemos de nuevo, dicta la tarjeta."
		}
		return fmt.Sprintf("Llevas %d de 16 dígitos. Continúa.", len(buffer))

	case "vencimiento":
		if len(buffer) == 4 {
			session.NumericBuffer = ""
			return s.setField(session, "vencimiento", buffer)
		}
		if len(buffer) > 4 {
			session.NumericBuffer = ""
			return "El vencimiento son 4 dígitos, mes y año. Repítelo por favor."
		}
		return fmt.Sprintf("Llevas %d de 4 dígitos del vencimiento. Continúa.", len(buffer))

	case "cvv":
		if len(buffer) >= 3 && len(buffer) <= 4 {
			session.NumericBuffer = ""
			return s.setField(session, "cvv", buffer)
		}
		if len(buffer) > 4 {
			session.NumericBuffer = ""
			return "El código de seguridad son 3 o 4 dígitos. Repítelo por favor."
		}
		return fmt.Sprintf("Llevas %d dígitos del código de seguridad. Continúa.", len(buffer))
	}

	session.NumericBuffer = ""
	return "Primero dime qué campo quieres dictar."
}

func (s *assistantService) fieldAccepted(session *entity.AssistantSession, field, spokenValue string) string {
	form := session.Checkout

	accepted := fmt.Sprintf("%s: %s.", labelFor(field), spokenValue)

	if session.DictationMode == entity.DictationStepByStep {
		next := nextEmptyField(form)
		form.ActiveField = next
		if next == "" {
			if missing := validateStepMessage(form, form.Step); missing == "" {
				return accepted + " Paso completo. Dí 'siguiente' para continuar."
			}
		}
		return accepted + " " + promptFor(next)
	}

	form.ActiveField = field
	return accepted
}

func (s *assistantService) advanceStep(ctx context.Context, session *entity.AssistantSession) string {
	form := session.Checkout
	session.NumericBuffer = ""

	if msg := validateStepMessage(form, form.Step); msg != "" {
		return msg
	}

	if form.Step < 3 {
		form.Step++
		form.ActiveField = firstFieldOf(form.Step, form)
		switch form.Step {
		case 2:
			return "Paso 2, entrega. ¿Quieres envío a domicilio o recoger en tienda? Dí 'con envío' o 'sin envío'."
		case 3:
			return "Paso 3, confirmación. Dí 'leer resumen' para escuchar tu pedido."
		}
	}

	return s.readSummary(ctx, session)
}

// newCheckoutForm opens a fresh three-step form. The pickup store is
// drawn once here and held fixed for the rest of the session.
func newCheckoutForm() *entity.CheckoutForm {
	return &entity.CheckoutForm{
		Step:        1,
		ActiveField: "nombre",
		PickupSite:  checkout.RandomPickupSite(),
	}
}

func (s *assistantService) readSummary(ctx context.Context, session *entity.AssistantSession) string {
	form := session.Checkout

	for step := 1; step <= 3; step++ {
		if msg := validateStepMessage(form, step); msg != "" {
			return "Aún faltan datos. " + msg
		}
	}

	cartEntity, err := s.cartService.GetCartEntity(ctx, session.ID)
	if err != nil || len(cartEntity.Items) == 0 {
		return "Tu carrito está vacío, no hay nada que confirmar."
	}

	lines := make([]string, 0, len(cartEntity.Items))
	for _, it := range cartEntity.Items {
		lines = append(lines, fmt.Sprintf("%d %s", it.Quantity, it.ProductName))
	}

	delivery := "recogida en " + form.PickupSite
	if form.RequiresShipping {
		delivery = "envío a " + form.Address + ", " + form.City
	}

	form.SummaryRead = true

	return fmt.Sprintf(
		"Resumen de tu compra: %s. Subtotal %s, IVA %s, total %s. Entrega: %s. A nombre de %s. Dí 'confirmar compra' para finalizar.",
		strings.Join(lines, ", "),
		s.utils.FormatMoney(cartEntity.Subtotal()),
		s.utils.FormatMoney(cartEntity.Tax()),
		s.utils.FormatMoney(cartEntity.Total()),
		delivery,
		form.CustomerName,
	)
}

// confirmPurchase implements the two-phase confirmation: the first
// "confirmar compra" speaks the summary, the identical second one submits
// the order exactly once.
func (s *assistantService) confirmPurchase(ctx context.Context, session *entity.AssistantSession, result *assistant.CommandResponse) string {
	form := session.Checkout

	if !form.SummaryRead {
		return s.readSummary(ctx, session)
	}

	resp, err := s.checkoutService.ProcessCheckout(ctx, session.ID, checkout.CheckoutRequest{
		CustomerName:     form.CustomerName,
		DocumentNumber:   form.DocumentNumber,
		Phone:            form.Phone,
		Email:            form.Email,
		RequiresShipping: form.RequiresShipping,
		Address:          form.Address,
		City:             form.City,
		PostalCode:       form.PostalCode,
		Notes:            form.Notes,
		PickupSite:       form.PickupSite,
		CardNumber:       form.CardNumber,
		CardExpiry:       form.CardExpiry,
		CardCVV:          form.CardCVV,
	})
	if err != nil {
		form.SummaryRead = false
		return "No pude completar la compra: " + err.Error() + ". Revisa los datos e intenta de nuevo."
	}

	session.Checkout = nil
	session.NumericBuffer = ""
	session.Screen = entity.ScreenShop
	result.OrderID = resp.OrderID

	if resp.PickupSite != "" {
		return fmt.Sprintf("¡Compra confirmada! Tu pedido %s estará listo en %s. Total pagado: %s.",
			resp.OrderID, resp.PickupSite, s.utils.FormatMoney(resp.Total))
	}

	return fmt.Sprintf("¡Compra confirmada! Tu pedido %s llegará a tu dirección. Total pagado: %s.",
		resp.OrderID, s.utils.FormatMoney(resp.Total))
}

func validateStepMessage(form *entity.CheckoutForm, step int) string {
	switch step {
	case 1:
		if checkout.ValidateName(form.CustomerName) != nil {
			return "Falta tu nombre. " + promptFor("nombre")
		}
		if checkout.ValidateDocument(form.DocumentNumber) != nil {
			return "Falta tu documento. " + promptFor("documento")
		}
		if checkout.ValidatePhone(form.Phone) != nil {
			return "Falta tu teléfono. " + promptFor("telefono")
		}
		if checkout.ValidateEmail(form.Email) != nil {
			return "Falta tu correo. " + promptFor("email")
		}
		if checkout.ValidateCardNumber(form.CardNumber) != nil {
			return "Falta la tarjeta. " + promptFor("tarjeta")
		}
		if checkout.ValidateCardExpiry(form.CardExpiry) != nil {
			return "Falta el vencimiento. " + promptFor("vencimiento")
		}
		if checkout.ValidateCardCVV(form.CardCVV) != nil {
			return "Falta el código de seguridad. " + promptFor("cvv")
		}
	case 2:
		if form.RequiresShipping {
			if strings.TrimSpace(form.Address) == "" {
				return "Falta la dirección de envío. " + promptFor("direccion")
			}
			if strings.TrimSpace(form.City) == "" {
				return "Falta la ciudad. " + promptFor("ciudad")
			}
		}
	}
	return ""
}

func firstFieldOf(step int, form *entity.CheckoutForm) string {
	switch step {
	case 1:
		return "nombre"
	case 2:
		if form.RequiresShipping {
			return "direccion"
		}
	}
	return ""
}

// nextEmptyField walks the current step's fields in dictation order.
func nextEmptyField(form *entity.CheckoutForm) string {
	switch form.Step {
	case 1:
		switch {
		case form.CustomerName == "":
			return "nombre"
		case form.DocumentNumber == "":
			return "documento"
		case form.Phone == "":
			return "telefono"
		case form.Email == "":
			return "email"
		case form.CardNumber == "":
			return "tarjeta"
		case form.CardExpiry == "":
			return "vencimiento"
		case form.CardCVV == "":
			return "cvv"
		}
	case 2:
		if form.RequiresShipping {
			switch {
			case form.Address == "":
				return "direccion"
			case form.City == "":
				return "ciudad"
			}
		}
	}
	return ""
}

func clearField(form *entity.CheckoutForm, field string) {
	switch field {
	case "nombre":
		form.CustomerName = ""
	case "documento":
		form.DocumentNumber = ""
	case "telefono":
		form.Phone = ""
	case "email":
		form.Email = ""
	case "direccion":
		form.Address = ""
	case "ciudad":
		form.City = ""
	case "codigo_postal":
		form.PostalCode = ""
	case "notas":
		form.Notes = ""
	case "tarjeta":
		form.CardNumber = ""
	case "vencimiento":
		form.CardExpiry = ""
	case "cvv":
		form.CardCVV = ""
	}
}

func labelFor(field string) string {
	labels := map[string]string{
		"nombre":        "Nombre",
		"documento":     "Documento",
		"telefono":      "Teléfono",
		"email":         "Correo",
		"direccion":     "Dirección",
		"ciudad":        "Ciudad",
		"codigo_postal": "Código postal",
		"notas":         "Notas",
		"tarjeta":       "Tarjeta",
		"vencimiento":   "Vencimiento",
		"cvv":           "Código de seguridad",
	}
	if l, ok := labels[field]; ok {
		return l
	}
	return field
}

func promptFor(field string) string {
	prompts := map[string]string{
		"nombre":      "Dime tu nombre completo.",
		"documento":   "Dicta tu número de documento.",
		"telefono":    "Dicta tu número de teléfono.",
		"email":       "Dicta tu correo, por ejemplo: maria arroba correo punto com.",
		"direccion":   "Dime tu dirección de envío.",
		"ciudad":      "¿En qué ciudad?",
		"tarjeta":     "Dicta los 16 dígitos de tu tarjeta.",
		"vencimiento": "Dicta el vencimiento, mes y año.",
		"cvv":         "Dicta el código de seguridad.",
	}
	if p, ok := prompts[field]; ok {
		return p
	}
	return "Dí 'siguiente' para continuar."
}
