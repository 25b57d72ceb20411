package nlp

// Intent is the classification of a normalized transcript.
type Intent string

const (
	IntentHelp            Intent = "help"
	IntentNavigateNext    Intent = "navigate_next"
	IntentNavigatePrev    Intent = "navigate_prev"
	IntentCancel          Intent = "cancel"
	IntentSetField        Intent = "set_field"
	IntentToggleShipping  Intent = "toggle_shipping_mode"
	IntentConfirmPurchase Intent = "confirm_purchase"

	IntentAddToCart    Intent = "add_to_cart"
	IntentViewCart     Intent = "view_cart"
	IntentClearCart    Intent = "clear_cart"
	IntentSearch       Intent = "search"
	IntentListProducts Intent = "list_products"
	IntentFilter       Intent = "filter_category"
	IntentCheckout     Intent = "start_checkout"

	IntentUnrecognized Intent = "unrecognized"
)

// Result is what the interpreter reports for a single transcript.
type Result struct {
	Intent   Intent `json:"intent"`
	Field    string `json:"field,omitempty"`
	Value    string `json:"value,omitempty"`
	Response string `json:"response,omitempty"`
	Handled  bool   `json:"handled"`
}

// MatchResult scores a single candidate during product matching.
type MatchResult struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	Type  string  `json:"type"` // exact, contains, fuzzy
}
