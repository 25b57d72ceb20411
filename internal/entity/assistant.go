package entity

import "time"

type Screen string

const (
	ScreenShop     Screen = "tienda"
	ScreenCart     Screen = "carrito"
	ScreenCheckout Screen = "checkout"
)

type DictationMode string

const (
	DictationMonolithic DictationMode = "monolithic"
	DictationStepByStep DictationMode = "stepByStep"
)

type StreamState string

const (
	StreamIdle       StreamState = "idle"
	StreamListening  StreamState = "listening"
	StreamFinalizing StreamState = "finalizing"
	StreamError      StreamState = "error"
)

// CheckoutForm holds the dictation progress of the three-step checkout.
// Field values are kept exactly as the interpreter accepted them.
type CheckoutForm struct {
	Step             int    `json:"paso"`
	ActiveField      string `json:"campo_activo"`
	CustomerName     string `json:"nombre"`
	DocumentNumber   string `json:"documento"`
	Phone            string `json:"telefono"`
	Email            string `json:"email"`
	RequiresShipping bool   `json:"requiere_envio"`
	Address          string `json:"direccion"`
	City             string `json:"ciudad"`
	PostalCode       string `json:"codigo_postal"`
	Notes            string `json:"notas"`
	PickupSite       string `json:"punto_recogida"`
	CardNumber       string `json:"tarjeta"`
	CardExpiry       string `json:"vencimiento"`
	CardCVV          string `json:"cvv"`
	SummaryRead      bool   `json:"resumen_leido"`
}

type AssistantSession struct {
	ID            string        `json:"id"`
	Screen        Screen        `json:"pantalla"`
	DictationMode DictationMode `json:"modo_dictado"`
	Voice         string        `json:"voz"`
	Checkout      *CheckoutForm `json:"checkout,omitempty"`
	NumericBuffer string        `json:"buffer_numerico"`
	LastCommand   string        `json:"ultimo_comando"`
	LastCommandAt time.Time     `json:"ultimo_comando_en"`
	CreatedAt     time.Time     `json:"created_at"`
	LastActivity  time.Time     `json:"last_activity"`
}

type AssistantCommand struct {
	ID         string    `json:"id" db:"id"`
	SessionID  string    `json:"session_id" db:"session_id"`
	Transcript string    `json:"transcripcion" db:"transcript"`
	Normalized string    `json:"normalizado" db:"normalized"`
	Intent     string    `json:"intencion" db:"intent"`
	Response   string    `json:"respuesta" db:"response"`
	Handled    bool      `json:"atendido" db:"handled"`
	AudioURL   string    `json:"audio_url" db:"audio_url"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
