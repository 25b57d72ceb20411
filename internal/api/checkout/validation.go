package checkout

import (
	"math/rand"
	"strconv"
	"strings"
)

// PickupSites are the stores offered when the customer declines shipping.
var PickupSites = []string{
	"Tienda Centro - Calle 19 #4-62",
	"Tienda Norte - Carrera 15 #104-30",
	"Tienda Chapinero - Carrera 13 #54-11",
	"Tienda Sur - Autopista Sur #38-55",
}

func RandomPickupSite() string {
	return PickupSites[rand.Intn(len(PickupSites))]
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	return nil
}

func ValidateDocument(document string) error {
	if len(digitsOf(document)) < 6 {
		return ErrInvalidDocument
	}
	return nil
}

func ValidatePhone(phone string) error {
	if len(digitsOf(phone)) < 7 {
		return ErrInvalidPhone
	}
	return nil
}

func ValidateEmail(email string) error {
	at := strings.Index(email, "@")
	if at < 1 {
		return ErrInvalidEmail
	}
	if !strings.Contains(email[at+1:], ".") {
		return ErrInvalidEmail
	}
	return nil
}

func ValidateCardNumber(card string) error {
	if len(digitsOf(card)) != 16 {
		return ErrInvalidCardNumber
	}
	return nil
}

// ValidateCardExpiry accepts MM/AA or the bare MMAA a dictation produces.
func ValidateCardExpiry(expiry string) error {
	digits := digitsOf(expiry)
	if len(digits) != 4 {
		return ErrInvalidCardExpiry
	}

	month, err := strconv.Atoi(digits[:2])
	if err != nil || month < 1 || month > 12 {
		return ErrInvalidCardExpiry
	}

	return nil
}

func ValidateCardCVV(cvv string) error {
	n := len(digitsOf(cvv))
	if n != 3 && n != 4 {
		return ErrInvalidCardCVV
	}
	return nil
}

// FormatCardExpiry normalizes a 4-digit expiry into MM/AA.
func FormatCardExpiry(expiry string) string {
	digits := digitsOf(expiry)
	if len(digits) != 4 {
		return expiry
	}
	return digits[:2] + "/" + digits[2:]
}
