package services

import "strings"

// CleanCEP strips every non-digit character from a postal code.
func CleanCEP(cep string) string {
	var b strings.Builder
	b.Grow(len(cep))
	for _, r := range cep {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateCEP accepts any postal code with exactly eight digits once cleaned,
// e.g. "01010-000" or "01010000".
func ValidateCEP(cep string) *ServiceError {
	if strings.TrimSpace(cep) == "" || len(CleanCEP(cep)) != 8 {
		return ErrInvalidCEP(cep)
	}
	return nil
}

// ValidateState checks for a two-letter UF and returns it upper-cased.
func ValidateState(state string) (string, *ServiceError) {
	trimmed := strings.TrimSpace(state)
	if len(trimmed) != 2 || !isLetters(trimmed) {
		return "", ErrInvalidState(state)
	}
	return strings.ToUpper(trimmed), nil
}

func isLetters(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
