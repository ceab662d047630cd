package tools

import (
	"regexp"
	"time"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

// CheckPassword retorna o nome do campo com problema ("" = ok).
func CheckPassword(password string) string {
	if len(password) < 6 {
		return "password"
	}
	return ""
}

// ValidateDueDate aceita apenas datas no formato YYYY-MM-DD, que é o formato
// que o Asaas espera em dueDate.
func ValidateDueDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// ValidateCpfCnpj faz só a checagem de tamanho (11 dígitos CPF, 14 CNPJ),
// dígitos verificadores ficam a cargo do gateway.
func ValidateCpfCnpj(doc string) bool {
	digits := 0
	for _, r := range doc {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits == 11 || digits == 14
}
