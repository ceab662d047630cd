package tools

import (
	"fmt"
	"strings"
	"unicode"
)

// NormalizeMobilePhone normaliza um telefone para o formato nacional que o
// Asaas aceita em mobilePhone (apenas dígitos, DDD+número, sem DDI).
//
// Heurística atual (Brasil):
// - remove tudo que não é dígito
// - se vier com DDI 55 (12/13 dígitos), remove o prefixo
// - exige 10 ou 11 dígitos no final
func NormalizeMobilePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty phone")
	}

	// mantém apenas dígitos
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	phone := b.String()
	phone = strings.TrimLeft(phone, "0")

	// veio com DDI brasileiro -> formato nacional
	if (len(phone) == 12 || len(phone) == 13) && strings.HasPrefix(phone, "55") {
		phone = phone[2:]
	}

	if len(phone) != 10 && len(phone) != 11 {
		return "", fmt.Errorf("invalid phone length: %d", len(phone))
	}
	return phone, nil
}
