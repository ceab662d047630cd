package asaas

import (
	"fmt"
	"strings"
)

/************************************************
/**** MARK: WEBHOOK EVENTS ****/
/************************************************/
const EVENT_PAYMENT_RECEIVED = "PAYMENT_RECEIVED"
const EVENT_PAYMENT_CONFIRMED = "PAYMENT_CONFIRMED"

/************************************************
/**** MARK: PAYMENT STATUS (remoto) ****/
/************************************************/
const PAYMENT_STATUS_PENDING = "PENDING"
const PAYMENT_STATUS_RECEIVED = "RECEIVED"
const PAYMENT_STATUS_CONFIRMED = "CONFIRMED"

// SplitItem é uma fatia do split. O Asaas espera o valor como string com
// duas casas decimais.
type SplitItem struct {
	WalletId string `json:"walletId"`
	Value    string `json:"value"`
}

type PaymentRequest struct {
	Customer          string      `json:"customer"`
	BillingType       string      `json:"billingType"`
	Value             float64     `json:"value"`
	DueDate           string      `json:"dueDate"`
	ExternalReference string      `json:"externalReference"`
	Description       string      `json:"description,omitempty"`
	Split             []SplitItem `json:"split,omitempty"`
}

type PixInfo struct {
	Payload string `json:"payload"`
}

type Payment struct {
	ID                string   `json:"id"`
	Status            string   `json:"status"`
	Value             float64  `json:"value"`
	InvoiceUrl        string   `json:"invoiceUrl"`
	ExternalReference string   `json:"externalReference"`
	Pix               *PixInfo `json:"pix,omitempty"`
}

type paymentList struct {
	Data []Payment `json:"data"`
}

type AccountRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	CpfCnpj      string `json:"cpfCnpj"`
	MobilePhone  string `json:"mobilePhone,omitempty"`
	ReceiveSplit bool   `json:"receiveSplit"`
	Bank         string `json:"bank"`
	Agency       string `json:"agency"`
	Account      string `json:"account"`
	AccountDigit string `json:"accountDigit"`
}

type Account struct {
	ID       string `json:"id"`
	WalletId string `json:"walletId"`
}

// WebhookEvent é o corpo que o Asaas envia nas notificações assíncronas.
type WebhookEvent struct {
	Event   string  `json:"event"`
	Payment Payment `json:"payment"`
}

// IsPaymentSettled diz se o evento representa pagamento recebido/confirmado.
func (e WebhookEvent) IsPaymentSettled() bool {
	return e.Event == EVENT_PAYMENT_RECEIVED || e.Event == EVENT_PAYMENT_CONFIRMED
}

type ErrorItem struct {
	Code        string `json:"code,omitempty"`
	Description string `json:"description"`
}

// APIError carrega o payload de erro do gateway para diagnóstico.
type APIError struct {
	StatusCode int
	Errors     []ErrorItem
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("asaas: status %d", e.StatusCode)
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, it := range e.Errors {
		msgs = append(msgs, it.Description)
	}
	return fmt.Sprintf("asaas: status %d: %s", e.StatusCode, strings.Join(msgs, "; "))
}
