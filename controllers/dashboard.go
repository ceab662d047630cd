package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	dbpkg "yggdrasil/db"
	"yggdrasil/models"

	"github.com/gin-gonic/gin"
)

// ------------------------------
// Dashboard do locador - Stats
// ------------------------------

type dashboardSummary struct {
	TotalRecebido      float64 `json:"total_recebido"`
	TotalPendente      float64 `json:"total_pendente"`
	CobrancasPagas     int64   `json:"cobrancas_pagas"`
	CobrancasPendentes int64   `json:"cobrancas_pendentes"`
}

// GET /api/dashboard/summary
// Totais recebidos (PAGO) e pendentes (PENDENTE) das cobranças dos
// aluguéis do locador logado.
func GetDashboardSummary(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	type statusRow struct {
		Status string
		Total  float64
		Count  int64
	}

	var rows []statusRow
	q := db.Table("charges").
		Select("charges.status as status, coalesce(sum(charges.amount), 0) as total, count(*) as count").
		Joins("JOIN rentals ON rentals.id = charges.rental_id").
		Where("rentals.landlord_id = ?", user.ID).
		Group("charges.status")

	if err := q.Scan(&rows).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	var summary dashboardSummary
	for _, r := range rows {
		switch r.Status {
		case models.CHARGE_STATUS_PAID:
			summary.TotalRecebido = r.Total
			summary.CobrancasPagas = r.Count
		case models.CHARGE_STATUS_PENDING:
			summary.TotalPendente = r.Total
			summary.CobrancasPendentes = r.Count
		}
	}

	RespondSuccess(c, summary)
}

type monthlyRow struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// GET /api/dashboard/monthly
// Query params:
// - from=YYYY-MM (optional, default: 5 meses atrás)
// - to=YYYY-MM   (optional, default: mês atual)
// Retorna a série mensal de valores pagos (inclui meses com 0).
func GetDashboardMonthly(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	from, to, ok := parseMonthRange(c)
	if !ok {
		return
	}
	toExclusive := to.AddDate(0, 1, 0)

	// Expressão de mês depende do dialeto.
	dialect := strings.ToLower(db.Dialect().GetName())
	monthExpr := "strftime('%Y-%m', paid_at)"
	if strings.Contains(dialect, "postgres") {
		monthExpr = "to_char(date_trunc('month', paid_at), 'YYYY-MM')"
	}

	var rows []monthlyRow
	q := db.Table("payments").
		Select(fmt.Sprintf("%s as month, coalesce(sum(valor_pago), 0) as total", monthExpr)).
		Where("landlord_id = ?", user.ID).
		Where("paid_at IS NOT NULL AND paid_at >= ? AND paid_at < ?", from, toExclusive).
		Group("month").
		Order("month asc")

	if err := q.Scan(&rows).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	series := fillMonthlySeries(from, to, rows)
	RespondSuccess(c, gin.H{
		"from":   from.Format("2006-01"),
		"to":     to.Format("2006-01"),
		"series": series,
	})
}

// GET /api/wallet/payments
// Query params:
// - months=N (optional, default 4): janela de histórico.
// Histórico de pagamentos recebidos pelo locador (a tabela da wallet).
func GetWalletPayments(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	months := 4
	if v := c.Query("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 36 {
			RespondError(c, "months inválido", http.StatusBadRequest)
			return
		}
		months = n
	}
	since := time.Now().AddDate(0, -months, 0)

	var payments []models.Payment
	if err := db.Where("landlord_id = ? AND paid_at >= ?", user.ID, since).
		Order("paid_at desc").
		Find(&payments).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"payments": payments})
}

// parseMonthRange lê from/to (YYYY-MM) normalizados para o primeiro dia do
// mês. Defaults: últimos 6 meses.
func parseMonthRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	to := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	from := to.AddDate(0, -5, 0)

	if v := c.Query("from"); v != "" {
		t, err := time.ParseInLocation("2006-01", v, time.Local)
		if err != nil {
			RespondError(c, "from inválido (use YYYY-MM)", http.StatusBadRequest)
			return time.Time{}, time.Time{}, false
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.ParseInLocation("2006-01", v, time.Local)
		if err != nil {
			RespondError(c, "to inválido (use YYYY-MM)", http.StatusBadRequest)
			return time.Time{}, time.Time{}, false
		}
		to = t
	}
	if to.Before(from) {
		RespondError(c, "to anterior a from", http.StatusBadRequest)
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// fillMonthlySeries preenche meses sem pagamento com 0.
func fillMonthlySeries(from, to time.Time, rows []monthlyRow) []monthlyRow {
	byMonth := make(map[string]float64, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = r.Total
	}

	var series []monthlyRow
	for m := from; !m.After(to); m = m.AddDate(0, 1, 0) {
		label := m.Format("2006-01")
		series = append(series, monthlyRow{Month: label, Total: byMonth[label]})
	}
	return series
}
