package rental_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/braian-rent/braian-api/internal/domain/entity"
	"github.com/braian-rent/braian-api/internal/domain/rental"
)

var warsaw = mustLoad("Europe/Warsaw")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ──────────────────────────────────────────────────────────────────────────────
// Contrato vigente y mes en curso
// ──────────────────────────────────────────────────────────────────────────────

func TestSelectActiveLease_IgnoraVencidosYFuturos(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	expired := &entity.Lease{ID: "old", StartDate: now.AddDate(-2, 0, 0), EndDate: now.AddDate(-1, 0, 0)}
	active := &entity.Lease{ID: "cur", StartDate: now.AddDate(0, -6, 0), EndDate: now.AddDate(0, 6, 0)}
	future := &entity.Lease{ID: "fut", StartDate: now.AddDate(1, 0, 0), EndDate: now.AddDate(2, 0, 0)}

	got := rental.SelectActiveLease([]*entity.Lease{expired, future, active}, now)
	require.NotNil(t, got)
	assert.Equal(t, "cur", got.ID)
}

func TestSelectActiveLease_SinVigenteDevuelveNil(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	expired := &entity.Lease{ID: "old", StartDate: now.AddDate(-2, 0, 0), EndDate: now.AddDate(0, 0, -1)}

	assert.Nil(t, rental.SelectActiveLease([]*entity.Lease{expired}, now),
		"no debe usarse el último contrato cuando ninguno está vigente")
}

func TestSelectActiveLease_LimitesInclusivos(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	endsNow := &entity.Lease{ID: "a", StartDate: now.AddDate(0, -1, 0), EndDate: now}
	assert.NotNil(t, rental.SelectActiveLease([]*entity.Lease{endsNow}, now))

	startsNow := &entity.Lease{ID: "b", StartDate: now, EndDate: now.AddDate(0, 1, 0)}
	assert.NotNil(t, rental.SelectActiveLease([]*entity.Lease{startsNow}, now))
}

func TestMonthRange_ZonaVarsovia(t *testing.T) {
	// 31 de marzo 23:30 UTC ya es 1 de abril en Varsovia (UTC+2).
	now := time.Date(2025, 3, 31, 23, 30, 0, 0, time.UTC)
	start, end := rental.MonthRange(now, warsaw)

	assert.Equal(t, time.April, start.Month())
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, time.May, end.Month())
}

func TestSelectCurrentPayment_SoloMesEnCurso(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	prev := &entity.Payment{ID: "feb", LeaseID: "l1", DueDate: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)}
	cur := &entity.Payment{ID: "mar", LeaseID: "l1", DueDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)}
	other := &entity.Payment{ID: "x", LeaseID: "l2", DueDate: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)}

	got := rental.SelectCurrentPayment([]*entity.Payment{prev, cur, other}, "l1", now, time.UTC)
	require.NotNil(t, got)
	assert.Equal(t, "mar", got.ID)

	assert.Nil(t, rental.SelectCurrentPayment([]*entity.Payment{prev}, "l1", now, time.UTC))
}

func TestHasBlockingLease(t *testing.T) {
	now := time.Now()
	expired := &entity.Lease{StartDate: now.AddDate(-1, 0, 0), EndDate: now.AddDate(0, 0, -1)}
	future := &entity.Lease{StartDate: now.AddDate(0, 1, 0), EndDate: now.AddDate(1, 0, 0)}

	assert.False(t, rental.HasBlockingLease([]*entity.Lease{expired}, now))
	assert.True(t, rental.HasBlockingLease([]*entity.Lease{expired, future}, now),
		"un contrato futuro también bloquea el borrado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado de documentos
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluateDocument(t *testing.T) {
	now := time.Now()
	tomorrow := now.Add(24 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)
	nextYear := now.AddDate(1, 0, 0)

	cases := []struct {
		name    string
		docType string
		expires *time.Time
		want    rental.DocumentStatus
	}{
		{"vence mañana", entity.DocumentLeaseAgreement, &tomorrow, rental.DocumentExpiringSoon},
		{"venció ayer", entity.DocumentLeaseAgreement, &yesterday, rental.DocumentExpired},
		{"sin vencimiento", entity.DocumentLeaseAgreement, nil, rental.DocumentValid},
		{"vence lejos", entity.DocumentOther, &nextYear, rental.DocumentValid},
		{"seguro sin vencimiento", entity.DocumentInsurance, nil, rental.DocumentReviewRequired},
		{"protocolo sin vencimiento", entity.DocumentHandoverProtocol, nil, rental.DocumentReviewRequired},
		{"seguro vencido", entity.DocumentInsurance, &yesterday, rental.DocumentExpired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := &entity.Document{Type: tc.docType, ExpiresAt: tc.expires}
			assert.Equal(t, tc.want, rental.EvaluateDocument(doc, now))
		})
	}
}

func TestDocumentStatus_Color(t *testing.T) {
	assert.Equal(t, "red", rental.DocumentExpired.Color())
	assert.Equal(t, "red", rental.DocumentReviewRequired.Color())
	assert.Equal(t, "yellow", rental.DocumentExpiringSoon.Color())
	assert.Equal(t, "green", rental.DocumentValid.Color())
}

func TestDocumentLabel(t *testing.T) {
	assert.Equal(t, "Umowa Najmu", rental.DocumentLabel(entity.DocumentLeaseAgreement))
	assert.Equal(t, "Ubezpieczenie OC", rental.DocumentLabel(entity.DocumentInsurance))
	assert.Equal(t, "DESCONOCIDO", rental.DocumentLabel("DESCONOCIDO"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Presentación
// ──────────────────────────────────────────────────────────────────────────────

func TestInitials(t *testing.T) {
	assert.Equal(t, "JK", rental.Initials("Jan Kowalski"))
	assert.Equal(t, "AN", rental.Initials("Anna Najemca Nowak"))
	assert.Equal(t, "ŁU", rental.Initials("łukasz"))
	assert.Equal(t, "", rental.Initials(""))
}

func TestFormatAmount_ComaDecimal(t *testing.T) {
	out := rental.FormatAmount(decimal.RequireFromString("2500.5"))
	assert.Contains(t, out, ",5")
	assert.NotContains(t, out, ".")
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "05.03.2025", rental.FormatDate(d, time.UTC))
}

func TestPaymentStatusBadge(t *testing.T) {
	assert.Equal(t, "red", rental.PaymentStatusBadge(entity.PaymentUnpaid).Color)
	assert.Equal(t, "yellow", rental.PaymentStatusBadge(entity.PaymentPartiallyPaid).Color)
	assert.Equal(t, "Opłacona", rental.PaymentStatusBadge(entity.PaymentPaid).Label)
}

func TestClampIndex(t *testing.T) {
	assert.Equal(t, 0, rental.ClampIndex(-3, 4))
	assert.Equal(t, 3, rental.ClampIndex(10, 4))
	assert.Equal(t, 2, rental.ClampIndex(2, 4))
	assert.Equal(t, 0, rental.ClampIndex(1, 0))
}
