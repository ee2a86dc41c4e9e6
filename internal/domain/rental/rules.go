// Package rental reglas de negocio del alquiler: contrato vigente, mes en curso,
// estado de documentos y presentación de importes (servicios de dominio puros).
package rental

import (
	"sort"
	"time"

	"github.com/braian-rent/braian-api/internal/domain/entity"
)

// ExpiringSoonWindow ventana a partir de la cual un documento se considera próximo a vencer.
const ExpiringSoonWindow = 30 * 24 * time.Hour

// MonthRange devuelve [inicio de mes, inicio del mes siguiente) de now en la zona loc.
func MonthRange(now time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// InMonth informa si t cae en el mes de now (zona loc).
func InMonth(t, now time.Time, loc *time.Location) bool {
	start, end := MonthRange(now, loc)
	return !t.Before(start) && t.Before(end)
}

// SelectActiveLease devuelve el contrato vigente en now; si hay varios, el de inicio más reciente.
// Sin contrato vigente devuelve nil (no se usa el último contrato como sustituto).
func SelectActiveLease(leases []*entity.Lease, now time.Time) *entity.Lease {
	var best *entity.Lease
	for _, l := range leases {
		if !l.IsActiveAt(now) {
			continue
		}
		if best == nil || l.StartDate.After(best.StartDate) {
			best = l
		}
	}
	return best
}

// SelectCurrentPayment devuelve el pago del contrato con vencimiento en el mes de now
// (el de vencimiento más reciente si hay varios).
func SelectCurrentPayment(payments []*entity.Payment, leaseID string, now time.Time, loc *time.Location) *entity.Payment {
	var best *entity.Payment
	for _, p := range payments {
		if p.LeaseID != leaseID || !InMonth(p.DueDate, now, loc) {
			continue
		}
		if best == nil || p.DueDate.After(best.DueDate) {
			best = p
		}
	}
	return best
}

// HasBlockingLease informa si algún contrato termina en now o después.
func HasBlockingLease(leases []*entity.Lease, now time.Time) bool {
	for _, l := range leases {
		if l.BlocksDeletion(now) {
			return true
		}
	}
	return false
}

// SortDocumentsNewestFirst ordena documentos por fecha de creación descendente.
func SortDocumentsNewestFirst(docs []*entity.Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
}
