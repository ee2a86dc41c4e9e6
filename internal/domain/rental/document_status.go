package rental

import (
	"time"

	"github.com/braian-rent/braian-api/internal/domain/entity"
)

// DocumentStatus estado de un documento evaluado en el momento de la lectura.
type DocumentStatus string

const (
	DocumentExpired        DocumentStatus = "expired"
	DocumentReviewRequired DocumentStatus = "review_required"
	DocumentExpiringSoon   DocumentStatus = "expiring_soon"
	DocumentValid          DocumentStatus = "valid"
)

// Color indicador del panel: red, yellow o green.
func (s DocumentStatus) Color() string {
	switch s {
	case DocumentExpired, DocumentReviewRequired:
		return "red"
	case DocumentExpiringSoon:
		return "yellow"
	default:
		return "green"
	}
}

// Label texto mostrado al propietario.
func (s DocumentStatus) Label() string {
	switch s {
	case DocumentExpired:
		return "Wygasł"
	case DocumentReviewRequired:
		return "Wymaga weryfikacji"
	case DocumentExpiringSoon:
		return "Wkrótce wygasa"
	default:
		return "Aktualny"
	}
}

// EvaluateDocument aplica, en orden: vencido, tipo que requiere revisión, próximo a vencer, válido.
func EvaluateDocument(doc *entity.Document, now time.Time) DocumentStatus {
	if doc.ExpiresAt != nil && doc.ExpiresAt.Before(now) {
		return DocumentExpired
	}
	if doc.Type == entity.DocumentInsurance || doc.Type == entity.DocumentHandoverProtocol {
		return DocumentReviewRequired
	}
	if doc.ExpiresAt != nil && doc.ExpiresAt.Before(now.Add(ExpiringSoonWindow)) {
		return DocumentExpiringSoon
	}
	return DocumentValid
}

var documentLabels = map[string]string{
	entity.DocumentLeaseAgreement:   "Umowa Najmu",
	entity.DocumentInsurance:        "Ubezpieczenie OC",
	entity.DocumentHandoverProtocol: "Protokół Zdawczo-Odbiorczy",
	entity.DocumentOther:            "Inny dokument",
}

// DocumentLabel nombre polaco del tipo; el propio tipo si no se conoce.
func DocumentLabel(docType string) string {
	if l, ok := documentLabels[docType]; ok {
		return l
	}
	return docType
}
