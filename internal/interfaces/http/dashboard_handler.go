package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/braian-rent/braian-api/internal/application/usecase"
	"github.com/braian-rent/braian-api/internal/domain/entity"
	"github.com/braian-rent/braian-api/internal/domain/rental"
)

// DashboardHandler panel del propietario renderizado en servidor.
type DashboardHandler struct {
	uc       *usecase.PropertyUseCase
	features *usecase.FeatureService
	loc      *time.Location
	now      func() time.Time
	responder
}

// NewDashboardHandler construye el handler. loc es la zona de las fechas mostradas.
func NewDashboardHandler(uc *usecase.PropertyUseCase, features *usecase.FeatureService, loc *time.Location, r responder) *DashboardHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardHandler{uc: uc, features: features, loc: loc, now: time.Now, responder: r}
}

type propertyCard struct {
	Index      int
	ID         string
	Address    string
	City       string
	PostalCode string
	Selected   bool
	Tenant     *tenantView
	Payment    *paymentView
	Documents  []documentView
}

type tenantView struct {
	Name     string
	Initials string
	Email    string
	Phone    string
}

type paymentView struct {
	AmountDue   string
	AmountPaid  string
	Outstanding string
	DueDate     string
	Label       string
	Color       string
}

type documentView struct {
	Label     string
	FileURL   string
	ExpiresAt string
	Status    string
	Color     string
}

// Index godoc
// @Summary      Panel del propietario
// @Tags         dashboard
// @Produce      html
// @Param        property  query  int  false  "Índice de la propiedad seleccionada"
// @Success      200
// @Router       /dashboard [get]
func (h *DashboardHandler) Index(c *fiber.Ctx) error {
	sess := GetSession(c)
	list, err := h.uc.ListDetails(c.UserContext(), sess.UserID)
	if err != nil {
		h.internal(c, err)
		return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{
			"Title":        "Błąd",
			"ErrorCode":    fiber.StatusInternalServerError,
			"ErrorMessage": MsgFetchPropertiesFailed,
		})
	}

	now := h.now()
	selected := rental.ClampIndex(c.QueryInt("property", 0), len(list))
	cards := make([]propertyCard, 0, len(list))
	rent := decimal.Zero
	for i, d := range list {
		if d.ActiveLease != nil {
			rent = rent.Add(d.ActiveLease.RentAmount)
		}
		cards = append(cards, h.card(i, i == selected, d, now))
	}

	bind := fiber.Map{
		"Title":           "Panel",
		"UserName":        sess.Name,
		"UserEmail":       sess.Email,
		"UserInitials":    rental.Initials(sess.Name),
		"Properties":      cards,
		"PropertiesCount": len(cards),
		"RentTotal":       rental.FormatAmount(rent),
		"ShowAnalytics":   h.features != nil && h.features.Enabled(usecase.FeatureAnalytics),
	}
	if len(cards) > 0 {
		bind["Current"] = cards[selected]
	}
	return c.Render("dashboard/index", bind)
}

func (h *DashboardHandler) card(i int, selected bool, d *entity.PropertyDetails, now time.Time) propertyCard {
	card := propertyCard{
		Index:      i,
		ID:         d.ID,
		Address:    d.Address,
		City:       d.City,
		PostalCode: d.PostalCode,
		Selected:   selected,
	}
	if t := d.Tenant; t != nil {
		card.Tenant = &tenantView{Name: t.Name, Initials: rental.Initials(t.Name), Email: t.Email, Phone: t.Phone}
	}
	if p := d.CurrentPayment; p != nil {
		badge := rental.PaymentStatusBadge(p.Status)
		pv := &paymentView{
			AmountDue:   rental.FormatAmount(p.AmountDue),
			Outstanding: rental.FormatAmount(p.Outstanding()),
			DueDate:     rental.FormatDate(p.DueDate, h.loc),
			Label:       badge.Label,
			Color:       badge.Color,
		}
		if p.AmountPaid != nil {
			pv.AmountPaid = rental.FormatAmount(*p.AmountPaid)
		}
		card.Payment = pv
	}
	for _, doc := range d.Documents {
		status := rental.EvaluateDocument(doc, now)
		dv := documentView{
			Label:   rental.DocumentLabel(doc.Type),
			FileURL: doc.FileURL,
			Status:  status.Label(),
			Color:   status.Color(),
		}
		if doc.ExpiresAt != nil {
			dv.ExpiresAt = rental.FormatDate(*doc.ExpiresAt, h.loc)
		}
		card.Documents = append(card.Documents, dv)
	}
	return card
}
