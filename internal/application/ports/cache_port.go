package ports

import "github.com/braian-rent/braian-api/internal/domain/entity"

// PropertyListCache caché del listado de propiedades por propietario.
// Toda escritura sobre las propiedades de un propietario debe llamar a Invalidate.
// Get devuelve la generación observada; Set la recibe y no guarda nada si entretanto
// hubo un Invalidate, así una lectura lenta no repone un listado anterior a la escritura.
type PropertyListCache interface {
	Get(ownerID string) (list []*entity.PropertyDetails, gen uint64, ok bool)
	Set(ownerID string, list []*entity.PropertyDetails, gen uint64) bool
	Invalidate(ownerID string)
}
