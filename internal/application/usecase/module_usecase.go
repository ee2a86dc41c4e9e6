package usecase

import (
	"sort"

	"github.com/braian-rent/braian-api/pkg/config"
)

// Nombres de funcionalidades conmutables por entorno.
const (
	FeatureChat          = "chat"
	FeatureNotifications = "notifications"
	FeatureAnalytics     = "analytics"
	FeatureSwagger       = "swagger"
)

// FeatureService informa qué funcionalidades están activas en este despliegue.
// Es el único punto de la aplicación que conoce las banderas ENABLE_*.
type FeatureService struct {
	flags map[string]bool
}

// NewFeatureService construye el servicio a partir de la configuración.
func NewFeatureService(f config.FeatureFlags) *FeatureService {
	return &FeatureService{flags: map[string]bool{
		FeatureChat:          f.Chat,
		FeatureNotifications: f.Notifications,
		FeatureAnalytics:     f.Analytics,
		FeatureSwagger:       f.Swagger,
	}}
}

// Enabled informa si la funcionalidad está activa. Un nombre desconocido devuelve false.
func (s *FeatureService) Enabled(name string) bool {
	return s.flags[name]
}

// All copia de todas las banderas.
func (s *FeatureService) All() map[string]bool {
	out := make(map[string]bool, len(s.flags))
	for k, v := range s.flags {
		out[k] = v
	}
	return out
}

// Names nombres ordenados de las funcionalidades activas.
func (s *FeatureService) Names() []string {
	var out []string
	for k, v := range s.flags {
		if v {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
