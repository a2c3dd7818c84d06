package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
	"github.com/tu-usuario/erp-multitenant/internal/domain/repository"
	"github.com/tu-usuario/erp-multitenant/pkg/logger"
)

// Event describe una acción a dejar en el audit trail.
type Event struct {
	CompanyID  string
	UserID     string
	Action     string // create, update, delete, approve...
	Resource   string // company, product, sales...
	ResourceID string
	IPAddress  string
	UserAgent  string
}

// Recorder escribe el audit trail fuera del camino de la request: la
// escritura corre en su propia goroutine y un fallo solo se loguea, nunca
// afecta la respuesta al cliente.
type Recorder struct {
	logs repository.ActivityLogRepository
	log  *logger.Logger
}

// NewRecorder crea el grabador de auditoría.
func NewRecorder(logs repository.ActivityLogRepository, log *logger.Logger) *Recorder {
	return &Recorder{logs: logs, log: log}
}

// Record encola la escritura del evento y retorna de inmediato.
func (r *Recorder) Record(ev Event) {
	entry := &entity.ActivityLog{
		ID:         uuid.NewString(),
		CompanyID:  ev.CompanyID,
		UserID:     ev.UserID,
		Action:     ev.Action,
		Resource:   ev.Resource,
		ResourceID: ev.ResourceID,
		IPAddress:  ev.IPAddress,
		UserAgent:  ev.UserAgent,
		CreatedAt:  time.Now(),
	}
	go func() {
		if err := r.logs.Create(entry); err != nil {
			r.log.Error().Err(err).
				Str("action", ev.Action).
				Str("resource", ev.Resource).
				Msg("no se pudo escribir el audit trail")
		}
	}()
}

// List consulta el audit trail bajo el alcance del principal.
func (r *Recorder) List(p access.Principal, f repository.ActivityLogFilter) ([]*entity.ActivityLog, int, error) {
	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, 0, err
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	return r.logs.List(scope, f)
}
