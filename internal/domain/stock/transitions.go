package stock

import (
	"time"

	"github.com/mercafresh/backoffice-api/internal/domain"
	"github.com/mercafresh/backoffice-api/internal/domain/entity"
)

// Acciones sobre el ciclo de vida de un movimiento.
const (
	ActionApprove  = "approve"
	ActionStart    = "start"
	ActionComplete = "complete"
	ActionCancel   = "cancel"
)

// NextStatus resuelve la transición de estado para una acción dada.
//
//	DRAFT   --approve--> IN_PROGRESS (o PLANNED si scheduledAt está en el futuro)
//	PLANNED --start----> IN_PROGRESS
//	IN_PROGRESS --complete--> COMPLETED
//	DRAFT/PLANNED --cancel--> CANCELLED
//
// COMPLETED y CANCELLED son terminales. Una acción desconocida retorna ValidationError;
// una transición no permitida retorna ErrInvalidTransition (el estado no cambia).
func NextStatus(current, action string, scheduledAt *time.Time, now time.Time) (string, error) {
	switch action {
	case ActionApprove:
		if current != entity.MovementStatusDRAFT {
			return "", domain.ErrInvalidTransition
		}
		if scheduledAt != nil && scheduledAt.After(now) {
			return entity.MovementStatusPLANNED, nil
		}
		return entity.MovementStatusINPROGRESS, nil
	case ActionStart:
		if current != entity.MovementStatusPLANNED {
			return "", domain.ErrInvalidTransition
		}
		return entity.MovementStatusINPROGRESS, nil
	case ActionComplete:
		if current != entity.MovementStatusINPROGRESS {
			return "", domain.ErrInvalidTransition
		}
		return entity.MovementStatusCOMPLETED, nil
	case ActionCancel:
		if current != entity.MovementStatusDRAFT && current != entity.MovementStatusPLANNED {
			return "", domain.ErrInvalidTransition
		}
		return entity.MovementStatusCANCELLED, nil
	}
	return "", domain.NewValidationError("action", "debe ser approve, start, complete o cancel")
}
