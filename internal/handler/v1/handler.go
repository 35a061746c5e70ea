package v1

import (
	"github.com/clinagenda/clinagenda/internal/domain/schedule"
	"github.com/clinagenda/clinagenda/internal/service"
	"github.com/clinagenda/clinagenda/pkg/metrics"
)

type Handler struct {
	patients     *service.PatientService
	doctors      *service.DoctorService
	appointments *service.AppointmentService
	queries      *service.QueryService
	clock        *schedule.Clock
	col          *metrics.Collector
}

func NewHandler(
	patients *service.PatientService,
	doctors *service.DoctorService,
	appointments *service.AppointmentService,
	queries *service.QueryService,
	clock *schedule.Clock,
	col *metrics.Collector,
) *Handler {
	return &Handler{
		patients:     patients,
		doctors:      doctors,
		appointments: appointments,
		queries:      queries,
		clock:        clock,
		col:          col,
	}
}
