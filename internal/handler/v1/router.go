package v1

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clinagenda/clinagenda/internal/middleware"
	"github.com/clinagenda/clinagenda/pkg/metrics"
)

// NewRouter wires the full API surface. The rate limiter applies to write
// endpoints only; reads stay unthrottled.
func NewRouter(h *Handler, log *zap.Logger, col *metrics.Collector, rl *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(log),
		middleware.Metrics(col),
	)

	limited := middleware.RateLimit(rl)

	r.GET("/healthz", func(c *gin.Context) {
		respondOK(c, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := r.Group("/api")

	api.POST("/pacientes", limited, h.registerPatient)
	api.GET("/pacientes", h.listPatients)
	api.GET("/pacientes/:id", h.getPatient)
	api.PUT("/pacientes/:id", limited, h.updatePatient)
	api.GET("/pacientes/:id/historial", h.patientHistory)

	api.POST("/doctores", limited, h.registerDoctor)
	api.GET("/doctores", h.listDoctors)
	api.GET("/doctores/:id", h.getDoctor)
	api.PUT("/doctores/:id", limited, h.updateDoctor)
	api.GET("/doctores/especialidad/:especialidad", h.doctorsBySpecialty)

	api.POST("/citas", limited, h.scheduleAppointment)
	api.GET("/citas", h.listAppointments)
	api.GET("/citas/:id", h.getAppointment)
	api.PUT("/citas/:id/cancelar", limited, h.cancelAppointment)
	api.GET("/citas/doctor/:doctorId", h.doctorAgenda)

	api.GET("/estadisticas/doctores", h.busiestDoctor)
	api.GET("/estadisticas/especialidades", h.mostRequestedSpecialty)

	api.GET("/buscar/doctores/disponibles", h.availableDoctors)
	api.GET("/notificaciones/citas-proximas", h.upcomingAppointments)

	return r
}
