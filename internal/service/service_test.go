package service_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/clinagenda/clinagenda/internal/domain/appointment"
	"github.com/clinagenda/clinagenda/internal/domain/doctor"
	"github.com/clinagenda/clinagenda/internal/domain/patient"
	"github.com/clinagenda/clinagenda/internal/domain/schedule"
	"github.com/clinagenda/clinagenda/internal/service"
	"github.com/clinagenda/clinagenda/internal/store/jsonfile"
)

// The clinic clock is frozen at Monday 2025-06-02 10:00 UTC with a zero
// offset, so weekday names in fixtures line up with the civil calendar.
var frozenNow = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store        *jsonfile.Store
	clock        *schedule.Clock
	patients     *service.PatientService
	doctors      *service.DoctorService
	appointments *service.AppointmentService
	queries      *service.QueryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := jsonfile.Open(t.TempDir())
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	clock := schedule.NewClockAt(0, frozenNow)
	log := zap.NewNop()
	return &fixture{
		store:        st,
		clock:        clock,
		patients:     service.NewPatientService(st.Patients(), st.Appointments(), clock, log),
		doctors:      service.NewDoctorService(st.Doctors(), log),
		appointments: service.NewAppointmentService(st.Appointments(), st.Patients(), st.Doctors(), clock, log),
		queries:      service.NewQueryService(st.Appointments(), st.Doctors(), clock, log),
	}
}

func (f *fixture) registerPatient(t *testing.T, email string) *patient.Patient {
	t.Helper()
	p, err := f.patients.RegisterPatient(context.Background(), &patient.CreatePatientCommand{
		Nombre: "Ana Torres", Edad: 35, Telefono: "555-0101", Email: email,
	})
	if err != nil {
		t.Fatalf("registering patient: %v", err)
	}
	return p
}

// registerDoctor creates a doctor working Mondays 09:00-12:00 by default.
func (f *fixture) registerDoctor(t *testing.T, nombre, especialidad string, dias ...string) *doctor.Doctor {
	t.Helper()
	if len(dias) == 0 {
		dias = []string{"Lunes"}
	}
	d, err := f.doctors.RegisterDoctor(context.Background(), &doctor.CreateDoctorCommand{
		Nombre: nombre, Especialidad: especialidad,
		HorarioInicio: "09:00", HorarioFin: "12:00",
		DiasDisponibles: dias,
	})
	if err != nil {
		t.Fatalf("registering doctor: %v", err)
	}
	return d
}

func (f *fixture) schedule(t *testing.T, pacienteID, doctorID, fecha, hora string) *appointment.Appointment {
	t.Helper()
	a, err := f.appointments.ScheduleAppointment(context.Background(), &appointment.CreateAppointmentCommand{
		PacienteID: pacienteID, DoctorID: doctorID, Fecha: fecha, Hora: hora, Motivo: "Consulta general",
	})
	if err != nil {
		t.Fatalf("scheduling appointment: %v", err)
	}
	return a
}
