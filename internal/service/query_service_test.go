package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/clinagenda/clinagenda/internal/domain/appointment"
)

// seedAppointment inserts an appointment directly in the given state,
// bypassing the scheduling checks.
func (f *fixture) seedAppointment(t *testing.T, pacienteID, doctorID, fecha, hora string, estado appointment.Estado) *appointment.Appointment {
	t.Helper()
	a := &appointment.Appointment{
		PacienteID: pacienteID, DoctorID: doctorID,
		Fecha: fecha, Hora: hora,
		Motivo: "Consulta general", Estado: estado,
	}
	if err := f.store.Appointments().Create(context.Background(), a); err != nil {
		t.Fatalf("seeding appointment: %v", err)
	}
	return a
}

func TestAvailableDoctors(t *testing.T) {
	f := newFixture(t)
	p := f.registerPatient(t, "ana@x.com")
	booked := f.registerDoctor(t, "Dra. García", "Cardiología")
	free := f.registerDoctor(t, "Dr. Ruiz", "Pediatría")
	tuesdayOnly := f.registerDoctor(t, "Dr. Vega", "General", "Martes")

	f.schedule(t, p.ID, booked.ID, "2025-06-09", "10:00")

	got, err := f.queries.AvailableDoctors(context.Background(), "2025-06-09", "10:00")
	if err != nil {
		t.Fatal(err)
	}
	ids := make(map[string]bool, len(got))
	for _, d := range got {
		ids[d.ID] = true
	}
	if ids[booked.ID] {
		t.Error("doctor with programada appointment at slot reported available")
	}
	if !ids[free.ID] {
		t.Error("free doctor missing from availability")
	}
	if ids[tuesdayOnly.ID] {
		t.Error("doctor off that weekday reported available")
	}
}

func TestAvailableDoctorsCompletedSlotDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	p := f.registerPatient(t, "ana@x.com")
	d := f.registerDoctor(t, "Dra. García", "Cardiología")

	f.seedAppointment(t, p.ID, d.ID, "2025-06-09", "10:00", appointment.EstadoCompletada)

	got, err := f.queries.AvailableDoctors(context.Background(), "2025-06-09", "10:00")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != d.ID {
		t.Errorf("completada slot should not block availability, got %d doctors", len(got))
	}
}

func TestAvailableDoctorsOutsideHours(t *testing.T) {
	f := newFixture(t)
	f.registerDoctor(t, "Dra. García", "Cardiología")

	got, err := f.queries.AvailableDoctors(context.Background(), "2025-06-09", "13:00")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %d doctors outside office hours, want 0", len(got))
	}
}

func TestUpcomingWithin24h(t *testing.T) {
	f := newFixture(t)
	p := f.registerPatient(t, "ana@x.com")
	d := f.registerDoctor(t, "Dra. García", "Cardiología", "Lunes", "Martes")

	ref := frozenNow // Monday 2025-06-02 10:00 UTC

	atRef := f.seedAppointment(t, p.ID, d.ID, "2025-06-02", "10:00", appointment.EstadoProgramada)
	atLimit := f.seedAppointment(t, p.ID, d.ID, "2025-06-03", "10:00", appointment.EstadoProgramada)
	f.seedAppointment(t, p.ID, d.ID, "2025-06-02", "09:00", appointment.EstadoProgramada)
	f.seedAppointment(t, p.ID, d.ID, "2025-06-03", "11:00", appointment.EstadoProgramada)
	f.seedAppointment(t, p.ID, d.ID, "2025-06-02", "11:00", appointment.EstadoCancelada)

	got, err := f.queries.UpcomingWithin24h(context.Background(), ref)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d appointments, want 2: %+v", len(got), got)
	}
	want := map[string]bool{atRef.ID: true, atLimit.ID: true}
	for _, a := range got {
		if !want[a.ID] {
			t.Errorf("unexpected appointment %s at %s %s", a.ID, a.Fecha, a.Hora)
		}
	}
}

func TestUpcomingWithin24hWindowFollowsReference(t *testing.T) {
	f := newFixture(t)
	p := f.registerPatient(t, "ana@x.com")
	d := f.registerDoctor(t, "Dra. García", "Cardiología", "Lunes", "Martes")

	early := f.seedAppointment(t, p.ID, d.ID, "2025-06-02", "10:00", appointment.EstadoProgramada)
	middle := f.seedAppointment(t, p.ID, d.ID, "2025-06-03", "09:00", appointment.EstadoProgramada)
	late := f.seedAppointment(t, p.ID, d.ID, "2025-06-03", "12:00", appointment.EstadoProgramada)

	collect := func(ref time.Time) map[string]bool {
		got, err := f.queries.UpcomingWithin24h(context.Background(), ref)
		if err != nil {
			t.Fatal(err)
		}
		ids := make(map[string]bool, len(got))
		for _, a := range got {
			ids[a.ID] = true
		}
		return ids
	}

	// Advancing the reference slides the window forward: the earliest
	// appointment drops out and a later one comes into range.
	first := collect(frozenNow)
	second := collect(frozenNow.Add(2 * time.Hour))

	if !first[early.ID] || !first[middle.ID] || first[late.ID] {
		t.Errorf("window at ref: got %v, want {%s %s}", first, early.ID, middle.ID)
	}
	if second[early.ID] || !second[middle.ID] || !second[late.ID] {
		t.Errorf("window at ref+2h: got %v, want {%s %s}", second, middle.ID, late.ID)
	}
}

func TestUpcomingWithin24hZeroRefUsesClock(t *testing.T) {
	f := newFixture(t)
	p := f.registerPatient(t, "ana@x.com")
	d := f.registerDoctor(t, "Dra. García", "Cardiología")

	f.seedAppointment(t, p.ID, d.ID, "2025-06-02", "11:00", appointment.EstadoProgramada)

	got, err := f.queries.UpcomingWithin24h(context.Background(), time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("got %d appointments, want 1", len(got))
	}
}

func TestBusiestDoctorEmpty(t *testing.T) {
	f := newFixture(t)

	stats, err := f.queries.BusiestDoctor(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.DoctorID != nil {
		t.Errorf("doctorId = %v, want nil", *stats.DoctorID)
	}
	if stats.TotalCitas != 0 {
		t.Errorf("totalCitas = %d, want 0", stats.TotalCitas)
	}
}

func TestBusiestDoctor(t *testing.T) {
	f := newFixture(t)
	p := f.registerPatient(t, "ana@x.com")
	d1 := f.registerDoctor(t, "Dra. García", "Cardiología")
	d2 := f.registerDoctor(t, "Dr. Ruiz", "Pediatría")

	f.seedAppointment(t, p.ID, d1.ID, "2025-06-09", "09:00", appointment.EstadoProgramada)
	f.seedAppointment(t, p.ID, d2.ID, "2025-06-09", "09:00", appointment.EstadoProgramada)
	f.seedAppointment(t, p.ID, d2.ID, "2025-06-09", "10:00", appointment.EstadoCancelada)

	stats, err := f.queries.BusiestDoctor(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.DoctorID == nil || *stats.DoctorID != d2.ID {
		t.Errorf("doctorId = %v, want %s", stats.DoctorID, d2.ID)
	}
	if stats.TotalCitas != 2 {
		t.Errorf("totalCitas = %d, want 2 (cancelled still counts)", stats.TotalCitas)
	}
}

func TestBusiestDoctorTieGoesToFirstSeen(t *testing.T) {
	f := newFixture(t)
	p := f.registerPatient(t, "ana@x.com")
	d1 := f.registerDoctor(t, "Dra. García", "Cardiología")
	d2 := f.registerDoctor(t, "Dr. Ruiz", "Pediatría")

	f.seedAppointment(t, p.ID, d2.ID, "2025-06-09", "09:00", appointment.EstadoProgramada)
	f.seedAppointment(t, p.ID, d1.ID, "2025-06-09", "10:00", appointment.EstadoProgramada)

	stats, err := f.queries.BusiestDoctor(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.DoctorID == nil || *stats.DoctorID != d2.ID {
		t.Errorf("doctorId = %v, want first-seen %s", stats.DoctorID, d2.ID)
	}
}

func TestMostRequestedSpecialty(t *testing.T) {
	f := newFixture(t)
	p := f.registerPatient(t, "ana@x.com")
	d1 := f.registerDoctor(t, "Dra. García", "Cardiología")
	d2 := f.registerDoctor(t, "Dr. Ruiz", "Cardiología")
	d3 := f.registerDoctor(t, "Dr. Vega", "Pediatría")

	f.seedAppointment(t, p.ID, d1.ID, "2025-06-09", "09:00", appointment.EstadoProgramada)
	f.seedAppointment(t, p.ID, d2.ID, "2025-06-09", "09:00", appointment.EstadoProgramada)
	f.seedAppointment(t, p.ID, d3.ID, "2025-06-09", "09:00", appointment.EstadoProgramada)

	stats, err := f.queries.MostRequestedSpecialty(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Especialidad == nil || *stats.Especialidad != "Cardiología" {
		t.Errorf("especialidad = %v, want Cardiología", stats.Especialidad)
	}
	if stats.TotalSolicitudes != 2 {
		t.Errorf("totalSolicitudes = %d, want 2", stats.TotalSolicitudes)
	}
}

func TestMostRequestedSpecialtySkipsDanglingDoctor(t *testing.T) {
	f := newFixture(t)
	p := f.registerPatient(t, "ana@x.com")
	d := f.registerDoctor(t, "Dra. García", "Cardiología")

	f.seedAppointment(t, p.ID, d.ID, "2025-06-09", "09:00", appointment.EstadoProgramada)
	f.seedAppointment(t, p.ID, "D999", "2025-06-09", "09:00", appointment.EstadoProgramada)
	f.seedAppointment(t, p.ID, "D999", "2025-06-09", "10:00", appointment.EstadoProgramada)

	stats, err := f.queries.MostRequestedSpecialty(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Especialidad == nil || *stats.Especialidad != "Cardiología" {
		t.Errorf("especialidad = %v, want Cardiología", stats.Especialidad)
	}
	if stats.TotalSolicitudes != 1 {
		t.Errorf("totalSolicitudes = %d, want 1", stats.TotalSolicitudes)
	}
}
