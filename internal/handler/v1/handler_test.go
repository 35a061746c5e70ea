package v1_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clinagenda/clinagenda/internal/domain/schedule"
	v1 "github.com/clinagenda/clinagenda/internal/handler/v1"
	"github.com/clinagenda/clinagenda/internal/middleware"
	"github.com/clinagenda/clinagenda/internal/service"
	"github.com/clinagenda/clinagenda/internal/store/jsonfile"
	"github.com/clinagenda/clinagenda/pkg/metrics"
)

// The collector registers on the default prometheus registry, so the whole
// test package shares a single instance.
var testCollector = metrics.NewCollector("clinagenda_test")

var frozenNow = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	st, err := jsonfile.Open(t.TempDir())
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	clock := schedule.NewClockAt(0, frozenNow)
	log := zap.NewNop()

	patients := service.NewPatientService(st.Patients(), st.Appointments(), clock, log)
	doctors := service.NewDoctorService(st.Doctors(), log)
	appointments := service.NewAppointmentService(st.Appointments(), st.Patients(), st.Doctors(), clock, log)
	queries := service.NewQueryService(st.Appointments(), st.Doctors(), clock, log)

	h := v1.NewHandler(patients, doctors, appointments, queries, clock, testCollector)
	rl := middleware.NewRateLimiter(1000, 1000)
	return v1.NewRouter(h, log, testCollector, rl)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decoding %q: %v", method, path, w.Body.String(), err)
	}
	return w, env
}

func createPatient(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w, env := do(t, r, http.MethodPost, "/api/pacientes",
		`{"nombre":"Ana Torres","edad":35,"telefono":"555-0101","email":"ana@x.com"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("creating patient: %d %s", w.Code, w.Body.String())
	}
	var p struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &p); err != nil {
		t.Fatal(err)
	}
	return p.ID
}

func createDoctor(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w, env := do(t, r, http.MethodPost, "/api/doctores",
		`{"nombre":"Dra. García","especialidad":"Cardiología","horarioInicio":"09:00","horarioFin":"12:00","diasDisponibles":["Lunes"]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("creating doctor: %d %s", w.Code, w.Body.String())
	}
	var d struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &d); err != nil {
		t.Fatal(err)
	}
	return d.ID
}

func createAppointment(t *testing.T, r *gin.Engine, pacienteID, doctorID, fecha, hora string) string {
	t.Helper()
	body := `{"pacienteId":"` + pacienteID + `","doctorId":"` + doctorID + `","fecha":"` + fecha + `","hora":"` + hora + `","motivo":"Consulta"}`
	w, env := do(t, r, http.MethodPost, "/api/citas", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("creating appointment: %d %s", w.Code, w.Body.String())
	}
	var a struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &a); err != nil {
		t.Fatal(err)
	}
	return a.ID
}

func TestRegisterPatientEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/pacientes",
		`{"nombre":"Ana Torres","edad":35,"telefono":"555-0101","email":"ana@x.com"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if !env.Success {
		t.Error("success = false, want true")
	}
	var p struct {
		ID            string `json:"id"`
		FechaRegistro string `json:"fechaRegistro"`
	}
	if err := json.Unmarshal(env.Data, &p); err != nil {
		t.Fatal(err)
	}
	if p.ID != "P001" {
		t.Errorf("id = %s, want P001", p.ID)
	}
	if p.FechaRegistro != "2025-06-02" {
		t.Errorf("fechaRegistro = %s, want 2025-06-02", p.FechaRegistro)
	}
}

func TestRegisterPatientDuplicateEmail(t *testing.T) {
	r := newTestRouter(t)
	createPatient(t, r)

	w, env := do(t, r, http.MethodPost, "/api/pacientes",
		`{"nombre":"Otra","edad":40,"telefono":"555","email":"ana@x.com"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if env.Success {
		t.Error("success = true, want false")
	}
	if env.Message != "Este email ya está registrado, ingresa otro" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestGetPatientNotFound(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodGet, "/api/pacientes/P999", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if env.Message != "ID no encontrado" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestMalformedBody(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/pacientes", `{"nombre":`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if env.Message != "Cuerpo de la solicitud inválido" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestDoctorsBySpecialtyNotFound(t *testing.T) {
	r := newTestRouter(t)
	createDoctor(t, r)

	w, _ := do(t, r, http.MethodGet, "/api/doctores/especialidad/Cardiolog%C3%ADa", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	w, env := do(t, r, http.MethodGet, "/api/doctores/especialidad/Dermatolog%C3%ADa", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if env.Message != "No se encontraron doctores con esa especialidad" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestScheduleAndCancelFlow(t *testing.T) {
	r := newTestRouter(t)
	pid := createPatient(t, r)
	did := createDoctor(t, r)

	id := createAppointment(t, r, pid, did, "2025-06-09", "10:00")
	if id != "C001" {
		t.Errorf("id = %s, want C001", id)
	}

	w, env := do(t, r, http.MethodPost, "/api/citas",
		`{"pacienteId":"`+pid+`","doctorId":"`+did+`","fecha":"2025-06-09","hora":"10:00","motivo":"Otra"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("double booking: status = %d, want 400", w.Code)
	}
	if env.Message != "El doctor ya tiene una cita agendada en esa fecha y hora" {
		t.Errorf("message = %q", env.Message)
	}

	w, env = do(t, r, http.MethodPut, "/api/citas/"+id+"/cancelar", "")
	if w.Code != http.StatusOK {
		t.Errorf("cancel: status = %d, want 200", w.Code)
	}
	if env.Message != "Cita cancelada exitosamente" {
		t.Errorf("message = %q", env.Message)
	}

	w, env = do(t, r, http.MethodPut, "/api/citas/"+id+"/cancelar", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("second cancel: status = %d, want 400", w.Code)
	}
	if env.Message != "Solo se pueden cancelar citas en estado programada" {
		t.Errorf("message = %q", env.Message)
	}

	w, _ = do(t, r, http.MethodPut, "/api/citas/C999/cancelar", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown id: status = %d, want 404", w.Code)
	}
}

func TestScheduleIgnoresClientEstado(t *testing.T) {
	r := newTestRouter(t)
	pid := createPatient(t, r)
	did := createDoctor(t, r)

	_, env := do(t, r, http.MethodPost, "/api/citas",
		`{"pacienteId":"`+pid+`","doctorId":"`+did+`","fecha":"2025-06-09","hora":"10:00","motivo":"Consulta","estado":"completada"}`)
	var a struct {
		Estado string `json:"estado"`
	}
	if err := json.Unmarshal(env.Data, &a); err != nil {
		t.Fatal(err)
	}
	if a.Estado != "programada" {
		t.Errorf("estado = %s, want programada", a.Estado)
	}
}

func TestListAppointmentsFilters(t *testing.T) {
	r := newTestRouter(t)
	pid := createPatient(t, r)
	did := createDoctor(t, r)
	createAppointment(t, r, pid, did, "2025-06-09", "09:00")
	createAppointment(t, r, pid, did, "2025-06-16", "09:00")
	id := createAppointment(t, r, pid, did, "2025-06-09", "10:00")
	do(t, r, http.MethodPut, "/api/citas/"+id+"/cancelar", "")

	w, env := do(t, r, http.MethodGet, "/api/citas?fecha=2025-06-09", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var list []json.RawMessage
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Errorf("fecha filter: len = %d, want 2", len(list))
	}

	_, env = do(t, r, http.MethodGet, "/api/citas?estado=cancelada", "")
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("estado filter: len = %d, want 1", len(list))
	}
}

func TestAvailableDoctorsEchoesDefaults(t *testing.T) {
	r := newTestRouter(t)
	createDoctor(t, r)

	req := httptest.NewRequest(http.MethodGet, "/api/buscar/doctores/disponibles", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Fecha   string          `json:"fecha"`
		Hora    string          `json:"hora"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Fecha != "2025-06-02" || resp.Hora != "10:00" {
		t.Errorf("defaults = %s %s, want 2025-06-02 10:00", resp.Fecha, resp.Hora)
	}

	var doctors []json.RawMessage
	if err := json.Unmarshal(resp.Data, &doctors); err != nil {
		t.Fatal(err)
	}
	// Monday 10:00 falls inside the doctor's hours.
	if len(doctors) != 1 {
		t.Errorf("len = %d, want 1", len(doctors))
	}
}

func TestUpcomingAppointmentsAhoraParam(t *testing.T) {
	r := newTestRouter(t)
	pid := createPatient(t, r)
	did := createDoctor(t, r)
	createAppointment(t, r, pid, did, "2025-06-09", "10:00")

	w, env := do(t, r, http.MethodGet, "/api/notificaciones/citas-proximas?ahora=2025-06-09T00:00:00Z", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var list []json.RawMessage
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("len = %d, want 1", len(list))
	}

	w, env = do(t, r, http.MethodGet, "/api/notificaciones/citas-proximas?ahora=yesterday", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad ahora: status = %d, want 400", w.Code)
	}
	if env.Message != "Formato de ahora inválido, usa RFC3339" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestBusiestDoctorEmptyDataset(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodGet, "/api/estadisticas/doctores", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var stats struct {
		DoctorID   *string `json:"doctorId"`
		TotalCitas int     `json:"totalCitas"`
	}
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatal(err)
	}
	if stats.DoctorID != nil || stats.TotalCitas != 0 {
		t.Errorf("stats = %+v, want null doctorId and 0", stats)
	}
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !env.Success {
		t.Error("success = false")
	}
}
