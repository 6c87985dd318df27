package vaccination

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-vaccination-tracker/internal/domain/pets"
	"pet-vaccination-tracker/internal/middleware"
	"pet-vaccination-tracker/internal/platform/dates"

	"github.com/go-chi/chi/v5"
)

// PetLookup resuelve la mascota verificando que el usuario sea el dueño.
type PetLookup interface {
	GetOwned(ctx context.Context, petID, userID string) (pets.Pet, error)
	ListByOwner(ctx context.Context, userID string) ([]pets.Pet, error)
}

// RegisterCatalogRoutes expone el catálogo y el cálculo de vencimientos; no requieren usuario.
func RegisterCatalogRoutes(r chi.Router, svc *Service) {
	r.Get("/protocols", listProtocolsHandler(svc))
	r.Get("/protocols/{protocolID}", getProtocolHandler(svc))
	r.Post("/vaccinations/next-due", nextDueHandler(svc))
}

func RegisterRoutes(r chi.Router, svc *Service, petSvc PetLookup) {
	r.Post("/pets/{petID}/vaccinations", createRecordHandler(svc, petSvc))
	r.Get("/pets/{petID}/vaccinations", listRecordsHandler(svc, petSvc))
	r.Get("/pets/{petID}/vaccinations/alerts", petAlertsHandler(svc, petSvc))
	r.Get("/pets/{petID}/vaccinations/{recordID}", getRecordHandler(svc, petSvc))
	r.Patch("/pets/{petID}/vaccinations/{recordID}", updateRecordHandler(svc, petSvc))
	r.Delete("/pets/{petID}/vaccinations/{recordID}", deleteRecordHandler(svc, petSvc))

	r.Get("/me/vaccination-alerts", myAlertsHandler(svc, petSvc))
}

type protocolResponse struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Species          []pets.Species `json:"species"`
	Description      string         `json:"description"`
	Prevents         []string       `json:"prevents"`
	RecommendedDoses []string       `json:"recommended_doses"`
	Importance       Importance     `json:"importance" enums:"essential,optional"`
	BoosterGuidance  string         `json:"booster_guidance"`
	MinimumAgeWeeks  *int           `json:"minimum_age_weeks,omitempty"`
}

type createRecordRequest struct {
	ProtocolID       string `json:"protocol_id"`
	VaccineName      string `json:"vaccine_name"` // obligatorio con protocol_id "other"
	DoseLabel        string `json:"dose_label"`
	AdministeredAt   string `json:"administered_at"` // YYYY-MM-DD
	BoosterFrequency string `json:"booster_frequency" enums:"weekly,monthly,yearly,every-3-years,single-dose-no-booster,no-booster,manual"`
	NextDueAt        string `json:"next_due_at"` // solo con booster_frequency manual
	Notes            string `json:"notes"`
}

type updateRecordRequest struct {
	ProtocolID       *string `json:"protocol_id"`
	VaccineName      *string `json:"vaccine_name"`
	DoseLabel        *string `json:"dose_label"`
	AdministeredAt   *string `json:"administered_at"`
	BoosterFrequency *string `json:"booster_frequency"`
	NextDueAt        *string `json:"next_due_at"`
	Notes            *string `json:"notes"`
}

type recordResponse struct {
	ID               string           `json:"id"`
	PetID            string           `json:"pet_id"`
	ProtocolID       string           `json:"protocol_id"`
	VaccineName      string           `json:"vaccine_name"`
	DoseLabel        string           `json:"dose_label"`
	AdministeredAt   string           `json:"administered_at"`
	BoosterFrequency BoosterFrequency `json:"booster_frequency,omitempty"`
	NextDueAt        string           `json:"next_due_at,omitempty"`
	Notes            string           `json:"notes"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

type alertResponse struct {
	ProtocolID  string    `json:"protocol_id"`
	VaccineName string    `json:"vaccine_name"`
	Kind        AlertKind `json:"kind" enums:"not_started_suggested,not_started_verify,overdue"`
	Message     string    `json:"message"`
	DueDate     string    `json:"due_date,omitempty"`
}

type petAlertsResponse struct {
	PetID   string          `json:"pet_id"`
	PetName string          `json:"pet_name"`
	Alerts  []alertResponse `json:"alerts"`
}

type nextDueRequest struct {
	AdministeredAt   string `json:"administered_at"`
	BoosterFrequency string `json:"booster_frequency"`
	NextDueAt        string `json:"next_due_at"`
}

type nextDueResponse struct {
	NextDueAt *string `json:"next_due_at"`
}

// listProtocolsHandler godoc
// @Summary Catálogo de protocolos
// @Description Sin `species` devuelve el catálogo completo. Con `species` incluye siempre el protocolo `other`.
// @Tags protocols
// @Produce json
// @Param species query string false "dog | cat | rabbit"
// @Success 200 {array} protocolResponse
// @Failure 400 {string} string "unknown species"
// @Router /protocols [get]
func listProtocolsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var items []Protocol
		if raw := strings.TrimSpace(r.URL.Query().Get("species")); raw != "" {
			sp := pets.Species(strings.ToLower(raw))
			if !sp.Valid() {
				http.Error(w, "unknown species", http.StatusBadRequest)
				return
			}
			items = svc.Catalog().ProtocolsFor(sp)
		} else {
			items = svc.Catalog().All()
		}

		out := make([]protocolResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toProtocolResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getProtocolHandler godoc
// @Summary Detalle de protocolo
// @Tags protocols
// @Produce json
// @Param protocolID path string true "ID del protocolo"
// @Success 200 {object} protocolResponse
// @Failure 404 {string} string "protocol not found"
// @Router /protocols/{protocolID} [get]
func getProtocolHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := svc.Catalog().Get(chi.URLParam(r, "protocolID"))
		if !ok {
			http.Error(w, "protocol not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toProtocolResponse(p))
	}
}

// nextDueHandler godoc
// @Summary Previsualizar próximo refuerzo
// @Description Calcula next_due_at sin guardar nada. Con frecuencia `manual` devuelve la fecha enviada.
// @Tags vaccinations
// @Accept json
// @Produce json
// @Param payload body nextDueRequest true "Fecha de aplicación y frecuencia"
// @Success 200 {object} nextDueResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Router /vaccinations/next-due [post]
func nextDueHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req nextDueRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		administered, err := parseDateField("administered_at", req.AdministeredAt)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		manual, err := parseOptionalDateField("next_due_at", req.NextDueAt)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		next, err := svc.PreviewNextDue(administered, req.BoosterFrequency, manual)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := nextDueResponse{}
		if next != nil {
			s := dates.Format(*next)
			resp.NextDueAt = &s
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// createRecordHandler godoc
// @Summary Registrar vacuna aplicada
// @Description `next_due_at` se calcula desde la frecuencia salvo en modo `manual`.
// @Tags vaccinations
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param payload body createRecordRequest true "Registro de vacunación"
// @Success 201 {object} recordResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/vaccinations [post]
func createRecordHandler(svc *Service, petSvc PetLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pet, ok := ownedPet(w, r, petSvc)
		if !ok {
			return
		}

		var req createRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		administered, err := parseDateField("administered_at", req.AdministeredAt)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		manual, err := parseOptionalDateField("next_due_at", req.NextDueAt)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rec, err := svc.Create(r.Context(), pet, CreateInput{
			ProtocolID:       req.ProtocolID,
			VaccineName:      req.VaccineName,
			DoseLabel:        req.DoseLabel,
			AdministeredAt:   administered,
			BoosterFrequency: req.BoosterFrequency,
			ManualNextDueAt:  manual,
			Notes:            req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

// listRecordsHandler godoc
// @Summary Historial de vacunas
// @Description Ordenado por fecha de aplicación, la más reciente primero.
// @Tags vaccinations
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} recordResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/vaccinations [get]
func listRecordsHandler(svc *Service, petSvc PetLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pet, ok := ownedPet(w, r, petSvc)
		if !ok {
			return
		}

		items, err := svc.ListByPet(r.Context(), pet)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getRecordHandler godoc
// @Summary Ver registro de vacuna
// @Tags vaccinations
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param recordID path string true "ID del registro"
// @Success 200 {object} recordResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Router /pets/{petID}/vaccinations/{recordID} [get]
func getRecordHandler(svc *Service, petSvc PetLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pet, ok := ownedPet(w, r, petSvc)
		if !ok {
			return
		}

		rec, err := svc.GetByID(r.Context(), pet, chi.URLParam(r, "recordID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

// updateRecordHandler godoc
// @Summary Editar registro de vacuna (PATCH)
// @Description Campos ausentes no se tocan. next_due_at se recalcula salvo en modo `manual`, donde `""` o `null` la borran.
// @Tags vaccinations
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param recordID path string true "ID del registro"
// @Param payload body updateRecordRequest true "Campos a modificar"
// @Success 200 {object} recordResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Router /pets/{petID}/vaccinations/{recordID} [patch]
func updateRecordHandler(svc *Service, petSvc PetLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pet, ok := ownedPet(w, r, petSvc)
		if !ok {
			return
		}

		// map primero para saber si "next_due_at" vino en el body
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updateRecordRequest
		{
			b, _ := json.Marshal(raw)
			dec := json.NewDecoder(bytes.NewReader(b))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		in := UpdateInput{
			ProtocolID:       req.ProtocolID,
			VaccineName:      req.VaccineName,
			DoseLabel:        req.DoseLabel,
			BoosterFrequency: req.BoosterFrequency,
			Notes:            req.Notes,
		}
		if req.AdministeredAt != nil {
			t, err := parseDateField("administered_at", *req.AdministeredAt)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			in.AdministeredAt = &t
		}
		if _, exists := raw["next_due_at"]; exists {
			in.NextDueAt.Present = true
			if req.NextDueAt != nil {
				t, err := parseOptionalDateField("next_due_at", *req.NextDueAt)
				if err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				in.NextDueAt.Value = t
			}
		}

		rec, err := svc.Update(r.Context(), pet, chi.URLParam(r, "recordID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

// deleteRecordHandler godoc
// @Summary Borrar registro de vacuna
// @Tags vaccinations
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param recordID path string true "ID del registro"
// @Success 204 "sin contenido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Router /pets/{petID}/vaccinations/{recordID} [delete]
func deleteRecordHandler(svc *Service, petSvc PetLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pet, ok := ownedPet(w, r, petSvc)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), pet, chi.URLParam(r, "recordID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// petAlertsHandler godoc
// @Summary Alertas de vacunación de una mascota
// @Description Se calculan al momento. Mascotas con status distinto de `active` devuelven lista vacía.
// @Tags vaccinations
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} alertResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/vaccinations/alerts [get]
func petAlertsHandler(svc *Service, petSvc PetLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pet, ok := ownedPet(w, r, petSvc)
		if !ok {
			return
		}

		alerts, err := svc.Alerts(r.Context(), pet)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toAlertResponses(alerts))
	}
}

// myAlertsHandler godoc
// @Summary Alertas de todas mis mascotas activas
// @Tags vaccinations
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {array} petAlertsResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me/vaccination-alerts [get]
func myAlertsHandler(svc *Service, petSvc PetLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := petSvc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		grouped, err := svc.AlertsForPets(r.Context(), items)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petAlertsResponse, 0, len(grouped))
		for _, g := range grouped {
			out = append(out, petAlertsResponse{
				PetID:   g.Pet.ID,
				PetName: g.Pet.Name,
				Alerts:  toAlertResponses(g.Alerts),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func ownedPet(w http.ResponseWriter, r *http.Request, petSvc PetLookup) (pets.Pet, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return pets.Pet{}, false
	}

	pet, err := petSvc.GetOwned(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, pets.ErrForbidden):
			http.Error(w, "forbidden", http.StatusForbidden)
		case errors.Is(err, pets.ErrNotFound):
			http.Error(w, "pet not found", http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return pets.Pet{}, false
	}
	return pet, true
}

func parseDateField(field, raw string) (time.Time, error) {
	t, ok := dates.Parse(raw)
	if !ok {
		return time.Time{}, errors.New(field + " must be YYYY-MM-DD")
	}
	return t, nil
}

// parseOptionalDateField: "" = sin fecha.
func parseOptionalDateField(field, raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := parseDateField(field, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "vaccination record not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toProtocolResponse(p Protocol) protocolResponse {
	species := p.Species
	if species == nil {
		species = []pets.Species{}
	}
	prevents := p.Prevents
	if prevents == nil {
		prevents = []string{}
	}
	doses := p.RecommendedDoses
	if doses == nil {
		doses = []string{}
	}
	return protocolResponse{
		ID:               p.ID,
		Name:             p.Name,
		Species:          species,
		Description:      p.Description,
		Prevents:         prevents,
		RecommendedDoses: doses,
		Importance:       p.Importance,
		BoosterGuidance:  p.BoosterGuidance,
		MinimumAgeWeeks:  p.MinimumAgeWeeks,
	}
}

func toRecordResponse(rec Record) recordResponse {
	out := recordResponse{
		ID:               rec.ID,
		PetID:            rec.PetID,
		ProtocolID:       rec.ProtocolID,
		VaccineName:      rec.DisplayName(),
		DoseLabel:        rec.DoseLabel,
		AdministeredAt:   dates.Format(rec.AdministeredAt),
		BoosterFrequency: rec.BoosterFrequency,
		Notes:            rec.Notes,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}
	if rec.NextDueAt != nil {
		out.NextDueAt = dates.Format(*rec.NextDueAt)
	}
	return out
}

func toAlertResponses(alerts []Alert) []alertResponse {
	out := make([]alertResponse, 0, len(alerts))
	for _, a := range alerts {
		ar := alertResponse{
			ProtocolID:  a.ProtocolID,
			VaccineName: a.VaccineName,
			Kind:        a.Kind,
			Message:     a.Message,
		}
		if a.DueDate != nil {
			ar.DueDate = dates.Format(*a.DueDate)
		}
		out = append(out, ar)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
