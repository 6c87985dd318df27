package pets

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-vaccination-tracker/internal/middleware"
	"pet-vaccination-tracker/internal/platform/dates"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/pets", createPetHandler(svc))
	r.Get("/pets", listPetsHandler(svc))
	r.Get("/pets/{petID}", getPetHandler(svc))
	r.Patch("/pets/{petID}", updatePetHandler(svc))
}

type createPetRequest struct {
	Name           string `json:"name"`
	Species        string `json:"species" enums:"dog,cat,rabbit"`
	Breed          string `json:"breed"`
	Sex            string `json:"sex" enums:"male,female,unknown"`
	BirthDate      string `json:"birth_date"` // YYYY-MM-DD opcional
	ApproxAgeYears *int   `json:"approx_age_years"`
	Notes          string `json:"notes"`
}

// updatePetRequest solo documenta el body; el handler decodifica a mano para detectar birth_date: null.
type updatePetRequest struct {
	Name           *string `json:"name"`
	Species        *string `json:"species"`
	Breed          *string `json:"breed"`
	Sex            *string `json:"sex"`
	Status         *string `json:"status" enums:"active,deceased,lost,rehomed"`
	BirthDate      *string `json:"birth_date"`
	ApproxAgeYears *int    `json:"approx_age_years"`
	Microchip      *string `json:"microchip"`
	Notes          *string `json:"notes"`
}

type ageResponse struct {
	Years       int    `json:"years"`
	Months      int    `json:"months"`
	TotalWeeks  int    `json:"total_weeks"`
	Approximate bool   `json:"approximate"`
	Display     string `json:"display"`
}

type petResponse struct {
	ID             string      `json:"id"`
	OwnerUserID    string      `json:"owner_user_id"`
	Name           string      `json:"name"`
	Species        Species     `json:"species"`
	Breed          string      `json:"breed"`
	Sex            Sex         `json:"sex"`
	Status         Status      `json:"status"`
	BirthDate      string      `json:"birth_date,omitempty"`
	ApproxAgeYears *int        `json:"approx_age_years,omitempty"`
	Age            ageResponse `json:"age"`
	Microchip      string      `json:"microchip,omitempty"`
	Notes          string      `json:"notes"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Registra una mascota para el usuario autenticado. Nace con status `active`.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param payload body createPetRequest true "Perfil de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse(dates.Layout, req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:           req.Name,
			Species:        req.Species,
			Breed:          req.Breed,
			Sex:            req.Sex,
			BirthDate:      bd,
			ApproxAgeYears: req.ApproxAgeYears,
			Notes:          req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p, svc.now()))
	}
}

// listPetsHandler godoc
// @Summary Listar mis mascotas
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {array} petResponse
// @Failure 401 {string} string "unauthorized"
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		now := svc.now()
		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p, now))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Ver perfil de mascota
// @Description Incluye la edad calculada a hoy (aproximada si solo se conoce la edad en años).
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetOwned(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p, svc.now()))
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota (PATCH)
// @Description Campos ausentes no se tocan. `birth_date: null` limpia la fecha. `status` distinto de `active` saca a la mascota del cálculo de alertas.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Decodificar a map primero para saber si "birth_date" vino en el body.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updatePetRequest
		{
			b, _ := json.Marshal(raw)
			dec := json.NewDecoder(bytes.NewReader(b))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		bd := PatchBirthDate{}
		if v, exists := raw["birth_date"]; exists {
			bd.Present = true
			if string(v) != "null" {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					http.Error(w, "birth_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				t, err := time.Parse(dates.Layout, s)
				if err != nil {
					http.Error(w, "birth_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				bd.Value = &t
			}
		}

		updated, err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "petID"), claims.UserID, UpdateProfileInput{
			Name:           req.Name,
			Species:        req.Species,
			Breed:          req.Breed,
			Sex:            req.Sex,
			Status:         req.Status,
			BirthDate:      bd,
			ApproxAgeYears: req.ApproxAgeYears,
			Microchip:      req.Microchip,
			Notes:          req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated, svc.now()))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPetResponse(p Pet, now time.Time) petResponse {
	age := AgeOf(p, now)
	out := petResponse{
		ID:             p.ID,
		OwnerUserID:    p.OwnerUserID,
		Name:           p.Name,
		Species:        p.Species,
		Breed:          p.Breed,
		Sex:            p.Sex,
		Status:         p.Status,
		ApproxAgeYears: p.ApproxAgeYears,
		Age: ageResponse{
			Years:       age.Years,
			Months:      age.Months,
			TotalWeeks:  age.TotalWeeks,
			Approximate: age.Approximate,
			Display:     age.Display,
		},
		Microchip: p.Microchip,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.BirthDate != nil {
		out.BirthDate = dates.Format(*p.BirthDate)
	}
	return out
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos (pets/vaccination)
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
