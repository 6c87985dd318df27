package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-vaccination-tracker/internal/domain/vaccination"
)

type VaccinationRepo struct {
	db *sql.DB
}

func NewVaccinationRepo(db *sql.DB) *VaccinationRepo {
	return &VaccinationRepo{db: db}
}

const recordColumns = `
	id, pet_id, owner_user_id,
	protocol_id, vaccine_name, dose_label,
	administered_at, booster_frequency, next_due_at,
	notes, created_at, updated_at`

func (r *VaccinationRepo) Create(ctx context.Context, rec vaccination.Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vaccination_records (`+recordColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		rec.ID,
		rec.PetID,
		rec.OwnerUserID,
		rec.ProtocolID,
		rec.VaccineName,
		rec.DoseLabel,
		rec.AdministeredAt,
		string(rec.BoosterFrequency),
		toNullDate(rec.NextDueAt),
		rec.Notes,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

func (r *VaccinationRepo) Update(ctx context.Context, rec vaccination.Record) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE vaccination_records
		SET
			protocol_id = $2,
			vaccine_name = $3,
			dose_label = $4,
			administered_at = $5,
			booster_frequency = $6,
			next_due_at = $7,
			notes = $8,
			updated_at = $9
		WHERE id = $1
	`,
		rec.ID,
		rec.ProtocolID,
		rec.VaccineName,
		rec.DoseLabel,
		rec.AdministeredAt,
		string(rec.BoosterFrequency),
		toNullDate(rec.NextDueAt),
		rec.Notes,
		rec.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errRecordNotFound
	}
	return nil
}

func (r *VaccinationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vaccination_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errRecordNotFound
	}
	return nil
}

func (r *VaccinationRepo) GetByID(ctx context.Context, id string) (vaccination.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return vaccination.Record{}, errRecordNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM vaccination_records WHERE id = $1`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return vaccination.Record{}, errRecordNotFound
	}
	return rec, err
}

func (r *VaccinationRepo) ListByPet(ctx context.Context, petID string) ([]vaccination.Record, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM vaccination_records
		WHERE pet_id = $1
		ORDER BY administered_at DESC, created_at DESC, id DESC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vaccination.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanRecord(s rowScanner) (vaccination.Record, error) {
	var (
		rec          vaccination.Record
		administered sql.NullTime
		freq         string
		nextDue      sql.NullTime
	)
	if err := s.Scan(
		&rec.ID,
		&rec.PetID,
		&rec.OwnerUserID,
		&rec.ProtocolID,
		&rec.VaccineName,
		&rec.DoseLabel,
		&administered,
		&freq,
		&nextDue,
		&rec.Notes,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return vaccination.Record{}, err
	}

	if d := fromNullDate(administered); d != nil {
		rec.AdministeredAt = *d
	}
	rec.BoosterFrequency = vaccination.BoosterFrequency(freq)
	rec.NextDueAt = fromNullDate(nextDue)
	return rec, nil
}
