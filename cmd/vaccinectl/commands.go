package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pet-vaccination-tracker/internal/domain/pets"
	"pet-vaccination-tracker/internal/domain/vaccination"
	"pet-vaccination-tracker/internal/platform/dates"
)

// rootOptions son los flags globales compartidos por los subcomandos.
type rootOptions struct {
	protocolsFile string
	today         string
}

func (o *rootOptions) catalog() (*vaccination.Catalog, error) {
	if o.protocolsFile == "" {
		return vaccination.DefaultCatalog()
	}
	f, err := os.Open(o.protocolsFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return vaccination.LoadCatalog(f)
}

func (o *rootOptions) now() (time.Time, error) {
	if o.today == "" {
		return dates.Only(time.Now()), nil
	}
	t, ok := dates.Parse(o.today)
	if !ok {
		return time.Time{}, fmt.Errorf("--today must be YYYY-MM-DD, got %q", o.today)
	}
	return t, nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "vaccinectl",
		Short:         "Pet vaccination tooling: protocols, booster dates, ages and alerts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.protocolsFile, "protocols", "", "YAML protocol catalog (default: embedded catalog)")
	root.PersistentFlags().StringVar(&opts.today, "today", "", "reference date YYYY-MM-DD (default: today)")

	root.AddCommand(
		newProtocolsCmd(opts),
		newNextDueCmd(),
		newAgeCmd(opts),
		newAlertsCmd(opts),
	)
	return root
}

func newProtocolsCmd(opts *rootOptions) *cobra.Command {
	var species string

	cmd := &cobra.Command{
		Use:   "protocols",
		Short: "List vaccination protocols, optionally for one species",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := opts.catalog()
			if err != nil {
				return err
			}

			items := catalog.All()
			if species != "" {
				sp := pets.Species(strings.ToLower(strings.TrimSpace(species)))
				if !sp.Valid() {
					return fmt.Errorf("unknown species %q", species)
				}
				items = catalog.ProtocolsFor(sp)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tIMPORTANCE\tMIN WEEKS")
			for _, p := range items {
				minWeeks := "-"
				if p.MinimumAgeWeeks != nil {
					minWeeks = fmt.Sprint(*p.MinimumAgeWeeks)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Importance, minWeeks)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&species, "species", "", "dog | cat | rabbit")
	return cmd
}

func newNextDueCmd() *cobra.Command {
	var administered, frequency, manual string

	cmd := &cobra.Command{
		Use:   "next-due",
		Short: "Compute the next booster date for an administration date and frequency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			adm, ok := dates.Parse(administered)
			if !ok {
				return fmt.Errorf("--administered must be YYYY-MM-DD, got %q", administered)
			}
			freq, ok := vaccination.ParseFrequency(frequency)
			if !ok {
				return fmt.Errorf("unknown frequency %q (want %s)", frequency, frequencyChoices())
			}

			var manualDate *time.Time
			if manual != "" {
				t, ok := dates.Parse(manual)
				if !ok {
					return fmt.Errorf("--manual must be YYYY-MM-DD, got %q", manual)
				}
				manualDate = &t
			}

			next := vaccination.Schedule(adm, freq, manualDate)
			if next == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no booster scheduled")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), dates.Format(*next))
			return nil
		},
	}
	cmd.Flags().StringVar(&administered, "administered", "", "administration date YYYY-MM-DD")
	cmd.Flags().StringVar(&frequency, "frequency", "", frequencyChoices())
	cmd.Flags().StringVar(&manual, "manual", "", "next due date YYYY-MM-DD when --frequency=manual")
	_ = cmd.MarkFlagRequired("administered")
	return cmd
}

func frequencyChoices() string {
	names := make([]string, 0, 7)
	for _, f := range vaccination.Frequencies() {
		names = append(names, string(f))
	}
	return strings.Join(names, " | ")
}

func newAgeCmd(opts *rootOptions) *cobra.Command {
	var birthDate string
	var years int

	cmd := &cobra.Command{
		Use:   "age",
		Short: "Compute a pet's age from a birth date or whole years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now, err := opts.now()
			if err != nil {
				return err
			}

			var age pets.Age
			switch {
			case cmd.Flags().Changed("birth-date"):
				age = pets.ParseAge(birthDate, now)
			case cmd.Flags().Changed("years"):
				age = pets.NewAgeCalculator(nil).Calculate(nil, &years, now)
			default:
				age = pets.NewAgeCalculator(nil).Calculate(nil, nil, now)
			}

			out := age.Display
			if age.Known {
				out = fmt.Sprintf("%s (%d weeks)", age.Display, age.TotalWeeks)
				if age.Approximate {
					out += " approx."
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&birthDate, "birth-date", "", "birth date YYYY-MM-DD")
	cmd.Flags().IntVar(&years, "years", 0, "age in whole years when the birth date is unknown")
	cmd.MarkFlagsMutuallyExclusive("birth-date", "years")
	return cmd
}

// petFile es el formato YAML que acepta "vaccinectl alerts --file".
type petFile struct {
	Pet struct {
		Name           string `yaml:"name"`
		Species        string `yaml:"species"`
		Status         string `yaml:"status"`
		BirthDate      string `yaml:"birth_date"`
		ApproxAgeYears *int   `yaml:"approx_age_years"`
	} `yaml:"pet"`
	Records []struct {
		ProtocolID       string `yaml:"protocol_id"`
		VaccineName      string `yaml:"vaccine_name"`
		AdministeredAt   string `yaml:"administered_at"`
		BoosterFrequency string `yaml:"booster_frequency"`
		NextDueAt        string `yaml:"next_due_at"`
	} `yaml:"records"`
}

func newAlertsCmd(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Compute vaccination alerts for a pet described in a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := opts.catalog()
			if err != nil {
				return err
			}
			now, err := opts.now()
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			pet, records, err := decodePetFile(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}

			engine := vaccination.NewEngine(catalog, pets.NewAgeCalculator(nil))
			alerts := engine.ComputeAlerts(pet, records, now)
			if len(alerts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no alerts")
				return nil
			}
			for _, a := range alerts {
				fmt.Fprintln(cmd.OutOrStdout(), a.String())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML file with the pet and its vaccination records")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func decodePetFile(raw []byte) (pets.Pet, []vaccination.Record, error) {
	var f petFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return pets.Pet{}, nil, err
	}

	pet := pets.Pet{
		ID:             "cli",
		Name:           f.Pet.Name,
		Species:        pets.Species(strings.ToLower(strings.TrimSpace(f.Pet.Species))),
		Status:         pets.StatusActive,
		ApproxAgeYears: f.Pet.ApproxAgeYears,
	}
	if !pet.Species.Valid() {
		return pets.Pet{}, nil, fmt.Errorf("unknown species %q", f.Pet.Species)
	}
	if s := strings.TrimSpace(f.Pet.Status); s != "" {
		pet.Status = pets.Status(strings.ToLower(s))
		if !pet.Status.Valid() {
			return pets.Pet{}, nil, fmt.Errorf("unknown status %q", f.Pet.Status)
		}
	}
	if f.Pet.BirthDate != "" {
		bd, ok := dates.Parse(f.Pet.BirthDate)
		if !ok {
			return pets.Pet{}, nil, fmt.Errorf("birth_date must be YYYY-MM-DD, got %q", f.Pet.BirthDate)
		}
		pet.BirthDate = &bd
	}

	records := make([]vaccination.Record, 0, len(f.Records))
	for i, r := range f.Records {
		adm, ok := dates.Parse(r.AdministeredAt)
		if !ok {
			return pets.Pet{}, nil, fmt.Errorf("records[%d]: administered_at must be YYYY-MM-DD", i)
		}
		freq, ok := vaccination.ParseFrequency(r.BoosterFrequency)
		if !ok {
			return pets.Pet{}, nil, fmt.Errorf("records[%d]: unknown booster_frequency %q", i, r.BoosterFrequency)
		}

		var manual *time.Time
		if r.NextDueAt != "" {
			t, ok := dates.Parse(r.NextDueAt)
			if !ok {
				return pets.Pet{}, nil, fmt.Errorf("records[%d]: next_due_at must be YYYY-MM-DD", i)
			}
			manual = &t
		}

		next := vaccination.Schedule(adm, freq, manual)
		// una fecha explícita sin frecuencia se respeta tal cual
		if next == nil && manual != nil && freq == "" {
			next = manual
		}

		records = append(records, vaccination.Record{
			ID:               fmt.Sprintf("cli-%d", i),
			PetID:            pet.ID,
			ProtocolID:       r.ProtocolID,
			VaccineName:      r.VaccineName,
			AdministeredAt:   adm,
			BoosterFrequency: freq,
			NextDueAt:        next,
		})
	}
	return pet, records, nil
}
