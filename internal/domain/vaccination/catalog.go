package vaccination

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"pet-vaccination-tracker/internal/domain/pets"
)

// OtherProtocolID identifica el protocolo comodín para vacunas fuera del catálogo.
// Aplica a todas las especies y nunca genera alertas.
const OtherProtocolID = "other"

type Importance string

const (
	ImportanceEssential Importance = "essential"
	ImportanceOptional  Importance = "optional"
)

// Protocol es un esquema de vacunación por enfermedad, inmutable una vez cargado.
type Protocol struct {
	ID               string
	Name             string
	Species          []pets.Species
	Description      string
	Prevents         []string
	RecommendedDoses []string
	Importance       Importance
	BoosterGuidance  string

	// MinimumAgeWeeks sale del primer label de dosis al construir el catálogo. nil = sin pista.
	MinimumAgeWeeks *int
}

func (p Protocol) IsOther() bool { return p.ID == OtherProtocolID }

func (p Protocol) IsEssential() bool { return p.Importance == ImportanceEssential }

// AppliesTo: el protocolo "other" aplica a cualquier especie.
func (p Protocol) AppliesTo(species pets.Species) bool {
	if p.IsOther() {
		return true
	}
	return slices.Contains(p.Species, species)
}

func (p Protocol) clone() Protocol {
	p.Species = slices.Clone(p.Species)
	p.Prevents = slices.Clone(p.Prevents)
	p.RecommendedDoses = slices.Clone(p.RecommendedDoses)
	if p.MinimumAgeWeeks != nil {
		w := *p.MinimumAgeWeeks
		p.MinimumAgeWeeks = &w
	}
	return p
}

// Catalog es de solo lectura; todos los métodos devuelven copias.
type Catalog struct {
	ordered []Protocol
	byID    map[string]int
}

var (
	ErrInvalidCatalog = errors.New("invalid protocol catalog")

	//go:embed protocols.yaml
	embeddedProtocols []byte

	defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
		return LoadCatalog(bytes.NewReader(embeddedProtocols))
	})
)

// DefaultCatalog devuelve el catálogo embebido (se parsea una sola vez).
func DefaultCatalog() (*Catalog, error) {
	return defaultCatalog()
}

// MustDefaultCatalog es para main/tests: el YAML embebido se valida en tests.
func MustDefaultCatalog() *Catalog {
	c, err := DefaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

type catalogFile struct {
	Protocols []protocolEntry `yaml:"protocols"`
}

type protocolEntry struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	Species          []string `yaml:"species"`
	Description      string   `yaml:"description"`
	Prevents         []string `yaml:"prevents"`
	RecommendedDoses []string `yaml:"recommended_doses"`
	Importance       string   `yaml:"importance"`
	BoosterGuidance  string   `yaml:"booster_guidance"`
}

// LoadCatalog parsea el YAML de protocolos y construye el catálogo.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var f catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	items := make([]Protocol, 0, len(f.Protocols))
	for _, e := range f.Protocols {
		species := make([]pets.Species, 0, len(e.Species))
		for _, s := range e.Species {
			species = append(species, pets.Species(strings.ToLower(strings.TrimSpace(s))))
		}
		items = append(items, Protocol{
			ID:               strings.TrimSpace(e.ID),
			Name:             strings.TrimSpace(e.Name),
			Species:          species,
			Description:      strings.TrimSpace(e.Description),
			Prevents:         e.Prevents,
			RecommendedDoses: e.RecommendedDoses,
			Importance:       Importance(strings.ToLower(strings.TrimSpace(e.Importance))),
			BoosterGuidance:  strings.TrimSpace(e.BoosterGuidance),
		})
	}
	return NewCatalog(items)
}

// NewCatalog valida los protocolos, deriva MinimumAgeWeeks y agrega "other" si falta.
func NewCatalog(items []Protocol) (*Catalog, error) {
	c := &Catalog{
		ordered: make([]Protocol, 0, len(items)+1),
		byID:    make(map[string]int, len(items)+1),
	}

	for _, p := range items {
		p = p.clone()
		if p.IsOther() {
			p = otherProtocol()
		} else if err := validateProtocol(p); err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate protocol id %q", ErrInvalidCatalog, p.ID)
		}
		if !p.IsOther() {
			p.MinimumAgeWeeks = parseMinimumAgeWeeks(p.RecommendedDoses[0])
		}
		c.byID[p.ID] = len(c.ordered)
		c.ordered = append(c.ordered, p)
	}

	if _, ok := c.byID[OtherProtocolID]; !ok {
		c.byID[OtherProtocolID] = len(c.ordered)
		c.ordered = append(c.ordered, otherProtocol())
	}
	return c, nil
}

func validateProtocol(p Protocol) error {
	switch {
	case p.ID == "":
		return fmt.Errorf("%w: protocol without id", ErrInvalidCatalog)
	case p.Name == "":
		return fmt.Errorf("%w: protocol %q without name", ErrInvalidCatalog, p.ID)
	case len(p.Species) == 0:
		return fmt.Errorf("%w: protocol %q applies to no species", ErrInvalidCatalog, p.ID)
	case len(p.RecommendedDoses) == 0:
		return fmt.Errorf("%w: protocol %q has no recommended doses", ErrInvalidCatalog, p.ID)
	}
	for _, s := range p.Species {
		if s == "" {
			return fmt.Errorf("%w: protocol %q has an empty species", ErrInvalidCatalog, p.ID)
		}
	}
	if p.Importance != ImportanceEssential && p.Importance != ImportanceOptional {
		return fmt.Errorf("%w: protocol %q has unknown importance %q", ErrInvalidCatalog, p.ID, p.Importance)
	}
	return nil
}

func otherProtocol() Protocol {
	return Protocol{
		ID:          OtherProtocolID,
		Name:        "Other",
		Description: "Vaccine not listed in the catalog; name it on the record.",
		Importance:  ImportanceOptional,
	}
}

// Get devuelve false si el id no existe.
func (c *Catalog) Get(id string) (Protocol, bool) {
	i, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return Protocol{}, false
	}
	return c.ordered[i].clone(), true
}

// All respeta el orden de carga; "other" va al final si no fue declarado.
func (c *Catalog) All() []Protocol {
	out := make([]Protocol, 0, len(c.ordered))
	for _, p := range c.ordered {
		out = append(out, p.clone())
	}
	return out
}

// ProtocolsFor incluye siempre el protocolo "other".
func (c *Catalog) ProtocolsFor(species pets.Species) []Protocol {
	out := make([]Protocol, 0, len(c.ordered))
	for _, p := range c.ordered {
		if p.AppliesTo(species) {
			out = append(out, p.clone())
		}
	}
	return out
}

// "1st dose (6-8 weeks)" => 6, "Single dose (from 10 semanas)" => 10.
// El primer entero (o inicio de rango) antes de week(s)/semana(s).
var ageHintRe = regexp.MustCompile(`(?i)(\d+)\s*(?:[-–]\s*\d+\s*)?(?:weeks?|semanas?)\b`)

func parseMinimumAgeWeeks(label string) *int {
	m := ageHintRe.FindStringSubmatch(label)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}
