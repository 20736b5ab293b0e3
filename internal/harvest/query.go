// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"fmt"
	"strings"

	"github.com/pdiddy/profile-hunter/pkg/types"
)

// Query is one search-engine query issued during a run.
type Query struct {
	// Text is the full query string sent to the search API.
	Text string
	// Term is the coverage term appended to the organization, empty for the
	// bare organization query and for raw queries.
	Term string
}

// USCoverageTerms are the role/department terms for English-language profiles.
var USCoverageTerms = []string{
	"IT", "Human Resources", "Recruiter", "Marketing", "Finance",
	"Sales", "Director", "Manager", "Developer", "Engineer",
	"Consultant", "Analyst", "CEO", "CTO", "CISO", "Administrator",
	"Management", "Legal", "Support", "HR", "Health", "Operations",
}

// ESCoverageTerms are the role/department terms for Spanish-language
// profiles, weighted toward banking and corporate structures.
var ESCoverageTerms = []string{
	"Gestor", "Gestor Comercial", "Director de Oficina", "Subdirector",
	"Interventor", "Cajero", "Atención al Cliente", "Asesor Financiero",
	"Banca Privada", "Banca Personal", "Banca de Empresas", "Gerente",
	"Territorial", "Zona",

	"Analista", "Riesgos", "Admisiones", "Auditoría", "Control",
	"Recursos Humanos", "Talento", "Selección", "Formación",
	"Marketing", "Comunicación", "Prensa", "Marca",
	"Legal", "Jurídico", "Compliance", "Normativa", "Abogado",
	"Contabilidad", "Financiero", "Tesoreria", "Fiscal",
	"Operaciones", "Administrativo", "Secretaría",

	"Informática", "Sistemas", "Tecnología", "Desarrollador", "Programador",
	"Arquitecto", "Ingeniero", "Ciberseguridad", "Seguridad", "CISO",
	"Datos", "Data", "Analítica", "Big Data", "Transformación",
	"Digital", "Innovation", "Innovación", "Agile", "Scrum",
	"Soporte", "Helpdesk", "Técnico",

	"Director", "Responsable", "Jefe", "Coordinador", "Manager",
	"Delegado", "Presidente", "Consejero", "Socio",
	"CEO", "CTO", "CIO", "CFO", "COO",
}

// CoverageTerms resolves the term list for cfg. Explicit terms win over the
// preset; an empty preset means "us". Blank entries and case-insensitive
// duplicates are dropped so no query is issued twice.
func CoverageTerms(cfg types.CoverageConfig) ([]string, error) {
	terms := cfg.Terms
	if len(terms) == 0 {
		switch strings.ToLower(strings.TrimSpace(cfg.Preset)) {
		case "", "us":
			terms = USCoverageTerms
		case "es":
			terms = ESCoverageTerms
		default:
			return nil, fmt.Errorf("%w: unknown coverage preset %q: use us or es", ErrInvalidInput, cfg.Preset)
		}
	}

	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.Join(strings.Fields(t), " ")
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out, nil
}

// BuildQueries expands an organization into the bare quoted organization
// query followed by one query per coverage term, in term order.
func BuildQueries(organization string, terms []string) ([]Query, error) {
	org := strings.TrimSpace(strings.ReplaceAll(organization, `"`, ""))
	if org == "" {
		return nil, fmt.Errorf("%w: organization is empty", ErrInvalidInput)
	}

	quoted := `"` + org + `"`
	queries := make([]Query, 0, len(terms)+1)
	queries = append(queries, Query{Text: quoted})
	for _, term := range terms {
		queries = append(queries, Query{Text: quoted + " " + term, Term: term})
	}
	return queries, nil
}

// RawQuery wraps a user-supplied query that bypasses expansion.
func RawQuery(text string) ([]Query, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: query is empty", ErrInvalidInput)
	}
	return []Query{{Text: text}}, nil
}
