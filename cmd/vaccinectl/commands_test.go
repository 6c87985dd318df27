package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestProtocolsCmd_FiltersBySpecies(t *testing.T) {
	out, err := execute(t, "protocols", "--species", "cat")
	require.NoError(t, err)

	assert.Contains(t, out, "feline-trivalent")
	assert.Contains(t, out, "rabies")
	assert.Contains(t, out, "other")
	assert.NotContains(t, out, "canine-polyvalent")
}

func TestProtocolsCmd_UnknownSpecies(t *testing.T) {
	_, err := execute(t, "protocols", "--species", "parrot")
	require.Error(t, err)
}

func TestNextDueCmd(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"yearly leap day", []string{"--administered", "2024-02-29", "--frequency", "yearly"}, "2025-02-28"},
		{"monthly month end", []string{"--administered", "2024-01-31", "--frequency", "monthly"}, "2024-02-29"},
		{"weekly", []string{"--administered", "2024-03-01", "--frequency", "weekly"}, "2024-03-08"},
		{"every 3 years", []string{"--administered", "2023-06-15", "--frequency", "every-3-years"}, "2026-06-15"},
		{"manual", []string{"--administered", "2024-03-01", "--frequency", "manual", "--manual", "2024-09-01"}, "2024-09-01"},
		{"no booster", []string{"--administered", "2024-03-01", "--frequency", "no-booster"}, "no booster scheduled"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"next-due"}, tc.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, strings.TrimSpace(out))
		})
	}
}

func TestNextDueCmd_BadFrequency(t *testing.T) {
	_, err := execute(t, "next-due", "--administered", "2024-03-01", "--frequency", "daily")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "every-3-years | single-dose-no-booster")
}

func TestNextDueCmd_HelpListsFrequencies(t *testing.T) {
	out, err := execute(t, "next-due", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "weekly | monthly | yearly | every-3-years | single-dose-no-booster | no-booster | manual")
}

func TestAgeCmd(t *testing.T) {
	out, err := execute(t, "--today", "2024-06-15", "age", "--birth-date", "2022-03-15")
	require.NoError(t, err)
	assert.Contains(t, out, "2 years and 3 months")

	out, err = execute(t, "--today", "2024-06-15", "age", "--years", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "approx.")

	out, err = execute(t, "--today", "2024-06-15", "age", "--birth-date", "garbage")
	require.NoError(t, err)
	assert.Equal(t, "not given", strings.TrimSpace(out))

	out, err = execute(t, "age")
	require.NoError(t, err)
	assert.Equal(t, "unknown age", strings.TrimSpace(out))
}

func TestAlertsCmd(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "pet.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
pet:
  name: Luna
  species: dog
  birth_date: 2023-01-10
records:
  - protocol_id: canine-polyvalent
    administered_at: 2023-03-01
    booster_frequency: yearly
  - protocol_id: canine-leptospirosis
    administered_at: 2024-03-01
    booster_frequency: yearly
`), 0o600))

	out, err := execute(t, "--today", "2024-06-15", "alerts", "--file", file)
	require.NoError(t, err)

	assert.Contains(t, out, "Canine polyvalent (DHPPi): booster overdue since 2024-03-01")
	assert.Contains(t, out, "Rabies: not started (suggested)")
	assert.NotContains(t, out, "Leptospirosis")
}

func TestAlertsCmd_InactivePet(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "pet.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
pet:
  name: Old
  species: cat
  status: deceased
  approx_age_years: 12
`), 0o600))

	out, err := execute(t, "alerts", "--file", file)
	require.NoError(t, err)
	assert.Equal(t, "no alerts", strings.TrimSpace(out))
}
