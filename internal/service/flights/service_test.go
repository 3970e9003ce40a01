package flights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aroya-air/seatwise/internal/domain"
)

func TestParseSearchDate(t *testing.T) {
	got, err := parseSearchDate(" 2026-09-01 ")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", got)

	got, err = parseSearchDate("2026-09-01T18:30:00+03:00")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", got)

	got, err = parseSearchDate("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = parseSearchDate("next tuesday")
	assert.Error(t, err)
}

func TestSearchNeeds(t *testing.T) {
	assert.Equal(t, []string{"departure_city"}, searchNeeds(Criteria{}))
	assert.Equal(t, []string{"arrival_city"}, searchNeeds(Criteria{DepartureCity: "Riyadh"}))
	assert.Equal(t, []string{"departure_date"},
		searchNeeds(Criteria{DepartureCity: "Riyadh", ArrivalCity: "Jeddah"}))
	assert.Empty(t,
		searchNeeds(Criteria{DepartureCity: "Riyadh", ArrivalCity: "Jeddah", DepartureDate: "2026-09-01"}))
}

func TestBuildFacets(t *testing.T) {
	dep := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	matched := []domain.Flight{
		{ArrivalCity: "Jeddah", DepartureTime: dep},
		{ArrivalCity: "Dammam", DepartureTime: dep.Add(24 * time.Hour)},
		{ArrivalCity: "Jeddah", DepartureTime: dep.Add(24 * time.Hour)},
	}

	facets := buildFacets(matched)

	assert.Equal(t, []string{"2026-09-01", "2026-09-02"}, facets.AvailableDates)
	assert.Equal(t, []string{"Dammam", "Jeddah"}, facets.Destinations)
}

func TestNormalizeCity(t *testing.T) {
	assert.Equal(t, "riyadh", normalizeCity("  Riyadh "))
	assert.Empty(t, normalizeCity("   "))
}
