package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func intp(v int) *int { return &v }

func fullEntry(name string, age int, dob string) PassengerInput {
	return PassengerInput{
		Name:   name,
		Age:    intp(age),
		Gender: "female",
		DOB:    dob,
		Email:  name + "@example.com",
	}
}

func TestValidatePassengersAllValid(t *testing.T) {
	valid, issues := validatePassengers(2, []PassengerInput{
		fullEntry("amal", 30, "1996-05-10"),
		fullEntry("sara", 28, "1998-01-20"),
	}, testNow)

	assert.Empty(t, issues)
	require.Len(t, valid, 2)
	assert.Equal(t, "amal", valid[0].Name)
	assert.Equal(t, "1996-05-10", valid[0].DOB)
}

func TestValidatePassengersMissingFields(t *testing.T) {
	valid, issues := validatePassengers(1, []PassengerInput{
		{Name: "  ", Gender: "male"},
	}, testNow)

	assert.Empty(t, valid)
	fields := make([]string, 0, len(issues))
	for _, is := range issues {
		assert.Zero(t, is.Index)
		assert.Equal(t, missingFieldMsg, is.Message)
		fields = append(fields, is.Field)
	}
	assert.ElementsMatch(t, []string{"name", "age", "dob", "email"}, fields)
}

func TestValidatePassengersCountBeyondEntries(t *testing.T) {
	valid, issues := validatePassengers(3, []PassengerInput{
		fullEntry("amal", 30, "1996-05-10"),
	}, testNow)

	require.Len(t, valid, 1)
	// The two absent entries are reported missing across all fields.
	assert.Len(t, issues, 10)
	assert.Equal(t, 1, issues[0].Index)
	assert.Equal(t, 2, issues[5].Index)
}

func TestValidatePassengersAgeMismatch(t *testing.T) {
	_, issues := validatePassengers(1, []PassengerInput{
		fullEntry("amal", 45, "1996-05-10"),
	}, testNow)

	require.Len(t, issues, 1)
	assert.Equal(t, "age", issues[0].Field)
	assert.Contains(t, issues[0].Message, "expected approximately 30")
}

func TestValidatePassengersAgeToleranceOneYear(t *testing.T) {
	// Actual age is 30; 29 and 31 both pass the one-year tolerance.
	for _, age := range []int{29, 30, 31} {
		_, issues := validatePassengers(1, []PassengerInput{
			fullEntry("amal", age, "1996-05-10"),
		}, testNow)
		assert.Empty(t, issues, "age %d", age)
	}

	_, issues := validatePassengers(1, []PassengerInput{
		fullEntry("amal", 32, "1996-05-10"),
	}, testNow)
	assert.NotEmpty(t, issues)
}

func TestValidatePassengersBadDOB(t *testing.T) {
	_, issues := validatePassengers(1, []PassengerInput{
		fullEntry("amal", 30, "the nineties"),
	}, testNow)

	require.Len(t, issues, 1)
	assert.Equal(t, "dob", issues[0].Field)
	assert.Equal(t, "Unrecognized date of birth.", issues[0].Message)
}

func TestParseDOBTimestamp(t *testing.T) {
	dob, ok := parseDOB("1996-05-10T00:00:00Z")
	require.True(t, ok)
	assert.Equal(t, "1996-05-10", dob)

	_, ok = parseDOB("")
	assert.False(t, ok)
}

func TestAgeMatchesDOBBirthdayNotYetPassed(t *testing.T) {
	// Born 1996-12-01; as of 2026-08-31 the age is 29, not 30.
	ok, years := ageMatchesDOB(29, "1996-12-01", testNow)
	assert.True(t, ok)
	assert.Equal(t, 29, years)
}
