package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTask() Task {
	return Task{
		Title:       "Meeting Project",
		Description: "Discuss progress and timeline",
		Priority:    PriorityMedium,
		Status:      StatusPending,
		StartTime:   time.Date(2024, time.March, 15, 9, 0, 0, 0, time.Local),
		EndTime:     time.Date(2024, time.March, 15, 11, 30, 0, 0, time.Local),
	}
}

func TestValidateAcceptsCompleteTask(t *testing.T) {
	task := validTask()
	assert.NoError(t, task.Validate())
}

func TestValidateReturnsFirstViolationOnly(t *testing.T) {
	task := validTask()
	task.Title = ""
	task.Description = ""

	err := task.Validate()
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "title", vErr.Field)
}

func TestValidateRequiredFields(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*Task)
	}{
		{"title", func(task *Task) { task.Title = "" }},
		{"description", func(task *Task) { task.Description = "" }},
		{"priority", func(task *Task) { task.Priority = "" }},
		{"priority", func(task *Task) { task.Priority = "urgent" }},
		{"start_time", func(task *Task) { task.StartTime = time.Time{} }},
		{"end_time", func(task *Task) { task.EndTime = time.Time{} }},
	}

	for _, tc := range cases {
		task := validTask()
		tc.mutate(&task)

		var vErr *ValidationError
		require.ErrorAs(t, task.Validate(), &vErr)
		assert.Equal(t, tc.field, vErr.Field)
	}
}

func TestValidateEndMustBeAfterStart(t *testing.T) {
	task := validTask()
	task.EndTime = task.StartTime

	var vErr *ValidationError
	require.ErrorAs(t, task.Validate(), &vErr)
	assert.Equal(t, "end_time", vErr.Field)
}

func TestValidateLocationOptional(t *testing.T) {
	task := validTask()
	task.Location = nil
	assert.NoError(t, task.Validate())
}

func TestValidateLocationRange(t *testing.T) {
	cases := []Location{
		{Latitude: 91, Longitude: 0},
		{Latitude: -91, Longitude: 0},
		{Latitude: 0, Longitude: 181},
		{Latitude: 0, Longitude: -181},
		{Latitude: math.NaN(), Longitude: 0},
		{Latitude: 0, Longitude: math.Inf(1)},
	}

	for _, loc := range cases {
		task := validTask()
		task.Location = &loc
		assert.Error(t, task.Validate(), "location %+v", loc)
	}

	task := validTask()
	task.Location = &Location{Latitude: -6.2088, Longitude: 106.8456}
	assert.NoError(t, task.Validate())
}

func TestParseLocation(t *testing.T) {
	loc, err := ParseLocation("-6.2088,106.8456")
	require.NoError(t, err)
	assert.InDelta(t, -6.2088, loc.Latitude, 1e-9)
	assert.InDelta(t, 106.8456, loc.Longitude, 1e-9)

	loc, err = ParseLocation(" -6.2 , 106.8 ")
	require.NoError(t, err)
	assert.InDelta(t, -6.2, loc.Latitude, 1e-9)

	for _, s := range []string{"", "no-comma", "a,b", "1,2,3"} {
		_, err = ParseLocation(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestLocationString(t *testing.T) {
	loc := Location{Latitude: -6.2088, Longitude: 106.8456}
	assert.Equal(t, "-6.2088,106.8456", loc.String())
}
