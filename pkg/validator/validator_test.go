package validator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scheduleSlot struct {
	Date      string `validate:"required,isodate"`
	StartTime string `validate:"required,hhmm"`
	EndTime   string `validate:"required,hhmm"`
}

func TestValidateAcceptsWellFormedSlot(t *testing.T) {
	errs := Validate(context.Background(), scheduleSlot{
		Date:      "2025-10-16",
		StartTime: "09:30",
		EndTime:   "17:00",
	})
	assert.Nil(t, errs)
}

func TestHHMMRule(t *testing.T) {
	valid := []string{"00:00", "9:05", "09:30", "23:59"}
	invalid := []string{"24:00", "9h30", "09:60", "930", "morning", ""}

	for _, v := range valid {
		errs := Validate(context.Background(), scheduleSlot{Date: "2025-10-16", StartTime: v, EndTime: "10:00"})
		assert.Nil(t, errs, "expected %q to be accepted", v)
	}
	for _, v := range invalid {
		errs := Validate(context.Background(), scheduleSlot{Date: "2025-10-16", StartTime: v, EndTime: "10:00"})
		assert.NotEmpty(t, errs, "expected %q to be rejected", v)
	}
}

func TestISODateRule(t *testing.T) {
	valid := []string{"2025-10-16", "2024-02-29"}
	invalid := []string{"2025-13-01", "2025-02-30", "16/10/2025", "20251016", "tomorrow"}

	for _, v := range valid {
		errs := Validate(context.Background(), scheduleSlot{Date: v, StartTime: "09:00", EndTime: "10:00"})
		assert.Nil(t, errs, "expected %q to be accepted", v)
	}
	for _, v := range invalid {
		errs := Validate(context.Background(), scheduleSlot{Date: v, StartTime: "09:00", EndTime: "10:00"})
		assert.NotEmpty(t, errs, "expected %q to be rejected", v)
	}
}

func TestValidateReportsEveryFailedField(t *testing.T) {
	errs := Validate(context.Background(), scheduleSlot{})

	require.Len(t, errs, 3)
	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, ErrFieldRequired, fields["Date"])
	assert.Equal(t, ErrFieldRequired, fields["StartTime"])
	assert.Equal(t, ErrFieldRequired, fields["EndTime"])
}

func TestValidateRuleNames(t *testing.T) {
	errs := Validate(context.Background(), scheduleSlot{Date: "soon", StartTime: "09:00", EndTime: "10:00"})

	require.Len(t, errs, 1)
	assert.Equal(t, "isodate", errs[0].Rule)
	assert.Equal(t, "Date must be in YYYY-MM-DD format", errs[0].Message)
}
