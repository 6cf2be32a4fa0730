package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/cityops/esb-relay/internal/errors"
)

func validProfile() *ApplicationProfile {
	return &ApplicationProfile{
		Name:     "test-app",
		ObjectID: "object_1",
		ViewID:   "view_1",
		Fields: FieldMap{
			FieldID:                      "id",
			FieldActivityID:              "field_1",
			FieldEmiID:                   "field_2",
			FieldSRNumber:                "field_3",
			FieldIssueStatusCodeSnapshot: "field_4",
			FieldESBStatus:               "field_5",
			FieldActivityDatetime:        "field_6",
			FieldActivityDetails:         "field_7",
			FieldActivityName:            "field_8",
			FieldCSRActivityID:           "field_9",
			FieldCSRActivityCode:         "field_10",
		},
		ActivityCodes: ActivityCodeTable{
			"Close Issue (Resolved)": "CLOIS001",
			"Other":                  Suppressed,
		},
	}
}

func TestApplicationProfileValidate(t *testing.T) {
	t.Run("valid profile", func(t *testing.T) {
		assert.NoError(t, validProfile().Validate())
	})

	t.Run("missing logical field", func(t *testing.T) {
		profile := validProfile()
		delete(profile.Fields, FieldEmiID)

		err := profile.Validate()
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, ErrInvalidProfile))
		assert.Contains(t, err.Error(), FieldEmiID)
	})

	t.Run("malformed field identifier", func(t *testing.T) {
		profile := validProfile()
		profile.Fields[FieldSRNumber] = "tbd"

		err := profile.Validate()
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, ErrInvalidProfile))
	})

	t.Run("malformed view identifier", func(t *testing.T) {
		profile := validProfile()
		profile.ViewID = "object_1"

		err := profile.Validate()
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, ErrInvalidProfile))
	})

	t.Run("placeholder activity code", func(t *testing.T) {
		profile := validProfile()
		profile.ActivityCodes["New Activity"] = "tbd"

		err := profile.Validate()
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, ErrInvalidProfile))
		assert.Contains(t, err.Error(), "New Activity")
	})

	t.Run("suppress marker is not a code", func(t *testing.T) {
		// Suppressed values are legal; only real codes are shape-checked.
		profile := validProfile()
		profile.ActivityCodes["Attach Image"] = Suppressed

		assert.NoError(t, profile.Validate())
	})

	t.Run("empty code table", func(t *testing.T) {
		profile := validProfile()
		profile.ActivityCodes = nil

		err := profile.Validate()
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, ErrInvalidProfile))
	})
}

func TestProfileByName(t *testing.T) {
	t.Run("built-in profiles pass the completeness check", func(t *testing.T) {
		for _, name := range ProfileNames() {
			profile, err := ProfileByName(name)
			require.NoError(t, err, name)
			assert.Equal(t, name, profile.Name)
			for _, field := range LogicalFields {
				assert.NotEmpty(t, profile.Fields[field], "%s: %s", name, field)
			}
		}
	})

	t.Run("unknown profile", func(t *testing.T) {
		_, err := ProfileByName("parking")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, ErrUnknownProfile))
		assert.True(t, apperrors.Is(err, apperrors.ErrConfiguration))
	})
}

func TestBuiltinActivityCodes(t *testing.T) {
	dataTracker, err := ProfileByName("data-tracker")
	require.NoError(t, err)
	assert.Equal(t, "CLOIS001", dataTracker.ActivityCodes["Close Issue (Resolved)"])
	assert.Equal(t, Suppressed, dataTracker.ActivityCodes["Attach Image"])

	signsMarkings, err := ProfileByName("signs-markings")
	require.NoError(t, err)
	assert.Equal(t, "CONTACT", signsMarkings.ActivityCodes["Send Email"])
	assert.Equal(t, Suppressed, signsMarkings.ActivityCodes["Other"])
}
