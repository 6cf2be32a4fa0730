package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cityops/esb-relay/internal/relay/domain"
)

// profileReport is one profile's validation outcome.
type profileReport struct {
	Profile string `json:"profile"`
	Valid   bool   `json:"valid"`
	Error   string `json:"error,omitempty"`
}

// RunValidateProfiles validates every built-in application profile and writes
// a per-profile report. Returns an error if any profile fails validation, so
// the command exits nonzero in CI.
func RunValidateProfiles(out io.Writer, format string) error {
	var reports []profileReport
	invalid := 0

	for _, name := range domain.ProfileNames() {
		report := profileReport{Profile: name, Valid: true}
		if _, err := domain.ProfileByName(name); err != nil {
			report.Valid = false
			report.Error = err.Error()
			invalid++
		}
		reports = append(reports, report)
	}

	if format == "json" {
		if err := outputValidateJSON(out, reports); err != nil {
			return err
		}
	} else {
		outputValidateText(out, reports)
	}

	if invalid > 0 {
		return fmt.Errorf("%d profile(s) failed validation", invalid)
	}
	return nil
}

// outputValidateText writes the report in human-readable text format.
func outputValidateText(out io.Writer, reports []profileReport) {
	for _, report := range reports {
		if report.Valid {
			fmt.Fprintf(out, "%s: ok\n", report.Profile)
		} else {
			fmt.Fprintf(out, "%s: invalid: %s\n", report.Profile, report.Error)
		}
	}
}

// outputValidateJSON writes the report in JSON format for machine consumption.
func outputValidateJSON(out io.Writer, reports []profileReport) error {
	jsonBytes, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(out, string(jsonBytes))
	return nil
}
