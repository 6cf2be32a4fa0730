package domain

// Built-in application profiles. Each maps one record store subsystem onto
// the bus: which object/view to read and write, how logical field names map
// to field identifiers, and which CSR activity code each activity name
// translates to. An activity mapped to Suppressed is written back as
// DO_NOT_SEND without ever touching the bus; an activity missing from the
// table aborts the run.
var builtinProfiles = map[string]*ApplicationProfile{
	"data-tracker": {
		Name:     "data-tracker",
		ObjectID: "object_75",
		ViewID:   "view_1653",
		Fields: FieldMap{
			FieldID:                      "id",
			FieldActivityID:              "field_1051",
			FieldEmiID:                   "field_1868",
			FieldSRNumber:                "field_1232",
			FieldIssueStatusCodeSnapshot: "field_1874",
			FieldESBStatus:               "field_1860",
			FieldActivityDatetime:        "field_1054",
			FieldActivityDetails:         "field_1055",
			FieldActivityName:            "field_1053",
			FieldCSRActivityID:           "field_4583",
			FieldCSRActivityCode:         "field_4582",
		},
		ActivityCodes: ActivityCodeTable{
			"Identify Asset":                       "IDENASSE",
			"Dispatch Technician":                  "DISPTECH",
			"Close Issue (Resolved)":               "CLOIS001",
			"Adjust Timing":                        "ADJUTIMI",
			"Complete Repairs":                     "REPACOMP",
			"Assign to Signal Request Review":      "ASSIRERE",
			"Assign to Signal Engineering":         "ASTOSIEN",
			"Assign to TMC":                        "RETOMOMC",
			"Monitor in School Zone Beacon System": "MONISSRE",
			"Monitor Situation on CCTV":            "MONISSRE",
			"311 Feedback":                         "311FEEDB",
			"Monitor Situation in KITS":            "MONISSRE",
			"Close Issue (Duplicate)":              "CLOIS001",
			"Remote Monitor Reset - Successful":    "REMORESU",
			"Remote Monitor Reset - Unsuccessful":  "REMOR001",
			"Other":                                Suppressed,
			"Storm-Related":                        Suppressed,
			"Adjust Video Detection":               "ADJVIDDE",
			"Attach Image":                         Suppressed,
			"Post Tweet":                           Suppressed,
			"Update DMS":                           Suppressed,
			"Send Email":                           Suppressed,
			"Coordinate Internally/Externally":     "COORINTE",
		},
	},
	"signs-markings": {
		Name:     "signs-markings",
		ObjectID: "object_173",
		ViewID:   "view_3052",
		Fields: FieldMap{
			FieldID:                      "id",
			FieldActivityID:              "field_3143",
			FieldEmiID:                   "field_3163",
			FieldSRNumber:                "field_3154",
			FieldIssueStatusCodeSnapshot: "field_3160",
			FieldESBStatus:               "field_3164",
			FieldActivityDatetime:        "field_3145",
			FieldActivityDetails:         "field_3147",
			FieldActivityName:            "field_3144",
			FieldCSRActivityID:           "field_4321",
			FieldCSRActivityCode:         "field_4322",
		},
		ActivityCodes: ActivityCodeTable{
			"Conduct Investigation":    "TMCONINV",
			"Contact Citizen":          "CONTACT",
			"Dispatch Technician/Crew": "DISPATC2",
			"Repair/Replace":           "TRREPSGN",
			"Attach Image":             Suppressed,
			"Send Email":               "CONTACT",
			"Close Issue (Duplicate)":  "CLOIS001",
			"Close Issue (Resolved)":   "CLOIS001",
			"311 Feedback":             "311FEEDB",
			"Other":                    Suppressed,
		},
	},
}

// ProfileByName returns the validated built-in profile for the given selector.
// Returns an error wrapping ErrUnknownProfile for an unknown selector, or the
// profile's validation error if its configuration is incomplete.
func ProfileByName(name string) (*ApplicationProfile, error) {
	profile, ok := builtinProfiles[name]
	if !ok {
		return nil, ErrUnknownProfile
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

// ProfileNames returns the selectors of all built-in profiles in a stable order.
func ProfileNames() []string {
	return []string{"data-tracker", "signs-markings"}
}
