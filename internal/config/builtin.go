package config

// Tag source names shared by the Honeywell profiles.
const (
	sourceSafetyManager = "Honeywell Safety Manager (SIS)"
	sourceExperionDCS   = "Honeywell Experion (DCS)"
	sourceExperionSCADA = "Honeywell Experion (SCADA)"
	sourceTDC           = "Honeywell TDC (DCS)"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

// BuiltinProfiles returns the profiles compiled into the binary, in display order.
// Each call returns fresh values.
func BuiltinProfiles() []ClientProfile {
	return []ClientProfile{
		{
			ID:             "flng",
			DisplayName:    "Freeport LNG",
			Vendor:         "Honeywell Experion/DynAMo",
			DCSName:        "DynAMo",
			PHATool:        "PHA-Pro",
			ParserKind:     ParserMultiSchemaCSV,
			UnitMethod:     UnitMethodTagPrefix,
			UnitDigitCount: 2,
			TagSourceRules: []TagSourceRule{
				{Match: MatchPrefix, Field: FieldPointType, Pattern: "SM", Source: sourceSafetyManager, Enforcement: EnforcementRestricted},
				{Match: MatchContains, Field: FieldTagName, Pattern: ".", Source: sourceExperionDCS, Enforcement: EnforcementModifiable},
				{Match: MatchInSet, Field: FieldPointType, Values: []string{"ANA", "STA"}, Source: sourceExperionSCADA, Enforcement: EnforcementModifiable},
			},
			DefaultSource:   sourceTDC,
			OutputSchema:    SchemaVariantA,
			EnableValueCase: EnableCaseUpper,
			Areas: map[string]AreaOverride{
				"lqf_u17": {
					DisplayName:    "Liquefaction (LQF) - Unit 17",
					UnitMethod:     UnitMethodAssetParent,
					UnitDigitCount: intPtr(2),
				},
				"ptf_u61": {
					DisplayName:      "Pretreatment (PTF) - Unit 61",
					UnitMethod:       UnitMethodAssetParent,
					UnitDigitCount:   intPtr(2),
					EmptyModeIsValid: boolPtr(true),
				},
			},
		},
		{
			ID:             "hfs_artesia",
			DisplayName:    "HF Sinclair - Artesia",
			Vendor:         "Honeywell TDC/Experion/DynAMo",
			DCSName:        "DynAMo",
			PHATool:        "PHA-Pro",
			ParserKind:     ParserMultiSchemaCSV,
			UnitMethod:     UnitMethodTagPrefix,
			UnitDigitCount: 2,
			TagSourceRules: []TagSourceRule{
				{Match: MatchPrefix, Field: FieldPointType, Pattern: "SM", Source: sourceSafetyManager, Enforcement: EnforcementRestricted},
				{Match: MatchPrefix, Field: FieldTagName, Pattern: "SIS", Source: sourceSafetyManager, Enforcement: EnforcementRestricted},
				{Match: MatchInSet, Field: FieldPointType, Values: []string{"ANA", "STA"}, Source: sourceExperionSCADA},
				{Match: MatchExact, Field: FieldPointType, Pattern: "RTU", Source: sourceExperionSCADA},
				{Match: MatchInSet, Field: FieldPointType, Values: []string{"ANALGIN", "ANALGOUT", "DIGIN", "DIGOUT", "DIGCOMP"}, Source: sourceTDC},
				{Match: MatchInSet, Field: FieldPointType, Values: []string{"REGCTL", "REGAM", "AUTOMAN", "RATIOCTL"}, Source: sourceTDC},
				{Match: MatchInSet, Field: FieldPointType, Values: []string{"NUMERIC", "FLAG", "TIMER", "LOGIC", "SWITCH"}, Source: sourceTDC},
				{Match: MatchPrefix, Field: FieldPointType, Pattern: "TPS", Source: sourceTDC},
				{Match: MatchExact, Field: FieldPointType, Pattern: "DEVCTL", Source: sourceExperionDCS},
				{Match: MatchExact, Field: FieldPointType, Pattern: "DATAACQ", Source: sourceExperionDCS},
				{Match: MatchExact, Field: FieldPointType, Pattern: "PID", Source: sourceExperionDCS},
				{Match: MatchContains, Field: FieldTagName, Pattern: ".", Source: sourceExperionDCS},
			},
			DefaultSource:    sourceExperionDCS,
			OutputSchema:     SchemaVariantB,
			EmptyModeIsValid: true,
			EnableValueCase:  EnableCaseTitle,
			Areas: map[string]AreaOverride{
				"north_console": {
					DisplayName: "North Console",
					UnitMethod:  UnitMethodBoth,
				},
			},
		},
		{
			ID:                 "rt_bessemer",
			DisplayName:        "Rio Tinto - Bessemer City",
			Vendor:             "ABB",
			DCSName:            "ABB 800xA",
			PHATool:            "PHA-Pro",
			ParserKind:         ParserWideExcel,
			UnitMethod:         UnitMethodFixed,
			UnitValue:          "Line 1",
			DefaultSource:      "ABB 800xA (DCS)",
			OutputSchema:       SchemaVariantC,
			EnableValueCase:    EnableCaseUpper,
			ABBPriorityDefault: DefaultABBPriority,
			ABBAlarmTypes: []ABBAlarmType{
				{Suffix: "H", Name: "(PV) High"},
				{Suffix: "HH", Name: "(PV) High High"},
				{Suffix: "HHH", Name: "(PV) High High High"},
				{Suffix: "L", Name: "(PV) Low"},
				{Suffix: "LL", Name: "(PV) Low Low"},
				{Suffix: "LLL", Name: "(PV) Low Low Low"},
				{Suffix: "OE", Name: "Object Error"},
			},
		},
	}
}
