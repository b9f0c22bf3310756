package catalog

// Default returns the built-in probe catalog: the fixed two-table schema's
// selectable columns and filter predicates. A CUE definition directory can
// replace it entirely via Load.
func Default() *Catalog {
	columns := []ColumnSpec{
		{Name: "Test Area", SQL: "test_area", GroupKey: "test_area", Default: true},
		{Name: "SMS Device", SQL: "sms_device", GroupKey: "sms_device", Default: true},
		{Name: "Source Fab", SQL: "srcfab", GroupKey: "srcfab", Default: true},
		{Name: "Test Program (Wafer)", SQL: "w.test_program", GroupKey: "w.test_program", Default: true},
		{Name: "Program (Vmerge)", SQL: "v.program", GroupKey: "v.program", Default: true},
		{Name: "Lot", SQL: "v.lot", GroupKey: "v.lot", Default: true},
		{Name: "Fablot", SQL: "v.fablot", GroupKey: "v.fablot", Default: true},
		{Name: "Tester", SQL: "w.tester", GroupKey: "w.tester", Default: true},
		{Name: "Prober", SQL: "w.prober", GroupKey: "w.prober", Default: true},
		{Name: "Probe Card", SQL: "w.probe_card", GroupKey: "w.probe_card", Default: true},
		{Name: "Loadboard (PIB)", SQL: "w.loadbd", Alias: "PIB", GroupKey: "w.loadbd", Default: true},
		{Name: "Wafer ID", SQL: "v.wafer_id", GroupKey: "v.wafer_id", Default: true},
		{
			Name:     "End Time (Date Char)",
			SQL:      "to_char(w.end_time,'MON/DD/YYYY')",
			Alias:    "date_1",
			GroupKey: "to_char(w.end_time,'MON/DD/YYYY')",
			Default:  true,
		},
		{Name: "End Time (Timestamp)", SQL: "w.end_time", GroupKey: "w.end_time", Default: true},
		{
			Name:      "Yield (%)",
			Template:  "ROUND(SUM(CASE WHEN {bin_col} IN ({good_bins}) THEN {total_col} ELSE 0 END) / NULLIF(SUM({total_col}), 0) * 100, 2)",
			Alias:     "YIELD",
			Aggregate: true,
			Default:   true,
		},
		{
			Name:      "Yield (Good Bin Count)",
			Template:  "SUM(CASE WHEN {bin_col} IN ({good_bins}) THEN {total_col} ELSE 0 END)",
			Alias:     "GOOD_BIN_COUNT",
			Aggregate: true,
			Default:   true,
		},
		{Name: "Bin Record Count", SQL: "COUNT(*)", Alias: "Bin_Record_Count", Aggregate: true, Default: true},
		{
			Name:      "Affected Wafer Count per Lot (Distinct)",
			Template:  "COUNT(DISTINCT {wafer_id_col})",
			Alias:     "affected_wafer_count_per_lot",
			Aggregate: true,
		},
	}

	filters := []FilterSpec{
		{Name: "Program (v.program)", SQLColumn: "v.program", Kind: KindText, Operators: TextOperators, DefaultOp: "LIKE", Hint: "e.g., %ABC123%"},
		{Name: "AC Flags (ac_flags)", SQLColumn: "ac_flags", Kind: KindText, Operators: []string{"IN"}, DefaultOp: "IN", Hint: "e.g., '17','145' or 17,145"},
		{Name: "Probe Card (w.probe_card)", SQLColumn: "w.probe_card", Kind: KindText, Operators: TextOperators, DefaultOp: "LIKE", Hint: "e.g., KY8P%"},
		{Name: "Test Program (w.test_program)", SQLColumn: "w.test_program", Kind: KindText, Operators: TextOperators, DefaultOp: "LIKE", Hint: "e.g., %PP2830%"},
		{Name: "Tester (w.tester)", SQLColumn: "w.tester", Kind: KindText, Operators: TextOperators, DefaultOp: "LIKE", DefaultValue: "TT5003%", Hint: "e.g., TT2852% or TT5200,TT2500 for IN"},
		{Name: "Loadboard (w.loadbd)", SQLColumn: "w.loadbd", Kind: KindText, Operators: TextOperators, DefaultOp: "LIKE", Hint: "e.g., %"},
		{Name: "Prober (w.prober)", SQLColumn: "w.prober", Kind: KindText, Operators: TextOperators, DefaultOp: "=", Hint: "e.g., PP3105"},
		{Name: "SMS Device (sms_device)", SQLColumn: "sms_device", Kind: KindText, Operators: TextOperators, DefaultOp: "LIKE", Hint: "e.g., %XA$4H%"},
		{Name: "Probe Count (probe_cnt)", SQLColumn: "probe_cnt", Kind: KindNumeric, Operators: NumericOperators, DefaultOp: "=", Hint: "e.g., 0"},
		{Name: "Wafer ID (w.wafer_id)", SQLColumn: "w.wafer_id", Kind: KindText, Operators: TextOperators, DefaultOp: "LIKE", Hint: "e.g., %WAFER01%"},
		{Name: "Lot (v.lot)", SQLColumn: "v.lot", Kind: KindText, Operators: TextOperators, DefaultOp: "=", Hint: "e.g., 5014844"},
		{Name: "Fablot (v.fablot)", SQLColumn: "v.fablot", Kind: KindText, Operators: []string{"IN", "=", "LIKE"}, DefaultOp: "IN", Hint: "e.g., 'FB01','FB02' or FB01,FB02 for IN"},
		{Name: "Test Area (test_area)", SQLColumn: "test_area", Kind: KindText, Operators: TextOperators, DefaultOp: "LIKE", Hint: "e.g., MP1"},
		{Name: "End Time From", SQLColumn: "w.end_time", Kind: KindDate, Operators: DateOperators, DefaultOp: ">=", Hint: "YYYY-MM-DD"},
		{Name: "End Time To", SQLColumn: "w.end_time", Kind: KindDate, Operators: DateOperators, DefaultOp: "<=", Hint: "YYYY-MM-DD", UpperBound: true},
	}

	return New(columns, filters)
}
