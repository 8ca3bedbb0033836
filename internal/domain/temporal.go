package domain

// PeriodBucket aggregates classification counts for one YYYY-MM period.
type PeriodBucket struct {
	Period           string  `json:"periodo"`
	WithoutPrefix    int     `json:"sin_prefijo"`
	WithPrefix       int     `json:"con_prefijo"`
	Total            int     `json:"total"`
	PctWithoutPrefix float64 `json:"porcentaje_sin_prefijo"`
	PctWithPrefix    float64 `json:"porcentaje_con_prefijo"`
}

// TemporalAnalysis is the ordered monthly cohort breakdown. Periods and Data
// share the same ascending order.
type TemporalAnalysis struct {
	Periods []string       `json:"periodos"`
	Data    []PeriodBucket `json:"datos"`
}

// Summary is the run-level result of a full analysis.
type Summary struct {
	TotalRecords       int              `json:"total_usuarios"`
	TotalWithPhone     int              `json:"total_con_telefono"`
	TotalWithoutPrefix int              `json:"total_sin_prefijo"`
	TotalWithPrefix    int              `json:"total_con_prefijo"`
	PctWithoutPrefix   float64          `json:"porcentaje_sin_prefijo"`
	Temporal           TemporalAnalysis `json:"analisis_temporal"`
}
