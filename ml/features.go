package ml

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// FeatureRecord is the six-field input the revenue model is trained on.
type FeatureRecord struct {
	CustomersPerDay int     `json:"customers_per_day"`
	AvgOrderValue   float64 `json:"avg_order_value"`
	OperatingHours  int     `json:"operating_hours"`
	NumEmployees    int     `json:"num_employees"`
	MarketingSpend  float64 `json:"marketing_spend"`
	FootTraffic     int     `json:"foot_traffic"`
}

// FeatureSpec describes one bounded input control.
type FeatureSpec struct {
	Key     string  `json:"key"`
	Column  string  `json:"column"`
	Label   string  `json:"label"`
	Help    string  `json:"help"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
	Integer bool    `json:"integer"`
}

const (
	KeyCustomersPerDay = "customers_per_day"
	KeyAvgOrderValue   = "avg_order_value"
	KeyOperatingHours  = "operating_hours"
	KeyNumEmployees    = "num_employees"
	KeyMarketingSpend  = "marketing_spend"
	KeyFootTraffic     = "foot_traffic"
)

// schema order is the column order the artifact was trained with.
var schema = []FeatureSpec{
	{
		Key:     KeyCustomersPerDay,
		Column:  "Number_of_Customers_Per_Day",
		Label:   "Number of Customers Per Day",
		Help:    "Average number of customers visiting the coffee shop per day.",
		Min:     0,
		Max:     1000,
		Step:    1,
		Default: 200,
		Integer: true,
	},
	{
		Key:     KeyAvgOrderValue,
		Column:  "Average_Order_Value",
		Label:   "Average Order Value ($)",
		Help:    "Average amount spent by each customer per visit.",
		Min:     0,
		Max:     20,
		Step:    0.1,
		Default: 5,
	},
	{
		Key:     KeyOperatingHours,
		Column:  "Operating_Hours_Per_Day",
		Label:   "Operating Hours Per Day",
		Help:    "Number of hours the coffee shop is open each day.",
		Min:     0,
		Max:     24,
		Step:    1,
		Default: 10,
		Integer: true,
	},
	{
		Key:     KeyNumEmployees,
		Column:  "Number_of_Employees",
		Label:   "Number of Employees",
		Help:    "Number of employees working at the coffee shop.",
		Min:     1,
		Max:     50,
		Step:    1,
		Default: 5,
		Integer: true,
	},
	{
		Key:     KeyMarketingSpend,
		Column:  "Marketing_Spend_Per_Day",
		Label:   "Marketing Spend Per Day ($)",
		Help:    "Amount spent on marketing per day.",
		Min:     0,
		Max:     1000,
		Step:    1,
		Default: 100,
	},
	{
		Key:     KeyFootTraffic,
		Column:  "Location_Foot_Traffic",
		Label:   "Location Foot Traffic",
		Help:    "Estimated foot traffic at the location per day.",
		Min:     0,
		Max:     2000,
		Step:    1,
		Default: 500,
		Integer: true,
	},
}

// Schema returns a copy of the input control definitions in model column order.
func Schema() []FeatureSpec {
	out := make([]FeatureSpec, len(schema))
	copy(out, schema)
	return out
}

func DefaultFeatureRecord() FeatureRecord {
	return FeatureRecord{
		CustomersPerDay: 200,
		AvgOrderValue:   5.0,
		OperatingHours:  10,
		NumEmployees:    5,
		MarketingSpend:  100.0,
		FootTraffic:     500,
	}
}

// Clamp forces every field into its domain.
func (r FeatureRecord) Clamp() FeatureRecord {
	return FeatureRecord{
		CustomersPerDay: clampInt(r.CustomersPerDay, schema[0]),
		AvgOrderValue:   clampFloat(r.AvgOrderValue, schema[1]),
		OperatingHours:  clampInt(r.OperatingHours, schema[2]),
		NumEmployees:    clampInt(r.NumEmployees, schema[3]),
		MarketingSpend:  clampFloat(r.MarketingSpend, schema[4]),
		FootTraffic:     clampInt(r.FootTraffic, schema[5]),
	}
}

// InDomain reports whether every field already lies inside its bounds.
func (r FeatureRecord) InDomain() bool {
	return r == r.Clamp()
}

func FeatureVector(record FeatureRecord) []float64 {
	return []float64{
		float64(record.CustomersPerDay),
		record.AvgOrderValue,
		float64(record.OperatingHours),
		float64(record.NumEmployees),
		record.MarketingSpend,
		float64(record.FootTraffic),
	}
}

func FeatureNames() []string {
	names := make([]string, len(schema))
	for i, spec := range schema {
		names[i] = spec.Column
	}
	return names
}

// CollectFeatures builds a record from a key/value source such as form values.
// Absent or unparseable values take the field default, everything else is clamped.
func CollectFeatures(get func(key string) string) FeatureRecord {
	values := make([]float64, len(schema))
	for i, spec := range schema {
		values[i] = collectValue(get(spec.Key), spec)
	}
	return FeatureRecord{
		CustomersPerDay: int(values[0]),
		AvgOrderValue:   values[1],
		OperatingHours:  int(values[2]),
		NumEmployees:    int(values[3]),
		MarketingSpend:  values[4],
		FootTraffic:     int(values[5]),
	}
}

func collectValue(raw string, spec FeatureSpec) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return spec.Default
	}
	value, err := strconv.ParseFloat(raw, 64)
	// out-of-range numbers come back as ±Inf and are clamped like any other
	if (err != nil && !errors.Is(err, strconv.ErrRange)) || math.IsNaN(value) {
		return spec.Default
	}
	if spec.Integer {
		value = math.Round(value)
	}
	return math.Max(spec.Min, math.Min(spec.Max, value))
}

func clampInt(value int, spec FeatureSpec) int {
	if value < int(spec.Min) {
		return int(spec.Min)
	}
	if value > int(spec.Max) {
		return int(spec.Max)
	}
	return value
}

func clampFloat(value float64, spec FeatureSpec) float64 {
	if math.IsNaN(value) {
		return spec.Default
	}
	return math.Max(spec.Min, math.Min(spec.Max, value))
}
