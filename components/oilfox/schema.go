package oilfox

// SchemaGeneration selects which summary response shape the vendor API serves.
//
// Remarks:
//   - The generation is a configuration constant of the account, not a
//     runtime choice: the vendor migrated accounts between API versions, and
//     each version serves exactly one shape.
type SchemaGeneration int

const (
	// SchemaGen1 is the older shape with nested chart, price and forecast arrays.
	SchemaGen1 SchemaGeneration = 1

	// SchemaGen2 is the newer shape with a flattened lastMetering object and
	// without price, forecast and partner product data.
	SchemaGen2 SchemaGeneration = 2
)

// Valid reports whether the generation is supported.
func (g SchemaGeneration) Valid() bool {
	return g == SchemaGen1 || g == SchemaGen2
}

// APIVersion returns the versioned URL path segment for the generation.
func (g SchemaGeneration) APIVersion() string {
	if g == SchemaGen2 {
		return "v4"
	}

	return "v3"
}

// SummaryPath returns the per-generation summary endpoint path.
func (g SchemaGeneration) SummaryPath() string {
	if g == SchemaGen2 {
		return "summary"
	}

	return "user/summary"
}

// Generation 1 summary payload.
//
// All numeric fields are decoded as float64 and coerced to their declared
// record types by the mapper, so an integer field carried as a JSON float
// never fails the decode.
type summaryGen1 struct {
	Devices []deviceGen1 `json:"devices"`
}

type deviceGen1 struct {
	ID         string       `json:"id"`
	HWID       string       `json:"hwid"`
	Name       string       `json:"name"`
	TankVolume float64      `json:"tankVolume"`
	TankHeight float64      `json:"tankHeight"`
	Partner    partnerData  `json:"partner"`
	ChartData  chartData    `json:"chartData"`
	Metering   meteringData `json:"metering"`
}

type partnerData struct {
	PrimaryProducts []productData `json:"primaryProducts"`
}

type productData struct {
	Name string `json:"name"`
}

type chartData struct {
	PriceData    []pricePoint    `json:"priceData"`
	ForecastData []forecastPoint `json:"forecastData"`
}

type pricePoint struct {
	Price float64 `json:"price"`
}

type forecastPoint struct {
	Liters            float64 `json:"liters"`
	FillingPercentage float64 `json:"fillingPercentage"`
}

type meteringData struct {
	Value             float64 `json:"value"`
	CurrentOilHeight  float64 `json:"currentOilHeight"`
	Liters            float64 `json:"liters"`
	FillingPercentage float64 `json:"fillingPercentage"`
	Battery           float64 `json:"battery"`
}

// Generation 2 summary payload.
type summaryGen2 struct {
	Devices []deviceGen2 `json:"devices"`
}

type deviceGen2 struct {
	ID           string       `json:"id"`
	HWID         string       `json:"hwid"`
	Name         string       `json:"name"`
	Tank         tankData     `json:"tank"`
	LastMetering meteringData `json:"lastMetering"`
}

type tankData struct {
	Volume float64 `json:"volume"`
	Height float64 `json:"height"`
}
