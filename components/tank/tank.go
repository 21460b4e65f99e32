package tank

// FieldKind enumerates the value types a named field can carry.
type FieldKind int

const (
	// KindText is a string-valued field.
	KindText FieldKind = iota

	// KindFloat is a float-valued field.
	KindFloat

	// KindInt is an integer-valued field.
	KindInt
)

// ProfileID classifies how the sink should render values of a field.
type ProfileID string

const (
	// ProfileNone is used for plain text fields without display formatting.
	ProfileNone ProfileID = ""

	// ProfileCurrency renders a price with two decimals and a currency suffix.
	ProfileCurrency ProfileID = "currency"

	// ProfileVolumeLiters renders a volume without decimals and a liter suffix.
	ProfileVolumeLiters ProfileID = "volume-liters"

	// ProfileDistance renders a height in centimeters.
	ProfileDistance ProfileID = "distance"

	// ProfileIntensityPercent renders a fill level percentage.
	ProfileIntensityPercent ProfileID = "percentage-intensity"

	// ProfileBatteryPercent renders a battery charge percentage.
	ProfileBatteryPercent ProfileID = "percentage-battery"
)

// Profile describes how values of one classifier are rendered by the sink.
type Profile struct {
	ID     ProfileID
	Kind   FieldKind
	Digits int
	Suffix string
	Icon   string
}

// Profiles returns the static profile table.
//
// Remarks:
//   - The table is created once by the sink and reused across runs.
func Profiles() []Profile {
	return []Profile{
		{ID: ProfileCurrency, Kind: KindFloat, Digits: 2, Suffix: " €", Icon: "Euro"},
		{ID: ProfileVolumeLiters, Kind: KindFloat, Digits: 0, Suffix: " Liter", Icon: "Drops"},
		{ID: ProfileDistance, Kind: KindInt, Suffix: " cm", Icon: "Gauge"},
		{ID: ProfileIntensityPercent, Kind: KindInt, Suffix: " %", Icon: "Intensity"},
		{ID: ProfileBatteryPercent, Kind: KindInt, Suffix: " %", Icon: "Battery"},
	}
}

// Well-known field names of a device record.
const (
	FieldName                = "Name"
	FieldOilType             = "Oil Type"
	FieldVolume              = "Volume"
	FieldTankHeight          = "Tank Height"
	FieldEmptyHeight         = "Empty Height"
	FieldFillingHeight       = "Filling Height"
	FieldCurrentLevelLiters  = "Current Level (L)"
	FieldCurrentLevelPercent = "Current Level (%)"
	FieldForecastLiters      = "Level next month (L)"
	FieldForecastPercent     = "Level next month (%)"
	FieldBattery             = "Battery"
	FieldCurrentPrice        = "Current Price"
)

// Field is a single named measurement of a device record.
type Field struct {
	Name    string
	Kind    FieldKind
	Profile ProfileID
	Text    string
	Float   float64
	Int     int64
}

// TextField creates a string-valued field without a display profile.
func TextField(name string, value string) Field {
	return Field{Name: name, Kind: KindText, Text: value}
}

// FloatField creates a float-valued field.
func FloatField(name string, profile ProfileID, value float64) Field {
	return Field{Name: name, Kind: KindFloat, Profile: profile, Float: value}
}

// IntField creates an integer-valued field.
func IntField(name string, profile ProfileID, value int64) Field {
	return Field{Name: name, Kind: KindInt, Profile: profile, Int: value}
}

// Value returns the field value as its declared type.
func (f Field) Value() any {
	switch f.Kind {
	case KindFloat:
		return f.Float
	case KindInt:
		return f.Int
	default:
		return f.Text
	}
}

// Record is a uniform per-device snapshot produced by the response mapper.
//
// Remarks:
//   - Fields are ordered; the index of a field defines its sink display ordinal.
//   - The field set depends on the API schema generation only, never on which
//     source fields happened to be present in a single response.
type Record struct {
	// DeviceID is the stable vendor-assigned device identifier.
	DeviceID string

	// Label is the human readable device name.
	Label string

	// Fields in declaration order.
	Fields []Field
}
