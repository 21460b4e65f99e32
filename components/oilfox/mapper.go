package oilfox

import (
	"encoding/json"
	"fmt"

	"github.com/codeking/oilfox-hub/components/status"
	"github.com/codeking/oilfox-hub/components/tank"
)

// Normalize translates a raw summary response into ordered device records.
//
// Parameters:
//   - body - raw summary response body.
//   - gen - schema generation the response was served with.
//
// Remarks:
//   - Vendor entry order is preserved and becomes the sink display order.
//   - A missing source field yields the zero value of its declared type. Only
//     a missing top-level device list fails the call.
//   - The emitted field set depends on the generation: generation 2 records
//     carry no oil type, price or forecast fields at all.
func Normalize(body []byte, gen SchemaGeneration) ([]tank.Record, error) {
	switch gen {
	case SchemaGen1:
		return normalizeGen1(body)
	case SchemaGen2:
		return normalizeGen2(body)
	default:
		return nil, fmt.Errorf("oilfox-mapper: unknown schema generation: gen=%d: %w",
			gen, status.StatusNotSupported)
	}
}

func normalizeGen1(body []byte) ([]tank.Record, error) {
	var summary summaryGen1

	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("oilfox-mapper: failed to decode summary: err=%v: %w",
			err, status.StatusFormatError)
	}
	if summary.Devices == nil {
		return nil, fmt.Errorf("oilfox-mapper: summary is missing the device list: %w",
			status.StatusFormatError)
	}

	records := make([]tank.Record, 0, len(summary.Devices))

	for _, dev := range summary.Devices {
		name := displayName(dev.Name, dev.HWID)

		var oilType string
		if len(dev.Partner.PrimaryProducts) > 0 {
			oilType = dev.Partner.PrimaryProducts[0].Name
		}

		// The price history is ordered oldest first, the current price is the
		// last entry.
		var price float64
		if n := len(dev.ChartData.PriceData); n > 0 {
			price = dev.ChartData.PriceData[n-1].Price
		}

		// The forecast list starts with the next month.
		var forecast forecastPoint
		if len(dev.ChartData.ForecastData) > 0 {
			forecast = dev.ChartData.ForecastData[0]
		}

		records = append(records, tank.Record{
			DeviceID: dev.ID,
			Label:    name,
			Fields: []tank.Field{
				tank.TextField(tank.FieldName, name),
				tank.TextField(tank.FieldOilType, oilType),
				tank.FloatField(tank.FieldVolume, tank.ProfileVolumeLiters, dev.TankVolume),
				tank.IntField(tank.FieldTankHeight, tank.ProfileDistance, int64(dev.TankHeight)),
				tank.IntField(tank.FieldEmptyHeight, tank.ProfileDistance, int64(dev.Metering.Value)),
				tank.IntField(tank.FieldFillingHeight, tank.ProfileDistance, int64(dev.Metering.CurrentOilHeight)),
				tank.FloatField(tank.FieldCurrentLevelLiters, tank.ProfileVolumeLiters, dev.Metering.Liters),
				tank.IntField(tank.FieldCurrentLevelPercent, tank.ProfileIntensityPercent, int64(dev.Metering.FillingPercentage)),
				tank.FloatField(tank.FieldForecastLiters, tank.ProfileVolumeLiters, forecast.Liters),
				tank.IntField(tank.FieldForecastPercent, tank.ProfileIntensityPercent, int64(forecast.FillingPercentage)),
				tank.IntField(tank.FieldBattery, tank.ProfileBatteryPercent, int64(dev.Metering.Battery)),
				tank.FloatField(tank.FieldCurrentPrice, tank.ProfileCurrency, price),
			},
		})
	}

	return records, nil
}

func normalizeGen2(body []byte) ([]tank.Record, error) {
	var summary summaryGen2

	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("oilfox-mapper: failed to decode summary: err=%v: %w",
			err, status.StatusFormatError)
	}
	if summary.Devices == nil {
		return nil, fmt.Errorf("oilfox-mapper: summary is missing the device list: %w",
			status.StatusFormatError)
	}

	records := make([]tank.Record, 0, len(summary.Devices))

	for _, dev := range summary.Devices {
		name := displayName(dev.Name, dev.HWID)

		records = append(records, tank.Record{
			DeviceID: dev.ID,
			Label:    name,
			Fields: []tank.Field{
				tank.TextField(tank.FieldName, name),
				tank.FloatField(tank.FieldVolume, tank.ProfileVolumeLiters, dev.Tank.Volume),
				tank.IntField(tank.FieldTankHeight, tank.ProfileDistance, int64(dev.Tank.Height)),
				tank.IntField(tank.FieldEmptyHeight, tank.ProfileDistance, int64(dev.LastMetering.Value)),
				tank.IntField(tank.FieldFillingHeight, tank.ProfileDistance, int64(dev.LastMetering.CurrentOilHeight)),
				tank.FloatField(tank.FieldCurrentLevelLiters, tank.ProfileVolumeLiters, dev.LastMetering.Liters),
				tank.IntField(tank.FieldCurrentLevelPercent, tank.ProfileIntensityPercent, int64(dev.LastMetering.FillingPercentage)),
				tank.IntField(tank.FieldBattery, tank.ProfileBatteryPercent, int64(dev.LastMetering.Battery)),
			},
		})
	}

	return records, nil
}

func displayName(name string, hwid string) string {
	if name != "" {
		return name
	}

	return hwid
}
