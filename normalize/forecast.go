package normalize

import (
	"time"

	"github.com/khudaiyar/aerora/errors"
	"github.com/khudaiyar/aerora/models"
)

// maxForecastDays caps a daily forecast at one week even when the upstream
// returns more distinct dates.
const maxForecastDays = 7

// Intervals maps a raw 5-day/3-hour forecast payload into interval records,
// preserving upstream order (chronological).
func Intervals(raw any) ([]models.IntervalRecord, error) {
	tree, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.NewNormalizationError("forecast payload is not an object", nil)
	}

	entries := list(tree["list"])
	records := make([]models.IntervalRecord, 0, len(entries))
	for _, entry := range entries {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		records = append(records, interval(item))
	}

	return records, nil
}

func interval(item map[string]any) models.IntervalRecord {
	main := object(item, "main")
	wind := object(item, "wind")
	clouds := object(item, "clouds")

	ts := Int64(item["dt"])
	record := models.IntervalRecord{
		Timestamp:   ts,
		Time:        time.Unix(ts, 0).UTC(),
		Temperature: Float64(main["temp"]),
		FeelsLike:   Float64(main["feels_like"]),
		TempMin:     Float64(main["temp_min"]),
		TempMax:     Float64(main["temp_max"]),
		Humidity:    Int(main["humidity"]),
		Pressure:    Int(main["pressure"]),
		WindSpeed:   Float64(wind["speed"]),
		WindDeg:     Float64(wind["deg"]),
		Cloudiness:  Int(clouds["all"]),
		Pop:         Float64(item["pop"]),
	}

	if weather := list(item["weather"]); len(weather) > 0 {
		if entry, ok := weather[0].(map[string]any); ok {
			record.Description = String(entry["description"])
			record.Icon = String(entry["icon"])
			record.MainCondition = String(entry["main"])
		}
	}

	// Rain/snow volumes arrive nested under a "3h" key when present.
	if rain := object(item, "rain"); rain != nil {
		record.Rain = Float64(rain["3h"])
	}
	if snow := object(item, "snow"); snow != nil {
		record.Snow = Float64(snow["3h"])
	}

	return record
}

// AggregateDaily buckets chronological interval records into at most seven
// calendar-day summaries, ascending by date.
//
// Bucketing is first-observed-per-day: the first interval of a new date
// seeds the whole day and later intervals of that date are ignored. This
// mirrors what free-tier upstream data can support; it is a documented
// simplification, not a true min/max/average aggregation.
func AggregateDaily(records []models.IntervalRecord) []models.DailyForecast {
	daily := make([]models.DailyForecast, 0, maxForecastDays)

	var currentDate string
	for _, record := range records {
		date := record.Time.Format("2006-01-02")
		if date == currentDate {
			continue
		}
		if len(daily) >= maxForecastDays {
			break
		}
		currentDate = date
		daily = append(daily, dailyFromInterval(record))
	}

	return daily
}

func dailyFromInterval(record models.IntervalRecord) models.DailyForecast {
	day := record.Time.Truncate(24 * time.Hour)

	// The seeding interval's temperature stands in for every slot of the
	// day summary; min/max come from the same sample.
	return models.DailyForecast{
		Date:      day,
		Timestamp: record.Timestamp,
		Temp: models.TemperatureSummary{
			Min:     record.TempMin,
			Max:     record.TempMax,
			Morning: record.Temperature,
			Day:     record.Temperature,
			Evening: record.Temperature,
			Night:   record.Temperature,
		},
		Description:   record.Description,
		Icon:          record.Icon,
		MainCondition: record.MainCondition,
		Humidity:      record.Humidity,
		Pressure:      record.Pressure,
		WindSpeed:     record.WindSpeed,
		WindDeg:       record.WindDeg,
		Cloudiness:    record.Cloudiness,
		Pop:           record.Pop,
		Rain:          record.Rain,
		Snow:          record.Snow,
		UVIndex:       defaultUVIndex,
	}
}
