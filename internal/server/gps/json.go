package gps

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Допустимые имена ключей JSON, в порядке приоритета
var (
	imeiKeys      = []string{"imei", "device_id", "deviceId", "id"}
	latitudeKeys  = []string{"latitude", "lat"}
	longitudeKeys = []string{"longitude", "lon", "lng"}
	timestampKeys = []string{"timestamp", "time", "fixTime"}
	speedKeys     = []string{"speed"}
	headingKeys   = []string{"heading", "course", "bearing"}
	altitudeKeys  = []string{"altitude", "alt"}
	batteryKeys   = []string{"battery", "batt", "battery_level"}
)

// unixMillisThreshold числовые метки больше этого значения считаются миллисекундами
const unixMillisThreshold = 1e12

func parseJSON(body []byte) (*Reading, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognizedFormat, err)
	}

	r := &Reading{}

	if v, ok := lookup(payload, imeiKeys); ok {
		r.IMEI = strings.TrimSpace(toString(v))
	}

	lat, okLat := lookupFloat(payload, latitudeKeys)
	lon, okLon := lookupFloat(payload, longitudeKeys)
	if !okLat || !okLon {
		return nil, fmt.Errorf("%w: latitude and longitude are required", ErrInvalidCoordinates)
	}
	r.Latitude, r.Longitude = lat, lon

	if v, ok := lookup(payload, timestampKeys); ok {
		ts, err := toTime(v)
		if err != nil {
			return nil, err
		}
		r.Timestamp = ts
	}

	r.Speed = lookupOptional(payload, speedKeys)
	r.Heading = lookupOptional(payload, headingKeys)
	r.Altitude = lookupOptional(payload, altitudeKeys)
	r.Battery = lookupOptional(payload, batteryKeys)

	return r, nil
}

func lookup(payload map[string]any, keys []string) (any, bool) {
	for _, key := range keys {
		if v, ok := payload[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func lookupFloat(payload map[string]any, keys []string) (float64, bool) {
	v, ok := lookup(payload, keys)
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

func lookupOptional(payload map[string]any, keys []string) *float64 {
	f, ok := lookupFloat(payload, keys)
	if !ok {
		return nil
	}
	return &f
}

// toFloat принимает как числа, так и числа в строках
func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	case float64:
		return val, true
	default:
		return 0, false
	}
}

func toString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// toTime принимает RFC3339 строку или Unix время в секундах либо миллисекундах
func toTime(v any) (time.Time, error) {
	switch val := v.(type) {
	case string:
		if ts, err := time.Parse(time.RFC3339Nano, val); err == nil {
			return ts.UTC(), nil
		}
		if ts, err := time.ParseInLocation(frameTimeLayout, val, time.UTC); err == nil {
			return ts, nil
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, val)
	case json.Number:
		n, err := val.Float64()
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, val)
		}
		if n > unixMillisThreshold {
			return time.UnixMilli(int64(n)).UTC(), nil
		}
		return time.Unix(int64(n), 0).UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidTimestamp, v)
	}
}
