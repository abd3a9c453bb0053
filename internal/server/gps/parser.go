// Package gps decodes tracker webhook payloads: Queclink GL300 GTFRI text
// frames and a generic JSON body with several accepted key aliases.
package gps

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iudanet/startline/internal/validation"
)

// Reading нормализованная точка до привязки к бегуну или мотоциклу
type Reading struct {
	Timestamp time.Time // нулевое значение, если устройство не прислало время
	Speed     *float64
	Heading   *float64
	Altitude  *float64
	Battery   *float64
	IMEI      string
	Latitude  float64
	Longitude float64
}

// Format тип распознанного тела запроса
type Format string

const (
	FormatJSON  Format = "json"
	FormatGTFRI Format = "gtfri"
)

var framePrefixes = []string{"+RESP:GTFRI", "+BUFF:GTFRI"}

// Detect определяет формат по первому символу или префиксу
func Detect(body []byte) (Format, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "", ErrUnrecognizedFormat
	}
	if trimmed[0] == '{' {
		return FormatJSON, nil
	}
	for _, prefix := range framePrefixes {
		if bytes.HasPrefix(trimmed, []byte(prefix)) {
			return FormatGTFRI, nil
		}
	}
	return "", ErrUnrecognizedFormat
}

// Parse decodes a webhook body and validates the result. The returned
// reading has a valid IMEI and in-range coordinates.
func Parse(body []byte) (*Reading, error) {
	format, err := Detect(body)
	if err != nil {
		return nil, err
	}

	var r *Reading
	switch format {
	case FormatJSON:
		r, err = parseJSON(body)
	default:
		r, err = parseFrame(string(bytes.TrimSpace(body)))
	}
	if err != nil {
		return nil, err
	}

	if err := Validate(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate проверяет IMEI и диапазон координат
func Validate(r *Reading) error {
	if r.IMEI == "" {
		return ErrMissingIMEI
	}
	if err := validation.ValidateIMEI(r.IMEI); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidIMEI, err)
	}
	if err := validation.ValidateCoordinates(r.Latitude, r.Longitude); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCoordinates, err)
	}
	return nil
}

// Позиции полей в кадре GTFRI
const (
	frameIMEI      = 2
	frameSpeed     = 8
	frameHeading   = 9
	frameAltitude  = 10
	frameLongitude = 11
	frameLatitude  = 12
	frameTime      = 13

	// Батарея передается третьим полем с конца в полном кадре
	batteryMinFields = 20
	batteryFromEnd   = 3
)

// frameTimeLayout формат времени GPS в кадре, всегда UTC
const frameTimeLayout = "20060102150405"

// parseFrame разбирает позиционный кадр:
// +RESP:GTFRI,<protocol>,<imei>,<name>,,<report>,<n>,<acc>,<speed>,<azimuth>,<alt>,<lon>,<lat>,<utc>,...,<battery>,<send time>,<count>$
func parseFrame(frame string) (*Reading, error) {
	frame = strings.TrimSuffix(frame, "$")
	fields := strings.Split(frame, ",")
	if len(fields) <= frameTime {
		return nil, fmt.Errorf("%w: frame has %d fields", ErrUnrecognizedFormat, len(fields))
	}

	r := &Reading{IMEI: strings.TrimSpace(fields[frameIMEI])}

	var err error
	if r.Longitude, err = requiredFloat(fields[frameLongitude]); err != nil {
		return nil, fmt.Errorf("%w: longitude: %v", ErrInvalidCoordinates, err)
	}
	if r.Latitude, err = requiredFloat(fields[frameLatitude]); err != nil {
		return nil, fmt.Errorf("%w: latitude: %v", ErrInvalidCoordinates, err)
	}

	if raw := strings.TrimSpace(fields[frameTime]); raw != "" {
		ts, err := time.ParseInLocation(frameTimeLayout, raw, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimestamp, raw)
		}
		r.Timestamp = ts
	}

	r.Speed = optionalFloat(fields[frameSpeed])
	r.Heading = optionalFloat(fields[frameHeading])
	r.Altitude = optionalFloat(fields[frameAltitude])
	if len(fields) >= batteryMinFields {
		r.Battery = optionalFloat(fields[len(fields)-batteryFromEnd])
	}

	return r, nil
}

func requiredFloat(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty value")
	}
	return strconv.ParseFloat(raw, 64)
}

// optionalFloat возвращает nil для пустого или нечислового поля
func optionalFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
