package validation

import (
	"fmt"
	"math"
	"regexp"
)

// DeviceIDPattern определяет допустимый формат IMEI или id трекера.
// Трекеры GL300 присылают 15 цифр, JSON отправители могут использовать
// произвольный идентификатор устройства.
var DeviceIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,32}$`)

// TargetIDPattern определяет допустимый формат id дистанции или забега
var TargetIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.:-]{1,64}$`)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// ValidateIMEI проверяет идентификатор трекера
func ValidateIMEI(imei string) error {
	if imei == "" {
		return fmt.Errorf("imei cannot be empty")
	}

	if !DeviceIDPattern.MatchString(imei) {
		return fmt.Errorf("imei must be 3-32 characters of letters, numbers, '-' or '_'")
	}

	return nil
}

// ValidateCoordinates проверяет диапазон широты и долготы.
// Границы включены.
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return fmt.Errorf("coordinates must be numbers")
	}

	if lat < MinLatitude || lat > MaxLatitude {
		return fmt.Errorf("latitude %v out of range [%v, %v]", lat, MinLatitude, MaxLatitude)
	}

	if lon < MinLongitude || lon > MaxLongitude {
		return fmt.Errorf("longitude %v out of range [%v, %v]", lon, MinLongitude, MaxLongitude)
	}

	return nil
}

// ValidateTargetID проверяет id дистанции или забега
func ValidateTargetID(id string) error {
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}

	if !TargetIDPattern.MatchString(id) {
		return fmt.Errorf("id %q contains unsupported characters", id)
	}

	return nil
}
