package types

import "fmt"

// City matches the cities table structure.
type City struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Weather *string `json:"weather"` // nil until a weather lookup succeeds
}

// Weather is the current conditions returned by the lookup service.
type Weather struct {
	Description string  `json:"description"`
	Temperature float64 `json:"temperature"`
}

// Summary is the form stored in cities.weather.
func (w Weather) Summary() string {
	return fmt.Sprintf("%s, %.1f°C", w.Description, w.Temperature)
}
