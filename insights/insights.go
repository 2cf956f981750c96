// Package insights serves area context for a stay: current weather,
// seasonal visiting advice, sample events, and a development summary.
package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"wanderlust/normalize"
	"wanderlust/schema"
	"wanderlust/utils"

	"github.com/julienschmidt/httprouter"
)

const weatherBaseURL = "https://api.open-meteo.com/v1/forecast"

type Handler struct {
	Weather *WeatherClient
	Now     func() time.Time
}

func NewHandler() *Handler {
	return &Handler{
		Weather: NewWeatherClient(weatherBaseURL),
		Now:     time.Now,
	}
}

type WeatherClient struct {
	BaseURL string
	Client  *http.Client
}

func NewWeatherClient(baseURL string) *WeatherClient {
	return &WeatherClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// CurrentWeather mirrors open-meteo's current_weather block.
type CurrentWeather struct {
	Temperature   float64 `json:"temperature"`
	Windspeed     float64 `json:"windspeed"`
	Winddirection float64 `json:"winddirection"`
	Weathercode   int     `json:"weathercode"`
	Time          string  `json:"time"`
}

// HourlySample carries the first day of the hourly forecast.
type HourlySample struct {
	Temperature              []float64 `json:"temperature_2m"`
	PrecipitationProbability []float64 `json:"precipitation_probability"`
}

type WeatherReport struct {
	Source       string          `json:"source"`
	Current      *CurrentWeather `json:"current"`
	HourlySample *HourlySample   `json:"hourlySample"`
}

type forecastResponse struct {
	CurrentWeather *CurrentWeather `json:"current_weather"`
	Hourly         *struct {
		Temperature              []float64 `json:"temperature_2m"`
		PrecipitationProbability []float64 `json:"precipitation_probability"`
	} `json:"hourly"`
}

// Fetch calls the forward forecast endpoint and trims the hourly series to
// the first 24 entries.
func (c *WeatherClient) Fetch(ctx context.Context, lat, lng float64) (*WeatherReport, error) {
	url := fmt.Sprintf("%s?latitude=%v&longitude=%v&hourly=temperature_2m,relative_humidity_2m,precipitation_probability,weathercode&current_weather=true",
		c.BaseURL, lat, lng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather service returned %d", resp.StatusCode)
	}

	var forecast forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, err
	}

	report := &WeatherReport{Source: "open-meteo", Current: forecast.CurrentWeather}
	if forecast.Hourly != nil {
		report.HourlySample = &HourlySample{
			Temperature:              firstN(forecast.Hourly.Temperature, 24),
			PrecipitationProbability: firstN(forecast.Hourly.PrecipitationProbability, 24),
		}
	}
	return report, nil
}

func firstN(vals []float64, n int) []float64 {
	if len(vals) > n {
		return vals[:n]
	}
	return vals
}

// GET /api/insights/weather?latitude=..&longitude=..
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	latStr, lngStr := q.Get("latitude"), q.Get("longitude")
	if latStr == "" || lngStr == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Latitude and longitude are required")
		return
	}
	lat, lng := utils.ParseFloat(latStr), utils.ParseFloat(lngStr)
	if err := schema.Coordinates(
		normalize.FlexFloat{Value: lat, Present: true},
		normalize.FlexFloat{Value: lng, Present: true},
	).Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.Weather.Fetch(r.Context(), lat, lng)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"success": true,
			"error":   "Failed to fetch weather",
			"details": err.Error(),
		})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":      true,
		"source":       report.Source,
		"current":      report.Current,
		"hourlySample": report.HourlySample,
	})
}

// SeasonalAdvice maps a month onto a season and a visit recommendation.
// October through January is the high season.
func SeasonalAdvice(now time.Time) (season, recommendation string) {
	season = "Moderate"
	switch now.Month() {
	case time.December, time.January, time.February:
		season = "Winter"
	case time.March, time.April, time.May:
		season = "Spring"
	case time.June, time.July, time.August:
		season = "Monsoon/Summer"
	case time.September, time.October, time.November:
		season = "Autumn"
	}
	recommendation = "Okay time to visit"
	switch now.Month() {
	case time.October, time.November, time.December, time.January:
		recommendation = "Good time to visit"
	}
	return season, recommendation
}

// GET /api/insights/seasonal
func (h *Handler) GetSeasonalAdvice(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	season, recommendation := SeasonalAdvice(h.Now())
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":        true,
		"season":         season,
		"recommendation": recommendation,
	})
}

type sampleEvent struct {
	Name  string `json:"name"`
	Date  string `json:"date"`
	Image string `json:"image"`
}

// GET /api/insights/events?place=City
//
// TODO: replace the static samples once the events provider integration
// lands; the response shape is already final.
func (h *Handler) GetUpcomingEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	place := r.URL.Query().Get("place")
	if place == "" {
		place = "This area"
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"place":   place,
		"upcoming": []sampleEvent{
			{Name: "Local Cultural Festival", Date: "2025-10-05", Image: "https://images.unsplash.com/photo-1543007630-9710e4a00a20?q=80&w=800"},
			{Name: "Beach Music Night", Date: "2025-10-12", Image: "https://images.unsplash.com/photo-1511671782779-c97d3d27a1d4?q=80&w=800"},
		},
	})
}

var developmentNotes = map[string]string{
	"Developed":      "Well-connected area with solid infrastructure and amenities.",
	"Developing":     "Growing neighborhood with ongoing projects and improving facilities.",
	"Underdeveloped": "Basic services available; expect limited infrastructure.",
}

// GET /api/insights/development?status=Developing
func (h *Handler) GetDevelopmentSummary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = "Developing"
	}
	note, ok := developmentNotes[status]
	if !ok {
		note = "Info unavailable"
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"status":  status,
		"note":    note,
	})
}
