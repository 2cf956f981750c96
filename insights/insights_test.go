package insights

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSeasonalAdvice(t *testing.T) {
	cases := []struct {
		month          time.Month
		season         string
		recommendation string
	}{
		{time.January, "Winter", "Good time to visit"},
		{time.April, "Spring", "Okay time to visit"},
		{time.July, "Monsoon/Summer", "Okay time to visit"},
		{time.October, "Autumn", "Good time to visit"},
		{time.December, "Winter", "Good time to visit"},
	}
	for _, c := range cases {
		now := time.Date(2026, c.month, 10, 0, 0, 0, 0, time.UTC)
		season, rec := SeasonalAdvice(now)
		if season != c.season || rec != c.recommendation {
			t.Errorf("%v: got (%q, %q), want (%q, %q)", c.month, season, rec, c.season, c.recommendation)
		}
	}
}

func TestWeatherFetchTrimsHourly(t *testing.T) {
	hourly := make([]float64, 48)
	for i := range hourly {
		hourly[i] = float64(i)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"current_weather": map[string]any{"temperature": 28.5, "weathercode": 1},
			"hourly": map[string]any{
				"temperature_2m":            hourly,
				"precipitation_probability": hourly,
			},
		})
	}))
	defer srv.Close()

	c := NewWeatherClient(srv.URL)
	report, err := c.Fetch(context.Background(), 12.97, 77.59)
	if err != nil {
		t.Fatal(err)
	}
	if report.Source != "open-meteo" {
		t.Errorf("source = %q", report.Source)
	}
	if report.Current == nil || report.Current.Temperature != 28.5 {
		t.Errorf("current = %+v", report.Current)
	}
	if len(report.HourlySample.Temperature) != 24 {
		t.Errorf("hourly sample len = %d, want 24", len(report.HourlySample.Temperature))
	}
}

func TestWeatherFetchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewWeatherClient(srv.URL)
	if _, err := c.Fetch(context.Background(), 0, 0); err == nil {
		t.Fatal("upstream failure not surfaced")
	}
}

func TestGetWeatherValidation(t *testing.T) {
	h := NewHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/insights/weather", nil)
	w := httptest.NewRecorder()
	h.GetWeather(w, req, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing params: status = %d, want 400", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/insights/weather?latitude=95&longitude=10", nil)
	w = httptest.NewRecorder()
	h.GetWeather(w, req, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("out-of-range latitude: status = %d, want 400", w.Code)
	}
}

func TestDevelopmentSummary(t *testing.T) {
	h := NewHandler()
	cases := []struct {
		query string
		note  string
	}{
		{"?status=Developed", developmentNotes["Developed"]},
		{"", developmentNotes["Developing"]},
		{"?status=Unknown", "Info unavailable"},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/insights/development"+c.query, nil)
		w := httptest.NewRecorder()
		h.GetDevelopmentSummary(w, req, nil)
		var resp map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp["note"] != c.note {
			t.Errorf("%s: note = %v, want %q", c.query, resp["note"], c.note)
		}
	}
}
