package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"chatbot/app/client/weather"
)

var coordinatesRe = regexp.MustCompile(`([-+]?\d*\.?\d+),\s*([-+]?\d*\.?\d+)`)

func (s *Service) handleWeather(ctx context.Context, t *Turn) Reply {
	if m := coordinatesRe.FindStringSubmatch(t.Input); m != nil {
		return s.weatherByCoordinates(ctx, m[1], m[2])
	}

	city, err := t.conv.Ask(ctx, "Please enter your city: ")
	if errors.Is(err, ErrNoInput) {
		return say("Tell me the coordinates too, for example: weather 51.51, -0.13")
	}
	if err != nil {
		return say("Error retrieving weather data. Connect to the Internet or there may be other problems.")
	}

	return s.weatherByCity(ctx, strings.TrimSpace(city))
}

func (s *Service) weatherByCoordinates(ctx context.Context, lat, lon string) Reply {
	report, err := s.opts.Weather.ByCoordinates(ctx, lat, lon)
	if errors.Is(err, weather.ErrNotFound) {
		slog.Warn("Weather lookup missed", "lat", lat, "lon", lon, "error", err)
		return say("Couldn't get weather info.")
	}
	if err != nil {
		slog.Warn("Weather lookup failed", "lat", lat, "lon", lon, "error", err)
		return say("Error getting weather data.")
	}

	return say(fmt.Sprintf("It's %s°C with %s near %s", report.FormatTemperature(), report.Description, report.Place))
}

func (s *Service) weatherByCity(ctx context.Context, city string) Reply {
	report, err := s.opts.Weather.ByCity(ctx, city)
	if errors.Is(err, weather.ErrNotFound) {
		slog.Warn("Weather lookup missed", "city", city, "error", err)
		return say("Couldn't retrieve weather info. Try a valid city name.")
	}
	if err != nil {
		slog.Warn("Weather lookup failed", "city", city, "error", err)
		return say("Error retrieving weather data. Connect to the Internet or there may be other problems.")
	}

	return say(fmt.Sprintf("It is currently %s°C with %s in %s.", report.FormatTemperature(), report.Description, city))
}
