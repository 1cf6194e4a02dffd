package swellapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swellwindow/swellwindow/internal/httpx"
	"github.com/swellwindow/swellwindow/internal/preference"
	"github.com/swellwindow/swellwindow/internal/preset"
	"github.com/swellwindow/swellwindow/internal/recommendation"
	"github.com/swellwindow/swellwindow/internal/spot"
	"github.com/swellwindow/swellwindow/internal/swellapi"
)

func newTestClient(baseURL string) *swellapi.Client {
	return swellapi.NewClient(swellapi.ClientConfig{
		BaseURL: baseURL,
		APIKey:  "****",
		HTTPClient: httpx.NewClient(httpx.ClientConfig{
			Name:          "swellapi-test",
			MaxRetries:    1,
			RetryInterval: time.Millisecond,
		}),
		Logger: zerolog.Nop(),
	})
}

func TestClient_Name(t *testing.T) {
	client := swellapi.NewClient(swellapi.ClientConfig{
		APIKey: "****",
		Logger: zerolog.Nop(),
	})

	assert.Equal(t, "swellapi", client.Name())
}

func TestClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spots", r.URL.Path)
		assert.Equal(t, "Bearer ****", r.Header.Get("Authorization"))

		resp := map[string]interface{}{
			"spots": []map[string]interface{}{
				{
					"id":        42,
					"name":      "Scheveningen Noord",
					"latitude":  52.11,
					"longitude": 4.27,
					"timezone":  "Europe/Amsterdam",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	spots, err := newTestClient(server.URL).List(context.Background())
	require.NoError(t, err)
	require.Len(t, spots, 1)
	assert.Equal(t, int64(42), spots[0].ID)
	assert.Equal(t, "Scheveningen Noord", spots[0].Name)
	assert.Equal(t, "Europe/Amsterdam", spots[0].Timezone)
}

func TestClient_Get_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Get(context.Background(), 999)
	assert.ErrorIs(t, err, spot.ErrSpotNotFound)
}

func TestClient_GetPreference(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/user-1/spots/42/preference", r.URL.Path)

		resp := map[string]interface{}{
			"spot_id":   42,
			"is_active": true,
			"wave_height": map[string]float64{
				"min":   0.8,
				"max":   2.5,
				"ideal": 1.5,
			},
			"wind_directions": []string{"N", "NE"},
			"ideal_tide":      "rising",
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	pref, err := newTestClient(server.URL).GetPreference(context.Background(), "user-1", 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), pref.SpotID)
	assert.True(t, pref.IsActive)
	require.NotNil(t, pref.WaveHeight.Ideal)
	assert.Equal(t, 1.5, *pref.WaveHeight.Ideal)
	assert.Nil(t, pref.WavePeriod.Min)
	assert.Equal(t, []string{"N", "NE"}, pref.WindDirections)
	assert.Equal(t, preference.TideRising, pref.IdealTide)
}

func TestClient_GetPreference_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetPreference(context.Background(), "user-1", 42)
	assert.ErrorIs(t, err, preference.ErrPreferenceNotFound)
}

func TestClient_GetLevelDefault_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetLevelDefault(context.Background(), "user-1", 42)
	assert.ErrorIs(t, err, preference.ErrDefaultsNotFound)
}

func TestClient_SavePreference_AllowList(t *testing.T) {
	var body map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/users/user-1/spots/42/preference", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	min := 0.8
	pref := &preference.SpotPreference{
		SpotID:     42,
		IsActive:   true,
		WaveHeight: preference.Band{Min: &min},
		IdealTide:  preference.TideHigh,
	}

	err := newTestClient(server.URL).SavePreference(context.Background(), "user-1", pref)
	require.NoError(t, err)

	assert.Contains(t, body, "is_active")
	assert.Contains(t, body, "wave_height")
	assert.Contains(t, body, "ideal_tide")
	// Unset bands are omitted rather than sent as nulls.
	assert.NotContains(t, body, "wind_speed")
	assert.NotContains(t, body, "wind_directions")
}

func TestClient_DeactivatePreference(t *testing.T) {
	var body map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	err := newTestClient(server.URL).DeactivatePreference(context.Background(), "user-1", 42)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"is_active": false}, body)
}

func TestClient_ListByUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/user-1/presets", r.URL.Path)

		resp := map[string]interface{}{
			"presets": []map[string]interface{}{
				{
					"id":                 7,
					"name":               "Dawn patrol",
					"spot_ids":           []int64{42},
					"start_time":         "05:00:00",
					"end_time":           "08:00:00",
					"day_selection_type": "weekdays",
					"day_values":         []int{6, 0},
					"is_default":         true,
					"is_active":          true,
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	presets, err := newTestClient(server.URL).ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, presets, 1)

	p := presets[0]
	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, "user-1", p.UserID)
	assert.Equal(t, preset.DaySelectionWeekdays, p.DaySelection)
	assert.Equal(t, []int{6, 0}, p.DayValues)
	assert.True(t, p.IsDefault)
}

func TestClient_Create_AssignsID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var in map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		in["id"] = 11
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(in)
	}))
	defer server.Close()

	p := &preset.Preset{
		UserID:       "user-1",
		Name:         "After work",
		SpotIDs:      []int64{42},
		StartTimeUTC: "16:00:00",
		EndTimeUTC:   "19:00:00",
		DaySelection: preset.DaySelectionOffsets,
		DayValues:    []int{0, 1},
		IsActive:     true,
	}

	err := newTestClient(server.URL).Create(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, int64(11), p.ID)
	assert.Equal(t, "user-1", p.UserID)
	assert.Equal(t, "After work", p.Name)
}

func TestClient_Delete_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	err := newTestClient(server.URL).Delete(context.Background(), "user-1", 7)
	assert.ErrorIs(t, err, preset.ErrPresetNotFound)
}

func TestClient_GetRecommendations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/recommendations", r.URL.Path)

		var req recommendation.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []int64{42}, req.SpotIDs)

		resp := map[string]interface{}{
			"spots": []map[string]interface{}{
				{
					"spot_id":    42,
					"day_offset": 1,
					"hours": []map[string]interface{}{
						{
							"timestamp":         "2025-06-16T06:00:00Z",
							"suitability_score": 0.82,
							"detailed_scores":   map[string]float64{"wave_height": 0.9},
							"conditions": map[string]interface{}{
								"wave_height":     1.4,
								"wind_direction":  "NE",
								"swell_direction": "NW",
								"tide_phase":      "rising",
							},
						},
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	set, err := newTestClient(server.URL).GetRecommendations(context.Background(), &recommendation.Request{
		UserID:       "user-1",
		SpotIDs:      []int64{42},
		DayOffsets:   []int{1},
		StartTimeUTC: "05:00:00",
		EndTimeUTC:   "08:00:00",
	})
	require.NoError(t, err)
	require.Len(t, set.Spots, 1)
	assert.Equal(t, int64(42), set.Spots[0].SpotID)
	assert.Equal(t, 1, set.Spots[0].DayOffset)
	require.Len(t, set.Spots[0].Hours, 1)
	assert.Equal(t, 0.82, set.Spots[0].Hours[0].SuitabilityScore)
	assert.Equal(t, "rising", set.Spots[0].Hours[0].Conditions.TidePhase)
}

func TestClient_GetRecommendations_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetRecommendations(context.Background(), &recommendation.Request{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code: 500")
}
