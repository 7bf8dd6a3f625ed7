package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/penwyp/go-baggage-monitor/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `[
  {"flightNumber":"DL123","seat":"8A","baggageType":"pet","status":"not_loaded","hasBoarded":true,"departureDateTime":"28/FEB 23:30","flightStand":"A12B3","bagtag":"0006123456"},
  {"flightNumber":"UA360","seat":"3F","baggageType":"weapon","status":"loaded","hasBoarded":false,"departureDateTime":"28/FEB 15:45","flightStand":"C07D1","bagtag":"0016987654","extra":"ignored"}
]`

func TestNew(t *testing.T) {
	c := New("http://backend/api/", 0)
	assert.Equal(t, "http://backend/api", c.BaseURL())
	assert.Equal(t, 30*time.Second, c.httpClient.Timeout)

	c = New("http://backend", 5*time.Second)
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
}

func TestFetchSpecialBaggage(t *testing.T) {
	from := time.Date(2025, 2, 27, 12, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/get-special-baggage", r.URL.Path)
		assert.Equal(t, "2025-02-27T12:00:00Z", r.URL.Query().Get("from"))
		assert.Equal(t, "2025-03-01T12:00:00Z", r.URL.Query().Get("to"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	c := New(server.URL+"/api", time.Second)
	records, err := c.FetchSpecialBaggage(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, model.LoadingRecord{
		FlightNumber:      "DL123",
		Seat:              "8A",
		BaggageType:       model.BaggagePet,
		Status:            model.StatusNotLoaded,
		HasBoarded:        true,
		DepartureDateTime: "28/FEB 23:30",
		FlightStand:       "A12B3",
		Bagtag:            "0006123456",
	}, records[0])
	assert.Equal(t, model.BaggageWeapon, records[1].BaggageType)
	assert.False(t, records[1].HasBoarded)
}

func TestFetchSpecialBaggage_ConvertsBoundsToUTC(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	from := time.Date(2025, 2, 27, 14, 0, 0, 0, zone)

	var gotFrom string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFrom = r.URL.Query().Get("from")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := New(server.URL, time.Second).FetchSpecialBaggage(context.Background(), from, from.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "2025-02-27T12:00:00Z", gotFrom)
}

func TestFetchSpecialBaggage_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		errIs     error
		errSubstr string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom", errIs: ErrUnexpectedStatus, errSubstr: "500"},
		{name: "not found", status: http.StatusNotFound, errIs: ErrUnexpectedStatus, errSubstr: "404"},
		{name: "malformed json", status: http.StatusOK, body: `[{"flightNumber":`, errSubstr: "failed to parse"},
		{name: "object instead of array", status: http.StatusOK, body: `{"records":[]}`, errSubstr: "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			records, err := New(server.URL, time.Second).FetchSpecialBaggage(context.Background(), time.Now(), time.Now())
			require.Error(t, err)
			assert.Nil(t, records)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestFetchSpecialBaggage_EmptyAndNull(t *testing.T) {
	for _, body := range []string{`[]`, `null`} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		records, err := New(server.URL, time.Second).FetchSpecialBaggage(context.Background(), time.Now(), time.Now())
		server.Close()

		require.NoError(t, err, body)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	}
}

func TestFetchSpecialBaggage_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(server.URL, time.Second).FetchSpecialBaggage(ctx, time.Now(), time.Now())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchSpecialBaggage_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := New(url, time.Second).FetchSpecialBaggage(context.Background(), time.Now(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch special baggage")
}
