//go:build api

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// End-to-end flow against a running service seeded with the demo inventory
// (SEED_DEMO_DATA=true): 2 Deluxe units at 100/night.
const serviceURL = "http://localhost:8080"

func TestAPI_FullFlow(t *testing.T) {
	waitForService(t)

	checkIn := time.Now().AddDate(0, 1, 0).Format("2006-01-02")
	checkOut := time.Now().AddDate(0, 1, 2).Format("2006-01-02")
	stayQuery := fmt.Sprintf("room_type=Deluxe&check_in=%s&check_out=%s", checkIn, checkOut)

	var bookingA float64

	t.Run("Step1_ListRoomTypes", func(t *testing.T) {
		resp := get(t, serviceURL+"/api/v1/room-types")
		require.Equal(t, 200, resp.StatusCode)

		var types []map[string]interface{}
		decodeJSON(t, resp, &types)
		require.NotEmpty(t, types)
	})

	t.Run("Step2_CheckAvailability", func(t *testing.T) {
		resp := get(t, serviceURL+"/api/v1/availability?"+stayQuery)
		require.Equal(t, 200, resp.StatusCode)

		var avail map[string]interface{}
		decodeJSON(t, resp, &avail)
		assert.Equal(t, float64(2), avail["free_units"])
		assert.Equal(t, true, avail["available"])
	})

	t.Run("Step3_Quote", func(t *testing.T) {
		resp := get(t, serviceURL+"/api/v1/quote?"+stayQuery)
		require.Equal(t, 200, resp.StatusCode)

		var quote map[string]interface{}
		decodeJSON(t, resp, &quote)
		assert.Equal(t, float64(2), quote["nights"])
		assert.Equal(t, float64(200), quote["total_amount"])
	})

	t.Run("Step4_BookBothUnits", func(t *testing.T) {
		respA := post(t, serviceURL+"/api/v1/bookings", map[string]string{
			"guest_name": "Ana Garcia",
			"contact":    "ana@example.com",
			"room_type":  "Deluxe",
			"check_in":   checkIn,
			"check_out":  checkOut,
		})
		require.Equal(t, 201, respA.StatusCode)

		var booking map[string]interface{}
		decodeJSON(t, respA, &booking)
		assert.Equal(t, float64(200), booking["total_amount"])
		assert.Equal(t, "confirmed", booking["status"])
		bookingA = booking["id"].(float64)

		respB := post(t, serviceURL+"/api/v1/bookings", map[string]string{
			"guest_name": "Ben Smith",
			"contact":    "ben@example.com",
			"room_type":  "Deluxe",
			"check_in":   checkIn,
			"check_out":  checkOut,
		})
		require.Equal(t, 201, respB.StatusCode)
	})

	t.Run("Step5_SoldOut", func(t *testing.T) {
		resp := post(t, serviceURL+"/api/v1/bookings", map[string]string{
			"guest_name": "Cas Verne",
			"contact":    "cas@example.com",
			"room_type":  "Deluxe",
			"check_in":   checkIn,
			"check_out":  checkOut,
		})
		assert.Equal(t, 409, resp.StatusCode, "no availability once both units are committed")
	})

	t.Run("Step6_CancelWrongContact", func(t *testing.T) {
		resp := del(t, fmt.Sprintf("%s/api/v1/bookings/%.0f?contact=%s",
			serviceURL, bookingA, url.QueryEscape("stranger@example.com")))
		assert.Equal(t, 404, resp.StatusCode, "mismatched contact looks like a missing booking")
	})

	t.Run("Step7_CancelAndRebook", func(t *testing.T) {
		resp := del(t, fmt.Sprintf("%s/api/v1/bookings/%.0f?contact=%s",
			serviceURL, bookingA, url.QueryEscape("ana@example.com")))
		require.Equal(t, 200, resp.StatusCode)

		var cancelled map[string]interface{}
		decodeJSON(t, resp, &cancelled)
		assert.Equal(t, "cancelled", cancelled["status"])

		rebook := post(t, serviceURL+"/api/v1/bookings", map[string]string{
			"guest_name": "Dee North",
			"contact":    "dee@example.com",
			"room_type":  "Deluxe",
			"check_in":   checkIn,
			"check_out":  checkOut,
		})
		assert.Equal(t, 201, rebook.StatusCode, "cancellation frees the unit")
	})
}

// Helper functions

func waitForService(t *testing.T) {
	maxRetries := 30
	for i := 0; i < maxRetries; i++ {
		resp, err := http.Get(serviceURL + "/health")
		if err == nil && resp.StatusCode == 200 {
			resp.Body.Close()
			return
		}
		time.Sleep(1 * time.Second)
	}
	t.Fatal("service did not become ready in time")
}

func get(t *testing.T, url string) *http.Response {
	resp, err := http.Get(url)
	require.NoError(t, err)
	return resp
}

func post(t *testing.T, url string, body interface{}) *http.Response {
	jsonBody, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(jsonBody))
	require.NoError(t, err)
	return resp
}

func del(t *testing.T, url string) *http.Response {
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, target interface{}) {
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func TestMain(m *testing.M) {
	fmt.Println("Running API tests against", serviceURL)
	os.Exit(m.Run())
}
