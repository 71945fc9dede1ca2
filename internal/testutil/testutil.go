// Package testutil holds small helpers shared across package tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func NewTestRequest(method, path string, body io.Reader) *http.Request {
	return httptest.NewRequest(method, path, body)
}

func NewTestRequestWithJSON(t *testing.T, method, path string, v interface{}) *http.Request {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshaling request body: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func ParseJSONResponse(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("parsing JSON response: %v", err)
	}
	return parsed
}

func AssertStatusCode(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rr.Code, rr.Body.String())
	}
}

func AssertJSONContains(t *testing.T, body []byte, key string, want interface{}) {
	t.Helper()
	parsed := ParseJSONResponse(t, body)
	got, ok := parsed[key]
	if !ok {
		t.Fatalf("expected key %q in response: %s", key, body)
	}
	if got != want {
		t.Fatalf("expected %q=%v, got %v", key, want, got)
	}
}

func RandomUUID() uuid.UUID {
	return uuid.New()
}

var majorIDs = []string{
	"major_00_the_fool", "major_01_the_magician", "major_02_the_high_priestess",
	"major_03_the_empress", "major_04_the_emperor", "major_05_the_hierophant",
	"major_06_the_lovers", "major_07_the_chariot", "major_08_strength",
	"major_09_the_hermit", "major_10_wheel_of_fortune", "major_11_justice",
	"major_12_the_hanged_man", "major_13_death", "major_14_temperance",
	"major_15_the_devil", "major_16_the_tower", "major_17_the_star",
	"major_18_the_moon", "major_19_the_sun", "major_20_judgement",
	"major_21_the_world",
}

// RandomCardID returns a random Major Arcana card ID from the deck.
func RandomCardID() string {
	return majorIDs[rand.IntN(len(majorIDs))]
}
