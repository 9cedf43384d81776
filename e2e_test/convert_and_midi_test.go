//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chordsmith/chordsmith/cmd"
	"github.com/chordsmith/chordsmith/midi"
	"github.com/stretchr/testify/assert"
)

func post(t *testing.T, path string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		panic(err.Error())
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	w := httptest.NewRecorder()
	cmd.NewRouter().ServeHTTP(w, req)
	return w.Result()
}

func TestConvertAsDegreeE2E(t *testing.T) {
	assert := assert.New(t)

	resp := post(t, "/convert", cmd.ConvertRequest{
		Source:   "C F G Am\n",
		Key:      "C",
		AsDegree: true,
	})
	assert.Equal(200, resp.StatusCode)
	assert.NotEmpty(resp.Header.Get("X-Request-Id"))

	var out cmd.ConvertResponse
	respBody, _ := io.ReadAll(resp.Body)
	assert.NoError(json.Unmarshal(respBody, &out))
	assert.Equal("I IV V VIm\n", out.Output)
}

func TestConvertToPitchE2E(t *testing.T) {
	assert := assert.New(t)

	resp := post(t, "/convert", cmd.ConvertRequest{
		Source: "I IV V VIm\n",
		Key:    "D",
	})
	assert.Equal(200, resp.StatusCode)

	var out cmd.ConvertResponse
	respBody, _ := io.ReadAll(resp.Body)
	assert.NoError(json.Unmarshal(respBody, &out))
	assert.Equal("D G A Bm\n", out.Output)
}

func TestConvertParseErrorE2E(t *testing.T) {
	assert := assert.New(t)

	resp := post(t, "/convert", cmd.ConvertRequest{Source: "???\n"})
	assert.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestMidiE2E(t *testing.T) {
	assert := assert.New(t)

	resp := post(t, "/midi", cmd.MidiRequest{Source: "C | Am F G %\n", BPM: 120})
	assert.Equal(200, resp.StatusCode)
	assert.Equal("audio/midi", resp.Header.Get("Content-Type"))

	respBody, _ := io.ReadAll(resp.Body)
	f, err := midi.ReadSMF(respBody)
	assert.NoError(err)
	assert.Len(f.Tracks, 1)
}

func TestMidiMissingTonicE2E(t *testing.T) {
	assert := assert.New(t)

	resp := post(t, "/midi", cmd.MidiRequest{Source: "IV\n"})
	assert.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
}
