package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/chordsmith/chordsmith/codec"
	"github.com/chordsmith/chordsmith/constants"
	"github.com/chordsmith/chordsmith/pitch"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", constants.DefaultAddr, "listen address")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves score conversion over HTTP",
	Long:  `Serves score conversion over HTTP: POST /convert and POST /midi.`,
	Run: func(cmd *cobra.Command, args []string) {
		serve(serveAddr)
	},
}

// ConvertRequest is the body of POST /convert.
type ConvertRequest struct {
	Source   string `json:"source"`
	Key      string `json:"key,omitempty"`
	AsDegree bool   `json:"asDegree,omitempty"`
}

// ConvertResponse carries the re-rendered score.
type ConvertResponse struct {
	Output string `json:"output"`
}

// MidiRequest is the body of POST /midi.
type MidiRequest struct {
	Source string  `json:"source"`
	Key    string  `json:"key,omitempty"`
	BPM    float64 `json:"bpm,omitempty"`
}

func decodeTonic(key string) (*pitch.Pitch, error) {
	if key == "" {
		return nil, nil
	}
	p, err := pitch.Parse(key)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// HandleConvert re-renders a posted score, transposing when a key is given.
func HandleConvert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	s, err := codec.ProgressionImporter{}.Import(req.Source)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	tonic, err := decodeTonic(req.Key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.AsDegree {
		if tonic == nil {
			http.Error(w, "asDegree requires key", http.StatusBadRequest)
			return
		}
		s.AsDegree(*tonic)
	} else if tonic != nil {
		s.AsPitch(*tonic)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ConvertResponse{Output: s.Render()})
}

// HandleMidi compiles a posted score and returns the MIDI bytes.
func HandleMidi(w http.ResponseWriter, r *http.Request) {
	var req MidiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.BPM == 0 {
		req.BPM = constants.DefaultBPM
	}
	s, err := codec.ProgressionImporter{}.Import(req.Source)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	tonic, err := decodeTonic(req.Key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var buf bytes.Buffer
	if err := (codec.MidiExporter{BPM: req.BPM, Tonic: tonic}).Export(&buf, s); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Write(buf.Bytes())
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-Id", id)
		log.Printf("%s %s %s", id, r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// NewRouter builds the HTTP routing table.
func NewRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(requestID)
	router.HandleFunc("/convert", HandleConvert).Methods("POST")
	router.HandleFunc("/midi", HandleMidi).Methods("POST")
	return router
}

func serve(addr string) {
	handler := cors.Default().Handler(NewRouter())
	fmt.Printf("listening on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
