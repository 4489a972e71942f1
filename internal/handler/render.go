package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// props is the bag of aggregated records a page handler hands to the
// presentation layer.
type props map[string]interface{}

// page is the envelope sent to the presentation collaborator: which page
// component to draw and the props to draw it with. Rendering itself is
// entirely the client's job.
type page struct {
	Component string `json:"component"`
	Props     props  `json:"props"`
}

// renderPage writes a page envelope as JSON. The body is encoded into a
// buffer first to catch errors before any bytes reach the response writer.
func renderPage(w http.ResponseWriter, component string, p props) error {
	return renderJSON(w, http.StatusOK, page{Component: component, Props: p})
}

// renderJSON writes an arbitrary JSON response with the given status.
func renderJSON(w http.ResponseWriter, status int, body interface{}) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
