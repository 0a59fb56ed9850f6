package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/richtext-labs/ptrender/internal/ptext"
	"github.com/richtext-labs/ptrender/internal/render"
)

// contentTypes per output format.
var contentTypes = map[string]string{
	"html": "text/html; charset=utf-8",
	"text": "text/plain; charset=utf-8",
	"term": "text/plain; charset=utf-8",
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, "failed to read request body", "", http.StatusBadRequest)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = s.cfg.DefaultFormat
	}
	renderer, ok := rendererFor(format)
	if !ok {
		jsonError(w, "unknown format: "+format, "", http.StatusBadRequest)
		return
	}

	// Render into a buffer first so a mid-document failure does not leave
	// a partial response behind a 200.
	var buf bytes.Buffer
	v := ptext.NewValidator(s.log)
	if err := render.Document(&buf, string(body), renderer, v); err != nil {
		kind := ptext.KindOf(err)
		jsonError(w, err.Error(), kind.String(), statusForKind(kind))
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Write(buf.Bytes())
}

func rendererFor(format string) (render.Renderer, bool) {
	switch format {
	case "html":
		return render.NewHTMLRenderer(render.NewConfig()), true
	case "text":
		return render.NewPlainRenderer(), true
	case "term":
		return render.NewTermRenderer(render.NewConfig()), true
	}
	return nil, false
}

func statusForKind(kind ptext.Kind) int {
	switch kind {
	case ptext.InvalidInput:
		return http.StatusBadRequest
	case ptext.UnsupportedBlockType, ptext.UnsupportedMarkType,
		ptext.MissingRequiredField, ptext.MalformedStructure:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func jsonError(w http.ResponseWriter, msg, kind string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]string{"error": msg}
	if kind != "" {
		body["kind"] = kind
	}
	json.NewEncoder(w).Encode(body)
}
