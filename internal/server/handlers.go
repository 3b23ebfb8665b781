// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"

	"github.com/carabila/markitdown-server/internal/convert"
	"github.com/carabila/markitdown-server/internal/detect"
)

// conversionResponse is the 200 body of both conversion endpoints.
type conversionResponse struct {
	Success          bool   `json:"success"`
	DetectedFormat   string `json:"detected_format"`
	MIMEType         string `json:"mime_type"`
	OriginalFilename string `json:"original_filename,omitempty"`
	OriginalLength   int    `json:"original_length"`
	ConvertedContent string `json:"converted_content"`
	ConvertedLength  int    `json:"converted_length"`
	ContentType      string `json:"content_type"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// unsupportedResponse is the 422 body for formats the classifier knows
// but the facade cannot convert.
type unsupportedResponse struct {
	Error                 string   `json:"error"`
	DetectedFormat        string   `json:"detected_format"`
	OriginalFilename      string   `json:"original_filename,omitempty"`
	Message               string   `json:"message"`
	Suggestion            string   `json:"suggestion"`
	SupportedAlternatives []string `json:"supported_alternatives"`
}

var supportedAlternatives = []string{"pdf", "docx", "xlsx", "pptx", "html", "csv", "tsv", "md"}

type base64ConvertRequest struct {
	Content  string `json:"content"`
	Filename string `json:"filename"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "markitdown-server is running",
		"status":  "healthy",
		"endpoints": map[string]string{
			"convert":        "POST /convert - raw document bytes in the request body",
			"convert_base64": "POST /convert-base64 - JSON with base64 content and optional filename",
			"formats":        "GET /formats - supported and detection-only formats",
		},
		"version": s.version,
	})
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	categories := detect.Categories()

	supported := make(map[string][]string)
	var detectionOnly []string
	for category, labels := range categories {
		for _, label := range labels {
			if s.converter.Supports(label) {
				supported[category] = append(supported[category], label)
			} else {
				detectionOnly = append(detectionOnly, label)
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"detection_capabilities": map[string]any{
			"description":      "Formats the server can automatically detect from file content",
			"total_detectable": len(detect.Detectable()),
			"categories":       categories,
		},
		"conversion_support": map[string]any{
			"description":     "Formats the server converts to markdown",
			"fully_supported": supported,
			"detection_only": map[string]any{
				"description": "Detected but not convertible to markdown",
				"formats":     detectionOnly,
			},
		},
		"notes": map[string]string{
			"images_audio": "Images and audio are detected but not converted",
			"archives":     "ZIP archives are expanded, compressed archives are detected only",
		},
	})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}
	if len(data) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No content provided in request body"})
		return
	}
	s.respondConversion(w, data, "")
}

func (s *Server) handleConvertBase64(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	var req base64ConvertRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("Invalid JSON body: %v", err)})
		return
	}
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No base64 content provided"})
		return
	}

	data, err := base64.StdEncoding.Strict().DecodeString(req.Content)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("Invalid base64 content: %v", err)})
		return
	}
	if len(data) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Decoded content is empty"})
		return
	}

	s.respondConversion(w, data, req.Filename)
}

// readBody reads the request body under the configured size limit. On
// failure it writes the error response and returns ok=false.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge,
				errorResponse{Error: fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit)})
		} else {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Failed to read request body"})
		}
		return nil, false
	}
	return data, true
}

// respondConversion runs the shared classify-then-convert path and
// writes the response. filename is the optional classification hint,
// echoed back when present.
func (s *Server) respondConversion(w http.ResponseWriter, data []byte, filename string) {
	res, err := s.detector.Classify(data, filename)
	if err != nil {
		switch {
		case errors.Is(err, detect.ErrEmptyInput):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Empty content provided"})
		case errors.Is(err, detect.ErrShortBinary):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Content too short to classify"})
		default:
			s.log.Error("classification failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error during conversion"})
		}
		return
	}

	mime := mimetype.Detect(data).String()

	result, err := s.converter.Convert(data, res.Format)
	if err != nil {
		if convert.IsUnsupportedFormat(err) {
			writeJSON(w, http.StatusUnprocessableEntity, unsupportedResponse{
				Error:            "Unsupported format for conversion",
				DetectedFormat:   res.Format,
				OriginalFilename: filename,
				Message: fmt.Sprintf("Format %q was detected correctly but cannot be converted to markdown",
					res.Format),
				Suggestion:            "This format is detected but not supported for conversion. Check GET /formats for supported vs detection-only formats.",
				SupportedAlternatives: supportedAlternatives,
			})
			return
		}

		s.log.Error("conversion failed", "format", res.Format, "error", err)
		writeJSON(w, http.StatusInternalServerError,
			errorResponse{Error: fmt.Sprintf("Failed to convert %s content: %v", res.Format, err)})
		return
	}

	s.log.Info("converted",
		"format", res.Format,
		"source", res.Source.String(),
		"original_length", len(data),
		"converted_length", len(result.Markdown),
	)

	writeJSON(w, http.StatusOK, conversionResponse{
		Success:          true,
		DetectedFormat:   res.Format,
		MIMEType:         mime,
		OriginalFilename: filename,
		OriginalLength:   len(data),
		ConvertedContent: result.Markdown,
		ConvertedLength:  len(result.Markdown),
		ContentType:      res.Kind.String(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
