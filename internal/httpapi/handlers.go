package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/xlsforge/xlsforge/internal/survey"
	"github.com/xlsforge/xlsforge/internal/xlsform"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleParse converts an uploaded .docx questionnaire into the JSON unit
// array using the named extraction strategy.
func (s *Server) handleParse(strategy string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename, content, ok := s.readUpload(w, r, ".docx", "Only .docx files are supported.")
		if !ok {
			return
		}

		units, err := s.extract(r, strategy, filename, content)
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("Failed to parse document: %v", err))
			return
		}

		writeJSON(w, http.StatusOK, units)
	}
}

// handleJSONToExcel converts an uploaded JSON unit array into a workbook
// streamed back as an attachment. The generic route historically also
// accepted a list of lists of units and flattened it.
func (s *Server) handleJSONToExcel(attachment string, allowNested bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, content, ok := s.readUpload(w, r, ".json", "Only .json files are supported.")
		if !ok {
			return
		}

		units, err := decodeUnits(content, allowNested)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %v", err))
			return
		}

		data, err := xlsform.Build(units, xlsform.LayoutStandard)
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("Failed to build workbook: %v", err))
			return
		}

		streamAttachment(w, attachment, xlsxContentType, data)
	}
}

// handleConvertDocxToJSON parses an uploaded document with the configured
// strategy and stores the result as a downloadable JSON artifact.
func (s *Server) handleConvertDocxToJSON(w http.ResponseWriter, r *http.Request) {
	filename, content, ok := s.readUpload(w, r, ".docx", "Only .docx files are supported.")
	if !ok {
		return
	}

	units, err := s.extract(r, s.strategy, filename, content)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("Error processing file: %v", err))
		return
	}

	payload, err := json.MarshalIndent(units, "", "  ")
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("Error processing file: %v", err))
		return
	}

	name, err := s.store.Save("questionnaire.json", payload)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("Error processing file: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "success",
		"message":           "DOCX file converted to JSON successfully",
		"json_data":         units,
		"download_filename": name,
		"download_url":      "/download/json/" + name,
	})
}

// handleConvertJSONToExcel converts a stored-pipeline JSON unit array into
// a workbook artifact using the extended column layout.
func (s *Server) handleConvertJSONToExcel(w http.ResponseWriter, r *http.Request) {
	_, content, ok := s.readUpload(w, r, ".json", "Only .json files are supported")
	if !ok {
		return
	}

	units, err := decodeUnits(content, false)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid JSON file format")
		return
	}

	data, err := xlsform.Build(units, xlsform.LayoutExtended)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("Error processing file: %v", err))
		return
	}

	name, err := s.store.Save("surveyCTO.xlsx", data)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("Error processing file: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "success",
		"message":           "JSON file converted to Excel successfully",
		"download_filename": name,
		"download_url":      "/download/excel/" + name,
	})
}

// handleDownload serves a stored artifact by filename.
func (s *Server) handleDownload(contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "filename")
		path, err := s.store.Path(name)
		if err != nil {
			writeDetail(w, http.StatusNotFound, "File not found")
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", `attachment; filename=`+name)
		http.ServeFile(w, r, path)
	}
}

// readUpload pulls the multipart "file" field, enforcing the extension
// allow-list. It writes the client error itself and reports ok=false when
// the request cannot proceed.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request, ext, extDetail string) (string, []byte, bool) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Missing file upload")
		return "", nil, false
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ext) {
		writeDetail(w, http.StatusBadRequest, extDetail)
		return "", nil, false
	}

	content, err := io.ReadAll(file)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Unreadable file upload")
		return "", nil, false
	}
	return header.Filename, content, true
}

// extract decodes the document and runs the named extraction strategy with
// the request-scoped logger.
func (s *Server) extract(r *http.Request, strategy, filename string, content []byte) ([]survey.Unit, error) {
	logger := zerolog.Ctx(r.Context())

	doc, err := s.docs.Decode(filename, content)
	if err != nil {
		return nil, err
	}

	extractor, err := survey.ForStrategy(strategy, *logger)
	if err != nil {
		return nil, err
	}
	return extractor.Extract(doc), nil
}

// decodeUnits parses a JSON unit array. With allowNested, a list of lists
// is accepted and flattened in order.
func decodeUnits(content []byte, allowNested bool) ([]survey.Unit, error) {
	var units []survey.Unit
	if err := json.Unmarshal(content, &units); err == nil {
		return units, nil
	}

	if allowNested {
		var nested [][]survey.Unit
		if err := json.Unmarshal(content, &nested); err == nil {
			var flat []survey.Unit
			for _, group := range nested {
				flat = append(flat, group...)
			}
			return flat, nil
		}
	}

	return nil, fmt.Errorf("JSON must be a list of survey units")
}

func streamAttachment(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
