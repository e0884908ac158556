package handler

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
)

// maxMultipartMemory bounds the in-memory portion of multipart parsing;
// larger files spill to disk. The service layer enforces the 5 MiB limit.
const maxMultipartMemory = 6 << 20

// formImage extracts the named file field from a multipart request. On
// failure it writes the error response itself and returns a non-nil error.
func formImage(w http.ResponseWriter, r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_multipart"})
		return nil, nil, err
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": field + "_required"})
		return nil, nil, err
	}
	return file, header, nil
}
