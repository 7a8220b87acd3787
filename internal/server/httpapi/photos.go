package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/tripkeeper/internal/models"
)

// pathID parses the {id} wildcard as a positive integer.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// decodeArray requires the body to be a JSON array.
func decodeArray(r io.Reader, dst any) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return fmt.Errorf("request body must be a JSON array")
	}
	return json.Unmarshal(trimmed, dst)
}

func (s *Server) listPhotos(w http.ResponseWriter, r *http.Request) {
	out, err := s.svc.ListPhotos(r.Context())
	if err != nil {
		failErr(w, err)
		return
	}
	ok(w, http.StatusOK, out)
}

func (s *Server) getPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.svc.GetPhoto(r.Context(), id)
	if err != nil {
		failErr(w, err)
		return
	}
	if p == nil {
		fail(w, http.StatusNotFound, "photo not found")
		return
	}
	ok(w, http.StatusOK, p)
}

func (s *Server) insertPhotos(w http.ResponseWriter, r *http.Request) {
	var in []models.PhotoInput
	if err := decodeArray(r.Body, &in); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := s.svc.InsertPhotosBatch(r.Context(), in)
	if err != nil {
		failErr(w, err)
		return
	}
	ok(w, http.StatusCreated, out)
}

func (s *Server) updatePhoto(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	// exif may be present in the body; it is immutable and ignored.
	var u models.PhotoUpdate
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := s.svc.UpdatePhoto(r.Context(), id, u)
	if err != nil {
		failErr(w, err)
		return
	}
	if !res.Matched {
		fail(w, http.StatusNotFound, "photo not found")
		return
	}
	ok(w, http.StatusOK, res)
}

func (s *Server) deletePhoto(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	deleted, err := s.svc.DeletePhoto(r.Context(), id)
	if err != nil {
		failErr(w, err)
		return
	}
	if !deleted {
		fail(w, http.StatusNotFound, "photo not found")
		return
	}
	ok(w, http.StatusOK, nil)
}

func (s *Server) deletePhotos(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs *[]int64 `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.IDs == nil {
		fail(w, http.StatusBadRequest, "ids must be an array of photo ids")
		return
	}
	for _, id := range *body.IDs {
		if id <= 0 {
			fail(w, http.StatusBadRequest, fmt.Sprintf("invalid id %d", id))
			return
		}
	}

	n, err := s.svc.DeletePhotosBatch(r.Context(), *body.IDs)
	if err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Deleted: &n})
}
