package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

const sqlExportFilename = "travel-plans.sql"

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.GetStats(r.Context())
	if err != nil {
		failErr(w, err)
		return
	}
	ok(w, http.StatusOK, st)
}

func (s *Server) exportSQL(w http.ResponseWriter, r *http.Request) {
	text, err := s.svc.ExportSQLText(r.Context())
	if err != nil {
		failErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/sql; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sqlExportFilename))
	_, _ = w.Write([]byte(text))
}

func (s *Server) exportDB(w http.ResponseWriter, r *http.Request) {
	f, err := s.svc.ExportDatabaseFile(r.Context())
	if err != nil {
		failErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.sqlite3")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(f.Data)))
	_, _ = w.Write(f.Data)
}

func (s *Server) importDB(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.opts.MaxImportBytes)

	if err := s.svc.ImportDatabaseFile(r.Context(), body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		failErr(w, err)
		return
	}
	ok(w, http.StatusOK, nil)
}

type healthStatus struct {
	Status  string `json:"status"`
	Backend string `json:"backend,omitempty"`
	Ready   bool   `json:"ready"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ready := s.opts.Ready()
	st := healthStatus{Status: "ok", Backend: s.opts.Backend, Ready: ready}
	code := http.StatusOK
	if !ready {
		st.Status = "starting"
		code = http.StatusServiceUnavailable
	}
	ok(w, code, st)
}
