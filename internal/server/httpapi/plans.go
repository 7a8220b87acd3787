package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/tripkeeper/internal/models"
)

func (s *Server) listPlans(w http.ResponseWriter, r *http.Request) {
	out, err := s.svc.ListPlans(r.Context())
	if err != nil {
		failErr(w, err)
		return
	}
	ok(w, http.StatusOK, out)
}

func (s *Server) insertPlan(w http.ResponseWriter, r *http.Request) {
	var in models.PlanInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := s.svc.InsertPlan(r.Context(), in)
	if err != nil {
		failErr(w, err)
		return
	}
	ok(w, http.StatusCreated, p)
}

func (s *Server) deletePlan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	deleted, err := s.svc.DeletePlan(r.Context(), id)
	if err != nil {
		failErr(w, err)
		return
	}
	if !deleted {
		fail(w, http.StatusNotFound, "plan not found")
		return
	}
	ok(w, http.StatusOK, nil)
}
