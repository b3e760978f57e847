package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sells-group/chain-tracker/internal/company"
	"github.com/sells-group/chain-tracker/internal/enterprise"
	"github.com/sells-group/chain-tracker/internal/model"
	"github.com/sells-group/chain-tracker/internal/tracker"
)

func (s *Server) listEnterprises(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := enterprise.Filter{Status: enterprise.Status(q.Get("status"))}
	if p := q.Get("provenance"); p != "" {
		prov, err := enterprise.ParseProvenance(p)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		f.Provenance = prov
	}
	if l := q.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		f.Limit = n
	}

	es, err := s.tracker.Enterprises(r.Context(), f)
	if err != nil {
		internalError(w, r, err)
		return
	}
	if es == nil {
		es = []enterprise.Enterprise{}
	}
	writeJSON(w, http.StatusOK, es)
}

func (s *Server) getEnterprise(w http.ResponseWriter, r *http.Request) {
	key, err := enterprise.ParseKey(chi.URLParam(r, "provenance"), chi.URLParam(r, "rank"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	e, ok, err := s.tracker.Enterprise(r.Context(), key)
	if err != nil {
		internalError(w, r, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "enterprise "+key.String()+" not found")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func directoryFilter(r *http.Request) company.Filter {
	q := r.URL.Query()
	return company.Filter{
		Category: q.Get("category"),
		Region:   q.Get("region"),
		Query:    q.Get("q"),
		Sort:     q.Get("sort"),
	}
}

func (s *Server) listDirectory(w http.ResponseWriter, r *http.Request) {
	dir, err := s.tracker.Directory(r.Context(), directoryFilter(r))
	if err != nil {
		internalError(w, r, err)
		return
	}
	if dir == nil {
		dir = []model.Company{}
	}
	writeJSON(w, http.StatusOK, dir)
}

func (s *Server) listGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.tracker.Groups(r.Context(), directoryFilter(r))
	if err != nil {
		internalError(w, r, err)
		return
	}
	if groups == nil {
		groups = []company.GroupedEntry{}
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) dedupe(w http.ResponseWriter, r *http.Request) {
	res, err := s.tracker.Dedupe(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) listNews(w http.ResponseWriter, r *http.Request) {
	news, err := s.tracker.News(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	if news == nil {
		news = []model.NewsItem{}
	}
	writeJSON(w, http.StatusOK, news)
}

func (s *Server) listLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.tracker.Lists(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	if lists == nil {
		lists = []model.CompanyList{}
	}
	writeJSON(w, http.StatusOK, lists)
}

type addToListRequest struct {
	Name      string   `json:"name"`
	Companies []string `json:"companies"`
}

func (s *Server) addToList(w http.ResponseWriter, r *http.Request) {
	var req addToListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	list, err := s.tracker.AddToList(r.Context(), req.Name, req.Companies)
	if errors.Is(err, tracker.ErrUnknownCompany) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	st, err := s.tracker.Status(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
