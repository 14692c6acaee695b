// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/danielhkuo/exam-archive/catalog"
	"github.com/danielhkuo/exam-archive/middleware"
	"github.com/danielhkuo/exam-archive/models"
	"github.com/danielhkuo/exam-archive/repository"
)

type ExamHandler struct {
	store *catalog.Store
}

func NewExamHandler(store *catalog.Store) *ExamHandler {
	return &ExamHandler{store: store}
}

// ListCareers handles GET /careers
func (h *ExamHandler) ListCareers(w http.ResponseWriter, r *http.Request) {
	counts := catalog.CountByCareer(h.store.Snapshot())

	careers := make([]models.CareerSummary, 0, len(models.Careers))
	for _, c := range models.Careers {
		careers = append(careers, models.CareerSummary{Key: c.Key, Name: c.Name, Count: counts[c.Key]})
	}

	middleware.JSONResponse(w, http.StatusOK, careers)
}

// ListExams handles GET /exams
// Without query parameters the snapshot is returned newest upload first.
func (h *ExamHandler) ListExams(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var exams []models.Exam
	if len(query) == 0 {
		exams = h.store.Snapshot()
	} else {
		f, err := filterFromQuery(query)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		exams = catalog.Query(h.store.Snapshot(), f)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ExamListResponse{
		Exams:     exams,
		Count:     len(exams),
		LoadError: h.store.Status().Error,
	})
}

// ListYears handles GET /exams/years
func (h *ExamHandler) ListYears(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.YearsResponse{
		Years: catalog.Years(h.store.Snapshot()),
	})
}

// GetExam handles GET /exams/{id}
func (h *ExamHandler) GetExam(w http.ResponseWriter, r *http.Request) {
	exam, ok := h.store.Get(r.PathValue("id"))
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Exam not found")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, exam)
}

// CareerExams handles GET /careers/{key}/exams
func (h *ExamHandler) CareerExams(w http.ResponseWriter, r *http.Request) {
	career, ok := models.FindCareer(r.PathValue("key"))
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Career not found")
		return
	}

	f, err := filterFromQuery(r.URL.Query())
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	f.Career = career.Key

	exams := catalog.Query(h.store.Snapshot(), f)
	middleware.JSONResponse(w, http.StatusOK, models.CareerExamsResponse{
		Career: career,
		Exams:  exams,
		Count:  len(exams),
	})
}

// CreateExam handles POST /admin/exams
func (h *ExamHandler) CreateExam(w http.ResponseWriter, r *http.Request) {
	var in models.ExamInput
	if err := middleware.ParseJSONBody(r, &in); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	res := catalog.Upload(r.Context(), h.store, in)
	if !res.Success {
		writeResultError(w, res, "create")
		return
	}

	slog.Info("exam created", "exam_id", res.Data.ID, "career", res.Data.Career, "by", adminEmail(r))
	middleware.JSONResponse(w, http.StatusCreated, res.Data)
}

// UpdateExam handles PATCH /admin/exams/{id}
func (h *ExamHandler) UpdateExam(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch models.ExamPatch
	if err := middleware.ParseJSONBody(r, &patch); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	res := catalog.Edit(r.Context(), h.store, id, patch)
	if !res.Success {
		writeResultError(w, res, "update")
		return
	}

	slog.Info("exam updated", "exam_id", id, "by", adminEmail(r))
	middleware.JSONResponse(w, http.StatusOK, res.Data)
}

// DeleteExam handles DELETE /admin/exams/{id}
func (h *ExamHandler) DeleteExam(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	res := h.store.Delete(r.Context(), id)
	if !res.Success {
		writeResultError(w, res, "delete")
		return
	}

	slog.Info("exam deleted", "exam_id", id, "by", adminEmail(r))
	w.WriteHeader(http.StatusNoContent)
}

// Reload handles POST /admin/exams/reload
func (h *ExamHandler) Reload(w http.ResponseWriter, r *http.Request) {
	res := h.store.Load(r.Context())
	if !res.Success {
		writeResultError(w, res, "reload")
		return
	}

	count := h.store.Status().Count
	slog.Info("catalog reloaded", "count", count)
	middleware.JSONResponse(w, http.StatusOK, models.ReloadResponse{Count: count})
}

// writeResultError maps a failed store result to a status code; the
// message is passed through unchanged
func writeResultError(w http.ResponseWriter, res catalog.Result, op string) {
	err := res.Err()
	switch {
	case errors.Is(err, catalog.ErrInvalidExam):
		middleware.ErrorResponse(w, http.StatusBadRequest, res.Error)
	case errors.Is(err, repository.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, res.Error)
	default:
		slog.Error("exam operation failed", "op", op, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, res.Error)
	}
}

func filterFromQuery(q url.Values) (catalog.Filter, error) {
	sortOrder, err := catalog.ParseSort(q.Get("sort"))
	if err != nil {
		return catalog.Filter{}, err
	}

	year := q.Get("year")
	if year != "" {
		if _, err := strconv.Atoi(year); err != nil {
			return catalog.Filter{}, errors.New("year must be a number")
		}
	}

	return catalog.Filter{
		Career: q.Get("career"),
		Q:      q.Get("q"),
		Cycle:  q.Get("cycle"),
		Type:   q.Get("type"),
		Period: q.Get("period"),
		Year:   year,
		Sort:   sortOrder,
	}, nil
}

func adminEmail(r *http.Request) string {
	user, _ := middleware.UserFromContext(r.Context())
	return user.Email
}
