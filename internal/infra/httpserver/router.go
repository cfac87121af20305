package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	appanalysis "github.com/aurainsight/aura-backend/internal/application/analysis"
	appreports "github.com/aurainsight/aura-backend/internal/application/reports"
	domai "github.com/aurainsight/aura-backend/internal/domain/ai"
	domauth "github.com/aurainsight/aura-backend/internal/domain/auth"
	domreports "github.com/aurainsight/aura-backend/internal/domain/reports"
	"github.com/aurainsight/aura-backend/internal/middleware"
)

const maxUploadBytes = 32 << 20

type Router struct {
	analysisSvc *appanalysis.Service
	reportsSvc  *appreports.Service
}

// NewRouter mounts the three authenticated endpoints plus the unauthenticated
// operational ones. Every protected handler reads its principal from the
// context set by the auth middleware, never from the request payload.
func NewRouter(analysisSvc *appanalysis.Service, reportsSvc *appreports.Service, verifier domauth.Verifier, health http.HandlerFunc) http.Handler {
	r := &Router{analysisSvc: analysisSvc, reportsSvc: reportsSvc}
	mux := chi.NewRouter()

	if health != nil {
		mux.Get("/health", health)
	}
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Group(func(rt chi.Router) {
		rt.Use(middleware.BearerAuth(verifier))
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/get-reports", r.wrap(r.handleGetReports))
		rt.Get("/get-report/{id}", r.wrap(r.handleGetReport))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap converts handler errors into status codes with short messages.
// Unclassified errors become a generic 500 and never crash the server.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		var badReq *badRequestError
		switch {
		case errors.Is(err, appanalysis.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "narrative and core question are required")
		case errors.As(err, &badReq):
			writeError(w, http.StatusBadRequest, badReq.msg)
		case errors.Is(err, domreports.ErrNotFound):
			writeError(w, http.StatusNotFound, "report not found or access denied")
		case errors.Is(err, domai.ErrGenerationUnavailable):
			writeError(w, http.StatusServiceUnavailable, "the analysis engine is currently unavailable")
		case errors.Is(err, domreports.ErrStoreUnavailable):
			writeError(w, http.StatusServiceUnavailable, "the report store is currently unavailable")
		default:
			log.Printf("internal error: %v", err)
			writeError(w, http.StatusInternalServerError, "an internal error occurred")
		}
	}
}

// badRequestError carries a caller-safe message for 400 responses.
type badRequestError struct{ msg string }

func (e *badRequestError) Error() string { return e.msg }

// POST /analyze
// multipart/form-data: narrative, core_question, report_details (JSON array
// string), zero or more "media" file parts.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	principal, ok := middleware.PrincipalFromContext(req.Context())
	if !ok {
		return errors.New("no principal in context")
	}

	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		return &badRequestError{msg: "expected multipart/form-data body"}
	}

	narrative := middleware.SanitizeString(req.FormValue("narrative"))
	coreQuestion := middleware.SanitizeString(req.FormValue("core_question"))

	var detailPoints []string
	if raw := req.FormValue("report_details"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &detailPoints); err != nil {
			return &badRequestError{msg: "report_details must be a JSON array of strings"}
		}
	}

	media, err := readMedia(req)
	if err != nil {
		return err
	}

	middleware.IncrementAnalyses()
	result, err := r.analysisSvc.Analyze(req.Context(), appanalysis.AnalyzeCommand{
		Owner:        principal.ID,
		Narrative:    narrative,
		CoreQuestion: coreQuestion,
		DetailPoints: detailPoints,
		Media:        media,
		Persist:      !principal.Anonymous,
	})
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}
	if result.ReportID != "" {
		middleware.IncrementAnalysesPersisted()
	}

	return writeJSON(w, http.StatusOK, result)
}

// GET /get-reports
func (r *Router) handleGetReports(w http.ResponseWriter, req *http.Request) error {
	principal, ok := middleware.PrincipalFromContext(req.Context())
	if !ok {
		return errors.New("no principal in context")
	}

	list, err := r.reportsSvc.List(req.Context(), principal.ID)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /get-report/{id}
func (r *Router) handleGetReport(w http.ResponseWriter, req *http.Request) error {
	principal, ok := middleware.PrincipalFromContext(req.Context())
	if !ok {
		return errors.New("no principal in context")
	}

	id := chi.URLParam(req, "id")
	if err := middleware.ValidateReportID(id); err != nil {
		// a malformed id cannot exist, and 404 leaks nothing
		return domreports.ErrNotFound
	}

	rep, err := r.reportsSvc.Get(req.Context(), principal.ID, domreports.ReportID(id))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]string{"html_report": rep.HTMLReport})
}

func readMedia(req *http.Request) ([]domai.Attachment, error) {
	if req.MultipartForm == nil {
		return nil, nil
	}
	files := req.MultipartForm.File["media"]
	if err := middleware.ValidateMediaCount(len(files)); err != nil {
		return nil, &badRequestError{msg: err.Error()}
	}

	var out []domai.Attachment
	for _, fh := range files {
		contentType := fh.Header.Get("Content-Type")
		if err := middleware.ValidateMediaType(contentType); err != nil {
			// skip attachments we cannot analyze, keep the request going
			log.Printf("warning: skipping attachment %q: %v", fh.Filename, err)
			continue
		}
		f, err := fh.Open()
		if err != nil {
			log.Printf("warning: could not open attachment %q: %v", fh.Filename, err)
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			log.Printf("warning: could not read attachment %q: %v", fh.Filename, err)
			continue
		}
		out = append(out, domai.Attachment{Data: data, ContentType: contentType})
	}
	return out, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
