package web

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/owservable/folders"
	"github.com/owservable/folders/jobs"
	"github.com/owservable/folders/metrics"
)

type handlers struct {
	catalog   *folders.Catalog
	scheduler *jobs.Scheduler
}

// NewRouter exposes the operations of every source in catalog. scheduler may
// be nil.
func NewRouter(catalog *folders.Catalog, scheduler *jobs.Scheduler) *mux.Router {
	h := &handlers{catalog: catalog, scheduler: scheduler}

	router := mux.NewRouter().UseEncodedPath()
	router.StrictSlash(true)
	router.HandleFunc("/", BaseHandler)
	router.Handle("/metrics", metrics.Handler())

	router.HandleFunc("/api", h.sources).Methods("GET")
	router.HandleFunc("/api/jobs", h.jobs).Methods("GET")
	router.HandleFunc("/api/{source}/files", h.operation(folders.OperationFiles)).Methods("GET")
	router.HandleFunc("/api/{source}/folders", h.operation(folders.OperationFind)).Methods("GET")
	router.HandleFunc("/api/{source}/folders/files", h.operation(folders.OperationCollect)).Methods("GET")

	return router
}

// BaseHandler redirects to the source listing.
func BaseHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/api", http.StatusMovedPermanently)
}

func (h *handlers) sources(w http.ResponseWriter, _ *http.Request) {
	GetSources(w, h.catalog)
}

func (h *handlers) jobs(w http.ResponseWriter, _ *http.Request) {
	GetJobs(w, h.scheduler)
}

func (h *handlers) operation(op folders.Operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		unescape(vars)
		query := r.URL.Query()

		RunOperation(w, h.catalog, vars["source"], op, query.Get("root"), query.Get("name"))
	}
}

func unescape(vars map[string]string) {
	for key, val := range vars {
		val, err := url.PathUnescape(val)
		if err == nil {
			vars[key] = val
		}
	}
}
