package web

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/owservable/folders"
	"github.com/owservable/folders/jobs"
	"github.com/owservable/folders/storage"
)

// SourceInfo describes a source in the /api listing.
type SourceInfo struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func GetSources(w http.ResponseWriter, catalog *folders.Catalog) {
	sources := make([]SourceInfo, 0, len(catalog.Names()))

	for _, name := range catalog.Names() {
		source, _, _ := catalog.Lookup(name)

		kind := "s3"
		if _, local := source.Filesystem.(*storage.LocalFilesystem); local {
			kind = "local"
		}

		sources = append(sources, SourceInfo{Name: name, Kind: kind})
	}

	writeData(w, sources)
}

func RunOperation(
	w http.ResponseWriter,
	catalog *folders.Catalog,
	sourceName string,
	op folders.Operation,
	root string,
	name string,
) {
	if op.NeedsName() && name == "" {
		badRequest(w, "query parameter 'name' is required")
		return
	}

	paths, err := catalog.Run(sourceName, op, root, name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, paths)
}

func GetJobs(w http.ResponseWriter, scheduler *jobs.Scheduler) {
	if scheduler == nil {
		writeData(w, []*jobs.Result{})
		return
	}

	writeData(w, scheduler.Results())
}

func writeData(w http.ResponseWriter, data any) {
	b, err := json.Marshal(data)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(err.Error()))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(b)
}

func writeError(w http.ResponseWriter, err error) {
	var unknownSource *folders.UnknownSourceError

	switch {
	case errors.As(err, &unknownSource):
		sourceNotFound(w, unknownSource.Name)
	case errors.Is(err, storage.ErrOutsideSource):
		badRequest(w, err.Error())
	case errors.Is(err, fs.ErrNotExist):
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(err.Error()))
	default:
		log.Errorf("Request failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(err.Error()))
	}
}

func sourceNotFound(w http.ResponseWriter, source string) {
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`Source '`))
	_, _ = w.Write([]byte(source))
	_, _ = w.Write([]byte(`' does not exist.`))
}

func badRequest(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write([]byte(message))
}
