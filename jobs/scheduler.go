// Package jobs runs traversal operations on a cron schedule and keeps the
// outcome of the latest run of every job.
package jobs

import (
	"context"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/owservable/folders"
	"github.com/owservable/folders/metrics"
)

// Result is the outcome of one job run.
type Result struct {
	Job       string            `json:"job"`
	Source    string            `json:"source"`
	Operation folders.Operation `json:"operation"`
	Schedule  string            `json:"schedule"`
	Count     int               `json:"count"`
	RanAt     time.Time         `json:"ran_at"`
	Duration  time.Duration     `json:"duration"`
	Error     string            `json:"error,omitempty"`
}

type job struct {
	definition *Definition
	metrics    *metrics.JobMetric
}

// Scheduler runs a fixed set of jobs against a catalog.
type Scheduler struct {
	catalog *folders.Catalog
	jobs    []*job
	now     func() time.Time

	mu      sync.RWMutex
	results map[string]*Result
}

func NewScheduler(catalog *folders.Catalog, definitions []*Definition) *Scheduler {
	s := &Scheduler{
		catalog: catalog,
		now:     time.Now,
		results: make(map[string]*Result, len(definitions)),
	}

	for _, definition := range definitions {
		s.jobs = append(s.jobs, &job{
			definition: definition,
			metrics:    metrics.NewJob(definition.Name, string(definition.Operation)),
		})
	}

	return s
}

// RunOnce runs every job immediately, one after the other.
func (s *Scheduler) RunOnce() {
	for _, j := range s.jobs {
		s.run(j)
	}
}

// Run executes the jobs whenever their schedule fires until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	if len(s.jobs) == 0 {
		log.Info("No scan jobs configured")
		<-ctx.Done()
		return
	}

	for {
		now := s.now()
		due, at := s.nextDue(now)
		if len(due) == 0 {
			log.Warn("None of the scan jobs will ever run again")
			<-ctx.Done()
			return
		}

		log.Debugf("Next scan job run at %s", at.Format(time.RFC3339))

		timer := time.NewTimer(at.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		for _, j := range due {
			s.run(j)
		}
	}
}

// nextDue returns the jobs whose schedule fires next after now, and when.
func (s *Scheduler) nextDue(now time.Time) ([]*job, time.Time) {
	var due []*job
	var earliest time.Time

	for _, j := range s.jobs {
		next := j.definition.Schedule.Next(now)
		if next.IsZero() {
			continue
		}

		switch {
		case earliest.IsZero() || next.Before(earliest):
			earliest = next
			due = []*job{j}
		case next.Equal(earliest):
			due = append(due, j)
		}
	}

	return due, earliest
}

func (s *Scheduler) run(j *job) {
	definition := j.definition
	started := s.now()

	paths, err := s.catalog.Run(definition.Source, definition.Operation, definition.Root, definition.FolderName)
	took := s.now().Sub(started)

	result := &Result{
		Job:       definition.Name,
		Source:    definition.Source,
		Operation: definition.Operation,
		Schedule:  definition.Expression,
		Count:     len(paths),
		RanAt:     started,
		Duration:  took,
	}

	j.metrics.Expected(FindPrevious(definition.Schedule, started))

	if err != nil {
		log.Errorf("[job:%s] Running %s on source '%s' failed: %v", definition.Name, definition.Operation, definition.Source, err)
		result.Error = err.Error()
		j.metrics.Failed(started, took)
	} else {
		log.Infof("[job:%s] %s on source '%s' returned %d paths", definition.Name, definition.Operation, definition.Source, len(paths))
		j.metrics.Succeeded(len(paths), started, took)
	}

	s.mu.Lock()
	s.results[definition.Name] = result
	s.mu.Unlock()
}

// Results returns the latest result of every job that ran at least once,
// sorted by job name.
func (s *Scheduler) Results() []*Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*Result, 0, len(s.results))
	for _, result := range s.results {
		copied := *result
		results = append(results, &copied)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Job < results[j].Job
	})
	return results
}

// Definitions returns the scheduled jobs.
func (s *Scheduler) Definitions() []*Definition {
	definitions := make([]*Definition, 0, len(s.jobs))
	for _, j := range s.jobs {
		definitions = append(definitions, j.definition)
	}
	return definitions
}

// Close unregisters the metrics of all jobs.
func (s *Scheduler) Close() {
	for _, j := range s.jobs {
		j.metrics.Drop()
	}
}
