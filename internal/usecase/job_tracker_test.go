package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/profibuy/storefront/internal/cfg"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
)

type fakeSupplierAPI struct {
	SupplierAPI

	mu             sync.Mutex
	importStatuses []string
	linkStatuses   []string
	downloads      []*domain.DownloadStatus
	pollErrors     int
	polls          int
}

func (f *fakeSupplierAPI) StartImport(_ context.Context, _ string, supplierID string) (*domain.ImportProgress, error) {
	return &domain.ImportProgress{ID: "imp-1", SupplierID: supplierID, Status: "running"}, nil
}

func (f *fakeSupplierAPI) GetImportProgress(_ context.Context, _ string, _ string, importID string) (*domain.ImportProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.polls++
	if f.pollErrors > 0 {
		f.pollErrors--
		return nil, e.ErrBackendUnavailable
	}
	status := f.importStatuses[0]
	if len(f.importStatuses) > 1 {
		f.importStatuses = f.importStatuses[1:]
	}
	return &domain.ImportProgress{ID: importID, Status: status, Processed: f.polls}, nil
}

func (f *fakeSupplierAPI) LinkAll(context.Context, string, string) (*domain.LinkStarted, error) {
	return &domain.LinkStarted{LinkID: "link-1"}, nil
}

func (f *fakeSupplierAPI) GetLinkProgress(context.Context, string, string, string) (*domain.LinkProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.polls++
	status := f.linkStatuses[0]
	if len(f.linkStatuses) > 1 {
		f.linkStatuses = f.linkStatuses[1:]
	}
	return &domain.LinkProgress{Status: status}, nil
}

func (f *fakeSupplierAPI) StartDownload(context.Context, string, string) error {
	return nil
}

func (f *fakeSupplierAPI) GetDownloadStatus(context.Context, string, string) (*domain.DownloadStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.polls++
	status := f.downloads[0]
	if len(f.downloads) > 1 {
		f.downloads = f.downloads[1:]
	}
	return status, nil
}

func testJobsCfg() *cfg.JobsCfg {
	return &cfg.JobsCfg{
		ImportPollInterval:   5 * time.Millisecond,
		LinkPollInterval:     5 * time.Millisecond,
		DownloadPollInterval: 5 * time.Millisecond,
		DownloadMaxDuration:  time.Second,
	}
}

func waitForState(t *testing.T, tracker *JobTracker, id string) *domain.Job {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		job, err := tracker.Get(id)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if job.State.Terminal() {
			return job
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("job %s did not finish", id)
	return nil
}

func TestImportJobPollsUntilCompleted(t *testing.T) {
	api := &fakeSupplierAPI{importStatuses: []string{"running", "running", "completed"}, pollErrors: 1}
	events := &fakeEvents{}
	tracker := NewJobTracker(context.Background(), api, events, testJobsCfg(), logger.NewNop())
	defer tracker.Shutdown(context.Background())

	job, err := tracker.StartImport(context.Background(), "tok", "sup-1")
	if err != nil {
		t.Fatalf("StartImport: %v", err)
	}
	if job.State != domain.JobRunning || job.RemoteID != "imp-1" || job.Kind != domain.JobImport {
		t.Fatalf("unexpected initial job %+v", job)
	}

	done := waitForState(t, tracker, job.ID)
	if done.State != domain.JobCompleted || done.Status != "completed" {
		t.Fatalf("unexpected final job %+v", done)
	}
	// Ошибка опроса не останавливает задачу: 1 ошибка + 3 статуса.
	if done.Polls != 4 {
		t.Fatalf("expected 4 polls, got %d", done.Polls)
	}
	if done.FinishedAt == nil || len(done.Progress) == 0 {
		t.Fatalf("finished job must carry progress and finish time: %+v", done)
	}

	recorded := events.recorded()
	if len(recorded) != 1 || recorded[0].EventType != domain.EventSupplierJobFinished || recorded[0].Payload["state"] != "completed" {
		t.Fatalf("expected supplier_job_finished event, got %+v", recorded)
	}
}

func TestImportJobFailed(t *testing.T) {
	api := &fakeSupplierAPI{importStatuses: []string{"failed"}}
	tracker := NewJobTracker(context.Background(), api, &fakeEvents{}, testJobsCfg(), logger.NewNop())
	defer tracker.Shutdown(context.Background())

	job, _ := tracker.StartImport(context.Background(), "tok", "sup-1")
	if done := waitForState(t, tracker, job.ID); done.State != domain.JobFailed {
		t.Fatalf("expected failed, got %s", done.State)
	}
}

func TestLinkJobStopsOnAnyNonRunningStatus(t *testing.T) {
	api := &fakeSupplierAPI{linkStatuses: []string{"running", "done"}}
	tracker := NewJobTracker(context.Background(), api, &fakeEvents{}, testJobsCfg(), logger.NewNop())
	defer tracker.Shutdown(context.Background())

	job, err := tracker.StartLink(context.Background(), "tok", "sup-1")
	if err != nil {
		t.Fatalf("StartLink: %v", err)
	}
	done := waitForState(t, tracker, job.ID)
	if done.State != domain.JobCompleted || done.Status != "done" {
		t.Fatalf("unexpected final link job %+v", done)
	}
}

func TestDownloadJobEndsWhenNoActiveDownload(t *testing.T) {
	api := &fakeSupplierAPI{downloads: []*domain.DownloadStatus{
		{ActiveDownload: &domain.DownloadProgress{Status: "downloading", Percent: 10}},
		{ActiveDownload: &domain.DownloadProgress{Status: "downloading", Percent: 80}},
		{ActiveDownload: nil},
	}}
	tracker := NewJobTracker(context.Background(), api, &fakeEvents{}, testJobsCfg(), logger.NewNop())
	defer tracker.Shutdown(context.Background())

	job, err := tracker.StartDownload(context.Background(), "tok", "sup-1")
	if err != nil {
		t.Fatalf("StartDownload: %v", err)
	}
	if done := waitForState(t, tracker, job.ID); done.State != domain.JobCompleted || done.Polls != 3 {
		t.Fatalf("unexpected final download job %+v", done)
	}
}

func TestDownloadJobSafetyStop(t *testing.T) {
	api := &fakeSupplierAPI{downloads: []*domain.DownloadStatus{
		{ActiveDownload: &domain.DownloadProgress{Status: "downloading"}},
	}}
	conf := testJobsCfg()
	conf.DownloadMaxDuration = 30 * time.Millisecond
	tracker := NewJobTracker(context.Background(), api, &fakeEvents{}, conf, logger.NewNop())
	defer tracker.Shutdown(context.Background())

	job, _ := tracker.StartDownload(context.Background(), "tok", "sup-1")
	if done := waitForState(t, tracker, job.ID); done.State != domain.JobTimedOut {
		t.Fatalf("expected timed_out, got %s", done.State)
	}
}

func TestShutdownCancelsJobs(t *testing.T) {
	api := &fakeSupplierAPI{importStatuses: []string{"running"}}
	tracker := NewJobTracker(context.Background(), api, &fakeEvents{}, testJobsCfg(), logger.NewNop())

	job, _ := tracker.StartImport(context.Background(), "tok", "sup-1")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := tracker.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	got, _ := tracker.Get(job.ID)
	if got.State != domain.JobCancelled {
		t.Fatalf("expected cancelled, got %s", got.State)
	}
}

func TestJobLookup(t *testing.T) {
	api := &fakeSupplierAPI{importStatuses: []string{"completed"}}
	tracker := NewJobTracker(context.Background(), api, &fakeEvents{}, testJobsCfg(), logger.NewNop())
	defer tracker.Shutdown(context.Background())

	if _, err := tracker.Get("nope"); !errors.Is(err, e.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}

	a, _ := tracker.StartImport(context.Background(), "tok", "sup-1")
	_, _ = tracker.StartImport(context.Background(), "tok", "sup-2")

	if jobs := tracker.List("sup-1"); len(jobs) != 1 || jobs[0].ID != a.ID {
		t.Fatalf("unexpected filtered jobs %+v", jobs)
	}
	if jobs := tracker.List(""); len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
}
