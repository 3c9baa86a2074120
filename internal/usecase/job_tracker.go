package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/profibuy/storefront/internal/cfg"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
)

const (
	finishedJobRetention = time.Hour
	eventRecordTimeout   = 5 * time.Second
)

// pollFunc опрашивает бэкенд один раз. Пустое состояние означает, что операция ещё идёт.
type pollFunc func(ctx context.Context) (state domain.JobState, status string, progress any, err error)

// JobTracker запускает долгие операции поставщиков и опрашивает их статус
// с фиксированным интервалом до конечного состояния. Без backoff и дедупликации.
type JobTracker struct {
	api    SupplierAPI
	events EventsUC
	cfg    *cfg.JobsCfg
	logger logger.Logger
	now    func() time.Time

	mu   sync.RWMutex
	jobs map[string]*domain.Job

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewJobTracker привязывает опросы к ctx: его отмена останавливает все активные задачи.
func NewJobTracker(ctx context.Context, api SupplierAPI, events EventsUC, cfg *cfg.JobsCfg, logger logger.Logger) *JobTracker {
	ctx, cancel := context.WithCancel(ctx)

	return &JobTracker{
		api:    api,
		events: events,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		jobs:   make(map[string]*domain.Job),
		ctx:    ctx,
		cancel: cancel,
	}
}

// StartImport запускает импорт текущего фида и опрашивает прогресс раз в ImportPollInterval.
func (t *JobTracker) StartImport(ctx context.Context, token string, supplierID string) (*domain.Job, error) {
	started, err := t.api.StartImport(ctx, token, supplierID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if started.ID == "" {
		return nil, e.Wrap(whereami.WhereAmI(), errors.New("backend returned import without id"))
	}

	job := t.register(domain.JobImport, supplierID, started.ID, started.Status, started)

	t.spawn(job.ID, t.cfg.ImportPollInterval, 0, func(ctx context.Context) (domain.JobState, string, any, error) {
		progress, err := t.api.GetImportProgress(ctx, token, supplierID, started.ID)
		if err != nil {
			return "", "", nil, err
		}
		return importState(progress.Status), progress.Status, progress, nil
	})

	return job, nil
}

// StartLink запускает привязку всех товаров поставщика к каталогу.
func (t *JobTracker) StartLink(ctx context.Context, token string, supplierID string) (*domain.Job, error) {
	started, err := t.api.LinkAll(ctx, token, supplierID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if started.LinkID == "" {
		return nil, e.Wrap(whereami.WhereAmI(), errors.New("backend returned link job without id"))
	}

	job := t.register(domain.JobLink, supplierID, started.LinkID, "running", started)

	t.spawn(job.ID, t.cfg.LinkPollInterval, 0, func(ctx context.Context) (domain.JobState, string, any, error) {
		progress, err := t.api.GetLinkProgress(ctx, token, supplierID, started.LinkID)
		if err != nil {
			return "", "", nil, err
		}
		return linkState(progress.Status), progress.Status, progress, nil
	})

	return job, nil
}

// StartDownload запускает скачивание фида. Опрос прекращается, когда активного скачивания больше нет,
// и в любом случае через DownloadMaxDuration.
func (t *JobTracker) StartDownload(ctx context.Context, token string, supplierID string) (*domain.Job, error) {
	if err := t.api.StartDownload(ctx, token, supplierID); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	job := t.register(domain.JobDownload, supplierID, "", "downloading", nil)

	t.spawn(job.ID, t.cfg.DownloadPollInterval, t.cfg.DownloadMaxDuration, func(ctx context.Context) (domain.JobState, string, any, error) {
		status, err := t.api.GetDownloadStatus(ctx, token, supplierID)
		if err != nil {
			return "", "", nil, err
		}
		state, label := downloadState(status)
		return state, label, status, nil
	})

	return job, nil
}

// Get возвращает снимок задачи.
func (t *JobTracker) Get(id string) (*domain.Job, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	job, ok := t.jobs[id]
	if !ok {
		return nil, e.ErrJobNotFound
	}

	snapshot := *job
	return &snapshot, nil
}

// List возвращает задачи, новые первыми. Пустой supplierID — все поставщики.
func (t *JobTracker) List(supplierID string) []domain.Job {
	t.mu.RLock()
	res := make([]domain.Job, 0, len(t.jobs))
	for _, job := range t.jobs {
		if supplierID == "" || job.SupplierID == supplierID {
			res = append(res, *job)
		}
	}
	t.mu.RUnlock()

	sort.Slice(res, func(i, j int) bool {
		return res[i].StartedAt.After(res[j].StartedAt)
	})
	return res
}

// Shutdown останавливает опросы и ждёт их завершения.
func (t *JobTracker) Shutdown(ctx context.Context) error {
	t.cancel()

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return e.Wrap(whereami.WhereAmI(), ctx.Err())
	}
}

func (t *JobTracker) register(kind domain.JobKind, supplierID, remoteID, status string, progress any) *domain.Job {
	now := t.now()
	job := &domain.Job{
		ID:         uuid.NewString(),
		Kind:       kind,
		SupplierID: supplierID,
		RemoteID:   remoteID,
		State:      domain.JobRunning,
		Status:     status,
		Progress:   t.marshalProgress(progress),
		StartedAt:  now,
		UpdatedAt:  now,
	}

	t.mu.Lock()
	t.pruneLocked(now)
	t.jobs[job.ID] = job
	snapshot := *job
	t.mu.Unlock()

	t.logger.Infof("%s job %s started for supplier %s (remote id %q)", kind, job.ID, supplierID, remoteID)
	return &snapshot
}

func (t *JobTracker) spawn(id string, interval, maxDuration time.Duration, poll pollFunc) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.run(id, interval, maxDuration, poll)
	}()
}

func (t *JobTracker) run(id string, interval, maxDuration time.Duration, poll pollFunc) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var deadline <-chan time.Time
	if maxDuration > 0 {
		timer := time.NewTimer(maxDuration)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		select {
		case <-t.ctx.Done():
			t.finish(id, domain.JobCancelled, "")
			return
		case <-deadline:
			t.logger.Warnf("job %s stopped after %s without a final status", id, maxDuration)
			t.finish(id, domain.JobTimedOut, "")
			return
		case <-ticker.C:
		}

		state, status, progress, err := poll(t.ctx)
		if err != nil {
			if t.ctx.Err() != nil {
				continue
			}
			t.logger.Warnf("job %s poll failed, retrying in %s: %v", id, interval, err)
			t.update(id, func(job *domain.Job) {
				job.LastError = err.Error()
			})
			continue
		}

		raw := t.marshalProgress(progress)
		t.update(id, func(job *domain.Job) {
			job.Status = status
			job.Progress = raw
			job.LastError = ""
		})

		if state != "" && state.Terminal() {
			t.finish(id, state, status)
			return
		}
	}
}

func (t *JobTracker) update(id string, fn func(job *domain.Job)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, ok := t.jobs[id]
	if !ok {
		return
	}
	fn(job)
	job.Polls++
	job.UpdatedAt = t.now()
}

func (t *JobTracker) finish(id string, state domain.JobState, status string) {
	now := t.now()

	t.mu.Lock()
	job, ok := t.jobs[id]
	if !ok {
		t.mu.Unlock()
		return
	}
	job.State = state
	if status != "" {
		job.Status = status
	}
	job.UpdatedAt = now
	job.FinishedAt = &now
	snapshot := *job
	t.mu.Unlock()

	t.logger.Infof("%s job %s for supplier %s finished: %s after %d polls", snapshot.Kind, id, snapshot.SupplierID, state, snapshot.Polls)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(t.ctx), eventRecordTimeout)
	defer cancel()

	event := domain.NewEvent(uuid.NewString(), domain.EventSupplierJobFinished, snapshot.SupplierID, map[string]any{
		"job_id":      snapshot.ID,
		"kind":        string(snapshot.Kind),
		"supplier_id": snapshot.SupplierID,
		"remote_id":   snapshot.RemoteID,
		"state":       string(snapshot.State),
		"status":      snapshot.Status,
		"polls":       snapshot.Polls,
		"started_at":  snapshot.StartedAt.Format(time.RFC3339),
		"finished_at": now.Format(time.RFC3339),
	}, now)
	if err := t.events.Record(ctx, event); err != nil {
		t.logger.Warnf("supplier_job_finished event for %s not recorded: %v", id, err)
	}
}

// pruneLocked забывает задачи, завершившиеся больше часа назад.
func (t *JobTracker) pruneLocked(now time.Time) {
	for id, job := range t.jobs {
		if job.FinishedAt != nil && now.Sub(*job.FinishedAt) > finishedJobRetention {
			delete(t.jobs, id)
		}
	}
}

func (t *JobTracker) marshalProgress(progress any) []byte {
	if progress == nil {
		return nil
	}
	raw, err := json.Marshal(progress)
	if err != nil {
		t.logger.Warnf("job progress not serializable: %v", err)
		return nil
	}
	return raw
}

func importState(status string) domain.JobState {
	switch status {
	case "completed":
		return domain.JobCompleted
	case "failed":
		return domain.JobFailed
	case "cancelled":
		return domain.JobCancelled
	}
	return ""
}

// linkState: всё, что не "running", считается концом операции.
func linkState(status string) domain.JobState {
	switch status {
	case "running":
		return ""
	case "failed", "error":
		return domain.JobFailed
	}
	return domain.JobCompleted
}

func downloadState(status *domain.DownloadStatus) (domain.JobState, string) {
	active := status.ActiveDownload
	if active == nil {
		return domain.JobCompleted, "completed"
	}

	switch active.Status {
	case "completed":
		return domain.JobCompleted, active.Status
	case "failed":
		return domain.JobFailed, active.Status
	}
	return "", active.Status
}
