package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/profibuy/storefront/internal/cfg"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/internal/usecase"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/jitter"
	"github.com/profibuy/storefront/pkg/logger"
)

const (
	cleanupAttempts = 3
	cleanupTimeout  = 30 * time.Second
)

// MinioInfrastructure загружает медиа админки в MinIO и убирает за собой при частичной неудаче.
type MinioInfrastructure struct {
	repo        usecase.ObjectRepository
	bucket      string
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
	limit       int
}

func NewMinioInfrastructure(repo usecase.ObjectRepository, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *MinioInfrastructure {
	limit := cfg.UploadFilesLimit
	if limit <= 0 {
		limit = 1
	}

	return &MinioInfrastructure{
		repo:        repo,
		bucket:      cfg.BucketName,
		logger:      logger,
		shutdownCtx: shutdownCtx,
		limit:       limit,
	}
}

// UploadFiles загружает файлы параллельно, не более limit одновременно.
// При первой ошибке отменяет остальные загрузки и в фоне удаляет уже загруженные.
// Ключи в ответе идут в порядке файлов запроса.
func (m *MinioInfrastructure) UploadFiles(ctx context.Context, req *usecase.UploadMediaReq) (*usecase.UploadMediaRes, error) {
	const op = "MinioInfrastructure.UploadFiles"

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		idx int
		key string
		err error
	}

	resCh := make(chan result, len(req.Files))
	sem := make(chan struct{}, m.limit)

	var uploadWg sync.WaitGroup
	for i, file := range req.Files {
		uploadWg.Add(1)
		go func() {
			defer uploadWg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				resCh <- result{idx: i, err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			ext, ok := domain.MediaExtension(file.ContentType)
			if !ok {
				resCh <- result{idx: i, err: fmt.Errorf("invalid mime type %s for %s: %w", file.ContentType, file.Name, e.ErrUnsupportedMediaType)}
				return
			}

			id := uuid.NewString()
			objKey := fmt.Sprintf("%s/%s.%s", req.Folder, id, ext)
			object := domain.NewMediaObject(id, m.bucket, objKey, file.Data, int64(len(file.Data)), file.ContentType)

			key, err := m.repo.Upload(ctx, object)
			if err != nil {
				resCh <- result{idx: i, err: fmt.Errorf("upload %s failed: %w", file.Name, err)}
				return
			}

			resCh <- result{idx: i, key: key}
		}()
	}

	go func() {
		uploadWg.Wait()
		close(resCh)
	}()

	keys := make([]string, len(req.Files))
	var firstErr error
	uploaded := make([]string, 0, len(req.Files))

	for res := range resCh {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
				cancel()
			}
			continue
		}
		keys[res.idx] = res.key
		uploaded = append(uploaded, res.key)
	}

	if firstErr != nil {
		m.CleanupFiles(uploaded)
		return nil, e.Wrap(op, firstErr)
	}

	return &usecase.UploadMediaRes{Keys: keys}, nil
}

// CleanupFiles запускает фоновое удаление объектов.
func (m *MinioInfrastructure) CleanupFiles(keys []string) {
	if len(keys) == 0 {
		return
	}
	m.wg.Add(1)
	go m.cleanup(keys)
}

// cleanup удаляет объекты с экспоненциальной задержкой между попытками.
func (m *MinioInfrastructure) cleanup(keys []string) {
	defer m.wg.Done()
	const op = "MinioInfrastructure.cleanup"
	m.logger.Infof("%s: removing %d uploaded objects", op, len(keys))

	ctx, cancel := context.WithTimeout(m.shutdownCtx, cleanupTimeout)
	defer cancel()

	for _, key := range keys {
		for attempt := 0; attempt < cleanupAttempts; attempt++ {
			err := m.repo.Delete(ctx, key)
			if err == nil {
				break
			}

			if attempt == cleanupAttempts-1 {
				m.logger.Errorf(err, "%s: object %s left in bucket", op, key)
				break
			}

			select {
			case <-time.After(jitter.ExponentialBackoff(time.Second, 4*time.Second, attempt, jitter.DefaultJitter)):
			case <-ctx.Done():
				m.logger.Warnf("cleanup interrupted by shutdown, key=%v", key)
				return
			}
		}
	}
}

// WaitForCleanup ожидает фоновые удаления, но не дольше shutdownTimeoutCtx.
func (m *MinioInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}
