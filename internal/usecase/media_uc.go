package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/jimlawless/whereami"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/format"
	"github.com/profibuy/storefront/pkg/logger"
)

const (
	MaxMediaFiles    = 10
	MaxMediaFileSize = 15 << 20
	defaultFolder    = "uploads"
)

// MediaUCImpl принимает изображения из форм админки и возвращает публичные ссылки на них.
type MediaUCImpl struct {
	infra     MediaInfra
	publicURL string
	logger    logger.Logger
}

func NewMediaUC(infra MediaInfra, publicURL string, logger logger.Logger) *MediaUCImpl {
	return &MediaUCImpl{
		infra:     infra,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger,
	}
}

func (m *MediaUCImpl) Upload(ctx context.Context, req *UploadMediaReq) (*UploadMediaRes, error) {
	const op = "MediaUC.Upload"

	if err := m.validate(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	res, err := m.infra.UploadFiles(ctx, req)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	res.URLs = make([]string, 0, len(res.Keys))
	for _, key := range res.Keys {
		res.URLs = append(res.URLs, m.publicURL+"/"+key)
	}

	m.logger.Infof("%d media files uploaded to %s", len(res.Keys), req.Folder)
	return res, nil
}

// validate проверяет лимиты и определяет Content-Type по содержимому файла.
// Заявленный клиентом тип не учитывается.
func (m *MediaUCImpl) validate(req *UploadMediaReq) error {
	if len(req.Files) == 0 {
		return e.ErrNoFiles
	}
	if len(req.Files) > MaxMediaFiles {
		return e.ErrTooManyFiles
	}

	req.Folder = format.Slug(req.Folder)
	if req.Folder == "" {
		req.Folder = defaultFolder
	}

	for i := range req.Files {
		f := &req.Files[i]
		if f.Size == 0 {
			f.Size = int64(len(f.Data))
		}
		if f.Size > MaxMediaFileSize {
			return e.Wrap(f.Name, e.ErrFileTooLarge)
		}

		sniffed := http.DetectContentType(f.Data)
		if _, ok := domain.MediaExtension(sniffed); !ok {
			return e.Wrap(f.Name, e.ErrUnsupportedMediaType)
		}
		f.ContentType = sniffed
	}

	return nil
}
