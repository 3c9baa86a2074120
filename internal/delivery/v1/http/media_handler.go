package http

import (
	"errors"
	"net/http"

	"github.com/profibuy/storefront/internal/usecase"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
)

type MediaHandler struct {
	media  usecase.MediaUC
	logger logger.Logger
}

func NewMediaHandler(media usecase.MediaUC, logger logger.Logger) *MediaHandler {
	return &MediaHandler{media: media, logger: logger}
}

// upload
//
//	@Summary		Загрузка изображений для форм админки
//	@Description	До 10 файлов jpeg/png/webp, не больше 15 МиБ каждый
//	@Tags			admin
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			folder	formData	string					false	"Папка в бакете"
//	@Param			files	formData	file					true	"Изображения"
//	@Success		201		{object}	usecase.UploadMediaRes	"Ключи и публичные ссылки"
//	@Failure		400		{object}	ErrorResponse			"Ошибка валидации"
//	@Failure		413		{object}	ErrorResponse
//	@Failure		415		{object}	ErrorResponse
//	@Router			/admin/api/media [post]
func (m *MediaHandler) upload(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 160 << 20
		maxMemory           = 32 << 20
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		m.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		if !errors.Is(err, e.ErrExpectedMultipart) {
			err = e.Wrap(err.Error(), e.ErrStatusBadRequest)
		}
		WriteError(w, err)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	files, err := parseMediaFiles(r.MultipartForm.File["files"])
	if err != nil {
		m.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	res, err := m.media.Upload(r.Context(), &usecase.UploadMediaReq{
		Folder: r.FormValue("folder"),
		Files:  files,
	})
	if err != nil {
		m.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, res)
}
