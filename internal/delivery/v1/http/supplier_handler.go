package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/internal/usecase"
	"github.com/profibuy/storefront/pkg/logger"
)

// SupplierHandler — поставщики, их фиды и долгие операции импорта.
type SupplierHandler struct {
	admin  usecase.AdminUC
	jobs   usecase.JobUC
	logger logger.Logger
}

func NewSupplierHandler(admin usecase.AdminUC, jobs usecase.JobUC, logger logger.Logger) *SupplierHandler {
	return &SupplierHandler{admin: admin, jobs: jobs, logger: logger}
}

func supplierID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

func (s *SupplierHandler) list(w http.ResponseWriter, r *http.Request) {
	suppliers, err := s.admin.ListSuppliers(r.Context(), token(r))
	respond(w, http.StatusOK, suppliers, err)
}

func (s *SupplierHandler) get(w http.ResponseWriter, r *http.Request) {
	supplier, err := s.admin.GetSupplier(r.Context(), token(r), supplierID(r))
	respond(w, http.StatusOK, supplier, err)
}

func (s *SupplierHandler) create(w http.ResponseWriter, r *http.Request) {
	var supplier domain.Supplier
	if err := decodeJSON(w, r, &supplier); err != nil {
		WriteError(w, err)
		return
	}
	created, err := s.admin.CreateSupplier(r.Context(), token(r), &supplier)
	respond(w, http.StatusCreated, created, err)
}

func (s *SupplierHandler) update(w http.ResponseWriter, r *http.Request) {
	var supplier domain.Supplier
	if err := decodeJSON(w, r, &supplier); err != nil {
		WriteError(w, err)
		return
	}
	updated, err := s.admin.UpdateSupplier(r.Context(), token(r), supplierID(r), &supplier)
	respond(w, http.StatusOK, updated, err)
}

func (s *SupplierHandler) remove(w http.ResponseWriter, r *http.Request) {
	respondOK(w, s.admin.DeleteSupplier(r.Context(), token(r), supplierID(r)))
}

func (s *SupplierHandler) storedFeeds(w http.ResponseWriter, r *http.Request) {
	feeds, err := s.admin.ListStoredFeeds(r.Context(), token(r), supplierID(r))
	respond(w, http.StatusOK, feeds, err)
}

func (s *SupplierHandler) deleteStoredFeed(w http.ResponseWriter, r *http.Request) {
	respondOK(w, s.admin.DeleteStoredFeed(r.Context(), token(r), supplierID(r), chi.URLParam(r, "feedID")))
}

func (s *SupplierHandler) downloadStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.admin.DownloadStatus(r.Context(), token(r), supplierID(r))
	respond(w, http.StatusOK, status, err)
}

func (s *SupplierHandler) products(w http.ResponseWriter, r *http.Request) {
	page, err := s.admin.ListSupplierProducts(r.Context(), token(r), supplierID(r), r.URL.Query())
	respond(w, http.StatusOK, page, err)
}

func (s *SupplierHandler) categories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.admin.ListSupplierCategories(r.Context(), token(r), supplierID(r))
	respond(w, http.StatusOK, categories, err)
}

func (s *SupplierHandler) brands(w http.ResponseWriter, r *http.Request) {
	brands, err := s.admin.ListSupplierBrands(r.Context(), token(r), supplierID(r))
	respond(w, http.StatusOK, brands, err)
}

func (s *SupplierHandler) deleteAllProducts(w http.ResponseWriter, r *http.Request) {
	respondOK(w, s.admin.DeleteAllSupplierProducts(r.Context(), token(r), supplierID(r)))
}

// startJob запускает операцию поставщика и возвращает снимок задачи для опроса.
//
//	@Summary		Запустить download, import или link-all
//	@Description	Витрина сама опрашивает статус операции; снимок доступен по /admin/api/jobs/{id}
//	@Tags			suppliers
//	@Produce		json
//	@Param			id		path		string	true	"ID поставщика"
//	@Param			kind	path		string	true	"download | import | link-all"
//	@Success		202		{object}	domain.Job
//	@Failure		400		{object}	ErrorResponse
//	@Router			/admin/api/suppliers/{id}/{kind} [post]
func (s *SupplierHandler) startJob(kind domain.JobKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			job *domain.Job
			err error
		)

		switch kind {
		case domain.JobImport:
			job, err = s.jobs.StartImport(r.Context(), token(r), supplierID(r))
		case domain.JobLink:
			job, err = s.jobs.StartLink(r.Context(), token(r), supplierID(r))
		case domain.JobDownload:
			job, err = s.jobs.StartDownload(r.Context(), token(r), supplierID(r))
		}
		if err != nil {
			s.logger.Warnf("%s for supplier %s not started: %v", kind, supplierID(r), err)
			WriteError(w, err)
			return
		}

		WriteSuccess(w, http.StatusAccepted, job)
	}
}

func (s *SupplierHandler) supplierJobs(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, s.jobs.List(supplierID(r)))
}

// job
//
//	@Summary	Снимок отслеживаемой операции
//	@Tags		suppliers
//	@Produce	json
//	@Param		id	path		string	true	"ID задачи"
//	@Success	200	{object}	domain.Job
//	@Failure	404	{object}	ErrorResponse
//	@Router		/admin/api/jobs/{id} [get]
func (s *SupplierHandler) job(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobs.Get(chi.URLParam(r, "id"))
	respond(w, http.StatusOK, job, err)
}
