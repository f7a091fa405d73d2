package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/estock-market/company-service/internal/domain/company"
	"github.com/estock-market/company-service/internal/handler/http/response"
	"github.com/estock-market/company-service/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type CompanyHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &CompanyHandlerImpl{
		companyService: companyService,
	}
}

// Register implements CompanyHandler.
func (c *CompanyHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req company.CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode register company request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	saved, err := c.companyService.AddCompany(r.Context(), req.ToCompany())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Company registered successfully", company.NewCompanyResponse(saved))
}

// GetByID implements CompanyHandler.
func (c *CompanyHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	companyCode, ok := validator.ParseCompanyCode(chi.URLParam(r, "companyCode"))
	if !ok {
		response.HandleError(w, company.ErrInvalidCompanyCode)
		return
	}

	found, err := c.companyService.GetCompany(r.Context(), companyCode)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, company.NewCompanyResponse(found))
}

// List implements CompanyHandler.
func (c *CompanyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companies, err := c.companyService.GetAllCompanies(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]company.CompanyResponse, 0, len(companies))
	for _, found := range companies {
		resp = append(resp, company.NewCompanyResponse(found))
	}
	response.Success(w, resp)
}

// Delete implements CompanyHandler.
func (c *CompanyHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	companyCode, ok := validator.ParseCompanyCode(chi.URLParam(r, "companyCode"))
	if !ok {
		response.HandleError(w, company.ErrInvalidCompanyCode)
		return
	}

	if err := c.companyService.DeleteCompany(r.Context(), companyCode); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Company deleted successfully", nil)
}
