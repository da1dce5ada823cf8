package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	ierrors "github.com/corpindex/company-search/internal/errors"
	"github.com/corpindex/company-search/internal/search"
	"github.com/corpindex/company-search/model"
	"github.com/corpindex/company-search/services"
)

// maxResultsHeader carries the per-query result cap for multi-search.
const maxResultsHeader = "X-Max-Results-Per-Query"

// BulkItemResponse echoes one request item with its outcome: "created",
// "updated", "deleted", or the error message.
type BulkItemResponse struct {
	Request  interface{} `json:"request"`
	Response string      `json:"response"`
}

// BulkResponse is the response body of every bulk endpoint.
type BulkResponse struct {
	Data []BulkItemResponse `json:"data"`
}

// AddCompaniesHandler handles POST /api/companies. The body is either a
// single company (201 + Location header) or an array (bulk response). With
// ?async=true bulk adds run as a background job.
func (api *API) AddCompaniesHandler(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	var companies []model.Company
	if err := json.Unmarshal(body, &companies); err != nil {
		// Not an array; try a single company.
		var company model.Company
		if err := json.Unmarshal(body, &company); err != nil {
			SendInvalidJSONError(c, err)
			return
		}
		api.addSingleCompany(c, company)
		return
	}

	if result := ValidateCompanies(companies); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if c.Query("async") == "true" {
		jobID, err := api.engine.AddCompaniesAsync(companies)
		if err != nil {
			SendJobExecutionError(c, "bulk add", err)
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"job_id": jobID})
		return
	}

	result := api.engine.AddCompanies(companies)
	c.JSON(http.StatusOK, bulkResponseFor(companies, result, "created"))
}

func (api *API) addSingleCompany(c *gin.Context, company model.Company) {
	if company.ID == 0 {
		id, err := api.engine.GenerateCompanyID()
		if err != nil {
			SendInternalError(c, "company ID generation", err)
			return
		}
		company.ID = id
	}

	if result := ValidateCompanies([]model.Company{company}); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	addResult := api.engine.AddCompanies([]model.Company{company})
	if msg, failed := addResult.Errors[company.ID]; failed {
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, msg)
		return
	}

	c.Header("Location", "/api/companies/"+strconv.FormatInt(company.ID, 10))
	c.JSON(http.StatusCreated, company)
}

// UpdateCompaniesHandler handles PATCH /api/companies with an array of
// partial updates. With ?async=true the batch runs as a background job.
func (api *API) UpdateCompaniesHandler(c *gin.Context) {
	var updates []model.CompanyUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if len(updates) == 0 {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "Update list cannot be empty")
		return
	}

	if c.Query("async") == "true" {
		jobID, err := api.engine.UpdateCompaniesAsync(updates)
		if err != nil {
			SendJobExecutionError(c, "bulk update", err)
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"job_id": jobID})
		return
	}

	result := api.engine.UpdateCompanies(updates)

	items := make([]BulkItemResponse, 0, len(updates))
	for _, update := range updates {
		items = append(items, BulkItemResponse{
			Request:  update,
			Response: outcomeFor(update.ID, result, "updated"),
		})
	}
	c.JSON(http.StatusOK, BulkResponse{Data: items})
}

// BulkDeleteCompaniesHandler handles POST /api/companies/bulk-delete with a
// body of {"ids": [...]}. An empty list is a 400.
func (api *API) BulkDeleteCompaniesHandler(c *gin.Context) {
	var req struct {
		IDs []int64 `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if len(req.IDs) == 0 {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "ID list cannot be empty")
		return
	}

	if c.Query("async") == "true" {
		jobID, err := api.engine.DeleteCompaniesAsync(req.IDs)
		if err != nil {
			SendJobExecutionError(c, "bulk delete", err)
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"job_id": jobID})
		return
	}

	result := api.engine.DeleteCompanies(req.IDs)

	items := make([]BulkItemResponse, 0, len(req.IDs))
	for _, id := range req.IDs {
		items = append(items, BulkItemResponse{
			Request:  id,
			Response: outcomeFor(id, result, "deleted"),
		})
	}
	c.JSON(http.StatusOK, BulkResponse{Data: items})
}

// GetCompanyHandler handles GET /api/companies/:companyId.
func (api *API) GetCompanyHandler(c *gin.Context) {
	id, ok := parseCompanyID(c)
	if !ok {
		return
	}

	company, err := api.engine.GetCompany(id)
	if err != nil {
		SendCompanyNotFoundError(c, id)
		return
	}
	c.JSON(http.StatusOK, company)
}

// UpdateCompanyHandler handles PATCH /api/companies/:companyId with a single
// partial update.
func (api *API) UpdateCompanyHandler(c *gin.Context) {
	id, ok := parseCompanyID(c)
	if !ok {
		return
	}

	var update model.CompanyUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	update.ID = id

	result := api.engine.UpdateCompanies([]model.CompanyUpdate{update})
	if msg, failed := result.Errors[id]; failed {
		if _, getErr := api.engine.GetCompany(id); getErr != nil {
			SendCompanyNotFoundError(c, id)
		} else {
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, msg)
		}
		return
	}

	company, err := api.engine.GetCompany(id)
	if err != nil {
		SendInternalError(c, "company update", err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// DeleteCompanyHandler handles DELETE /api/companies/:companyId.
func (api *API) DeleteCompanyHandler(c *gin.Context) {
	id, ok := parseCompanyID(c)
	if !ok {
		return
	}

	if err := api.engine.DeleteCompany(id); err != nil {
		SendCompanyNotFoundError(c, id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// SearchCompaniesHandler handles GET /api/companies. Query parameters name
// and locality are fuzzy; country, industry, linkedin_url, and domain are
// exact filters.
func (api *API) SearchCompaniesHandler(c *gin.Context) {
	query := services.SearchQuery{
		Name:     c.Query("name"),
		Locality: c.Query("locality"),
	}

	filters := make(map[string]string)
	if v := c.Query("country"); v != "" {
		filters[model.FieldCountry+".keyword"] = v
	}
	if v := c.Query("industry"); v != "" {
		filters[model.FieldIndustry+".keyword"] = v
	}
	if v := c.Query("linkedin_url"); v != "" {
		filters[model.FieldLinkedinURL] = v
	}
	if v := c.Query("domain"); v != "" {
		filters[model.FieldDomain] = v
	}
	if len(filters) > 0 {
		query.Filters = filters
	}

	if v := c.Query("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "page must be a positive integer")
			return
		}
		query.Page = page
	}
	if v := c.Query("page_size"); v != "" {
		pageSize, err := strconv.Atoi(v)
		if err != nil || pageSize < 1 {
			SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "page_size must be a positive integer")
			return
		}
		query.PageSize = pageSize
	}

	result, err := api.engine.Search(query)
	if err != nil {
		if errors.Is(err, ierrors.ErrInvalidInput) {
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		} else {
			SendSearchError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// MultiSearchHandler handles POST /api/companies/multi-search. The
// X-Max-Results-Per-Query header caps hits per query; values outside 1..5
// are rejected.
func (api *API) MultiSearchHandler(c *gin.Context) {
	var multiQuery services.MultiSearchQuery
	if err := c.ShouldBindJSON(&multiQuery); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	maxResults := search.DefaultResultsPerQuery
	if header := c.GetHeader(maxResultsHeader); header != "" {
		parsed, err := strconv.Atoi(header)
		if err != nil || parsed < search.MinResultsPerQuery || parsed > search.MaxResultsPerQuery {
			SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
				maxResultsHeader+" must be an integer between "+
					strconv.Itoa(search.MinResultsPerQuery)+" and "+
					strconv.Itoa(search.MaxResultsPerQuery))
			return
		}
		maxResults = parsed
	}
	multiQuery.MaxResultsPerQuery = maxResults

	result, err := api.engine.MultiSearch(c.Request.Context(), multiQuery)
	if err != nil {
		if errors.Is(err, ierrors.ErrInvalidInput) {
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		} else {
			SendSearchError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

func bulkResponseFor(companies []model.Company, result *model.BulkResult, success string) BulkResponse {
	items := make([]BulkItemResponse, 0, len(companies))
	for _, company := range companies {
		items = append(items, BulkItemResponse{
			Request:  company,
			Response: outcomeFor(company.ID, result, success),
		})
	}
	return BulkResponse{Data: items}
}

func outcomeFor(id int64, result *model.BulkResult, success string) string {
	if msg, failed := result.Errors[id]; failed {
		return msg
	}
	return success
}
