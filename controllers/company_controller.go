package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/kendall-kelly/lightwork-auth-api/services"
	"github.com/kendall-kelly/lightwork-auth-api/utils"
)

// CompanyController serves /companies and /companies-categories.
type CompanyController struct {
	companies *services.CompanyService
}

func NewCompanyController(companies *services.CompanyService) *CompanyController {
	return &CompanyController{companies: companies}
}

type companyUpdate struct {
	ID string `json:"id"`
	models.CompanyPatch
}

// Create handles POST /companies?user_id=. The caller becomes the owner.
func (cc *CompanyController) Create(c *gin.Context) {
	invoker, ok := requireCaller(c)
	if !ok {
		return
	}
	var req services.CreateCompanyInput
	if !bindJSON(c, &req) {
		return
	}
	company, err := cc.companies.Create(c.Request.Context(), invoker, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, company)
}

// Get handles GET /companies: one company by ?id=, otherwise the list.
func (cc *CompanyController) Get(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		view, err := cc.companies.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, view)
		return
	}
	views, err := cc.companies.List(c.Request.Context(), queryBool(c, "include_deleted"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, views)
}

// Update handles PUT /companies with the id in the body.
func (cc *CompanyController) Update(c *gin.Context) {
	var req companyUpdate
	if !bindJSON(c, &req) {
		return
	}
	if req.ID == "" {
		respondError(c, utils.BadRequest("id is required"))
		return
	}
	company, err := cc.companies.Update(c.Request.Context(), req.ID, req.CompanyPatch)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, company)
}

// Delete handles DELETE /companies/:id. The company is only marked deleted.
func (cc *CompanyController) Delete(c *gin.Context) {
	company, err := cc.companies.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, company)
}

// PropertiesInfo handles GET /companies/properties-info/:companyId.
func (cc *CompanyController) PropertiesInfo(c *gin.Context) {
	info, err := cc.companies.PropertiesInfo(c.Request.Context(), c.Param("companyId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, info)
}

func (cc *CompanyController) CreateCategory(c *gin.Context) {
	var req models.CompanyCategory
	if !bindJSON(c, &req) {
		return
	}
	cat, err := cc.companies.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, cat)
}

func (cc *CompanyController) GetCategory(c *gin.Context) {
	cat, err := cc.companies.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, cat)
}

func (cc *CompanyController) ListCategories(c *gin.Context) {
	cats, err := cc.companies.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, cats)
}

func (cc *CompanyController) UpdateCategory(c *gin.Context) {
	var patch models.CompanyCategoryPatch
	if !bindJSON(c, &patch) {
		return
	}
	cat, err := cc.companies.UpdateCategory(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, cat)
}

func (cc *CompanyController) DeleteCategory(c *gin.Context) {
	if err := cc.companies.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Category deleted", nil)
}
