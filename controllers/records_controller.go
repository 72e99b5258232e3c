package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/kendall-kelly/lightwork-auth-api/repository"
	"github.com/kendall-kelly/lightwork-auth-api/services"
	"github.com/kendall-kelly/lightwork-auth-api/utils"
)

// RecordsController serves the plain record endpoints: addresses, tax
// information, tenant details and the activity feed.
type RecordsController struct {
	addresses  *services.AddressService
	tax        *services.TaxService
	tenants    *services.TenantService
	activities *services.ActivityService
}

func NewRecordsController(addresses *services.AddressService, tax *services.TaxService, tenants *services.TenantService, activities *services.ActivityService) *RecordsController {
	return &RecordsController{addresses: addresses, tax: tax, tenants: tenants, activities: activities}
}

type addressUpdate struct {
	ID string `json:"id"`
	models.AddressPatch
}

func (rc *RecordsController) CreateAddress(c *gin.Context) {
	var req models.Address
	if !bindJSON(c, &req) {
		return
	}
	a, err := rc.addresses.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, a)
}

// UpdateAddress handles PUT /address with the id in the body.
func (rc *RecordsController) UpdateAddress(c *gin.Context) {
	var req addressUpdate
	if !bindJSON(c, &req) {
		return
	}
	if req.ID == "" {
		respondError(c, utils.BadRequest("id is required"))
		return
	}
	a, err := rc.addresses.Update(c.Request.Context(), req.ID, req.AddressPatch)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, a)
}

// GetAddress handles GET /address: one by ?id=, otherwise all, narrowed by
// ?refId= when given.
func (rc *RecordsController) GetAddress(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		a, err := rc.addresses.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, a)
		return
	}
	rows, err := rc.addresses.List(c.Request.Context(), c.Query("refId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, rows)
}

func (rc *RecordsController) DeleteAddress(c *gin.Context) {
	if err := rc.addresses.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Address deleted", nil)
}

// CreateTaxInfo handles POST /tax-info. The owner is the body's userId or
// the caller.
func (rc *RecordsController) CreateTaxInfo(c *gin.Context) {
	var req models.TaxInformation
	if !bindJSON(c, &req) {
		return
	}
	userID := req.UserID
	if userID == "" {
		userID = callerID(c)
	}
	t, err := rc.tax.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, t)
}

// GetTaxInfo handles GET /tax-info?id=&user_id=.
func (rc *RecordsController) GetTaxInfo(c *gin.Context) {
	t, err := rc.tax.Get(c.Request.Context(), callerID(c), c.Query("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, t)
}

// TenantDetails handles GET /tenant/:id.
func (rc *RecordsController) TenantDetails(c *gin.Context) {
	details, err := rc.tenants.Details(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, details)
}

// ListActivities handles GET /activities?id=&userId=&companyId=&activityType=.
func (rc *RecordsController) ListActivities(c *gin.Context) {
	rows, err := rc.activities.List(c.Request.Context(), repository.ActivityQuery{
		ID:           c.Query("id"),
		UserID:       c.Query("userId"),
		CompanyID:    c.Query("companyId"),
		ActivityType: models.ActivityType(c.Query("activityType")),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, rows)
}

func (rc *RecordsController) CreateActivity(c *gin.Context) {
	var req models.UserActivity
	if !bindJSON(c, &req) {
		return
	}
	if req.UserID == "" {
		req.UserID = callerID(c)
	}
	a, err := rc.activities.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, a)
}
