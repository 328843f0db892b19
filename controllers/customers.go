package controllers

import (
	"net/http"

	dbpkg "surv/db"
	"surv/models"
	"surv/tools"

	"github.com/gin-gonic/gin"
)

// GET /api/customers
func GetCustomers(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	query := db.Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var customers []models.Customer
	if err := query.Find(&customers).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"customers": customers})
}

// GET /api/customers/:id
func GetCustomerByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var customer models.Customer
	if err := db.Where("id = ?", id).First(&customer).Error; err != nil {
		RespondError(c, "customer not found", http.StatusNotFound)
		return
	}
	RespondSuccess(c, gin.H{"customer": customer})
}

// POST /api/customers
func CreateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.Bind(&customer); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if missing := customer.MissingFields(); missing != "" {
		RespondError(c, missing+" is required", http.StatusBadRequest)
		return
	}

	if customer.Phone != "" {
		phone, err := tools.NormalizePhone(customer.Phone)
		if err != nil {
			RespondError(c, "invalid phone", http.StatusBadRequest)
			return
		}
		customer.Phone = phone
	}

	if user, ok := GetUserLogged(c); ok {
		customer.CreatedBy = user.ID
	}
	if customer.Status == "" {
		customer.Status = models.CUSTOMER_STATUS_ACTIVE
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}
	if err := db.Create(&customer).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"customer": customer})
}

// PUT /api/customers/:id
func UpdateCustomer(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var body models.Customer
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var customer models.Customer
	if err := db.Where("id = ?", id).First(&customer).Error; err != nil {
		RespondError(c, "customer not found", http.StatusNotFound)
		return
	}

	if body.FirstName != "" {
		customer.FirstName = body.FirstName
	}
	if body.LastName != "" {
		customer.LastName = body.LastName
	}
	if body.Email != "" {
		customer.Email = body.Email
	}
	if body.Phone != "" {
		phone, err := tools.NormalizePhone(body.Phone)
		if err != nil {
			RespondError(c, "invalid phone", http.StatusBadRequest)
			return
		}
		customer.Phone = phone
	}
	if body.Mobile != "" {
		customer.Mobile = body.Mobile
	}
	if body.CompanyName != "" {
		customer.CompanyName = body.CompanyName
	}
	if body.AddressLine1 != "" {
		customer.AddressLine1 = body.AddressLine1
	}
	if body.AddressLine2 != "" {
		customer.AddressLine2 = body.AddressLine2
	}
	if body.City != "" {
		customer.City = body.City
	}
	if body.State != "" {
		customer.State = body.State
	}
	if body.ZipCode != "" {
		customer.ZipCode = body.ZipCode
	}
	if body.Notes != "" {
		customer.Notes = body.Notes
	}
	if body.Status != "" {
		customer.Status = body.Status
	}

	if err := db.Save(&customer).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"customer": customer})
}

// DELETE /api/customers/:id (admin/manager) - archives, never removes
func DeleteCustomer(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var customer models.Customer
	if err := db.Where("id = ?", id).First(&customer).Error; err != nil {
		RespondError(c, "customer not found", http.StatusNotFound)
		return
	}

	customer.Status = models.CUSTOMER_STATUS_ARCHIVED
	if err := db.Save(&customer).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"customer": customer})
}
