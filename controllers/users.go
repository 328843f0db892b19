package controllers

import (
	"net/http"

	dbpkg "surv/db"
	"surv/models"
	"surv/tools"

	"github.com/gin-gonic/gin"
)

// POST /api/users (admin/manager)
func CreateUser(c *gin.Context) {
	var user models.User
	if err := c.Bind(&user); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	if missing := user.MissingFields(); missing != "" {
		RespondError(c, missing+" is required", http.StatusBadRequest)
		return
	}
	if !tools.ValidateEmail(user.Email) {
		RespondError(c, "invalid email", http.StatusBadRequest)
		return
	}
	if user.Role == "" {
		user.Role = models.USER_ROLE_TECHNICIAN
	}
	if !models.IsValidRole(user.Role) {
		RespondError(c, "invalid role", http.StatusBadRequest)
		return
	}

	// technicians text commands in from this number, store it normalized
	if user.Phone != "" {
		phone, err := tools.NormalizePhone(user.Phone)
		if err != nil {
			RespondError(c, "invalid phone", http.StatusBadRequest)
			return
		}
		user.Phone = phone
	}

	user.Password = hashPassword(user.Email, user.Password)
	user.Status = models.USER_STATUS_AVAILABLE

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var existing models.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		RespondError(c, "email already registered", http.StatusConflict)
		return
	}

	if err := db.Create(&user).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	user.Password = ""
	RespondSuccess(c, gin.H{"user": user})
}

// GET /api/users
func GetUsers(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	query := db.Order("created_at desc")
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	for i := range users {
		users[i].Password = ""
	}
	RespondSuccess(c, gin.H{"users": users})
}

// GET /api/users/:id
func GetUserByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		RespondError(c, "user not found", http.StatusNotFound)
		return
	}
	user.Password = ""
	RespondSuccess(c, gin.H{"user": user})
}

// GET /api/me
func Me(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	user.Password = ""
	RespondSuccess(c, gin.H{"user": user})
}
