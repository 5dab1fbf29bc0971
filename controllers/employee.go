package controllers

import (
	"errors"
	"net/http"

	"tailortrack-backend/config"
	"tailortrack-backend/models"
	"tailortrack-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AddEmployeeInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

type UpdateEmployeeInput struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"isActive"`
}

// GetEmployees lists the shop's staff accounts
func GetEmployees(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}

	var employees []models.User
	if err := config.DB.Select("id, email, name, phone, role, is_active, last_login, created_at").
		Where("shop_id = ?", shopUUID).
		Order("created_at ASC").
		Find(&employees).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve employees")
		return
	}

	c.JSON(http.StatusOK, employees)
}

// AddEmployee creates a staff account for the shop
func AddEmployee(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}

	var input AddEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	employee := models.User{
		Email:    input.Email,
		Name:     input.Name,
		Phone:    input.Phone,
		Password: input.Password, // hashed in BeforeCreate hook
		Role:     "employee",
		ShopID:   shopUUID,
	}

	if err := config.DB.Create(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create employee")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    employee.ID,
		"email": employee.Email,
		"name":  employee.Name,
		"role":  employee.Role,
	})
}

// UpdateEmployee edits a staff account
func UpdateEmployee(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	employeeUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var employee models.User
	if err := config.DB.Where("shop_id = ? AND id = ?", shopUUID, employeeUUID).
		First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		employee.Name = *input.Name
	}
	if input.Phone != nil {
		employee.Phone = *input.Phone
	}
	if input.IsActive != nil {
		if employee.Role == "owner" && !*input.IsActive {
			utils.RespondWithError(c, http.StatusBadRequest, "Cannot deactivate the owner account")
			return
		}
		employee.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update employee")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee updated"})
}

// DeleteEmployee removes a staff account
func DeleteEmployee(c *gin.Context) {
	shopUUID, ok := requireShopID(c)
	if !ok {
		return
	}
	employeeUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var employee models.User
	if err := config.DB.Where("shop_id = ? AND id = ?", shopUUID, employeeUUID).
		First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if employee.Role == "owner" {
		utils.RespondWithError(c, http.StatusBadRequest, "Cannot delete the owner account")
		return
	}

	if err := config.DB.Delete(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete employee")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
}
