package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/monishaRema/zep-shift-server/internal/middleware"
	"github.com/monishaRema/zep-shift-server/internal/models"
)

const userSearchLimit = 10

type upsertUserInput struct {
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	LastLoggedIn time.Time `json:"last_loggedIn"`
}

// UpsertUser is called on every login. A first login inserts the user
// with the default role; later logins only bump last_loggedIn and the
// prior record is returned.
func UpsertUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input upsertUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"message": "Email is required"})
			return
		}
		if input.Email == "" {
			c.JSON(400, gin.H{"message": "Email is required"})
			return
		}

		lastLogin := input.LastLoggedIn
		if lastLogin.IsZero() {
			lastLogin = time.Now()
		}

		var existing models.User
		err := db.Where("email = ?", input.Email).First(&existing).Error
		if err == nil {
			update := db.Model(&models.User{}).Where("email = ?", input.Email).
				Update("last_logged_in", lastLogin)
			if update.Error != nil {
				c.JSON(500, gin.H{"message": "Server error", "insertedId": false})
				return
			}
			c.JSON(200, gin.H{
				"message":    "User already exists",
				"insertedId": false,
				"user":       existing,
			})
			return
		}
		if err != gorm.ErrRecordNotFound {
			c.JSON(500, gin.H{"message": "Server error", "insertedId": false})
			return
		}

		user := models.User{
			Email:        input.Email,
			Role:         models.RoleUser,
			LastLoggedIn: lastLogin,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(500, gin.H{"message": "Server error", "insertedId": false})
			return
		}

		c.JSON(200, gin.H{"insertedId": user.ID})
	}
}

// escapeLike makes a user-supplied fragment safe inside a LIKE pattern.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// SearchUsers matches emails by case-insensitive substring, capped at
// ten results.
func SearchUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		fragment := c.Query("email")
		if fragment == "" {
			c.JSON(400, gin.H{"message": "Email query is required"})
			return
		}

		pattern := "%" + strings.ToLower(escapeLike(fragment)) + "%"

		var users []models.User
		err := db.Where(`lower(email) LIKE ? ESCAPE '\'`, pattern).
			Limit(userSearchLimit).
			Find(&users).Error
		if err != nil {
			c.JSON(500, gin.H{"message": "Server error"})
			return
		}

		c.JSON(200, users)
	}
}

type roleInput struct {
	Role string `json:"role"`
}

// UpdateUserRole sets a user's role to admin or user. Rider promotion
// happens only through rider activation, never here.
func UpdateUserRole(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"message": "Invalid user id"})
			return
		}

		var input roleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"message": err.Error()})
			return
		}

		role := models.Role(input.Role)
		if role != models.RoleAdmin && role != models.RoleUser {
			c.JSON(400, gin.H{"message": "Role must be admin or user"})
			return
		}

		result := db.Model(&models.User{}).Where("id = ?", id).Update("role", role)
		if result.Error != nil {
			c.JSON(500, gin.H{"message": "Server error"})
			return
		}

		c.JSON(200, gin.H{
			"message":       "Role updated",
			"modifiedCount": result.RowsAffected,
		})
	}
}

// GetUserRole reports the verified caller's role, defaulting to "user"
// when no record or role exists.
func GetUserRole(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := middleware.CallerEmail(c)

		role := models.RoleUser
		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err == nil && user.Role != "" {
			role = user.Role
		}

		c.JSON(200, gin.H{"email": email, "role": role})
	}
}
