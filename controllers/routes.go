package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/lightwork-auth-api/middleware"
	"github.com/kendall-kelly/lightwork-auth-api/services"
)

// Controllers is every HTTP handler group the API mounts.
type Controllers struct {
	Auth      *AuthController
	Roles     *RoleController
	Companies *CompanyController
	Records   *RecordsController
	Prompts   *PromptController
}

// RegisterRoutes mounts the API on r. A bearer token is verified when sent;
// without one the caller is taken from the user_id query parameter.
func RegisterRoutes(r gin.IRouter, h Controllers, verifier middleware.TokenVerifier) {
	api := r.Group("", middleware.OptionalSession(verifier))

	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.Auth.SignUp)
		auth.POST("/create-user", h.Auth.CreateUser)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/invite", h.Auth.InviteUser)
		auth.POST("/login-provider", h.Auth.LoginWithProvider)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/create-new-password", middleware.RequireTokenCategory(services.CodeForgotPassword), h.Auth.CreateNewPassword)
		auth.POST("/users-profile", h.Auth.CreateProfile)

		auth.GET("/users", h.Auth.GetUsers)
		auth.GET("/all/specialization", h.Auth.UsersBySpecialization)
		auth.GET("/companies", h.Auth.CompanyUsers)
		auth.GET("/tenants", h.Auth.Tenants)
		auth.GET("/me", h.Auth.Me)
		auth.GET("/ai/me/:assistantPhoneNo", h.Auth.AssistantMe)
		auth.GET("/users-profile", h.Auth.GetProfile)
		auth.GET("/contractor-profile", h.Auth.ContractorsProfile)
		auth.GET("/scrape-data", h.Auth.ScrapeProfile)

		auth.PUT("/set-password", h.Auth.SetPassword)
		auth.PUT("/edit", h.Auth.UpdateUser)
		auth.PUT("/user", h.Auth.UpdateUser)
		auth.PUT("/reset-password", h.Auth.ResetPassword)
		auth.PUT("/users-profile", h.Auth.EditProfile)

		auth.DELETE("/users-profile", h.Auth.DeleteProfile)
	}

	api.POST("/roles", h.Roles.CreateRole)
	api.GET("/roles", h.Roles.GetRoles)
	api.PUT("/roles/:id", h.Roles.UpdateRole)
	api.DELETE("/roles/:id", h.Roles.DeleteRole)

	userRoles := api.Group("/user-roles")
	{
		userRoles.POST("/assign", h.Roles.AssignRole)
		userRoles.PUT("/assign/:assignmentId", h.Roles.UpdateAssignment)
		userRoles.DELETE("/assign/:assignmentId", h.Roles.DeleteAssignment)
		userRoles.GET("/Assignments", h.Roles.GetAssignments)
		userRoles.GET("/permissions", h.Roles.EffectivePermissions)
	}

	api.POST("/permissions", h.Roles.CreatePermission)
	api.PUT("/permissions", h.Roles.UpdatePermission)
	api.GET("/permissions", h.Roles.GetPermissions)
	api.DELETE("/permissions/:id", h.Roles.DeletePermission)
	api.POST("/seed", h.Roles.Seed)

	companies := api.Group("/companies")
	{
		companies.POST("", h.Companies.Create)
		companies.PUT("", h.Companies.Update)
		companies.GET("", h.Companies.Get)
		companies.DELETE("/:id", h.Companies.Delete)
		companies.GET("/properties-info/:companyId", h.Companies.PropertiesInfo)
	}

	categories := api.Group("/companies-categories")
	{
		categories.POST("", h.Companies.CreateCategory)
		categories.GET("", h.Companies.ListCategories)
		categories.GET("/:id", h.Companies.GetCategory)
		categories.PUT("/:id", h.Companies.UpdateCategory)
		categories.DELETE("/:id", h.Companies.DeleteCategory)
	}

	address := api.Group("/address")
	{
		address.POST("", h.Records.CreateAddress)
		address.PUT("", h.Records.UpdateAddress)
		address.GET("", h.Records.GetAddress)
		address.DELETE("/:id", h.Records.DeleteAddress)
	}

	api.POST("/tax-info", h.Records.CreateTaxInfo)
	api.GET("/tax-info", h.Records.GetTaxInfo)
	api.GET("/tenant/:id", h.Records.TenantDetails)
	api.GET("/activities", h.Records.ListActivities)
	api.POST("/activities", h.Records.CreateActivity)

	userPrompt := api.Group("/user-prompt")
	{
		userPrompt.POST("", h.Prompts.GenerateUserPrompt)
		userPrompt.GET("/all", h.Prompts.ListUserPrompts)
		userPrompt.GET("/all/:userId", h.Prompts.ListUserMessages)
		userPrompt.DELETE("/all/:userId", h.Prompts.DeleteUserMessages)
		userPrompt.GET("/user/:userId", h.Prompts.GetUserPrompt)
		userPrompt.PUT("/user/:userId", h.Prompts.SetUserPrompt)
		userPrompt.DELETE("/user/me/:userId", h.Prompts.DeleteUserPrompt)
		userPrompt.GET("/prompt/:promptId", h.Prompts.GetUserMessage)
		userPrompt.PUT("/:promptId", h.Prompts.UpdateUserMessage)
		userPrompt.DELETE("/:promptId", h.Prompts.DeleteUserMessage)
	}

	categoryPrompt := api.Group("/category-prompt")
	{
		categoryPrompt.POST("", h.Prompts.CreateCategoryPrompt)
		categoryPrompt.GET("/prompt/all", h.Prompts.ListCategoryPrompts)
		categoryPrompt.GET("/all/:categoryId", h.Prompts.ListCategoryMessages)
		categoryPrompt.DELETE("/all/:categoryId", h.Prompts.DeleteCategoryMessages)
		categoryPrompt.GET("/category/:categoryId", h.Prompts.GetCategoryPrompt)
		categoryPrompt.PUT("/category/:categoryId", h.Prompts.SetCategoryPrompt)
		categoryPrompt.DELETE("/category/:categoryId", h.Prompts.DeleteCategoryPrompt)
		categoryPrompt.GET("/:promptId", h.Prompts.GetCategoryMessage)
		categoryPrompt.PUT("/:promptId", h.Prompts.UpdateCategoryMessage)
		categoryPrompt.DELETE("/:promptId", h.Prompts.DeleteCategoryMessage)
	}
}
