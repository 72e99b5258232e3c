package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/lightwork-auth-api/services"
	"github.com/kendall-kelly/lightwork-auth-api/utils"
)

// PromptController serves /user-prompt and /category-prompt.
type PromptController struct {
	prompts *services.PromptService
}

func NewPromptController(prompts *services.PromptService) *PromptController {
	return &PromptController{prompts: prompts}
}

type generateUserPromptRequest struct {
	UserID string `json:"userId"`
}

type categoryPromptRequest struct {
	CategoryID string `json:"categoryId" binding:"required"`
	Message    string `json:"message" binding:"required"`
}

type messageRequest struct {
	Message string `json:"message" binding:"required"`
}

type pointerRequest struct {
	MessageID string `json:"messageId" binding:"required"`
}

func respondAccepted(c *gin.Context, res *services.PromptAccepted) {
	c.JSON(res.Status, gin.H{
		"success": true,
		"message": res.Message,
		"status":  res.Status,
	})
}

// GenerateUserPrompt handles POST /user-prompt. The user is the body's userId
// or the caller.
func (p *PromptController) GenerateUserPrompt(c *gin.Context) {
	var req generateUserPromptRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	if req.UserID == "" {
		req.UserID = callerID(c)
	}
	if req.UserID == "" {
		respondError(c, utils.BadRequest("userId is required"))
		return
	}
	res, err := p.prompts.GenerateUserPrompt(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondAccepted(c, res)
}

func (p *PromptController) ListUserMessages(c *gin.Context) {
	rows, err := p.prompts.ListUserMessages(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, rows)
}

func (p *PromptController) DeleteUserMessages(c *gin.Context) {
	if err := p.prompts.DeleteUserMessages(c.Request.Context(), c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "User prompts deleted", nil)
}

func (p *PromptController) ListUserPrompts(c *gin.Context) {
	rows, err := p.prompts.ListUserPrompts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, rows)
}

func (p *PromptController) GetUserPrompt(c *gin.Context) {
	prompt, err := p.prompts.GetUserPrompt(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, prompt)
}

func (p *PromptController) SetUserPrompt(c *gin.Context) {
	var req pointerRequest
	if !bindJSON(c, &req) {
		return
	}
	prompt, err := p.prompts.SetUserPrompt(c.Request.Context(), c.Param("userId"), req.MessageID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, prompt)
}

func (p *PromptController) DeleteUserPrompt(c *gin.Context) {
	if err := p.prompts.DeleteUserPrompt(c.Request.Context(), c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "User prompt deleted", nil)
}

func (p *PromptController) GetUserMessage(c *gin.Context) {
	m, err := p.prompts.GetUserMessage(c.Request.Context(), c.Param("promptId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, m)
}

func (p *PromptController) UpdateUserMessage(c *gin.Context) {
	var req messageRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := p.prompts.UpdateUserMessage(c.Request.Context(), c.Param("promptId"), req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, m)
}

func (p *PromptController) DeleteUserMessage(c *gin.Context) {
	if err := p.prompts.DeleteUserMessage(c.Request.Context(), c.Param("promptId")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Prompt deleted", nil)
}

// CreateCategoryPrompt handles POST /category-prompt.
func (p *PromptController) CreateCategoryPrompt(c *gin.Context) {
	var req categoryPromptRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := p.prompts.CreateCategoryPrompt(c.Request.Context(), req.CategoryID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	respondAccepted(c, res)
}

func (p *PromptController) ListCategoryMessages(c *gin.Context) {
	rows, err := p.prompts.ListCategoryMessages(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, rows)
}

func (p *PromptController) DeleteCategoryMessages(c *gin.Context) {
	if err := p.prompts.DeleteCategoryMessages(c.Request.Context(), c.Param("categoryId")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Category prompts deleted", nil)
}

func (p *PromptController) ListCategoryPrompts(c *gin.Context) {
	rows, err := p.prompts.ListCategoryPrompts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, rows)
}

func (p *PromptController) GetCategoryPrompt(c *gin.Context) {
	prompt, err := p.prompts.GetCategoryPrompt(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, prompt)
}

func (p *PromptController) SetCategoryPrompt(c *gin.Context) {
	var req pointerRequest
	if !bindJSON(c, &req) {
		return
	}
	prompt, err := p.prompts.SetCategoryPrompt(c.Request.Context(), c.Param("categoryId"), req.MessageID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, prompt)
}

func (p *PromptController) DeleteCategoryPrompt(c *gin.Context) {
	if err := p.prompts.DeleteCategoryPrompt(c.Request.Context(), c.Param("categoryId")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Category prompt deleted", nil)
}

func (p *PromptController) GetCategoryMessage(c *gin.Context) {
	m, err := p.prompts.GetCategoryMessage(c.Request.Context(), c.Param("promptId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, m)
}

func (p *PromptController) UpdateCategoryMessage(c *gin.Context) {
	var req messageRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := p.prompts.UpdateCategoryMessage(c.Request.Context(), c.Param("promptId"), req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, m)
}

func (p *PromptController) DeleteCategoryMessage(c *gin.Context) {
	if err := p.prompts.DeleteCategoryMessage(c.Request.Context(), c.Param("promptId")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Category prompt message deleted", nil)
}
