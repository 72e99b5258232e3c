// Package controllers turns HTTP requests into service calls and service
// results into the JSON envelope every endpoint answers with.
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/kendall-kelly/lightwork-auth-api/config"
	"github.com/kendall-kelly/lightwork-auth-api/middleware"
	"github.com/kendall-kelly/lightwork-auth-api/utils"
	"go.uber.org/zap"
)

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondMessage(c *gin.Context, status int, message string, data any) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// respondError answers with the status carried by a typed error, or 500.
func respondError(c *gin.Context, err error) {
	var httpErr *utils.HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = utils.Internal(err.Error())
	}
	if httpErr.Status >= http.StatusInternalServerError {
		config.GetLogger().Error("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
	}
	c.JSON(httpErr.Status, gin.H{
		"success": false,
		"error": gin.H{
			"code":        httpErr.Code,
			"message":     httpErr.Message,
			"status_code": httpErr.Status,
		},
	})
}

// bindJSON decodes the body into dst and answers 400 when it cannot.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":        "VALIDATION_ERROR",
				"message":     validationMessage(err),
				"status_code": http.StatusBadRequest,
			},
		})
		return false
	}
	return true
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "Invalid request data: " + err.Error()
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			parts = append(parts, fmt.Sprintf("%s must be a valid email", fe.Field()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// callerID is the session's user, or the user_id query parameter set by
// the gateway for requests that carry no token.
func callerID(c *gin.Context) string {
	if id := middleware.GetUserID(c); id != "" {
		return id
	}
	return c.Query("user_id")
}

// requireCaller answers 400 when no caller can be identified.
func requireCaller(c *gin.Context) (string, bool) {
	id := callerID(c)
	if id == "" {
		respondError(c, utils.BadRequest("user_id is required"))
		return "", false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v := c.Query(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func queryBool(c *gin.Context, key string) bool {
	b, _ := strconv.ParseBool(c.Query(key))
	return b
}

// queryList reads a repeated or comma separated parameter.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
