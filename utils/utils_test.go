package utils

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsTypedErrors(t *testing.T) {
	notFound := NotFound("User not found")
	assert.Same(t, notFound, Wrap(notFound, "Failed to get user"))

	wrapped := Wrap(errors.New("connection reset"), "Failed to get user")
	var httpErr *HTTPError
	assert.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "Failed to get user: connection reset", httpErr.Message)

	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{NotFound("x"), http.StatusNotFound},
		{Forbidden("x"), http.StatusForbidden},
		{BadRequest("x"), http.StatusBadRequest},
		{Conflict("x"), http.StatusConflict},
		{Unauthorized("x"), http.StatusUnauthorized},
		{Internal("x"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, StatusOf(tt.err), tt.err.Error())
	}
	assert.True(t, IsNotFound(NotFound("gone")))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+447700900123", NormalizePhone("447700900123"))
	assert.Equal(t, "+447700900123", NormalizePhone("+447700900123"))
	assert.Equal(t, "", NormalizePhone("  "))
}

func TestIsUKNumber(t *testing.T) {
	assert.True(t, IsUKNumber("+447700900123"))
	assert.False(t, IsUKNumber("+14155550100"))
	assert.False(t, IsUKNumber("447700900123"))
	assert.False(t, IsUKNumber("+4477009001234"))
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("assistant@lightwork.blue"))
	assert.False(t, IsEmail("+447700900123"))
	assert.False(t, IsEmail(""))
}

func TestMarkdownToText(t *testing.T) {
	md := "# Greeting\n\nHello **there**, see [docs](https://x.y).\n\n- first\n- second\n\n> quoted `code`"
	assert.Equal(t, "Greeting\n\nHello there, see docs.\n\nfirst\nsecond\n\nquoted code", MarkdownToText(md))
}

func TestTextToMarkdown(t *testing.T) {
	assert.Equal(t, []byte("line one\nline two\n"), TextToMarkdown("line one\r\nline two  \n"))
	assert.Nil(t, TextToMarkdown("   "))
}
