// Package response renders the JSON envelope used by every endpoint:
// {success, count, pagination, data} on the happy path and
// {success:false, error} on failure.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Page points at an adjacent result page.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination holds the next/prev descriptors; either is omitted when the
// corresponding page does not exist.
type Pagination struct {
	Next *Page `json:"next,omitempty"`
	Prev *Page `json:"prev,omitempty"`
}

// Envelope is the uniform response body.
type Envelope struct {
	Success    bool        `json:"success"`
	Count      *int        `json:"count,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Token      string      `json:"token,omitempty"`
	Data       any         `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Paginate computes the next/prev descriptors for page `page` of `limit`
// records out of `total` matches. Returns nil when everything fits on one
// page.
func Paginate(page, limit, total int) *Pagination {
	p := &Pagination{}
	if page*limit < total {
		p.Next = &Page{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		p.Prev = &Page{Page: page - 1, Limit: limit}
	}
	if p.Next == nil && p.Prev == nil {
		return nil
	}
	return p
}

// OK writes a success envelope carrying a single resource.
func OK(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// List writes a success envelope for one result page. Count is the number of
// records on this page, not the total match count.
func List(c *gin.Context, count int, pagination *Pagination, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Count: &count, Pagination: pagination, Data: data})
}

// Token writes a success envelope whose payload is a signed bearer token.
func Token(c *gin.Context, status int, token string) {
	c.JSON(status, Envelope{Success: true, Token: token})
}

// Fail writes the error envelope.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: false, Error: message})
}
