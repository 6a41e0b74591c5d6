// Package api exposes the services over HTTP with gin.
package api

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/diacare/backend/internal/types"
)

var registerOnce sync.Once

// RegisterValidators installs the request rules on gin's validator. It is
// safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			types.RegisterValidators(v)
		}
	})
}
