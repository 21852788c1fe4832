package validation

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"taskboard/internal/core/domain"
)

var registerOnce sync.Once

// RegisterValidators installs the taskstatus and taskpriority tags on gin's
// binding validator. It is safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = engine.RegisterValidation("taskstatus", func(fl validator.FieldLevel) bool {
			return domain.TaskStatus(fl.Field().String()).Valid()
		})
		_ = engine.RegisterValidation("taskpriority", func(fl validator.FieldLevel) bool {
			return domain.TaskPriority(fl.Field().String()).Valid()
		})
	})
}
