package validator

import (
	"ctchen222/perfect-tic-tac-toe/internal/game"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// BoardTag checks that a string is a board as accepted by game.ParseBoard.
const BoardTag = "board"

var validate *validator.Validate

func init() {
	// Initialize validation
	validate = validator.New(validator.WithRequiredStructEnabled())
	mustRegister(validate)
}

func GetValidator() *validator.Validate {
	return validate
}

// RegisterGinBinding adds the custom tags to gin's binding validator so
// request models can use them in `binding` tags.
func RegisterGinBinding() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		mustRegister(v)
	}
}

func mustRegister(v *validator.Validate) {
	if err := v.RegisterValidation(BoardTag, validBoard); err != nil {
		panic(err)
	}
}

func validBoard(fl validator.FieldLevel) bool {
	_, err := game.ParseBoard(fl.Field().String())
	return err == nil
}
