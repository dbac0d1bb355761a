package validator

import (
	"ctchen222/tictactoe-core/internal/bot"
	"ctchen222/tictactoe-core/internal/game"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	// Initialize validation
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Custom tags must register before first use, so a failure here is a programming error.
	if err := validate.RegisterValidation("cell", isCell); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("difficulty", isDifficulty); err != nil {
		panic(err)
	}
}

func GetValidator() *validator.Validate {
	return validate
}

// isCell accepts integer row or column coordinates that lie on the board.
func isCell(fl validator.FieldLevel) bool {
	v := fl.Field().Int()
	return v >= game.BorderMin && v <= game.BorderMax
}

// isDifficulty accepts difficulty tier names such as "hard".
func isDifficulty(fl validator.FieldLevel) bool {
	_, err := bot.ParseDifficulty(fl.Field().String())
	return err == nil
}
