package validate

import (
	"fmt"

	"cinema_retail/model"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// parseAndValidate parse body vào input rồi validate, lưu vào Locals("input")
func parseAndValidate[T any](c *fiber.Ctx) error {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Không thể phân tích yêu cầu: %s", err.Error()),
		})
	}

	if err := validate.Struct(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Locals("input", input)
	return c.Next()
}

func SelectSchedule() fiber.Handler {
	return parseAndValidate[model.SelectScheduleInput]
}

func ToggleSeat() fiber.Handler {
	return parseAndValidate[model.ToggleSeatInput]
}

func ApplyDiscount() fiber.Handler {
	return parseAndValidate[model.ApplyDiscountInput]
}

func Checkout() fiber.Handler {
	return parseAndValidate[model.CheckoutInput]
}

func PaymentOutcome() fiber.Handler {
	return parseAndValidate[model.PaymentOutcomeInput]
}

func CounterOrder() fiber.Handler {
	return parseAndValidate[model.CounterOrderInput]
}
