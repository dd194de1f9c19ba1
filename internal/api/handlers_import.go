package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// ImportRuns accepts an activity-log file as multipart form field "file" and
// replays it through the run ledger. A malformed row aborts the import;
// already-replayed rows stay committed, which the response surfaces via the
// partial summary semantics of the import service.
func (handler *Handler) ImportRuns(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "missing import file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "failed to open import file")
	}
	defer file.Close()

	summary, err := handler.importService.ImportCSV(user.ID, file)
	if err != nil {
		log.Printf("import for user %d aborted: %v", user.ID, err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   "import aborted",
			"detail":  err.Error(),
			"summary": summary,
		})
	}
	return c.JSON(summary)
}
