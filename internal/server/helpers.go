package server

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"proctrack/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals that the handler already wrote an error
// response and the caller should just return nil up the chain.
var errResponseWritten = errors.New("response already written")

// parseID reads a positive integer path parameter. On failure it writes
// a 400 response and returns errResponseWritten.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

func humanizeParam(param string) string {
	param = strings.TrimSuffix(param, "Id")
	param = strings.TrimSuffix(param, "ID")
	if param == "id" || param == "" {
		return "ID"
	}
	return strings.ToLower(splitCamel(param)) + " ID"
}

func splitCamel(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

const maxPaginationLimit = 100

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

func parsePagination(c *fiber.Ctx) Pagination {
	limit := c.QueryInt("limit", 50)
	if limit < 1 {
		limit = 1
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return Pagination{Limit: limit, Offset: offset}
}

// respondServiceError maps a service-layer error to an HTTP status and
// writes the response.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	status := fiber.StatusInternalServerError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeValidation, models.CodeIllegalTransition,
			models.CodeMissingAssignment, models.CodeUnknownOfficer:
			status = fiber.StatusBadRequest
		case models.CodeNotFound:
			status = fiber.StatusNotFound
		case models.CodeDuplicateEmail, models.CodeConflict:
			status = fiber.StatusConflict
		case models.CodeUnauthorized:
			status = fiber.StatusForbidden
		}
	}
	return models.RespondWithError(c, status, err)
}

// actorName returns the display name of the authenticated user, falling
// back to a generic label when the token carried no name claim.
func actorName(c *fiber.Ctx) string {
	if name, ok := c.Locals("userName").(string); ok && name != "" {
		return name
	}
	return "unknown user"
}

func actorID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}
