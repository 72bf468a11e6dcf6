package api

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"safeplate/internal/domain/entity"
)

// Processor is the slice of the orchestrator the delivery layer needs.
type Processor interface {
	ProcessRequest(ctx context.Context, req entity.Request) (*entity.Result, bool)
}

type SafecheckHandler struct {
	processor Processor
	logger    *zap.Logger
}

func NewSafecheckHandler(processor Processor, logger *zap.Logger) *SafecheckHandler {
	return &SafecheckHandler{processor: processor, logger: logger}
}

type safecheckRequest struct {
	Query          string `json:"query"`
	DietaryProfile string `json:"dietary_profile"`
	Location       string `json:"location"`
}

// HandleSafecheck answers "can I eat this?". The orchestrator never fails,
// so the only non-200 responses are malformed request bodies.
func (h *SafecheckHandler) HandleSafecheck(c *fiber.Ctx) error {
	var body safecheckRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Query) == "" || strings.TrimSpace(body.Location) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "query and location are required"})
	}

	requestID := uuid.NewString()
	res, cached := h.processor.ProcessRequest(c.Context(), entity.Request{
		Query:          body.Query,
		DietaryProfile: body.DietaryProfile,
		Location:       body.Location,
	})

	h.logger.Info("safecheck served",
		zap.String("request_id", requestID),
		zap.Bool("cached", cached),
		zap.String("intent", string(res.Intent)))

	c.Set("X-Request-ID", requestID)
	c.Set("X-Safecheck-Cache", "miss")
	if cached {
		c.Set("X-Safecheck-Cache", "hit")
	}
	return c.Status(fiber.StatusOK).JSON(res)
}
