package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/loan-platform/internal/api/dto"
	"github.com/spec-kit/loan-platform/internal/service"
	apperrors "github.com/spec-kit/loan-platform/pkg/util"
)

const minContactMessageLen = 10

var partners = []dto.Partner{
	{Name: "HDFC Bank", Category: "Banking Partner"},
	{Name: "ICICI Bank", Category: "Banking Partner"},
	{Name: "CIBIL", Category: "Credit Bureau"},
	{Name: "NSDL", Category: "KYC Infrastructure"},
	{Name: "Razorpay", Category: "Payments"},
	{Name: "AWS", Category: "Cloud Infrastructure"},
}

var reviews = []dto.Review{
	{
		CustomerName: "Ananya Sharma",
		Product:      "Home Loan",
		Rating:       5,
		Text:         "Sanctioned quickly, transparent process and dedicated relationship manager.",
	},
	{
		CustomerName: "Rahul Nair",
		Product:      "Business Loan",
		Rating:       5,
		Text:         "The dashboard gave complete visibility and helped us track every stage.",
	},
	{
		CustomerName: "Meera Iyer",
		Product:      "Personal Loan",
		Rating:       4,
		Text:         "Great support team and very easy documentation flow.",
	},
}

var faqs = []dto.FAQ{
	{
		Question: "How long does loan approval take?",
		Answer:   "Most applications are reviewed within 24-72 hours depending on document quality and profile checks.",
	},
	{
		Question: "Can I track my loan status in real time?",
		Answer:   "Yes. After login, go to dashboard > My Applications to view live status updates.",
	},
	{
		Question: "What documents are mandatory?",
		Answer:   "ID proof, address proof, and income proof are required for all retail products.",
	},
	{
		Question: "How are tickets assigned?",
		Answer:   "Tickets are auto-assigned to active admin users by least-load allocation.",
	},
}

// PublicHandler serves unauthenticated content, the public stats aggregate
// and the EMI/contact utilities.
type PublicHandler struct {
	analytics *service.AnalyticsService
}

// NewPublicHandler constructs handler.
func NewPublicHandler(analyticsService *service.AnalyticsService) *PublicHandler {
	return &PublicHandler{analytics: analyticsService}
}

// Partners GET /api/public/partners.
func (h *PublicHandler) Partners(c *fiber.Ctx) error {
	return c.JSON(partners)
}

// Reviews GET /api/public/reviews.
func (h *PublicHandler) Reviews(c *fiber.Ctx) error {
	return c.JSON(reviews)
}

// FAQs GET /api/public/faqs.
func (h *PublicHandler) FAQs(c *fiber.Ctx) error {
	return c.JSON(faqs)
}

// Stats GET /api/public/stats.
func (h *PublicHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.analytics.PublicStats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// CalculateEMI POST /api/emi/calculate.
func (h *PublicHandler) CalculateEMI(c *fiber.Ctx) error {
	var req dto.EMIRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := service.CalculateEMI(req.Principal, req.AnnualRate, req.Months)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// Contact POST /api/contact (form fields name, email, message).
func (h *PublicHandler) Contact(c *fiber.Ctx) error {
	name := c.FormValue("name")
	email := c.FormValue("email")
	message := c.FormValue("message")

	if len(strings.TrimSpace(message)) < minContactMessageLen {
		return apperrors.NewValidationError("message too short", nil)
	}
	return c.JSON(fiber.Map{
		"status":  "received",
		"message": fmt.Sprintf("Thank you %s, our team will reach out at %s.", name, email),
	})
}
