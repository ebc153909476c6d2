package handlers

import (
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/middleware"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/services/merchant"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/utils/pagination"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/utils/response"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the approval console.
type AdminHandler struct {
	merchantService *merchant.Service
}

func NewAdminHandler(merchantSvc *merchant.Service) *AdminHandler {
	return &AdminHandler{merchantService: merchantSvc}
}

func (h *AdminHandler) DecideBusiness(c *fiber.Ctx) error {
	role, ok := roleParam(c)
	if !ok {
		return nil
	}
	var req validation.ProfileDecisionRequest
	if !parseBody(c, &req) {
		return nil
	}

	business, err := h.merchantService.DecideBusinessApproval(c.UserContext(), merchant.Decision{
		ReferenceID: req.ReferenceID,
		Role:        role,
		Action:      req.Action,
		Comment:     req.Comment,
		ReviewerID:  middleware.CallerID(c),
		TimeZone:    c.Get(timeZoneHeader),
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Business approval status updated", business)
}

func (h *AdminHandler) DecideContact(c *fiber.Ctx) error {
	var req validation.ProfileDecisionRequest
	if !parseBody(c, &req) {
		return nil
	}

	contact, err := h.merchantService.DecideContactApproval(c.UserContext(), merchant.Decision{
		ReferenceID: req.ReferenceID,
		Action:      req.Action,
		Comment:     req.Comment,
		ReviewerID:  middleware.CallerID(c),
		TimeZone:    c.Get(timeZoneHeader),
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Contact approval status updated", contact)
}

func (h *AdminHandler) DecideAccount(c *fiber.Ctx) error {
	var req validation.AccountDecisionRequest
	if !parseBody(c, &req) {
		return nil
	}

	account, err := h.merchantService.DecideAccountApproval(c.UserContext(), merchant.AccountDecision{
		AccountID:  c.Params("accountId"),
		Action:     req.Action,
		Comment:    req.Comment,
		ReviewerID: middleware.CallerID(c),
		TimeZone:   c.Get(timeZoneHeader),
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Account approval status updated", account)
}

func (h *AdminHandler) PendingBusinesses(c *fiber.Ctx) error {
	role, ok := roleParam(c)
	if !ok {
		return nil
	}
	q, err := pagination.ParseFromPath(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	page, err := h.merchantService.GetPendingBusinesses(c.UserContext(), role, q)
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(pagination.Response(q, page.Total, orEmpty(page.Items)))
}

// PendingContacts lists pending contacts with their owners' latest business.
func (h *AdminHandler) PendingContacts(c *fiber.Ctx) error {
	role, ok := roleParam(c)
	if !ok {
		return nil
	}
	q, err := pagination.ParseFromPath(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	page, err := h.merchantService.PendingContactsWithBusiness(c.UserContext(), role, q)
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(pagination.Response(q, page.Total, page.Items))
}

func (h *AdminHandler) PendingAccounts(c *fiber.Ctx) error {
	role, ok := roleParam(c)
	if !ok {
		return nil
	}
	q, err := pagination.ParseFromPath(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	page, err := h.merchantService.GetPendingAccounts(c.UserContext(), role, q)
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(pagination.Response(q, page.Total, orEmpty(page.Items)))
}

func (h *AdminHandler) ActiveMerchantCount(c *fiber.Ctx) error {
	count, err := h.merchantService.ActiveMerchantCount(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Active merchant count retrieved", fiber.Map{"count": count})
}

func (h *AdminHandler) ActiveBankCount(c *fiber.Ctx) error {
	count, err := h.merchantService.ActiveBankCount(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Active bank count retrieved", fiber.Map{"count": count})
}

// TodaySummary counts today's sign-ups in the caller's Time-Zone.
func (h *AdminHandler) TodaySummary(c *fiber.Ctx) error {
	summary, err := h.merchantService.TodaySummary(c.UserContext(), c.Get(timeZoneHeader))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Today's summary retrieved", summary)
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
