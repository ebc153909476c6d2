package handlers

import (
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/middleware"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/services/merchant"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/utils/pagination"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/utils/response"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const timeZoneHeader = "Time-Zone"

type MerchantHandler struct {
	merchantService *merchant.Service
}

func NewMerchantHandler(merchantSvc *merchant.Service) *MerchantHandler {
	return &MerchantHandler{merchantService: merchantSvc}
}

// roleParam reads :roleType. ok is false once an error response is written.
func roleParam(c *fiber.Ctx) (models.RoleType, bool) {
	role, ok := models.ParseRoleType(c.Params("roleType"))
	if !ok {
		_ = response.BadRequest(c, "Invalid role type")
	}
	return role, ok
}

// parseBody decodes and validates the request body. ok is false once an
// error response is written.
func parseBody(c *fiber.Ctx, dst interface{}) bool {
	if err := c.BodyParser(dst); err != nil {
		_ = response.BadRequest(c, "Invalid request format")
		return false
	}
	if errs := validation.ValidateStruct(dst); len(errs) > 0 {
		_ = response.ValidationError(c, errs)
		return false
	}
	return true
}

// Register signs up a merchant or bank. Mobile users and admins are created
// elsewhere.
func (h *MerchantHandler) Register(c *fiber.Ctx) error {
	role, ok := roleParam(c)
	if !ok {
		return nil
	}
	if !role.IsBusinessRole() {
		return response.BadRequest(c, "Only merchants and banks can register here")
	}
	var req validation.RegisterRequest
	if !parseBody(c, &req) {
		return nil
	}

	account, err := h.merchantService.RegisterAccount(c.UserContext(), merchant.AccountInput{
		FullName: req.FullName,
		Email:    req.Email,
		MobileNo: req.MobileNo,
		ImageURL: req.ImageURL,
		Role:     role,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Account registered successfully", account)
}

func (h *MerchantHandler) SubmitBusiness(c *fiber.Ctx) error {
	role, ok := roleParam(c)
	if !ok {
		return nil
	}
	var req validation.BusinessRequest
	if !parseBody(c, &req) {
		return nil
	}
	if !middleware.CanActFor(c, req.OwnerID) {
		return response.Forbidden(c)
	}

	business, err := h.merchantService.SubmitBusiness(c.UserContext(), req.OwnerID, role, merchant.BusinessInput{
		BusinessName:  req.BusinessName,
		OwnerName:     req.OwnerName,
		MobileNo:      req.MobileNo,
		Telephone:     req.Telephone,
		Email:         req.Email,
		BusinessRegNo: req.BusinessRegNo,
		Address:       req.Address,
		ImageURL:      req.ImageURL,
		WebSite:       req.WebSite,
		Facebook:      req.Facebook,
		Instagram:     req.Instagram,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Business profile submitted for approval", business)
}

func (h *MerchantHandler) SubmitContact(c *fiber.Ctx) error {
	role, ok := roleParam(c)
	if !ok {
		return nil
	}
	var req validation.ContactRequest
	if !parseBody(c, &req) {
		return nil
	}
	if !middleware.CanActFor(c, req.OwnerID) {
		return response.Forbidden(c)
	}

	contact, err := h.merchantService.SubmitContact(c.UserContext(), req.OwnerID, role, merchant.ContactInput{
		Name:        req.Name,
		Designation: req.Designation,
		Telephone:   req.Telephone,
		Email:       req.Email,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Contact profile submitted for approval", contact)
}

// GetLatestBusiness returns the approved business, or the latest submission
// when the owner was never approved.
func (h *MerchantHandler) GetLatestBusiness(c *fiber.Ctx) error {
	role, ok := roleParam(c)
	if !ok {
		return nil
	}
	business, err := h.merchantService.GetLatestApprovedBusiness(c.UserContext(), c.Params("ownerId"), role)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Business profile retrieved", business)
}

func (h *MerchantHandler) GetApprovedBusiness(c *fiber.Ctx) error {
	role, ok := roleParam(c)
	if !ok {
		return nil
	}
	snapshot, err := h.merchantService.GetApprovedBusiness(c.UserContext(), c.Params("ownerId"), role)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Approved business profile retrieved", snapshot)
}

func (h *MerchantHandler) GetBusiness(c *fiber.Ctx) error {
	role, ok := roleParam(c)
	if !ok {
		return nil
	}
	business, err := h.merchantService.GetBusinessByID(c.UserContext(), c.Params("businessId"), role)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Business profile retrieved", business)
}

func (h *MerchantHandler) GetContact(c *fiber.Ctx) error {
	contact, err := h.merchantService.GetContactByID(c.UserContext(), c.Params("contactId"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Contact profile retrieved", contact)
}

func (h *MerchantHandler) GetLatestContact(c *fiber.Ctx) error {
	contact, err := h.merchantService.GetLatestContact(c.UserContext(), c.Params("ownerId"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Contact profile retrieved", contact)
}

func (h *MerchantHandler) LoginProfile(c *fiber.Ctx) error {
	role, ok := roleParam(c)
	if !ok {
		return nil
	}
	profile, err := h.merchantService.LoginProfileStatus(c.UserContext(), c.Params("ownerId"), role)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Login profile retrieved", profile)
}

// ValidateOwner succeeds only for owners with an approved business profile.
func (h *MerchantHandler) ValidateOwner(c *fiber.Ctx) error {
	role, ok := roleParam(c)
	if !ok {
		return nil
	}
	if err := h.merchantService.ValidateApprovedOwner(c.UserContext(), c.Params("ownerId"), role); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Owner is approved", fiber.Map{"valid": true})
}

// OwnerSummary returns the account with its latest business. Only the owner
// or an admin may read it.
func (h *MerchantHandler) OwnerSummary(c *fiber.Ctx) error {
	role, ok := roleParam(c)
	if !ok {
		return nil
	}
	ownerID := c.Params("ownerId")
	if !middleware.CanActFor(c, ownerID) {
		return response.Forbidden(c)
	}
	summary, err := h.merchantService.GetOwnerSummary(c.UserContext(), ownerID, role)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Owner summary retrieved", summary)
}

func (h *MerchantHandler) IsActive(c *fiber.Ctx) error {
	active, err := h.merchantService.IsActive(c.UserContext(), c.Params("ownerId"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Status retrieved", fiber.Map{"active": active})
}

func (h *MerchantHandler) BulkApproved(c *fiber.Ctx) error {
	role, ok := roleParam(c)
	if !ok {
		return nil
	}
	var req validation.BulkRequest
	if !parseBody(c, &req) {
		return nil
	}
	snapshots, err := h.merchantService.GetBulkApproved(c.UserContext(), req.OwnerIDs, role)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Approved business profiles retrieved", orEmpty(snapshots))
}

func (h *MerchantHandler) Search(c *fiber.Ctx) error {
	role, ok := roleParam(c)
	if !ok {
		return nil
	}
	q, err := pagination.ParseFromPath(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	page, err := h.merchantService.Search(c.UserContext(), role, q)
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(pagination.Response(q, page.Total, orEmpty(page.Items)))
}
