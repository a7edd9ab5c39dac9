package handler

import (
	"errors"

	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/domain/user"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"
	useruc "skillswap/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

const msgMissingFields = "Missing required fields."

type UserHandler struct {
	uc     usecase.UserUsecase
	cookie SessionCookie
}

func NewUserHandler(uc usecase.UserUsecase, cookie SessionCookie) *UserHandler {
	return &UserHandler{uc: uc, cookie: cookie}
}

// RegisterRoutes mounts the caller-scoped routes on a /me group that is
// already behind the auth middleware.
func (h *UserHandler) RegisterRoutes(me fiber.Router) {
	if me == nil {
		return
	}

	me.Get("/", h.GetMe)
	me.Put("/profile", h.EditProfile)
	me.Post("/skills", h.UpdateSkills)
	me.Post("/interests", h.UpdateInterests)
	me.Get("/matches", h.Matches)
	me.Post("/matches", h.Connect)
	me.Get("/notifications", h.Notifications)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	prof, err := h.uc.GetMe(c.Context(), userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(prof))
}

// ViewProfile looks a profile up by ?id= or ?username=.
func (h *UserHandler) ViewProfile(c fiber.Ctx) error {
	prof, err := h.uc.ViewProfile(c.Context(), useruc.ProfileRef{
		ID:       c.Query("id"),
		Username: c.Query("username"),
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(prof))
}

func (h *UserHandler) EditProfile(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.EditProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	updated, sess, err := h.uc.EditProfile(c.Context(), userID, useruc.EditProfileInput{
		FName:    req.FName,
		LName:    req.LName,
		Email:    req.Email,
		Username: req.Username,
		Bio:      req.Bio,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}

	h.cookie.Set(c, sess.Token, sess.ExpiresIn)
	return response.Success(c, fiber.StatusOK, "Profile updated successfully", dto.NewEditProfileResponse(updated))
}

func (h *UserHandler) UpdateSkills(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.SkillsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, msgMissingFields, nil, err)
	}

	res, err := h.uc.UpdateSkills(c.Context(), userID, req.Skills)
	if err != nil {
		return mapSkillSetError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skills updated successfully.", dto.NewSkillUpdateResponse(res))
}

func (h *UserHandler) UpdateInterests(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.InterestsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, msgMissingFields, nil, err)
	}

	res, err := h.uc.UpdateInterests(c.Context(), userID, req.Interests)
	if err != nil {
		return mapSkillSetError(err)
	}
	return response.Success(c, fiber.StatusOK, "Interests updated successfully.", dto.NewSkillUpdateResponse(res))
}

func (h *UserHandler) Matches(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.Matches(c.Context(), userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return matchesResponse(c, items)
}

func (h *UserHandler) Connect(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.ConnectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	items, err := h.uc.Connect(c.Context(), userID, req.Username)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return matchesResponse(c, items)
}

func (h *UserHandler) Notifications(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.Notifications(c.Context(), userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func matchesResponse(c fiber.Ctx, items []useruc.MatchSummary) error {
	msg := response.MessageOK
	if len(items) == 0 {
		msg = "No matches yet :("
	}
	return response.Success(c, fiber.StatusOK, msg, dto.NewMatchResponses(items))
}

func mapSkillSetError(err error) error {
	switch {
	case errors.Is(err, useruc.ErrMissingFields):
		return middleware.NewAppError(fiber.StatusBadRequest, msgMissingFields, nil, err)
	case errors.Is(err, user.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func mapUserUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, user.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, useruc.ErrMissingIdentifier):
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing identifier", nil, err)
	case errors.Is(err, useruc.ErrMissingFields):
		return middleware.NewAppError(fiber.StatusBadRequest, msgMissingFields, nil, err)
	case errors.Is(err, useruc.ErrInvalidEmail):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid email format", nil, err)
	case errors.Is(err, useruc.ErrInvalidUsername):
		return middleware.NewAppError(fiber.StatusBadRequest, "Username must be 4-15 chars", nil, err)
	case errors.Is(err, useruc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Names must be under 20 chars and bio under 500", nil, err)
	case errors.Is(err, useruc.ErrUsernameTaken):
		return middleware.NewAppError(fiber.StatusBadRequest, "Username already taken", nil, err)
	case errors.Is(err, useruc.ErrEmailTaken):
		return middleware.NewAppError(fiber.StatusBadRequest, "Email already registered", nil, err)
	case errors.Is(err, useruc.ErrSelfMatch):
		return middleware.NewAppError(fiber.StatusBadRequest, "Cannot match with yourself", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
