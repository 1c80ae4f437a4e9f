package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tugasku/tugasku-server/internal/models"
	"github.com/tugasku/tugasku-server/internal/services"
	"github.com/tugasku/tugasku-server/internal/taskclock"
)

type profileResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	Gender    string `json:"gender,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
	Photo     string `json:"photo,omitempty"`
}

func newProfileResponse(user *models.User) profileResponse {
	resp := profileResponse{
		ID:     user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Phone:  user.Phone,
		Gender: user.Gender,
		Photo:  user.Photo,
	}
	if user.BirthDate != nil {
		resp.BirthDate = user.BirthDate.Format(taskclock.DateKeyLayout)
	}
	return resp
}

func (h *handlerImpl) HandleGetProfile(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	user, err := h.users.GetUserByID(c, userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			abort(c, newNotFoundError(services.ErrUserNotFound.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to get profile")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(user))
}

type updateProfileRequest struct {
	Name      *string `json:"name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Gender    *string `json:"gender,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
	Photo     *string `json:"photo,omitempty"`
}

func (h *handlerImpl) HandleUpdateProfile(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	params := services.UpdateProfileParams{
		UserID: userID,
		Name:   req.Name,
		Phone:  req.Phone,
		Gender: req.Gender,
		Photo:  req.Photo,
	}
	if req.BirthDate != nil {
		birthDate, err := time.ParseInLocation(taskclock.DateKeyLayout, *req.BirthDate, time.Local)
		if err != nil {
			abort(c, newBadRequestError("unparseable birth date"))
			return
		}
		params.BirthDate = &birthDate
	}

	user, err := h.users.UpdateProfile(c, params)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			abort(c, newNotFoundError(services.ErrUserNotFound.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to update profile")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	h.logger.Info().Msg("updated profile")
	c.JSON(http.StatusOK, newProfileResponse(user))
}
