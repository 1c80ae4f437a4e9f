package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tugasku/tugasku-server/internal/services"
)

func (h *handlerImpl) HandleUploadFile(c *gin.Context) {
	_, ok := h.mustUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		abort(c, newBadRequestError("no file provided"))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to open uploaded file")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}
	defer func() { _ = src.Close() }()

	name, err := h.files.Save(c, fileHeader.Filename, fileHeader.Size, src)
	if err != nil {
		if errors.Is(err, services.ErrFileTooLarge) {
			abort(c, newAPIError(http.StatusRequestEntityTooLarge, services.ErrFileTooLarge.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to save uploaded file")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	h.logger.Info().Msg("saved uploaded file")
	c.JSON(http.StatusCreated, gin.H{"name": name})
}

func (h *handlerImpl) HandleGetFile(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		abort(c, newBadRequestError("no file name provided"))
		return
	}

	path, err := h.files.Path(name)
	if err != nil {
		abort(c, newNotFoundError("file not found"))
		return
	}

	c.File(path)
}
