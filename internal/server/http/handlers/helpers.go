package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/usersvc/internal/domain/errors"
	"github.com/polkiloo/usersvc/internal/domain/model"
	"github.com/polkiloo/usersvc/internal/server/http/dto"
)

const (
	msgNotFound      = "User not found."
	msgAlreadyExists = "User already exist"
	msgEmptyDatabase = "Database is empty."
	msgEmptyLogin    = "Login can not be empty"
	msgInvalidLimit  = "limit must be a non-negative integer"
	msgInternal      = "internal server error"
)

// writeError maps domain errors to HTTP responses.
func writeError(c *gin.Context, err error) {
	var vErr *domainErrors.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, toValidationResponse(vErr))
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: msgNotFound})
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: msgAlreadyExists})
	case errors.Is(err, domainErrors.ErrEmptyLogin):
		c.JSON(http.StatusOK, dto.MessageResponse{Message: msgEmptyLogin})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: msgInternal})
	}
}

func toValidationResponse(err *domainErrors.ValidationError) dto.ValidationErrorResponse {
	resp := dto.ValidationErrorResponse{
		Status: "failed",
		Errors: make([]dto.FieldErrorResponse, 0, len(err.Fields)),
	}
	for _, f := range err.Fields {
		path := f.Path
		if path == nil {
			path = []string{}
		}
		resp.Errors = append(resp.Errors, dto.FieldErrorResponse{Message: f.Message, Path: path})
	}
	return resp
}

func toUserResponse(user model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       user.ID,
		Login:    user.Login,
		Age:      user.Age,
		Password: user.Password,
	}
}

func toUserResponses(users []model.User) []dto.UserResponse {
	response := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		response = append(response, toUserResponse(u))
	}
	return response
}
