package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-auth-core/pkg/response"
	"github.com/oksasatya/go-ddd-auth-core/pkg/validation"
)

const (
	CodeInvalidPayload    = "INVALID_PAYLOAD"
	CodeInternal          = "INTERNAL_SERVER_ERROR"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindRequiredField, apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindDuplicate:
		return http.StatusConflict
	case apperror.KindInvalidCredentials, apperror.KindInvalidToken, apperror.KindTokenExpired:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders err as an error envelope. Storage faults and
// unclassified errors are logged and reported without detail.
func WriteError(c *gin.Context, logger *logrus.Logger, err error) {
	var ae *apperror.Error
	if !errors.As(err, &ae) {
		logFailure(c, logger, err, "unhandled error")
		response.Error(c, http.StatusInternalServerError, CodeInternal, "internal server error", nil)
		return
	}

	status := StatusFor(ae.Kind)
	switch ae.Kind {
	case apperror.KindStorage:
		logFailure(c, logger, err, "storage failure")
		response.Error(c, status, ae.Code, ae.Message, nil)
		return
	case apperror.KindInvalidCredentials, apperror.KindInvalidToken, apperror.KindTokenExpired:
		c.Header("WWW-Authenticate", "Bearer")
	case apperror.KindUnknown:
		logFailure(c, logger, err, "unclassified error")
		response.Error(c, http.StatusInternalServerError, CodeInternal, "internal server error", nil)
		return
	}

	var details any
	if ae.Detail != "" {
		details = ae.Detail
	}
	response.Error(c, status, ae.Code, ae.Message, details)
}

// WriteBindError reports a request body that could not be decoded.
func WriteBindError(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, CodeInvalidPayload, "invalid payload", validation.ToDetails(err))
}

func logFailure(c *gin.Context, logger *logrus.Logger, err error, msg string) {
	if logger == nil {
		return
	}
	logger.WithError(err).WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"path":       c.Request.URL.Path,
	}).Error(msg)
}
