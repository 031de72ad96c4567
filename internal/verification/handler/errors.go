package handler

import (
	"kycverify/internal/verification/ports"
	"kycverify/internal/verification/service"
	dErrors "kycverify/pkg/domain-errors"
)

// domainError maps an adapter failure to a transport code. The message is the
// same one the failure result carries.
func domainError(err error) error {
	var code dErrors.Code
	switch ports.GetCategory(err) {
	case ports.ErrorUnreadableImage, ports.ErrorNoFaceDetected:
		code = dErrors.CodeUnprocessable
	case ports.ErrorInvalidPhoneFormat:
		code = dErrors.CodeValidation
	case ports.ErrorTimeout:
		code = dErrors.CodeTimeout
	case ports.ErrorAdapterOutage, ports.ErrorBadData:
		code = dErrors.CodeBadGateway
	default:
		code = dErrors.CodeInternal
	}
	return dErrors.Wrap(err, code, service.FailureMessage(err))
}
