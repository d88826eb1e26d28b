package values

import (
	"github.com/crypto-power/fediwallet/libwallet/utils"
)

// ErrorKey maps an error to the label key shown to users. Errors without a
// specific label use StrUnknownError.
func ErrorKey(err error) string {
	if err == nil {
		return ""
	}
	if err == utils.ErrUnknownCurrency {
		return StrUnknownCurrency
	}
	switch utils.TranslateError(err).Error() {
	case utils.ErrInvalid, utils.ErrFederationRequired:
		return StrInvalidInput
	case utils.ErrNotExist:
		return StrNotFound
	case utils.ErrFetchFailed:
		return StrFetchFailed
	case utils.ErrNotConnected:
		return StrNotConnected
	case utils.ErrContextCanceled:
		return StrRequestCanceled
	case utils.ErrBackendDatabaseInUse:
		return StrDatabaseInUse
	}
	return StrUnknownError
}

// TranslateErr renders err through t, falling back to English.
func TranslateErr(err error, t Translator) string {
	if t == nil {
		t = String
	}
	return t(ErrorKey(err))
}
