package httptransport

import (
	"strings"

	dErrors "sessiongate/pkg/domain-errors"
)

const systemErrorMessage = "We encountered a system error - please try again."

// userMessage translates a domain error into the user-facing wording for one
// endpoint. The rules run in order and later rules see the rewritten message,
// matching the behavior the UI was built against.
func userMessage(endpoint string, err error) string {
	code := dErrors.CodeOf(err)
	msg := dErrors.MessageOf(err)
	if msg == "" {
		msg = "Caught error."
	}

	badRequest := code == dErrors.CodeBadRequest || containsFold(msg, "bad request")

	switch endpoint {
	case "signupUser":
		if badRequest {
			msg = "An account for this email already exists."
		}
	case "confirmUser":
		if badRequest {
			msg = "Unable to Confirm Account"
		}
	case "loginUser":
		if badRequest || containsFold(msg, "no user found") {
			msg = "Account not found or password is invalid."
		}
	case "passwordRecoveryRequest":
		if badRequest || containsFold(msg, "user not found") {
			msg = "Account not found."
		}
	case "passwordRecoveryVerify":
		if badRequest {
			msg = "Invalid password reset token."
		}
	case "updateEmailConfirm":
		if badRequest {
			msg = "Unable to confirm email update token."
		}
	}

	switch endpoint {
	case "updatePassword", "updateEmailRequest", "deleteUser":
		if containsFold(msg, "bad request") {
			msg = systemErrorMessage
		}
	}

	switch endpoint {
	case "updatePassword", "updateEmailRequest":
		if containsFold(msg, "user not found") || code == dErrors.CodeBadRequest {
			msg = "Please double-check current password."
		}
	}

	if endpoint == "deleteUser" &&
		(containsFold(msg, "user not found") || containsFold(msg, "no user found")) {
		msg = "Unauthorized, please double-check password."
	}

	if code == dErrors.CodeUnauthorized || code == dErrors.CodeForbidden || containsFold(msg, "invalid token") {
		msg = "Unauthorized Request"
	}

	if containsFold(msg, "unexpected token") || containsFold(msg, "unexpected identity response") {
		msg = systemErrorMessage
	}

	if containsFold(msg, "invalid refresh token") {
		msg = "Unable to renew tokens."
	}

	if containsFold(msg, "bad gateway") {
		msg = "Issue reaching server - please submit again."
	}

	return msg
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}
