package rewrite

import (
	"strings"

	"github.com/tidwall/gjson"
	"gitlab.com/tozd/go/errors"
)

const textPath = "candidates.0.content.parts.0.text"

// parseText extracts the first candidate's first text part.
func parseText(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", errors.Errorf("%w: invalid json", ErrMalformedResponse)
	}
	res := gjson.GetBytes(body, textPath)
	if !res.Exists() || res.Type != gjson.String {
		if reason := gjson.GetBytes(body, "promptFeedback.blockReason"); reason.Exists() {
			return "", errors.Errorf("%w: blocked: %s", ErrMalformedResponse, reason.String())
		}
		return "", errors.Errorf("%w: missing %s", ErrMalformedResponse, textPath)
	}
	if strings.TrimSpace(res.String()) == "" {
		return "", errors.WithStack(ErrEmptyResult)
	}
	return res.String(), nil
}

// isQuotaBody reports whether an error body describes a rate or quota limit.
func isQuotaBody(body []byte) bool {
	if gjson.GetBytes(body, "error.status").String() == "RESOURCE_EXHAUSTED" {
		return true
	}
	msg := strings.ToLower(gjson.GetBytes(body, "error.message").String())
	return strings.Contains(msg, "quota")
}

func errorMessage(body []byte) string {
	if msg := gjson.GetBytes(body, "error.message"); msg.Exists() {
		return msg.String()
	}
	return strings.TrimSpace(string(body))
}
