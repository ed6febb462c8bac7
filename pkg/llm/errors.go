package llm

import (
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/bunfree-ai/bunfree-engine/engine/domain"
)

// parseAPIError extracts a readable message from the API response and wraps
// it with domain.ErrProvider so callers can classify the failure.
func parseAPIError(op string, err error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("%s: API error %d: %s: %w",
			op, reqErr.HTTPStatusCode, string(reqErr.Body), domain.ErrProvider)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: API error %d: %s: %w",
			op, apiErr.HTTPStatusCode, apiErr.Message, domain.ErrProvider)
	}

	return fmt.Errorf("%s: %w: %w", op, domain.ErrProvider, err)
}
