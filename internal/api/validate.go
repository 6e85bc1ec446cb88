package api

import (
	"github.com/go-playground/validator/v10"

	"github.com/rickgao/spacexy-tracker/internal/metrics"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// accept validates one decoded record. Invalid records are logged and
// counted, and the caller drops them.
func (c *Client) accept(endpoint string, record any) bool {
	if err := validate.Struct(record); err != nil {
		c.logger.Warn("dropping invalid record",
			"endpoint", endpoint,
			"error", err,
		)
		metrics.APIInvalidRecords.WithLabelValues(endpoint).Inc()
		return false
	}
	return true
}
