package resolve_availability

import (
	"fmt"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
)

// validateCategory проверяет, что категория (если задана) известна
func validateCategory(category *string) error {
	if category == nil {
		return nil
	}
	if !domain.IsKnownCategory(*category) {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, *category)
	}
	return nil
}
