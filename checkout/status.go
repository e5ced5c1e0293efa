package checkout

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lankamart/storefront/models"
)

// ErrIllegalTransition is returned when a guarded policy refuses a status change.
var ErrIllegalTransition = errors.New("illegal status transition")

// TransitionPolicy approves or refuses moving an order from one status to another.
type TransitionPolicy func(from, to models.OrderStatus) error

// Permissive allows any status to follow any other.
func Permissive(_, _ models.OrderStatus) error {
	return nil
}

// allowed predecessors per target status
var predecessors = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPending:    {},
	models.StatusProcessing: {models.StatusPending},
	models.StatusShipped:    {models.StatusProcessing},
	models.StatusDelivered:  {models.StatusShipped},
	models.StatusCancelled:  {models.StatusPending, models.StatusProcessing, models.StatusShipped},
}

// Guarded follows pending → processing → shipped → delivered, with
// cancellation from any state before delivery. Re-setting the current status
// is always allowed.
func Guarded(from, to models.OrderStatus) error {
	if from == to {
		return nil
	}
	if slices.Contains(predecessors[to], from) {
		return nil
	}
	return fmt.Errorf("%w: %s to %s", ErrIllegalTransition, from, to)
}
