// Package checkout turns the local cart into a submitted order: it allocates
// an order number, composes the summary message, posts the order record, and
// hands back the WhatsApp deep link. One attempt per call; a failed attempt
// leaves the cart untouched so the customer can retry.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"

	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/models"
	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/store/api"
	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/store/cart"
	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/store/device"
)

var (
	// ErrEmptyCart: nothing to order. Raised before any network call.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrChannelUnavailable: no business WhatsApp number is configured, so
	// there is no channel to close the order on.
	ErrChannelUnavailable = errors.New("business contact number unavailable")
	// ErrInvalidMobile: the customer's number must be exactly 10 digits.
	ErrInvalidMobile = errors.New("invalid mobile number")
)

var mobileNumberRe = regexp.MustCompile(`^[0-9]{10}$`)

// ValidMobileNumber reports whether number is an acceptable 10-digit
// customer contact.
func ValidMobileNumber(number string) bool {
	return mobileNumberRe.MatchString(number)
}

// Result is a successful submission: the recorded order number, the composed
// summary, and the deep link for the WhatsApp channel.
type Result struct {
	OrderNumber  string
	Message      string
	WhatsAppLink string
}

type Submitter struct {
	api       *api.Client
	allocator *Allocator
	cart      *cart.Store
	device    device.Type
}

// NewSubmitter wires the submitter for one client session. userAgent is the
// client's signature string; it only feeds the order-source classification.
func NewSubmitter(client *api.Client, crt *cart.Store, userAgent string) *Submitter {
	return &Submitter{
		api:       client,
		allocator: NewAllocator(client),
		cart:      crt,
		device:    device.Classify(userAgent),
	}
}

// Submit runs one submission attempt. mobileNumber may be empty when the
// order will be closed over the WhatsApp deep link; otherwise it must be 10
// digits. Validation failures surface before any network call. On remote
// failure the error is returned and the cart is left as it was; only a
// confirmed submission clears it.
func (s *Submitter) Submit(ctx context.Context, mobileNumber string) (*Result, error) {
	items := s.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if mobileNumber != "" && !ValidMobileNumber(mobileNumber) {
		return nil, ErrInvalidMobile
	}

	settings, err := s.api.GetSettings(ctx)
	if err != nil {
		// Keep the cause visible so an outage reads differently from a
		// missing configuration.
		return nil, fmt.Errorf("%w: %v", ErrChannelUnavailable, err)
	}
	if settings.BusinessWhatsAppNumber == "" {
		return nil, ErrChannelUnavailable
	}

	orderNumber := s.allocator.Allocate(ctx)
	message := ComposeMessage(items, s.cart.Total(), orderNumber)

	submission := api.OrderSubmission{
		OrderNumber:          orderNumber,
		OrderDetails:         message,
		Status:               string(models.OrderStatusNew),
		CustomerMobileNumber: mobileNumber,
		OrderSource:          string(s.device),
		CreatedBy:            models.CreatedByCustomer,
		CartItems:            items,
	}

	recorded, err := s.api.CreateOrder(ctx, submission)
	if err != nil {
		return nil, err
	}
	if recorded != "" && recorded != orderNumber {
		// Server may have issued its own number; it wins, and the message is
		// recomposed so the customer quotes the recorded one.
		orderNumber = recorded
		message = ComposeMessage(items, s.cart.Total(), orderNumber)
	}

	if err := s.cart.Clear(); err != nil {
		// The order exists; a snapshot persist hiccup must not look like a
		// failed submission.
		log.Println("⚠️ Failed to persist cleared cart:", err)
	}

	return &Result{
		OrderNumber:  orderNumber,
		Message:      message,
		WhatsAppLink: WhatsAppLink(settings.BusinessWhatsAppNumber, message),
	}, nil
}
