package service

import (
	"context"
	"strings"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/pkg/logger"
	"go.uber.org/zap"
)

// Placeholder address used when the shopper gives no address at all. Addresses
// typed on the checkout screen carry the placeholder recipient too.
const (
	placeholderRecipient = "(Delivery)"
	placeholderStreet    = "Not informed"
	placeholderNumber    = "n/a"
	placeholderDash      = "–"
)

type AddressResolver struct {
	store AddressStore
	log   *zap.Logger
}

func NewAddressResolver(store AddressStore, log *zap.Logger) *AddressResolver {
	return &AddressResolver{store: store, log: log}
}

// Resolve returns the address id an order ships to.
//
// A selected id > 0 is used as is and is not checked against userID. Otherwise
// the raw fields are saved as a new address when any of them is filled in, or a
// placeholder address is saved when none is.
func (r *AddressResolver) Resolve(ctx context.Context, userID, selectedID int64, raw domain.RawAddress) (int64, error) {
	if selectedID > 0 {
		return selectedID, nil
	}

	log := logger.FromContext(ctx, r.log)

	var addr domain.Address
	if raw.HasAny() {
		addr = domain.Address{
			UserID:        userID,
			RecipientName: placeholderRecipient,
			Street:        strings.TrimSpace(raw.Street),
			Number:        strings.TrimSpace(raw.Number),
			PostalCode:    strings.TrimSpace(raw.PostalCode),
			City:          strings.TrimSpace(raw.City),
			State:         strings.TrimSpace(raw.State),
			Complement:    strings.TrimSpace(raw.Complement),
		}
	} else {
		addr = placeholderAddress(userID)
		log.Info("no delivery address given, saving placeholder", zap.Int64("user_id", userID))
	}

	id, err := r.store.InsertAddress(ctx, &addr)
	if err != nil {
		return 0, persistence("insert address", err)
	}
	if id > 0 {
		return id, nil
	}

	// the store did not report the new id, take the most recent address
	addresses, err := r.store.ListAddressesForUser(ctx, userID)
	if err != nil {
		return 0, persistence("list addresses", err)
	}
	if len(addresses) == 0 {
		return 0, persistence("recover address id", ErrAddressIDUnavailable)
	}
	log.Warn("address id recovered from latest address", zap.Int64("address_id", addresses[0].ID))
	return addresses[0].ID, nil
}

func placeholderAddress(userID int64) domain.Address {
	return domain.Address{
		UserID:        userID,
		RecipientName: placeholderRecipient,
		Street:        placeholderStreet,
		Number:        placeholderNumber,
		City:          placeholderDash,
		State:         placeholderDash,
		PostalCode:    placeholderDash,
	}
}
