package main

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"pos/pkg/domain/model"
	"pos/pkg/domain/service"
	"strconv"
	"strings"
)

type saleItem struct {
	productID uuid.UUID
	quantity  int
}

func parseSaleItems(raw []string) ([]saleItem, error) {
	items := make([]saleItem, 0, len(raw))
	for _, value := range raw {
		idPart, qtyPart, hasQty := strings.Cut(value, ":")
		id, err := uuid.Parse(idPart)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid product id in %q", value)
		}
		quantity := 1
		if hasQty {
			quantity, err = strconv.Atoi(qtyPart)
			if err != nil || quantity <= 0 {
				return nil, errors.Errorf("invalid quantity in %q", value)
			}
		}
		items = append(items, saleItem{productID: id, quantity: quantity})
	}
	return items, nil
}

// fillCart adds the requested quantities to the cart, clamping each line to
// the stock that is left after earlier lines for the same product.
func fillCart(store service.StoreService, items []saleItem) error {
	for _, item := range items {
		product, ok := store.FindProduct(item.productID)
		if !ok {
			return errors.Wrap(model.ErrProductNotFound, item.productID.String())
		}

		remaining := store.RemainingStock(item.productID)
		if remaining <= 0 || !store.AddToCart(product) {
			log.WithField("product", product.Name).Warn("Out of stock, skipping")
			continue
		}

		requested := item.quantity
		if requested > remaining {
			log.WithFields(log.Fields{
				"product":   product.Name,
				"requested": requested,
				"available": remaining,
			}).Warn("Not enough stock, selling what is left")
			requested = remaining
		}

		inCart := product.Stock - remaining
		store.UpdateCartQuantity(item.productID, inCart+requested)
	}
	return nil
}
