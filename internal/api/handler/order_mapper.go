package handler

import (
	"github.com/burgerqueen/pos-api/internal/core/domain"
)

func toOrderLines(lines []orderLineRequest) []domain.OrderLine {
	if lines == nil {
		return nil
	}
	out := make([]domain.OrderLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, domain.OrderLine{ProductID: l.ProductID, Qty: l.Qty})
	}
	return out
}

func toNewOrder(req createOrderRequest) domain.NewOrder {
	return domain.NewOrder{
		UserID:   req.UserID,
		Client:   req.Client,
		Products: toOrderLines(req.Products),
	}
}

func toOrderPatch(req updateOrderRequest) domain.OrderPatch {
	return domain.OrderPatch{
		UserID:   req.UserID,
		Client:   req.Client,
		Products: toOrderLines(req.Products),
		Status:   req.Status,
	}
}

func toOrderResponse(o *domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Products))
	for _, it := range o.Products {
		items = append(items, orderItemResponse{Qty: it.Qty, Product: toProductResponse(it.Product)})
	}
	return orderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		Client:        o.Client,
		Products:      items,
		Status:        string(o.Status),
		DateEntry:     o.DateEntry,
		DateProcessed: o.DateProcessed,
	}
}

func toOrderResponses(orders []*domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}
