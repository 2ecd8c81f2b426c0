package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// New orders always start in pending status; structural validation failures
// surface as *order.ValidationError with every problem listed at once.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command and returns the id of the
// created order.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	newOrder, err := order.NewOrder(order.NewOrderParams{
		ID:                    kernel.NewUUID(),
		BusinessID:            cmd.BusinessID(),
		CustomerID:            cmd.CustomerID(),
		CustomerName:          cmd.CustomerName(),
		CustomerPhone:         cmd.CustomerPhone(),
		CustomerEmail:         cmd.CustomerEmail(),
		DeliveryAddress:       cmd.DeliveryAddress(),
		OrderDetails:          cmd.OrderDetails(),
		SpecialInstructions:   cmd.SpecialInstructions(),
		TotalAmount:           cmd.TotalAmount(),
		EstimatedDeliveryTime: cmd.EstimatedDeliveryTime(),
	})
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return newOrder.ID(), nil
}
