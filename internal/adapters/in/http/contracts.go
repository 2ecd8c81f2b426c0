package http

import (
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"
)

// errorResponse is the JSON error envelope. Fields carries the per-field
// messages for validation failures.
type errorResponse struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

type addressContract struct {
	Street        string `json:"street"`
	City          string `json:"city"`
	StateProvince string `json:"stateProvince"`
	ZipPostalCode string `json:"zipPostalCode"`
	Country       string `json:"country"`
}

type locationContract struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// orderContract is the JSON shape of an order. Number is zero when the
// response was built from a write path, which does not read the display
// sequence back.
type orderContract struct {
	ID               string  `json:"id"`
	Number           int64   `json:"number,omitempty"`
	BusinessID       string  `json:"businessId"`
	Status           string  `json:"status"`
	StatusLabel      string  `json:"statusLabel"`
	NextAction       string  `json:"nextAction,omitempty"`
	AssignedDriverID *string `json:"assignedDriverId,omitempty"`

	CustomerID    *string `json:"customerId,omitempty"`
	CustomerName  string  `json:"customerName,omitempty"`
	CustomerPhone string  `json:"customerPhone,omitempty"`
	CustomerEmail string  `json:"customerEmail,omitempty"`

	DeliveryAddress addressContract `json:"deliveryAddress"`

	OrderDetails        string  `json:"orderDetails"`
	SpecialInstructions string  `json:"specialInstructions,omitempty"`
	TotalAmount         float64 `json:"totalAmount"`

	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
	ConfirmedAt           *time.Time `json:"confirmedAt,omitempty"`
	DeliveredAt           *time.Time `json:"deliveredAt,omitempty"`

	DeliveryPhoto string `json:"deliveryPhoto,omitempty"`
}

func toOrderContract(resp queries.OrderResponse) orderContract {
	contract := orderContract{
		ID:          resp.ID.String(),
		Number:      resp.Number,
		BusinessID:  resp.BusinessID.String(),
		Status:      resp.Status.String(),
		StatusLabel: resp.Status.Label(),

		CustomerName:  resp.CustomerName,
		CustomerPhone: resp.CustomerPhone,
		CustomerEmail: resp.CustomerEmail,

		DeliveryAddress: addressContract{
			Street:        resp.Street,
			City:          resp.City,
			StateProvince: resp.StateProvince,
			ZipPostalCode: resp.ZipPostalCode,
			Country:       resp.Country,
		},

		OrderDetails:        resp.OrderDetails,
		SpecialInstructions: resp.SpecialInstructions,
		TotalAmount:         resp.TotalAmount,

		EstimatedDeliveryTime: resp.EstimatedDeliveryTime,
		CreatedAt:             resp.CreatedAt,
		UpdatedAt:             resp.UpdatedAt,
		ConfirmedAt:           resp.ConfirmedAt,
		DeliveredAt:           resp.DeliveredAt,

		DeliveryPhoto: resp.DeliveryPhoto,
	}

	if action, ok := resp.Status.NextAction(); ok {
		contract.NextAction = action.String()
	}
	if resp.AssignedDriverID != nil {
		id := resp.AssignedDriverID.String()
		contract.AssignedDriverID = &id
	}
	if resp.CustomerID != nil {
		id := resp.CustomerID.String()
		contract.CustomerID = &id
	}

	return contract
}

func toOrderContractFromAggregate(o *order.Order) orderContract {
	address := o.DeliveryAddress()
	contract := orderContract{
		ID:          o.ID().String(),
		BusinessID:  o.BusinessID().String(),
		Status:      o.Status().String(),
		StatusLabel: o.Status().Label(),

		CustomerName:  o.CustomerName(),
		CustomerPhone: o.CustomerPhone(),
		CustomerEmail: o.CustomerEmail(),

		DeliveryAddress: addressContract{
			Street:        address.Street(),
			City:          address.City(),
			StateProvince: address.StateProvince(),
			ZipPostalCode: address.ZipPostalCode(),
			Country:       address.Country(),
		},

		OrderDetails:        o.OrderDetails(),
		SpecialInstructions: o.SpecialInstructions(),
		TotalAmount:         o.TotalAmount(),

		EstimatedDeliveryTime: o.EstimatedDeliveryTime(),
		CreatedAt:             o.CreatedAt(),
		UpdatedAt:             o.UpdatedAt(),
		ConfirmedAt:           o.ConfirmedAt(),
		DeliveredAt:           o.DeliveredAt(),

		DeliveryPhoto: o.DeliveryPhoto(),
	}

	if action, ok := o.Status().NextAction(); ok {
		contract.NextAction = action.String()
	}
	if driverID := o.AssignedDriverID(); driverID != nil {
		id := driverID.String()
		contract.AssignedDriverID = &id
	}
	if customerID := o.CustomerID(); customerID != nil {
		id := customerID.String()
		contract.CustomerID = &id
	}

	return contract
}

type createOrderRequest struct {
	BusinessID string `json:"businessId"`

	CustomerID    string `json:"customerId,omitempty"`
	CustomerName  string `json:"customerName,omitempty"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`

	DeliveryAddress addressContract `json:"deliveryAddress"`

	OrderDetails        string  `json:"orderDetails"`
	SpecialInstructions string  `json:"specialInstructions,omitempty"`
	TotalAmount         float64 `json:"totalAmount"`

	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime,omitempty"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

// pendingUpdateContract is one status update a driver device buffered while
// offline.
type pendingUpdateContract struct {
	OrderID    string    `json:"orderId"`
	Status     string    `json:"status"`
	ObservedAt time.Time `json:"observedAt"`
}

// patchOrderRequest is the action-dispatch body of PATCH /api/v1/orders.
// Action selects the lifecycle transition; "sync" replays PendingUpdates
// through the reconciler instead.
type patchOrderRequest struct {
	Action  string `json:"action"`
	OrderID string `json:"orderId,omitempty"`

	DriverID      string            `json:"driverId,omitempty"`
	Status        string            `json:"status,omitempty"`
	DeliveryPhoto string            `json:"deliveryPhoto,omitempty"`
	Location      *locationContract `json:"location,omitempty"`

	PendingUpdates []pendingUpdateContract `json:"pendingUpdates,omitempty"`
}

type syncItemContract struct {
	OrderID    string    `json:"orderId"`
	Status     string    `json:"status"`
	ObservedAt time.Time `json:"observedAt"`
	Reason     string    `json:"reason"`
}

type syncResponse struct {
	SyncedOrders            []orderContract    `json:"syncedOrders"`
	PendingUpdatesProcessed int                `json:"pendingUpdatesProcessed"`
	Applied                 int                `json:"applied"`
	Skipped                 []syncItemContract `json:"skipped"`
	Failed                  []syncItemContract `json:"failed"`
}

func toSyncResponse(result commands.SyncResult) syncResponse {
	resp := syncResponse{
		SyncedOrders:            make([]orderContract, 0, len(result.SyncedOrders)),
		PendingUpdatesProcessed: result.Processed,
		Applied:                 result.Applied,
		Skipped:                 make([]syncItemContract, 0),
		Failed:                  make([]syncItemContract, 0),
	}

	for _, o := range result.SyncedOrders {
		resp.SyncedOrders = append(resp.SyncedOrders, toOrderContractFromAggregate(o))
	}

	for _, item := range result.ItemResults {
		contract := syncItemContract{
			OrderID:    item.OrderID.String(),
			Status:     item.Status.String(),
			ObservedAt: item.ObservedAt,
			Reason:     item.Reason,
		}
		switch item.Outcome {
		case commands.SyncSkipped:
			resp.Skipped = append(resp.Skipped, contract)
		case commands.SyncFailed:
			resp.Failed = append(resp.Failed, contract)
		case commands.SyncApplied:
			// applied items are reflected in the counters and order set
		}
	}

	return resp
}

type deliverySettingsContract struct {
	Radius              int    `json:"radius"`
	RadiusUnit          string `json:"radiusUnit"`
	SpecialRequirements string `json:"specialRequirements,omitempty"`
}

type createBusinessRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website,omitempty"`
	Phone       string `json:"phone,omitempty"`

	Address addressContract `json:"address"`

	DeliverySettings *deliverySettingsContract `json:"deliverySettings,omitempty"`
}

type createBusinessResponse struct {
	ID string `json:"id"`
}

type businessContract struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website,omitempty"`
	Phone       string `json:"phone,omitempty"`

	Address addressContract `json:"address"`

	DeliverySettings deliverySettingsContract `json:"deliverySettings"`

	OwnerUserID string    `json:"ownerUserId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toBusinessContract(resp queries.BusinessResponse) businessContract {
	return businessContract{
		ID:          resp.ID.String(),
		Name:        resp.Name,
		Description: resp.Description,
		Website:     resp.Website,
		Phone:       resp.Phone,
		Address: addressContract{
			Street:        resp.Street,
			City:          resp.City,
			StateProvince: resp.StateProvince,
			ZipPostalCode: resp.ZipPostalCode,
			Country:       resp.Country,
		},
		DeliverySettings: deliverySettingsContract{
			Radius:              resp.DeliveryRadius,
			RadiusUnit:          resp.DeliveryRadiusUnit.String(),
			SpecialRequirements: resp.SpecialRequirements,
		},
		OwnerUserID: resp.OwnerUserID.String(),
		CreatedAt:   resp.CreatedAt,
		UpdatedAt:   resp.UpdatedAt,
	}
}

type createEmployeeRequest struct {
	BusinessID string   `json:"businessId"`
	UserID     string   `json:"userId"`
	Roles      []string `json:"roles"`
}

type createEmployeeResponse struct {
	ID string `json:"id"`
}

type employeeContract struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	BusinessID string    `json:"businessId"`
	Roles      []string  `json:"roles"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toEmployeeContract(resp queries.EmployeeResponse) employeeContract {
	roles := make([]string, 0, len(resp.Roles))
	for _, role := range resp.Roles {
		roles = append(roles, role.String())
	}

	return employeeContract{
		ID:         resp.ID.String(),
		UserID:     resp.UserID.String(),
		BusinessID: resp.BusinessID.String(),
		Roles:      roles,
		Status:     resp.Status.String(),
		CreatedAt:  resp.CreatedAt,
		UpdatedAt:  resp.UpdatedAt,
	}
}
