// Package http is the inbound HTTP adapter. It translates JSON requests into
// commands and queries, and maps domain errors to status codes. All routes
// under /api/v1 require a bearer token; the authenticated user is the actor
// for every write.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/business"
	"dispatch/internal/core/domain/model/employee"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler
	syncDriverHandler      commands.SyncDriverUpdatesCommandHandler
	createBusinessHandler  commands.CreateBusinessCommandHandler
	createEmployeeHandler  commands.CreateEmployeeCommandHandler
	removeEmployeeHandler  commands.RemoveEmployeeCommandHandler

	// Query handlers
	getOrderHandler          queries.GetOrderQueryHandler
	getBusinessOrdersHandler queries.GetBusinessOrdersQueryHandler
	getDriverOrdersHandler   queries.GetDriverOrdersQueryHandler
	getBusinessesHandler     queries.GetBusinessesQueryHandler
	getEmployeesHandler      queries.GetBusinessEmployeesQueryHandler
	getMembershipHandler     queries.GetMembershipQueryHandler
}

// ServerParams bundles the handlers the server needs.
type ServerParams struct {
	CreateOrderHandler     commands.CreateOrderCommandHandler
	TransitionOrderHandler commands.TransitionOrderCommandHandler
	SyncDriverHandler      commands.SyncDriverUpdatesCommandHandler
	CreateBusinessHandler  commands.CreateBusinessCommandHandler
	CreateEmployeeHandler  commands.CreateEmployeeCommandHandler
	RemoveEmployeeHandler  commands.RemoveEmployeeCommandHandler

	GetOrderHandler          queries.GetOrderQueryHandler
	GetBusinessOrdersHandler queries.GetBusinessOrdersQueryHandler
	GetDriverOrdersHandler   queries.GetDriverOrdersQueryHandler
	GetBusinessesHandler     queries.GetBusinessesQueryHandler
	GetEmployeesHandler      queries.GetBusinessEmployeesQueryHandler
	GetMembershipHandler     queries.GetMembershipQueryHandler
}

// NewServer creates the HTTP server facade.
func NewServer(params ServerParams) *Server {
	return &Server{
		createOrderHandler:     params.CreateOrderHandler,
		transitionOrderHandler: params.TransitionOrderHandler,
		syncDriverHandler:      params.SyncDriverHandler,
		createBusinessHandler:  params.CreateBusinessHandler,
		createEmployeeHandler:  params.CreateEmployeeHandler,
		removeEmployeeHandler:  params.RemoveEmployeeHandler,

		getOrderHandler:          params.GetOrderHandler,
		getBusinessOrdersHandler: params.GetBusinessOrdersHandler,
		getDriverOrdersHandler:   params.GetDriverOrdersHandler,
		getBusinessesHandler:     params.GetBusinessesHandler,
		getEmployeesHandler:      params.GetEmployeesHandler,
		getMembershipHandler:     params.GetMembershipHandler,
	}
}

// RegisterRoutes wires the API routes onto the echo instance. The JWT
// middleware guards everything under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo, jwtSecret string) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1", JWTAuth(jwtSecret))

	api.GET("/orders/:id", s.GetOrder)
	api.GET("/orders", s.GetOrders)
	api.POST("/orders", s.CreateOrder)
	api.PATCH("/orders", s.PatchOrders)

	api.POST("/businesses", s.CreateBusiness)
	api.GET("/businesses", s.GetBusinesses)

	api.POST("/employees", s.CreateEmployee)
	api.GET("/employees", s.GetEmployees)
	api.DELETE("/employees/:id", s.RemoveEmployee)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetOrder handles GET /api/v1/orders/:id. Visible to members of the order's
// business and to the order's customer; everyone else gets 404.
func (s *Server) GetOrder(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: "order not found",
		})
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(c, err)
	}

	resp, err := s.getOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	if !s.canReadOrder(c, userID, resp) {
		return c.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: "order not found",
		})
	}

	return c.JSON(http.StatusOK, toOrderContract(resp))
}

// canReadOrder reports whether the user may see the order: business members
// and the order's own customer qualify.
func (s *Server) canReadOrder(c echo.Context, userID kernel.UUID, resp queries.OrderResponse) bool {
	if resp.CustomerID != nil && userID.IsEqual(*resp.CustomerID) {
		return true
	}

	query, err := queries.NewGetMembershipQuery(userID, resp.BusinessID)
	if err != nil {
		return false
	}

	_, err = s.getMembershipHandler.Handle(c.Request().Context(), query)
	return err == nil
}

// GetOrders handles GET /api/v1/orders. With businessId it lists a
// business's orders (members only, optional status/driverId filters);
// without it, the caller's own assigned orders across businesses.
func (s *Server) GetOrders(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	if c.QueryParam("businessId") == "" {
		return s.listDriverOrders(c, userID)
	}

	businessID, err := kernel.UUIDFromString(c.QueryParam("businessId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid businessId",
		})
	}

	membershipQuery, err := queries.NewGetMembershipQuery(userID, businessID)
	if err != nil {
		return writeError(c, err)
	}
	if _, err = s.getMembershipHandler.Handle(c.Request().Context(), membershipQuery); err != nil {
		return c.JSON(http.StatusForbidden, errorResponse{
			Code:    http.StatusForbidden,
			Message: "access denied",
		})
	}

	var statusFilter *order.Status
	if raw := c.QueryParam("status"); raw != "" {
		status, statusErr := order.StatusFromString(raw)
		if statusErr != nil {
			return writeError(c, statusErr)
		}
		statusFilter = &status
	}

	var driverFilter *kernel.UUID
	if raw := c.QueryParam("driverId"); raw != "" {
		driverID, driverErr := kernel.UUIDFromString(raw)
		if driverErr != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{
				Code:    http.StatusBadRequest,
				Message: "invalid driverId",
			})
		}
		driverFilter = &driverID
	}

	query, err := queries.NewGetBusinessOrdersQuery(businessID, statusFilter, driverFilter)
	if err != nil {
		return writeError(c, err)
	}

	orders, err := s.getBusinessOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderContracts(orders))
}

func (s *Server) listDriverOrders(c echo.Context, userID kernel.UUID) error {
	query, err := queries.NewGetDriverOrdersQuery(userID)
	if err != nil {
		return writeError(c, err)
	}

	orders, err := s.getDriverOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderContracts(orders))
}

func toOrderContracts(orders []queries.OrderResponse) []orderContract {
	contracts := make([]orderContract, 0, len(orders))
	for _, resp := range orders {
		contracts = append(contracts, toOrderContract(resp))
	}
	return contracts
}

// CreateOrder handles POST /api/v1/orders. When the request names neither a
// customer reference nor contact details, the authenticated caller becomes
// the order's customer.
func (s *Server) CreateOrder(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req createOrderRequest
	if err = c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	businessID, err := kernel.UUIDFromString(req.BusinessID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid businessId",
		})
	}

	var customerID *kernel.UUID
	switch {
	case req.CustomerID != "":
		parsed, idErr := kernel.UUIDFromString(req.CustomerID)
		if idErr != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{
				Code:    http.StatusBadRequest,
				Message: "invalid customerId",
			})
		}
		customerID = &parsed
	case req.CustomerName == "" && req.CustomerPhone == "" && req.CustomerEmail == "":
		customerID = &userID
	}

	address, err := kernel.NewAddress(
		req.DeliveryAddress.Street,
		req.DeliveryAddress.City,
		req.DeliveryAddress.StateProvince,
		req.DeliveryAddress.ZipPostalCode,
		req.DeliveryAddress.Country,
	)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewCreateOrderCommand(commands.CreateOrderParams{
		BusinessID:            businessID,
		CustomerID:            customerID,
		CustomerName:          req.CustomerName,
		CustomerPhone:         req.CustomerPhone,
		CustomerEmail:         req.CustomerEmail,
		DeliveryAddress:       address,
		OrderDetails:          req.OrderDetails,
		SpecialInstructions:   req.SpecialInstructions,
		TotalAmount:           req.TotalAmount,
		EstimatedDeliveryTime: req.EstimatedDeliveryTime,
	})
	if err != nil {
		return writeError(c, err)
	}

	orderID, err := s.createOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, createOrderResponse{ID: orderID.String()})
}

// PatchOrders handles PATCH /api/v1/orders: lifecycle actions on one order,
// or a sync batch when action is "sync".
func (s *Server) PatchOrders(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req patchOrderRequest
	if err = c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	actor, err := commands.NewActor(userID)
	if err != nil {
		return writeError(c, err)
	}

	if req.Action == "sync" {
		return s.syncDriverUpdates(c, actor, req)
	}

	return s.transitionOrder(c, actor, req)
}

func (s *Server) transitionOrder(c echo.Context, actor commands.Actor, req patchOrderRequest) error {
	action, err := order.ParseAction(req.Action)
	if err != nil {
		return writeError(c, err)
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid orderId",
		})
	}

	params := commands.TransitionOrderParams{
		OrderID:       orderID,
		Action:        action,
		Actor:         actor,
		DeliveryPhoto: req.DeliveryPhoto,
	}

	if req.DriverID != "" {
		driverID, idErr := kernel.UUIDFromString(req.DriverID)
		if idErr != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{
				Code:    http.StatusBadRequest,
				Message: "invalid driverId",
			})
		}
		params.DriverID = &driverID
	}

	if req.Status != "" {
		status, statusErr := order.StatusFromString(req.Status)
		if statusErr != nil {
			return writeError(c, statusErr)
		}
		params.TargetStatus = status
	}

	if req.Location != nil {
		location, locErr := kernel.NewGeoLocation(req.Location.Latitude, req.Location.Longitude)
		if locErr != nil {
			return writeError(c, locErr)
		}
		params.DriverLocation = &location
	}

	cmd, err := commands.NewTransitionOrderCommand(params)
	if err != nil {
		return writeError(c, err)
	}

	updated, err := s.transitionOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderContractFromAggregate(updated))
}

func (s *Server) syncDriverUpdates(c echo.Context, actor commands.Actor, req patchOrderRequest) error {
	updates := make([]commands.BufferedStatusUpdate, 0, len(req.PendingUpdates))
	for _, item := range req.PendingUpdates {
		update := commands.BufferedStatusUpdate{ObservedAt: item.ObservedAt}
		// Malformed ids and statuses stay in the batch; the reconciler
		// reports them as failed items instead of rejecting the request.
		if orderID, idErr := kernel.UUIDFromString(item.OrderID); idErr == nil {
			update.OrderID = orderID
		}
		if status, statusErr := order.StatusFromString(item.Status); statusErr == nil {
			update.Status = status
		}
		updates = append(updates, update)
	}

	cmd, err := commands.NewSyncDriverUpdatesCommand(actor, updates)
	if err != nil {
		return writeError(c, err)
	}

	result, err := s.syncDriverHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toSyncResponse(result))
}

// CreateBusiness handles POST /api/v1/businesses. The caller becomes the
// business's owner.
func (s *Server) CreateBusiness(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req createBusinessRequest
	if err = c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	actor, err := commands.NewActor(userID)
	if err != nil {
		return writeError(c, err)
	}

	address, err := kernel.NewAddress(
		req.Address.Street,
		req.Address.City,
		req.Address.StateProvince,
		req.Address.ZipPostalCode,
		req.Address.Country,
	)
	if err != nil {
		return writeError(c, err)
	}

	var delivery business.DeliverySettings
	if req.DeliverySettings != nil {
		unit, unitErr := business.ParseRadiusUnit(req.DeliverySettings.RadiusUnit)
		if unitErr != nil {
			return writeError(c, unitErr)
		}
		delivery, err = business.NewDeliverySettings(
			req.DeliverySettings.Radius, unit, req.DeliverySettings.SpecialRequirements)
		if err != nil {
			return writeError(c, err)
		}
	}

	cmd, err := commands.NewCreateBusinessCommand(commands.CreateBusinessParams{
		Actor:       actor,
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
		Phone:       req.Phone,
		Address:     address,
		Delivery:    delivery,
	})
	if err != nil {
		return writeError(c, err)
	}

	businessID, err := s.createBusinessHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, createBusinessResponse{ID: businessID.String()})
}

// GetBusinesses handles GET /api/v1/businesses - lists the caller's
// businesses.
func (s *Server) GetBusinesses(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewGetBusinessesQuery(userID)
	if err != nil {
		return writeError(c, err)
	}

	businesses, err := s.getBusinessesHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	contracts := make([]businessContract, 0, len(businesses))
	for _, resp := range businesses {
		contracts = append(contracts, toBusinessContract(resp))
	}

	return c.JSON(http.StatusOK, contracts)
}

// CreateEmployee handles POST /api/v1/employees.
func (s *Server) CreateEmployee(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req createEmployeeRequest
	if err = c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	actor, err := commands.NewActor(userID)
	if err != nil {
		return writeError(c, err)
	}

	businessID, err := kernel.UUIDFromString(req.BusinessID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid businessId",
		})
	}

	memberUserID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid userId",
		})
	}

	roles := make([]employee.Role, 0, len(req.Roles))
	for _, raw := range req.Roles {
		role, roleErr := employee.ParseRole(raw)
		if roleErr != nil {
			return writeError(c, roleErr)
		}
		roles = append(roles, role)
	}

	cmd, err := commands.NewCreateEmployeeCommand(actor, businessID, memberUserID, roles)
	if err != nil {
		return writeError(c, err)
	}

	employeeID, err := s.createEmployeeHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, createEmployeeResponse{ID: employeeID.String()})
}

// GetEmployees handles GET /api/v1/employees?businessId= - lists a business's
// memberships (members only).
func (s *Server) GetEmployees(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	businessID, err := kernel.UUIDFromString(c.QueryParam("businessId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid businessId",
		})
	}

	membershipQuery, err := queries.NewGetMembershipQuery(userID, businessID)
	if err != nil {
		return writeError(c, err)
	}
	if _, err = s.getMembershipHandler.Handle(c.Request().Context(), membershipQuery); err != nil {
		return c.JSON(http.StatusForbidden, errorResponse{
			Code:    http.StatusForbidden,
			Message: "access denied",
		})
	}

	query, err := queries.NewGetBusinessEmployeesQuery(businessID)
	if err != nil {
		return writeError(c, err)
	}

	employees, err := s.getEmployeesHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	contracts := make([]employeeContract, 0, len(employees))
	for _, resp := range employees {
		contracts = append(contracts, toEmployeeContract(resp))
	}

	return c.JSON(http.StatusOK, contracts)
}

// RemoveEmployee handles DELETE /api/v1/employees/:id?businessId=.
func (s *Server) RemoveEmployee(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	employeeID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: "employee not found",
		})
	}

	businessID, err := kernel.UUIDFromString(c.QueryParam("businessId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid businessId",
		})
	}

	actor, err := commands.NewActor(userID)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewRemoveEmployeeCommand(actor, businessID, employeeID)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.removeEmployeeHandler.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// writeError maps domain and application errors to HTTP responses. Unmapped
// errors come back as an opaque 500 so internals never leak.
func writeError(c echo.Context, err error) error {
	var validationErr *order.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "validation failed",
			Fields:  validationErr.Errors,
		})
	}

	var notFoundErr *errs.ObjectNotFoundError
	if errors.As(err, &notFoundErr) {
		return c.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	}

	var conflictErr *errs.ConcurrencyConflictError
	if errors.As(err, &conflictErr) {
		return c.JSON(http.StatusConflict, errorResponse{
			Code:    http.StatusConflict,
			Message: "order was modified concurrently, refetch and retry",
		})
	}

	switch {
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrCancellationNotAllowed):
		return c.JSON(http.StatusConflict, errorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})

	case errors.Is(err, commands.ErrDriverNotFound):
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})

	case errors.Is(err, commands.ErrAccessDenied):
		return c.JSON(http.StatusForbidden, errorResponse{
			Code:    http.StatusForbidden,
			Message: "access denied",
		})

	case errors.Is(err, commands.ErrLastOwner),
		errors.Is(err, commands.ErrEmployeeAlreadyExists):
		return c.JSON(http.StatusConflict, errorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})

	case errors.Is(err, errMissingAuthorization),
		errors.Is(err, errInvalidAuthorization),
		errors.Is(err, errInvalidToken):
		return c.JSON(http.StatusUnauthorized, errorResponse{
			Code:    http.StatusUnauthorized,
			Message: err.Error(),
		})
	}

	var (
		invalidErr    *errs.ValueIsInvalidError
		requiredErr   *errs.ValueIsRequiredError
		outOfRangeErr *errs.ValueIsOutOfRangeError
	)
	if errors.Is(err, order.ErrUnsupportedAction) ||
		errors.As(err, &invalidErr) ||
		errors.As(err, &requiredErr) ||
		errors.As(err, &outOfRangeErr) {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusInternalServerError, errorResponse{
		Code:    http.StatusInternalServerError,
		Message: "internal server error",
	})
}
