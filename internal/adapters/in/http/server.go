// Package http exposes the orders service over REST. Handlers stay thin:
// bind the request, build a command or query, map the result to a status
// code.
package http

import (
	"errors"
	"net/http"

	"github.com/SlinkierSwine/cargo-track/internal/core/application/usecases/commands"
	"github.com/SlinkierSwine/cargo-track/internal/core/application/usecases/queries"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/cargo"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/order"
	"github.com/SlinkierSwine/cargo-track/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler       commands.CreateOrderCommandHandler
	assignVehicleHandler     commands.AssignVehicleCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler
	registerCargoHandler     commands.RegisterCargoCommandHandler

	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler
	checkCompatibilityHandler   queries.CheckCompatibilityQueryHandler
}

// NewServer creates the HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	assignVehicleHandler commands.AssignVehicleCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	registerCargoHandler commands.RegisterCargoCommandHandler,
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler,
	checkCompatibilityHandler queries.CheckCompatibilityQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		assignVehicleHandler:        assignVehicleHandler,
		changeOrderStatusHandler:    changeOrderStatusHandler,
		registerCargoHandler:        registerCargoHandler,
		getUncompletedOrdersHandler: getUncompletedOrdersHandler,
		checkCompatibilityHandler:   checkCompatibilityHandler,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.POST("/orders/:id/assign", s.AssignVehicle)
	api.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	api.PUT("/cargo", s.RegisterCargo)
	api.POST("/compatibility/check", s.CheckCompatibility)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders. The order is created in pending
// status; vehicle assignment happens asynchronously through the event bus.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		body.CustomerName, body.CustomerEmail, body.CustomerPhone,
		body.PickupAddress, body.DeliveryAddress,
		body.CargoType, body.CargoWeight, body.CargoVolume,
		body.Notes,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return internalError(ctx, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, OrderCreated{
		ID:     orderID.String(),
		Status: order.Pending.String(),
	})
}

// GetOrders handles GET /api/v1/orders - lists all non-terminal orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	result, err := s.getUncompletedOrdersHandler.Handle(
		ctx.Request().Context(), queries.NewGetUncompletedOrdersQuery())
	if err != nil {
		return internalError(ctx, "Failed to retrieve orders")
	}

	response := make([]Order, len(result))
	for i, row := range result {
		response[i] = Order{
			ID:           row.ID.String(),
			CustomerName: row.CustomerName,
			Status:       row.Status,
			CargoWeight:  row.CargoWeight,
			CargoVolume:  row.CargoVolume,
			VehicleID:    optionalString(row.VehicleID),
			DriverID:     optionalString(row.DriverID),
			CreatedAt:    row.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AssignVehicle handles POST /api/v1/orders/:id/assign - manual assignment
// of a vehicle and driver to a pending order.
func (s *Server) AssignVehicle(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body AssignVehicle
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	vehicleID, err := kernel.UUIDFromString(body.VehicleID)
	if err != nil {
		return badRequest(ctx, "Invalid vehicle id")
	}
	driverID, err := kernel.UUIDFromString(body.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	cmd, err := commands.NewAssignVehicleCommand(orderID, vehicleID, driverID)
	if err != nil {
		return badRequest(ctx, "Invalid assignment data: "+err.Error())
	}

	err = s.assignVehicleHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return assignmentErrorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status - moves the
// order along its lifecycle.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body UpdateOrderStatus
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.StatusFromString(body.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+body.Status)
	}

	var cargoID *kernel.UUID
	if body.CargoID != "" {
		parsed, cargoErr := kernel.UUIDFromString(body.CargoID)
		if cargoErr != nil {
			return badRequest(ctx, "Invalid cargo id")
		}
		cargoID = &parsed
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status, cargoID)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	err = s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
		return ctx.NoContent(http.StatusNoContent)
	case errors.Is(err, errs.ErrObjectNotFound):
		return notFound(ctx, "Order not found")
	case errors.Is(err, order.ErrInvalidTransition):
		return conflict(ctx, err.Error())
	default:
		return internalError(ctx, "Failed to update order status")
	}
}

// RegisterCargo handles PUT /api/v1/cargo - upserts the cargo snapshot the
// compatibility engine reads from. Registering the same id again overwrites
// the stored snapshot.
func (s *Server) RegisterCargo(ctx echo.Context) error {
	var body RegisterCargo
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cargoID, err := kernel.UUIDFromString(body.ID)
	if err != nil {
		return badRequest(ctx, "Invalid cargo id")
	}

	cmd, err := commands.NewRegisterCargoCommand(
		cargoID,
		body.Name, body.CargoType,
		body.Weight, body.Volume,
		cargo.Status(body.Status),
		body.RequiresTemperatureControl, body.HazardousMaterial,
		body.SpecialHandling,
	)
	if err != nil {
		return badRequest(ctx, "Invalid cargo data: "+err.Error())
	}

	if err = s.registerCargoHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return internalError(ctx, "Failed to register cargo")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CheckCompatibility handles POST /api/v1/compatibility/check - scores a
// cargo item against a vehicle.
func (s *Server) CheckCompatibility(ctx echo.Context) error {
	var body CompatibilityRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cargoID, err := kernel.UUIDFromString(body.CargoID)
	if err != nil {
		return badRequest(ctx, "Invalid cargo id")
	}
	vehicleID, err := kernel.UUIDFromString(body.VehicleID)
	if err != nil {
		return badRequest(ctx, "Invalid vehicle id")
	}

	query, err := queries.NewCheckCompatibilityQuery(cargoID, vehicleID)
	if err != nil {
		return badRequest(ctx, "Invalid compatibility request: "+err.Error())
	}

	report, err := s.checkCompatibilityHandler.Handle(ctx.Request().Context(), query)
	switch {
	case err == nil:
		return ctx.JSON(http.StatusOK, report)
	case errors.Is(err, errs.ErrObjectNotFound):
		return notFound(ctx, err.Error())
	default:
		return internalError(ctx, "Failed to run compatibility check")
	}
}

// assignmentErrorResponse maps assignment preconditions to status codes:
// missing objects are 404, everything else a business rejection is 409.
func assignmentErrorResponse(ctx echo.Context, err error) error {
	var assignErr *commands.AssignmentError
	if errors.As(err, &assignErr) {
		switch assignErr.Reason {
		case commands.ReasonOrderNotFound, commands.ReasonVehicleNotFound, commands.ReasonDriverNotFound:
			return notFound(ctx, assignErr.Error())
		default:
			return conflict(ctx, assignErr.Error())
		}
	}
	if errors.Is(err, order.ErrInvalidTransition) {
		return conflict(ctx, err.Error())
	}
	return internalError(ctx, "Failed to assign vehicle")
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

func notFound(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusNotFound, Error{Code: http.StatusNotFound, Message: message})
}

func conflict(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusConflict, Error{Code: http.StatusConflict, Message: message})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{Code: http.StatusInternalServerError, Message: message})
}

func optionalString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
