package http

import (
	"errors"
	"math"
	"net/http"

	"agrimarket/internal/core/application/usecases/commands"
	"agrimarket/internal/core/application/usecases/queries"
	"agrimarket/internal/core/domain/model/cart"
	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/core/domain/model/order"
	"agrimarket/internal/core/domain/services"
	"agrimarket/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler
	setPickupTimeHandler   commands.SetPickupTimeCommandHandler
	setTrackingLinkHandler commands.SetTrackingLinkCommandHandler

	// Query handlers
	getOrderHandler        queries.GetOrderQueryHandler
	getBuyerOrdersHandler  queries.GetBuyerOrdersQueryHandler
	getSellerOrdersHandler queries.GetSellerOrdersQueryHandler

	metrics *ServerMetrics

	// priceTolerance mirrors the validator's setting so the client-total
	// cross-check and the per-line price check cannot diverge.
	priceTolerance float64
}

// NewServer creates a new HTTP server with the required command and query
// handlers. Non-positive priceTolerance values fall back to the validator's
// default.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	setPickupTimeHandler commands.SetPickupTimeCommandHandler,
	setTrackingLinkHandler commands.SetTrackingLinkCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getBuyerOrdersHandler queries.GetBuyerOrdersQueryHandler,
	getSellerOrdersHandler queries.GetSellerOrdersQueryHandler,
	metrics *ServerMetrics,
	priceTolerance float64,
) *Server {
	if priceTolerance <= 0 {
		priceTolerance = services.DefaultPriceTolerance
	}
	return &Server{
		createOrderHandler:     createOrderHandler,
		transitionOrderHandler: transitionOrderHandler,
		setPickupTimeHandler:   setPickupTimeHandler,
		setTrackingLinkHandler: setTrackingLinkHandler,
		getOrderHandler:        getOrderHandler,
		getBuyerOrdersHandler:  getBuyerOrdersHandler,
		getSellerOrdersHandler: getSellerOrdersHandler,
		metrics:                metrics,
		priceTolerance:         priceTolerance,
	}
}

// RegisterRoutes mounts the API under /api/v1 behind the given auth
// middleware, plus the unauthenticated /health and /metrics endpoints.
func (s *Server) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", MetricsHandler())

	api := e.Group("/api/v1", auth)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetBuyerOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/seller/orders", s.GetSellerOrders)
	api.PUT("/orders/:id/status", s.UpdateOrderStatus)
	api.PUT("/orders/:id/details", s.UpdateOrderDetails)
}

// CreateOrder handles POST /api/v1/orders - places a buyer's cart as an order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok || actor.Role() != order.RoleBuyer {
		return jsonError(ctx, http.StatusForbidden, "Only buyers can place orders")
	}

	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	if req.OrderID != "" {
		parsed, err := kernel.UUIDFromString(req.OrderID)
		if err != nil {
			return jsonError(ctx, http.StatusBadRequest, "Invalid order ID: "+err.Error())
		}
		orderID = parsed
	}

	cmd, err := s.buildCreateOrderCommand(orderID, actor, req)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return handlerError(ctx, handleErr, "Failed to create order")
	}

	s.metrics.Orders.Inc()
	return ctx.JSON(http.StatusCreated, CreateOrderResponse{OrderID: orderID.String()})
}

func (s *Server) buildCreateOrderCommand(
	orderID kernel.UUID,
	actor order.Actor,
	req CreateOrderRequest,
) (commands.CreateOrderCommand, error) {
	lines := make([]cart.Line, 0, len(req.Lines))
	subtotal := 0.0
	for _, l := range req.Lines {
		productID, err := kernel.UUIDFromString(l.ProductID)
		if err != nil {
			return commands.CreateOrderCommand{}, err
		}

		line, err := cart.NewLine(productID, l.Name, l.Price, l.Quantity, l.ImageURL)
		if err != nil {
			return commands.CreateOrderCommand{}, err
		}

		lines = append(lines, line)
		subtotal += l.Price * l.Quantity
	}

	c, err := cart.NewCart(actor.ID(), lines)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	profile, err := order.NewDeliveryProfile(
		req.DeliveryProfile.FullName,
		req.DeliveryProfile.PhoneNumber,
		req.DeliveryProfile.Address,
		req.DeliveryProfile.City,
		req.DeliveryProfile.State,
		req.DeliveryProfile.PinCode,
	)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	deliveryMethod, err := order.DeliveryMethodFromString(req.DeliveryMethod)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	paymentMethod, err := order.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	// The server-computed total is authoritative; a disagreeing client total
	// means the buyer was shown stale prices.
	if req.TotalPrice != 0 {
		computed := subtotal + deliveryMethod.Fee()
		if math.Abs(computed-req.TotalPrice) > s.priceTolerance {
			return commands.CreateOrderCommand{}, errs.NewValueIsInvalidError("total_price")
		}
	}

	return commands.NewCreateOrderCommand(orderID, c, profile, deliveryMethod, paymentMethod)
}

// GetOrder handles GET /api/v1/orders/:id - fetches one order the actor may see.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return jsonError(ctx, http.StatusForbidden, "Unknown actor")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid order ID")
	}

	query, err := queries.NewGetOrderQuery(orderID, actor)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid query: "+err.Error())
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return handlerError(ctx, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, toOrder(response))
}

// GetBuyerOrders handles GET /api/v1/orders - lists the buyer's orders,
// newest first.
func (s *Server) GetBuyerOrders(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok || actor.Role() != order.RoleBuyer {
		return jsonError(ctx, http.StatusForbidden, "Only buyers can list their orders")
	}

	query, err := queries.NewGetBuyerOrdersQuery(actor.ID())
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid query: "+err.Error())
	}

	responses, err := s.getBuyerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return handlerError(ctx, err, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, toOrders(responses))
}

// GetSellerOrders handles GET /api/v1/seller/orders - lists orders containing
// the seller's lines, newest first.
func (s *Server) GetSellerOrders(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok || actor.Role() != order.RoleSeller {
		return jsonError(ctx, http.StatusForbidden, "Only sellers can list their orders")
	}

	query, err := queries.NewGetSellerOrdersQuery(actor.ID())
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid query: "+err.Error())
	}

	responses, err := s.getSellerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return handlerError(ctx, err, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, toOrders(responses))
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status - moves an order
// along its fulfillment track.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return jsonError(ctx, http.StatusForbidden, "Unknown actor")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid order ID")
	}

	var req UpdateStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	to, err := order.StatusFromString(req.Status)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid status: "+err.Error())
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, actor, to)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid transition data: "+err.Error())
	}

	if handleErr := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return handlerError(ctx, handleErr, "Failed to update order status")
	}

	s.metrics.Transitions.WithLabelValues(to.String()).Inc()
	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderDetails handles PUT /api/v1/orders/:id/details - sets the pickup
// time or tracking link on an order.
func (s *Server) UpdateOrderDetails(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return jsonError(ctx, http.StatusForbidden, "Unknown actor")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid order ID")
	}

	var req UpdateDetailsRequest
	if err := ctx.Bind(&req); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid request body")
	}
	if req.PickupTime == nil && req.TrackingLink == nil {
		return jsonError(ctx, http.StatusBadRequest, "No delivery detail provided")
	}

	if req.PickupTime != nil {
		cmd, err := commands.NewSetPickupTimeCommand(orderID, actor, *req.PickupTime)
		if err != nil {
			return jsonError(ctx, http.StatusBadRequest, "Invalid pickup time: "+err.Error())
		}

		if handleErr := s.setPickupTimeHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
			return handlerError(ctx, handleErr, "Failed to set pickup time")
		}
	}

	if req.TrackingLink != nil {
		cmd, err := commands.NewSetTrackingLinkCommand(orderID, actor, *req.TrackingLink)
		if err != nil {
			return jsonError(ctx, http.StatusBadRequest, "Invalid tracking link: "+err.Error())
		}

		if handleErr := s.setTrackingLinkHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
			return handlerError(ctx, handleErr, "Failed to set tracking link")
		}
	}

	return ctx.NoContent(http.StatusNoContent)
}

// handlerError maps a use case failure onto the HTTP status that tells the
// caller whether to fix the request, retry, or give up.
func handlerError(ctx echo.Context, err error, message string) error {
	return jsonError(ctx, errorStatus(err), message+": "+err.Error())
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrPriceChanged),
		errors.Is(err, services.ErrProductNotFound):
		return http.StatusConflict
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrMissingPickupTime),
		errors.Is(err, order.ErrDetailImmutable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, services.ErrEmptyCart):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func jsonError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}
