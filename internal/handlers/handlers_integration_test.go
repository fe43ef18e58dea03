package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/handlers"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/middleware"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/models"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/repositories"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv bundles the app with the repositories tests seed through.
type testEnv struct {
	app            *fiber.App
	userRepo       repositories.UserRepository
	restaurantRepo repositories.RestaurantRepository
	menuRepo       repositories.MenuRepository
	orderRepo      repositories.OrderRepository
	deliveryRepo   repositories.DeliveryRepository
}

// setupApp wires the whole API against an in-memory SQLite database, with
// no message broker, audit log or tracking hub attached.
func setupApp(name string) (*testEnv, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.OperatingHours{},
		&models.MenuItem{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Delivery{},
	); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	restaurantRepo := repositories.NewGORMRestaurantRepository(db)
	menuRepo := repositories.NewGORMMenuRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	deliveryRepo := repositories.NewGORMDeliveryRepository(db)

	authService := services.NewAuthService(userRepo, nil, "test_jwt_secret")
	userService := services.NewUserService(userRepo)
	restaurantService := services.NewRestaurantService(restaurantRepo)
	menuService := services.NewMenuService(menuRepo, restaurantRepo)
	cartService := services.NewCartService(cartRepo, menuRepo, restaurantRepo, orderRepo, nil, nil, 150)
	orderService := services.NewOrderService(orderRepo, deliveryRepo, nil, nil, nil)
	deliveryService := services.NewDeliveryService(deliveryRepo, orderRepo, userRepo, restaurantRepo, nil, nil, nil)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	restaurantHandler := handlers.NewRestaurantHandler(restaurantService, orderService)
	menuHandler := handlers.NewMenuHandler(menuService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService, restaurantService)
	deliveryHandler := handlers.NewDeliveryHandler(deliveryService, userService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	authHandler.RegisterRoutes(apiV1)
	restaurantHandler.RegisterPublicRoutes(apiV1)
	menuHandler.RegisterPublicRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	ownerOnly := middleware.RequireRole(models.RoleRestaurantOwner)
	driverOnly := middleware.RequireRole(models.RoleDriver)

	authHandler.RegisterProtectedRoutes(protected)
	userHandler.RegisterRoutes(protected, adminOnly)
	restaurantHandler.RegisterRoutes(protected, ownerOnly, adminOnly)
	menuHandler.RegisterRoutes(protected, ownerOnly)
	cartHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected, driverOnly, adminOnly)
	deliveryHandler.RegisterRoutes(protected, driverOnly)

	return &testEnv{
		app:            app,
		userRepo:       userRepo,
		restaurantRepo: restaurantRepo,
		menuRepo:       menuRepo,
		orderRepo:      orderRepo,
		deliveryRepo:   deliveryRepo,
	}, nil
}

// seedUser creates an account with the given roles directly in the
// repository, bypassing the registration flow.
func (e *testEnv) seedUser(t *testing.T, name, email string, roles ...models.Role) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	user := &models.User{
		FullName: name,
		Email:    email,
		Phone:    "0770000000",
		Password: string(hashed),
	}
	for _, r := range roles {
		user.AddRole(r)
	}
	assert.NoError(t, e.userRepo.Create(user))
	return user
}

// login authenticates through the API and returns the bearer token.
func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": "password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResp map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
	resp.Body.Close()

	token, _ := loginResp["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

// do runs an authenticated JSON request and returns the response.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	resp.Body.Close()
}

// TestMain suppresses logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestAuthRegisterAndLogin(t *testing.T) {
	env, err := setupApp("auth_test")
	assert.NoError(t, err)

	userToRegister := map[string]string{
		"fullname": "Nimal Silva",
		"email":    "nimal@example.com",
		"phone":    "0771234567",
		"password": "password123",
	}
	body, _ := json.Marshal(userToRegister)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var registerResp map[string]interface{}
	decodeJSON(t, resp, &registerResp)
	assert.Equal(t, "User registered successfully", registerResp["message"])

	// Duplicate email is rejected.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Login returns both the token and the user for client-side persistence.
	loginBody, _ := json.Marshal(map[string]string{"email": "nimal@example.com", "password": "password123"})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResp map[string]interface{}
	decodeJSON(t, resp, &loginResp)
	assert.NotEmpty(t, loginResp["token"])
	user, _ := loginResp["user"].(map[string]interface{})
	assert.Equal(t, "nimal@example.com", user["email"])
	assert.Equal(t, "user", user["roles"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env, err := setupApp("authz_test")
	assert.NoError(t, err)

	resp := env.do(t, http.MethodGet, "/api/v1/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// A customer token cannot reach admin or rider surfaces.
	env.seedUser(t, "Nimal Silva", "customer@example.com", models.RoleUser)
	token := env.login(t, "customer@example.com")

	resp = env.do(t, http.MethodGet, "/api/v1/admin/orders", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodPost, "/api/v1/deliveries", token, map[string]string{"orderId": "x"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

// TestOrderLifecycle walks an order end to end: cart, checkout, rider
// acceptance, kitchen progress, delivery stages, final delivered state.
func TestOrderLifecycle(t *testing.T) {
	env, err := setupApp("lifecycle_test")
	assert.NoError(t, err)

	// Seed the cast and the restaurant.
	owner := env.seedUser(t, "Sunil Jayasuriya", "owner@example.com", models.RoleUser, models.RoleRestaurantOwner)
	customer := env.seedUser(t, "Nimal Silva", "customer@example.com", models.RoleUser)
	env.seedUser(t, "Kasun Perera", "driver@example.com", models.RoleUser, models.RoleDriver)
	env.seedUser(t, "Ruwan Fernando", "driver2@example.com", models.RoleUser, models.RoleDriver)

	restaurant := &models.Restaurant{
		OwnerID:        owner.ID,
		Name:           "Upali's",
		Address:        "65 C.W.W. Kannangara Mawatha, Colombo",
		ApprovalStatus: models.ApprovalApproved,
		IsActive:       true,
	}
	assert.NoError(t, env.restaurantRepo.Create(restaurant))

	kottu := &models.MenuItem{RestaurantID: restaurant.ID, Name: "Cheese Kottu", Price: 500, IsAvailable: true}
	lime := &models.MenuItem{RestaurantID: restaurant.ID, Name: "Fresh Lime", Price: 150, IsAvailable: true}
	assert.NoError(t, env.menuRepo.Create(kottu))
	assert.NoError(t, env.menuRepo.Create(lime))

	customerToken := env.login(t, "customer@example.com")
	ownerToken := env.login(t, "owner@example.com")
	driverToken := env.login(t, "driver@example.com")
	driver2Token := env.login(t, "driver2@example.com")

	cartBase := "/api/v1/cart/" + customer.ID

	// A rider cannot poke around someone else's cart.
	resp := env.do(t, http.MethodGet, cartBase, driverToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Fill the cart: 2x500 + 2x150 = 1300 subtotal.
	resp = env.do(t, http.MethodPost, cartBase+"/add", customerToken, map[string]interface{}{
		"itemId": kottu.ID, "quantity": 2,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = env.do(t, http.MethodPost, cartBase+"/add", customerToken, map[string]interface{}{
		"itemId": lime.ID, "quantity": 2,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Checkout: total is subtotal plus the 150 delivery fee.
	resp = env.do(t, http.MethodPost, cartBase+"/checkout", customerToken, map[string]interface{}{
		"deliveryAddress": map[string]string{
			"houseNumber": "24/1", "lane1": "Temple Road", "city": "Colombo", "district": "Colombo",
		},
		"charge": map[string]interface{}{
			"amount": 1450,
			"card":   map[string]interface{}{"number": "4242424242424242", "cvc": "123", "exp_month": 12, "exp_year": 2032},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var order models.Order
	decodeJSON(t, resp, &order)
	assert.Equal(t, 1450.0, order.TotalAmount)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.NotEmpty(t, order.OrderID)

	// Checkout emptied the cart: a second checkout has nothing to buy.
	resp = env.do(t, http.MethodPost, cartBase+"/checkout", customerToken, map[string]interface{}{
		"deliveryAddress": map[string]string{"houseNumber": "24/1", "lane1": "Temple Road", "city": "Colombo", "district": "Colombo"},
		"charge":          map[string]interface{}{"amount": 0, "card": map[string]interface{}{"number": "4242424242424242", "cvc": "123", "exp_month": 12, "exp_year": 2032}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Before a rider exists, the customer sees awaiting pickup.
	var presented struct {
		models.Order
		PresentedStatus string `json:"presentedStatus"`
	}
	resp = env.do(t, http.MethodGet, "/api/v1/orders/"+order.ID, customerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &presented)
	assert.Equal(t, "awaiting_pickup", presented.PresentedStatus)

	// The order shows up on the riders' board.
	resp = env.do(t, http.MethodGet, "/api/v1/orders/out-for-delivery", driverToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var board []models.Order
	decodeJSON(t, resp, &board)
	assert.Len(t, board, 1)

	// Rider accepts: delivery created, order confirmed in one operation.
	resp = env.do(t, http.MethodPost, "/api/v1/deliveries", driverToken, map[string]string{
		"orderId": order.ID, "deliveryNotes": "ring the bell",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var delivery models.Delivery
	decodeJSON(t, resp, &delivery)
	assert.Equal(t, models.DeliveryUnassigned, delivery.Status)

	// A second rider is turned away.
	resp = env.do(t, http.MethodPost, "/api/v1/deliveries", driver2Token, map[string]string{"orderId": order.ID})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/api/v1/orders/"+order.ID, customerToken, nil)
	decodeJSON(t, resp, &presented)
	assert.Equal(t, "confirmed", presented.PresentedStatus)

	// The kitchen moves the order along; repeating a transition is a no-op.
	resp = env.do(t, http.MethodPut, "/api/v1/orders/"+order.ID+"/status", ownerToken, map[string]string{"status": "preparing"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = env.do(t, http.MethodPut, "/api/v1/orders/"+order.ID+"/status", ownerToken, map[string]string{"status": "preparing"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Skipping ahead is refused.
	resp = env.do(t, http.MethodPut, "/api/v1/orders/"+order.ID+"/status", ownerToken, map[string]string{"status": "delivered"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode) // delivered is not an owner target
	resp.Body.Close()

	resp = env.do(t, http.MethodPut, "/api/v1/orders/"+order.ID+"/status", ownerToken, map[string]string{"status": "out_for_delivery"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// A plain customer cannot drive the status machine directly.
	resp = env.do(t, http.MethodPut, "/api/v1/orders/"+order.ID+"/status", customerToken, map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// The rider walks the delivery chain; skipping a stage is a conflict.
	resp = env.do(t, http.MethodPatch, "/api/v1/deliveries/"+delivery.ID+"/status", driverToken, map[string]string{"status": "delivered"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	for _, status := range []string{"picked", "in_transit", "delivered"} {
		resp = env.do(t, http.MethodPatch, "/api/v1/deliveries/"+delivery.ID+"/status", driverToken, map[string]string{"status": status})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	// Another rider cannot touch this delivery.
	resp = env.do(t, http.MethodPatch, "/api/v1/deliveries/"+delivery.ID+"/status", driver2Token, map[string]string{"status": "delivered"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Delivered all the way through: the order closed out with the delivery.
	resp = env.do(t, http.MethodGet, "/api/v1/orders/"+order.ID, customerToken, nil)
	decodeJSON(t, resp, &presented)
	assert.Equal(t, "delivered", presented.PresentedStatus)
	assert.Equal(t, models.OrderDelivered, presented.Order.Status)

	// Terminal means terminal, even for an owner-initiated cancel.
	resp = env.do(t, http.MethodPut, "/api/v1/orders/"+order.ID+"/status", ownerToken, map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// The rider's history shows the completed run.
	driver := env.findUser(t, "driver@example.com")
	resp = env.do(t, http.MethodGet, "/api/v1/deliveries/"+driver.ID+"/by-driver-delivered", driverToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var history []models.Delivery
	decodeJSON(t, resp, &history)
	assert.Len(t, history, 1)
	assert.NotNil(t, history[0].ActualDeliveryTime)
}

func (e *testEnv) findUser(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := e.userRepo.GetByEmail(email)
	assert.NoError(t, err)
	return user
}

func TestVisibleRestaurants(t *testing.T) {
	env, err := setupApp("visibility_test")
	assert.NoError(t, err)

	owner := env.seedUser(t, "Sunil Jayasuriya", "owner@example.com", models.RoleUser, models.RoleRestaurantOwner)

	approved := &models.Restaurant{OwnerID: owner.ID, Name: "Open Spot", Address: "Colombo", ApprovalStatus: models.ApprovalApproved, IsActive: true}
	pending := &models.Restaurant{OwnerID: owner.ID, Name: "Waiting Spot", Address: "Kandy", ApprovalStatus: models.ApprovalPending, IsActive: true}
	closed := &models.Restaurant{OwnerID: owner.ID, Name: "Closed Spot", Address: "Galle", ApprovalStatus: models.ApprovalApproved, IsActive: true, IsTemporarilyClosed: true}
	for _, r := range []*models.Restaurant{approved, pending, closed} {
		assert.NoError(t, env.restaurantRepo.Create(r))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/restaurants", nil)
	resp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var listing struct {
		Data []models.Restaurant `json:"data"`
	}
	decodeJSON(t, resp, &listing)
	assert.Len(t, listing.Data, 1)
	assert.Equal(t, "Open Spot", listing.Data[0].Name)
}
